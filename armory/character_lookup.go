/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package armory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mwalcott3/guildsched-rosterbot/internal"
	"github.com/mwalcott3/guildsched-rosterbot/roster"
)

// armoryBase is a var rather than a const so tests can point the
// client at a local server
var armoryBase = internal.ArmoryBaseURL

// Character holds the armory profile of a game character.
type Character struct {
	Realm     string
	Name      string
	Class     string
	Spec      string
	Level     int
	ItemLevel int
}

// apiCharacterResponse represents the JSON response from the armory
// character API endpoint
type apiCharacterResponse struct {
	Realm      string `json:"realm"`
	Name       string `json:"name"`
	Class      string `json:"class"`
	ActiveSpec string `json:"activeSpec"`
	Level      int    `json:"level"`
	ItemLevel  int    `json:"itemLevel"`
}

// FetchCharacter retrieves a character's armory profile using the
// armory API (https://armory.guildsched.gg/api/v1/characters/), falling
// back to scraping the public profile page when the API is unavailable.
func (client *Client) FetchCharacter(ctx context.Context, realm,
	name string) (*Character, error) {

	profileEndpoint := fmt.Sprintf("%v/api/v1/characters/%v/%v", armoryBase,
		strings.ToLower(realm), strings.ToLower(name))
	req, err := http.NewRequest("GET", profileEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating profile request: %w", err)
	}
	req = req.WithContext(ctx)
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.httpClient1day.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing profile HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// older realms are only served through the rendered profile page
		return client.fetchCharacterViaWeb(ctx, realm, name)
	}

	var charData apiCharacterResponse
	if err := json.NewDecoder(resp.Body).Decode(&charData); err != nil {
		return nil, fmt.Errorf("decoding profile JSON: %w", err)
	}

	return &Character{
		Realm:     charData.Realm,
		Name:      charData.Name,
		Class:     charData.Class,
		Spec:      charData.ActiveSpec,
		Level:     charData.Level,
		ItemLevel: charData.ItemLevel,
	}, nil
}

// fetchCharacterViaWeb scrapes the public armory profile page.
func (client *Client) fetchCharacterViaWeb(ctx context.Context, realm,
	name string) (*Character, error) {

	pageURL := fmt.Sprintf("%v/character/%v/%v", armoryBase,
		strings.ToLower(realm), strings.ToLower(name))
	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating page request: %w", err)
	}
	req = req.WithContext(ctx)
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.httpClient30day.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing page HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected page status %d: %s",
			resp.StatusCode, string(body))
	}

	return parseCharacter(realm, name, resp.Body)
}

// parseCharacter parses the armory profile page HTML and extracts the
// character's class, active spec, level, and item level.
func parseCharacter(realm, name string, body io.Reader) (*Character, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	char := Character{Realm: realm}
	char.Name = strings.TrimSpace(doc.Find("div.char-header h1").First().Text())
	if char.Name == "" {
		return nil, fmt.Errorf("character name not found in page for %v-%v",
			name, realm)
	}

	// subtitle format: "Level 80 Guardian Druid"
	subtitle := strings.TrimSpace(
		doc.Find("div.char-header span.char-subtitle").First().Text())
	fields := strings.Fields(subtitle)
	if len(fields) >= 4 && fields[0] == "Level" {
		if lvl, err := strconv.Atoi(fields[1]); err == nil {
			char.Level = lvl
		}
		char.Spec = fields[2]
		char.Class = strings.Join(fields[3:], " ")
	} else if len(fields) >= 1 {
		char.Class = strings.Join(fields, " ")
	}

	ilvlText := strings.TrimSpace(doc.Find("span.char-ilvl").First().Text())
	ilvlText = strings.TrimPrefix(ilvlText, "Item Level ")
	if ilvl, err := strconv.Atoi(ilvlText); err == nil {
		char.ItemLevel = ilvl
	}

	return &char, nil
}

// tankSpecs and healerSpecs classify a character's active spec; any
// other spec is damage.
var tankSpecs = map[string]bool{
	"protection": true,
	"guardian":   true,
	"blood":      true,
	"brewmaster": true,
	"vengeance":  true,
}

var healerSpecs = map[string]bool{
	"restoration":  true,
	"holy":         true,
	"discipline":   true,
	"mistweaver":   true,
	"preservation": true,
}

// pureDpsClasses can only ever fill a damage slot, so class alone is
// enough when no spec is known.
var pureDpsClasses = map[string]bool{
	"hunter":  true,
	"mage":    true,
	"rogue":   true,
	"warlock": true,
}

// Role infers the roster role a character would fill from its active
// spec, falling back to its class. Returns RoleNone when the role
// cannot be determined.
func (char *Character) Role() roster.Role {
	return InferRole(char.Class, char.Spec)
}

func InferRole(class, spec string) roster.Role {
	spec = strings.ToLower(strings.TrimSpace(spec))
	if spec != "" {
		if tankSpecs[spec] {
			return roster.RoleTank
		}
		if healerSpecs[spec] {
			return roster.RoleHealer
		}
		return roster.RoleDps
	}

	if pureDpsClasses[strings.ToLower(strings.TrimSpace(class))] {
		return roster.RoleDps
	}
	return roster.RoleNone
}
