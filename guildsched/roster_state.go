/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package guildsched

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/mwalcott3/guildsched-rosterbot/internal"
	"github.com/mwalcott3/guildsched-rosterbot/roster"
)

type Source int

const (
	SourceAPI Source = iota
	SourceWebsite
)

func (s Source) String() string {
	if s == SourceAPI {
		return "api"
	} else if s == SourceWebsite {
		return "website"
	} else {
		return "?"
	}
}

// vended by https://api.guildsched.gg/api/event/<eventId>/roster
// RosterState represents the pool and current assignments for a
// specific event.
type RosterState struct {
	Pool        []roster.Participant
	Assignments []roster.Participant

	source Source
}

// rosterEntry is the wire shape of one participant in the roster API
// response: a signup plus its current placement, if any. Signup is a
// named field rather than embedded so its UnmarshalJSON is not
// promoted over ours.
type rosterEntry struct {
	Signup   Signup
	Slot     string
	Position int
}

func (re *rosterEntry) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &re.Signup); err != nil {
		return err
	}
	aux := struct {
		Slot     string `json:"slot"`
		Position int    `json:"position"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	re.Slot = aux.Slot
	re.Position = aux.Position
	return nil
}

type rosterResponse struct {
	Pool        []rosterEntry `json:"pool"`
	Assignments []rosterEntry `json:"assignments"`
}

func (s RosterState) Source() Source {
	return s.source
}

// GetRoster fetches the roster state for a given eventId. The JSON API
// and the public signup sheet are fetched concurrently; the API
// response is preferred, with the scraped sheet as fallback when the
// API is unavailable.
func GetRoster(eventID int64) (*RosterState, error) {
	var viaAPI, viaWeb *RosterState
	var apiErr, webErr error

	var eg errgroup.Group
	eg.Go(func() error {
		viaAPI, apiErr = getRosterViaAPI(eventID)
		return nil
	})
	eg.Go(func() error {
		viaWeb, webErr = getRosterViaWeb(eventID)
		return nil
	})
	_ = eg.Wait()

	// prefer the api response
	if apiErr != nil {
		if webErr != nil {
			return viaAPI, apiErr
		} // else
		return viaWeb, nil
	} // else

	return viaAPI, apiErr
}

// getRosterViaAPI fetches the roster state for a given eventId from
// the JSON API.
func getRosterViaAPI(eventID int64) (*RosterState, error) {
	url := fmt.Sprintf("%v/api/event/%d/roster", apiBase, eventID)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return &RosterState{},
			fmt.Errorf("unable to fetch guildsched roster (new): %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return &RosterState{},
			fmt.Errorf("unable to fetch guildsched roster (do): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// events created before roster building opens vend signups only
		detail, err := GetEventDetail(eventID)
		if err == nil {
			return eventDetailToRosterState(&detail), nil
		}
		return &RosterState{}, fmt.Errorf("unable to fetch %v: http status: %v",
			url, resp.StatusCode)
	}

	var wire rosterResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return &RosterState{}, fmt.Errorf("unable to parse guildsched roster: %w",
			err)
	}

	state := &RosterState{source: SourceAPI}
	for _, entry := range wire.Pool {
		state.Pool = append(state.Pool, entry.Signup.ToParticipant())
	}
	for _, entry := range wire.Assignments {
		p := entry.Signup.ToParticipant()
		p.Slot = roster.ParseRole(entry.Slot)
		p.Position = entry.Position
		p.IsOverride = p.CharacterRole != p.Slot
		state.Assignments = append(state.Assignments, p)
	}

	if len(state.Pool) == 0 && len(state.Assignments) == 0 {
		return &RosterState{},
			fmt.Errorf("guildsched roster API returned an empty response")
	}

	return state, nil
}

// eventDetailToRosterState constructs an all-pooled RosterState from
// an EventDetail's signups.
func eventDetailToRosterState(detail *EventDetail) *RosterState {
	state := &RosterState{source: SourceAPI}
	for _, signup := range detail.Signups {
		state.Pool = append(state.Pool, signup.ToParticipant())
	}
	return state
}

// getRosterViaWeb fetches the roster state by scraping the public
// signup sheet page for the given eventId.
func getRosterViaWeb(eventID int64) (*RosterState, error) {
	url := fmt.Sprintf("%v/event/%d/signups", webBase, eventID)
	doc, err := fetchDoc(url)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch signup sheet: %w", err)
	}

	state := &RosterState{source: SourceWebsite}
	if err := parseSignupSheet(doc, state); err != nil {
		return nil, fmt.Errorf("unable to parse signup sheet: %w", err)
	}
	if len(state.Pool) == 0 && len(state.Assignments) == 0 {
		return nil, fmt.Errorf("signup sheet for event %v is empty", eventID)
	}

	return state, nil
}

// parseSignupSheet extracts participants from the signup sheet table.
// Assigned rows carry an assignment cell like "Tank 2"; pooled rows
// carry "-".
func parseSignupSheet(doc *goquery.Document, state *RosterState) error {
	doc.Find("table#signups tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		signupID, ok := row.Attr("data-signup-id")
		if !ok || strings.TrimSpace(signupID) == "" {
			return
		}
		userID, _ := row.Attr("data-user-id")

		p := roster.Participant{
			SignupID:      strings.TrimSpace(signupID),
			UserID:        strings.TrimSpace(userID),
			DisplayName:   strings.TrimSpace(cells.Eq(0).Text()),
			CharacterRole: roster.ParseRole(cells.Eq(1).Text()),
		}
		for _, pref := range strings.Split(cells.Eq(2).Text(), ",") {
			if role := roster.ParseRole(pref); role != roster.RoleNone {
				p.PreferredRoles = append(p.PreferredRoles, role)
			}
		}

		slot, pos, assigned := parseAssignmentCell(cells.Eq(3).Text())
		if assigned {
			p.Slot = slot
			p.Position = pos
			p.IsOverride = p.CharacterRole != slot
			state.Assignments = append(state.Assignments, p)
		} else {
			state.Pool = append(state.Pool, p)
		}
	})

	return nil
}

// parseAssignmentCell parses cell text like "Tank 2" into a placement.
// "-" and unparseable text mean unassigned.
func parseAssignmentCell(text string) (roster.Role, int, bool) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) != 2 {
		return roster.RoleNone, 0, false
	}
	role := roster.ParseRole(fields[0])
	if role == roster.RoleNone {
		return roster.RoleNone, 0, false
	}
	pos, err := strconv.Atoi(fields[1])
	if err != nil || pos < 1 {
		return roster.RoleNone, 0, false
	}
	return role, pos, true
}

// fetchDoc gets the HTML document at the given URL using the
// configured User-Agent.
func fetchDoc(url string) (*goquery.Document, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}
