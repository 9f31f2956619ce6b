/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package guildsched

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mwalcott3/guildsched-rosterbot/internal"
)

// NewSignup is the request body for creating a signup on behalf of a
// Discord user.
type NewSignup struct {
	DiscordUserID string `json:"discordUserId"`
	DisplayName   string `json:"displayName"`
	Role          string `json:"role"`
}

// CreateSignup registers a new signup for the given event and returns
// the created record.
func CreateSignup(eventID int64, newSignup NewSignup) (Signup, error) {
	url := fmt.Sprintf("%v/api/event/%d/signups", apiBase, eventID)

	body, err := json.Marshal(newSignup)
	if err != nil {
		return Signup{}, fmt.Errorf("unable to create guildsched signup (marshal): %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return Signup{}, fmt.Errorf("unable to create guildsched signup (new): %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Signup{}, fmt.Errorf("unable to create guildsched signup (do): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Signup{}, fmt.Errorf("unable to create guildsched signup (http): %v",
			resp.StatusCode)
	}

	var created Signup
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return Signup{}, fmt.Errorf("unable to parse guildsched signup: %w", err)
	}

	return created, nil
}
