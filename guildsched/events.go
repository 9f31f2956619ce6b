/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package guildsched

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mwalcott3/guildsched-rosterbot/internal"
)

// base URLs are vars rather than consts so tests can point the client
// at a local server
var (
	apiBase = internal.APIBaseURL
	webBase = internal.WebBaseURL
)

// vended by https://api.guildsched.gg/api/events
// Event represents a summary of an event in the GuildSched API
type Event struct {
	EventID     int       `json:"eventId"`
	Title       string    `json:"title"`
	GuildName   string    `json:"guildName"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	DayOfWeek   string    `json:"dayOfWeek"`
	DateDisplay string    `json:"dateDisplay"`
}

// GetEvents fetches upcoming events from the GuildSched API and
// returns a slice of Event.
func GetEvents() ([]Event, error) {
	url := fmt.Sprintf("%v/api/events", apiBase)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch guildsched events (new): %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch guildsched events (do): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to fetch guildsched events (http): %v",
			resp.StatusCode)
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("unable to parse guildsched events: %w", err)
	}

	return events, nil
}

// Custom unmarshaller to handle non-RFC3339 timestamps, "null", and
// empty strings.
func (e *Event) UnmarshalJSON(data []byte) error {
	type Alias Event
	aux := &struct {
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("Event unmarshal: %w", err)
	}
	var err error
	e.StartTime, err = internal.ParseDateOrZero(aux.StartTime)
	if err != nil {
		return fmt.Errorf("parsing Event.StartTime: %w", err)
	}
	e.EndTime, err = internal.ParseDateOrZero(aux.EndTime)
	if err != nil {
		return fmt.Errorf("parsing Event.EndTime: %w", err)
	}
	return nil
}
