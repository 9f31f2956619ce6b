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
	"github.com/mwalcott3/guildsched-rosterbot/roster"
)

// vended by https://api.guildsched.gg/api/event/<eventId>
// EventDetail represents detailed information about a specific event,
// including its roster template and signups.
type EventDetail struct {
	EventID       int            `json:"eventId"`
	Title         string         `json:"title"`
	GuildName     string         `json:"guildName"`
	StartTime     time.Time      `json:"startTime"`
	EndTime       time.Time      `json:"endTime"`
	DateDisplay   string         `json:"dateDisplay"`
	Description   string         `json:"description"`
	Template      string         `json:"rosterTemplate"`
	SlotCounts    map[string]int `json:"slotCounts"`
	IsSignupOpen  bool           `json:"isSignupOpen"`
	SignupEndTime time.Time      `json:"signupEndTime"`
	NumSignups    int            `json:"numSignups"`
	Signups       []Signup       `json:"signups"`
}

// Signup represents a single signup record for an event.
type Signup struct {
	SignupID       string    `json:"signupId"`
	DiscordUserID  string    `json:"discordUserId"`
	DisplayName    string    `json:"displayName"`
	CharacterName  string    `json:"characterName"`
	CharacterRealm string    `json:"characterRealm"`
	CharacterClass string    `json:"characterClass"`
	Role           string    `json:"role"`
	PreferredRoles []string  `json:"preferredRoles"`
	SignupTime     time.Time `json:"signupTime"`
}

// GetEventDetail fetches detailed event info from the GuildSched API
// for a given eventId and returns an EventDetail.
func GetEventDetail(eventID int64) (EventDetail, error) {
	url := fmt.Sprintf("%v/api/event/%d", apiBase, eventID)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return EventDetail{}, fmt.Errorf("unable to fetch guildsched event detail (new): %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return EventDetail{}, fmt.Errorf("unable to fetch guildsched event detail (do): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return EventDetail{}, fmt.Errorf("unable to fetch guildsched event detail (http): %v", resp.StatusCode)
	}

	var detail EventDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return EventDetail{}, fmt.Errorf("unable to parse guildsched event detail: %w", err)
	}

	return detail, nil
}

// Custom unmarshaller for EventDetail to handle flexible date parsing.
func (ed *EventDetail) UnmarshalJSON(data []byte) error {
	type Alias EventDetail
	aux := &struct {
		StartTime     string   `json:"startTime"`
		EndTime       string   `json:"endTime"`
		SignupEndTime string   `json:"signupEndTime"`
		Signups       []Signup `json:"signups"`
		*Alias
	}{
		Alias: (*Alias)(ed),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("EventDetail unmarshal: %w", err)
	}
	var err error
	ed.StartTime, err = internal.ParseDateOrZero(aux.StartTime)
	if err != nil {
		return fmt.Errorf("parsing EventDetail.StartTime: %w", err)
	}
	ed.EndTime, err = internal.ParseDateOrZero(aux.EndTime)
	if err != nil {
		return fmt.Errorf("parsing EventDetail.EndTime: %w", err)
	}
	ed.SignupEndTime, err = internal.ParseDateOrZero(aux.SignupEndTime)
	if err != nil {
		return fmt.Errorf("parsing EventDetail.SignupEndTime: %w", err)
	}
	// copy parsed signups
	ed.Signups = aux.Signups
	return nil
}

// Custom unmarshaller for Signup to handle flexible date parsing.
func (s *Signup) UnmarshalJSON(data []byte) error {
	type Alias Signup
	aux := &struct {
		SignupTime string `json:"signupTime"`
		*Alias
	}{
		Alias: (*Alias)(s),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("Signup unmarshal: %w", err)
	}
	var err error
	s.SignupTime, err = internal.ParseDateOrZero(aux.SignupTime)
	if err != nil {
		return fmt.Errorf("parsing Signup.SignupTime: %w", err)
	}
	return nil
}

// Topology builds the roster topology for this event from its slot
// counts. Events configured with the "generic" template carry a single
// player slot count; everything else is role based.
func (ed *EventDetail) Topology() roster.Topology {
	capacities := make(map[roster.Role]int, len(ed.SlotCounts))
	for name, n := range ed.SlotCounts {
		role := roster.ParseRole(name)
		if role == roster.RoleNone {
			continue
		}
		capacities[role] = n
	}
	return roster.NewTopology(capacities)
}

// ToParticipant converts a signup record into a pooled roster
// participant.
func (s Signup) ToParticipant() roster.Participant {
	var prefs []roster.Role
	for _, name := range s.PreferredRoles {
		if role := roster.ParseRole(name); role != roster.RoleNone {
			prefs = append(prefs, role)
		}
	}
	return roster.Participant{
		SignupID:       s.SignupID,
		UserID:         s.DiscordUserID,
		DisplayName:    s.DisplayName,
		CharacterRole:  roster.ParseRole(s.Role),
		PreferredRoles: prefs,
	}
}

// BuildEventOutput formats an EventDetail into a pretty printed string
// output. boldTag wraps field labels ("**" for Discord markdown, ""
// for plain terminals).
func BuildEventOutput(detail *EventDetail, boldTag string, includeTitle,
	includeURL bool) string {

	out := ""
	if includeTitle {
		out += fmt.Sprintf("%vTitle%v: %v\n", boldTag, boldTag, detail.Title)
	}
	if includeURL {
		out += fmt.Sprintf("%vURL%v: %v/event/%d\n", boldTag, boldTag,
			webBase, detail.EventID)
	}
	out += fmt.Sprintf("%vEventID%v: %d [Sign up](%v/event/%d/signup)\n",
		boldTag, boldTag, detail.EventID, webBase, detail.EventID)
	out += fmt.Sprintf("%vGuild%v: %v\n", boldTag, boldTag, detail.GuildName)
	out += fmt.Sprintf("%vDate%v: %v\n", boldTag, boldTag, detail.DateDisplay)
	if detail.Template != "" {
		out += fmt.Sprintf("%vRoster Template%v: %v\n", boldTag, boldTag,
			detail.Template)
	}
	topo := detail.Topology()
	slotSummary := ""
	for _, role := range topo.Roles() {
		if slotSummary != "" {
			slotSummary += " "
		}
		slotSummary += fmt.Sprintf("%v:%v", role.Label(), topo.SlotCount(role))
	}
	if slotSummary != "" {
		out += fmt.Sprintf("%vSlots%v: %v\n", boldTag, boldTag, slotSummary)
	}
	out += fmt.Sprintf("%vSignups%v: %v\n", boldTag, boldTag, detail.NumSignups)
	out += fmt.Sprintf("%vDescription%v: %v\n", boldTag, boldTag,
		detail.Description)

	return out
}
