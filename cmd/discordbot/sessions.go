/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/mwalcott3/guildsched-rosterbot/guildsched"
	"github.com/mwalcott3/guildsched-rosterbot/roster"
)

// session holds the in-memory roster editing state for one event. The
// assignment engine itself is pure; the session owns the current
// snapshot, the confirmation gates, and the lock that serializes
// concurrent interactions against the same event.
type session struct {
	mu      sync.Mutex
	eventID int64
	topo    roster.Topology
	cur     *roster.Roster
	ctrl    *roster.Controller

	fillGate  roster.AutoFillGate
	clearGate *roster.ClearGate
}

var (
	sessionsMtx sync.Mutex
	sessions    = make(map[int64]*session)
)

// getSession returns the existing session for an event, or constructs
// one from a fresh GuildSched snapshot.
func getSession(eventID int64) (*session, error) {
	sessionsMtx.Lock()
	s, ok := sessions[eventID]
	sessionsMtx.Unlock()
	if ok {
		return s, nil
	}

	detail, err := guildsched.GetEventDetail(eventID)
	if err != nil {
		return nil, fmt.Errorf("fetching event %v: %w", eventID, err)
	}
	state, err := guildsched.GetRoster(eventID)
	if err != nil {
		return nil, fmt.Errorf("fetching roster for event %v: %w", eventID, err)
	}

	s = &session{
		eventID:   eventID,
		topo:      detail.Topology(),
		cur:       roster.NewRoster(state.Pool, state.Assignments),
		clearGate: roster.NewClearGate(nil, 0),
	}
	s.ctrl = roster.NewController(s.topo,
		func(pool, assignments []roster.Participant) {
			log.Printf("discordbot.session: event %v: %v assigned, %v pooled",
				eventID, len(assignments), len(pool))
		})

	sessionsMtx.Lock()
	if existing, ok := sessions[eventID]; ok {
		// lost the construction race
		s = existing
	} else {
		sessions[eventID] = s
	}
	sessionsMtx.Unlock()

	return s, nil
}

// findParticipant resolves a player argument against the session's
// current snapshot: exact signup id first, then case-insensitive
// display name, then Discord user id.
func findParticipant(r *roster.Roster, query string) (roster.Participant, bool) {
	if p, ok := r.Get(query); ok {
		return p, true
	}

	lowered := strings.ToLower(strings.TrimSpace(query))
	for _, p := range append(r.Pool(), r.Assignments()...) {
		if strings.ToLower(p.DisplayName) == lowered || p.UserID == query {
			return p, true
		}
	}
	return roster.Participant{}, false
}

// firstOpenSlot finds the lowest open position for the browse-all pick,
// preferring a slot matching the participant's character role.
func firstOpenSlot(r *roster.Roster, topo roster.Topology,
	preferred roster.Role) (roster.Role, int, bool) {

	if pos, ok := r.NextEmptyPosition(topo, preferred); ok {
		return preferred, pos, true
	}
	for _, role := range topo.Roles() {
		if role == preferred {
			continue
		}
		if pos, ok := r.NextEmptyPosition(topo, role); ok {
			return role, pos, true
		}
	}
	return roster.RoleNone, 0, false
}
