/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

// Participant is a signed-up person eligible for roster placement.
type Participant struct {
	// SignupID distinguishes this signup from others within one event's
	// roster. It is not the account identity; one account can appear via
	// different signup records in different contexts.
	SignupID string

	// UserID is the owning account identity, used only for
	// "is this the current viewer" highlighting.
	UserID string

	DisplayName string

	// CharacterRole is the participant's declared role annotation, or
	// RoleNone when the signup carried none.
	CharacterRole Role

	// PreferredRoles is the caller-ordered set of roles the participant
	// is willing to fill. May be empty.
	PreferredRoles []Role

	// Slot and Position locate the participant within the topology.
	// Slot==RoleNone and Position==0 means the participant is pooled;
	// this pair is the sole discriminator between pooled and assigned.
	Slot     Role
	Position int

	// IsOverride marks that the participant occupies a slot whose role
	// differs from their declared character role. UI signal only, never
	// a constraint.
	IsOverride bool
}

// Assigned reports whether the participant currently occupies a slot.
func (p Participant) Assigned() bool {
	return p.Slot != RoleNone && p.Position > 0
}

// Roster is the single indexed store for one roster-building session.
// Every participant is either pooled or assigned, never both and never
// neither; the pool and assignment lists are derived views. All
// transitions are copy-on-write: a Roster value handed out is never
// mutated afterward, so callers can diff old vs new cheaply.
type Roster struct {
	byID  map[string]Participant
	order []string // signup order, drives all view and fill ordering
}

// NewRoster builds a store from the caller's pool and assignment
// snapshots. Input slices are not retained or modified. Duplicate
// signup ids keep their first occurrence; a participant whose claimed
// slot is already occupied is demoted to the pool. Both rules exist so
// the partition invariant holds by construction even against sloppy
// caller input.
func NewRoster(pool, assignments []Participant) *Roster {
	r := &Roster{
		byID: make(map[string]Participant, len(pool)+len(assignments)),
	}

	occupied := make(map[slotKey]bool)
	for _, p := range assignments {
		if _, dup := r.byID[p.SignupID]; dup || p.SignupID == "" {
			continue
		}
		key := slotKey{p.Slot, p.Position}
		if !p.Assigned() || occupied[key] {
			p.Slot = RoleNone
			p.Position = 0
			p.IsOverride = false
		} else {
			occupied[key] = true
		}
		r.byID[p.SignupID] = p
		r.order = append(r.order, p.SignupID)
	}
	for _, p := range pool {
		if _, dup := r.byID[p.SignupID]; dup || p.SignupID == "" {
			continue
		}
		p.Slot = RoleNone
		p.Position = 0
		p.IsOverride = false
		r.byID[p.SignupID] = p
		r.order = append(r.order, p.SignupID)
	}

	return r
}

type slotKey struct {
	role Role
	pos  int
}

// Pool returns the unassigned participants in signup order.
func (r *Roster) Pool() []Participant {
	out := make([]Participant, 0, len(r.order))
	for _, id := range r.order {
		if p := r.byID[id]; !p.Assigned() {
			out = append(out, p)
		}
	}
	return out
}

// Assignments returns the assigned participants in signup order.
func (r *Roster) Assignments() []Participant {
	out := make([]Participant, 0, len(r.order))
	for _, id := range r.order {
		if p := r.byID[id]; p.Assigned() {
			out = append(out, p)
		}
	}
	return out
}

// Get returns the participant with the given signup id.
func (r *Roster) Get(signupID string) (Participant, bool) {
	p, ok := r.byID[signupID]
	return p, ok
}

// Len returns the total participant count (pooled plus assigned).
func (r *Roster) Len() int {
	return len(r.order)
}

// clone makes a deep copy sharing nothing mutable with the receiver.
func (r *Roster) clone() *Roster {
	out := &Roster{
		byID:  make(map[string]Participant, len(r.byID)),
		order: append([]string(nil), r.order...),
	}
	for id, p := range r.byID {
		out.byID[id] = p
	}
	return out
}

// withPlacement returns a copy of the roster with the given participant
// placed at (role, pos), recomputing IsOverride against the new role.
func (r *Roster) withPlacement(id string, role Role, pos int) *Roster {
	out := r.clone()
	p := out.byID[id]
	p.Slot = role
	p.Position = pos
	p.IsOverride = p.CharacterRole != role
	out.byID[id] = p
	return out
}

// withPooled returns a copy of the roster with the given participant
// moved back to the pool.
func (r *Roster) withPooled(id string) *Roster {
	out := r.clone()
	p := out.byID[id]
	p.Slot = RoleNone
	p.Position = 0
	p.IsOverride = false
	out.byID[id] = p
	return out
}

// setPlacement mutates a roster the caller exclusively owns (a fresh
// clone mid-transition, never a published snapshot).
func (r *Roster) setPlacement(id string, role Role, pos int, override bool) {
	p := r.byID[id]
	p.Slot = role
	p.Position = pos
	p.IsOverride = override
	r.byID[id] = p
}

func (r *Roster) setPooled(id string) {
	p := r.byID[id]
	p.Slot = RoleNone
	p.Position = 0
	p.IsOverride = false
	r.byID[id] = p
}
