/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"sort"
)

// RoleCount is one entry of an auto-fill summary: how many participants
// were placed into the given role across all passes.
type RoleCount struct {
	Role  Role
	Count int
}

// AutoFillResult is the outcome of ComputeAutoFill. Roster is a new
// store; the input roster is left untouched so the result can be held
// as an uncommitted preview.
type AutoFillResult struct {
	Roster      *Roster
	Summary     []RoleCount
	TotalFilled int
}

// ComputeAutoFill greedily places as many pooled participants as
// possible into open slots. It is pure and deterministic: identical
// inputs always produce identical placements and summary ordering.
//
// Generic topologies get a single pass in pool order. Role-based
// topologies get five ordered passes, each consuming whatever the
// previous passes left unplaced:
//
//	0. preferred-role placement, most rigid participants first
//	1. exact character-role match, tank then healer then dps
//	2. flex overflow
//	3. backfill of still-open combat slots irrespective of role
//	4. bench overflow
//
// Participants the passes cannot place remain pooled in the result.
func ComputeAutoFill(r *Roster, topo Topology) AutoFillResult {
	f := &filler{
		roster: r.clone(),
		topo:   topo,
		counts: make(map[Role]int),
	}
	for _, p := range r.Pool() {
		f.remaining = append(f.remaining, p.SignupID)
	}

	if topo.IsGeneric() {
		f.fillGeneric()
	} else {
		f.fillByRole()
	}

	return AutoFillResult{
		Roster:      f.roster,
		Summary:     f.summary(),
		TotalFilled: f.placed,
	}
}

// filler carries the mutable state of one auto-fill computation. The
// roster inside is a private clone, so direct placement mutation is
// safe here and nowhere else.
type filler struct {
	roster    *Roster
	topo      Topology
	remaining []string // pooled signup ids not yet placed, pool order
	counts    map[Role]int
	placed    int
}

func (f *filler) fillGeneric() {
	for _, role := range f.topo.Roles() {
		for len(f.remaining) > 0 {
			pos, ok := f.roster.NextEmptyPosition(f.topo, role)
			if !ok {
				break
			}
			f.place(f.remaining[0], role, pos, false)
		}
	}
}

func (f *filler) fillByRole() {
	f.passPreferred()
	f.passExactMatch()
	f.passOverflow(RoleFlex)
	f.passBackfill()
	f.passOverflow(RoleBench)
}

// passPreferred places participants that declared preferred roles,
// processing the more rigid (fewer declared roles) before the more
// flexible, so a one-role participant cannot be crowded out by a
// flexible one. Declared roles are tried in combat-criticality order.
func (f *filler) passPreferred() {
	var candidates []string
	for _, id := range f.remaining {
		p, _ := f.roster.Get(id)
		if len(p.PreferredRoles) > 0 {
			candidates = append(candidates, id)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, _ := f.roster.Get(candidates[i])
		b, _ := f.roster.Get(candidates[j])
		return len(a.PreferredRoles) < len(b.PreferredRoles)
	})

	for _, id := range candidates {
		p, _ := f.roster.Get(id)
		for _, role := range CombatRoles {
			if !hasRole(p.PreferredRoles, role) {
				continue
			}
			pos, ok := f.roster.NextEmptyPosition(f.topo, role)
			if !ok {
				continue
			}
			f.place(id, role, pos, role != p.CharacterRole)
			break
		}
	}
}

// passExactMatch places remaining participants whose character role
// exactly matches, one combat role at a time.
func (f *filler) passExactMatch() {
	for _, role := range CombatRoles {
		for _, id := range append([]string(nil), f.remaining...) {
			p, _ := f.roster.Get(id)
			if p.CharacterRole != role {
				continue
			}
			pos, ok := f.roster.NextEmptyPosition(f.topo, role)
			if !ok {
				break
			}
			f.place(id, role, pos, false)
		}
	}
}

// passOverflow pours remaining participants into the given overflow
// role (flex or bench) regardless of role match. Overflow placement
// always counts as an override.
func (f *filler) passOverflow(role Role) {
	for len(f.remaining) > 0 {
		pos, ok := f.roster.NextEmptyPosition(f.topo, role)
		if !ok {
			return
		}
		f.place(f.remaining[0], role, pos, true)
	}
}

// passBackfill fills combat slots that are still open after the match
// and flex passes, irrespective of role. Backfill always counts as an
// override even when the landed role happens to match the character
// role; that matches the engine's observed behavior.
func (f *filler) passBackfill() {
	for _, role := range CombatRoles {
		for len(f.remaining) > 0 {
			pos, ok := f.roster.NextEmptyPosition(f.topo, role)
			if !ok {
				break
			}
			f.place(f.remaining[0], role, pos, true)
		}
	}
}

func (f *filler) place(id string, role Role, pos int, override bool) {
	f.roster.setPlacement(id, role, pos, override)
	f.remaining = removeID(f.remaining, id)
	f.counts[role]++
	f.placed++
}

// summary aggregates placement counts into fixed role order so the
// preview text is stable across runs.
func (f *filler) summary() []RoleCount {
	var out []RoleCount
	for _, role := range roleOrder {
		if n := f.counts[role]; n > 0 {
			out = append(out, RoleCount{Role: role, Count: n})
		}
	}
	return out
}

func hasRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
