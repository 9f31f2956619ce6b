/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"testing"
)

func TestNewRosterPartition(t *testing.T) {
	cases := []struct {
		name            string
		pool            []Participant
		assignments     []Participant
		wantPool        int
		wantAssignments int
	}{
		{
			name: "clean split",
			pool: []Participant{pooled("s1", "A", RoleTank)},
			assignments: []Participant{
				seatedAt("s2", "B", RoleHealer, RoleHealer, 1),
			},
			wantPool:        1,
			wantAssignments: 1,
		},
		{
			name: "duplicate id keeps first occurrence",
			pool: []Participant{pooled("s1", "A", RoleTank)},
			assignments: []Participant{
				seatedAt("s1", "A", RoleTank, RoleTank, 1),
			},
			wantPool:        0,
			wantAssignments: 1,
		},
		{
			name: "double-booked slot demotes later claimant",
			assignments: []Participant{
				seatedAt("s1", "A", RoleTank, RoleTank, 1),
				seatedAt("s2", "B", RoleTank, RoleTank, 1),
			},
			wantPool:        1,
			wantAssignments: 1,
		},
		{
			name: "assignment without a slot is pooled",
			assignments: []Participant{
				{SignupID: "s1", DisplayName: "A", Position: 0},
			},
			wantPool:        1,
			wantAssignments: 0,
		},
		{
			name:     "empty signup id dropped",
			pool:     []Participant{{DisplayName: "ghost"}},
			wantPool: 0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRoster(tc.pool, tc.assignments)
			if n := len(r.Pool()); n != tc.wantPool {
				t.Errorf("pool = %v; want %v", n, tc.wantPool)
			}
			if n := len(r.Assignments()); n != tc.wantAssignments {
				t.Errorf("assignments = %v; want %v", n, tc.wantAssignments)
			}
		})
	}
}

func TestRosterViewOrderStable(t *testing.T) {
	pool := []Participant{
		pooled("s3", "C", RoleNone),
		pooled("s1", "A", RoleNone),
		pooled("s2", "B", RoleNone),
	}
	r := NewRoster(pool, nil)

	got := r.Pool()
	for i, want := range []string{"s3", "s1", "s2"} {
		if got[i].SignupID != want {
			t.Fatalf("pool[%v] = %v; want %v (signup order)", i,
				got[i].SignupID, want)
		}
	}
}

func TestRosterDoesNotRetainInputSlices(t *testing.T) {
	pool := []Participant{pooled("s1", "A", RoleTank)}
	r := NewRoster(pool, nil)

	// caller mutates its own slice afterward; the store must not see it
	pool[0].DisplayName = "mutated"

	if p, _ := r.Get("s1"); p.DisplayName != "A" {
		t.Errorf("store observed caller mutation: %v", p.DisplayName)
	}
}

func TestWithPlacementCopiesOnWrite(t *testing.T) {
	r := NewRoster([]Participant{pooled("s1", "A", RoleHealer)}, nil)

	next := r.withPlacement("s1", RoleTank, 1)

	if p, _ := r.Get("s1"); p.Assigned() {
		t.Error("original roster was mutated")
	}
	p, _ := next.Get("s1")
	if p.Slot != RoleTank || p.Position != 1 {
		t.Errorf("placement = (%v,%v); want (tank,1)", p.Slot, p.Position)
	}
	if !p.IsOverride {
		t.Error("healer seated as tank; IsOverride should be true")
	}
}

func TestOccupancyQueries(t *testing.T) {
	topo := NewTopology(map[Role]int{RoleTank: 3, RoleHealer: 1})
	r := NewRoster(nil, []Participant{
		seatedAt("s1", "A", RoleTank, RoleTank, 1),
		seatedAt("s2", "B", RoleTank, RoleTank, 3),
		seatedAt("s3", "C", RoleHealer, RoleHealer, 1),
	})

	// lowest unoccupied position wins
	pos, ok := r.NextEmptyPosition(topo, RoleTank)
	if !ok || pos != 2 {
		t.Errorf("NextEmptyPosition(tank) = %v,%v; want 2,true", pos, ok)
	}
	// full role
	if _, ok := r.NextEmptyPosition(topo, RoleHealer); ok {
		t.Error("NextEmptyPosition on a full role should report none")
	}
	// role outside the topology
	if _, ok := r.NextEmptyPosition(topo, RoleFlex); ok {
		t.Error("NextEmptyPosition on an absent role should report none")
	}

	occ, ok := r.OccupantAt(RoleTank, 3)
	if !ok || occ.SignupID != "s2" {
		t.Errorf("OccupantAt(tank,3) = %v,%v; want s2,true", occ.SignupID, ok)
	}
	if _, ok := r.OccupantAt(RoleTank, 2); ok {
		t.Error("OccupantAt on an empty slot should report none")
	}

	if open := r.OpenSlotCount(topo); open != 1 {
		t.Errorf("OpenSlotCount = %v; want 1", open)
	}
}

func TestTopology(t *testing.T) {
	cases := []struct {
		name        string
		capacities  map[Role]int
		wantTotal   int
		wantGeneric bool
		wantTank    int
	}{
		{
			name: "role based",
			capacities: map[Role]int{RoleTank: 2, RoleHealer: 4,
				RoleDps: 14, RoleFlex: 5},
			wantTotal: 25,
			wantTank:  2,
		},
		{
			name:        "generic",
			capacities:  map[Role]int{RolePlayer: 10},
			wantTotal:   10,
			wantGeneric: true,
		},
		{
			name:       "negative capacity clamped",
			capacities: map[Role]int{RoleTank: -3, RoleDps: 5},
			wantTotal:  5,
		},
		{
			name:       "zero capacity role excluded",
			capacities: map[Role]int{RoleTank: 0, RoleDps: 2},
			wantTotal:  2,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			topo := NewTopology(tc.capacities)
			if got := topo.TotalSlots(); got != tc.wantTotal {
				t.Errorf("TotalSlots = %v; want %v", got, tc.wantTotal)
			}
			if got := topo.IsGeneric(); got != tc.wantGeneric {
				t.Errorf("IsGeneric = %v; want %v", got, tc.wantGeneric)
			}
			if got := topo.SlotCount(RoleTank); got != tc.wantTank {
				t.Errorf("SlotCount(tank) = %v; want %v", got, tc.wantTank)
			}
		})
	}
}

func TestTopologyRoleOrder(t *testing.T) {
	topo := NewTopology(map[Role]int{
		RoleBench: 2, RoleDps: 14, RoleTank: 2, RoleHealer: 4,
	})
	want := []Role{RoleTank, RoleHealer, RoleDps, RoleBench}
	got := topo.Roles()
	if len(got) != len(want) {
		t.Fatalf("Roles() = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Roles()[%v] = %v; want %v", i, got[i], want[i])
		}
	}
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{in: "tank", want: RoleTank},
		{in: "Tank", want: RoleTank},
		{in: " HEALS ", want: RoleHealer},
		{in: "dd", want: RoleDps},
		{in: "ranged", want: RoleDps},
		{in: "fill", want: RoleFlex},
		{in: "standby", want: RoleBench},
		{in: "player", want: RolePlayer},
		{in: "", want: RoleNone},
		{in: "warlock", want: RoleNone},
	}
	for _, tc := range cases {
		if got := ParseRole(tc.in); got != tc.want {
			t.Errorf("ParseRole(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestRoleTablesExhaustive(t *testing.T) {
	all := []Role{RoleNone, RoleTank, RoleHealer, RoleDps, RoleFlex,
		RoleBench, RolePlayer}
	for _, role := range all {
		if role.Label() == "?" {
			t.Errorf("role %d has no label", role)
		}
		if role.Emoji() == "" {
			t.Errorf("role %d has no emoji", role)
		}
		if role.Color() == 0 {
			t.Errorf("role %d has no color", role)
		}
	}
}
