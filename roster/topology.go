/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

// Topology is the per-role capacity configuration active for a roster.
// A role with capacity 0 is not part of the active topology. Capacities
// are clamped to zero at construction; the engine only ever iterates
// positions 1..capacity.
type Topology struct {
	capacities map[Role]int
}

// roleOrder is the display and fill order for role-based topologies.
var roleOrder = []Role{RoleTank, RoleHealer, RoleDps, RoleFlex, RoleBench, RolePlayer}

// NewTopology builds a Topology from the given capacities. Negative
// capacities are clamped to zero.
func NewTopology(capacities map[Role]int) Topology {
	caps := make(map[Role]int, len(capacities))
	for role, n := range capacities {
		if role == RoleNone || n <= 0 {
			continue
		}
		caps[role] = n
	}
	return Topology{capacities: caps}
}

// NewGenericTopology builds a single-role topology of n undifferentiated
// player slots.
func NewGenericTopology(n int) Topology {
	return NewTopology(map[Role]int{RolePlayer: n})
}

// SlotCount returns the configured capacity for role, or 0 if the role
// is not part of the active topology.
func (t Topology) SlotCount(role Role) int {
	return t.capacities[role]
}

// TotalSlots returns the sum of all configured capacities.
func (t Topology) TotalSlots() int {
	total := 0
	for _, n := range t.capacities {
		total += n
	}
	return total
}

// Roles returns the active roles in fixed fill order.
func (t Topology) Roles() []Role {
	var roles []Role
	for _, role := range roleOrder {
		if t.capacities[role] > 0 {
			roles = append(roles, role)
		}
	}
	return roles
}

// IsGeneric reports whether the topology is the single undifferentiated
// "player" shape rather than the role-based tank/healer/dps shape. The
// mode selects which auto-fill branch runs.
func (t Topology) IsGeneric() bool {
	return t.capacities[RolePlayer] > 0
}
