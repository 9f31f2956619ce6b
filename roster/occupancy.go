/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

// Occupancy queries are derived from the current assignments by linear
// scan on every call. Roster sizes are tens of entries, so no
// incremental index is maintained; lowest positions are always
// preferred so fill patterns are deterministic and reproducible.

// OccupantAt returns the participant assigned to (role, pos), if any.
func (r *Roster) OccupantAt(role Role, pos int) (Participant, bool) {
	for _, id := range r.order {
		p := r.byID[id]
		if p.Assigned() && p.Slot == role && p.Position == pos {
			return p, true
		}
	}
	return Participant{}, false
}

// NextEmptyPosition returns the smallest position in [1, capacity] for
// role with no occupant. ok is false when the role is full or absent
// from the topology.
func (r *Roster) NextEmptyPosition(topo Topology, role Role) (pos int, ok bool) {
	capacity := topo.SlotCount(role)
	if capacity <= 0 {
		return 0, false
	}

	taken := make(map[int]bool, capacity)
	for _, id := range r.order {
		p := r.byID[id]
		if p.Assigned() && p.Slot == role {
			taken[p.Position] = true
		}
	}
	for pos := 1; pos <= capacity; pos++ {
		if !taken[pos] {
			return pos, true
		}
	}
	return 0, false
}

// OpenSlotCount returns the number of unoccupied positions across the
// whole topology.
func (r *Roster) OpenSlotCount(topo Topology) int {
	open := 0
	for _, role := range topo.Roles() {
		capacity := topo.SlotCount(role)
		occupied := 0
		for _, id := range r.order {
			p := r.byID[id]
			if p.Assigned() && p.Slot == role && p.Position >= 1 &&
				p.Position <= capacity {
				occupied++
			}
		}
		open += capacity - occupied
	}
	return open
}
