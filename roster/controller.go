/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"fmt"
)

// ChangeFunc receives the complete recomputed pool and assignment lists
// after every committed transition. Full snapshots, never deltas; the
// caller always sees one consistent state.
type ChangeFunc func(pool, assignments []Participant)

// SelfAssignFunc is the delegated hook for a privileged actor who is
// not yet a pool participant inserting themselves directly into a slot.
// Creating the signup is the collaborator's side effect, not ours.
type SelfAssignFunc func(role Role, pos int)

// Controller applies manual roster transitions. Each operation takes
// the current roster snapshot and returns a new one plus a
// human-readable outcome message for the caller's toast sink. An
// operation that references a signup id or slot not present in the
// snapshot is a silent no-op: the input roster comes back unchanged
// with an empty message and the change callback is not invoked. The UI
// only offers valid targets, so a miss means stale input, not an error.
type Controller struct {
	topo       Topology
	onChange   ChangeFunc
	selfAssign SelfAssignFunc
}

func NewController(topo Topology, onChange ChangeFunc) *Controller {
	return &Controller{topo: topo, onChange: onChange}
}

// SetSelfAssignHook installs the delegated self-assign collaborator.
func (c *Controller) SetSelfAssignHook(hook SelfAssignFunc) {
	c.selfAssign = hook
}

// Topology returns the controller's active topology.
func (c *Controller) Topology() Topology {
	return c.topo
}

// Assign places a pooled participant into (role, pos). If the target
// slot is occupied, the occupant is displaced back into the pool.
func (c *Controller) Assign(r *Roster, signupID string, role Role,
	pos int) (*Roster, string) {

	p, ok := r.Get(signupID)
	if !ok || p.Assigned() || !c.validSlot(role, pos) {
		return r, ""
	}

	next := r.clone()
	if occupant, occupied := next.OccupantAt(role, pos); occupied {
		next.setPooled(occupant.SignupID)
	}
	next.setPlacement(signupID, role, pos, p.CharacterRole != role)

	c.emit(next)
	return next, fmt.Sprintf("%v assigned to %v %v", p.DisplayName,
		role.Label(), pos)
}

// AssignFromBrowse places a pooled participant into an explicitly empty
// slot chosen from the browse-all picker. The picker disables occupied
// destinations, but the operation is defensively identical to Assign.
func (c *Controller) AssignFromBrowse(r *Roster, signupID string,
	role Role, pos int) (*Roster, string) {

	return c.Assign(r, signupID, role, pos)
}

// RemoveToPool moves an assigned participant back into the pool.
func (c *Controller) RemoveToPool(r *Roster, signupID string) (*Roster, string) {
	p, ok := r.Get(signupID)
	if !ok || !p.Assigned() {
		return r, ""
	}

	next := r.withPooled(signupID)
	c.emit(next)
	return next, fmt.Sprintf("%v moved to pool", p.DisplayName)
}

// ReassignOrSwap moves an assigned participant to (role, pos). When the
// destination is occupied by a different participant the two trade
// slots, both override flags recomputed against their new roles; when
// it is empty this is a plain move. The pool is never touched.
func (c *Controller) ReassignOrSwap(r *Roster, signupID string, role Role,
	pos int) (*Roster, string) {

	p, ok := r.Get(signupID)
	if !ok || !p.Assigned() || !c.validSlot(role, pos) {
		return r, ""
	}
	if p.Slot == role && p.Position == pos {
		return r, ""
	}

	next := r.clone()
	occupant, occupied := next.OccupantAt(role, pos)
	next.setPlacement(signupID, role, pos, p.CharacterRole != role)
	if occupied {
		next.setPlacement(occupant.SignupID, p.Slot, p.Position,
			occupant.CharacterRole != p.Slot)
		c.emit(next)
		return next, fmt.Sprintf("Swapped %v and %v", p.DisplayName,
			occupant.DisplayName)
	}

	c.emit(next)
	return next, fmt.Sprintf("%v moved to %v %v", p.DisplayName,
		role.Label(), pos)
}

// ClearAll moves every assignment back to the pool. Callers gate this
// behind the double-click guard; the operation itself is a no-op when
// there is nothing assigned.
func (c *Controller) ClearAll(r *Roster) (*Roster, string) {
	assigned := r.Assignments()
	if len(assigned) == 0 {
		return r, ""
	}

	next := r.clone()
	for _, p := range assigned {
		next.setPooled(p.SignupID)
	}

	c.emit(next)
	return next, fmt.Sprintf("Roster cleared: %v players moved to pool",
		len(assigned))
}

// CommitAutoFill applies a confirmed auto-fill preview through the same
// callback path as manual transitions.
func (c *Controller) CommitAutoFill(result AutoFillResult) (*Roster, string) {
	if result.TotalFilled == 0 {
		return result.Roster, ""
	}

	c.emit(result.Roster)
	return result.Roster, fmt.Sprintf("Auto-filled %v players",
		result.TotalFilled)
}

// SelfAssign invokes the delegated hook for the given slot. No-op when
// no hook is installed or the slot is invalid.
func (c *Controller) SelfAssign(role Role, pos int) {
	if c.selfAssign == nil || !c.validSlot(role, pos) {
		return
	}
	c.selfAssign(role, pos)
}

// CanAutoFill reports whether auto-fill has anything to do: a non-empty
// pool and at least one open slot. Callers use this for the disabled
// state rather than relying on the function to refuse.
func (c *Controller) CanAutoFill(r *Roster) bool {
	return len(r.Pool()) > 0 && r.OpenSlotCount(c.topo) > 0
}

// CanClearAll reports whether there is anything assigned to clear.
func (c *Controller) CanClearAll(r *Roster) bool {
	return len(r.Assignments()) > 0
}

func (c *Controller) validSlot(role Role, pos int) bool {
	return pos >= 1 && pos <= c.topo.SlotCount(role)
}

func (c *Controller) emit(r *Roster) {
	if c.onChange != nil {
		c.onChange(r.Pool(), r.Assignments())
	}
}
