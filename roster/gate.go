/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"time"
)

// Clock abstracts wall-clock reads so the timeout-bounded gates are
// testable without real waits.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the production Clock.
var SystemClock Clock = systemClock{}

// DefaultClearWindow is how long a first clear-all click stays armed
// waiting for the confirming second click.
const DefaultClearWindow = 3000 * time.Millisecond

// ClearGate is the two-click guard in front of clear-all. The first
// press arms the gate; a second press before the window elapses
// confirms. Once the window elapses the next press arms again rather
// than clearing. States: Idle, Armed(expiresAt).
type ClearGate struct {
	clock     Clock
	window    time.Duration
	expiresAt time.Time // zero while idle
}

// NewClearGate builds a gate around the given clock. A zero window
// selects DefaultClearWindow.
func NewClearGate(clock Clock, window time.Duration) *ClearGate {
	if clock == nil {
		clock = SystemClock
	}
	if window <= 0 {
		window = DefaultClearWindow
	}
	return &ClearGate{clock: clock, window: window}
}

// Press records one click. It returns true when this press confirms an
// armed gate, meaning the caller should perform the clear now.
func (g *ClearGate) Press() bool {
	now := g.clock.Now()
	if !g.expiresAt.IsZero() && now.Before(g.expiresAt) {
		g.expiresAt = time.Time{}
		return true
	}
	g.expiresAt = now.Add(g.window)
	return false
}

// Armed reports whether a first press is still awaiting confirmation.
func (g *ClearGate) Armed() bool {
	return !g.expiresAt.IsZero() && g.clock.Now().Before(g.expiresAt)
}

// Reset returns the gate to idle.
func (g *ClearGate) Reset() {
	g.expiresAt = time.Time{}
}

// AutoFillGate holds a computed auto-fill result as an uncommitted
// preview until the user confirms or cancels. The preview is bound to
// the exact snapshot it was computed from; confirming against any other
// snapshot discards it instead, so a stale preview can never be applied
// to a state that has moved on.
type AutoFillGate struct {
	source  *Roster
	result  AutoFillResult
	pending bool
}

// Preview computes auto-fill for the snapshot and holds the result.
// ok is false when there is nothing to fill, in which case no preview
// is held and callers should surface a no-op notice instead.
func (g *AutoFillGate) Preview(r *Roster, topo Topology) (AutoFillResult, bool) {
	result := ComputeAutoFill(r, topo)
	if result.TotalFilled == 0 {
		g.Cancel()
		return AutoFillResult{}, false
	}
	g.source = r
	g.result = result
	g.pending = true
	return result, true
}

// Pending reports whether a preview is currently held.
func (g *AutoFillGate) Pending() bool {
	return g.pending
}

// Confirm releases the held preview for committing, but only when the
// caller's current snapshot is the one the preview was computed from.
// In every case the gate returns to idle.
func (g *AutoFillGate) Confirm(current *Roster) (AutoFillResult, bool) {
	defer g.Cancel()
	if !g.pending || current != g.source {
		return AutoFillResult{}, false
	}
	return g.result, true
}

// Cancel discards any held preview with no side effects.
func (g *AutoFillGate) Cancel() {
	g.source = nil
	g.result = AutoFillResult{}
	g.pending = false
}
