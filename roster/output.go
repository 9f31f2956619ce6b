/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"fmt"
	"strings"
)

// BuildRosterOutput formats the current assignments into grouped,
// aligned string output, one table per active role, every position
// listed whether occupied or open. viewerUserID marks the current
// viewer's own row; pass "" to skip highlighting.
func BuildRosterOutput(r *Roster, topo Topology, viewerUserID string) string {
	var sb strings.Builder

	if topo.TotalSlots() == 0 {
		return "No roster slots configured for this event\n"
	}

	for _, role := range topo.Roles() {
		type row struct{ pos, player, note string }
		var rows []row
		for pos := 1; pos <= topo.SlotCount(role); pos++ {
			occ, ok := r.OccupantAt(role, pos)
			name := "(open)"
			note := ""
			if ok {
				name = occ.DisplayName
				if occ.UserID != "" && occ.UserID == viewerUserID {
					name = name + " (you)"
				}
				if occ.IsOverride {
					note = "override"
				}
			}
			rows = append(rows, row{
				pos:    fmt.Sprintf("%v.", pos),
				player: name,
				note:   note,
			})
		}

		// Compute column widths
		maxP, maxN := len("Slot"), len("Player")
		for _, rw := range rows {
			if l := len(rw.pos); l > maxP {
				maxP = l
			}
			if l := len(rw.player); l > maxN {
				maxN = l
			}
		}

		sb.WriteString(fmt.Sprintf("%v %v\n", role.Emoji(), role.Label()))
		sb.WriteString(fmt.Sprintf("%-*s  %-*s\n", maxP, "Slot", maxN,
			"Player"))
		for _, rw := range rows {
			line := fmt.Sprintf("%-*s  %-*s", maxP, rw.pos, maxN, rw.player)
			if rw.note != "" {
				line = fmt.Sprintf("%v  [%v]", line, rw.note)
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// BuildPoolOutput formats the unassigned participants into aligned
// string output in signup order.
func BuildPoolOutput(r *Roster) string {
	pool := r.Pool()
	if len(pool) == 0 {
		return "No unassigned players\n"
	}

	type row struct{ player, role string }
	var rows []row
	for _, p := range pool {
		roleText := "none"
		if p.CharacterRole != RoleNone {
			roleText = p.CharacterRole.Label()
		}
		if len(p.PreferredRoles) > 0 {
			var prefs []string
			for _, pref := range p.PreferredRoles {
				prefs = append(prefs, pref.Label())
			}
			roleText = fmt.Sprintf("%v (prefers %v)", roleText,
				strings.Join(prefs, "/"))
		}
		rows = append(rows, row{player: p.DisplayName, role: roleText})
	}

	maxN, maxR := len("Player"), len("Role")
	for _, rw := range rows {
		if l := len(rw.player); l > maxN {
			maxN = l
		}
		if l := len(rw.role); l > maxR {
			maxR = l
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Unassigned (%v)\n", len(pool)))
	sb.WriteString(fmt.Sprintf("%-*s  %-*s\n", maxN, "Player", maxR, "Role"))
	for _, rw := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s\n", maxN, rw.player, maxR,
			rw.role))
	}

	return sb.String()
}

// SummaryText renders an auto-fill summary in the short preview form,
// e.g. "3 → Tank, 2 → Flex".
func SummaryText(summary []RoleCount) string {
	if len(summary) == 0 {
		return "nothing to fill"
	}
	parts := make([]string, 0, len(summary))
	for _, rc := range summary {
		parts = append(parts, fmt.Sprintf("%v → %v", rc.Count,
			rc.Role.Label()))
	}
	return strings.Join(parts, ", ")
}

// BuildAutoFillPreview formats a pending auto-fill result for display
// before the user confirms it.
func BuildAutoFillPreview(result AutoFillResult, topo Topology) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Auto-fill would place %v players: %v\n\n",
		result.TotalFilled, SummaryText(result.Summary)))
	sb.WriteString(BuildRosterOutput(result.Roster, topo, ""))
	return sb.String()
}
