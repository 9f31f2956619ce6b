/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"strings"
)

// Role identifies a roster slot type. The set is closed; label, emoji,
// and color lookups below are exhaustive so that adding or removing a
// role is a compile-time visible change rather than a string-typo risk.
type Role int

const (
	RoleNone Role = iota
	RoleTank
	RoleHealer
	RoleDps
	RoleFlex
	RoleBench
	RolePlayer
)

// CombatRoles is the fixed priority order used by auto-fill when
// choosing among a participant's declared roles and when iterating
// role-matched passes: tank before healer before dps.
var CombatRoles = []Role{RoleTank, RoleHealer, RoleDps}

var roleLabels = map[Role]string{
	RoleNone:   "Unassigned",
	RoleTank:   "Tank",
	RoleHealer: "Healer",
	RoleDps:    "DPS",
	RoleFlex:   "Flex",
	RoleBench:  "Bench",
	RolePlayer: "Player",
}

var roleEmojis = map[Role]string{
	RoleNone:   "❔",
	RoleTank:   "🛡️",
	RoleHealer: "💚",
	RoleDps:    "⚔️",
	RoleFlex:   "🔀",
	RoleBench:  "🪑",
	RolePlayer: "🎮",
}

// Discord embed accent colors per role
var roleColors = map[Role]int{
	RoleNone:   0x95a5a6,
	RoleTank:   0x3498db,
	RoleHealer: 0x2ecc71,
	RoleDps:    0xe74c3c,
	RoleFlex:   0x9b59b6,
	RoleBench:  0x7f8c8d,
	RolePlayer: 0xf1c40f,
}

func (r Role) Label() string {
	l, ok := roleLabels[r]
	if !ok {
		return "?"
	}
	return l
}

func (r Role) Emoji() string {
	e, ok := roleEmojis[r]
	if !ok {
		return "❔"
	}
	return e
}

func (r Role) Color() int {
	c, ok := roleColors[r]
	if !ok {
		return roleColors[RoleNone]
	}
	return c
}

func (r Role) String() string {
	return strings.ToLower(r.Label())
}

// ParseRole maps signup-form free text onto a Role. GuildSched signup
// annotations are user supplied, so common aliases are accepted.
// Unrecognized or empty text parses as RoleNone.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tank", "tanks", "maintank", "offtank":
		return RoleTank
	case "healer", "heal", "heals", "healers", "support":
		return RoleHealer
	case "dps", "dd", "damage", "melee", "ranged", "caster":
		return RoleDps
	case "flex", "fill", "any":
		return RoleFlex
	case "bench", "standby", "reserve":
		return RoleBench
	case "player", "generic":
		return RolePlayer
	}
	return RoleNone
}
