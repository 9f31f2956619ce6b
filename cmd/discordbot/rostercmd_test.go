/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/mwalcott3/guildsched-rosterbot/roster"
)

// seedSession installs a prebuilt in-memory session so handlers can be
// exercised without the GuildSched API.
func seedSession(t *testing.T, eventID int64, pool,
	assignments []roster.Participant) *session {

	t.Helper()

	s := &session{
		eventID:   eventID,
		topo:      roster.NewTopology(map[roster.Role]int{roster.RoleTank: 1, roster.RoleHealer: 1, roster.RoleDps: 2}),
		cur:       roster.NewRoster(pool, assignments),
		clearGate: roster.NewClearGate(nil, 0),
	}
	s.ctrl = roster.NewController(s.topo, nil)

	sessionsMtx.Lock()
	sessions[eventID] = s
	sessionsMtx.Unlock()
	t.Cleanup(func() {
		sessionsMtx.Lock()
		delete(sessions, eventID)
		sessionsMtx.Unlock()
	})

	return s
}

func pooled(signupID, name string, charRole roster.Role) roster.Participant {
	return roster.Participant{
		SignupID:      signupID,
		UserID:        "u-" + signupID,
		DisplayName:   name,
		CharacterRole: charRole,
	}
}

// subCmdInter builds a fake application-command interaction invoking
// one subcommand of /roster.
func subCmdInter(sub string,
	opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {

	return &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: string(RosterCmd),
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{
					Name:    sub,
					Type:    discordgo.ApplicationCommandOptionSubCommand,
					Options: opts,
				},
			},
		},
	}
}

func intOpt(name string, v float64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: v,
	}
}

func strOpt(name, v string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name: name, Type: discordgo.ApplicationCommandOptionString, Value: v,
	}
}

func boolOpt(name string, v bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name: name, Type: discordgo.ApplicationCommandOptionBoolean, Value: v,
	}
}

func TestRosterHelpCmdHandler(t *testing.T) {
	resp := rosterCmdHandler(subCmdInter(string(RosterHelpCmd)))
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response with Data")
	}
	if resp.Type != discordgo.InteractionResponseChannelMessageWithSource {
		t.Errorf("Expected response type %v, got %v",
			discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	}
	if !strings.Contains(resp.Data.Content, "/roster") {
		t.Errorf("Expected help text, got %q", resp.Data.Content)
	}
	if resp.Data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("help should be ephemeral")
	}
}

func TestRosterCmdHandlerUnknownSubDefaultsToHelp(t *testing.T) {
	resp := rosterCmdHandler(subCmdInter("bogus"))
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response with Data")
	}
	if !strings.Contains(resp.Data.Content, "/roster") {
		t.Errorf("Expected help fallback, got %q", resp.Data.Content)
	}
}

func TestRosterAssignCmdHandler(t *testing.T) {
	s := seedSession(t, 9001, []roster.Participant{
		pooled("s1", "Thorik", roster.RoleTank),
		pooled("s2", "Liora", roster.RoleHealer),
	}, nil)

	inter := subCmdInter(string(RosterAssignCmd),
		intOpt("eventid", 9001), strOpt("player", "Thorik"),
		strOpt("role", "tank"))
	resp := rosterAssignCmdHandler(inter)
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response with Data")
	}
	if !strings.Contains(resp.Data.Content, "Thorik assigned to Tank 1") {
		t.Errorf("unexpected outcome: %q", resp.Data.Content)
	}

	if len(s.cur.Assignments()) != 1 {
		t.Errorf("session snapshot not updated: %v assignments",
			len(s.cur.Assignments()))
	}

	// unknown player leaves the session untouched
	resp = rosterAssignCmdHandler(subCmdInter(string(RosterAssignCmd),
		intOpt("eventid", 9001), strOpt("player", "Nobody"),
		strOpt("role", "dps")))
	if !strings.Contains(resp.Data.Content, "Nothing changed") {
		t.Errorf("unexpected outcome: %q", resp.Data.Content)
	}
	if len(s.cur.Assignments()) != 1 {
		t.Error("no-op should not change the snapshot")
	}
}

func TestRosterRemoveAndSwapCmdHandlers(t *testing.T) {
	s := seedSession(t, 9002, []roster.Participant{
		pooled("s3", "Bram", roster.RoleDps),
	}, []roster.Participant{
		{SignupID: "s1", DisplayName: "Thorik", CharacterRole: roster.RoleTank,
			Slot: roster.RoleTank, Position: 1},
		{SignupID: "s2", DisplayName: "Liora", CharacterRole: roster.RoleHealer,
			Slot: roster.RoleHealer, Position: 1},
	})

	resp := rosterSwapCmdHandler(subCmdInter(string(RosterSwapCmd),
		intOpt("eventid", 9002), strOpt("player", "Thorik"),
		strOpt("role", "healer"), intOpt("position", 1)))
	if !strings.Contains(resp.Data.Content, "Swapped Thorik and Liora") {
		t.Errorf("unexpected outcome: %q", resp.Data.Content)
	}

	resp = rosterRemoveCmdHandler(subCmdInter(string(RosterRemoveCmd),
		intOpt("eventid", 9002), strOpt("player", "Liora")))
	if !strings.Contains(resp.Data.Content, "Liora moved to pool") {
		t.Errorf("unexpected outcome: %q", resp.Data.Content)
	}
	if len(s.cur.Pool()) != 2 {
		t.Errorf("pool = %v participants; want 2", len(s.cur.Pool()))
	}
}

func TestRosterPickCmdHandler(t *testing.T) {
	seedSession(t, 9003, []roster.Participant{
		pooled("s1", "Bram", roster.RoleDps),
	}, nil)

	resp := rosterPickCmdHandler(subCmdInter(string(RosterPickCmd),
		intOpt("eventid", 9003), strOpt("player", "Bram")))
	if !strings.Contains(resp.Data.Content, "Bram assigned to DPS 1") {
		t.Errorf("unexpected outcome: %q", resp.Data.Content)
	}
}

func TestRosterAutoFillPreviewAndConfirm(t *testing.T) {
	s := seedSession(t, 9004, []roster.Participant{
		pooled("s1", "Thorik", roster.RoleTank),
		pooled("s2", "Liora", roster.RoleHealer),
		pooled("s3", "Bram", roster.RoleDps),
	}, nil)

	resp := rosterAutoFillCmdHandler(subCmdInter(string(RosterAutoFillCmd),
		intOpt("eventid", 9004)))
	if !strings.Contains(resp.Data.Content, "Auto-fill would place 3 players") {
		t.Errorf("unexpected preview: %q", resp.Data.Content)
	}
	if len(s.cur.Assignments()) != 0 {
		t.Error("preview must not mutate the session snapshot")
	}

	resp = rosterAutoFillCmdHandler(subCmdInter(string(RosterAutoFillCmd),
		intOpt("eventid", 9004), boolOpt("confirm", true)))
	if !strings.Contains(resp.Data.Content, "Auto-filled 3 players") {
		t.Errorf("unexpected confirm outcome: %q", resp.Data.Content)
	}
	if len(s.cur.Assignments()) != 3 {
		t.Errorf("assignments = %v; want 3", len(s.cur.Assignments()))
	}

	// confirming again with no held preview is refused
	resp = rosterAutoFillCmdHandler(subCmdInter(string(RosterAutoFillCmd),
		intOpt("eventid", 9004), boolOpt("confirm", true)))
	if !strings.Contains(resp.Data.Content, "No pending auto-fill preview") {
		t.Errorf("unexpected outcome: %q", resp.Data.Content)
	}
}

func TestRosterAutoFillConfirmStaleAfterManualChange(t *testing.T) {
	s := seedSession(t, 9005, []roster.Participant{
		pooled("s1", "Thorik", roster.RoleTank),
		pooled("s2", "Liora", roster.RoleHealer),
	}, nil)

	rosterAutoFillCmdHandler(subCmdInter(string(RosterAutoFillCmd),
		intOpt("eventid", 9005)))

	// a manual change invalidates the held preview
	rosterAssignCmdHandler(subCmdInter(string(RosterAssignCmd),
		intOpt("eventid", 9005), strOpt("player", "Thorik"),
		strOpt("role", "tank")))

	resp := rosterAutoFillCmdHandler(subCmdInter(string(RosterAutoFillCmd),
		intOpt("eventid", 9005), boolOpt("confirm", true)))
	if !strings.Contains(resp.Data.Content, "No pending auto-fill preview") {
		t.Errorf("stale preview should be discarded, got %q", resp.Data.Content)
	}
	if len(s.cur.Assignments()) != 1 {
		t.Errorf("assignments = %v; want only the manual one",
			len(s.cur.Assignments()))
	}
}

func TestRosterClearCmdHandlerDoubleInvoke(t *testing.T) {
	s := seedSession(t, 9006, nil, []roster.Participant{
		{SignupID: "s1", DisplayName: "Thorik", CharacterRole: roster.RoleTank,
			Slot: roster.RoleTank, Position: 1},
	})

	resp := rosterClearCmdHandler(subCmdInter(string(RosterClearCmd),
		intOpt("eventid", 9006)))
	if !strings.Contains(resp.Data.Content, "again within") {
		t.Errorf("first invoke should arm, got %q", resp.Data.Content)
	}
	if len(s.cur.Assignments()) != 1 {
		t.Error("first invoke must not clear")
	}

	resp = rosterClearCmdHandler(subCmdInter(string(RosterClearCmd),
		intOpt("eventid", 9006)))
	if !strings.Contains(resp.Data.Content, "Roster cleared: 1 players moved to pool") {
		t.Errorf("second invoke should clear, got %q", resp.Data.Content)
	}
	if len(s.cur.Assignments()) != 0 {
		t.Error("second invoke should have cleared the roster")
	}
}

func TestFindParticipant(t *testing.T) {
	r := roster.NewRoster([]roster.Participant{
		pooled("s1", "Thorik", roster.RoleTank),
	}, nil)

	testCases := []struct {
		name  string
		query string
		found bool
	}{
		{"by signup id", "s1", true},
		{"by display name", "thorik", true},
		{"by user id", "u-s1", true},
		{"miss", "nobody", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, found := findParticipant(r, tc.query)
			if found != tc.found {
				t.Errorf("findParticipant(%q) found=%v; want %v",
					tc.query, found, tc.found)
			}
		})
	}
}

func TestTruncateContent(t *testing.T) {
	short := "hello"
	if truncateContent(short) != short {
		t.Error("short content should be unchanged")
	}

	long := strings.Repeat("x", 4000)
	got := truncateContent(long)
	if len([]rune(got)) > 2000 {
		t.Errorf("truncated content still %v runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("truncated content should end with ellipsis")
	}
}
