/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	_ "embed"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mwalcott3/guildsched-rosterbot/guildsched"
	"github.com/mwalcott3/guildsched-rosterbot/roster"
)

type RosterSubCommand string

const (
	RosterAboutCmd    RosterSubCommand = "about"
	RosterHelpCmd     RosterSubCommand = "help"
	RosterEventsCmd   RosterSubCommand = "events"
	RosterShowCmd     RosterSubCommand = "show"
	RosterAssignCmd   RosterSubCommand = "assign"
	RosterRemoveCmd   RosterSubCommand = "remove"
	RosterSwapCmd     RosterSubCommand = "swap"
	RosterPickCmd     RosterSubCommand = "pick"
	RosterAutoFillCmd RosterSubCommand = "autofill"
	RosterClearCmd    RosterSubCommand = "clear"
	RosterJoinCmd     RosterSubCommand = "join"
)

var rosterSubCmdHdlrs = map[RosterSubCommand]CmdHandler{
	RosterAboutCmd:    rosterAboutCmdHandler,
	RosterHelpCmd:     rosterHelpCmdHandler,
	RosterEventsCmd:   rosterEventsCmdHandler,
	RosterShowCmd:     rosterShowCmdHandler,
	RosterAssignCmd:   rosterAssignCmdHandler,
	RosterRemoveCmd:   rosterRemoveCmdHandler,
	RosterSwapCmd:     rosterSwapCmdHandler,
	RosterPickCmd:     rosterPickCmdHandler,
	RosterAutoFillCmd: rosterAutoFillCmdHandler,
	RosterClearCmd:    rosterClearCmdHandler,
	RosterJoinCmd:     rosterJoinCmdHandler,
}

func rosterCmdHandler(inter *discordgo.Interaction) *discordgo.InteractionResponse {
	data := inter.ApplicationCommandData()
	hdlr := rosterHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := rosterSubCmdHdlrs[RosterSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(inter)
}

// ephemeralResp builds the default response shell; handlers clear the
// ephemeral flag when the user asked to broadcast.
func ephemeralResp() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// subCmdOpts flattens the invoked subcommand's options into a map.
func subCmdOpts(inter *discordgo.Interaction) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	data := inter.ApplicationCommandData()
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			opts[opt.Name] = opt
		}
	}
	return opts
}

// interUser returns the invoking user whether the interaction came from
// a guild channel or a DM.
func interUser(inter *discordgo.Interaction) *discordgo.User {
	if inter.Member != nil && inter.Member.User != nil {
		return inter.Member.User
	}
	return inter.User
}

//go:embed about.txt
var aboutText string

func rosterAboutCmdHandler(inter *discordgo.Interaction) *discordgo.InteractionResponse {
	resp := ephemeralResp()
	resp.Data.Content = truncateContent(aboutText)

	return resp
}

//go:embed help.md
var helpText string

func rosterHelpCmdHandler(inter *discordgo.Interaction) *discordgo.InteractionResponse {
	resp := ephemeralResp()
	resp.Data.Content = truncateContent(helpText)

	return resp
}

func rosterEventsCmdHandler(inter *discordgo.Interaction) *discordgo.InteractionResponse {
	resp := ephemeralResp()

	opts := subCmdOpts(inter)
	days := int64(14) // default
	broadcast := false
	if opt, ok := opts["days"]; ok {
		days = opt.IntValue()
	}
	if opt, ok := opts["broadcast"]; ok {
		broadcast = opt.BoolValue()
	}
	// enforce bounds
	if days <= 0 {
		days = 14
	} else if days > 60 {
		days = 60
	}

	now := time.Now()
	end := now.AddDate(0, 0, int(days))

	events, err := guildsched.GetEvents()
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching events: %v", err)
		log.Printf("discordbot.events: %v", resp.Data.Content)
		return resp
	}

	// Filter and group events by date
	eventsByDate := make(map[string][]guildsched.Event)
	for _, ev := range events {
		if ev.StartTime.Before(now) || ev.StartTime.After(end) {
			continue
		}
		key := ev.StartTime.Format("2006-01-02")
		eventsByDate[key] = append(eventsByDate[key], ev)
	}

	if len(eventsByDate) == 0 {
		resp.Data.Content = fmt.Sprintf("No events found in the next %d days.",
			days)
		log.Printf("discordbot.events: %v", resp.Data.Content)
		return resp
	}

	var datesList []string
	for d := range eventsByDate {
		datesList = append(datesList, d)
	}
	sort.Strings(datesList)
	var sb strings.Builder
	for _, d := range datesList {
		sb.WriteString(fmt.Sprintf("**%s**\n", d))
		for _, ev := range eventsByDate[d] {
			sb.WriteString(fmt.Sprintf("- %v [%v] (EventID:%v)\n", ev.Title,
				ev.GuildName, ev.EventID))
		}
	}
	sb.WriteString("\nRun /roster show <EventID> to see a specific event's roster\n")
	resp.Data.Content = truncateContent(sb.String())

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

func rosterShowCmdHandler(inter *discordgo.Interaction) *discordgo.InteractionResponse {
	resp := ephemeralResp()

	opts := subCmdOpts(inter)
	opt, ok := opts["eventid"]
	if !ok {
		resp.Data.Content = "Please provide an event ID."
		log.Printf("discordbot.show: %v", resp.Data.Content)
		return resp
	}
	eventID := opt.IntValue()
	broadcast := false
	if opt, ok := opts["broadcast"]; ok {
		broadcast = opt.BoolValue()
	}

	s, err := getSession(eventID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching roster for event %d: %v",
			eventID, err)
		log.Printf("discordbot.show: %v", resp.Data.Content)
		return resp
	}

	viewerID := ""
	if user := interUser(inter); user != nil {
		viewerID = user.ID
	}

	s.mu.Lock()
	out := roster.BuildRosterOutput(s.cur, s.topo, viewerID) +
		roster.BuildPoolOutput(s.cur)
	s.mu.Unlock()

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```", truncateContent(out))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// mutateRoster runs one manual transition against an event's session
// under its lock, updating the session snapshot when the transition
// committed. It returns the outcome message, empty when nothing
// happened.
func mutateRoster(eventID int64,
	op func(s *session) (*roster.Roster, string)) (string, error) {

	s, err := getSession(eventID)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, msg := op(s)
	if msg != "" {
		s.cur = next
	}
	return msg, nil
}

func rosterAssignCmdHandler(inter *discordgo.Interaction) *discordgo.InteractionResponse {
	resp := ephemeralResp()

	opts := subCmdOpts(inter)
	eventOpt, ok := opts["eventid"]
	playerOpt, ok2 := opts["player"]
	roleOpt, ok3 := opts["role"]
	if !ok || !ok2 || !ok3 {
		resp.Data.Content = "Please provide an event ID, player, and role."
		log.Printf("discordbot.assign: %v", resp.Data.Content)
		return resp
	}
	eventID := eventOpt.IntValue()
	role := roster.ParseRole(roleOpt.StringValue())
	if role == roster.RoleNone {
		resp.Data.Content = fmt.Sprintf("Unknown role '%v'.",
			roleOpt.StringValue())
		log.Printf("discordbot.assign: %v", resp.Data.Content)
		return resp
	}

	msg, err := mutateRoster(eventID, func(s *session) (*roster.Roster, string) {
		p, found := findParticipant(s.cur, playerOpt.StringValue())
		if !found {
			return s.cur, ""
		}
		pos := 0
		if posOpt, ok := opts["position"]; ok {
			pos = int(posOpt.IntValue())
		} else if next, open := s.cur.NextEmptyPosition(s.topo, role); open {
			pos = next
		}
		return s.ctrl.Assign(s.cur, p.SignupID, role, pos)
	})
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching roster for event %d: %v",
			eventID, err)
		log.Printf("discordbot.assign: %v", resp.Data.Content)
		return resp
	}
	if msg == "" {
		msg = "Nothing changed; check the player is pooled and the slot exists."
	}
	resp.Data.Content = msg

	return resp
}

func rosterRemoveCmdHandler(inter *discordgo.Interaction) *discordgo.InteractionResponse {
	resp := ephemeralResp()

	opts := subCmdOpts(inter)
	eventOpt, ok := opts["eventid"]
	playerOpt, ok2 := opts["player"]
	if !ok || !ok2 {
		resp.Data.Content = "Please provide an event ID and player."
		log.Printf("discordbot.remove: %v", resp.Data.Content)
		return resp
	}
	eventID := eventOpt.IntValue()

	msg, err := mutateRoster(eventID, func(s *session) (*roster.Roster, string) {
		p, found := findParticipant(s.cur, playerOpt.StringValue())
		if !found {
			return s.cur, ""
		}
		return s.ctrl.RemoveToPool(s.cur, p.SignupID)
	})
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching roster for event %d: %v",
			eventID, err)
		log.Printf("discordbot.remove: %v", resp.Data.Content)
		return resp
	}
	if msg == "" {
		msg = "Nothing changed; check the player is currently assigned."
	}
	resp.Data.Content = msg

	return resp
}

func rosterSwapCmdHandler(inter *discordgo.Interaction) *discordgo.InteractionResponse {
	resp := ephemeralResp()

	opts := subCmdOpts(inter)
	eventOpt, ok := opts["eventid"]
	playerOpt, ok2 := opts["player"]
	roleOpt, ok3 := opts["role"]
	posOpt, ok4 := opts["position"]
	if !ok || !ok2 || !ok3 || !ok4 {
		resp.Data.Content = "Please provide an event ID, player, role, and position."
		log.Printf("discordbot.swap: %v", resp.Data.Content)
		return resp
	}
	eventID := eventOpt.IntValue()
	role := roster.ParseRole(roleOpt.StringValue())
	if role == roster.RoleNone {
		resp.Data.Content = fmt.Sprintf("Unknown role '%v'.",
			roleOpt.StringValue())
		log.Printf("discordbot.swap: %v", resp.Data.Content)
		return resp
	}

	msg, err := mutateRoster(eventID, func(s *session) (*roster.Roster, string) {
		p, found := findParticipant(s.cur, playerOpt.StringValue())
		if !found {
			return s.cur, ""
		}
		return s.ctrl.ReassignOrSwap(s.cur, p.SignupID, role,
			int(posOpt.IntValue()))
	})
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching roster for event %d: %v",
			eventID, err)
		log.Printf("discordbot.swap: %v", resp.Data.Content)
		return resp
	}
	if msg == "" {
		msg = "Nothing changed; check the player is assigned and the slot exists."
	}
	resp.Data.Content = msg

	return resp
}

func rosterPickCmdHandler(inter *discordgo.Interaction) *discordgo.InteractionResponse {
	resp := ephemeralResp()

	opts := subCmdOpts(inter)
	eventOpt, ok := opts["eventid"]
	playerOpt, ok2 := opts["player"]
	if !ok || !ok2 {
		resp.Data.Content = "Please provide an event ID and player."
		log.Printf("discordbot.pick: %v", resp.Data.Content)
		return resp
	}
	eventID := eventOpt.IntValue()

	msg, err := mutateRoster(eventID, func(s *session) (*roster.Roster, string) {
		p, found := findParticipant(s.cur, playerOpt.StringValue())
		if !found {
			return s.cur, ""
		}
		role, pos, open := firstOpenSlot(s.cur, s.topo, p.CharacterRole)
		if !open {
			return s.cur, ""
		}
		return s.ctrl.AssignFromBrowse(s.cur, p.SignupID, role, pos)
	})
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching roster for event %d: %v",
			eventID, err)
		log.Printf("discordbot.pick: %v", resp.Data.Content)
		return resp
	}
	if msg == "" {
		msg = "Nothing changed; the roster may be full or the player already assigned."
	}
	resp.Data.Content = msg

	return resp
}

func rosterAutoFillCmdHandler(inter *discordgo.Interaction) *discordgo.InteractionResponse {
	resp := ephemeralResp()

	opts := subCmdOpts(inter)
	eventOpt, ok := opts["eventid"]
	if !ok {
		resp.Data.Content = "Please provide an event ID."
		log.Printf("discordbot.autofill: %v", resp.Data.Content)
		return resp
	}
	eventID := eventOpt.IntValue()
	confirm := false
	if opt, ok := opts["confirm"]; ok {
		confirm = opt.BoolValue()
	}

	s, err := getSession(eventID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching roster for event %d: %v",
			eventID, err)
		log.Printf("discordbot.autofill: %v", resp.Data.Content)
		return resp
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if confirm {
		result, ok := s.fillGate.Confirm(s.cur)
		if !ok {
			resp.Data.Content = "No pending auto-fill preview (or the roster changed since); run /roster autofill again."
			return resp
		}
		next, msg := s.ctrl.CommitAutoFill(result)
		s.cur = next
		resp.Data.Content = fmt.Sprintf("%v\n```\n%s```", msg,
			truncateContent(roster.BuildRosterOutput(s.cur, s.topo, "")))
		return resp
	}

	if !s.ctrl.CanAutoFill(s.cur) {
		resp.Data.Content = "Nothing to auto-fill: the pool is empty or no slots are open."
		return resp
	}
	result, ok := s.fillGate.Preview(s.cur, s.topo)
	if !ok {
		resp.Data.Content = "Nothing to auto-fill: no pooled player fits an open slot."
		return resp
	}

	resp.Data.Content = fmt.Sprintf(
		"```\n%s```\nRun /roster autofill eventid:%v confirm:true to apply",
		truncateContent(roster.BuildAutoFillPreview(result, s.topo)), eventID)

	return resp
}

func rosterClearCmdHandler(inter *discordgo.Interaction) *discordgo.InteractionResponse {
	resp := ephemeralResp()

	opts := subCmdOpts(inter)
	eventOpt, ok := opts["eventid"]
	if !ok {
		resp.Data.Content = "Please provide an event ID."
		log.Printf("discordbot.clear: %v", resp.Data.Content)
		return resp
	}
	eventID := eventOpt.IntValue()

	s, err := getSession(eventID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching roster for event %d: %v",
			eventID, err)
		log.Printf("discordbot.clear: %v", resp.Data.Content)
		return resp
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ctrl.CanClearAll(s.cur) {
		s.clearGate.Reset()
		resp.Data.Content = "The roster is already empty."
		return resp
	}

	if !s.clearGate.Press() {
		resp.Data.Content = fmt.Sprintf(
			"This will move %v assigned players back to the pool. Run /roster clear again within %v to confirm.",
			len(s.cur.Assignments()), roster.DefaultClearWindow)
		return resp
	}

	next, msg := s.ctrl.ClearAll(s.cur)
	if msg != "" {
		s.cur = next
	}
	resp.Data.Content = msg

	return resp
}

func rosterJoinCmdHandler(inter *discordgo.Interaction) *discordgo.InteractionResponse {
	resp := ephemeralResp()

	opts := subCmdOpts(inter)
	eventOpt, ok := opts["eventid"]
	roleOpt, ok2 := opts["role"]
	if !ok || !ok2 {
		resp.Data.Content = "Please provide an event ID and role."
		log.Printf("discordbot.join: %v", resp.Data.Content)
		return resp
	}
	eventID := eventOpt.IntValue()
	role := roster.ParseRole(roleOpt.StringValue())
	if role == roster.RoleNone {
		resp.Data.Content = fmt.Sprintf("Unknown role '%v'.",
			roleOpt.StringValue())
		log.Printf("discordbot.join: %v", resp.Data.Content)
		return resp
	}

	user := interUser(inter)
	if user == nil {
		resp.Data.Content = "Could not determine who you are."
		log.Printf("discordbot.join: %v", resp.Data.Content)
		return resp
	}

	s, err := getSession(eventID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching roster for event %d: %v",
			eventID, err)
		log.Printf("discordbot.join: %v", resp.Data.Content)
		return resp
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos := 0
	if posOpt, ok := opts["position"]; ok {
		pos = int(posOpt.IntValue())
	} else if next, open := s.cur.NextEmptyPosition(s.topo, role); open {
		pos = next
	}

	// Creating the signup is the session layer's side effect; the
	// assignment engine only invokes the hook for a valid slot.
	outcome := ""
	s.ctrl.SetSelfAssignHook(func(hookRole roster.Role, hookPos int) {
		displayName := user.GlobalName
		if displayName == "" {
			displayName = user.Username
		}
		created, err := guildsched.CreateSignup(eventID, guildsched.NewSignup{
			DiscordUserID: user.ID,
			DisplayName:   displayName,
			Role:          hookRole.Label(),
		})
		if err != nil {
			outcome = fmt.Sprintf("Error signing you up for event %d: %v",
				eventID, err)
			log.Printf("discordbot.join: %v", outcome)
			return
		}

		p := created.ToParticipant()
		s.cur = roster.NewRoster(append(s.cur.Pool(), p), s.cur.Assignments())
		next, msg := s.ctrl.Assign(s.cur, p.SignupID, hookRole, hookPos)
		if msg == "" {
			outcome = fmt.Sprintf("Signed up, but %v %v could not be taken; you are in the pool.",
				hookRole.Label(), hookPos)
			return
		}
		s.cur = next
		outcome = msg
	})
	defer s.ctrl.SetSelfAssignHook(nil)

	s.ctrl.SelfAssign(role, pos)
	if outcome == "" {
		outcome = fmt.Sprintf("%v %v is not an open slot.", role.Label(), pos)
	}
	resp.Data.Content = outcome

	return resp
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
