/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/mwalcott3/guildsched-rosterbot/armory"
	"github.com/mwalcott3/guildsched-rosterbot/guildsched"
	"github.com/mwalcott3/guildsched-rosterbot/roster"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":      handleHelp,
	"events":    handleEvents,
	"show":      handleShow,
	"autofill":  handleAutoFill,
	"character": handleCharacter,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

func handleEvents(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	days := fs.Int("days", 14, "Number of days to retrieve (1-60)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	// enforce bounds
	if *days <= 0 {
		*days = 14
	} else if *days > 60 {
		*days = 60
	}

	now := time.Now()
	end := now.AddDate(0, 0, *days)

	events, err := guildsched.GetEvents()
	if err != nil {
		log.Fatalf("Error fetching events: %v", err)
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
		fmt.Printf("No events found in the next %d days.\n", *days)
		return
	}
	// Build sorted output
	var dates []string
	for d := range eventsByDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		fmt.Println(d)
		for _, ev := range eventsByDate[d] {
			fmt.Printf("  - %s [%s] (EventID:%d)\n", ev.Title, ev.GuildName,
				ev.EventID)
		}
	}
	fmt.Printf("\nRun '%s show --eventid <EventID>' to see a specific event's roster\n",
		os.Args[0])
}

func handleShow(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	eventID := fs.Int("eventid", 0, "Event ID to fetch the roster for")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *eventID <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --eventid ID.")
		fs.Usage()
		os.Exit(1)
	}

	detail, err := guildsched.GetEventDetail(int64(*eventID))
	if err != nil {
		log.Fatalf("Error fetching event %d: %v", *eventID, err)
	}
	state, err := guildsched.GetRoster(int64(*eventID))
	if err != nil {
		log.Fatalf("Error fetching roster for event %d: %v", *eventID, err)
	}

	fmt.Print(guildsched.BuildEventOutput(&detail, "", true, true))
	fmt.Println()

	topo := detail.Topology()
	r := roster.NewRoster(state.Pool, state.Assignments)
	fmt.Print(roster.BuildRosterOutput(r, topo, ""))
	fmt.Print(roster.BuildPoolOutput(r))
}

func handleAutoFill(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("autofill", flag.ExitOnError)
	eventID := fs.Int("eventid", 0, "Event ID to auto-fill")
	commit := fs.Bool("commit", false,
		"Apply the fill instead of only printing the preview")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *eventID <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --eventid ID.")
		fs.Usage()
		os.Exit(1)
	}

	detail, err := guildsched.GetEventDetail(int64(*eventID))
	if err != nil {
		log.Fatalf("Error fetching event %d: %v", *eventID, err)
	}
	state, err := guildsched.GetRoster(int64(*eventID))
	if err != nil {
		log.Fatalf("Error fetching roster for event %d: %v", *eventID, err)
	}

	topo := detail.Topology()
	r := roster.NewRoster(state.Pool, state.Assignments)

	result := roster.ComputeAutoFill(r, topo)
	if result.TotalFilled == 0 {
		fmt.Println("Nothing to auto-fill: the pool is empty or no slots are open.")
		return
	}

	if !*commit {
		fmt.Print(roster.BuildAutoFillPreview(result, topo))
		fmt.Printf("Re-run with --commit to apply\n")
		return
	}

	ctrl := roster.NewController(topo,
		func(pool, assignments []roster.Participant) {
			log.Printf("rosterctl.autofill: event %v: %v assigned, %v pooled",
				*eventID, len(assignments), len(pool))
		})
	next, msg := ctrl.CommitAutoFill(result)
	fmt.Println(msg)
	fmt.Print(roster.BuildRosterOutput(next, topo, ""))
}

func handleCharacter(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("character", flag.ExitOnError)
	realm := fs.String("realm", "", "Realm the character lives on")
	name := fs.String("name", "", "Character name")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *realm == "" || *name == "" {
		fmt.Fprintln(os.Stderr, "Please provide --realm and --name.")
		fs.Usage()
		os.Exit(1)
	}

	client := armory.NewClient(ctx)
	char, err := client.FetchCharacter(ctx, *realm, *name)
	if err != nil {
		log.Fatalf("Error fetching character %v-%v: %v", *name, *realm, err)
	}

	fmt.Printf("Name: %s\n", char.Name)
	fmt.Printf("Realm: %s\n", char.Realm)
	fmt.Printf("Class: %s\n", char.Class)
	if char.Spec != "" {
		fmt.Printf("Spec: %s\n", char.Spec)
	}
	if char.Level > 0 {
		fmt.Printf("Level: %d\n", char.Level)
	}
	if char.ItemLevel > 0 {
		fmt.Printf("Item Level: %d\n", char.ItemLevel)
	}
	if role := char.Role(); role != roster.RoleNone {
		fmt.Printf("Roster Role: %s\n", role.Label())
	}
}
