/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	_ "embed"
)

// Config carries the bot's operational settings. Secrets come from the
// environment (optionally via a local .env) rather than being baked
// into the binary.
type Config struct {
	BotToken   string `env:"ROSTERBOT_TOKEN,required"`
	AppID      string `env:"ROSTERBOT_APP_ID,required"`
	PublicKey  string `env:"ROSTERBOT_PUBLIC_KEY,required"`
	CommandID  string `env:"ROSTERBOT_CMD_ID"`
	ListenAddr string `env:"ROSTERBOT_LISTEN_ADDR" envDefault:":8080"`
}

var cfg Config
var botPubKey ed25519.PublicKey

var client *discordgo.Session

type TopLevelCommand string

const (
	RosterCmd TopLevelCommand = "roster"
)

type CmdHandler func(inter *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	RosterCmd: rosterCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		hdlr, ok :=
			topLevelCmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'",
					inter.ApplicationCommandData().Name),
				Flags: discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(&inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interaction type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(rawResp)
	if err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func init() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
}

func loadConfig() {
	// .env is optional; deployed instances use real environment vars
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("discordbot.cfg: skipping .env: %v", err)
	}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("discordbot.cfg: failed to parse config: %v", err)
	}

	pubKeyBytes, err := hex.DecodeString(cfg.PublicKey)
	if err != nil {
		log.Fatalf("discordbot.cfg: failed to parse public key: %v", err)
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)

	client, err = discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		log.Fatalf("discordbot.cfg: failed to initialize discord client: %v", err)
	}
}

//go:embed lastupdate.hash
var lastCmdUpdateHash string

func shouldUpdateCmdRegistration(cmd *discordgo.ApplicationCommand) bool {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		log.Fatalf("discordbot.reg: failed to marshal cmd: %v", err)
		return false
	}
	hasher := sha256.New()
	hasher.Write(cmdJson)
	hash := hasher.Sum(nil)
	hexString := hex.EncodeToString(hash)

	shouldUpdate := (hexString != lastCmdUpdateHash)

	if shouldUpdate {
		log.Printf("discordbot.reg: updating cmd reg; please update lastupdate.hash to %v",
			hexString)
	}

	return shouldUpdate
}

func eventIDOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "eventid",
		Description: description,
		Required:    true,
	}
}

func playerOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "player",
		Description: "Display name or signup id of the player",
		Required:    true,
	}
}

func roleOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "role",
		Description: "Slot role (tank, healer, dps, flex, bench, player)",
		Required:    required,
	}
}

func positionOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "position",
		Description: "Slot position within the role (defaults to first open)",
		Required:    required,
	}
}

func broadcastOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
}

func registerSlashCommands() {
	rosterCmd := &discordgo.ApplicationCommand{
		Name:        string(RosterCmd),
		Description: "Roster builder commands; try /roster help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RosterHelpCmd),
				Description: "Show usage for roster",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RosterAboutCmd),
				Description: "Show information about guildsched-rosterbot",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RosterEventsCmd),
				Description: "Show upcoming events on the calendar",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "days",
						Description: "Number of days to retrieve (default is 14)",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RosterShowCmd),
				Description: "Show the current roster and pool for an event",
				Options: []*discordgo.ApplicationCommandOption{
					eventIDOption("Event id (as returned by events)"),
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RosterAssignCmd),
				Description: "Assign a pooled player to a slot",
				Options: []*discordgo.ApplicationCommandOption{
					eventIDOption("Event id (as returned by events)"),
					playerOption(),
					roleOption(true),
					positionOption(false),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RosterRemoveCmd),
				Description: "Move an assigned player back to the pool",
				Options: []*discordgo.ApplicationCommandOption{
					eventIDOption("Event id (as returned by events)"),
					playerOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RosterSwapCmd),
				Description: "Move an assigned player to another slot, swapping if occupied",
				Options: []*discordgo.ApplicationCommandOption{
					eventIDOption("Event id (as returned by events)"),
					playerOption(),
					roleOption(true),
					positionOption(true),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RosterPickCmd),
				Description: "Assign a pooled player to the first open slot",
				Options: []*discordgo.ApplicationCommandOption{
					eventIDOption("Event id (as returned by events)"),
					playerOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RosterAutoFillCmd),
				Description: "Preview an automatic fill of open slots; confirm to apply",
				Options: []*discordgo.ApplicationCommandOption{
					eventIDOption("Event id (as returned by events)"),
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "confirm",
						Description: "Apply the previously previewed fill",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RosterClearCmd),
				Description: "Clear all assignments (run twice to confirm)",
				Options: []*discordgo.ApplicationCommandOption{
					eventIDOption("Event id (as returned by events)"),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RosterJoinCmd),
				Description: "Sign yourself up and take a slot directly",
				Options: []*discordgo.ApplicationCommandOption{
					eventIDOption("Event id (as returned by events)"),
					roleOption(true),
					positionOption(false),
				},
			},
		},
	}

	if cfg.CommandID == "" {
		cmd, err := client.ApplicationCommandCreate(cfg.AppID, "", rosterCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v",
				rosterCmd.Name, err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v); set ROSTERBOT_CMD_ID to reuse",
			cmd.Name, cmd.ID)
	} else if shouldUpdateCmdRegistration(rosterCmd) {
		cmd, err := client.ApplicationCommandEdit(cfg.AppID, "", cfg.CommandID,
			rosterCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to update %v: %v",
				rosterCmd.Name, err)
			return
		}

		log.Printf("discordbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
	}
}

func main() {
	loadConfig()

	go registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v%v", hostname,
		cfg.ListenAddr)

	http.HandleFunc("/DiscordBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
