/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/mikeb26/swisstd/store"
	"github.com/mikeb26/swisstd/tournament"
)

type TopLevelCommand string

const (
	SwissCmd TopLevelCommand = "swiss"

	defaultAddr = ":8080"
)

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

// bot answers Discord interactions with read-only views of the tournaments
// in store.
type bot struct {
	store  tournament.Store
	pubKey ed25519.PublicKey

	topLevelCmdHdlrs map[TopLevelCommand]CmdHandler
}

func newBot(s tournament.Store, pubKey ed25519.PublicKey) *bot {
	b := &bot{
		store:  s,
		pubKey: pubKey,
	}
	b.topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
		SwissCmd: b.swissCmdHandler,
	}
	return b
}

func (b *bot) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/DiscordBot/Interaction", b.interactionHandler)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return r
}

func (b *bot) interactionHandler(w http.ResponseWriter, r *http.Request) {
	log := logrus.WithField("request", middleware.GetReqID(r.Context()))

	if !discordgo.VerifyInteraction(r, b.pubKey) {
		log.Warnf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Errorf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Errorf("discordbot.int: failed to unmarshal interaction: err:%v body:%s",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	switch inter.Type {
	case discordgo.InteractionPing:
		resp.Type = discordgo.InteractionResponsePong
	case discordgo.InteractionApplicationCommand:
		name := inter.ApplicationCommandData().Name
		hdlr, ok := b.topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'", name),
				Flags:   discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	default:
		log.Warnf("discordbot.int: unimplemented interaction type %v", inter.Type)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		log.Errorf("discordbot.int: failed to write resp: err:%v", err)
	}
}

func swissCommand() *discordgo.ApplicationCommand {
	broadcastOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
	tournamentOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "tournament",
		Description: "Tournament id (as returned by list)",
		Required:    true,
	}

	return &discordgo.ApplicationCommand{
		Name:        string(SwissCmd),
		Description: "Swiss tournament commands; try /swiss help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissHelpCmd),
				Description: "Show usage for swiss",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissListCmd),
				Description: "List tournaments",
				Options:     []*discordgo.ApplicationCommandOption{broadcastOpt},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissPairingsCmd),
				Description: "Get pairings for a round",
				Options: []*discordgo.ApplicationCommandOption{
					tournamentOpt,
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "round",
						Description: "Round number (default is the current round)",
						Required:    false,
					},
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissStandingsCmd),
				Description: "Get current standings",
				Options: []*discordgo.ApplicationCommandOption{
					tournamentOpt,
					broadcastOpt,
				},
			},
		},
	}
}

func commandHash(cmd *discordgo.ApplicationCommand) (string, error) {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(cmdJson)
	return hex.EncodeToString(hash[:]), nil
}

// registerSlashCommands creates or overwrites /swiss for appID. It is skipped
// when lastHash matches the current command definition.
func registerSlashCommands(session *discordgo.Session, appID string,
	lastHash string) {

	cmd := swissCommand()
	hash, err := commandHash(cmd)
	if err != nil {
		logrus.Errorf("discordbot.reg: failed to marshal cmd: %v", err)
		return
	}
	if hash == lastHash {
		logrus.Debugf("discordbot.reg: %v is up to date", cmd.Name)
		return
	}

	cmds, err := session.ApplicationCommandBulkOverwrite(appID, "",
		[]*discordgo.ApplicationCommand{cmd})
	if err != nil {
		logrus.Errorf("discordbot.reg: failed to register %v: %v", cmd.Name, err)
		return
	}
	for _, c := range cmds {
		logrus.WithField("hash", hash).Infof("discordbot.reg: registered %v(cmdID:%v)",
			c.Name, c.ID)
	}
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	pubKeyBytes, err := hex.DecodeString(os.Getenv("DISCORD_PUBLIC_KEY"))
	if err != nil || len(pubKeyBytes) != ed25519.PublicKeySize {
		logrus.Fatalf("discordbot.main: DISCORD_PUBLIC_KEY must be a hex encoded ed25519 public key")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()

	location := os.Getenv("SWISSTD_STORE")
	if location == "" {
		location = "sqlite:swisstd.db"
	}
	s, err := store.Open(ctx, location)
	if err != nil {
		logrus.Fatalf("discordbot.main: %v", err)
	}

	if c, ok := s.(io.Closer); ok {
		defer c.Close()
	}

	token := os.Getenv("DISCORD_BOT_TOKEN")
	appID := os.Getenv("DISCORD_APP_ID")
	if token != "" && appID != "" {
		session, err := discordgo.New("Bot " + token)
		if err != nil {
			logrus.Fatalf("discordbot.main: failed to initialize discord client: %v",
				err)
		}
		go registerSlashCommands(session, appID,
			os.Getenv("DISCORD_CMD_HASH"))
	} else {
		logrus.Infof("discordbot.main: DISCORD_BOT_TOKEN or DISCORD_APP_ID unset; skipping command registration")
	}

	addr := os.Getenv("SWISSTD_ADDR")
	if addr == "" {
		addr = defaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           newBot(s, ed25519.PublicKey(pubKeyBytes)).router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logrus.Infof("discordbot.main: starting server on %v", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	logrus.Infof("discordbot.main: exiting")
}
