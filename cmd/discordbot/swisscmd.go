/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/mikeb26/swisstd/tournament"
)

type SwissSubCommand string

const (
	SwissHelpCmd      SwissSubCommand = "help"
	SwissListCmd      SwissSubCommand = "list"
	SwissPairingsCmd  SwissSubCommand = "pairings"
	SwissStandingsCmd SwissSubCommand = "standings"
)

func (b *bot) swissCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	subCmdHdlrs := map[SwissSubCommand]CmdHandler{
		SwissHelpCmd:      swissHelpCmdHandler,
		SwissListCmd:      b.swissListCmdHandler,
		SwissPairingsCmd:  b.swissPairingsCmdHandler,
		SwissStandingsCmd: b.swissStandingsCmdHandler,
	}

	data := inter.ApplicationCommandData()
	hdlr := swissHelpCmdHandler
	if len(data.Options) > 0 {
		if h, ok := subCmdHdlrs[SwissSubCommand(data.Options[0].Name)]; ok {
			hdlr = h
		}
	}
	return hdlr(ctx, inter)
}

func newResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// subOptions holds the options passed to a /swiss subcommand.
type subOptions struct {
	tournament string
	round      int64
	broadcast  bool
}

func parseSubOptions(inter *discordgo.Interaction) subOptions {
	var ret subOptions
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return ret
	}
	for _, opt := range data.Options[0].Options {
		switch opt.Name {
		case "tournament":
			ret.tournament = strings.TrimSpace(opt.StringValue())
		case "round":
			ret.round = opt.IntValue()
		case "broadcast":
			ret.broadcast = opt.BoolValue()
		}
	}
	return ret
}

//go:embed help.md
var helpText string

func swissHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

func (b *bot) swissListCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := parseSubOptions(inter)

	ids, err := b.store.List(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error listing tournaments: %v", err)
		logrus.Errorf("discordbot.list: %v", resp.Data.Content)
		return resp
	}
	if len(ids) == 0 {
		resp.Data.Content = "No tournaments found."
		return resp
	}

	var sb strings.Builder
	for _, id := range ids {
		snap, err := b.store.Load(ctx, id)
		if err != nil {
			logrus.Warnf("discordbot.list: skipping %v: %v", id, err)
			continue
		}
		sb.WriteString(fmt.Sprintf("- %v (id:%v) %v, round %v of %v\n",
			snap.Config.Name, snap.ID, snap.State, snap.CurrentRound,
			snap.Config.Rounds))
	}
	sb.WriteString("\nRun /swiss pairings <id> or /swiss standings <id> for details\n")
	resp.Data.Content = truncateContent(sb.String())

	if opts.broadcast {
		resp.Data.Flags = 0
	}
	return resp
}

func (b *bot) loadSnapshot(ctx context.Context, op string,
	opts subOptions) (*tournament.Snapshot, string) {

	if opts.tournament == "" {
		return nil, "Please provide a tournament id."
	}
	snap, err := b.store.Load(ctx, opts.tournament)
	if errors.Is(err, tournament.ErrNotFound) {
		return nil, fmt.Sprintf("Tournament %v not found; try /swiss list",
			opts.tournament)
	} else if err != nil {
		logrus.WithField("tournament", opts.tournament).Errorf("discordbot.%v: %v",
			op, err)
		return nil, fmt.Sprintf("Error loading tournament %v: %v",
			opts.tournament, err)
	}
	return snap, ""
}

func (b *bot) swissPairingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := parseSubOptions(inter)

	snap, msg := b.loadSnapshot(ctx, "pairings", opts)
	if snap == nil {
		resp.Data.Content = msg
		return resp
	}

	round := int(opts.round)
	if round <= 0 {
		round = snap.CurrentRound
	}
	if round <= 0 {
		resp.Data.Content = fmt.Sprintf("%v has not been paired yet.",
			snap.Config.Name)
		return resp
	}

	resp.Data.Content = fmt.Sprintf("```\n%v```",
		truncateContent(snap.PairingsText(round)))
	if opts.broadcast {
		resp.Data.Flags = 0
	}
	return resp
}

func (b *bot) swissStandingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := parseSubOptions(inter)

	snap, msg := b.loadSnapshot(ctx, "standings", opts)
	if snap == nil {
		resp.Data.Content = msg
		return resp
	}

	resp.Data.Content = fmt.Sprintf("```\n%v```",
		truncateContent(snap.StandingsText()))
	if opts.broadcast {
		resp.Data.Flags = 0
	}
	return resp
}

func truncateContent(s string) string {
	const MsgLimit = 1988 // room for the code fence
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
