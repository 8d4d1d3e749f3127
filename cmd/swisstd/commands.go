/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/mikeb26/swisstd/internal"
	"github.com/mikeb26/swisstd/rating"
	"github.com/mikeb26/swisstd/tournament"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// swisstd create
func Create() *cobra.Command {
	return &cobra.Command{
		Use:   "create <config.yaml>",
		Short: "Create a tournament from a YAML definition",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`create reads a tournament definition and opens it for
			registration. For example:

			    name: Spring Blitz
			    kind: individual        # or team
			    timeControl: "3|2"      # minutes|increment
			    rounds: 5
			    teamSize: 4             # team tournaments only
			    ratingSource: lichess   # lichess, uschess or none
			    startDate: 2026-04-01
			    registrationClose: 2026-03-31 18:00`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := tournament.LoadConfig(args[0])
			if err != nil {
				return err
			}
			t, err := tournament.New(cfg)
			if err != nil {
				return err
			}

			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore(s)
			_, err = s.Load(cmd.Context(), t.ID())
			if err == nil {
				return fmt.Errorf("tournament %v already exists", t.ID())
			} else if !errors.Is(err, tournament.ErrNotFound) {
				return err
			}

			if err := t.Save(cmd.Context(), s); err != nil {
				return err
			}
			fmt.Printf("Created %v (%v, %v, %d rounds)\n", t.ID(), cfg.Kind,
				cfg.Category, cfg.Rounds)
			return nil
		},
	}
}

// swisstd enter
func Enter() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enter <tournament> <name>",
		Short: "Register an entrant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			externalID, _ := cmd.Flags().GetString("account")
			r, _ := cmd.Flags().GetFloat64("rating")
			return update(cmd, args[0], func(ctx context.Context, t *tournament.Tournament) error {
				return t.Enter(tournament.Entrant{
					Name:       args[1],
					ExternalID: externalID,
					Rating:     r,
				})
			})
		},
	}
	cmd.Flags().StringP("account", "a", "", "Rating account (lichess username or USCF id); defaults to name")
	cmd.Flags().Float64P("rating", "r", 0, "Initial rating, used when ratings are not looked up")
	return cmd
}

// swisstd ratings
func Ratings() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratings <tournament>",
		Short: "Refresh entrant ratings from the rating source",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`ratings looks up every entrant's current rating for the
			tournament's time control category. Lookups run in batches
			with a pause between batches; an entrant whose lookup fails
			keeps their previous rating.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, _ := cmd.Flags().GetInt("batch")
			pause, _ := cmd.Flags().GetDuration("pause")

			return update(cmd, args[0], func(ctx context.Context, t *tournament.Tournament) error {
				cfg := t.Snapshot().Config
				if cfg.RatingSource == tournament.RatingNone {
					return fmt.Errorf("%v does not look up ratings", t.ID())
				}
				p, err := cfg.RatingProvider(
					internal.NewCachedHttpClient(ctx, internal.RatingCacheTTL))
				if err != nil {
					return err
				}

				s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				s.Suffix = fmt.Sprintf(" fetching ratings from %v", p.Name())
				s.Start()
				defer s.Stop()

				return t.UpdateRatings(ctx, p, rating.RefreshOptions{
					BatchSize: batch,
					Pause:     pause,
				})
			})
		},
	}
	cmd.Flags().Int("batch", rating.DefaultBatchSize, "Lookups per batch")
	cmd.Flags().Duration("pause", rating.DefaultBatchPause, "Pause between batches")
	return cmd
}

// swisstd start
func Start() *cobra.Command {
	return &cobra.Command{
		Use:   "start <tournament>",
		Short: "Close registration and seed the field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return update(cmd, args[0], func(ctx context.Context, t *tournament.Tournament) error {
				if err := t.Start(); err != nil {
					return err
				}
				fmt.Print(t.Snapshot().StandingsText())
				return nil
			})
		},
	}
}

// swisstd pair
func Pair() *cobra.Command {
	return &cobra.Command{
		Use:   "pair <tournament>",
		Short: "Pair the next round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return update(cmd, args[0], func(ctx context.Context, t *tournament.Tournament) error {
				round, err := t.NextRound()
				if err != nil {
					return err
				}
				fmt.Print(t.Snapshot().PairingsText(round.Number))
				return nil
			})
		},
	}
}

// swisstd report
func Report() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <tournament> <round> <board> [result]",
		Short: "Record a game result",
		Args:  cobra.RangeArgs(3, 4),
		Long: heredoc.Doc(`report records the result of a game in the open round.
			Results are written 1-0, 0-1 or 1/2-1/2.

			For team tournaments pass the match number with --match and
			the board within the match as <board>. With --lichess the
			result is read from the finished lichess game instead.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			round, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid round %q: %w", args[1], err)
			}
			board, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid board %q: %w", args[2], err)
			}
			match, _ := cmd.Flags().GetInt("match")
			gameID, _ := cmd.Flags().GetString("lichess")
			lichessURL, _ := cmd.Flags().GetString("lichess-url")

			if gameID == "" && len(args) != 4 {
				return fmt.Errorf("a result or --lichess <game id> is required")
			}

			return update(cmd, args[0], func(ctx context.Context, t *tournament.Tournament) error {
				src := rating.NewLichess(http.DefaultClient, lichessURL)
				switch {
				case gameID != "" && match > 0:
					return t.ReportGameBoard(ctx, round, match, board, src, gameID)
				case gameID != "":
					return t.ReportGame(ctx, round, board, src, gameID)
				case match > 0:
					return t.ReportBoard(round, match, board, args[3])
				default:
					return t.Report(round, board, args[3])
				}
			})
		},
	}
	cmd.Flags().IntP("match", "m", 0, "Match number (team tournaments)")
	cmd.Flags().StringP("lichess", "l", "", "Read the result from this lichess game id")
	cmd.Flags().String("lichess-url", rating.LichessURL, "Lichess base URL")
	_ = cmd.Flags().MarkHidden("lichess-url")
	return cmd
}

// swisstd close-round
func CloseRound() *cobra.Command {
	return &cobra.Command{
		Use:   "close-round <tournament>",
		Short: "Close the open round, scoring unreported games as forfeits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return update(cmd, args[0], func(ctx context.Context, t *tournament.Tournament) error {
				if err := t.CloseRound(); err != nil {
					return err
				}
				fmt.Print(t.Snapshot().StandingsText())
				return nil
			})
		},
	}
}

// swisstd close
func Close() *cobra.Command {
	return &cobra.Command{
		Use:   "close <tournament>",
		Short: "Finish the tournament and compute tie-breaks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return update(cmd, args[0], func(ctx context.Context, t *tournament.Tournament) error {
				if err := t.Close(); err != nil {
					return err
				}
				fmt.Print(t.Snapshot().StandingsText())
				return nil
			})
		},
	}
}

// swisstd pairings
func Pairings() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairings <tournament>",
		Short: "Show a round's pairings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := view(cmd, args[0])
			if err != nil {
				return err
			}
			round, _ := cmd.Flags().GetInt("round")
			if round == 0 {
				round = snap.CurrentRound
			}
			fmt.Print(snap.PairingsText(round))
			return nil
		},
	}
	cmd.Flags().IntP("round", "r", 0, "Round to show (default current)")
	return cmd
}

// swisstd standings
func Standings() *cobra.Command {
	return &cobra.Command{
		Use:   "standings <tournament>",
		Short: "Show current or final standings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := view(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Print(snap.StandingsText())
			return nil
		},
	}
}

// swisstd list
func List() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored tournaments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore(s)
			ids, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				snap, err := s.Load(cmd.Context(), id)
				if err != nil {
					logrus.Warnf("swisstd.list: %v: %v", id, err)
					continue
				}
				fmt.Printf("%-24s  %-12s  round %d/%d\n", id, snap.State,
					snap.CurrentRound, snap.Config.Rounds)
			}
			return nil
		},
	}
}
