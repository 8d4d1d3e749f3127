/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/adrg/xdg"
	"github.com/mikeb26/swisstd/store"
	"github.com/mikeb26/swisstd/tournament"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "v0.1.0"

// defaultStore is a SQLite database under the XDG data directory, unless
// SWISSTD_STORE names another location.
func defaultStore() string {
	if loc := os.Getenv("SWISSTD_STORE"); loc != "" {
		return loc
	}
	path, err := xdg.DataFile("swisstd/swisstd.db")
	if err != nil {
		logrus.Debugf("swisstd: cannot create data dir: %v", err)
		return "sqlite:swisstd.db"
	}
	return "sqlite:" + path
}

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "swisstd",
		Short: "Run Swiss-system chess tournaments",
		Long: heredoc.Doc(`swisstd directs Swiss-system chess tournaments for individuals
			or teams: registration, rating lookups, seeding, pairing each
			round, result entry and Sonneborn-Berger tie-breaks.

			Tournaments are kept in a store, either a SQLite database
			(sqlite:<path>) or JSON snapshots in S3 (s3://<bucket>[/<prefix>]).`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},
	}

	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().StringP("store", "s", defaultStore(),
		"Tournament store: sqlite:<path> or s3://<bucket>[/<prefix>]")

	root.SetVersionTemplate(version + "\n")
	root.Version = version

	root.AddCommand(Create())
	root.AddCommand(Enter())
	root.AddCommand(Ratings())
	root.AddCommand(Start())
	root.AddCommand(Pair())
	root.AddCommand(Report())
	root.AddCommand(CloseRound())
	root.AddCommand(Close())
	root.AddCommand(Pairings())
	root.AddCommand(Standings())
	root.AddCommand(List())

	return root
}

func openStore(cmd *cobra.Command) (tournament.Store, error) {
	loc, err := cmd.Flags().GetString("store")
	if err != nil {
		return nil, err
	}
	logrus.Tracef("swisstd: using store %v", loc)
	return store.Open(cmd.Context(), loc)
}

// closeStore releases stores that hold a connection, such as SQLite.
func closeStore(s tournament.Store) {
	if c, ok := s.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logrus.Debugf("swisstd: closing store: %v", err)
		}
	}
}

// update loads tournament id, applies fn and saves the result if fn
// succeeded.
func update(cmd *cobra.Command, id string,
	fn func(ctx context.Context, t *tournament.Tournament) error) error {

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(s)
	ctx := cmd.Context()
	t, err := tournament.Load(ctx, s, id)
	if err != nil {
		return err
	}
	if err := fn(ctx, t); err != nil {
		return err
	}
	return t.Save(ctx, s)
}

func view(cmd *cobra.Command, id string) (*tournament.Snapshot, error) {
	s, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	defer closeStore(s)
	snap, err := s.Load(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", id, err)
	}
	return snap, nil
}
