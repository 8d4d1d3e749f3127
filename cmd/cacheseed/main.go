/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/mikeb26/swisstd/internal"
	"github.com/mikeb26/swisstd/rating"
	"github.com/mikeb26/swisstd/store"
	"github.com/mikeb26/swisstd/tournament"
)

// this program exists just to seed the rating http cache for entrants of
// tournaments that have not started yet

type providerFunc func(cfg *tournament.Config) (rating.Provider, error)

// seed looks up every entrant of every tournament still in registration so
// the responses land in the shared http cache. It returns the number of
// ratings fetched.
func seed(ctx context.Context, s tournament.Store, providerFor providerFunc,
	opts rating.RefreshOptions) (int, error) {

	ids, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	seeded := 0
	for _, id := range ids {
		log := logrus.WithField("tournament", id)
		snap, err := s.Load(ctx, id)
		if err != nil {
			// best effort
			log.Warnf("cacheseed: %v", err)
			continue
		}
		if snap.State != tournament.Registration ||
			snap.Config.RatingSource == tournament.RatingNone {
			continue
		}
		p, err := providerFor(&snap.Config)
		if err != nil {
			log.Warnf("cacheseed: %v", err)
			continue
		}

		accounts := make([]string, len(snap.Entrants))
		for i := range snap.Entrants {
			accounts[i] = snap.Entrants[i].Account()
		}
		ratings, err := rating.Refresh(ctx, p, snap.Config.Category, accounts,
			opts)
		if err != nil {
			return seeded, err
		}
		seeded += len(ratings)
		log.Infof("cacheseed: seeded %d of %d %v ratings", len(ratings),
			len(accounts), p.Name())
	}

	return seeded, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	location := os.Getenv("SWISSTD_STORE")
	if location == "" {
		location = "sqlite:swisstd.db"
	}
	s, err := store.Open(ctx, location)
	if err != nil {
		logrus.Fatalf("cacheseed: %v", err)
	}

	if c, ok := s.(io.Closer); ok {
		defer c.Close()
	}

	client := internal.NewCachedHttpClient(ctx, internal.RatingCacheTTL)
	providerFor := func(cfg *tournament.Config) (rating.Provider, error) {
		return cfg.RatingProvider(client)
	}
	if _, err := seed(ctx, s, providerFor, rating.RefreshOptions{}); err != nil {
		logrus.Fatalf("cacheseed: %v", err)
	}
}
