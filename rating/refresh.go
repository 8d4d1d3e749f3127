/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rating

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultBatchSize  = 15
	DefaultBatchPause = 4 * time.Second
)

// RefreshOptions controls how Refresh spreads lookups over time. Zero
// values select the defaults; a negative Pause disables pausing.
type RefreshOptions struct {
	BatchSize int
	Pause     time.Duration
}

// Refresh looks up the rating of every account in ids, BatchSize at a time,
// sleeping Pause between batches so the provider is not flooded. Lookups in
// a batch run concurrently. Accounts whose lookup fails are logged and left
// out of the returned map so callers keep the rating they already have.
// The only error returned is ctx's.
func Refresh(ctx context.Context, p Provider, cat Category, ids []string,
	opts RefreshOptions) (map[string]float64, error) {

	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Pause < 0 {
		opts.Pause = 0
	} else if opts.Pause == 0 {
		opts.Pause = DefaultBatchPause
	}

	var mu sync.Mutex
	ratings := make(map[string]float64, len(ids))

	for start := 0; start < len(ids); start += opts.BatchSize {
		if start > 0 {
			select {
			case <-ctx.Done():
				return ratings, ctx.Err()
			case <-time.After(opts.Pause):
			}
		}

		end := start + opts.BatchSize
		if end > len(ids) {
			end = len(ids)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, id := range ids[start:end] {
			id := id
			g.Go(func() error {
				r, err := p.Rating(gctx, id, cat)
				if err != nil {
					if ctxErr := ctx.Err(); ctxErr != nil {
						return ctxErr
					}
					logrus.WithFields(logrus.Fields{
						"provider": p.Name(),
						"account":  id,
					}).Warnf("rating.refresh: keeping previous rating: %v", err)
					return nil
				}
				mu.Lock()
				ratings[id] = r
				mu.Unlock()
				return nil
			})
		}
		// only cancellation fails a batch; lookup errors were logged above
		if err := g.Wait(); err != nil {
			return ratings, err
		}
		if err := ctx.Err(); err != nil {
			return ratings, err
		}
	}

	return ratings, nil
}
