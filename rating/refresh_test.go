/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rating

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu      sync.Mutex
	calls   int
	ratings map[string]float64
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Rating(ctx context.Context, id string,
	cat Category) (float64, error) {

	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	r, ok := f.ratings[id]
	if !ok {
		return 0, ErrNotFound
	}
	return r, nil
}

func TestRefresh(t *testing.T) {
	p := &fakeProvider{ratings: make(map[string]float64)}
	var ids []string
	for i := 0; i < 40; i++ {
		id := fmt.Sprintf("player%d", i)
		ids = append(ids, id)
		if i%10 != 3 {
			p.ratings[id] = float64(1000 + i)
		}
	}

	got, err := Refresh(context.Background(), p, Blitz, ids,
		RefreshOptions{BatchSize: 15, Pause: -1})
	require.NoError(t, err)
	require.Equal(t, 40, p.calls)
	require.Len(t, got, 36)
	require.Equal(t, 1000.0, got["player0"])
	require.Equal(t, 1039.0, got["player39"])
	_, ok := got["player13"]
	require.False(t, ok)
}

func TestRefreshCancelled(t *testing.T) {
	p := &fakeProvider{ratings: map[string]float64{"a": 1, "b": 2}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Refresh(ctx, p, Blitz, []string{"a", "b"},
		RefreshOptions{BatchSize: 1})
	require.ErrorIs(t, err, context.Canceled)
}

// cancellingProvider cancels the refresh from inside its first lookup.
type cancellingProvider struct {
	cancel context.CancelFunc
}

func (c *cancellingProvider) Name() string { return "cancelling" }

func (c *cancellingProvider) Rating(ctx context.Context, id string,
	cat Category) (float64, error) {

	c.cancel()
	<-ctx.Done()
	return 0, ctx.Err()
}

func TestRefreshCancelledDuringBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got, err := Refresh(ctx, &cancellingProvider{cancel: cancel}, Rapid,
		[]string{"a", "b", "c"}, RefreshOptions{Pause: -1})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, got)
}

func TestRefreshEmpty(t *testing.T) {
	got, err := Refresh(context.Background(), &fakeProvider{}, Rapid, nil,
		RefreshOptions{})
	require.NoError(t, err)
	require.Empty(t, got)
}
