/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/mikeb26/swisstd/s3store"
	"github.com/mikeb26/swisstd/tournament"
	"github.com/stretchr/testify/require"
)

type lichessDraws struct{}

func (lichessDraws) GameResult(ctx context.Context, id string) (float64, float64, error) {
	return 0.5, 0.5, nil
}

func (lichessDraws) GameURL(id string) string {
	return "https://lichess.org/" + id
}

// runningEvent returns a snapshot with one closed and one open round.
func runningEvent(t *testing.T, name string, kind tournament.Kind) *tournament.Snapshot {
	cfg := tournament.Config{
		Name:        name,
		Kind:        kind,
		TimeControl: "10|5",
		Rounds:      4,
	}
	n := 5
	if kind == tournament.Team {
		cfg.TeamSize = 2
		n = 6
	}
	tour, err := tournament.New(cfg)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, tour.Enter(tournament.Entrant{
			Name:       fmt.Sprintf("Player %d", i+1),
			ExternalID: fmt.Sprintf("player%d", i+1),
			Rating:     float64(2000 - 50*i),
		}))
	}
	require.NoError(t, tour.Start())

	_, err = tour.NextRound()
	require.NoError(t, err)
	ctx := context.Background()
	if kind == tournament.Team {
		require.NoError(t, tour.ReportBoard(1, 1, 1, "1-0"))
		require.NoError(t, tour.ReportGameBoard(ctx, 1, 1, 2, lichessDraws{},
			"team0001"))
		require.NotEmpty(t, tour.Snapshot().Boards[1].URL)
	} else {
		require.NoError(t, tour.Report(1, 1, "1/2-1/2"))
		require.NoError(t, tour.ReportGame(ctx, 1, 2, lichessDraws{}, "solo0001"))
		require.NotEmpty(t, tour.Snapshot().Games[1].URL)
	}
	require.NoError(t, tour.CloseRound())
	_, err = tour.NextRound()
	require.NoError(t, err)

	return tour.Snapshot()
}

func testStore(t *testing.T, s tournament.Store) {
	ctx := context.Background()

	_, err := s.Load(ctx, "missing")
	require.ErrorIs(t, err, tournament.ErrNotFound)

	ids, err := s.List(ctx)
	require.NoError(t, err)
	require.Empty(t, ids)

	individual := runningEvent(t, "Spring Open", tournament.Individual)
	team := runningEvent(t, "Club League", tournament.Team)
	require.NoError(t, s.Save(ctx, individual))
	require.NoError(t, s.Save(ctx, team))

	for _, want := range []*tournament.Snapshot{individual, team} {
		got, err := s.Load(ctx, want.ID)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	// saving again replaces the previous state
	tour := tournament.FromSnapshot(individual.Clone())
	require.NoError(t, tour.Report(2, 1, "1-0"))
	require.NoError(t, tour.Save(ctx, s))
	got, err := tournament.Load(ctx, s, individual.ID)
	require.NoError(t, err)
	require.Equal(t, tour.Snapshot(), got.Snapshot())
	require.Len(t, got.Snapshot().Games, 4)

	ids, err = s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"club-league", "spring-open"}, ids)
}

func TestSQL(t *testing.T) {
	s, err := OpenSQL(":memory:")
	require.NoError(t, err)
	defer s.Close()
	testStore(t, s)
}

func TestSQLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swisstd.db")
	ctx := context.Background()

	s, err := OpenSQL(path)
	require.NoError(t, err)
	snap := runningEvent(t, "Spring Open", tournament.Individual)
	require.NoError(t, s.Save(ctx, snap))
	require.NoError(t, s.Close())

	s, err = OpenSQL(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Load(ctx, snap.ID)
	require.NoError(t, err)
	require.Equal(t, snap, got)
}

type memObjects struct {
	mu   sync.Mutex
	objs map[string][]byte
}

func (m *memObjects) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objs[key]
	if !ok {
		return nil, s3store.ErrNoSuchKey
	}
	return data, nil
}

func (m *memObjects) Put(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objs[key] = append([]byte(nil), data...)
	return nil
}

func (m *memObjects) List(ctx context.Context, dir string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.objs {
		if strings.HasPrefix(k, dir+"/") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func TestS3(t *testing.T) {
	objs := &memObjects{objs: map[string][]byte{
		"httpcache/0123abcd": []byte("cached response"),
	}}
	testStore(t, &S3{objects: objs})
	require.Contains(t, objs.objs, "tournaments/spring-open.json")
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "sqlite::memory:")
	require.NoError(t, err)
	require.IsType(t, &SQL{}, s)

	_, err = Open(ctx, "sqlite:")
	require.Error(t, err)
	_, err = Open(ctx, "postgres://localhost/swisstd")
	require.Error(t, err)
	_, err = Open(ctx, "s3://")
	require.Error(t, err)
}

func TestParseS3Location(t *testing.T) {
	cases := []struct {
		in, bucket, prefix string
	}{
		{"s3://club-bucket", "club-bucket", ""},
		{"s3://club-bucket/", "club-bucket", ""},
		{"s3://club-bucket/swisstd/prod", "club-bucket", "swisstd/prod"},
	}
	for _, c := range cases {
		bucket, prefix, err := parseS3Location(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.bucket, bucket, c.in)
		require.Equal(t, c.prefix, prefix, c.in)
	}
}
