/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rating

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const lichessUserJSON = `{
  "id": "someone",
  "username": "Someone",
  "perfs": {
    "bullet": {"games": 120, "rating": 1712, "rd": 60, "prog": 4},
    "blitz": {"games": 300, "rating": 1850, "rd": 45, "prog": -3},
    "ultraBullet": {"games": 3, "rating": 1401, "rd": 200, "prog": 0, "prov": true}
  }
}`

const lichessPGN = `[Event "Rated Blitz game"]
[Site "https://lichess.org/abcd1234"]
[White "someone"]
[Black "other"]
[Result "1/2-1/2"]

1. e4 e5 2. Nf3 Nc6 1/2-1/2
`

func newLichessServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user/someone", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(lichessUserJSON))
	})
	mux.HandleFunc("/game/export/abcd1234", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(lichessPGN))
	})
	mux.HandleFunc("/game/export/ongoing1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[Result \"*\"]\n\n1. d4 *\n"))
	})
	mux.HandleFunc("/api/user/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLichessRating(t *testing.T) {
	srv := newLichessServer(t)
	l := NewLichess(srv.Client(), srv.URL)
	ctx := context.Background()

	cases := []struct {
		cat  Category
		want float64
	}{
		{Blitz, 1850},
		{Bullet, 1712},
		{UltraBullet, 1401},
		{Classical, 0},
	}
	for _, c := range cases {
		r, err := l.Rating(ctx, "someone", c.cat)
		require.NoError(t, err, c.cat)
		require.Equal(t, c.want, r, c.cat)
	}

	_, err := l.Rating(ctx, "nobody", Blitz)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = l.Rating(ctx, "broken", Blitz)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestLichessGameResult(t *testing.T) {
	srv := newLichessServer(t)
	l := NewLichess(srv.Client(), srv.URL)
	ctx := context.Background()

	w, b, err := l.GameResult(ctx, "abcd1234")
	require.NoError(t, err)
	require.Equal(t, 0.5, w)
	require.Equal(t, 0.5, b)

	_, _, err = l.GameResult(ctx, "ongoing1")
	require.ErrorIs(t, err, ErrGameInProgress)

	_, _, err = l.GameResult(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.Equal(t, srv.URL+"/abcd1234", l.GameURL("abcd1234"))
}
