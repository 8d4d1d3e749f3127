/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mikeb26/swisstd/rating"
	"github.com/mikeb26/swisstd/swiss"
	"github.com/stretchr/testify/require"
)

func individualConfig(rounds int) Config {
	return Config{
		Name:         "Tuesday Blitz",
		TimeControl:  "3|2",
		Rounds:       rounds,
		RatingSource: RatingNone,
	}
}

func newIndividual(t *testing.T, n int, rounds int) *Tournament {
	tour, err := New(individualConfig(rounds))
	require.NoError(t, err)
	for _, e := range entrants(n) {
		require.NoError(t, tour.Enter(e))
	}
	return tour
}

func idsOf(cs []swiss.Competitor) []swiss.CompetitorID {
	ret := make([]swiss.CompetitorID, len(cs))
	for i, c := range cs {
		ret[i] = c.ID
	}
	return ret
}

func TestEnter(t *testing.T) {
	tour, err := New(individualConfig(3))
	require.NoError(t, err)
	require.Equal(t, "tuesday-blitz", tour.ID())

	require.NoError(t, tour.Enter(Entrant{Name: "Alice", ExternalID: "alice64"}))
	err = tour.Enter(Entrant{Name: "Alice Again", ExternalID: " ALICE64 "})
	require.ErrorIs(t, err, ErrDuplicateEntrant)
	require.ErrorIs(t, tour.Enter(Entrant{Name: "  "}), ErrInvalidConfig)

	require.NoError(t, tour.Enter(Entrant{Name: "Bob"}))
	require.ErrorIs(t, tour.Enter(Entrant{Name: "bob"}), ErrDuplicateEntrant)
	require.Len(t, tour.Snapshot().Entrants, 2)
}

func TestEnterAfterRegistrationCloses(t *testing.T) {
	cfg := individualConfig(3)
	cfg.RegistrationClose = time.Date(2026, 3, 31, 18, 0, 0, 0, time.UTC)
	tour, err := New(cfg)
	require.NoError(t, err)

	tour.now = func() time.Time { return cfg.RegistrationClose.Add(-time.Minute) }
	require.NoError(t, tour.Enter(Entrant{Name: "early"}))

	tour.now = func() time.Time { return cfg.RegistrationClose.Add(time.Minute) }
	require.ErrorIs(t, tour.Enter(Entrant{Name: "late"}), ErrRegistrationClosed)
}

type staticProvider map[string]float64

func (p staticProvider) Name() string { return "static" }

func (p staticProvider) Rating(ctx context.Context, id string,
	cat rating.Category) (float64, error) {

	r, ok := p[id]
	if !ok {
		return 0, rating.ErrNotFound
	}
	return r, nil
}

func TestUpdateRatings(t *testing.T) {
	tour, err := New(individualConfig(3))
	require.NoError(t, err)
	require.NoError(t, tour.Enter(Entrant{Name: "Alice", ExternalID: "alice64", Rating: 1000}))
	require.NoError(t, tour.Enter(Entrant{Name: "bob", Rating: 1100}))
	require.NoError(t, tour.Enter(Entrant{Name: "Carol", ExternalID: "gone", Rating: 1200}))

	p := staticProvider{"alice64": 1850, "bob": 1500}
	require.NoError(t, tour.UpdateRatings(context.Background(), p,
		rating.RefreshOptions{Pause: -1}))

	snap := tour.Snapshot()
	require.Equal(t, 1850.0, snap.Entrants[0].Rating)
	require.Equal(t, 1500.0, snap.Entrants[1].Rating)
	require.Equal(t, 1200.0, snap.Entrants[2].Rating)

	require.NoError(t, tour.Start())
	err = tour.UpdateRatings(context.Background(), p, rating.RefreshOptions{Pause: -1})
	require.ErrorIs(t, err, ErrWrongState)
}

func TestStartNeedsTwo(t *testing.T) {
	tour := newIndividual(t, 1, 3)
	require.ErrorIs(t, tour.Start(), ErrTooFewCompetitors)
	require.Equal(t, Registration, tour.Snapshot().State)
}

func TestFirstRoundAndClose(t *testing.T) {
	tour := newIndividual(t, 5, 3)
	require.NoError(t, tour.Start())
	require.ErrorIs(t, tour.Enter(Entrant{Name: "latecomer"}), ErrWrongState)

	snap := tour.Snapshot()
	require.Equal(t, Running, snap.State)
	require.Equal(t, []swiss.CompetitorID{1, 4, 2, 5, 3}, idsOf(snap.Competitors))

	round, err := tour.NextRound()
	require.NoError(t, err)
	require.Equal(t, 1, round.Number)
	require.Equal(t, []swiss.Pairing{
		{Board: 1, White: 1, Black: 4},
		{Board: 2, White: 2, Black: 5},
		{Board: 0, White: 3, Black: swiss.ByeID, IsByePairing: true},
	}, round.Pairings)

	_, err = tour.NextRound()
	require.ErrorIs(t, err, ErrRoundOpen)

	require.NoError(t, tour.Report(1, 1, "1-0"))
	require.ErrorIs(t, tour.Report(2, 1, "1-0"), ErrNoRoundOpen)
	require.ErrorIs(t, tour.Report(1, 7, "1-0"), ErrNoSuchGame)
	require.ErrorIs(t, tour.Report(1, 2, "3-0"), swiss.ErrInvalidInput)
	require.ErrorIs(t, tour.ReportBoard(1, 1, 1, "1-0"), ErrWrongTournamentKind)

	require.NoError(t, tour.CloseRound())
	require.ErrorIs(t, tour.CloseRound(), ErrNoRoundOpen)

	snap = tour.Snapshot()
	require.False(t, snap.RoundOpen)
	require.Equal(t, []swiss.CompetitorID{1, 3, 4, 2, 5}, idsOf(snap.Competitors))
	for i, c := range snap.Competitors {
		require.Equal(t, i+1, c.Place)
	}
	require.Equal(t, 1.0, snap.Competitors[0].Score)
	require.Equal(t, 1.0, snap.Competitors[1].Score)

	forfeit := snap.Games[1]
	require.True(t, forfeit.Reported)
	require.True(t, forfeit.Forfeit)
	require.Zero(t, forfeit.WhitePoints)
	require.Zero(t, forfeit.BlackPoints)
}

func TestFullEvent(t *testing.T) {
	tour := newIndividual(t, 6, 3)
	require.ErrorIs(t, tour.Close(), ErrWrongState)
	require.NoError(t, tour.Start())
	require.ErrorIs(t, tour.Close(), ErrWrongState)

	for r := 1; r <= 3; r++ {
		round, err := tour.NextRound()
		require.NoError(t, err)
		for _, p := range round.Pairings {
			result := "1-0"
			if p.Board%2 == 0 {
				result = "1/2-1/2"
			}
			require.NoError(t, tour.Report(r, p.Board, result))
		}
		if r < 3 {
			require.NoError(t, tour.CloseRound())
		}
	}

	_, err := tour.NextRound()
	require.ErrorIs(t, err, ErrRoundOpen)

	// closing with the last round open closes it first
	require.NoError(t, tour.Close())
	snap := tour.Snapshot()
	require.Equal(t, Closed, snap.State)
	require.False(t, snap.RoundOpen)
	require.Len(t, snap.Pairings, 3)
	require.Len(t, snap.Games, 9)

	total := 0.0
	for i, c := range snap.Competitors {
		require.Equal(t, i+1, c.Place)
		require.Len(t, c.PrevOpponents, 3)
		total += c.Score
		if i > 0 {
			prev := snap.Competitors[i-1]
			require.True(t, prev.Score > c.Score ||
				(prev.Score == c.Score && prev.SonnebornBerger >= c.SonnebornBerger))
		}
	}
	require.Equal(t, 9.0, total)

	_, err = tour.NextRound()
	require.ErrorIs(t, err, ErrWrongState)
}

func TestAllRoundsPlayed(t *testing.T) {
	tour := newIndividual(t, 4, 1)
	require.NoError(t, tour.Start())
	_, err := tour.NextRound()
	require.NoError(t, err)
	require.NoError(t, tour.CloseRound())
	_, err = tour.NextRound()
	require.ErrorIs(t, err, ErrAllRoundsPlayed)
}

func TestInfeasibleRoundLeavesStateAlone(t *testing.T) {
	tour := newIndividual(t, 2, 2)
	require.NoError(t, tour.Start())
	_, err := tour.NextRound()
	require.NoError(t, err)
	require.NoError(t, tour.CloseRound())
	before := tour.Snapshot()

	_, err = tour.NextRound()
	require.ErrorIs(t, err, swiss.ErrPairingInfeasible)
	require.Equal(t, before, tour.Snapshot())
}

type fakeGames map[string][2]float64

func (f fakeGames) GameResult(ctx context.Context, id string) (float64, float64, error) {
	r, ok := f[id]
	if !ok {
		return 0, 0, errors.New("no such game")
	}
	return r[0], r[1], nil
}

func (f fakeGames) GameURL(id string) string {
	return "https://lichess.org/" + id
}

func TestReportGame(t *testing.T) {
	tour := newIndividual(t, 4, 3)
	require.NoError(t, tour.Start())
	_, err := tour.NextRound()
	require.NoError(t, err)

	src := fakeGames{"abcd1234": {0, 1}}
	ctx := context.Background()
	require.NoError(t, tour.ReportGame(ctx, 1, 2, src, "abcd1234"))
	require.Error(t, tour.ReportGame(ctx, 1, 1, src, "zzzz"))

	g := tour.Snapshot().Games[1]
	require.Equal(t, 2, g.Board)
	require.True(t, g.Reported)
	require.Equal(t, 1.0, g.BlackPoints)
	require.Equal(t, "https://lichess.org/abcd1234", g.URL)

	require.ErrorIs(t, tour.ReportGameBoard(ctx, 1, 1, 1, src, "abcd1234"),
		ErrWrongTournamentKind)

	// a manual report replaces the link
	require.NoError(t, tour.Report(1, 2, "1-0"))
	require.Empty(t, tour.Snapshot().Games[1].URL)
}

func TestReportGameBoard(t *testing.T) {
	tour, err := New(Config{Name: "League", Kind: Team, TimeControl: "45|15",
		Rounds: 1, TeamSize: 2})
	require.NoError(t, err)
	for _, e := range entrants(4) {
		require.NoError(t, tour.Enter(e))
	}
	require.NoError(t, tour.Start())
	_, err = tour.NextRound()
	require.NoError(t, err)

	ctx := context.Background()
	src := fakeGames{"abcd1234": {1, 0}, "efgh5678": {0.5, 0.5}}
	require.ErrorIs(t, tour.ReportGame(ctx, 1, 1, src, "abcd1234"),
		ErrWrongTournamentKind)
	require.NoError(t, tour.ReportGameBoard(ctx, 1, 1, 1, src, "abcd1234"))
	require.NoError(t, tour.ReportGameBoard(ctx, 1, 1, 2, src, "efgh5678"))
	require.ErrorIs(t, tour.ReportGameBoard(ctx, 1, 1, 3, src, "abcd1234"),
		ErrNoSuchGame)
	require.Error(t, tour.ReportGameBoard(ctx, 1, 1, 1, src, "zzzz"))

	snap := tour.Snapshot()
	require.Equal(t, "https://lichess.org/abcd1234", snap.Boards[0].URL)
	require.Equal(t, "https://lichess.org/efgh5678", snap.Boards[1].URL)
	require.True(t, snap.Games[0].Reported)
	require.Equal(t, 1.5, snap.Games[0].WhitePoints)
	require.Equal(t, 0.5, snap.Games[0].BlackPoints)
	require.Contains(t, snap.PairingsText(1), "https://lichess.org/efgh5678")
}

func TestTeamEvent(t *testing.T) {
	cfg := Config{
		Name:        "Club League",
		Kind:        Team,
		TimeControl: "45|15",
		Rounds:      2,
		TeamSize:    2,
	}
	tour, err := New(cfg)
	require.NoError(t, err)
	for _, e := range entrants(6) {
		e.Rating = 1500
		require.NoError(t, tour.Enter(e))
	}
	require.NoError(t, tour.Start())

	snap := tour.Snapshot()
	require.Len(t, snap.Competitors, 3)
	require.Equal(t, []string{"p1", "p6"}, snap.Competitors[0].Members)

	round, err := tour.NextRound()
	require.NoError(t, err)
	require.Equal(t, []swiss.Pairing{
		{Board: 1, White: 1, Black: 2},
		{Board: 0, White: 3, Black: swiss.ByeID, IsByePairing: true},
	}, round.Pairings)

	snap = tour.Snapshot()
	require.Len(t, snap.Boards, 2)
	require.Equal(t, "p1", snap.Boards[0].WhitePlayer)
	require.Equal(t, "p5", snap.Boards[1].WhitePlayer)

	require.ErrorIs(t, tour.Report(1, 1, "1-0"), ErrWrongTournamentKind)
	require.NoError(t, tour.ReportBoard(1, 1, 1, "1-0"))
	require.ErrorIs(t, tour.ReportBoard(1, 1, 3, "1-0"), ErrNoSuchGame)
	require.NoError(t, tour.ReportBoard(1, 1, 2, "1/2-1/2"))

	match := tour.Snapshot().Games[0]
	require.True(t, match.Reported)
	require.Equal(t, 1.5, match.WhitePoints)
	require.Equal(t, 0.5, match.BlackPoints)

	require.NoError(t, tour.CloseRound())
	snap = tour.Snapshot()
	require.Equal(t, []swiss.CompetitorID{3, 1, 2}, idsOf(snap.Competitors))
	require.Equal(t, 2.0, snap.Competitors[0].Score)
	require.Equal(t, 1.5, snap.Competitors[1].Score)
	require.Equal(t, 0.5, snap.Competitors[2].Score)
}
