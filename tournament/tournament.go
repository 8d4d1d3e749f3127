/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mikeb26/swisstd/internal"
	"github.com/mikeb26/swisstd/rating"
	"github.com/mikeb26/swisstd/swiss"
	"github.com/sirupsen/logrus"
)

// Tournament drives one event from registration to final standings. All
// methods are safe for concurrent use; operations are serialized.
type Tournament struct {
	mu   sync.Mutex
	snap *Snapshot
	now  func() time.Time
}

// GameSource fetches the result of an online game.
type GameSource interface {
	GameResult(ctx context.Context, gameID string) (white float64, black float64, err error)
	GameURL(gameID string) string
}

// New creates a tournament in the registration state.
func New(cfg Config) (*Tournament, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return FromSnapshot(&Snapshot{
		ID:     cfg.ID(),
		Config: cfg,
		State:  Registration,
	}), nil
}

// FromSnapshot resumes a tournament from persisted state. The snapshot is
// owned by the returned Tournament.
func FromSnapshot(s *Snapshot) *Tournament {
	return &Tournament{snap: s, now: time.Now}
}

func (t *Tournament) log() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"tournament": t.snap.ID,
		"round":      t.snap.CurrentRound,
	})
}

func (t *Tournament) ID() string {
	return t.snap.ID
}

// Snapshot returns a copy of the tournament's current state.
func (t *Tournament) Snapshot() *Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.snap.Clone()
}

func (t *Tournament) requireState(want State) error {
	if t.snap.State != want {
		return fmt.Errorf("%w: tournament is %v, need %v", ErrWrongState,
			t.snap.State, want)
	}
	return nil
}

// Enter registers an entrant.
func (t *Tournament) Enter(e Entrant) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.requireState(Registration); err != nil {
		return fmt.Errorf("tournament.enter: %w", err)
	}
	closes := t.snap.Config.RegistrationClose
	if !closes.IsZero() && t.now().After(closes) {
		return fmt.Errorf("tournament.enter: %w", ErrRegistrationClosed)
	}

	e.Name = strings.TrimSpace(e.Name)
	e.ExternalID = strings.TrimSpace(e.ExternalID)
	if e.Name == "" {
		return fmt.Errorf("tournament.enter: name is required: %w", ErrInvalidConfig)
	}
	for i := range t.snap.Entrants {
		if internal.NormalizeName(t.snap.Entrants[i].Account()) ==
			internal.NormalizeName(e.Account()) {
			return fmt.Errorf("tournament.enter: %v: %w", e.Name, ErrDuplicateEntrant)
		}
	}

	t.snap.Entrants = append(t.snap.Entrants, e)
	t.log().Infof("tournament.enter: %v entered (%d entrants)", e.Name,
		len(t.snap.Entrants))
	return nil
}

// UpdateRatings refreshes every entrant's rating from p in the tournament's
// category. Entrants whose lookup fails keep their current rating.
func (t *Tournament) UpdateRatings(ctx context.Context, p rating.Provider,
	opts rating.RefreshOptions) error {

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.requireState(Registration); err != nil {
		return fmt.Errorf("tournament.updateRatings: %w", err)
	}

	accounts := make([]string, len(t.snap.Entrants))
	for i := range t.snap.Entrants {
		accounts[i] = t.snap.Entrants[i].Account()
	}

	ratings, err := rating.Refresh(ctx, p, t.snap.Config.Category, accounts, opts)
	if err != nil {
		return fmt.Errorf("tournament.updateRatings: %w", err)
	}

	for i := range t.snap.Entrants {
		if r, ok := ratings[accounts[i]]; ok {
			t.snap.Entrants[i].Rating = r
		}
	}
	t.log().Infof("tournament.updateRatings: updated %d of %d ratings from %v",
		len(ratings), len(accounts), p.Name())
	return nil
}

// Start closes registration, builds the competitor list (drafting teams for
// team tournaments) and assigns seeds.
func (t *Tournament) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.requireState(Registration); err != nil {
		return fmt.Errorf("tournament.start: %w", err)
	}

	var competitors []swiss.Competitor
	switch t.snap.Config.Kind {
	case Team:
		var err error
		competitors, err = FormTeams(t.snap.Entrants, t.snap.Config.TeamSize)
		if err != nil {
			return fmt.Errorf("tournament.start: %w", err)
		}
	default:
		if len(t.snap.Entrants) < 2 {
			return fmt.Errorf("tournament.start: %d entrants: %w",
				len(t.snap.Entrants), ErrTooFewCompetitors)
		}
		for i, e := range t.snap.Entrants {
			competitors = append(competitors, swiss.Competitor{
				ID:         swiss.CompetitorID(i + 1),
				Name:       e.Name,
				ExternalID: e.ExternalID,
				Rating:     e.Rating,
			})
		}
	}

	t.snap.Competitors = swiss.AssignSeeds(competitors)
	t.snap.State = Running
	t.log().Infof("tournament.start: seeded %d competitors", len(competitors))
	return nil
}

// NextRound pairs the next round. Competitors are passed to the pairing
// engine in current place order.
func (t *Tournament) NextRound() (*swiss.Round, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.requireState(Running); err != nil {
		return nil, fmt.Errorf("tournament.nextRound: %w", err)
	}
	if t.snap.RoundOpen {
		return nil, fmt.Errorf("tournament.nextRound: round %d: %w",
			t.snap.CurrentRound, ErrRoundOpen)
	}
	if t.snap.CurrentRound >= t.snap.Config.Rounds {
		return nil, fmt.Errorf("tournament.nextRound: %w", ErrAllRoundsPlayed)
	}

	next := t.snap.CurrentRound + 1
	round, err := swiss.GeneratePairings(t.snap.Competitors, next)
	if err != nil {
		t.log().Errorf("tournament.nextRound: pairing round %d failed: %v", next, err)
		return nil, fmt.Errorf("tournament.nextRound: %w", err)
	}

	t.snap.Competitors = round.Competitors
	t.snap.CurrentRound = next
	t.snap.RoundOpen = true
	t.snap.Pairings = append(t.snap.Pairings, round.Pairings)

	for _, p := range round.Pairings {
		if p.IsByePairing {
			continue
		}
		t.snap.Games = append(t.snap.Games, swiss.GameResult{
			Round: next,
			Board: p.Board,
			White: p.White,
			Black: p.Black,
		})
		if t.snap.Config.Kind == Team {
			white, _ := t.snap.Competitor(p.White)
			black, _ := t.snap.Competitor(p.Black)
			t.snap.Boards = append(t.snap.Boards,
				matchBoards(next, p, white, black, t.snap.Config.TeamSize)...)
		}
	}

	t.log().Infof("tournament.nextRound: paired %d boards", len(round.Pairings))
	return round, nil
}

func (t *Tournament) requireOpenRound(round int) error {
	if err := t.requireState(Running); err != nil {
		return err
	}
	if !t.snap.RoundOpen || round != t.snap.CurrentRound {
		return fmt.Errorf("round %d: %w", round, ErrNoRoundOpen)
	}
	return nil
}

func (t *Tournament) game(round, board int) (*swiss.GameResult, error) {
	for i := range t.snap.Games {
		g := &t.snap.Games[i]
		if g.Round == round && g.Board == board {
			return g, nil
		}
	}
	return nil, fmt.Errorf("round %d board %d: %w", round, board, ErrNoSuchGame)
}

// Report records the result of an individual game in the open round, e.g.
// "1-0", "0-1" or "1/2-1/2". Reporting again overwrites the result.
func (t *Tournament) Report(round, board int, result string) error {
	white, black, err := swiss.ParseResult(result)
	if err != nil {
		return fmt.Errorf("tournament.report: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.reportLocked(round, board, white, black, "")
}

func (t *Tournament) reportLocked(round, board int, white, black float64,
	url string) error {

	if t.snap.Config.Kind == Team {
		return fmt.Errorf("tournament.report: %w", ErrWrongTournamentKind)
	}
	if err := t.requireOpenRound(round); err != nil {
		return fmt.Errorf("tournament.report: %w", err)
	}
	g, err := t.game(round, board)
	if err != nil {
		return fmt.Errorf("tournament.report: %w", err)
	}

	g.WhitePoints, g.BlackPoints = white, black
	g.Reported, g.Forfeit = true, false
	g.URL = url
	t.log().Infof("tournament.report: board %d %v", board, g.ResultString())
	return nil
}

// ReportGame records an individual game's result by fetching it from src.
// The game's link is kept with the result.
func (t *Tournament) ReportGame(ctx context.Context, round, board int,
	src GameSource, gameID string) error {

	white, black, err := src.GameResult(ctx, gameID)
	if err != nil {
		return fmt.Errorf("tournament.reportGame: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.reportLocked(round, board, white, black, src.GameURL(gameID))
}

// ReportGameBoard records one board of a team match by fetching its result
// from src.
func (t *Tournament) ReportGameBoard(ctx context.Context, round, match,
	board int, src GameSource, gameID string) error {

	white, black, err := src.GameResult(ctx, gameID)
	if err != nil {
		return fmt.Errorf("tournament.reportGameBoard: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.reportBoardLocked(round, match, board, white, black,
		src.GameURL(gameID))
}

// ReportBoard records one board of a team match in the open round.
func (t *Tournament) ReportBoard(round, match, board int, result string) error {
	white, black, err := swiss.ParseResult(result)
	if err != nil {
		return fmt.Errorf("tournament.reportBoard: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.reportBoardLocked(round, match, board, white, black, "")
}

func (t *Tournament) reportBoardLocked(round, match, board int, white,
	black float64, url string) error {

	if t.snap.Config.Kind != Team {
		return fmt.Errorf("tournament.reportBoard: %w", ErrWrongTournamentKind)
	}
	if err := t.requireOpenRound(round); err != nil {
		return fmt.Errorf("tournament.reportBoard: %w", err)
	}
	g, err := t.game(round, match)
	if err != nil {
		return fmt.Errorf("tournament.reportBoard: %w", err)
	}

	var b *BoardResult
	for i := range t.snap.Boards {
		cand := &t.snap.Boards[i]
		if cand.Round == round && cand.Match == match && cand.Board == board {
			b = cand
			break
		}
	}
	if b == nil {
		return fmt.Errorf("tournament.reportBoard: round %d match %d board %d: %w",
			round, match, board, ErrNoSuchGame)
	}

	b.WhitePoints, b.BlackPoints = white, black
	b.Reported, b.Forfeit = true, false
	b.URL = url
	tallyMatch(g, t.snap.Boards)
	t.log().Infof("tournament.reportBoard: match %d board %d %v-%v", match,
		board, internal.ScoreToString(white), internal.ScoreToString(black))
	return nil
}

// CloseRound ends the open round. Games still unreported are scored as
// double forfeits (0-0); scores and places are then recomputed.
func (t *Tournament) CloseRound() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.requireOpenRound(t.snap.CurrentRound); err != nil {
		return fmt.Errorf("tournament.closeRound: %w", err)
	}
	t.closeRoundLocked()
	return nil
}

func (t *Tournament) closeRoundLocked() {
	round := t.snap.CurrentRound
	forfeits := 0

	if t.snap.Config.Kind == Team {
		for i := range t.snap.Boards {
			b := &t.snap.Boards[i]
			if b.Round == round && !b.Reported {
				b.WhitePoints, b.BlackPoints = 0, 0
				b.Reported, b.Forfeit = true, true
				forfeits++
			}
		}
		for i := range t.snap.Games {
			if t.snap.Games[i].Round == round {
				tallyMatch(&t.snap.Games[i], t.snap.Boards)
			}
		}
	} else {
		for i := range t.snap.Games {
			g := &t.snap.Games[i]
			if g.Round == round && !g.Reported {
				g.WhitePoints, g.BlackPoints = 0, 0
				g.Reported, g.Forfeit = true, true
				forfeits++
			}
		}
	}

	scored := swiss.TallyScores(t.snap.Competitors, t.snap.Games,
		t.snap.Config.ByePoints())
	t.snap.Competitors = swiss.UpdatePlaces(scored)
	t.snap.RoundOpen = false

	if forfeits > 0 {
		t.log().Warnf("tournament.closeRound: %d unreported games scored as forfeits",
			forfeits)
	}
	t.log().Infof("tournament.closeRound: round %d closed", round)
}

// Close finishes the tournament: an open round is closed first, then
// Sonneborn-Berger scores and final places are computed.
func (t *Tournament) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.requireState(Running); err != nil {
		return fmt.Errorf("tournament.close: %w", err)
	}
	if t.snap.CurrentRound == 0 {
		return fmt.Errorf("tournament.close: no rounds played: %w", ErrWrongState)
	}
	if t.snap.RoundOpen {
		t.closeRoundLocked()
	}

	scored := swiss.ComputeTieBreakScores(t.snap.Competitors, t.snap.Games)
	t.snap.Competitors = swiss.FinalPlaces(scored)
	t.snap.State = Closed
	t.log().Infof("tournament.close: winner %v", t.snap.Competitors[0])
	return nil
}
