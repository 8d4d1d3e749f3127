/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"context"

	"github.com/mikeb26/swisstd/swiss"
)

type State string

const (
	Registration State = "registration"
	Running      State = "running"
	Closed       State = "closed"
)

// Entrant is a registered player. In team tournaments entrants are drafted
// into teams when the tournament starts.
type Entrant struct {
	Name       string  `json:"name"`
	ExternalID string  `json:"externalId"`
	Rating     float64 `json:"rating"`
}

// Account is the id used with the rating provider.
func (e *Entrant) Account() string {
	if e.ExternalID != "" {
		return e.ExternalID
	}
	return e.Name
}

// BoardResult is one board of a team match.
type BoardResult struct {
	Round       int                `json:"round"`
	Match       int                `json:"match"`
	Board       int                `json:"board"`
	WhiteTeam   swiss.CompetitorID `json:"whiteTeam"`
	BlackTeam   swiss.CompetitorID `json:"blackTeam"`
	WhitePlayer string             `json:"whitePlayer"`
	BlackPlayer string             `json:"blackPlayer"`
	WhitePoints float64            `json:"whitePoints"`
	BlackPoints float64            `json:"blackPoints"`
	Reported    bool               `json:"reported"`
	Forfeit     bool               `json:"forfeit"`
	URL         string             `json:"url,omitempty"`
}

// Snapshot is the persisted state of a tournament.
type Snapshot struct {
	ID           string             `json:"id"`
	Config       Config             `json:"config"`
	State        State              `json:"state"`
	Entrants     []Entrant          `json:"entrants"`
	Competitors  []swiss.Competitor `json:"competitors"`
	CurrentRound int                `json:"currentRound"`
	RoundOpen    bool               `json:"roundOpen"`

	// Pairings[r-1] holds round r
	Pairings [][]swiss.Pairing `json:"pairings"`

	// one per non-bye pairing; for team tournaments the match totals
	Games  []swiss.GameResult `json:"games"`
	Boards []BoardResult      `json:"boards,omitempty"`
}

// Clone returns a deep copy of s.
func (s *Snapshot) Clone() *Snapshot {
	ret := *s
	ret.Entrants = append([]Entrant(nil), s.Entrants...)
	ret.Competitors = make([]swiss.Competitor, len(s.Competitors))
	for i := range s.Competitors {
		ret.Competitors[i] = s.Competitors[i].Clone()
	}
	ret.Pairings = make([][]swiss.Pairing, len(s.Pairings))
	for i := range s.Pairings {
		ret.Pairings[i] = append([]swiss.Pairing(nil), s.Pairings[i]...)
	}
	ret.Games = append([]swiss.GameResult(nil), s.Games...)
	ret.Boards = append([]BoardResult(nil), s.Boards...)
	return &ret
}

// Competitor returns the competitor with id.
func (s *Snapshot) Competitor(id swiss.CompetitorID) (*swiss.Competitor, bool) {
	for i := range s.Competitors {
		if s.Competitors[i].ID == id {
			return &s.Competitors[i], true
		}
	}
	return nil, false
}

// Store persists tournament snapshots.
type Store interface {
	// Load returns ErrNotFound when there is no tournament with id.
	Load(ctx context.Context, id string) (*Snapshot, error)
	Save(ctx context.Context, s *Snapshot) error
	List(ctx context.Context) ([]string, error)
}
