/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"strings"
)

// GameResult is one completed (or pending) game of a round. For team
// tournaments it is the whole match and the points are board-point sums.
type GameResult struct {
	Round       int          `json:"round"`
	Board       int          `json:"board"`
	White       CompetitorID `json:"white"`
	Black       CompetitorID `json:"black"`
	WhitePoints float64      `json:"whitePoints"`
	BlackPoints float64      `json:"blackPoints"`
	Reported    bool         `json:"reported"`

	// the points were awarded without the game being played
	Forfeit bool `json:"forfeit"`

	// link to the online game, when it was reported from one
	URL string `json:"url,omitempty"`
}

// Involves reports whether id played in g.
func (g *GameResult) Involves(id CompetitorID) bool {
	return id != ByeID && (g.White == id || g.Black == id)
}

// PointsFor returns the points id earned in g and its opponent's id.
func (g *GameResult) PointsFor(id CompetitorID) (mine float64, opp CompetitorID) {
	if g.White == id {
		return g.WhitePoints, g.Black
	}
	return g.BlackPoints, g.White
}

// Played reports whether the game counts as an over-the-board result.
func (g *GameResult) Played() bool {
	return g.Reported && !g.Forfeit && g.White != ByeID && g.Black != ByeID
}

// ResultString renders the points the way a PGN Result tag does.
func (g *GameResult) ResultString() string {
	if !g.Reported {
		return "*"
	}
	s := fmt.Sprintf("%v-%v", pointsString(g.WhitePoints),
		pointsString(g.BlackPoints))
	if g.Forfeit {
		s += " (forfeit)"
	}
	return s
}

func pointsString(p float64) string {
	switch p {
	case 0.5:
		return "½"
	default:
		return strings.TrimSuffix(fmt.Sprintf("%.1f", p), ".0")
	}
}

// ParseResult converts a single game result such as "1-0", "0-1", "1/2-1/2",
// "½-½" or "0.5-0.5" into the points for White and Black.
func ParseResult(s string) (white, black float64, err error) {
	switch strings.TrimSpace(s) {
	case "1-0":
		return 1, 0, nil
	case "0-1":
		return 0, 1, nil
	case "1/2-1/2", "½-½", "0.5-0.5":
		return 0.5, 0.5, nil
	case "0-0":
		return 0, 0, nil
	}
	return 0, 0, fmt.Errorf("%w: unrecognized result %q", ErrInvalidInput, s)
}
