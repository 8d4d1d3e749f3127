/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "fmt"

// CompetitorID identifies a player or team within a single tournament. Real
// ids are strictly positive.
type CompetitorID int64

// ByeID marks a bye round in a competitor's opponent history.
const ByeID CompetitorID = 0

type Color int

const (
	White Color = iota
	Black
	ByeColor
)

func (c Color) valid() bool {
	return c == White || c == Black || c == ByeColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Black:
		return "B"
	case ByeColor:
		return "-"
	default:
		return "?"
	}
}

// Competitor is a player or team entry. The pairing engine only looks at the
// id, rating, place and history; Name and ExternalID are carried for callers.
type Competitor struct {
	ID              CompetitorID `json:"id"`
	Name            string       `json:"name"`
	ExternalID      string       `json:"externalId"`
	Rating          float64      `json:"rating"`
	Score           float64      `json:"score"`
	SonnebornBerger float64      `json:"sonnebornBergerScore"`
	Seed            int          `json:"seed"`
	Place           int          `json:"place"`

	// one entry per round played, in round order
	PrevOpponents []CompetitorID `json:"prevOpponents"`
	PrevColors    []Color        `json:"prevColors"`

	// team tournaments only; ordered by board
	Members []string `json:"members,omitempty"`
}

// HasPlayed reports whether c has already been paired against opp.
func (c *Competitor) HasPlayed(opp CompetitorID) bool {
	for _, id := range c.PrevOpponents {
		if id == opp && id != ByeID {
			return true
		}
	}
	return false
}

// HasBye reports whether c's color history records a bye.
func (c *Competitor) HasBye() bool {
	for _, col := range c.PrevColors {
		if col == ByeColor {
			return true
		}
	}
	return false
}

// Clone returns a copy of c that shares no slices with it.
func (c Competitor) Clone() Competitor {
	c.PrevOpponents = append([]CompetitorID(nil), c.PrevOpponents...)
	c.PrevColors = append([]Color(nil), c.PrevColors...)
	c.Members = append([]string(nil), c.Members...)
	return c
}

func (c Competitor) String() string {
	if c.Name != "" {
		return fmt.Sprintf("%v(%d)", c.Name, c.ID)
	}
	return fmt.Sprintf("#%d", c.ID)
}

// Pairing is one board of a round. For a bye pairing the bye competitor is
// held in White and Black is ByeID.
type Pairing struct {
	Board        int          `json:"board"`
	White        CompetitorID `json:"white"`
	Black        CompetitorID `json:"black"`
	IsByePairing bool         `json:"isByePairing"`
}

// Round is the result of a successful GeneratePairings call.
type Round struct {
	Number   int       `json:"number"`
	Pairings []Pairing `json:"pairings"`

	// copies of the input competitors, in input order, with this round's
	// opponent and color appended
	Competitors []Competitor `json:"competitors"`
}

// ByeCompetitor returns the competitor holding this round's bye, if any.
func (r *Round) ByeCompetitor() (CompetitorID, bool) {
	for _, p := range r.Pairings {
		if p.IsByePairing {
			return p.White, true
		}
	}
	return ByeID, false
}

func cloneAll(competitors []Competitor) []Competitor {
	ret := make([]Competitor, len(competitors))
	for i := range competitors {
		ret[i] = competitors[i].Clone()
	}
	return ret
}
