/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"fmt"
	"sort"

	"github.com/mikeb26/swisstd/swiss"
)

// FormTeams drafts entrants into teams of teamSize. Entrants are taken in
// rating order and dealt out in a snake (A B C C B A A B ...); each team's
// member list is therefore in board order.
// A team's rating is the mean of its members' ratings.
func FormTeams(entrants []Entrant, teamSize int) ([]swiss.Competitor, error) {
	if teamSize < 1 {
		return nil, fmt.Errorf("tournament.formTeams: team size %d: %w",
			teamSize, ErrInvalidConfig)
	}
	if len(entrants)%teamSize != 0 {
		return nil, fmt.Errorf("tournament.formTeams: %d entrants, team size %d: %w",
			len(entrants), teamSize, ErrUnevenTeams)
	}
	teamCount := len(entrants) / teamSize
	if teamCount < 2 {
		return nil, fmt.Errorf("tournament.formTeams: %d teams: %w", teamCount,
			ErrTooFewCompetitors)
	}

	sorted := append([]Entrant(nil), entrants...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	teams := make([]swiss.Competitor, teamCount)
	totals := make([]float64, teamCount)
	for i := range teams {
		teams[i] = swiss.Competitor{
			ID:   swiss.CompetitorID(i + 1),
			Name: teamName(i),
		}
	}

	t, up := 0, true
	for _, e := range sorted {
		teams[t].Members = append(teams[t].Members, e.Name)
		totals[t] += e.Rating
		if up {
			if t == teamCount-1 {
				up = false
			} else {
				t++
			}
		} else {
			if t == 0 {
				up = true
			} else {
				t--
			}
		}
	}

	for i := range teams {
		teams[i].Rating = totals[i] / float64(teamSize)
	}
	return teams, nil
}

func teamName(i int) string {
	if i < 26 {
		return fmt.Sprintf("Team %c", rune('A'+i))
	}
	return fmt.Sprintf("Team %d", i+1)
}

// matchBoards expands a team pairing into its board games. The team listed
// as White in the pairing has White on boards 1, 4, 5, 8, ...
func matchBoards(round int, p swiss.Pairing, white,
	black *swiss.Competitor, teamSize int) []BoardResult {

	colors := swiss.BoardColors(teamSize)
	ret := make([]BoardResult, teamSize)
	for i := 0; i < teamSize; i++ {
		b := BoardResult{
			Round: round,
			Match: p.Board,
			Board: i + 1,
		}
		wp, bp := member(white, i), member(black, i)
		if colors[i] == swiss.White {
			b.WhiteTeam, b.BlackTeam = white.ID, black.ID
			b.WhitePlayer, b.BlackPlayer = wp, bp
		} else {
			b.WhiteTeam, b.BlackTeam = black.ID, white.ID
			b.WhitePlayer, b.BlackPlayer = bp, wp
		}
		ret[i] = b
	}
	return ret
}

func member(c *swiss.Competitor, i int) string {
	if i < len(c.Members) {
		return c.Members[i]
	}
	return ""
}

// tallyMatch sums a match's board results into its GameResult. The match is
// reported once every board is, and is a forfeit only if every board was.
func tallyMatch(g *swiss.GameResult, boards []BoardResult) {
	g.WhitePoints, g.BlackPoints = 0, 0
	g.Reported, g.Forfeit = true, true
	n := 0
	for i := range boards {
		b := &boards[i]
		if b.Round != g.Round || b.Match != g.Board {
			continue
		}
		n++
		if b.WhiteTeam == g.White {
			g.WhitePoints += b.WhitePoints
			g.BlackPoints += b.BlackPoints
		} else {
			g.WhitePoints += b.BlackPoints
			g.BlackPoints += b.WhitePoints
		}
		g.Reported = g.Reported && b.Reported
		g.Forfeit = g.Forfeit && b.Forfeit
	}
	if n == 0 {
		g.Reported, g.Forfeit = false, false
	}
	if !g.Reported {
		g.Forfeit = false
	}
}
