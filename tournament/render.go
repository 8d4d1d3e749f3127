/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"fmt"
	"strings"

	"github.com/mikeb26/swisstd/internal"
	"github.com/mikeb26/swisstd/swiss"
)

// writeTable writes rows as left-aligned columns separated by two spaces.
func writeTable(sb *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len([]rune(h))
	}
	for _, r := range rows {
		for i, cell := range r {
			if l := len([]rune(cell)); l > widths[i] {
				widths[i] = l
			}
		}
	}

	writeRow := func(cells []string) {
		var line strings.Builder
		for i, cell := range cells {
			if i > 0 {
				line.WriteString("  ")
			}
			line.WriteString(cell)
			if i < len(cells)-1 {
				line.WriteString(strings.Repeat(" ", widths[i]-len([]rune(cell))))
			}
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}

	writeRow(header)
	for _, r := range rows {
		writeRow(r)
	}
}

func (s *Snapshot) competitorLabel(id swiss.CompetitorID) string {
	c, ok := s.Competitor(id)
	if !ok {
		return fmt.Sprintf("#%d", id)
	}
	return fmt.Sprintf("%s(%.0f %v)", c.Name, c.Rating,
		internal.ScoreToString(c.Score))
}

// PairingsText renders round's pairings and any reported results as an
// aligned text table. A Game column with links is added when any game of the
// round was reported from an online game.
func (s *Snapshot) PairingsText(round int) string {
	if round < 1 || round > len(s.Pairings) {
		return fmt.Sprintf("Round %d has not been paired", round)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: Round %d Pairings\n\n", s.Config.Name, round))

	var rows [][]string
	hasURL := false
	for _, p := range s.Pairings[round-1] {
		if p.IsByePairing {
			rows = append(rows, []string{"n/a", s.competitorLabel(p.White),
				fmt.Sprintf("BYE(%v)", internal.ScoreToString(s.Config.ByePoints())),
				"", ""})
			continue
		}

		result, url := "*", ""
		for i := range s.Games {
			g := &s.Games[i]
			if g.Round == round && g.Board == p.Board {
				result, url = g.ResultString(), g.URL
			}
		}
		hasURL = hasURL || url != ""
		rows = append(rows, []string{fmt.Sprintf("%d.", p.Board),
			s.competitorLabel(p.White), s.competitorLabel(p.Black), result, url})

		if s.Config.Kind != Team {
			continue
		}
		for _, b := range s.Boards {
			if b.Round != round || b.Match != p.Board {
				continue
			}
			res := "*"
			if b.Reported {
				g := swiss.GameResult{WhitePoints: b.WhitePoints,
					BlackPoints: b.BlackPoints, Reported: true, Forfeit: b.Forfeit}
				res = g.ResultString()
			}
			hasURL = hasURL || b.URL != ""
			rows = append(rows, []string{fmt.Sprintf("  %d.%d", b.Match, b.Board),
				b.WhitePlayer, b.BlackPlayer, res, b.URL})
		}
	}

	header := []string{"Board", "White", "Black", "Result", "Game"}
	if !hasURL {
		header = header[:4]
		for i := range rows {
			rows[i] = rows[i][:4]
		}
	}
	writeTable(&sb, header, rows)
	return sb.String()
}

// StandingsText renders the competitors in place order. Once the
// tournament is closed the Sonneborn-Berger column is included.
func (s *Snapshot) StandingsText() string {
	if len(s.Competitors) == 0 {
		return fmt.Sprintf("%s: no standings before the tournament starts", s.Config.Name)
	}

	var sb strings.Builder
	final := s.State == Closed
	switch {
	case final:
		sb.WriteString(fmt.Sprintf("%s: Final Standings\n\n", s.Config.Name))
	case s.RoundOpen:
		sb.WriteString(fmt.Sprintf("%s: Standings prior to Round %d\n\n",
			s.Config.Name, s.CurrentRound))
	default:
		sb.WriteString(fmt.Sprintf("%s: Standings after Round %d\n\n",
			s.Config.Name, s.CurrentRound))
	}

	header := []string{"Place", "Name", "Rating", "Score"}
	if final {
		header = append(header, "SB")
	}

	var rows [][]string
	var prior *swiss.Competitor
	for i := range s.Competitors {
		c := &s.Competitors[i]
		place := fmt.Sprintf("%d.", c.Place)
		if !final && prior != nil && prior.Score == c.Score {
			place = ""
		}
		row := []string{place, c.Name, fmt.Sprintf("%.0f", c.Rating),
			fmt.Sprintf("%.1f", c.Score)}
		if final {
			row = append(row, fmt.Sprintf("%.2f", c.SonnebornBerger))
		}
		rows = append(rows, row)
		prior = c
	}

	writeTable(&sb, header, rows)
	return sb.String()
}
