/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

// SonnebornBerger returns the tie-break score of competitor id: the sum of
// the final scores of the opponents it beat plus half the final scores of
// the opponents it drew. Losses, byes, forfeits and unreported games add
// nothing.
func SonnebornBerger(id CompetitorID, games []GameResult,
	scores map[CompetitorID]float64) float64 {

	sb := 0.0
	for i := range games {
		g := &games[i]
		if !g.Involves(id) || !g.Played() {
			continue
		}
		mine, opp := g.PointsFor(id)
		theirs, _ := g.PointsFor(opp)
		switch {
		case mine > theirs:
			sb += scores[opp]
		case mine == theirs:
			sb += scores[opp] / 2
		}
	}
	return sb
}

// ComputeTieBreakScores returns copies of competitors with SonnebornBerger
// recomputed from their current scores.
func ComputeTieBreakScores(competitors []Competitor,
	games []GameResult) []Competitor {

	scores := make(map[CompetitorID]float64, len(competitors))
	for _, c := range competitors {
		scores[c.ID] = c.Score
	}

	ret := cloneAll(competitors)
	for i := range ret {
		ret[i].SonnebornBerger = SonnebornBerger(ret[i].ID, games, scores)
	}
	return ret
}
