/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "sort"

// TallyScores returns copies of competitors with Score recomputed from the
// reported games plus byePoints for every bye in their color history.
func TallyScores(competitors []Competitor, games []GameResult,
	byePoints float64) []Competitor {

	ret := cloneAll(competitors)
	idx := make(map[CompetitorID]int, len(ret))
	for i := range ret {
		ret[i].Score = 0
		for _, col := range ret[i].PrevColors {
			if col == ByeColor {
				ret[i].Score += byePoints
			}
		}
		idx[ret[i].ID] = i
	}

	for _, g := range games {
		if !g.Reported {
			continue
		}
		if i, ok := idx[g.White]; ok {
			ret[i].Score += g.WhitePoints
		}
		if i, ok := idx[g.Black]; ok {
			ret[i].Score += g.BlackPoints
		}
	}

	return ret
}

// UpdatePlaces re-ranks competitors between rounds: score descending, then
// seed ascending.
func UpdatePlaces(competitors []Competitor) []Competitor {
	return rank(competitors, func(a, b *Competitor) bool {
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return seedLess(a, b)
	})
}

// FinalPlaces ranks competitors at the close of a tournament: score
// descending, then Sonneborn-Berger descending, then seed ascending.
func FinalPlaces(competitors []Competitor) []Competitor {
	return rank(competitors, func(a, b *Competitor) bool {
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.SonnebornBerger != b.SonnebornBerger {
			return a.SonnebornBerger > b.SonnebornBerger
		}
		return seedLess(a, b)
	})
}

// unseeded competitors sort after seeded ones
func seedLess(a, b *Competitor) bool {
	if (a.Seed == 0) != (b.Seed == 0) {
		return b.Seed == 0
	}
	return a.Seed < b.Seed
}

func rank(competitors []Competitor, less func(a, b *Competitor) bool) []Competitor {
	ret := cloneAll(competitors)
	sort.SliceStable(ret, func(i, j int) bool {
		return less(&ret[i], &ret[j])
	})
	for i := range ret {
		ret[i].Place = i + 1
	}
	return ret
}
