/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "sort"

// AssignSeeds orders a fresh pool into its initial places. The pool is
// ranked by rating, cut into floor(N/2) consecutive strength groups (the
// first N mod G groups take one extra member) and then read out one
// competitor per group at a time, so neighbouring seeds come from different
// strength bands. Seed and Place are both set to the resulting 1-based
// position. The input slice is not modified.
func AssignSeeds(competitors []Competitor) []Competitor {
	ranked := cloneAll(competitors)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})

	n := len(ranked)
	if n < 2 {
		for i := range ranked {
			ranked[i].Seed = 1
			ranked[i].Place = 1
		}
		return ranked
	}

	groupCount := n / 2
	smallSize := n / groupCount
	largeCount := n % groupCount

	groups := make([][]Competitor, groupCount)
	g := 0
	for _, c := range ranked {
		size := smallSize
		if g < largeCount {
			size++
		}
		groups[g] = append(groups[g], c)
		if len(groups[g]) == size {
			g++
		}
	}

	ordered := make([]Competitor, 0, n)
	for g = 0; len(ordered) < n; g = (g + 1) % groupCount {
		if len(groups[g]) == 0 {
			continue
		}
		ordered = append(ordered, groups[g][0])
		groups[g] = groups[g][1:]
	}

	for i := range ordered {
		ordered[i].Seed = i + 1
		ordered[i].Place = i + 1
	}

	return ordered
}
