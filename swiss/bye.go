/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

// SelectBye picks the competitor who sits out this round. The pool must be
// in place order. For an even pool no bye is needed and ok is false;
// otherwise the lowest placed competitor without a previous bye is chosen.
func SelectBye(competitors []Competitor) (id CompetitorID, ok bool, err error) {
	idx, err := byeIndex(competitors)
	if err != nil || idx < 0 {
		return ByeID, false, err
	}
	return competitors[idx].ID, true, nil
}

func byeIndex(competitors []Competitor) (int, error) {
	if len(competitors)%2 == 0 {
		return -1, nil
	}
	for i := len(competitors) - 1; i >= 0; i-- {
		if !competitors[i].HasBye() {
			return i, nil
		}
	}
	return -1, ErrNoEligibleBye
}
