/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

const (
	MaxColorBalance = 2
	MinColorBalance = -2
)

// ColorBalance returns the number of games with White minus the number of
// games with Black. Byes do not count.
func ColorBalance(colors []Color) int {
	balance := 0
	for _, c := range colors {
		switch c {
		case White:
			balance++
		case Black:
			balance--
		}
	}
	return balance
}

// AssignColors decides who plays White in a pairing of first (the higher
// ranked competitor) against second.
func AssignColors(first, second Competitor, round int) (white, black CompetitorID) {
	if firstIsWhite(ColorBalance(first.PrevColors),
		ColorBalance(second.PrevColors), round) {
		return first.ID, second.ID
	}
	return second.ID, first.ID
}

// firstIsWhite applies the color rule to the two balances. The competitor
// with the lower balance gets White; on equal balances the higher ranked
// competitor gets White in rounds 1, 4, 5, 8, 9, ... and Black in rounds
// 2, 3, 6, 7, ...
func firstIsWhite(firstBalance, secondBalance, round int) bool {
	if firstBalance != secondBalance {
		return firstBalance < secondBalance
	}
	switch round % 4 {
	case 0, 1:
		return true
	default:
		return false
	}
}

// colorsCompatible reports whether the color rule can seat the two
// competitors without pushing either balance outside the allowed range.
func colorsCompatible(firstBalance, secondBalance, round int) bool {
	if firstIsWhite(firstBalance, secondBalance, round) {
		return inBalance(firstBalance+1) && inBalance(secondBalance-1)
	}
	return inBalance(firstBalance-1) && inBalance(secondBalance+1)
}

func inBalance(b int) bool {
	return b >= MinColorBalance && b <= MaxColorBalance
}

// BoardColors returns, for a team match over the given number of boards, the
// color the first-listed team plays on each board.
func BoardColors(boards int) []Color {
	ret := make([]Color, boards)
	for i := range ret {
		if i%4 == 0 || (i+1)%4 == 0 {
			ret[i] = White
		} else {
			ret[i] = Black
		}
	}
	return ret
}
