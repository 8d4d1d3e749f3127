/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// NormalizeName collapses internal whitespace and lowercases a competitor or
// account name so lookups are insensitive to how it was typed.
func NormalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ScoreToString renders a score using ½ for half points, e.g. 2.5 -> "2½",
// 0.5 -> "½", 3 -> "3".
func ScoreToString(score float64) string {
	whole, frac := math.Modf(score)
	if frac == 0 {
		return strconv.Itoa(int(whole))
	}
	if whole == 0 {
		return "½"
	}
	return strconv.Itoa(int(whole)) + "½"
}
