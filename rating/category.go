/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rating

import (
	"fmt"
	"strconv"
	"strings"
)

// Category is the rating pool a time control falls into.
type Category string

const (
	UltraBullet Category = "ultrabullet"
	Bullet      Category = "bullet"
	Blitz       Category = "blitz"
	Rapid       Category = "rapid"
	Classical   Category = "classical"
)

// CategoryFromTimeControl classifies a "minutes|increment" time control
// (e.g. "3|2") by its estimated game length of minutes + 40 moves of
// increment.
func CategoryFromTimeControl(tc string) (Category, error) {
	parts := strings.Split(strings.TrimSpace(tc), "|")
	if len(parts) != 2 {
		return "", fmt.Errorf("rating: time control %q is not minutes|increment", tc)
	}
	minutes, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || minutes < 0 {
		return "", fmt.Errorf("rating: invalid minutes in time control %q", tc)
	}
	increment, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || increment < 0 {
		return "", fmt.Errorf("rating: invalid increment in time control %q", tc)
	}

	adjusted := minutes + 40*(increment/60)
	switch {
	case adjusted < 0.5:
		return UltraBullet, nil
	case adjusted < 3:
		return Bullet, nil
	case adjusted < 8:
		return Blitz, nil
	case adjusted < 25:
		return Rapid, nil
	default:
		return Classical, nil
	}
}

func (c Category) String() string {
	return string(c)
}
