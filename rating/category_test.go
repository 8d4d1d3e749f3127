/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rating

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryFromTimeControl(t *testing.T) {
	cases := []struct {
		tc   string
		want Category
	}{
		{"0.25|0", UltraBullet},
		{"0|0.5", UltraBullet},
		{"1|0", Bullet},
		{"2|1", Bullet},
		{"3|0", Blitz},
		{"3|2", Blitz},
		{"5|3", Blitz},
		{"8|0", Rapid},
		{"10|0", Rapid},
		{"15|10", Rapid},
		{"20|10", Classical},
		{"25|0", Classical},
		{" 90 | 30 ", Classical},
	}
	for _, c := range cases {
		got, err := CategoryFromTimeControl(c.tc)
		require.NoError(t, err, c.tc)
		require.Equal(t, c.want, got, c.tc)
	}

	for _, bad := range []string{"", "5", "5+3", "x|2", "5|y", "-1|0"} {
		_, err := CategoryFromTimeControl(bad)
		require.Error(t, err, bad)
	}
}
