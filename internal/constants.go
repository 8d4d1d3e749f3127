/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "time"

const (
	UserAgent      = "swisstd/0.1.0 (+https://github.com/mikeb26/swisstd)"
	WebCacheBucket = "bopmatic-swisstd-prod-webcache"

	// RatingCacheTTL is how long a rating lookup is served from cache.
	RatingCacheTTL = 6 * time.Hour
)
