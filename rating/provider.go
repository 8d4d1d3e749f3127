/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rating

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the provider has no such account or game.
var ErrNotFound = errors.New("rating: not found")

// Provider looks up a competitor's current rating in one category.
// A provider that has the account but no rating for the category
// returns 0.
type Provider interface {
	Name() string
	Rating(ctx context.Context, externalID string, cat Category) (float64, error)
}
