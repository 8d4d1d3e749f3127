/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"context"
	"fmt"
)

// Load resumes the tournament with id from s.
func Load(ctx context.Context, s Store, id string) (*Tournament, error) {
	snap, err := s.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tournament.load: %v: %w", id, err)
	}
	return FromSnapshot(snap), nil
}

// Save persists the tournament's current state to s.
func (t *Tournament) Save(ctx context.Context, s Store) error {
	snap := t.Snapshot()
	if err := s.Save(ctx, snap); err != nil {
		return fmt.Errorf("tournament.save: %v: %w", snap.ID, err)
	}
	return nil
}
