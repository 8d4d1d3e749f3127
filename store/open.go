/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package store persists tournaments either in a local SQLite database or as
// JSON snapshots in an S3 bucket.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/mikeb26/swisstd/s3store"
	"github.com/mikeb26/swisstd/tournament"
)

// Open returns the store described by location:
//
//	sqlite:<path>            SQLite database file (or sqlite::memory:)
//	s3://<bucket>[/<prefix>] JSON snapshots in an S3 bucket
func Open(ctx context.Context, location string) (tournament.Store, error) {
	switch {
	case strings.HasPrefix(location, "sqlite:"):
		dsn := strings.TrimPrefix(location, "sqlite:")
		if dsn == "" {
			return nil, fmt.Errorf("store.open: %q has no database path", location)
		}
		return OpenSQL(dsn)
	case strings.HasPrefix(location, "s3://"):
		bucket, prefix, err := parseS3Location(location)
		if err != nil {
			return nil, err
		}
		b := s3store.New(bucket, prefix, true, true)
		if err := b.Init(ctx); err != nil {
			return nil, fmt.Errorf("store.open: %w", err)
		}
		return NewS3(b), nil
	default:
		return nil, fmt.Errorf("store.open: unsupported store %q; want sqlite:<path> or s3://<bucket>[/<prefix>]",
			location)
	}
}

func parseS3Location(location string) (bucket string, prefix string, err error) {
	rest := strings.Trim(strings.TrimPrefix(location, "s3://"), "/")
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("store.open: %q has no bucket", location)
	}
	return bucket, prefix, nil
}
