/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/mikeb26/swisstd/s3store"
	"github.com/mikeb26/swisstd/tournament"
)

const snapshotDir = "tournaments"

type objectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	List(ctx context.Context, dir string) ([]string, error)
}

// S3 keeps each tournament as a JSON snapshot object in a bucket.
type S3 struct {
	objects objectStore
}

// NewS3 returns a store backed by an initialized bucket.
func NewS3(bucket *s3store.Bucket) *S3 {
	return &S3{objects: bucket}
}

func snapshotKey(id string) string {
	return path.Join(snapshotDir, id+".json")
}

func (s *S3) Load(ctx context.Context, id string) (*tournament.Snapshot, error) {
	data, err := s.objects.Get(ctx, snapshotKey(id))
	if err != nil {
		if errors.Is(err, s3store.ErrNoSuchKey) {
			return nil, tournament.ErrNotFound
		}
		return nil, fmt.Errorf("store.s3.load: %v: %w", id, err)
	}

	var snap tournament.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("store.s3.load: decoding %v: %w", id, err)
	}
	return &snap, nil
}

func (s *S3) Save(ctx context.Context, snap *tournament.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("store.s3.save: encoding %v: %w", snap.ID, err)
	}
	if err := s.objects.Put(ctx, snapshotKey(snap.ID), data); err != nil {
		return fmt.Errorf("store.s3.save: %w", err)
	}
	return nil
}

func (s *S3) List(ctx context.Context) ([]string, error) {
	keys, err := s.objects.List(ctx, snapshotDir)
	if err != nil {
		return nil, fmt.Errorf("store.s3.list: %w", err)
	}

	var ids []string
	for _, k := range keys {
		name := strings.TrimPrefix(k, snapshotDir+"/")
		if strings.Contains(name, "/") || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}
