/* Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3store

import (
	"context"
	"os"
	"testing"

	"github.com/gregjones/httpcache/test"
	"github.com/stretchr/testify/require"
)

func testBucket(t *testing.T, gzip bool) *Bucket {
	name := os.Getenv("SWISSTD_TEST_BUCKET")
	if name == "" {
		t.Skip("Skipping test because SWISSTD_TEST_BUCKET is not set")
	}
	b := New(name, "swisstd-test", gzip, true)
	if err := b.Init(context.Background()); err != nil {
		t.Skipf("Skipping test due to lack of access to %v: %v", name, err)
	}
	return b
}

func TestHTTPCache(t *testing.T) {
	b := testBucket(t, false)
	test.Cache(t, b.HTTPCache(context.Background()))
}

func TestHTTPCacheWithGzip(t *testing.T) {
	b := testBucket(t, true)
	test.Cache(t, b.HTTPCache(context.Background()))
}

func TestObjects(t *testing.T) {
	ctx := context.Background()
	b := testBucket(t, true)

	_, err := b.Get(ctx, "snapshots/missing.json")
	require.ErrorIs(t, err, ErrNoSuchKey)

	require.NoError(t, b.Put(ctx, "snapshots/one.json", []byte(`{"a":1}`)))
	data, err := b.Get(ctx, "snapshots/one.json")
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, string(data))

	keys, err := b.List(ctx, "snapshots")
	require.NoError(t, err)
	require.Contains(t, keys, "snapshots/one.json")

	require.NoError(t, b.Delete(ctx, "snapshots/one.json"))
}

func TestCacheKeyToObjectKey(t *testing.T) {
	k := cacheKeyToObjectKey("https://lichess.org/api/user/someone")
	require.Equal(t, k, cacheKeyToObjectKey("https://lichess.org/api/user/someone"))
	require.NotEqual(t, k, cacheKeyToObjectKey("https://lichess.org/api/user/other"))
	require.Len(t, k, len(cachePrefix)+1+32)
}
