/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3store wraps a single Amazon S3 bucket for swisstd. It stores
 * tournament snapshot objects and doubles as an httpcache.Cache for rating
 * provider responses. The cache half is based on the original
 * github.com/sourcegraph/s3cache, updated for aws-sdk-go-v2.
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/gregjones/httpcache"
	"github.com/sirupsen/logrus"
)

// ErrNoSuchKey is returned by Get when the object does not exist.
var ErrNoSuchKey = errors.New("s3store: no such key")

const cachePrefix = "httpcache"

// Bucket stores and retrieves objects in one S3 bucket under a key prefix.
type Bucket struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is initialized in Init() from the default Config, but callers
	// may override it with their own client.
	Client *s3.Client

	name   string
	prefix string

	// gzip compresses objects in Put and decompresses them in Get; keys get
	// a ".gz" suffix.
	gzip bool

	logErrors bool
}

// New returns a Bucket for bucketName. All keys are stored under prefix,
// which may be empty. Callers must invoke Init() before use unless they set
// Client themselves.
func New(bucketName string, prefix string, gzipIn bool, logErrorsIn bool) *Bucket {
	return &Bucket{
		name:      bucketName,
		prefix:    prefix,
		gzip:      gzipIn,
		logErrors: logErrorsIn,
	}
}

// Name returns the bucket name.
func (b *Bucket) Name() string {
	return b.name
}

// Init loads the default AWS configuration (environment, shared config and
// credential files) and verifies the bucket is reachable.
func (b *Bucket) Init(ctx context.Context) error {
	var err error
	b.Config, err = config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
	}
	b.Client = s3.NewFromConfig(b.Config)

	if _, err = b.Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.name),
	}); err != nil {
		return fmt.Errorf("s3store.init: head bucket failed for %s: %w", b.name, err)
	}

	return nil
}

func (b *Bucket) objectKey(key string) string {
	k := path.Join(b.prefix, key)
	if b.gzip {
		k += ".gz"
	}
	return k
}

// Get returns the object stored under key.
func (b *Bucket) Get(ctx context.Context, key string) ([]byte, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(b.objectKey(key)),
	}

	resp, err := b.Client.GetObject(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil, ErrNoSuchKey
		}
		return nil, fmt.Errorf("s3store.get: failed to get object %v/%v: %w",
			b.name, *input.Key, err)
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if b.gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			return nil, fmt.Errorf("s3store.get: failed to open compressed object %v/%v: %w",
				b.name, *input.Key, err)
		}
		defer rdr.Close()
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("s3store.get: failed to read object %v/%v: %w",
			b.name, *input.Key, err)
	}

	return data, nil
}

// Put stores data under key, replacing any existing object.
func (b *Bucket) Put(ctx context.Context, key string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(b.objectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if b.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("s3store.put: failed to gzip data for %v/%v: %w",
				b.name, *input.Key, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("s3store.put: failed to close gzip writer for %v/%v: %w",
				b.name, *input.Key, err)
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := b.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3store.put: put failed for %v/%v: %w", b.name,
			*input.Key, err)
	}
	return nil
}

// Delete removes the object stored under key.
func (b *Bucket) Delete(ctx context.Context, key string) error {
	_, err := b.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(b.objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("s3store.delete: delete failed for %v/%v: %w", b.name,
			key, err)
	}
	return nil
}

// List returns the keys (relative to the bucket prefix, without any ".gz"
// suffix) of all objects under dir.
func (b *Bucket) List(ctx context.Context, dir string) ([]string, error) {
	full := path.Join(b.prefix, dir) + "/"
	p := s3.NewListObjectsV2Paginator(b.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.name),
		Prefix: aws.String(full),
	})

	var keys []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3store.list: list failed for %v/%v: %w",
				b.name, full, err)
		}
		for _, obj := range page.Contents {
			k := aws.ToString(obj.Key)
			if b.prefix != "" {
				k = k[len(b.prefix)+1:]
			}
			if b.gzip && len(k) > 3 && k[len(k)-3:] == ".gz" {
				k = k[:len(k)-3]
			}
			keys = append(keys, k)
		}
	}

	return keys, nil
}

// HTTPCache returns an httpcache.Cache that keeps cached responses in this
// bucket. ctx is used for every S3 request the cache makes.
func (b *Bucket) HTTPCache(ctx context.Context) httpcache.Cache {
	return &httpCache{bucket: b, ctx: ctx}
}

type httpCache struct {
	bucket *Bucket
	ctx    context.Context
}

func cacheKeyToObjectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	return path.Join(cachePrefix, hex.EncodeToString(h.Sum(nil)))
}

func (c *httpCache) Get(key string) ([]byte, bool) {
	data, err := c.bucket.Get(c.ctx, cacheKeyToObjectKey(key))
	if err != nil {
		// no such key just indicates a cache miss
		if c.bucket.logErrors && !errors.Is(err, ErrNoSuchKey) {
			logrus.Warnf("s3store.cache: %v", err)
		}
		return nil, false
	}
	return data, true
}

func (c *httpCache) Set(key string, data []byte) {
	err := c.bucket.Put(c.ctx, cacheKeyToObjectKey(key), data)
	if err != nil && c.bucket.logErrors {
		logrus.Warnf("s3store.cache: %v", err)
	}
}

func (c *httpCache) Delete(key string) {
	err := c.bucket.Delete(c.ctx, cacheKeyToObjectKey(key))
	if err != nil && c.bucket.logErrors {
		logrus.Warnf("s3store.cache: %v", err)
	}
}
