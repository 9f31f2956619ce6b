/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache implements httpcache.Cache on top of Amazon S3, so
 * the bot's GuildSched and armory fetches survive process restarts and
 * are shared across instances. Derived from the retired
 * github.com/sourcegraph/s3cache, moved onto aws-sdk-go-v2.
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const keyPrefix = "webcache"

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is the s3 client the cache uses. Init() sets it up from
	// the default Config; callers may override it before use.
	Client *s3.Client

	// bucketName is the name of the S3 bucket holding cache entries.
	bucketName string

	// gzip indicates whether cache entries are gzipped in Set and
	// gunzipped in Get. When true, object keys carry a ".gz" suffix.
	gzip bool

	// logErrors controls whether cache errors are logged
	logErrors bool

	// ctx is used for all S3 requests issued by this cache
	ctx context.Context
}

// New returns a Cache backed by the named S3 bucket. Callers must
// invoke Init() on the returned Cache before use.
func New(ctxIn context.Context, bucketNameIn string, gzipIn bool,
	logErrorsIn bool) *Cache {

	return &Cache{
		ctx:        ctxIn,
		bucketName: bucketNameIn,
		gzip:       gzipIn,
		logErrors:  logErrorsIn,
	}
}

// Init loads AWS configuration from the default sources (environment
// variables, shared config/credentials files) and verifies the bucket
// is reachable with list permission before the cache is used.
func (c *Cache) Init() error {
	var err error
	c.Config, err = config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(c.Config)

	if _, err = c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w",
			c.bucketName, err)
	}

	if _, err = c.Client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucketName),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3cache.init: list objects failed for %s: %w",
			c.bucketName, err)
	}

	return nil
}

// Get retrieves the cache entry for key. ok is false on any miss or
// error; a NoSuchKey error is an ordinary miss and is never logged.
func (c *Cache) Get(key string) ([]byte, bool) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.objectKey(key)),
	}

	resp, err := c.Client.GetObject(c.ctx, input)
	if err != nil {
		if c.logErrors {
			var apiErr smithy.APIError
			if !(errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey") {
				log.Printf("s3cache.get: failed to get object %v%v: %v",
					*input.Bucket, *input.Key, err)
			}
		}
		return []byte{}, false
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if c.gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			if c.logErrors {
				log.Printf("s3cache.get: failed to open compressed object %v%v: %v",
					*input.Bucket, *input.Key, err)
			}
			return nil, false
		}
		defer rdr.Close()
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		if c.logErrors {
			log.Printf("s3cache.get: failed to read object %v%v: %v",
				*input.Bucket, *input.Key, err)
		}
	}

	return data, err == nil
}

// Set stores the provided data in the cache under the given key.
// Failures are best effort; a failed Set only costs a refetch later.
func (c *Cache) Set(key string, data []byte) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.objectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if c.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			if c.logErrors {
				log.Printf("s3cache.set: failed to gzip data for %v%v: %v",
					*input.Bucket, *input.Key, err)
			}
			return
		}
		if err := gw.Close(); err != nil {
			if c.logErrors {
				log.Printf("s3cache.set: failed to close gzip writer for %v%v: %v",
					*input.Bucket, *input.Key, err)
			}
			return
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		if c.logErrors {
			log.Printf("s3cache.set: put failed for %v%v: %v", *input.Bucket,
				*input.Key, err)
		}
	}
}

// Delete removes the cache entry for key, if present.
func (c *Cache) Delete(key string) {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.objectKey(key)),
	}

	if _, err := c.Client.DeleteObject(c.ctx, input); err != nil {
		if c.logErrors {
			log.Printf("s3cache.delete: delete failed: %v", err)
		}
	}
}

// objectKey maps an httpcache key (a URL) onto a stable S3 object key.
func (c *Cache) objectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	objKey := fmt.Sprintf("/%v/%v", keyPrefix, hex.EncodeToString(h.Sum(nil)))
	if c.gzip {
		objKey += ".gz"
	}

	return objKey
}
