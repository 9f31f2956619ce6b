/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/gregjones/httpcache/test"

	"github.com/mwalcott3/guildsched-rosterbot/internal"
)

func TestS3Cache(t *testing.T) {
	cache := New(context.Background(), internal.WebCacheBucket, false, true)
	err := cache.Init()
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			internal.WebCacheBucket, err))
	}

	test.Cache(t, cache)
}

func TestS3CacheWithGzip(t *testing.T) {
	cache := New(context.Background(), internal.WebCacheBucket, true, true)
	err := cache.Init()
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			internal.WebCacheBucket, err))
	}

	test.Cache(t, cache)
}

func TestObjectKeyStable(t *testing.T) {
	plain := New(context.Background(), "bucket", false, false)
	gz := New(context.Background(), "bucket", true, false)

	k1 := plain.objectKey("https://guildsched.gg/event/42/signups")
	k2 := plain.objectKey("https://guildsched.gg/event/42/signups")
	if k1 != k2 {
		t.Errorf("object keys differ for identical input: %v vs %v", k1, k2)
	}
	if gz.objectKey("x") == plain.objectKey("x") {
		t.Error("gzip cache keys should carry a distinct suffix")
	}
}
