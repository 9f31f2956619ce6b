/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package webcache

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/mwalcott3/guildsched-rosterbot/internal"
	"github.com/mwalcott3/guildsched-rosterbot/s3cache"
)

// NewCachedHttpClient returns an http.Client that caches via S3-backed
// httpcache. If cache initialization fails, it falls back to uncached
// requests rather than failing the caller. A client-side TTL is
// enforced by rewriting origin cache headers, since GuildSched and the
// armory site both send cache-busting headers we want to ignore.
func NewCachedHttpClient(ctx context.Context, maxAge time.Duration) *http.Client {
	cache := s3cache.New(ctx, internal.WebCacheBucket, false, true)

	if err := cache.Init(); err != nil {
		log.Printf("webcache: warning failed to init S3 cache: %v; falling back to uncached http", err)
		return http.DefaultClient
	}

	hc := httpcache.NewTransport(cache)
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: http.DefaultTransport,
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

// HeaderOverrideTransport decorates a RoundTripper with request and
// response header hooks.
type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying
// transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don't stomp on the caller's original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
