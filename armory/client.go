/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package armory

import (
	"context"
	"net/http"
	"time"

	"github.com/mwalcott3/guildsched-rosterbot/internal/webcache"
)

type Client struct {
	httpClient30day *http.Client
	httpClient1day  *http.Client
}

func NewClient(ctx context.Context) *Client {
	ret := &Client{
		httpClient30day: webcache.NewCachedHttpClient(ctx, 30*24*time.Hour),
	}
	if ret.httpClient30day != http.DefaultClient {
		ret.httpClient1day = webcache.NewCachedHttpClient(ctx, 24*time.Hour)
	} else {
		ret.httpClient1day = http.DefaultClient
	}

	return ret
}
