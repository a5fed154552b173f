package mediasession

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/dweymouth/vrmusicremote/backend/artwork"
	"github.com/hashicorp/go-retryablehttp"
)

// maxArtBytes bounds how much of a remote image is read.
const maxArtBytes = 8 << 20

// ArtFetcher resolves MPRIS art URLs to encoded image bytes.
// Results, including failures, are cached by URL.
type ArtFetcher struct {
	client *retryablehttp.Client
	cache  *artwork.Cache
}

// NewArtFetcher creates a fetcher keeping up to cacheEntries images.
// The cache is evicted periodically until ctx is cancelled.
func NewArtFetcher(ctx context.Context, cacheEntries int, timeout time.Duration) *ArtFetcher {
	c := retryablehttp.NewClient()
	c.RetryMax = 1
	c.RetryWaitMin = 100 * time.Millisecond
	c.RetryWaitMax = 500 * time.Millisecond
	c.HTTPClient.Timeout = timeout
	c.Logger = nil

	cache := &artwork.Cache{
		MinSize:    2,
		MaxSize:    max(cacheEntries, 2),
		DefaultTTL: 5 * time.Minute,
	}
	cache.Init(ctx, 1*time.Minute)
	return &ArtFetcher{client: c, cache: cache}
}

// Fetch returns the image at artURL, or nil if there is none or it
// could not be read. Only file, http and https URLs are supported.
func (a *ArtFetcher) Fetch(ctx context.Context, artURL string) []byte {
	if artURL == "" {
		return nil
	}
	if b, err := a.cache.Get(artURL); err == nil {
		return b
	}
	b, err := a.fetch(ctx, artURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		log.Printf("error fetching artwork %s: %v", artURL, err)
	}
	// a nil entry remembers the failure until it expires
	a.cache.Set(artURL, b)
	return b
}

func (a *ArtFetcher) fetch(ctx context.Context, artURL string) ([]byte, error) {
	u, err := url.Parse(artURL)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "file":
		return os.ReadFile(u.Path)
	case "http", "https":
		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, artURL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := a.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxArtBytes))
	}
	return nil, fmt.Errorf("unsupported art URL scheme %q", u.Scheme)
}
