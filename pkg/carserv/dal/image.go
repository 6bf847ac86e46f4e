package dal

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// FallbackImageURL replaces any vehicle image that fails to load.
const FallbackImageURL = "https://images.unsplash.com/photo-1533473359331-0135ef1b58bf?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=1470&q=80"

const imageBaseURL = "https://source.unsplash.com/featured/?"

// ImageURL builds the image address for a make keyword.
func ImageURL(keyword string) string {
	return imageBaseURL + keyword + ",car"
}

// ImageResolver checks whether image URLs load and substitutes
// FallbackImageURL for the ones that don't. Every URL is attempted once,
// concurrent callers for the same URL share a single attempt.
type ImageResolver struct {
	client   *http.Client
	seen     *gocache.Cache
	inflight singleflight.Group
}

// NewImageResolver returns a resolver using client, or http.DefaultClient when nil.
func NewImageResolver(client *http.Client) *ImageResolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &ImageResolver{
		client: client,
		seen:   gocache.New(gocache.NoExpiration, 0),
	}
}

// Resolve returns url if it loads, FallbackImageURL otherwise.
func (r *ImageResolver) Resolve(ctx context.Context, url string) string {
	if url == "" {
		return FallbackImageURL
	}
	if v, ok := r.seen.Get(url); ok {
		return v.(string)
	}

	v, _, _ := r.inflight.Do(url, func() (any, error) {
		if v, ok := r.seen.Get(url); ok {
			return v, nil
		}
		if r.load(ctx, url) {
			r.seen.Set(url, url, gocache.NoExpiration)
			return url, nil
		}
		// a cancelled caller says nothing about the image itself
		if ctx.Err() == nil {
			r.seen.Set(url, FallbackImageURL, gocache.NoExpiration)
		}
		return FallbackImageURL, nil
	})
	return v.(string)
}

// ResolveAll resolves urls concurrently. The result is index-aligned with urls.
func (r *ImageResolver) ResolveAll(ctx context.Context, urls []string) []string {
	out := make([]string, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			out[i] = r.Resolve(ctx, u)
		}(i, u)
	}
	wg.Wait()
	return out
}

func (r *ImageResolver) load(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}
	ct := resp.Header.Get("Content-Type")
	return ct == "" || strings.HasPrefix(ct, "image/")
}
