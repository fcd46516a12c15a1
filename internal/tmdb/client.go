// Package tmdb is the metadata provider client. It exposes the lookup,
// search and change-feed operations the resolver and metadata consumers need,
// and maps raw provider resources into the canonical movie model.
package tmdb

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"
	defaultLanguage     = "en-US"
	defaultMaxAttempts  = 3

	// TMDB allows roughly 40 requests per 10 seconds.
	defaultRatePerSecond = 4

	// appendBlocks are the extra movie payload blocks requested alongside the
	// main movie document.
	appendBlocks = "alternative_titles,credits,images,release_dates,videos,translations,recommendations"
)

// HTTPDoer is the transport surface the client depends on.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is the TMDB provider client. One instance is created at startup by
// the composition root and shared by every component for the process
// lifetime; it is safe for concurrent use.
type Client struct {
	apiKey        string
	baseURL       string
	imageBaseURL  string
	language      string
	httpClient    HTTPDoer
	limiter       *rate.Limiter
	cache         *cache.Cache
	cacheFile     string
	retryAttempts int
}

// NewClient creates a TMDB client with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:        apiKey,
		baseURL:       defaultBaseURL,
		imageBaseURL:  defaultImageBaseURL,
		language:      defaultLanguage,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		limiter:       rate.NewLimiter(rate.Limit(defaultRatePerSecond), defaultRatePerSecond),
		retryAttempts: defaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.httpClient = doer
		}
	}
}

// WithBaseURL sets a custom base URL for the TMDB API.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithImageBaseURL sets a custom base URL for TMDB images.
func WithImageBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.imageBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithLanguage sets the metadata language sent with every request.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
		}
	}
}

// WithRetryAttempts sets the number of transport retry attempts.
func WithRetryAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.retryAttempts = attempts
		}
	}
}

// WithRateLimiter sets a custom rate limiter.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		if l != nil {
			c.limiter = l
		}
	}
}

// WithCache enables response caching with the given expiration. When dir is
// non-empty the cache is persisted there between runs.
func WithCache(dir string, expiration time.Duration) Option {
	return func(c *Client) {
		c.cache = cache.New(expiration, 10*time.Minute)
		if dir == "" {
			return
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return
		}
		c.cacheFile = filepath.Join(dir, "tmdb_cache.gob")
		if _, err := os.Stat(c.cacheFile); err == nil {
			_ = c.cache.LoadFile(c.cacheFile)
		}
	}
}

// SaveCache persists the response cache to disk, when enabled.
func (c *Client) SaveCache() error {
	if c.cache != nil && c.cacheFile != "" {
		return c.cache.SaveFile(c.cacheFile)
	}
	return nil
}

// ImageURL rewrites a provider-relative image path to an absolute URL in the
// given size segment ("original", "w185", "w300").
func (c *Client) ImageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + "/" + size + path
}
