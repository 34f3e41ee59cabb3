// Package client is a typed consumer for the content API. It mirrors the
// server's envelope contract, keeps short-lived response caches, and retries
// missing translations against the site default language so callers never
// see a language-induced 404.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-content-api/internal/identity"
	"github.com/goliatone/go-content-api/internal/logging"
	"github.com/goliatone/go-content-api/internal/ttlcache"
	"github.com/goliatone/go-content-api/pkg/interfaces"
)

const (
	defaultTimeout = 15 * time.Second

	contentCacheTTL = time.Minute
	searchCacheTTL  = 5 * time.Minute
	statsCacheTTL   = 30 * time.Minute

	aliasScanLimit = 100
)

// Client talks to one content API deployment.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	defaultLanguage string
	supported       []string
	store           LanguageStore
	log             interfaces.Logger

	mu       sync.RWMutex
	language string
	subs     map[int]func(string)
	nextSub  int

	contentCache *ttlcache.Cache[json.RawMessage]
	searchCache  *ttlcache.Cache[json.RawMessage]
	statsCache   *ttlcache.Cache[json.RawMessage]
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithDefaultLanguage sets the site default language used for invisible
// retry on missing translations. Defaults to "en".
func WithDefaultLanguage(code string) Option {
	return func(c *Client) {
		if code != "" {
			c.defaultLanguage = code
		}
	}
}

// WithLanguage sets the initial active language.
func WithLanguage(code string) Option {
	return func(c *Client) {
		c.language = code
	}
}

// WithLogger attaches a logger namespace to the client.
func WithLogger(log interfaces.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New constructs a client for the given API base URL, e.g.
// "https://example.com/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("client: base URL required")
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("client: invalid base URL: %w", err)
	}

	c := &Client{
		baseURL:         trimmed,
		httpClient:      &http.Client{Timeout: defaultTimeout},
		defaultLanguage: "en",
		log:             logging.NoOp(),
		contentCache:    ttlcache.New[json.RawMessage](contentCacheTTL),
		searchCache:     ttlcache.New[json.RawMessage](searchCacheTTL),
		statsCache:      ttlcache.New[json.RawMessage](statsCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// get fetches one endpoint, unwraps the response envelope, and caches the
// raw data payload. A 404 in a non-default language retries once against
// the default language before surfacing the error.
func (c *Client) get(ctx context.Context, cache *ttlcache.Cache[json.RawMessage], path string, params url.Values) (json.RawMessage, error) {
	lang := c.Language()
	key := identity.CacheKey("get", path, lang, params.Encode())
	if cached, ok := cache.Get(key); ok {
		return cached, nil
	}

	data, err := c.fetch(ctx, path, params, lang)
	if err != nil {
		var apiErr *APIError
		if isNotFound(err, &apiErr) && lang != c.defaultLanguage {
			c.log.Debug("retrying with default language", "path", path, "language", lang)
			data, err = c.fetch(ctx, path, params, c.defaultLanguage)
		}
		if err != nil {
			return nil, err
		}
	}

	cache.Set(key, data)
	return data, nil
}

func (c *Client) fetch(ctx context.Context, path string, params url.Values, lang string) (json.RawMessage, error) {
	values := url.Values{}
	for name, vals := range params {
		for _, v := range vals {
			values.Add(name, v)
		}
	}
	if lang != "" {
		values.Set("lang", lang)
	}

	endpoint := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: read response: %w", err)
	}

	return unwrapEnvelope(resp.StatusCode, body)
}

func intParam(params url.Values, name string, value int) {
	if value > 0 {
		params.Set(name, strconv.Itoa(value))
	}
}
