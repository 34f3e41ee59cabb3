// Package listing implements the collection-level read services: filtered
// type listings, full-text search, taxonomy term listings, and site stats.
// Expensive aggregates (search, stats) sit behind short-lived caches keyed by
// a deterministic hash of the request parameters.
package listing

import (
	"errors"
	"time"

	"github.com/goliatone/go-content-api/document"
	"github.com/goliatone/go-content-api/entity"
	"github.com/goliatone/go-content-api/internal/logging"
	"github.com/goliatone/go-content-api/internal/ttlcache"
	"github.com/goliatone/go-content-api/pkg/interfaces"
)

// ErrEmptyQuery rejects search requests without a search string.
var ErrEmptyQuery = errors.New("listing: empty search query")

const (
	defaultLimit = 10
	maxLimit     = 100

	searchCacheTTL = 5 * time.Minute
	statsCacheTTL  = 30 * time.Minute

	recentWindow = 30 * 24 * time.Hour
)

// Service executes collection reads against the entity store and delegates
// per-item normalization to the document service.
type Service struct {
	store       entity.Store
	docs        *document.Service
	log         interfaces.Logger
	now         func() time.Time
	searchTTL   time.Duration
	statsTTL    time.Duration
	searchCache *ttlcache.Cache[*SearchResult]
	statsCache  *ttlcache.Cache[*Stats]
}

// Option configures optional service behavior.
type Option func(*Service)

// WithLogger attaches a logger namespace to the service.
func WithLogger(log interfaces.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source used for cache expiry and the recent
// content window.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSearchCacheTTL overrides the search result cache lifetime. Zero
// disables search caching.
func WithSearchCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.searchTTL = ttl
	}
}

// WithStatsCacheTTL overrides the stats cache lifetime. Zero disables stats
// caching.
func WithStatsCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.statsTTL = ttl
	}
}

// New constructs a listing service over the supplied store and document
// service.
func New(store entity.Store, docs *document.Service, opts ...Option) *Service {
	s := &Service{
		store:     store,
		docs:      docs,
		log:       logging.NoOp(),
		now:       time.Now,
		searchTTL: searchCacheTTL,
		statsTTL:  statsCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.searchCache = ttlcache.New[*SearchResult](s.searchTTL, ttlcache.WithClock[*SearchResult](s.now))
	s.statsCache = ttlcache.New[*Stats](s.statsTTL, ttlcache.WithClock[*Stats](s.now))
	return s
}

// clampRange normalizes limit and offset: limits land in [1, 100] with a
// default of 10, offsets never go negative.
func clampRange(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
