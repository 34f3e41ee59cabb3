// Package http exposes the public content API endpoints. Every response,
// success or failure, is wrapped in the same envelope and carries permissive
// CORS headers so browser clients can consume the API cross-origin.
package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"

	"github.com/goliatone/go-content-api/document"
	"github.com/goliatone/go-content-api/entity"
	"github.com/goliatone/go-content-api/internal/listing"
	"github.com/goliatone/go-content-api/internal/logging"
	"github.com/goliatone/go-content-api/pkg/interfaces"
)

// API registers the public content endpoints.
type API struct {
	basePath string
	store    entity.Store
	docs     *document.Service
	listings *listing.Service
	log      interfaces.Logger
	now      func() time.Time
	cors     *cors.Cors
}

// Option mutates the API configuration.
type Option func(*API)

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = "/" + strings.Trim(trimmed, "/")
		}
	}
}

// WithLogger attaches a logger namespace to the API.
func WithLogger(log interfaces.Logger) Option {
	return func(api *API) {
		if log != nil {
			api.log = log
		}
	}
}

// WithClock overrides the envelope timestamp source.
func WithClock(now func() time.Time) Option {
	return func(api *API) {
		if now != nil {
			api.now = now
		}
	}
}

// WithAllowedOrigins restricts CORS to the given origins instead of the
// permissive default.
func WithAllowedOrigins(origins ...string) Option {
	return func(api *API) {
		api.cors = cors.New(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		})
	}
}

// New constructs the public API over the entity store and read services.
func New(store entity.Store, docs *document.Service, listings *listing.Service, opts ...Option) *API {
	api := &API{
		basePath: "/api",
		store:    store,
		docs:     docs,
		listings: listings,
		log:      logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	if api.cors == nil {
		api.cors = cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		})
	}
	return api
}

// Register mounts every endpoint on the mux.
func (api *API) Register(mux *http.ServeMux) {
	base := api.basePath
	mux.HandleFunc("GET "+base+"/page/{path...}", api.handlePage)
	mux.HandleFunc("GET "+base+"/content/{type}", api.handleList)
	mux.HandleFunc("GET "+base+"/content/{type}/{id}", api.handleGet)
	mux.HandleFunc("GET "+base+"/languages", api.handleLanguages)
	mux.HandleFunc("GET "+base+"/search", api.handleSearch)
	mux.HandleFunc("GET "+base+"/stats", api.handleStats)
	mux.HandleFunc("GET "+base+"/taxonomy/{vocabulary}", api.handleTaxonomy)
}

// Handler returns the registered mux wrapped with the CORS middleware.
func (api *API) Handler() http.Handler {
	mux := http.NewServeMux()
	api.Register(mux)
	return api.cors.Handler(mux)
}
