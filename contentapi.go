// Package contentapi exposes a multilingual content delivery API: an entity
// store, a normalization pipeline that flattens stored entities into
// client-ready documents, listing/search/stats services, and an HTTP surface
// with a uniform response envelope.
package contentapi

import (
	"context"
	"database/sql"
	nethttp "net/http"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/goliatone/go-content-api/client"
	"github.com/goliatone/go-content-api/document"
	"github.com/goliatone/go-content-api/entity"
	"github.com/goliatone/go-content-api/internal/entitybun"
	apihttp "github.com/goliatone/go-content-api/internal/http"
	"github.com/goliatone/go-content-api/internal/listing"
	"github.com/goliatone/go-content-api/internal/logging"
	"github.com/goliatone/go-content-api/internal/logging/gologger"
	"github.com/goliatone/go-content-api/internal/seed"
	"github.com/goliatone/go-content-api/pkg/interfaces"
)

// Exported service contracts for consumers of the module.
type (
	// DocumentService exports the normalization pipeline.
	DocumentService = document.Service

	// ListingService exports the collection read services.
	ListingService = listing.Service

	// Store exports the entity persistence contract.
	Store = entity.Store

	// Client exports the API consumer.
	Client = client.Client

	// Logger exports the logging contract accepted across the module.
	Logger = interfaces.Logger

	// LoggerProvider exports the named-logger factory contract.
	LoggerProvider = interfaces.LoggerProvider
)

// Module is the top level content API runtime.
type Module struct {
	cfg      Config
	store    entity.Store
	docs     *document.Service
	listings *listing.Service
	api      *apihttp.API
	provider interfaces.LoggerProvider
}

// New wires a module from configuration: storage, URL building, the
// normalization pipeline, listing services, and the HTTP surface.
func New(cfg Config) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
		Focus:     cfg.Logging.Focus,
	})
	if err != nil {
		return nil, err
	}

	store, err := buildStore(cfg, provider)
	if err != nil {
		return nil, err
	}

	urls := document.NewURLBuilder(cfg.BaseURL, cfg.LanguageCodes(), cfg.DefaultLanguage)

	docOpts := []document.Option{document.WithLogger(logging.DocumentLogger(provider))}
	if len(cfg.Content.MediaImageFields) > 0 {
		docOpts = append(docOpts, document.WithMediaImageFields(cfg.Content.MediaImageFields...))
	}
	if len(cfg.Content.MediaFileFields) > 0 {
		docOpts = append(docOpts, document.WithMediaFileFields(cfg.Content.MediaFileFields...))
	}
	if cfg.Content.MaxDepth > 0 {
		docOpts = append(docOpts, document.WithMaxDepth(cfg.Content.MaxDepth))
	}
	if cfg.Content.RecommendedImageStyle != "" {
		docOpts = append(docOpts, document.WithRecommendedImageStyle(cfg.Content.RecommendedImageStyle))
	}
	if cfg.Content.PlaceholderImage != "" {
		docOpts = append(docOpts, document.WithPlaceholderImage(cfg.Content.PlaceholderImage))
	}
	docs := document.New(store, urls, docOpts...)

	listOpts := []listing.Option{listing.WithLogger(logging.ListingLogger(provider))}
	if cfg.Cache.SearchTTL > 0 {
		listOpts = append(listOpts, listing.WithSearchCacheTTL(cfg.Cache.SearchTTL))
	}
	if cfg.Cache.StatsTTL > 0 {
		listOpts = append(listOpts, listing.WithStatsCacheTTL(cfg.Cache.StatsTTL))
	}
	listings := listing.New(store, docs, listOpts...)

	apiOpts := []apihttp.Option{apihttp.WithLogger(logging.HTTPLogger(provider))}
	if cfg.HTTP.BasePath != "" {
		apiOpts = append(apiOpts, apihttp.WithBasePath(cfg.HTTP.BasePath))
	}
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		apiOpts = append(apiOpts, apihttp.WithAllowedOrigins(cfg.HTTP.AllowedOrigins...))
	}
	api := apihttp.New(store, docs, listings, apiOpts...)

	return &Module{
		cfg:      cfg,
		store:    store,
		docs:     docs,
		listings: listings,
		api:      api,
		provider: provider,
	}, nil
}

func buildStore(cfg Config, provider interfaces.LoggerProvider) (entity.Store, error) {
	switch cfg.Storage.Driver {
	case "", DriverMemory:
		languages := make([]entity.Language, 0, len(cfg.Languages))
		for _, lang := range cfg.Languages {
			languages = append(languages, entity.Language{
				Code:      lang.Code,
				Name:      lang.Name,
				Direction: lang.Direction,
				Weight:    lang.Weight,
			})
		}
		return entity.NewMemoryStore(languages, cfg.DefaultLanguage), nil

	case DriverSQLite:
		sqldb, err := sql.Open("sqlite3", cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		db := bun.NewDB(sqldb, sqlitedialect.New())
		return entitybun.New(db, entitybun.WithLogger(logging.ModuleLogger(provider, "contentapi.store"))), nil

	case DriverPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Storage.DSN)))
		db := bun.NewDB(sqldb, pgdialect.New())
		return entitybun.New(db, entitybun.WithLogger(logging.ModuleLogger(provider, "contentapi.store"))), nil

	default:
		return nil, ErrStorageDriverUnknown
	}
}

// Store exposes the configured entity store.
func (m *Module) Store() entity.Store {
	return m.store
}

// Documents exposes the normalization pipeline.
func (m *Module) Documents() *document.Service {
	return m.docs
}

// Listings exposes the collection read services.
func (m *Module) Listings() *listing.Service {
	return m.listings
}

// Handler returns the full HTTP surface, CORS included.
func (m *Module) Handler() nethttp.Handler {
	return m.api.Handler()
}

// Logger returns a named logger from the module's provider.
func (m *Module) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(m.provider, name)
}

// Migrate creates the storage schema when the configured store is database
// backed. The memory store needs no schema.
func (m *Module) Migrate(ctx context.Context) error {
	if store, ok := m.store.(*entitybun.Store); ok {
		return store.CreateSchema(ctx)
	}
	return nil
}

// Seed imports markdown content from the configured seed directory into the
// store. Only stores with import support participate; the memory store
// accepts entities directly.
func (m *Module) Seed(ctx context.Context) error {
	if m.cfg.Seed.Dir == "" {
		return nil
	}

	importer := seed.New(os.DirFS(m.cfg.Seed.Dir), m.cfg.DefaultLanguage,
		seed.WithLogger(logging.SeedLogger(m.provider)))
	entities, err := importer.Entities(ctx)
	if err != nil {
		return err
	}

	switch store := m.store.(type) {
	case *entity.MemoryStore:
		for _, e := range entities {
			store.Put(e)
		}
	case *entitybun.Store:
		for _, e := range entities {
			if err := store.ImportEntity(ctx, e); err != nil {
				return err
			}
		}
	}
	return nil
}
