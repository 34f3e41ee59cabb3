// Package runtimeconfig declares the module configuration surface and its
// validation rules. The root package re-exports these types so host
// applications never import internal paths.
package runtimeconfig

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	ErrBaseURLRequired         = errors.New("config: base URL required")
	ErrDefaultLanguageRequired = errors.New("config: default language required")
	ErrDefaultLanguageUnknown  = errors.New("config: default language not in language list")
	ErrStorageDriverUnknown    = errors.New("config: unknown storage driver")
	ErrStorageDSNRequired      = errors.New("config: storage DSN required for database drivers")
	ErrLoggingLevelInvalid     = errors.New("config: invalid logging level")
	ErrLoggingFormatInvalid    = errors.New("config: invalid logging format")
)

// Storage driver identifiers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the full runtime configuration.
type Config struct {
	BaseURL         string           `json:"base_url" yaml:"base_url"`
	DefaultLanguage string           `json:"default_language" yaml:"default_language"`
	Languages       []LanguageConfig `json:"languages" yaml:"languages"`
	Storage         StorageConfig    `json:"storage" yaml:"storage"`
	HTTP            HTTPConfig       `json:"http" yaml:"http"`
	Content         ContentConfig    `json:"content" yaml:"content"`
	Cache           CacheConfig      `json:"cache" yaml:"cache"`
	Logging         LoggingConfig    `json:"logging" yaml:"logging"`
	Seed            SeedConfig       `json:"seed" yaml:"seed"`
}

// LanguageConfig declares one site language.
type LanguageConfig struct {
	Code      string `json:"code" yaml:"code"`
	Name      string `json:"name" yaml:"name"`
	Direction string `json:"direction" yaml:"direction"`
	Weight    int    `json:"weight" yaml:"weight"`
}

// StorageConfig selects the entity store backend.
type StorageConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	DSN    string `json:"dsn" yaml:"dsn"`
}

// HTTPConfig tunes the public API surface.
type HTTPConfig struct {
	Addr           string   `json:"addr" yaml:"addr"`
	BasePath       string   `json:"base_path" yaml:"base_path"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// ContentConfig tunes the normalization pipeline.
type ContentConfig struct {
	MediaImageFields      []string `json:"media_image_fields" yaml:"media_image_fields"`
	MediaFileFields       []string `json:"media_file_fields" yaml:"media_file_fields"`
	MaxDepth              int      `json:"max_depth" yaml:"max_depth"`
	RecommendedImageStyle string   `json:"recommended_image_style" yaml:"recommended_image_style"`
	PlaceholderImage      string   `json:"placeholder_image" yaml:"placeholder_image"`
}

// CacheConfig tunes the read-side caches.
type CacheConfig struct {
	SearchTTL time.Duration `json:"search_ttl" yaml:"search_ttl"`
	StatsTTL  time.Duration `json:"stats_ttl" yaml:"stats_ttl"`
}

// LoggingConfig tunes the structured logging stack.
type LoggingConfig struct {
	Level     string   `json:"level" yaml:"level"`
	Format    string   `json:"format" yaml:"format"`
	AddSource bool     `json:"add_source" yaml:"add_source"`
	Focus     []string `json:"focus" yaml:"focus"`
}

// SeedConfig points the importer at a markdown content tree.
type SeedConfig struct {
	Dir string `json:"dir" yaml:"dir"`
}

// DefaultConfig returns a runnable configuration: in-memory storage, English
// only, JSON logging at info.
func DefaultConfig() Config {
	return Config{
		BaseURL:         "http://localhost:8080",
		DefaultLanguage: "en",
		Languages: []LanguageConfig{
			{Code: "en", Name: "English", Direction: "ltr"},
		},
		Storage: StorageConfig{Driver: DriverMemory},
		HTTP: HTTPConfig{
			Addr:     ":8080",
			BasePath: "/api",
		},
		Cache: CacheConfig{
			SearchTTL: 5 * time.Minute,
			StatsTTL:  30 * time.Minute,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

// Validate checks the configuration for structural problems before any
// component is constructed.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required.Error(ErrBaseURLRequired.Error()), is.URL),
		validation.Field(&c.DefaultLanguage, validation.Required.Error(ErrDefaultLanguageRequired.Error())),
		validation.Field(&c.Languages, validation.Required, validation.Length(1, 0)),
	); err != nil {
		return err
	}

	if !c.hasLanguage(c.DefaultLanguage) {
		return ErrDefaultLanguageUnknown
	}

	switch c.Storage.Driver {
	case "", DriverMemory:
	case DriverSQLite, DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return ErrStorageDriverUnknown
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}
	return nil
}

func (c Config) hasLanguage(code string) bool {
	for _, lang := range c.Languages {
		if lang.Code == code {
			return true
		}
	}
	return false
}

// LanguageCodes returns the configured codes in declaration order.
func (c Config) LanguageCodes() []string {
	codes := make([]string, 0, len(c.Languages))
	for _, lang := range c.Languages {
		codes = append(codes, lang.Code)
	}
	return codes
}
