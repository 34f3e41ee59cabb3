package contentapi

import "github.com/goliatone/go-content-api/internal/runtimeconfig"

var (
	ErrBaseURLRequired         = runtimeconfig.ErrBaseURLRequired
	ErrDefaultLanguageRequired = runtimeconfig.ErrDefaultLanguageRequired
	ErrDefaultLanguageUnknown  = runtimeconfig.ErrDefaultLanguageUnknown
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	LanguageConfig = runtimeconfig.LanguageConfig
	StorageConfig  = runtimeconfig.StorageConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	ContentConfig  = runtimeconfig.ContentConfig
	CacheConfig    = runtimeconfig.CacheConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	SeedConfig     = runtimeconfig.SeedConfig
)

// Storage driver identifiers.
const (
	DriverMemory   = runtimeconfig.DriverMemory
	DriverSQLite   = runtimeconfig.DriverSQLite
	DriverPostgres = runtimeconfig.DriverPostgres
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
