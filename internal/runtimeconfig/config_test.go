package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-content-api/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}
}

func TestValidateRequiresBaseURL(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected base URL validation error")
	}
}

func TestValidateDefaultLanguageMustBeConfigured(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLanguage = "fr"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrDefaultLanguageUnknown) {
		t.Fatalf("expected ErrDefaultLanguageUnknown got %v", err)
	}
}

func TestValidateStorageDriver(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = "oracle"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown got %v", err)
	}

	cfg.Storage.Driver = runtimeconfig.DriverSQLite
	cfg.Storage.DSN = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired got %v", err)
	}

	cfg.Storage.DSN = "file:content.db"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid sqlite config, got %v", err)
	}
}

func TestValidateLogging(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid got %v", err)
	}
}

func TestLanguageCodes(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Languages = []runtimeconfig.LanguageConfig{
		{Code: "en", Name: "English"},
		{Code: "zh", Name: "Chinese"},
	}
	codes := cfg.LanguageCodes()
	if len(codes) != 2 || codes[0] != "en" || codes[1] != "zh" {
		t.Fatalf("unexpected codes %v", codes)
	}
}
