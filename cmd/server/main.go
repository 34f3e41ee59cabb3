// Command server runs the content API over the configured store, optionally
// seeding it from a markdown content tree at startup.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	contentapi "github.com/goliatone/go-content-api"
)

func main() {
	var (
		addr      = flag.String("addr", ":8080", "listen address")
		baseURL   = flag.String("base-url", "http://localhost:8080", "public site base URL")
		driver    = flag.String("storage", "memory", "storage driver (memory, sqlite, postgres)")
		dsn       = flag.String("dsn", "", "storage DSN for database drivers")
		seedDir   = flag.String("seed", "", "markdown seed directory")
		languages = flag.String("languages", "en:English", "comma separated code:name language pairs, first is the default")
		logLevel  = flag.String("log-level", "info", "log level")
		logFormat = flag.String("log-format", "json", "log format (json, console, pretty)")
	)
	flag.Parse()

	cfg := contentapi.DefaultConfig()
	cfg.BaseURL = *baseURL
	cfg.HTTP.Addr = *addr
	cfg.Storage.Driver = *driver
	cfg.Storage.DSN = *dsn
	cfg.Seed.Dir = *seedDir
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat

	if parsed := parseLanguages(*languages); len(parsed) > 0 {
		cfg.Languages = parsed
		cfg.DefaultLanguage = parsed[0].Code
	}

	module, err := contentapi.New(cfg)
	if err != nil {
		log.Fatalf("configure module: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := module.Migrate(ctx); err != nil {
		log.Fatalf("migrate storage: %v", err)
	}
	if err := module.Seed(ctx); err != nil {
		log.Fatalf("seed content: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           module.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger := module.Logger("contentapi.server")
	go func() {
		logger.Info("listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}

func parseLanguages(raw string) []contentapi.LanguageConfig {
	out := []contentapi.LanguageConfig{}
	for weight, pair := range strings.Split(raw, ",") {
		code, name, _ := strings.Cut(strings.TrimSpace(pair), ":")
		if code == "" {
			continue
		}
		if name == "" {
			name = code
		}
		out = append(out, contentapi.LanguageConfig{
			Code:      code,
			Name:      name,
			Direction: "ltr",
			Weight:    weight,
		})
	}
	return out
}
