package api

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/mchmarny/basket/pkg/catalog"
	"github.com/mchmarny/basket/pkg/defaults"
	"github.com/mchmarny/basket/pkg/logging"
	"github.com/mchmarny/basket/pkg/recommendation"
	"github.com/mchmarny/basket/pkg/rules"
	"github.com/mchmarny/basket/pkg/server"
	"github.com/mchmarny/basket/pkg/store"
)

const (
	name           = "basketd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/mchmarny/basket/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It loads an optional .env file, configures logging, loads the rule table
// and serves the recommendation routes.
func Serve() error {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	cfg, err := ConfigFromEnv()
	if err != nil {
		return err
	}

	routes, checks, err := newRoutes(ctx, cfg)
	if err != nil {
		return err
	}

	opts := []server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes),
	}
	for n, check := range checks {
		opts = append(opts, server.WithReadinessCheck(n, check))
	}

	s := server.New(opts...)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// newRoutes builds the rule and catalog caches, loads the rule table once so
// a bad source fails at startup, and returns the application handlers with
// the readiness checks guarding them.
func newRoutes(ctx context.Context, cfg *Config) (map[string]http.HandlerFunc, map[string]server.ReadinessCheck, error) {
	cacheOpts := []store.Option{
		store.WithTTL(cfg.CacheTTL),
		store.WithBreaker(defaults.SourceBreakerFailures, defaults.SourceBreakerCooldown),
	}

	ruleCache := store.New[*rules.Table]("rules", func(ctx context.Context) (*rules.Table, error) {
		return rules.Load(ctx, cfg.Rules)
	}, cacheOpts...)

	table, err := ruleCache.Get(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rule table from %s: %w", cfg.Rules, err)
	}
	slog.Info("rule table loaded", "source", table.Source, "rules", table.Len())

	opts := []recommendation.Option{
		recommendation.WithRules(ruleCache),
		recommendation.WithVersion(version),
	}

	if cfg.Products != "" {
		catalogCache := store.New[*catalog.Catalog]("catalog", func(ctx context.Context) (*catalog.Catalog, error) {
			return catalog.Load(ctx, cfg.Products, cfg.ProductsColumn)
		}, cacheOpts...)
		opts = append(opts, recommendation.WithCatalog(catalogCache))
	}

	b := recommendation.NewBuilder(opts...)

	return map[string]http.HandlerFunc{
		"/v1/recommendations": b.HandleRecommendations,
		"/v1/products":        b.HandleProducts,
		"/v1/rules/reload":    b.HandleReload,
	}, map[string]server.ReadinessCheck{"rules": ruleCache.Ready}, nil
}
