package api

import (
	"os"
	"strings"
	"time"

	"github.com/mchmarny/basket/pkg/defaults"
	cnserrors "github.com/mchmarny/basket/pkg/errors"
)

// Environment variables read by Serve.
const (
	EnvRules          = "BASKET_RULES"
	EnvProducts       = "BASKET_PRODUCTS"
	EnvProductsColumn = "BASKET_PRODUCTS_COLUMN"
	EnvCacheTTL       = "BASKET_CACHE_TTL"
)

// Config holds the data sources served by the API.
type Config struct {
	// Rules is the rule table path or URL. Required.
	Rules string
	// Products is the transaction dataset path or URL. Optional.
	Products string
	// ProductsColumn is the product name column of Products.
	ProductsColumn string
	// CacheTTL is how long loaded rules and products are kept before reloading.
	CacheTTL time.Duration
}

// ConfigFromEnv reads Config from the process environment.
func ConfigFromEnv() (*Config, error) {
	return parseConfig(os.Getenv)
}

func parseConfig(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Rules:          strings.TrimSpace(getenv(EnvRules)),
		Products:       strings.TrimSpace(getenv(EnvProducts)),
		ProductsColumn: strings.TrimSpace(getenv(EnvProductsColumn)),
		CacheTTL:       defaults.RuleCacheTTL,
	}

	if cfg.Rules == "" {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"rule table source is required", map[string]any{"env": EnvRules})
	}
	if cfg.ProductsColumn == "" {
		cfg.ProductsColumn = defaults.ProductColumn
	}

	if s := strings.TrimSpace(getenv(EnvCacheTTL)); s != "" {
		ttl, err := time.ParseDuration(s)
		if err != nil || ttl < 0 {
			return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
				"invalid cache TTL", err, map[string]any{"env": EnvCacheTTL, "value": s})
		}
		cfg.CacheTTL = ttl
	}

	return cfg, nil
}
