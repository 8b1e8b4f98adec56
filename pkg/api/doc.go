// Package api wires the basket recommendation service into the reusable
// pkg/server HTTP server.
//
// Serve loads an optional .env file, configures structured logging, loads
// the rule table named by BASKET_RULES and registers the application routes.
// The rule table and the optional product catalog are cached and reloaded
// after BASKET_CACHE_TTL.
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET  /v1/recommendations - recommendations from item, items, minConfidence and topN parameters
//   - POST /v1/recommendations - recommendations from a JSON or YAML query body
//   - GET  /v1/products        - catalog products, filtered by prefix and capped by limit
//   - POST /v1/rules/reload    - reload the rule table now
//
// System endpoints:
//   - GET /health  - liveness
//   - GET /ready   - readiness
//   - GET /metrics - Prometheus metrics
//
// Example:
//
//	curl "http://localhost:8080/v1/recommendations?item=WHITE%20METAL%20LANTERN&topN=3"
//
// # Configuration
//
//   - BASKET_RULES: rule table path or URL (CSV, JSON, YAML or TOML), required
//   - BASKET_PRODUCTS: transaction dataset path or URL, optional
//   - BASKET_PRODUCTS_COLUMN: product name column (default: Description)
//   - BASKET_CACHE_TTL: reload interval as a Go duration (default: 10m)
//   - PORT, RATE_LIMIT, RATE_LIMIT_BURST, SHUTDOWN_TIMEOUT_SECONDS: see pkg/server
//   - LOG_LEVEL: debug, info, warn or error
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/mchmarny/basket/pkg/api.version=1.0.0'"
package api
