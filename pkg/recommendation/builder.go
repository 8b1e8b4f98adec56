package recommendation

import (
	"context"
	"log/slog"
	"time"

	"github.com/mchmarny/basket/pkg/defaults"
	cnserrors "github.com/mchmarny/basket/pkg/errors"
	"github.com/mchmarny/basket/pkg/header"
	"github.com/mchmarny/basket/pkg/recommender"
)

// Option configures a Builder.
type Option func(*Builder)

// WithRules sets the rule table source. Required.
func WithRules(src RuleSource) Option {
	return func(b *Builder) {
		b.rules = src
	}
}

// WithCatalog sets the product catalog used to flag unknown basket items
// and to serve the products endpoint.
func WithCatalog(src CatalogSource) Option {
	return func(b *Builder) {
		b.catalog = src
	}
}

// WithVersion sets the version reported in responses.
func WithVersion(version string) Option {
	return func(b *Builder) {
		b.version = version
	}
}

// WithCacheTTL sets the Cache-Control max-age of recommendation responses.
func WithCacheTTL(ttl time.Duration) Option {
	return func(b *Builder) {
		b.cacheTTL = ttl
	}
}

// Builder answers recommendation queries against its sources.
type Builder struct {
	rules    RuleSource
	catalog  CatalogSource
	version  string
	cacheTTL time.Duration
}

// NewBuilder returns a Builder with the given options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		cacheTTL: defaults.RecommendationCacheTTL,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build validates q, evaluates it against the current rule table and, when
// a catalog is configured, lists basket items the catalog does not know.
// An empty recommendation list is a valid response.
func (b *Builder) Build(ctx context.Context, q *Query) (*Response, error) {
	start := time.Now()

	if err := q.Validate(); err != nil {
		return nil, err
	}
	if b.rules == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeUnavailable, "no rule source configured")
	}

	table, err := b.rules.Get(ctx)
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeUnavailable, "rule table unavailable", err)
	}
	if table == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeUnavailable, "rule table not loaded")
	}

	result := recommender.Evaluate(table.Rules, q.Items, q.MinConfidence, q.TopN)

	resp := &Response{
		Basket:          q.Basket(),
		MinConfidence:   q.MinConfidence,
		TopN:            q.TopN,
		Fallback:        result.Fallback,
		Recommendations: result.Recommendations,
		UnknownItems:    b.unknownItems(ctx, q),
		RuleCount:       table.Len(),
		RulesLoadedAt:   table.LoadedAt,
	}
	resp.Init(header.KindRecommendation, b.version)

	recommendationsTotal.WithLabelValues(outcomeOf(resp)).Inc()
	recommendationDuration.Observe(time.Since(start).Seconds())

	slog.Debug("recommendation built",
		"basket", len(resp.Basket),
		"fallback", resp.Fallback,
		"candidates", result.Candidates,
		"recommendations", len(resp.Recommendations),
		"unknown", len(resp.UnknownItems),
	)

	return resp, nil
}

// unknownItems is advisory: a catalog that fails to load is logged and skipped.
func (b *Builder) unknownItems(ctx context.Context, q *Query) []string {
	if b.catalog == nil {
		return nil
	}
	cat, err := b.catalog.Get(ctx)
	if err != nil {
		slog.Warn("product catalog unavailable, skipping unknown item check", "error", err)
		return nil
	}

	var unknown []string
	for _, item := range q.Basket() {
		if !cat.Contains(item) {
			unknown = append(unknown, item)
		}
	}
	return unknown
}
