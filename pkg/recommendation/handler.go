package recommendation

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mchmarny/basket/pkg/defaults"
	cnserrors "github.com/mchmarny/basket/pkg/errors"
	"github.com/mchmarny/basket/pkg/header"
	"github.com/mchmarny/basket/pkg/rules"
	"github.com/mchmarny/basket/pkg/serializer"
	"github.com/mchmarny/basket/pkg/server"
)

// Query parameters of the products endpoint.
const (
	QueryParamPrefix = "prefix"
	QueryParamLimit  = "limit"
)

// RuleReloader is implemented by rule sources that can be refreshed on demand.
type RuleReloader interface {
	Reload(ctx context.Context) (*rules.Table, error)
}

// Invalidator is implemented by sources that can drop their cached value.
type Invalidator interface {
	Invalidate()
}

// HandleRecommendations serves GET requests with item, items, minConfidence
// and topN query parameters and POST requests with a JSON or YAML Query body.
func (b *Builder) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.RecommendationHandlerTimeout)
	defer cancel()

	var q *Query
	var err error

	switch r.Method {
	case http.MethodGet:
		q, err = ParseQuery(r)
	case http.MethodPost:
		q, err = ParseQueryFromBody(r.Body, r.Header.Get("Content-Type"))
		defer func() {
			if r.Body != nil {
				r.Body.Close()
			}
		}()
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
		return
	}

	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid recommendation query", nil)
		return
	}

	resp, err := b.Build(ctx, q)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to build recommendations", nil)
		return
	}

	w.Header().Set("Cache-Control", b.cacheControl())
	if etag := rulesETag(resp.RulesLoadedAt); etag != "" {
		w.Header().Set("ETag", etag)
		if r.Method == http.MethodGet && matchesETag(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// HandleProducts lists catalog products, optionally filtered by a
// case-insensitive prefix and capped by limit.
func (b *Builder) HandleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.RecommendationHandlerTimeout)
	defer cancel()

	if b.catalog == nil {
		server.WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound,
			"No product catalog configured", false, nil)
		return
	}

	values := r.URL.Query()
	limit := defaults.ProductSearchLimit
	if s := strings.TrimSpace(values.Get(QueryParamLimit)); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
				"limit must be a positive integer", false, map[string]any{QueryParamLimit: s})
			return
		}
		limit = v
	}

	cat, err := b.catalog.Get(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r,
			cnserrors.Wrap(cnserrors.ErrCodeUnavailable, "product catalog unavailable", err),
			"Failed to load product catalog", nil)
		return
	}

	w.Header().Set("Cache-Control", b.cacheControl())

	serializer.RespondJSON(w, http.StatusOK, NewProductsResponse(cat, values.Get(QueryParamPrefix), limit, b.version))
}

// HandleReload reloads the rule table and drops the cached catalog so the
// next products request reads it again.
func (b *Builder) HandleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.RecommendationHandlerTimeout)
	defer cancel()

	reloader, ok := b.rules.(RuleReloader)
	if !ok {
		server.WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound,
			"Rule source does not support reload", false, nil)
		return
	}

	table, err := reloader.Reload(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r,
			cnserrors.Wrap(cnserrors.ErrCodeUnavailable, "rule table reload failed", err),
			"Failed to reload rules", nil)
		return
	}

	if table == nil {
		server.WriteError(w, r, http.StatusServiceUnavailable, cnserrors.ErrCodeUnavailable,
			"Rule table not loaded", true, nil)
		return
	}

	if inv, ok := b.catalog.(Invalidator); ok {
		inv.Invalidate()
	}

	slog.Info("rule table reloaded", "source", table.Source, "rules", table.Len())

	w.Header().Set("Cache-Control", "no-store")

	resp := &ReloadResponse{
		Source:    table.Source,
		RuleCount: table.Len(),
		LoadedAt:  table.LoadedAt,
	}
	resp.Init(header.KindRuleReload, b.version)

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// cacheControl keeps responses out of shared caches; a rule reload changes
// them immediately.
func (b *Builder) cacheControl() string {
	return fmt.Sprintf("private, max-age=%d", int(b.cacheTTL.Seconds()))
}

// rulesETag identifies the rule table a response was built from. The URL
// carries the query, so the table load time is enough.
func rulesETag(loadedAt time.Time) string {
	if loadedAt.IsZero() {
		return ""
	}
	return fmt.Sprintf(`W/"rules-%d"`, loadedAt.UnixNano())
}

// matchesETag reports whether an If-None-Match header names etag or is "*".
func matchesETag(ifNoneMatch, etag string) bool {
	for candidate := range strings.SplitSeq(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	server.WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method":  r.Method,
			"allowed": allowed,
		})
}
