package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/basket/pkg/defaults"
	cnserrors "github.com/mchmarny/basket/pkg/errors"
	"github.com/mchmarny/basket/pkg/recommendation"
)

const (
	testRules    = "../rules/testdata/rules.yaml"
	testProducts = "../catalog/testdata/cleaned_data.csv"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "basketd", name)
	assert.Equal(t, "dev", versionDefault)
	assert.NotEmpty(t, version)
	assert.NotEmpty(t, commit)
	assert.NotEmpty(t, date)
}

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig(envOf(map[string]string{
		EnvRules:    " rules.csv ",
		EnvCacheTTL: "90s",
	}))
	require.NoError(t, err)
	assert.Equal(t, "rules.csv", cfg.Rules)
	assert.Empty(t, cfg.Products)
	assert.Equal(t, defaults.ProductColumn, cfg.ProductsColumn)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(envOf(map[string]string{
		EnvRules:          "rules.csv",
		EnvProducts:       "data.csv",
		EnvProductsColumn: "Item",
	}))
	require.NoError(t, err)
	assert.Equal(t, "data.csv", cfg.Products)
	assert.Equal(t, "Item", cfg.ProductsColumn)
	assert.Equal(t, defaults.RuleCacheTTL, cfg.CacheTTL)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing rules", map[string]string{}},
		{"bad ttl", map[string]string{EnvRules: "r.csv", EnvCacheTTL: "soon"}},
		{"negative ttl", map[string]string{EnvRules: "r.csv", EnvCacheTTL: "-1m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(envOf(tt.env))
			require.Error(t, err)
			assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvRules, testRules)
	t.Setenv(EnvCacheTTL, "")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, testRules, cfg.Rules)
}

func TestNewRoutes(t *testing.T) {
	routes, checks, err := newRoutes(context.Background(), &Config{
		Rules:          testRules,
		Products:       testProducts,
		ProductsColumn: defaults.ProductColumn,
		CacheTTL:       time.Minute,
	})
	require.NoError(t, err)

	for _, path := range []string{"/v1/recommendations", "/v1/products", "/v1/rules/reload"} {
		assert.Contains(t, routes, path)
	}
	require.Contains(t, checks, "rules")
	assert.NoError(t, checks["rules"](context.Background()))

	w := httptest.NewRecorder()
	routes["/v1/recommendations"](w, httptest.NewRequest(http.MethodGet, "/v1/recommendations?item=bread", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp recommendation.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "BUTTER", resp.Recommendations[0].Item)
	assert.Equal(t, []string{"BREAD"}, resp.UnknownItems)

	w = httptest.NewRecorder()
	routes["/v1/products"](w, httptest.NewRequest(http.MethodGet, "/v1/products?prefix=white", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var products recommendation.ProductsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Equal(t, []string{"WHITE HANGING HEART T-LIGHT HOLDER", "WHITE METAL LANTERN"}, products.Products)

	w = httptest.NewRecorder()
	routes["/v1/rules/reload"](w, httptest.NewRequest(http.MethodPost, "/v1/rules/reload", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewRoutesBadRules(t *testing.T) {
	_, _, err := newRoutes(context.Background(), &Config{Rules: "testdata/missing.csv"})
	require.Error(t, err)
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeNotFound))
}
