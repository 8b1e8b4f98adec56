package recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/basket/pkg/catalog"
	cnserrors "github.com/mchmarny/basket/pkg/errors"
	"github.com/mchmarny/basket/pkg/header"
	"github.com/mchmarny/basket/pkg/recommender"
	"github.com/mchmarny/basket/pkg/rules"
)

func testTable() *rules.Table {
	return &rules.Table{
		Source:   "test",
		LoadedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Rules: []recommender.Rule{
			{Antecedents: []string{"BREAD"}, Consequents: []string{"BUTTER"}, Confidence: 0.8, Lift: 3.0},
			{Antecedents: []string{"BREAD"}, Consequents: []string{"JAM"}, Confidence: 0.6, Lift: 2.0},
			{Antecedents: []string{"TEA"}, Consequents: []string{"MILK"}, Confidence: 0.9, Lift: 4.0},
		},
	}
}

func TestBuildMatched(t *testing.T) {
	b := NewBuilder(WithRules(StaticRules(testTable())), WithVersion("v1.2.3"))

	resp, err := b.Build(context.Background(), NewQuery("bread"))
	require.NoError(t, err)

	assert.Equal(t, header.KindRecommendation, resp.Kind)
	assert.Equal(t, header.APIVersion, resp.APIVersion)
	assert.Equal(t, []string{"BREAD"}, resp.Basket)
	assert.False(t, resp.Fallback)
	assert.Equal(t, 3, resp.RuleCount)
	assert.Equal(t, "v1.2.3", resp.Metadata[header.MetadataVersion])
	assert.Nil(t, resp.UnknownItems)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "BUTTER", resp.Recommendations[0].Item)
	assert.Equal(t, "JAM", resp.Recommendations[1].Item)
	assert.False(t, resp.Timestamp().IsZero())
}

func TestBuildFallback(t *testing.T) {
	b := NewBuilder(WithRules(StaticRules(testTable())))

	resp, err := b.Build(context.Background(), NewQuery("coffee"))
	require.NoError(t, err)

	assert.True(t, resp.Fallback)
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "MILK", resp.Recommendations[0].Item)
}

func TestBuildEmptyTable(t *testing.T) {
	b := NewBuilder(WithRules(StaticRules(&rules.Table{Source: "empty"})))

	resp, err := b.Build(context.Background(), NewQuery("bread"))
	require.NoError(t, err)
	assert.NotNil(t, resp.Recommendations)
	assert.Empty(t, resp.Recommendations)
	assert.Equal(t, "no recommendations found", resp.EmptyTableMessage())
}

func TestBuildUnknownItems(t *testing.T) {
	b := NewBuilder(
		WithRules(StaticRules(testTable())),
		WithCatalog(StaticCatalog(catalog.New("bread", "tea"))),
	)

	resp, err := b.Build(context.Background(), NewQuery("Bread", "unicorn"))
	require.NoError(t, err)
	assert.Equal(t, []string{"UNICORN"}, resp.UnknownItems)
}

func TestBuildCatalogErrorIsAdvisory(t *testing.T) {
	failing := CatalogFunc(func(context.Context) (*catalog.Catalog, error) {
		return nil, errors.New("boom")
	})
	b := NewBuilder(WithRules(StaticRules(testTable())), WithCatalog(failing))

	resp, err := b.Build(context.Background(), NewQuery("bread"))
	require.NoError(t, err)
	assert.Nil(t, resp.UnknownItems)
	assert.Len(t, resp.Recommendations, 2)
}

func TestBuildErrors(t *testing.T) {
	failing := RulesFunc(func(context.Context) (*rules.Table, error) {
		return nil, errors.New("disk on fire")
	})
	missing := RulesFunc(func(context.Context) (*rules.Table, error) {
		return nil, nil
	})

	tests := []struct {
		name  string
		b     *Builder
		query *Query
		code  cnserrors.ErrorCode
	}{
		{"invalid query", NewBuilder(WithRules(StaticRules(testTable()))), NewQuery(), cnserrors.ErrCodeInvalidRequest},
		{"no rule source", NewBuilder(), NewQuery("bread"), cnserrors.ErrCodeUnavailable},
		{"rule source error", NewBuilder(WithRules(failing)), NewQuery("bread"), cnserrors.ErrCodeUnavailable},
		{"rule table nil", NewBuilder(WithRules(missing)), NewQuery("bread"), cnserrors.ErrCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.b.Build(context.Background(), tt.query)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, tt.code, cnserrors.CodeOf(err))
		})
	}
}

func TestResponseTable(t *testing.T) {
	resp := &Response{Recommendations: []recommender.Recommendation{
		{Item: "BUTTER", Confidence: 0.8, Lift: 3},
	}}
	assert.Equal(t, []string{"PRODUCT", "CONFIDENCE", "LIFT"}, resp.TableHeader())
	assert.Equal(t, [][]string{{"BUTTER", "0.80", "3.00"}}, resp.TableRows())
}

func TestProductsResponse(t *testing.T) {
	cat := catalog.New("jam", "jelly", "bread")

	p := NewProductsResponse(cat, "j", 1, "v1.2.3")
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 1, p.Count)
	assert.Equal(t, []string{"JAM"}, p.Products)
	assert.Equal(t, [][]string{{"JAM"}}, p.TableRows())
	assert.Equal(t, header.KindProductList, p.Kind)
	assert.Equal(t, "v1.2.3", p.Metadata[header.MetadataVersion])

	empty := NewProductsResponse(cat, "x", 0, "")
	assert.Empty(t, empty.Products)
	assert.Contains(t, empty.EmptyTableMessage(), `"x"`)
}
