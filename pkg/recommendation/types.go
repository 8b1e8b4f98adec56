package recommendation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mchmarny/basket/pkg/catalog"
	"github.com/mchmarny/basket/pkg/header"
	"github.com/mchmarny/basket/pkg/recommender"
	"github.com/mchmarny/basket/pkg/rules"
)

// RuleSource supplies the current rule table. *store.Cache[*rules.Table]
// implements it.
type RuleSource interface {
	Get(ctx context.Context) (*rules.Table, error)
}

// CatalogSource supplies the current product catalog.
// *store.Cache[*catalog.Catalog] implements it.
type CatalogSource interface {
	Get(ctx context.Context) (*catalog.Catalog, error)
}

// RulesFunc adapts a function to RuleSource.
type RulesFunc func(ctx context.Context) (*rules.Table, error)

// Get implements RuleSource.
func (f RulesFunc) Get(ctx context.Context) (*rules.Table, error) {
	return f(ctx)
}

// StaticRules serves a fixed, already loaded table.
func StaticRules(t *rules.Table) RuleSource {
	return RulesFunc(func(context.Context) (*rules.Table, error) {
		return t, nil
	})
}

// CatalogFunc adapts a function to CatalogSource.
type CatalogFunc func(ctx context.Context) (*catalog.Catalog, error)

// Get implements CatalogSource.
func (f CatalogFunc) Get(ctx context.Context) (*catalog.Catalog, error) {
	return f(ctx)
}

// StaticCatalog serves a fixed, already loaded catalog.
func StaticCatalog(c *catalog.Catalog) CatalogSource {
	return CatalogFunc(func(context.Context) (*catalog.Catalog, error) {
		return c, nil
	})
}

// Response is the result of one recommendation query.
type Response struct {
	header.Header `json:",inline" yaml:",inline"`

	Basket          []string                     `json:"basket" yaml:"basket"`
	MinConfidence   float64                      `json:"minConfidence" yaml:"minConfidence"`
	TopN            int                          `json:"topN" yaml:"topN"`
	Fallback        bool                         `json:"fallback" yaml:"fallback"`
	Recommendations []recommender.Recommendation `json:"recommendations" yaml:"recommendations"`
	UnknownItems    []string                     `json:"unknownItems,omitempty" yaml:"unknownItems,omitempty"`
	RuleCount       int                          `json:"ruleCount" yaml:"ruleCount"`
	RulesLoadedAt   time.Time                    `json:"rulesLoadedAt" yaml:"rulesLoadedAt"`
}

// TableHeader implements serializer.TableRenderer.
func (r *Response) TableHeader() []string {
	return []string{"PRODUCT", "CONFIDENCE", "LIFT"}
}

// TableRows implements serializer.TableRenderer. Scores have two decimals.
func (r *Response) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Recommendations))
	for _, rec := range r.Recommendations {
		rows = append(rows, []string{
			rec.Item,
			strconv.FormatFloat(rec.Confidence, 'f', 2, 64),
			strconv.FormatFloat(rec.Lift, 'f', 2, 64),
		})
	}
	return rows
}

// EmptyTableMessage implements serializer.EmptyTableMessager.
func (r *Response) EmptyTableMessage() string {
	return "no recommendations found"
}

// ProductsResponse lists catalog products matching a prefix.
type ProductsResponse struct {
	header.Header `json:",inline" yaml:",inline"`

	Prefix   string   `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Total    int      `json:"total" yaml:"total"`
	Count    int      `json:"count" yaml:"count"`
	Products []string `json:"products" yaml:"products"`
}

// NewProductsResponse searches c for up to limit products starting with
// prefix. version is reported in the header metadata.
func NewProductsResponse(c *catalog.Catalog, prefix string, limit int, version string) *ProductsResponse {
	products := c.Search(prefix, limit)
	p := &ProductsResponse{
		Prefix:   prefix,
		Total:    c.Len(),
		Count:    len(products),
		Products: products,
	}
	p.Init(header.KindProductList, version)
	return p
}

// TableHeader implements serializer.TableRenderer.
func (p *ProductsResponse) TableHeader() []string {
	return []string{"PRODUCT"}
}

// TableRows implements serializer.TableRenderer.
func (p *ProductsResponse) TableRows() [][]string {
	rows := make([][]string, len(p.Products))
	for i, name := range p.Products {
		rows[i] = []string{name}
	}
	return rows
}

// EmptyTableMessage implements serializer.EmptyTableMessager.
func (p *ProductsResponse) EmptyTableMessage() string {
	if p.Prefix == "" {
		return "no products found"
	}
	return fmt.Sprintf("no products found starting with %q", p.Prefix)
}

// ReloadResponse reports the rule table loaded by a reload request.
type ReloadResponse struct {
	header.Header `json:",inline" yaml:",inline"`

	Source    string    `json:"source" yaml:"source"`
	RuleCount int       `json:"ruleCount" yaml:"ruleCount"`
	LoadedAt  time.Time `json:"loadedAt" yaml:"loadedAt"`
}
