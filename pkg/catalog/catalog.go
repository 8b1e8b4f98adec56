// Package catalog lists the products a basket can be built from.
//
// Products are read from one column of a transaction export, canonicalized
// the same way the recommender compares items, and kept unique and sorted.
package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mchmarny/basket/pkg/defaults"
	cnserrors "github.com/mchmarny/basket/pkg/errors"
	"github.com/mchmarny/basket/pkg/recommender"
	"github.com/mchmarny/basket/pkg/serializer"
)

// Catalog is an immutable, sorted list of canonical product names.
type Catalog struct {
	products []string
	index    recommender.ItemSet
}

// New returns a catalog of the canonical forms of names.
func New(names ...string) *Catalog {
	set := recommender.NewItemSet(names...)
	return &Catalog{
		products: set.Items(),
		index:    set,
	}
}

// Load reads the product column of the CSV file at source, a local path or
// an http(s) URL. An empty column selects defaults.ProductColumn.
func Load(ctx context.Context, source, column string) (*Catalog, error) {
	src, err := serializer.OpenSource(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to open product data %s: %w", source, err)
	}
	defer src.Close()

	c, err := ReadCSV(src, column)
	if err != nil {
		return nil, fmt.Errorf("failed to read product data %s: %w", source, err)
	}
	return c, nil
}

// ReadCSV reads product names from the named column of a CSV stream with a
// header row. The column name match is case-insensitive.
func ReadCSV(r io.Reader, column string) (*Catalog, error) {
	column = strings.TrimSpace(column)
	if column == "" {
		column = defaults.ProductColumn
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "product data is empty")
		}
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "failed to read product data header", err)
	}

	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")), column) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("product data is missing column %q", column),
			map[string]any{"column": column})
	}

	set := recommender.ItemSet{}
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
				"failed to read product data", err, map[string]any{"row": row})
		}
		if col >= len(rec) {
			continue
		}
		if name := recommender.Normalize(rec[col]); name != "" {
			set[name] = struct{}{}
		}
	}

	return &Catalog{
		products: set.Items(),
		index:    set,
	}, nil
}

// Products returns a copy of all product names in ascending order.
func (c *Catalog) Products() []string {
	if c == nil {
		return []string{}
	}
	out := make([]string, len(c.products))
	copy(out, c.products)
	return out
}

// Contains reports whether the canonical form of name is a known product.
func (c *Catalog) Contains(name string) bool {
	if c == nil {
		return false
	}
	return c.index.Contains(name)
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// Search returns up to limit products starting with prefix, compared in
// canonical form. A limit of zero or less means no limit.
func (c *Catalog) Search(prefix string, limit int) []string {
	if c == nil {
		return []string{}
	}
	prefix = recommender.Normalize(prefix)

	start := sort.SearchStrings(c.products, prefix)
	out := []string{}
	for _, p := range c.products[start:] {
		if !strings.HasPrefix(p, prefix) {
			break
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, p)
	}
	return out
}
