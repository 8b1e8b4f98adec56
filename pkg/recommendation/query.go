package recommendation

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mchmarny/basket/pkg/defaults"
	cnserrors "github.com/mchmarny/basket/pkg/errors"
	"github.com/mchmarny/basket/pkg/recommender"
)

// Query parameter names.
const (
	QueryParamItem          = "item"
	QueryParamItems         = "items"
	QueryParamMinConfidence = "minConfidence"
	QueryParamTopN          = "topN"
)

// Query is a recommendation request for one basket.
type Query struct {
	// Items are the products in the basket, in any casing.
	Items []string `json:"items" yaml:"items"`

	// MinConfidence is the confidence threshold of the primary pass.
	MinConfidence float64 `json:"minConfidence" yaml:"minConfidence" validate:"gte=0,lte=1"`

	// TopN is the maximum number of recommendations. The upper bound is
	// defaults.MaxTopN.
	TopN int `json:"topN" yaml:"topN" validate:"min=1,max=100"`
}

// NewQuery returns a query for items with the default threshold and size.
func NewQuery(items ...string) *Query {
	return &Query{
		Items:         items,
		MinConfidence: defaults.MinConfidence,
		TopN:          defaults.TopN,
	}
}

// Basket returns the canonical basket items in ascending order.
func (q *Query) Basket() []string {
	return recommender.NewItemSet(q.Items...).Items()
}

// Validate rejects queries the engine must not be called with.
func (q *Query) Validate() error {
	if q == nil {
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest, "query cannot be nil")
	}
	if recommender.NewItemSet(q.Items...).Len() == 0 {
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest, "basket must contain at least one item")
	}
	return validateStruct(q)
}

// ParseQuery reads a query from the URL parameters of r.
func ParseQuery(r *http.Request) (*Query, error) {
	if r == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}
	return ParseQueryFromValues(r.URL.Query())
}

// ParseQueryFromValues reads repeated item parameters, a comma separated
// items parameter, minConfidence and topN. Missing numbers take their
// defaults. The result is not validated.
func ParseQueryFromValues(values url.Values) (*Query, error) {
	q := NewQuery()

	q.Items = append(q.Items, values[QueryParamItem]...)
	for _, list := range values[QueryParamItems] {
		q.Items = append(q.Items, strings.Split(list, ",")...)
	}

	if s := strings.TrimSpace(values.Get(QueryParamMinConfidence)); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
				"invalid minConfidence", err, map[string]any{QueryParamMinConfidence: s})
		}
		q.MinConfidence = v
	}

	if s := strings.TrimSpace(values.Get(QueryParamTopN)); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
				"invalid topN", err, map[string]any{QueryParamTopN: s})
		}
		q.TopN = v
	}

	return q, nil
}

// rawQuery tells absent numbers apart from zero.
type rawQuery struct {
	Items         []string `json:"items" yaml:"items"`
	MinConfidence *float64 `json:"minConfidence" yaml:"minConfidence"`
	TopN          *int     `json:"topN" yaml:"topN"`
}

// ParseQueryFromBody reads a JSON or YAML query. YAML is selected by an
// application/yaml, application/x-yaml or text/yaml content type; anything
// else is parsed as JSON. Missing numbers take their defaults.
func ParseQueryFromBody(body io.Reader, contentType string) (*Query, error) {
	if body == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "request body cannot be nil")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "failed to read request body", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "request body is empty")
	}

	ct := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(ct, ";"); idx != -1 {
		ct = strings.TrimSpace(ct[:idx])
	}

	var raw rawQuery
	switch ct {
	case "application/x-yaml", "application/yaml", "text/yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "failed to parse YAML body", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "failed to parse JSON body", err)
		}
	}

	q := NewQuery(raw.Items...)
	if raw.MinConfidence != nil {
		q.MinConfidence = *raw.MinConfidence
	}
	if raw.TopN != nil {
		q.TopN = *raw.TopN
	}
	return q, nil
}
