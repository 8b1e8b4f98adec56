package rules

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	cnserrors "github.com/mchmarny/basket/pkg/errors"
	"github.com/mchmarny/basket/pkg/recommender"
	"github.com/mchmarny/basket/pkg/serializer"
)

// document is the keyed form of a JSON, YAML or TOML rule table.
type document struct {
	Rules []recommender.Rule `json:"rules" yaml:"rules" toml:"rules"`
}

// Load reads the rule table at source, a local path or an http(s) URL.
func Load(ctx context.Context, source string) (*Table, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "rule source is required")
	}

	start := time.Now()

	src, err := serializer.OpenSource(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule table %s: %w", source, err)
	}
	defer src.Close()

	var list []recommender.Rule
	switch ext := serializer.Ext(source); ext {
	case ".json", ".yaml", ".yml", ".toml":
		list, err = decodeStructured(src, serializer.FormatFromPath(ext))
		if err == nil {
			err = checkScores(list)
		}
	default:
		list, err = ReadCSV(src)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse rule table %s: %w", source, err)
	}

	slog.Debug("rule table loaded",
		"source", source,
		"rules", len(list),
		"duration", time.Since(start).String())

	return &Table{
		Source:   source,
		LoadedAt: time.Now().UTC(),
		Rules:    list,
	}, nil
}

// decodeStructured accepts either a bare list of rules or a document with
// a top-level rules key. TOML has no top-level arrays, so only the keyed
// form applies there.
func decodeStructured(r io.Reader, format serializer.Format) ([]recommender.Rule, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule table: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc document
	if format == serializer.FormatTOML {
		if err := decode(data, format, &doc); err != nil {
			return nil, err
		}
		return doc.Rules, nil
	}

	var list []recommender.Rule
	listErr := decode(data, format, &list)
	if listErr == nil {
		return list, nil
	}

	if err := decode(data, format, &doc); err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "rule table is neither a list nor a rules document", listErr)
	}
	return doc.Rules, nil
}

func decode(data []byte, format serializer.Format, v any) error {
	return serializer.Decode(format, bytes.NewReader(data), v)
}
