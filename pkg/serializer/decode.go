package serializer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	cnserrors "github.com/mchmarny/basket/pkg/errors"
)

// Decode reads one JSON, YAML or TOML document from r into v.
// Table output cannot be read back.
func Decode(format Format, r io.Reader, v any) error {
	if r == nil {
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest, "nil input")
	}

	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(v)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(v)
	case FormatTOML:
		err = toml.NewDecoder(r).Decode(v)
	default:
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"format cannot be decoded", map[string]any{"format": string(format)})
	}
	if err != nil {
		return cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, fmt.Sprintf("invalid %s", format), err)
	}
	return nil
}
