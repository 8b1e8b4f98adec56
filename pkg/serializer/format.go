package serializer

import (
	"path"
	"strings"

	cnserrors "github.com/mchmarny/basket/pkg/errors"
)

// Format is an encoding understood by Writer and Decode.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"

	// FormatTOML is read-only, for hand-maintained rule tables.
	FormatTOML Format = "toml"
)

var formatByExt = map[string]Format{
	".json":  FormatJSON,
	".yaml":  FormatYAML,
	".yml":   FormatYAML,
	".toml":  FormatTOML,
	".table": FormatTable,
	".txt":   FormatTable,
}

// IsUnknown reports whether f is not one of the output formats.
func (f Format) IsUnknown() bool {
	return f != FormatJSON && f != FormatYAML && f != FormatTable
}

// SupportedFormats lists the values accepted by ParseFormat.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// ParseFormat converts a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f.IsUnknown() {
		return "", cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"unknown output format", map[string]any{"format": s, "supported": SupportedFormats()})
	}
	return f, nil
}

// FormatFromPath picks a format from the extension of a path or URL,
// falling back to JSON.
func FormatFromPath(p string) Format {
	if f, ok := formatByExt[Ext(p)]; ok {
		return f
	}
	return FormatJSON
}

// Ext returns the lower-cased extension of a path or URL, ignoring any
// query string or fragment on a URL.
func Ext(p string) string {
	if IsRemote(p) {
		if i := strings.IndexAny(p, "?#"); i >= 0 {
			p = p[:i]
		}
	}
	return strings.ToLower(path.Ext(p))
}
