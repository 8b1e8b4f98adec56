package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Writer encodes values to an output stream.
type Writer struct {
	format Format
	out    io.Writer
	file   *os.File
}

// NewWriter writes to out, or stdout when out is nil.
// A format that is not an output format is treated as JSON.
func NewWriter(format Format, out io.Writer) *Writer {
	if out == nil {
		out = os.Stdout
	}
	if format.IsUnknown() {
		format = FormatJSON
	}
	return &Writer{format: format, out: out}
}

// CreateWriter truncates and writes to the file at p, or to stdout when p is
// blank. Close the Writer to release the file.
func CreateWriter(format Format, p string) (*Writer, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return NewWriter(format, os.Stdout), nil
	}

	f, err := os.Create(p)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", p, err)
	}
	w := NewWriter(format, f)
	w.file = f
	return w, nil
}

// Close closes the output file, if any. Calling it again is a no-op.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// Serialize writes v in the writer's format.
func (w *Writer) Serialize(_ context.Context, v any) error {
	switch w.format {
	case FormatTable:
		return writeTable(w.out, v)
	case FormatYAML:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("json encode: %w", err)
		}
		return nil
	}
}
