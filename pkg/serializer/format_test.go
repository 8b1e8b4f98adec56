package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnserrors "github.com/mchmarny/basket/pkg/errors"
)

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"rules.json":                             FormatJSON,
		"RULES.JSON":                             FormatJSON,
		"rules.yaml":                             FormatYAML,
		"rules.yml":                              FormatYAML,
		"rules.toml":                             FormatTOML,
		"out.table":                              FormatTable,
		"out.txt":                                FormatTable,
		"rules.csv":                              FormatJSON,
		"rules":                                  FormatJSON,
		"https://example.com/rules.yaml?sig=abc": FormatYAML,
		"https://example.com/rules.json#top":     FormatJSON,
	}
	for p, want := range tests {
		assert.Equal(t, want, FormatFromPath(p), p)
	}
}

func TestExt(t *testing.T) {
	assert.Equal(t, ".csv", Ext("/data/Rules.CSV"))
	assert.Equal(t, ".csv", Ext("https://bucket/rules.csv?X-Amz-Signature=a.b"))
	// query strings only stripped from URLs
	assert.Equal(t, ".b", Ext("local?a.b"))
	assert.Empty(t, Ext("rules"))
}

func TestParseFormat(t *testing.T) {
	for _, s := range SupportedFormats() {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.False(t, f.IsUnknown())
	}

	f, err := ParseFormat(" YAML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	// readable but not writable
	_, err = ParseFormat("toml")
	assert.Error(t, err)

	_, err = ParseFormat("xml")
	require.Error(t, err)
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))
	assert.Contains(t, err.Error(), "unknown output format")
}
