package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type productTable struct {
	rows [][]string
}

func (t productTable) TableHeader() []string     { return []string{"PRODUCT", "SCORE"} }
func (t productTable) TableRows() [][]string     { return t.rows }
func (t productTable) EmptyTableMessage() string { return "nothing here" }

type nested struct {
	item
	Tags  []string
	Meta  map[string]int
	Owner *item
}

func serialize(t *testing.T, f Format, v any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewWriter(f, &buf).Serialize(context.Background(), v))
	return buf.String()
}

func TestWriterStructured(t *testing.T) {
	data := []item{{Name: "milk", Count: 123}, {Name: "bread", Count: 456}}

	var fromJSON []item
	require.NoError(t, json.Unmarshal([]byte(serialize(t, FormatJSON, data)), &fromJSON))
	assert.Equal(t, data, fromJSON)

	var fromYAML []item
	require.NoError(t, yaml.Unmarshal([]byte(serialize(t, FormatYAML, data)), &fromYAML))
	assert.Equal(t, data, fromYAML)

	// unknown formats fall back to JSON
	assert.True(t, json.Valid([]byte(serialize(t, Format("xml"), data))))
}

func TestWriterTableRenderer(t *testing.T) {
	out := serialize(t, FormatTable, productTable{rows: [][]string{
		{"WHITE HANGING HEART", "1.25"},
		{"JUMBO BAG", "0.50"},
	}})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"PRODUCT", "SCORE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"-------", "-----"}, strings.Fields(lines[1]))
	assert.True(t, strings.HasPrefix(lines[2], "WHITE HANGING HEART"))
	assert.True(t, strings.HasPrefix(lines[3], "JUMBO BAG"))

	assert.Equal(t, "nothing here\n", serialize(t, FormatTable, productTable{}))
}

func TestWriterTableFlattened(t *testing.T) {
	out := serialize(t, FormatTable, nested{
		item: item{Name: "milk", Count: 7},
		Tags: []string{"dairy"},
		Meta: map[string]int{"aisle": 4},
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, []string{"FIELD", "VALUE"}, strings.Fields(lines[0]))
	assert.Equal(t, [][]string{
		{"Count", "7"},
		{"Meta.aisle", "4"},
		{"Name", "milk"},
		{"Owner", "<nil>"},
		{"Tags.[0]", "dairy"},
	}, [][]string{
		strings.Fields(lines[2]), strings.Fields(lines[3]), strings.Fields(lines[4]),
		strings.Fields(lines[5]), strings.Fields(lines[6]),
	})

	assert.Equal(t, "<empty>\n", serialize(t, FormatTable, map[string]string{}))
	assert.Contains(t, serialize(t, FormatTable, 42), "value")
}

func TestCreateWriter(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.json")
	w, err := CreateWriter(FormatJSON, p)
	require.NoError(t, err)
	require.NoError(t, w.Serialize(context.Background(), item{Name: "tea"}))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tea"`)

	w, err = CreateWriter(FormatJSON, "  ")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, w.out)
	assert.NoError(t, w.Close())

	_, err = CreateWriter(FormatJSON, filepath.Join(t.TempDir(), "missing", "out.json"))
	assert.Error(t, err)
}
