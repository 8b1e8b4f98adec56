package catalog

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnserrors "github.com/mchmarny/basket/pkg/errors"
)

func TestLoad(t *testing.T) {
	c, err := Load(context.Background(), filepath.Join("testdata", "cleaned_data.csv"), "")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"CREAM CUPID HEARTS COAT HANGER",
		"HAND WARMER UNION JACK",
		"POPPY'S PLAYHOUSE, BEDROOM",
		"WHITE HANGING HEART T-LIGHT HOLDER",
		"WHITE METAL LANTERN",
	}, c.Products())
	assert.Equal(t, 5, c.Len())
	assert.True(t, c.Contains(" white metal lantern"))
	assert.False(t, c.Contains("JAM"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join("testdata", "nope.csv"), "")
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeNotFound), "got %v", err)
}

func TestReadCSV_Column(t *testing.T) {
	in := "id,product\n1,jam\n2,Bread\n3,JAM\n4\n"
	c, err := ReadCSV(strings.NewReader(in), "PRODUCT")
	require.NoError(t, err)
	assert.Equal(t, []string{"BREAD", "JAM"}, c.Products())
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), "")
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest), "got %v", err)

	_, err = ReadCSV(strings.NewReader("a,b\n1,2\n"), "Description")
	require.Error(t, err)
	var se *cnserrors.StructuredError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, cnserrors.ErrCodeInvalidRequest, se.Code)
	assert.Equal(t, "Description", se.Context["column"])
}

func TestCatalog_Search(t *testing.T) {
	c := New("white metal lantern", "WHITE HANGING HEART", "hand warmer", "wicker basket", "")

	assert.Equal(t, []string{"WHITE HANGING HEART", "WHITE METAL LANTERN"}, c.Search("white", 0))
	assert.Equal(t, []string{"WHITE HANGING HEART"}, c.Search(" White ", 1))
	assert.Equal(t, []string{"HAND WARMER", "WHITE HANGING HEART", "WHITE METAL LANTERN", "WICKER BASKET"}, c.Search("", -1))
	assert.Empty(t, c.Search("zebra", 10))
	assert.NotNil(t, c.Search("zebra", 10))
}

func TestCatalog_Nil(t *testing.T) {
	var c *Catalog
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Contains("x"))
	assert.Empty(t, c.Products())
	assert.Empty(t, c.Search("x", 1))
}

func TestCatalog_ProductsIsCopy(t *testing.T) {
	c := New("a", "b")
	p := c.Products()
	p[0] = "Z"
	assert.Equal(t, []string{"A", "B"}, c.Products())
}
