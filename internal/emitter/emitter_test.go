package emitter

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemagen/internal/models"
	"schemagen/pkg/metadata"
)

func testDoc(name string) *models.ProductGroup {
	return &models.ProductGroup{
		Context:        models.SchemaContext,
		Type:           models.TypeProductGroup,
		ProductGroupID: name + "-1001",
		Name:           name,
		Brand:          models.Brand{Type: models.TypeBrand, Name: "Acme"},
		SKU:            "S1",
		MPN:            "M1",
		GTIN13:         "111",
		Category:       "Supplements",
		AdditionalProperty: []models.PropertyValue{
			{Type: models.TypePropertyValue, Name: models.PropertyIngredients, Value: "Café extract"},
		},
		HasVariant: []models.Variant{},
		URL:        "https://shop.example.com/p?a=1&b=<2>",
	}
}

func TestOutputDir(t *testing.T) {
	startedAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)

	assert.Equal(t, filepath.Join("out", "2025-01-02_03-04-05"), OutputDir("out", startedAt))
}

func TestEncode(t *testing.T) {
	data, err := Encode(testDoc("Gummy & Co"))
	require.NoError(t, err)

	out := string(data)
	require.True(t, strings.HasPrefix(out, "<script type=\"application/ld+json\">\n{\n  \"@context\": \"https://schema.org/\",\n"), out)
	require.True(t, strings.HasSuffix(out, "\n}\n</script>"), out)

	assert.Contains(t, out, `"name": "Gummy & Co"`)
	assert.Contains(t, out, `"url": "https://shop.example.com/p?a=1&b=<2>"`)
	assert.Contains(t, out, `"value": "Café extract"`)
	assert.Contains(t, out, `"hasVariant": []`)
	assert.NotContains(t, out, `\u0026`)

	body := strings.TrimSuffix(strings.TrimPrefix(out, ScriptOpen), ScriptClose)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &decoded))
	assert.Equal(t, "Gummy & Co-1001", decoded["productGroupID"])
}

func TestEncode_LineSeparatorsVerbatim(t *testing.T) {
	doc := testDoc("A\u2028B\u2029C é")
	doc.Description = `C:\u2028 literal`

	data, err := Encode(doc)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "\"name\": \"A\u2028B\u2029C é\"")
	assert.Contains(t, out, `"description": "C:\\u2028 literal"`)

	body := strings.TrimSuffix(strings.TrimPrefix(out, ScriptOpen), ScriptClose)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &decoded))
	assert.Equal(t, "A\u2028B\u2029C é", decoded["name"])
	assert.Equal(t, `C:\u2028 literal`, decoded["description"])
}

func TestEncode_NilDocument(t *testing.T) {
	_, err := Encode(nil)
	assert.True(t, errors.Is(err, ErrNilDocument))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Gummy A", "Gummy_A.json"},
		{"Vitamin C 500mg Gummies", "Vitamin_C_500mg_Gummies.json"},
		{"A/B Pack", "A_B_Pack.json"},
		{"..", "_.json"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName(tt.name), tt.name)
	}
}

func TestEmitter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	e := New(dir)

	_, err := e.Write(testDoc("Gummy A"))
	require.ErrorIs(t, err, ErrNotPrepared)

	require.NoError(t, e.Prepare())
	require.NoError(t, e.Prepare())

	written, err := e.Write(testDoc("Gummy A"))
	require.NoError(t, err)
	assert.Equal(t, "Gummy_A.json", written.File)
	assert.Equal(t, filepath.Join(dir, "Gummy_A.json"), written.Path)

	data, err := os.ReadFile(written.Path)
	require.NoError(t, err)
	assert.NoError(t, metadata.Verify(data, written.SHA256))
}

func TestEmitter_Write_OverwritesSameName(t *testing.T) {
	e := New(t.TempDir())
	require.NoError(t, e.Prepare())

	first := testDoc("Gummy A")
	first.Category = "First"
	_, err := e.Write(first)
	require.NoError(t, err)

	second := testDoc("Gummy A")
	second.Category = "Second"
	written, err := e.Write(second)
	require.NoError(t, err)

	data, err := os.ReadFile(written.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category": "Second"`)
	assert.NotContains(t, string(data), `"category": "First"`)

	entries, err := os.ReadDir(e.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
