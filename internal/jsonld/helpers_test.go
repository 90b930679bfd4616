package jsonld

import (
	"testing"

	"schemagen/internal/config"
	"schemagen/internal/models"
)

// rowFrom builds a row the way the tabular reader would, from column/value pairs.
func rowFrom(t *testing.T, cells map[string]string) *models.ProductRow {
	t.Helper()

	row := &models.ProductRow{Line: 2}
	for column, value := range cells {
		if !row.Set(column, value) {
			t.Fatalf("unknown column %q in test row", column)
		}
	}

	return row
}

// gummyRow is the minimal valid row used across tests.
func gummyRow() map[string]string {
	return map[string]string{
		"name":           "Gummy A",
		"brand":          "Acme",
		"sku":            "S1",
		"mpn":            "M1",
		"gtin13":         "111",
		"category":       "Supplements",
		"ingredients":    "Vitamin C",
		"net_quantity":   "60ct",
		"variant1_name":  "30ct",
		"variant1_price": "9.99",
	}
}

func with(base map[string]string, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}

	for k, v := range extra {
		out[k] = v
	}

	return out
}

func newTestBuilder(mutate func(c *config.Config)) *Builder {
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}

	return NewBuilder(cfg)
}
