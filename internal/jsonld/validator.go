package jsonld

import (
	"errors"
	"fmt"
	"strings"

	"schemagen/internal/models"
)

// Validation errors.
var (
	ErrNilRow               = errors.New("row is nil")
	ErrMissingRequiredField = errors.New("missing required field")
)

type requiredField struct {
	column string
	value  func(*models.ProductRow) models.Value
}

// requiredFields are the group-level columns every row must carry.
var requiredFields = []requiredField{
	{"name", func(r *models.ProductRow) models.Value { return r.Name }},
	{"brand", func(r *models.ProductRow) models.Value { return r.Brand }},
	{"sku", func(r *models.ProductRow) models.Value { return r.SKU }},
	{"mpn", func(r *models.ProductRow) models.Value { return r.MPN }},
	{"gtin13", func(r *models.ProductRow) models.Value { return r.GTIN13 }},
	{"category", func(r *models.ProductRow) models.Value { return r.Category }},
	{"ingredients", func(r *models.ProductRow) models.Value { return r.Ingredients }},
	{"net_quantity", func(r *models.ProductRow) models.Value { return r.NetQuantity }},
}

// Validator checks that a row carries every required field.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate reports every missing required column in a single error.
func (v *Validator) Validate(row *models.ProductRow) error {
	if row == nil {
		return ErrNilRow
	}

	var missing []string

	for _, f := range requiredFields {
		if !f.value(row).Present() {
			missing = append(missing, f.column)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s (line %d)", ErrMissingRequiredField, strings.Join(missing, ", "), row.Line)
	}

	return nil
}
