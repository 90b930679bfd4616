// Package models defines the input row and output document structures.
package models

import (
	"fmt"
	"strings"
)

// VariantSlots is the number of variant column groups a row can carry.
const VariantSlots = 9

// missingTokens are cell spellings treated as "no value", matching what
// spreadsheet exports and pandas write for NA.
var missingTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// Value is one optional cell of an input row.
// The zero value is an absent cell (column missing from the input).
type Value struct {
	raw string
	set bool
}

// NewValue wraps the raw text of a cell that exists in the input.
func NewValue(raw string) Value {
	return Value{raw: raw, set: true}
}

// Present reports whether the cell exists and holds a usable value.
func (v Value) Present() bool {
	if !v.set {
		return false
	}

	s := strings.TrimSpace(v.raw)
	if s == "" {
		return false
	}

	_, missing := missingTokens[s]

	return !missing
}

// String returns the trimmed cell text, or "" when absent.
func (v Value) String() string {
	if !v.Present() {
		return ""
	}

	return strings.TrimSpace(v.raw)
}

// VariantSlot holds the variant{i}_* columns of one slot.
type VariantSlot struct {
	Name                  Value
	SKU                   Value
	GTIN13                Value
	Image                 Value
	ActualPrice           Value
	Price                 Value
	URL                   Value
	ShippingCountry       Value
	ShippingCurrency      Value
	ShippingValue         Value
	ReturnCountry         Value
	ReturnDays            Value
	ReturnMethod          Value
	ReturnFees            Value
	RefundType            Value
	AcceptedPaymentMethod Value
}

// ProductRow is one decoded input record.
type ProductRow struct {
	Name             Value
	Description      Value
	ImageURL         Value
	Brand            Value
	BrandLogo        Value
	SKU              Value
	MPN              Value
	GTIN13           Value
	Category         Value
	Ingredients      Value
	NetQuantity      Value
	Certifications   Value
	Award            Value
	Discount         Value
	ManufacturerName Value
	ManufacturerLogo Value
	SuitableFor      Value
	ProductionDate   Value
	ExpirationDate   Value
	ProductURL       Value
	KeyBenefits      Value
	OfferEndDate     Value

	Variants [VariantSlots]VariantSlot

	// Line is the 1-based source line (the header is line 1).
	Line int
}

// Slot returns variant slot i (1-based), or nil when out of range.
func (r *ProductRow) Slot(i int) *VariantSlot {
	if i < 1 || i > VariantSlots {
		return nil
	}

	return &r.Variants[i-1]
}

// Key identifies the row in logs and reports.
func (r *ProductRow) Key() string {
	switch {
	case r.Name.Present():
		return r.Name.String()
	case r.SKU.Present():
		return r.SKU.String()
	default:
		return fmt.Sprintf("line %d", r.Line)
	}
}

type groupColumn struct {
	name  string
	field func(*ProductRow) *Value
}

type variantColumn struct {
	suffix string
	field  func(*VariantSlot) *Value
}

// groupColumns is the fixed table of group-level columns, in template order.
var groupColumns = []groupColumn{
	{"name", func(r *ProductRow) *Value { return &r.Name }},
	{"description", func(r *ProductRow) *Value { return &r.Description }},
	{"image_url", func(r *ProductRow) *Value { return &r.ImageURL }},
	{"brand", func(r *ProductRow) *Value { return &r.Brand }},
	{"brand_logo", func(r *ProductRow) *Value { return &r.BrandLogo }},
	{"sku", func(r *ProductRow) *Value { return &r.SKU }},
	{"mpn", func(r *ProductRow) *Value { return &r.MPN }},
	{"gtin13", func(r *ProductRow) *Value { return &r.GTIN13 }},
	{"category", func(r *ProductRow) *Value { return &r.Category }},
	{"ingredients", func(r *ProductRow) *Value { return &r.Ingredients }},
	{"net_quantity", func(r *ProductRow) *Value { return &r.NetQuantity }},
	{"certifications", func(r *ProductRow) *Value { return &r.Certifications }},
	{"award", func(r *ProductRow) *Value { return &r.Award }},
	{"discount", func(r *ProductRow) *Value { return &r.Discount }},
	{"manufacturer_name", func(r *ProductRow) *Value { return &r.ManufacturerName }},
	{"manufacturer_logo", func(r *ProductRow) *Value { return &r.ManufacturerLogo }},
	{"suitable_for", func(r *ProductRow) *Value { return &r.SuitableFor }},
	{"production_date", func(r *ProductRow) *Value { return &r.ProductionDate }},
	{"expiration_date", func(r *ProductRow) *Value { return &r.ExpirationDate }},
	{"product_url", func(r *ProductRow) *Value { return &r.ProductURL }},
	{"key_benefits", func(r *ProductRow) *Value { return &r.KeyBenefits }},
	{"offer_end_date", func(r *ProductRow) *Value { return &r.OfferEndDate }},
}

// variantColumns is the fixed table of per-slot column suffixes.
var variantColumns = []variantColumn{
	{"name", func(v *VariantSlot) *Value { return &v.Name }},
	{"sku", func(v *VariantSlot) *Value { return &v.SKU }},
	{"gtin13", func(v *VariantSlot) *Value { return &v.GTIN13 }},
	{"image", func(v *VariantSlot) *Value { return &v.Image }},
	{"actual_price", func(v *VariantSlot) *Value { return &v.ActualPrice }},
	{"price", func(v *VariantSlot) *Value { return &v.Price }},
	{"url", func(v *VariantSlot) *Value { return &v.URL }},
	{"shippingCountry", func(v *VariantSlot) *Value { return &v.ShippingCountry }},
	{"shippingCurrency", func(v *VariantSlot) *Value { return &v.ShippingCurrency }},
	{"shippingValue", func(v *VariantSlot) *Value { return &v.ShippingValue }},
	{"returnCountry", func(v *VariantSlot) *Value { return &v.ReturnCountry }},
	{"returnDays", func(v *VariantSlot) *Value { return &v.ReturnDays }},
	{"returnMethod", func(v *VariantSlot) *Value { return &v.ReturnMethod }},
	{"returnFees", func(v *VariantSlot) *Value { return &v.ReturnFees }},
	{"refundType", func(v *VariantSlot) *Value { return &v.RefundType }},
	{"acceptedPaymentMethod", func(v *VariantSlot) *Value { return &v.AcceptedPaymentMethod }},
}

// VariantColumn returns the column name for a slot field, e.g. variant2_price.
func VariantColumn(slot int, suffix string) string {
	return fmt.Sprintf("variant%d_%s", slot, suffix)
}

var columnFields = buildColumnFields()

func buildColumnFields() map[string]func(*ProductRow) *Value {
	fields := make(map[string]func(*ProductRow) *Value, len(groupColumns)+VariantSlots*len(variantColumns))

	for _, c := range groupColumns {
		fields[c.name] = c.field
	}

	for slot := 1; slot <= VariantSlots; slot++ {
		for _, c := range variantColumns {
			idx, field := slot-1, c.field
			fields[VariantColumn(slot, c.suffix)] = func(r *ProductRow) *Value {
				return field(&r.Variants[idx])
			}
		}
	}

	return fields
}

// Columns returns every known column name in template order.
func Columns() []string {
	cols := make([]string, 0, len(columnFields))
	for _, c := range groupColumns {
		cols = append(cols, c.name)
	}

	for slot := 1; slot <= VariantSlots; slot++ {
		for _, c := range variantColumns {
			cols = append(cols, VariantColumn(slot, c.suffix))
		}
	}

	return cols
}

// IsKnownColumn reports whether the column maps to a row field.
func IsKnownColumn(column string) bool {
	_, ok := columnFields[column]
	return ok
}

// Set stores raw into the field mapped to column. Unknown columns are ignored
// and reported with false.
func (r *ProductRow) Set(column, raw string) bool {
	field, ok := columnFields[column]
	if !ok {
		return false
	}

	*field(r) = NewValue(raw)

	return true
}
