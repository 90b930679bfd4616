package models

import (
	"testing"
)

func TestValue_Present(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
		str   string
	}{
		{"Absent column", Value{}, false, ""},
		{"Empty cell", NewValue(""), false, ""},
		{"Whitespace", NewValue("  \t"), false, ""},
		{"NaN token", NewValue("NaN"), false, ""},
		{"NA token padded", NewValue(" N/A "), false, ""},
		{"Null token", NewValue("null"), false, ""},
		{"Plain text", NewValue(" Gummy A "), true, "Gummy A"},
		{"Zero", NewValue("0"), true, "0"},
		{"Lowercase na is a value", NewValue("na"), true, "na"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Present(); got != tt.want {
				t.Errorf("Present() = %v, want %v", got, tt.want)
			}

			if got := tt.value.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestProductRow_Set(t *testing.T) {
	row := &ProductRow{}

	if !row.Set("name", "Gummy A") || row.Name.String() != "Gummy A" {
		t.Errorf("Set(name) did not store the value: %+v", row.Name)
	}

	if !row.Set("variant9_acceptedPaymentMethod", "visa") || row.Slot(9).AcceptedPaymentMethod.String() != "visa" {
		t.Error("Set(variant9_acceptedPaymentMethod) did not reach slot 9")
	}

	if !row.Set("variant2_shippingValue", "4.99") || row.Variants[1].ShippingValue.String() != "4.99" {
		t.Error("Set(variant2_shippingValue) did not reach slot 2")
	}

	for _, column := range []string{"variant10_name", "variant0_name", "Name", "notes"} {
		if row.Set(column, "x") {
			t.Errorf("Set(%s) should report an unknown column", column)
		}
	}
}

func TestProductRow_Slot(t *testing.T) {
	row := &ProductRow{}

	if row.Slot(0) != nil || row.Slot(VariantSlots+1) != nil {
		t.Error("Slot out of range should be nil")
	}

	if row.Slot(1) != &row.Variants[0] {
		t.Error("Slot(1) should be the first variant")
	}
}

func TestProductRow_Key(t *testing.T) {
	tests := []struct {
		name string
		row  *ProductRow
		want string
	}{
		{"Name", &ProductRow{Name: NewValue("Gummy A"), SKU: NewValue("S1")}, "Gummy A"},
		{"SKU fallback", &ProductRow{Name: NewValue("nan"), SKU: NewValue("S1")}, "S1"},
		{"Line fallback", &ProductRow{Line: 12}, "line 12"},
	}

	for _, tt := range tests {
		if got := tt.row.Key(); got != tt.want {
			t.Errorf("%s: Key() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestColumns(t *testing.T) {
	cols := Columns()

	want := len(groupColumns) + VariantSlots*len(variantColumns)
	if len(cols) != want {
		t.Fatalf("len(Columns()) = %d, want %d", len(cols), want)
	}

	if cols[0] != "name" || cols[len(groupColumns)] != "variant1_name" || cols[len(cols)-1] != "variant9_acceptedPaymentMethod" {
		t.Errorf("Unexpected column order: first=%s slot1=%s last=%s", cols[0], cols[len(groupColumns)], cols[len(cols)-1])
	}

	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if seen[c] {
			t.Errorf("Duplicate column %s", c)
		}

		seen[c] = true

		if !IsKnownColumn(c) {
			t.Errorf("IsKnownColumn(%s) = false", c)
		}
	}
}
