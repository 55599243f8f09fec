package mapper

import (
	"errors"
	"strings"
	"testing"

	"github.com/adasafety/catops/internal/config"
	"github.com/adasafety/catops/internal/parser"
)

func parseRows(t *testing.T, profile *config.VendorProfile, rows [][]string) []parser.RawRow {
	t.Helper()
	sheet, err := parser.MapHeader(&parser.Table{Rows: rows}, profile)
	if err != nil {
		t.Fatalf("map header: %v", err)
	}
	return sheet.DataRows()
}

func TestNormalizeTypedFields(t *testing.T) {
	profile := &config.VendorProfile{
		FieldAliases: map[string][]string{
			config.FieldSKU:      {"sku"},
			config.FieldName:     {"name"},
			config.FieldPrice:    {"price"},
			config.FieldStock:    {"stock"},
			config.FieldFeatures: {"features"},
			config.FieldBarcode:  {"upc"},
		},
	}
	rows := parseRows(t, profile, [][]string{
		{"SKU", "Name", "Price", "Stock", "Features", "UPC"},
		{"A-100", "Hard Hat", "$1,249.50", "12 ea", "Vented; Ratchet suspension", "012345678901"},
	})

	p, err := Normalize(rows[0], profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.SKU != "A-100" || p.Name != "Hard Hat" {
		t.Fatalf("identity fields wrong: %+v", p)
	}
	if p.Price.String() != "1249.5" {
		t.Fatalf("price = %s", p.Price)
	}
	if p.StockQuantity != 12 {
		t.Fatalf("stock = %d", p.StockQuantity)
	}
	if len(p.Features) != 2 || p.Features[1] != "Ratchet suspension" {
		t.Fatalf("features = %v", p.Features)
	}
	if p.Barcode != "012345678901" {
		t.Fatalf("barcode = %q", p.Barcode)
	}
	if p.RowNumber != 2 {
		t.Fatalf("row number = %d", p.RowNumber)
	}
}

func TestNormalizeBlankVersusMissingIdentifier(t *testing.T) {
	profile := &config.VendorProfile{
		FieldAliases: map[string][]string{
			config.FieldSKU:  {"sku"},
			config.FieldName: {"name"},
		},
	}
	rows := parseRows(t, profile, [][]string{
		{"SKU", "Name"},
		{"", ""},
		{"", "Orphan row"},
	})

	if _, err := Normalize(rows[0], profile); !errors.Is(err, ErrBlankRow) {
		t.Fatalf("blank row: expected ErrBlankRow, got %v", err)
	}

	_, err := Normalize(rows[1], profile)
	if err == nil || errors.Is(err, ErrBlankRow) {
		t.Fatalf("row with data but no sku: expected real error, got %v", err)
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Fatalf("error should carry the row number: %v", err)
	}
}

func TestNormalizeProfileDefaults(t *testing.T) {
	profile := &config.VendorProfile{
		DefaultBrand: "Carhartt",
		StyleFromSKU: true,
		BrandPrefix:  "CHT-",
		FieldAliases: map[string][]string{
			config.FieldSKU:  {"sku"},
			config.FieldName: {"name"},
		},
	}
	rows := parseRows(t, profile, [][]string{
		{"SKU", "Name"},
		{"CHT-CMW6095-7M", "Work Boot"},
	})

	p, err := Normalize(rows[0], profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BrandName != "Carhartt" {
		t.Fatalf("brand = %q", p.BrandName)
	}
	if p.Style != "CMW6095" {
		t.Fatalf("style = %q", p.Style)
	}
}

func TestStyleFromSKU(t *testing.T) {
	tests := []struct {
		sku    string
		prefix string
		want   string
	}{
		{"CHT-CMW6095-7M", "CHT-", "CMW6095"},
		{"CMW6095-10W", "", "CMW6095"},
		{"W02195-XL", "", "W02195"},
		{"NOSEGMENTS", "", "NOSEGMENTS"},
		{"-LEADING", "", "-LEADING"},
	}
	for _, tt := range tests {
		if got := StyleFromSKU(tt.sku, tt.prefix); got != tt.want {
			t.Errorf("StyleFromSKU(%q, %q) = %q, want %q", tt.sku, tt.prefix, got, tt.want)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"9.99", "9.99"},
		{"$1,234.56", "1234.56"},
		{"45.99 USD", "45.99"},
		{"2.5 lbs", "2.5"},
		{"call for pricing", "0"},
		{"-", "0"},
		{"-3.25", "-3.25"},
	}
	for _, tt := range tests {
		if got := ParseDecimal(tt.in).String(); got != tt.want {
			t.Errorf("ParseDecimal(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"100", 100},
		{"1,200", 1200},
		{"12.7", 12},
		{"out of stock", 0},
	}
	for _, tt := range tests {
		if got := ParseInt(tt.in); got != tt.want {
			t.Errorf("ParseInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList("Vented -- Ratchet suspension | Cooling pad\nANSI Z89.1")
	want := []string{"Vented", "Ratchet suspension", "Cooling pad", "ANSI Z89.1"}
	if len(got) != len(want) {
		t.Fatalf("items = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d = %q, want %q", i, got[i], want[i])
		}
	}
	if SplitList("  ") != nil {
		t.Fatal("blank input should yield nil")
	}
}
