package parser

import (
	"strings"
	"testing"

	"github.com/adasafety/catops/internal/config"
)

func testProfile() *config.VendorProfile {
	return &config.VendorProfile{
		FieldAliases: map[string][]string{
			config.FieldSKU:       {"part number", "sku"},
			config.FieldName:      {"product name", "name"},
			config.FieldPrice:     {"unit price", "price"},
			config.FieldCostPrice: {"cost price"},
		},
	}
}

func TestReadTableCSVStripsBOM(t *testing.T) {
	data := []byte("\uFEFFsku,name\nABC-1,\"Widget, small\"\n")

	table, err := ReadTable(data, "vendor.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0][0] != "sku" {
		t.Fatalf("BOM not stripped from first header: %q", table.Rows[0][0])
	}
	if table.Rows[1][1] != "Widget, small" {
		t.Fatalf("quoted comma mangled: %q", table.Rows[1][1])
	}
}

func TestReadTableRejectsUnknownExtension(t *testing.T) {
	if _, err := ReadTable([]byte("x"), "vendor.pdf"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestMapHeaderResolvesAliases(t *testing.T) {
	table := &Table{Rows: [][]string{
		{"Part Number", "Product Name", "Unit Price"},
		{"ABC-1", "Widget", "9.99"},
	}}

	sheet, err := MapHeader(table, testProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := sheet.DataRows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 data row, got %d", len(rows))
	}
	if got := rows[0].Get(config.FieldSKU); got != "ABC-1" {
		t.Fatalf("sku = %q", got)
	}
	if got := rows[0].Get(config.FieldPrice); got != "9.99" {
		t.Fatalf("price = %q", got)
	}
	if rows[0].Number != 2 {
		t.Fatalf("expected spreadsheet row number 2, got %d", rows[0].Number)
	}
}

func TestMapHeaderExactMatchBeatsSubstring(t *testing.T) {
	// "price" as a substring would match "Cost Price" first by column
	// order; the exact "Unit Price" alias must win.
	profile := &config.VendorProfile{
		FieldAliases: map[string][]string{
			config.FieldSKU:   {"sku"},
			config.FieldPrice: {"unit price", "price"},
		},
	}
	table := &Table{Rows: [][]string{
		{"SKU", "Cost Price", "Unit Price"},
		{"A1", "5.00", "9.99"},
	}}

	sheet, err := MapHeader(table, profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := sheet.DataRows()
	if got := rows[0].Get(config.FieldPrice); got != "9.99" {
		t.Fatalf("expected exact header match, got price %q", got)
	}
}

func TestMapHeaderSkipsPreambleWithAnchors(t *testing.T) {
	profile := testProfile()
	profile.HeaderAnchors = []string{"part number"}

	table := &Table{Rows: [][]string{
		{"Vendor Price List"},
		{"Effective 2026-01-01"},
		{"Part Number", "Product Name", "Unit Price"},
		{"ABC-1", "Widget", "9.99"},
	}}

	sheet, err := MapHeader(table, profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := sheet.DataRows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 data row, got %d", len(rows))
	}
	if rows[0].Number != 4 {
		t.Fatalf("expected row number 4, got %d", rows[0].Number)
	}
}

func TestMapHeaderFallsBackToFirstRowWhenNoAnchorMatches(t *testing.T) {
	profile := testProfile()
	profile.HeaderAnchors = []string{"style"}

	table := &Table{Rows: [][]string{
		{"SKU Number", "Name"},
		{"ABC-1", "Widget"},
	}}

	sheet, err := MapHeader(table, profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := sheet.DataRows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 data row, got %d", len(rows))
	}
	if got := rows[0].Get(config.FieldSKU); got != "ABC-1" {
		t.Fatalf("expected sku ABC-1, got %q", got)
	}
}

func TestMapHeaderFailsWithoutIdentifier(t *testing.T) {
	table := &Table{Rows: [][]string{
		{"Description", "Color"},
		{"Widget", "Blue"},
	}}

	_, err := MapHeader(table, testProfile())
	if err == nil {
		t.Fatal("expected error when no identifier column exists")
	}
	if !strings.Contains(err.Error(), "identifier") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDataRowsComposeName(t *testing.T) {
	profile := &config.VendorProfile{
		ComposeName: true,
		FieldAliases: map[string][]string{
			config.FieldSKU:  {"select code"},
			config.FieldName: {"brand with marks", "short description"},
		},
	}
	table := &Table{Rows: [][]string{
		{"Select Code", "Brand With Marks", "Short Description"},
		{"34-874", "G-Tek®", "Seamless Knit Glove"},
		{"34-875", "", "Seamless Knit Glove XL"},
	}}

	sheet, err := MapHeader(table, profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := sheet.DataRows()
	if got := rows[0].Get(config.FieldName); got != "G-Tek® Seamless Knit Glove" {
		t.Fatalf("composed name = %q", got)
	}
	// Empty components drop out instead of leaving a stray space.
	if got := rows[1].Get(config.FieldName); got != "Seamless Knit Glove XL" {
		t.Fatalf("composed name with blank part = %q", got)
	}
}

func TestDataRowsHandlesShortRows(t *testing.T) {
	table := &Table{Rows: [][]string{
		{"Part Number", "Product Name", "Unit Price"},
		{"ABC-1"},
		{"", "", ""},
	}}

	sheet, err := MapHeader(table, testProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := sheet.DataRows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if got := rows[0].Get(config.FieldPrice); got != "" {
		t.Fatalf("missing trailing cell should read empty, got %q", got)
	}
	if !rows[1].IsBlank() {
		t.Fatal("all-empty row should report blank")
	}
	if rows[0].IsBlank() {
		t.Fatal("row with a sku is not blank")
	}
}
