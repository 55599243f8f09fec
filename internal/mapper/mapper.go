package mapper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/adasafety/catops/internal/config"
	"github.com/adasafety/catops/internal/parser"
	"github.com/adasafety/catops/pkg/models"
)

// ErrBlankRow marks a row with no data at all; callers skip it silently
// rather than reporting an error.
var ErrBlankRow = fmt.Errorf("blank row")

// Normalize converts a mapped raw row into a typed ParsedRow. A blank row
// returns ErrBlankRow; a row with data but no identifier returns a real error.
func Normalize(row parser.RawRow, profile *config.VendorProfile) (*models.ParsedRow, error) {
	if row.IsBlank() {
		return nil, ErrBlankRow
	}

	sku := row.Get(config.FieldSKU)
	if sku == "" {
		return nil, fmt.Errorf("row %d: missing identifier", row.Number)
	}

	p := &models.ParsedRow{
		RowNumber: row.Number,
		SKU:       sku,
		Style:     row.Get(config.FieldStyle),
		Name:      row.Get(config.FieldName),

		Description:    row.Get(config.FieldDescription),
		Features:       SplitList(row.Get(config.FieldFeatures)),
		Specifications: SplitList(row.Get(config.FieldSpecifications)),
		Applications:   SplitList(row.Get(config.FieldApplications)),

		BrandName:      row.Get(config.FieldBrand),
		ParentCategory: row.Get(config.FieldCategory),
		ChildCategory:  row.Get(config.FieldSubcategory),

		Price:     ParseDecimal(row.Get(config.FieldPrice)),
		CostPrice: ParseDecimal(row.Get(config.FieldCostPrice)),
		MSRP:      ParseDecimal(row.Get(config.FieldMSRP)),

		StockQuantity: ParseInt(row.Get(config.FieldStock)),
		StockType:     row.Get(config.FieldStockType),
		Barcode:       row.Get(config.FieldBarcode),

		Weight: ParseDecimal(row.Get(config.FieldWeight)),
		Length: ParseDecimal(row.Get(config.FieldLength)),
		Width:  ParseDecimal(row.Get(config.FieldWidth)),
		Height: ParseDecimal(row.Get(config.FieldHeight)),

		Size:     row.Get(config.FieldSize),
		Color:    row.Get(config.FieldColor),
		ImageRef: row.Get(config.FieldImage),
		Status:   row.Get(config.FieldStatus),
	}

	if p.BrandName == "" {
		p.BrandName = profile.DefaultBrand
	}
	if p.Style == "" && profile.StyleFromSKU {
		p.Style = StyleFromSKU(sku, profile.BrandPrefix)
	}

	return p, nil
}

// StyleFromSKU derives the shared style code by stripping the vendor prefix
// and dropping the trailing segment (the size) from a dash-delimited SKU.
// "CHT-CMW6095-7M" with prefix "CHT-" yields "CMW6095".
func StyleFromSKU(sku, prefix string) string {
	base := sku
	if prefix != "" && strings.HasPrefix(strings.ToUpper(base), strings.ToUpper(prefix)) {
		base = base[len(prefix):]
	}
	idx := strings.LastIndex(base, "-")
	if idx <= 0 {
		return base
	}
	return base[:idx]
}

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// ParseDecimal parses a money or measurement cell, tolerating currency
// symbols, thousands separators and units. Unparsable input yields zero.
func ParseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	cleaned := nonNumeric.ReplaceAllString(s, "")
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseInt parses a quantity cell the same way, truncating fractions.
func ParseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	cleaned := nonNumeric.ReplaceAllString(s, "")
	if cleaned == "" || cleaned == "-" {
		return 0
	}
	if n, err := strconv.Atoi(cleaned); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return int(f)
	}
	return 0
}

var listSeparators = regexp.MustCompile(`\s*(?:;|\||--|\n)\s*`)

// SplitList splits a delimited cell (semicolons, pipes, double dashes or
// newlines) into trimmed non-empty items.
func SplitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var items []string
	for _, part := range listSeparators.Split(s, -1) {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
