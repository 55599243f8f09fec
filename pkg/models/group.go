package models

import "github.com/shopspring/decimal"

// VariantGroup is a set of rows that describe one product. Shared product
// fields come from the first row; each row contributes one variant.
type VariantGroup struct {
	Key      string        `json:"key"`
	Rows     []*ParsedRow  `json:"rows"`
	Variants []VariantSpec `json:"variants"`
}

// First returns the row shared product fields are taken from.
func (g *VariantGroup) First() *ParsedRow {
	return g.Rows[0]
}

// HasVariants reports whether the group produces a multi-variant product.
func (g *VariantGroup) HasVariants() bool {
	return len(g.Rows) > 1
}

// TotalStock sums the stock of every variant in the group.
func (g *VariantGroup) TotalStock() int {
	total := 0
	for _, v := range g.Variants {
		total += v.Stock
	}
	return total
}

// LowestPrice returns the smallest non-zero variant price, or zero when no
// variant carries one.
func (g *VariantGroup) LowestPrice() decimal.Decimal {
	lowest := decimal.Zero
	for _, v := range g.Variants {
		if v.Price.IsZero() {
			continue
		}
		if lowest.IsZero() || v.Price.LessThan(lowest) {
			lowest = v.Price
		}
	}
	return lowest
}

// VariantSpec is one sellable variant extracted from a row.
type VariantSpec struct {
	Row     *ParsedRow      `json:"-"`
	SKU     string          `json:"sku"`
	Label   string          `json:"label"`
	Size    string          `json:"size,omitempty"`
	Color   string          `json:"color,omitempty"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock"`
	Barcode string          `json:"barcode,omitempty"`
}
