package models

import "github.com/shopspring/decimal"

// ParsedRow is a single spreadsheet row after header mapping and type
// normalization. String fields are trimmed; absent cells stay zero-valued.
type ParsedRow struct {
	RowNumber int    `json:"row_number"`
	SKU       string `json:"sku"`
	Style     string `json:"style,omitempty"`
	Name      string `json:"name"`

	Description    string   `json:"description,omitempty"`
	Features       []string `json:"features,omitempty"`
	Specifications []string `json:"specifications,omitempty"`
	Applications   []string `json:"applications,omitempty"`

	BrandName      string `json:"brand_name,omitempty"`
	ParentCategory string `json:"parent_category,omitempty"`
	ChildCategory  string `json:"child_category,omitempty"`

	Price     decimal.Decimal `json:"price"`
	CostPrice decimal.Decimal `json:"cost_price"`
	MSRP      decimal.Decimal `json:"msrp"`

	StockQuantity int    `json:"stock_quantity"`
	StockType     string `json:"stock_type,omitempty"`
	Barcode       string `json:"barcode,omitempty"`

	Weight decimal.Decimal `json:"weight"`
	Length decimal.Decimal `json:"length"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`

	Size     string `json:"size,omitempty"`
	Color    string `json:"color,omitempty"`
	ImageRef string `json:"image_ref,omitempty"`
	Status   string `json:"status,omitempty"`
}

// HasPrice reports whether the row carries a non-zero selling price.
func (r *ParsedRow) HasPrice() bool {
	return !r.Price.IsZero()
}

// GroupKey returns the value rows are grouped on: the style code when the
// vendor provides one, otherwise the SKU (single-member group).
func (r *ParsedRow) GroupKey() string {
	if r.Style != "" {
		return r.Style
	}
	return r.SKU
}
