package models

import "strings"

// ProductStatus is the lifecycle state of a catalog product.
type ProductStatus string

const (
	StatusDraft    ProductStatus = "DRAFT"
	StatusActive   ProductStatus = "ACTIVE"
	StatusInactive ProductStatus = "INACTIVE"
)

// ParseStatus maps a free-form status cell to a ProductStatus. Unknown values
// fall back to the provided default.
func ParseStatus(s string, def ProductStatus) ProductStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACTIVE", "A", "LIVE":
		return StatusActive
	case "INACTIVE", "I", "DISABLED":
		return StatusInactive
	case "DRAFT", "D":
		return StatusDraft
	}
	return def
}

// StatusFromStockType derives a status from a vendor stock-type column.
// Discontinued stock deactivates the product; anything else keeps def.
func StatusFromStockType(stockType string, def ProductStatus) ProductStatus {
	t := strings.ToLower(stockType)
	if strings.Contains(t, "discontinued") || strings.Contains(t, "closeout") {
		return StatusInactive
	}
	return def
}
