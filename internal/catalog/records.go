package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adasafety/catops/pkg/models"
)

// Product is a catalog product record.
type Product struct {
	ID               uuid.UUID            `json:"id"`
	SKU              string               `json:"sku"`
	Slug             string               `json:"slug"`
	Name             string               `json:"name"`
	Description      string               `json:"description,omitempty"`
	ShortDescription string               `json:"short_description,omitempty"`
	BrandID          *uuid.UUID           `json:"brand_id,omitempty"`
	CategoryID       *uuid.UUID           `json:"category_id,omitempty"`
	SupplierID       string               `json:"supplier_id,omitempty"`
	BasePrice        decimal.Decimal      `json:"base_price"`
	CostPrice        decimal.Decimal      `json:"cost_price"`
	MSRP             decimal.Decimal      `json:"msrp"`
	Status           models.ProductStatus `json:"status"`
	HasVariants      bool                 `json:"has_variants"`
	StockQuantity    int                  `json:"stock_quantity"`
	Barcode          string               `json:"barcode,omitempty"`
	Weight           decimal.Decimal      `json:"weight"`
	Length           decimal.Decimal      `json:"length"`
	Width            decimal.Decimal      `json:"width"`
	Height           decimal.Decimal      `json:"height"`
	MetaTitle        string               `json:"meta_title,omitempty"`
	MetaDescription  string               `json:"meta_description,omitempty"`
	MetaKeywords     []string             `json:"meta_keywords,omitempty"`
	Images           []string             `json:"images,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// Variant is one sellable variant of a product.
type Variant struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Size          string          `json:"size,omitempty"`
	Color         string          `json:"color,omitempty"`
	BasePrice     decimal.Decimal `json:"base_price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	StockQuantity int             `json:"stock_quantity"`
	Barcode       string          `json:"barcode,omitempty"`
	Position      int             `json:"position"`
	IsActive      bool            `json:"is_active"`
}

// Brand is a product brand.
type Brand struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Category is a node in the two-level category tree.
type Category struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// ProductImage is a stored image record for a product.
type ProductImage struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	URL       string    `json:"url"`
	ThumbURL  string    `json:"thumb_url,omitempty"`
	AltText   string    `json:"alt_text,omitempty"`
	Position  int       `json:"position"`
	IsPrimary bool      `json:"is_primary"`
}

// WarehouseStock is the stock level of a product in one warehouse.
type WarehouseStock struct {
	ProductID    uuid.UUID `json:"product_id"`
	WarehouseID  string    `json:"warehouse_id"`
	Quantity     int       `json:"quantity"`
	Reserved     int       `json:"reserved"`
	ReorderLevel int       `json:"reorder_level"`
}
