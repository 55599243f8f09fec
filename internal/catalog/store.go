package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the catalog data access the import pipeline needs. Lookups
// return (nil, nil) when the record does not exist.
type Store interface {
	// Products
	FindProductBySKU(ctx context.Context, sku string) (*Product, error)
	FindProductBySlug(ctx context.Context, slug string) (*Product, error)
	CreateProduct(ctx context.Context, product *Product) error
	UpdateProduct(ctx context.Context, product *Product) error

	// Variants
	GetVariants(ctx context.Context, productID uuid.UUID) ([]*Variant, error)
	DeleteVariants(ctx context.Context, productID uuid.UUID) error
	CreateVariant(ctx context.Context, variant *Variant) error

	// Taxonomy
	FindBrandBySlug(ctx context.Context, slug string) (*Brand, error)
	CreateBrand(ctx context.Context, brand *Brand) error
	FindCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error

	// Images
	DeleteProductImages(ctx context.Context, productID uuid.UUID) error
	CreateProductImage(ctx context.Context, image *ProductImage) error

	// Stock
	UpsertWarehouseStock(ctx context.Context, stock *WarehouseStock) error
}
