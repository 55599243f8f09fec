package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests and offline dry runs.
type MemoryStore struct {
	mu         sync.RWMutex
	products   map[uuid.UUID]*Product
	variants   map[uuid.UUID][]*Variant
	brands     map[string]*Brand    // by slug
	categories map[string]*Category // by slug
	images     map[uuid.UUID][]*ProductImage
	stock      map[string]*WarehouseStock // productID/warehouseID
}

// NewMemoryStore creates an empty in-memory catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:   make(map[uuid.UUID]*Product),
		variants:   make(map[uuid.UUID][]*Variant),
		brands:     make(map[string]*Brand),
		categories: make(map[string]*Category),
		images:     make(map[uuid.UUID][]*ProductImage),
		stock:      make(map[string]*WarehouseStock),
	}
}

// FindProductBySKU returns the product with the given SKU, or nil.
func (s *MemoryStore) FindProductBySKU(_ context.Context, sku string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// FindProductBySlug returns the product with the given slug, or nil.
func (s *MemoryStore) FindProductBySlug(_ context.Context, slug string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// CreateProduct stores a new product, assigning an ID when missing.
func (s *MemoryStore) CreateProduct(_ context.Context, product *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	cp := *product
	s.products[product.ID] = &cp
	return nil
}

// UpdateProduct replaces a stored product.
func (s *MemoryStore) UpdateProduct(_ context.Context, product *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[product.ID]
	if !ok {
		return fmt.Errorf("product not found: %s", product.ID)
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	cp := *product
	s.products[product.ID] = &cp
	return nil
}

// GetVariants returns the variants of a product.
func (s *MemoryStore) GetVariants(_ context.Context, productID uuid.UUID) ([]*Variant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	variants := make([]*Variant, 0, len(s.variants[productID]))
	for _, v := range s.variants[productID] {
		cp := *v
		variants = append(variants, &cp)
	}
	return variants, nil
}

// DeleteVariants removes every variant of a product.
func (s *MemoryStore) DeleteVariants(_ context.Context, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.variants, productID)
	return nil
}

// CreateVariant stores a new variant, assigning an ID when missing.
func (s *MemoryStore) CreateVariant(_ context.Context, variant *Variant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if variant.ID == uuid.Nil {
		variant.ID = uuid.New()
	}
	cp := *variant
	s.variants[variant.ProductID] = append(s.variants[variant.ProductID], &cp)
	return nil
}

// FindBrandBySlug returns the brand with the given slug, or nil.
func (s *MemoryStore) FindBrandBySlug(_ context.Context, slug string) (*Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.brands[slug]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

// CreateBrand stores a new brand, assigning an ID when missing.
func (s *MemoryStore) CreateBrand(_ context.Context, brand *Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if brand.ID == uuid.Nil {
		brand.ID = uuid.New()
	}
	cp := *brand
	s.brands[brand.Slug] = &cp
	return nil
}

// FindCategoryBySlug returns the category with the given slug, or nil.
func (s *MemoryStore) FindCategoryBySlug(_ context.Context, slug string) (*Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.categories[slug]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

// CreateCategory stores a new category, assigning an ID when missing.
func (s *MemoryStore) CreateCategory(_ context.Context, category *Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	cp := *category
	s.categories[category.Slug] = &cp
	return nil
}

// DeleteProductImages removes every image record of a product.
func (s *MemoryStore) DeleteProductImages(_ context.Context, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.images, productID)
	return nil
}

// CreateProductImage stores a new image record, assigning an ID when missing.
func (s *MemoryStore) CreateProductImage(_ context.Context, image *ProductImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	cp := *image
	s.images[image.ProductID] = append(s.images[image.ProductID], &cp)
	return nil
}

// UpsertWarehouseStock creates or replaces a warehouse stock row.
func (s *MemoryStore) UpsertWarehouseStock(_ context.Context, stock *WarehouseStock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *stock
	s.stock[stock.ProductID.String()+"/"+stock.WarehouseID] = &cp
	return nil
}

// Counts returns record counts for test assertions.
func (s *MemoryStore) Counts() (products, variants, brands, categories, images int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.variants {
		variants += len(v)
	}
	for _, imgs := range s.images {
		images += len(imgs)
	}
	return len(s.products), variants, len(s.brands), len(s.categories), images
}

// ImagesFor returns the stored image records of a product, for tests.
func (s *MemoryStore) ImagesFor(productID uuid.UUID) []*ProductImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*ProductImage(nil), s.images[productID]...)
}

// StockFor returns the warehouse stock row for a product, or nil.
func (s *MemoryStore) StockFor(productID uuid.UUID, warehouseID string) *WarehouseStock {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stock[productID.String()+"/"+warehouseID]
}
