package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/adasafety/catops/internal/catalog"
	"github.com/adasafety/catops/pkg/models"
)

// Store implements the catalog.Store interface for PostgreSQL
type Store struct {
	client *Client
}

// NewStore creates a PostgreSQL catalog store
func NewStore(client *Client) *Store {
	return &Store{client: client}
}

const productColumns = `
	id, sku, slug, name, description, short_description,
	brand_id, category_id, supplier_id,
	base_price, cost_price, msrp,
	status, has_variants, stock_quantity, barcode,
	weight, length, width, height,
	meta_title, meta_description, meta_keywords, images,
	created_at, updated_at
`

// FindProductBySKU retrieves a product by SKU, nil when absent
func (s *Store) FindProductBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	return s.findProduct(ctx, "sku", sku)
}

// FindProductBySlug retrieves a product by slug, nil when absent
func (s *Store) FindProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	return s.findProduct(ctx, "slug", slug)
}

func (s *Store) findProduct(ctx context.Context, field, value string) (*catalog.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s = $1`, productColumns, field)
	row := s.client.pool.QueryRow(ctx, query, value)

	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product by %s: %w", field, err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var p catalog.Product
	var brandID, categoryID uuid.NullUUID
	var basePrice, costPrice, msrp, weight, length, width, height string
	var status string

	err := row.Scan(
		&p.ID, &p.SKU, &p.Slug, &p.Name, &p.Description, &p.ShortDescription,
		&brandID, &categoryID, &p.SupplierID,
		&basePrice, &costPrice, &msrp,
		&status, &p.HasVariants, &p.StockQuantity, &p.Barcode,
		&weight, &length, &width, &height,
		&p.MetaTitle, &p.MetaDescription, &p.MetaKeywords, &p.Images,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if brandID.Valid {
		p.BrandID = &brandID.UUID
	}
	if categoryID.Valid {
		p.CategoryID = &categoryID.UUID
	}
	p.Status = models.ProductStatus(status)
	p.BasePrice = mustDecimal(basePrice)
	p.CostPrice = mustDecimal(costPrice)
	p.MSRP = mustDecimal(msrp)
	p.Weight = mustDecimal(weight)
	p.Length = mustDecimal(length)
	p.Width = mustDecimal(width)
	p.Height = mustDecimal(height)
	return &p, nil
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// CreateProduct inserts a new product
func (s *Store) CreateProduct(ctx context.Context, p *catalog.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO products (
			id, sku, slug, name, description, short_description,
			brand_id, category_id, supplier_id,
			base_price, cost_price, msrp,
			status, has_variants, stock_quantity, barcode,
			weight, length, width, height,
			meta_title, meta_description, meta_keywords, images,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9,
			$10, $11, $12,
			$13, $14, $15, $16,
			$17, $18, $19, $20,
			$21, $22, $23, $24,
			$25, $26
		)
	`
	_, err := s.client.pool.Exec(ctx, query,
		p.ID, p.SKU, p.Slug, p.Name, p.Description, p.ShortDescription,
		nullUUID(p.BrandID), nullUUID(p.CategoryID), p.SupplierID,
		p.BasePrice.String(), p.CostPrice.String(), p.MSRP.String(),
		string(p.Status), p.HasVariants, p.StockQuantity, p.Barcode,
		p.Weight.String(), p.Length.String(), p.Width.String(), p.Height.String(),
		p.MetaTitle, p.MetaDescription, p.MetaKeywords, p.Images,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct replaces a product's stored fields
func (s *Store) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	p.UpdatedAt = time.Now()

	query := `
		UPDATE products SET
			sku = $2, slug = $3, name = $4, description = $5, short_description = $6,
			brand_id = $7, category_id = $8, supplier_id = $9,
			base_price = $10, cost_price = $11, msrp = $12,
			status = $13, has_variants = $14, stock_quantity = $15, barcode = $16,
			weight = $17, length = $18, width = $19, height = $20,
			meta_title = $21, meta_description = $22, meta_keywords = $23, images = $24,
			updated_at = $25
		WHERE id = $1
	`
	tag, err := s.client.pool.Exec(ctx, query,
		p.ID, p.SKU, p.Slug, p.Name, p.Description, p.ShortDescription,
		nullUUID(p.BrandID), nullUUID(p.CategoryID), p.SupplierID,
		p.BasePrice.String(), p.CostPrice.String(), p.MSRP.String(),
		string(p.Status), p.HasVariants, p.StockQuantity, p.Barcode,
		p.Weight.String(), p.Length.String(), p.Width.String(), p.Height.String(),
		p.MetaTitle, p.MetaDescription, p.MetaKeywords, p.Images,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %s", p.ID)
	}
	return nil
}

// GetVariants returns the variants of a product ordered by position
func (s *Store) GetVariants(ctx context.Context, productID uuid.UUID) ([]*catalog.Variant, error) {
	query := `
		SELECT id, product_id, sku, name, size, color,
			base_price, cost_price, stock_quantity, barcode, position, is_active
		FROM product_variants
		WHERE product_id = $1
		ORDER BY position
	`
	rows, err := s.client.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	var variants []*catalog.Variant
	for rows.Next() {
		var v catalog.Variant
		var basePrice, costPrice string
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.Size, &v.Color,
			&basePrice, &costPrice, &v.StockQuantity, &v.Barcode, &v.Position, &v.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		v.BasePrice = mustDecimal(basePrice)
		v.CostPrice = mustDecimal(costPrice)
		variants = append(variants, &v)
	}
	return variants, rows.Err()
}

// DeleteVariants removes every variant of a product
func (s *Store) DeleteVariants(ctx context.Context, productID uuid.UUID) error {
	_, err := s.client.pool.Exec(ctx, `DELETE FROM product_variants WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete variants: %w", err)
	}
	return nil
}

// CreateVariant inserts a new variant
func (s *Store) CreateVariant(ctx context.Context, v *catalog.Variant) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	query := `
		INSERT INTO product_variants (
			id, product_id, sku, name, size, color,
			base_price, cost_price, stock_quantity, barcode, position, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.client.pool.Exec(ctx, query,
		v.ID, v.ProductID, v.SKU, v.Name, v.Size, v.Color,
		v.BasePrice.String(), v.CostPrice.String(), v.StockQuantity, v.Barcode, v.Position, v.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to create variant: %w", err)
	}
	return nil
}

// FindBrandBySlug retrieves a brand by slug, nil when absent
func (s *Store) FindBrandBySlug(ctx context.Context, slug string) (*catalog.Brand, error) {
	var b catalog.Brand
	err := s.client.pool.QueryRow(ctx,
		`SELECT id, name, slug FROM brands WHERE slug = $1`, slug,
	).Scan(&b.ID, &b.Name, &b.Slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query brand: %w", err)
	}
	return &b, nil
}

// CreateBrand inserts a new brand
func (s *Store) CreateBrand(ctx context.Context, b *catalog.Brand) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	_, err := s.client.pool.Exec(ctx,
		`INSERT INTO brands (id, name, slug) VALUES ($1, $2, $3)`,
		b.ID, b.Name, b.Slug,
	)
	if err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

// FindCategoryBySlug retrieves a category by slug, nil when absent
func (s *Store) FindCategoryBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	var c catalog.Category
	var parentID uuid.NullUUID
	err := s.client.pool.QueryRow(ctx,
		`SELECT id, name, slug, parent_id FROM categories WHERE slug = $1`, slug,
	).Scan(&c.ID, &c.Name, &c.Slug, &parentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	if parentID.Valid {
		c.ParentID = &parentID.UUID
	}
	return &c, nil
}

// CreateCategory inserts a new category
func (s *Store) CreateCategory(ctx context.Context, c *catalog.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	_, err := s.client.pool.Exec(ctx,
		`INSERT INTO categories (id, name, slug, parent_id) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Slug, nullUUID(c.ParentID),
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// DeleteProductImages removes every image record of a product
func (s *Store) DeleteProductImages(ctx context.Context, productID uuid.UUID) error {
	_, err := s.client.pool.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product images: %w", err)
	}
	return nil
}

// CreateProductImage inserts a new image record
func (s *Store) CreateProductImage(ctx context.Context, img *catalog.ProductImage) error {
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	query := `
		INSERT INTO product_images (id, product_id, url, thumb_url, alt_text, position, is_primary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.client.pool.Exec(ctx, query,
		img.ID, img.ProductID, img.URL, img.ThumbURL, img.AltText, img.Position, img.IsPrimary,
	)
	if err != nil {
		return fmt.Errorf("failed to create product image: %w", err)
	}
	return nil
}

// UpsertWarehouseStock creates or updates a warehouse stock row
func (s *Store) UpsertWarehouseStock(ctx context.Context, stock *catalog.WarehouseStock) error {
	query := `
		INSERT INTO warehouse_stock (product_id, warehouse_id, quantity, reserved, reorder_level, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, warehouse_id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			reserved = EXCLUDED.reserved,
			reorder_level = EXCLUDED.reorder_level,
			updated_at = now()
	`
	_, err := s.client.pool.Exec(ctx, query,
		stock.ProductID, stock.WarehouseID, stock.Quantity, stock.Reserved, stock.ReorderLevel,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert warehouse stock: %w", err)
	}
	return nil
}
