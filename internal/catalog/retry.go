package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// RetryStore decorates a Store with a per-call timeout and a bounded retry
// on transient failures. Calls cancelled by the caller are never retried.
type RetryStore struct {
	inner   Store
	timeout time.Duration
	retries int
}

// WithRetry wraps a store. A zero timeout disables the per-call deadline.
func WithRetry(inner Store, timeout time.Duration, retries int) *RetryStore {
	if retries < 0 {
		retries = 0
	}
	return &RetryStore{inner: inner, timeout: timeout, retries: retries}
}

func (r *RetryStore) do(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= r.retries; attempt++ {
		callCtx := ctx
		cancel := func() {}
		if r.timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		}
		err = fn(callCtx)
		cancel()

		if err == nil {
			return nil
		}
		// The run itself was cancelled; bail out.
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return err
		}
	}
	return err
}

func (r *RetryStore) FindProductBySKU(ctx context.Context, sku string) (*Product, error) {
	var p *Product
	err := r.do(ctx, func(ctx context.Context) error {
		var err error
		p, err = r.inner.FindProductBySKU(ctx, sku)
		return err
	})
	return p, err
}

func (r *RetryStore) FindProductBySlug(ctx context.Context, slug string) (*Product, error) {
	var p *Product
	err := r.do(ctx, func(ctx context.Context) error {
		var err error
		p, err = r.inner.FindProductBySlug(ctx, slug)
		return err
	})
	return p, err
}

func (r *RetryStore) CreateProduct(ctx context.Context, product *Product) error {
	return r.do(ctx, func(ctx context.Context) error {
		return r.inner.CreateProduct(ctx, product)
	})
}

func (r *RetryStore) UpdateProduct(ctx context.Context, product *Product) error {
	return r.do(ctx, func(ctx context.Context) error {
		return r.inner.UpdateProduct(ctx, product)
	})
}

func (r *RetryStore) GetVariants(ctx context.Context, productID uuid.UUID) ([]*Variant, error) {
	var variants []*Variant
	err := r.do(ctx, func(ctx context.Context) error {
		var err error
		variants, err = r.inner.GetVariants(ctx, productID)
		return err
	})
	return variants, err
}

func (r *RetryStore) DeleteVariants(ctx context.Context, productID uuid.UUID) error {
	return r.do(ctx, func(ctx context.Context) error {
		return r.inner.DeleteVariants(ctx, productID)
	})
}

func (r *RetryStore) CreateVariant(ctx context.Context, variant *Variant) error {
	return r.do(ctx, func(ctx context.Context) error {
		return r.inner.CreateVariant(ctx, variant)
	})
}

func (r *RetryStore) FindBrandBySlug(ctx context.Context, slug string) (*Brand, error) {
	var b *Brand
	err := r.do(ctx, func(ctx context.Context) error {
		var err error
		b, err = r.inner.FindBrandBySlug(ctx, slug)
		return err
	})
	return b, err
}

func (r *RetryStore) CreateBrand(ctx context.Context, brand *Brand) error {
	return r.do(ctx, func(ctx context.Context) error {
		return r.inner.CreateBrand(ctx, brand)
	})
}

func (r *RetryStore) FindCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	var c *Category
	err := r.do(ctx, func(ctx context.Context) error {
		var err error
		c, err = r.inner.FindCategoryBySlug(ctx, slug)
		return err
	})
	return c, err
}

func (r *RetryStore) CreateCategory(ctx context.Context, category *Category) error {
	return r.do(ctx, func(ctx context.Context) error {
		return r.inner.CreateCategory(ctx, category)
	})
}

func (r *RetryStore) DeleteProductImages(ctx context.Context, productID uuid.UUID) error {
	return r.do(ctx, func(ctx context.Context) error {
		return r.inner.DeleteProductImages(ctx, productID)
	})
}

func (r *RetryStore) CreateProductImage(ctx context.Context, image *ProductImage) error {
	return r.do(ctx, func(ctx context.Context) error {
		return r.inner.CreateProductImage(ctx, image)
	})
}

func (r *RetryStore) UpsertWarehouseStock(ctx context.Context, stock *WarehouseStock) error {
	return r.do(ctx, func(ctx context.Context) error {
		return r.inner.UpsertWarehouseStock(ctx, stock)
	})
}
