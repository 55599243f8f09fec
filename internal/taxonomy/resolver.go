package taxonomy

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/adasafety/catops/internal/catalog"
)

// Resolver finds or creates brands and categories, caching results for the
// duration of one import run so repeated rows hit the store once.
type Resolver struct {
	store catalog.Store

	mu         sync.Mutex
	brands     map[string]*catalog.Brand
	categories map[string]*catalog.Category
}

// NewResolver creates a Resolver backed by the given store.
func NewResolver(store catalog.Store) *Resolver {
	return &Resolver{
		store:      store,
		brands:     make(map[string]*catalog.Brand),
		categories: make(map[string]*catalog.Category),
	}
}

// ResolveBrand returns the brand for a vendor name, creating it on first
// sight. An empty name resolves to nil without error.
func (r *Resolver) ResolveBrand(ctx context.Context, name string) (*catalog.Brand, error) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return nil, nil
	}
	slug := Slugify(name)

	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.brands[slug]; ok {
		return b, nil
	}

	brand, err := r.store.FindBrandBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to look up brand %q: %w", name, err)
	}
	if brand == nil {
		brand = &catalog.Brand{
			ID:   uuid.New(),
			Name: displayName(name),
			Slug: slug,
		}
		if err := r.store.CreateBrand(ctx, brand); err != nil {
			return nil, fmt.Errorf("failed to create brand %q: %w", name, err)
		}
	}

	r.brands[slug] = brand
	return brand, nil
}

// ResolveCategory returns the leaf category for a parent/child pair,
// creating missing levels. Identical parent and child collapse to one
// category; an empty pair resolves to nil without error.
func (r *Resolver) ResolveCategory(ctx context.Context, parent, child string) (*catalog.Category, error) {
	parentNorm := NormalizeName(parent)
	childNorm := NormalizeName(child)
	if childNorm == parentNorm {
		child = ""
		childNorm = ""
	}
	if parentNorm == "" && childNorm == "" {
		return nil, nil
	}
	if parentNorm == "" {
		parent, child = child, ""
	}

	top, err := r.resolveOne(ctx, parent, nil)
	if err != nil {
		return nil, err
	}
	if child == "" {
		return top, nil
	}
	return r.resolveOne(ctx, child, &top.ID)
}

func (r *Resolver) resolveOne(ctx context.Context, name string, parentID *uuid.UUID) (*catalog.Category, error) {
	slug := Slugify(name)
	key := slug
	if parentID != nil {
		key = parentID.String() + "/" + slug
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.categories[key]; ok {
		return c, nil
	}

	cat, err := r.store.FindCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category %q: %w", name, err)
	}
	if cat == nil {
		cat = &catalog.Category{
			ID:       uuid.New(),
			Name:     displayName(name),
			Slug:     slug,
			ParentID: parentID,
		}
		if err := r.store.CreateCategory(ctx, cat); err != nil {
			return nil, fmt.Errorf("failed to create category %q: %w", name, err)
		}
	}

	r.categories[key] = cat
	return cat, nil
}
