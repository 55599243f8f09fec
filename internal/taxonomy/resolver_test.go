package taxonomy

import (
	"context"
	"testing"

	"github.com/adasafety/catops/internal/catalog"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"G-Tek®", "g-tek"},
		{"  PIP   Industries ", "pip industries"},
		{"3M™", "3m"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Head Protection", "head-protection"},
		{"G-Tek®", "g-tek"},
		{"Gloves / Hand Protection", "gloves-hand-protection"},
		{"  Hi-Viz  Apparel  ", "hi-viz-apparel"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayNameTitleCasesAllCaps(t *testing.T) {
	if got := displayName("CARHARTT COMPANY"); got != "Carhartt Company" {
		t.Fatalf("displayName = %q", got)
	}
	// Mixed case is left alone.
	if got := displayName("OccuNomix"); got != "OccuNomix" {
		t.Fatalf("displayName = %q", got)
	}
}

func TestResolveBrandCreatesOnce(t *testing.T) {
	store := catalog.NewMemoryStore()
	r := NewResolver(store)
	ctx := context.Background()

	first, err := r.ResolveBrand(ctx, "Carhartt®")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Slug != "carhartt" {
		t.Fatalf("slug = %q", first.Slug)
	}

	// Same brand under a different spelling reuses the record.
	second, err := r.ResolveBrand(ctx, "  CARHARTT ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatal("expected cached brand, got a duplicate")
	}
	if _, _, brands, _, _ := store.Counts(); brands != 1 {
		t.Fatalf("expected 1 brand in store, got %d", brands)
	}
}

func TestResolveBrandEmptyIsNil(t *testing.T) {
	r := NewResolver(catalog.NewMemoryStore())
	b, err := r.ResolveBrand(context.Background(), "  ")
	if err != nil || b != nil {
		t.Fatalf("empty brand should resolve to nil, got %v, %v", b, err)
	}
}

func TestResolveCategoryTwoLevels(t *testing.T) {
	store := catalog.NewMemoryStore()
	r := NewResolver(store)
	ctx := context.Background()

	leaf, err := r.ResolveCategory(ctx, "Safety", "Head Protection")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if leaf.Slug != "head-protection" {
		t.Fatalf("leaf slug = %q", leaf.Slug)
	}
	if leaf.ParentID == nil {
		t.Fatal("leaf should have a parent")
	}

	parent, err := store.FindCategoryBySlug(ctx, "safety")
	if err != nil || parent == nil {
		t.Fatalf("parent not created: %v, %v", parent, err)
	}
	if *leaf.ParentID != parent.ID {
		t.Fatal("leaf parent does not match top-level category")
	}
}

func TestResolveCategoryCollapsesDuplicates(t *testing.T) {
	store := catalog.NewMemoryStore()
	r := NewResolver(store)
	ctx := context.Background()

	// Parent equal to child collapses to one level.
	cat, err := r.ResolveCategory(ctx, "Gloves", "GLOVES")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.ParentID != nil {
		t.Fatal("collapsed category should be top level")
	}
	if _, _, _, categories, _ := store.Counts(); categories != 1 {
		t.Fatalf("expected 1 category, got %d", categories)
	}
}

func TestResolveCategoryChildOnly(t *testing.T) {
	store := catalog.NewMemoryStore()
	r := NewResolver(store)

	cat, err := r.ResolveCategory(context.Background(), "", "Eyewear")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat == nil || cat.ParentID != nil {
		t.Fatalf("child-only pair should become a top-level category: %+v", cat)
	}

	none, err := r.ResolveCategory(context.Background(), "", "")
	if err != nil || none != nil {
		t.Fatalf("empty pair should resolve to nil, got %v, %v", none, err)
	}
}
