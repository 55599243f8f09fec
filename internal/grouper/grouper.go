package grouper

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adasafety/catops/internal/config"
	"github.com/adasafety/catops/pkg/models"
)

// Group collects normalized rows into variant groups keyed on the style
// code. Vendors without style grouping get one single-row group per SKU.
// Shared product fields come from the first row seen for a key; group order
// follows first appearance in the sheet.
func Group(rows []*models.ParsedRow, profile *config.VendorProfile) []*models.VariantGroup {
	byKey := make(map[string]*models.VariantGroup)
	var order []string

	for _, row := range rows {
		key := row.SKU
		if profile.GroupsByStyle() {
			key = row.GroupKey()
		}
		g, ok := byKey[key]
		if !ok {
			g = &models.VariantGroup{Key: key}
			byKey[key] = g
			order = append(order, key)
		}
		g.Rows = append(g.Rows, row)
	}

	groups := make([]*models.VariantGroup, 0, len(order))
	for _, key := range order {
		g := byKey[key]
		for _, row := range g.Rows {
			g.Variants = append(g.Variants, buildVariant(row, g.Key, profile))
		}
		sortVariants(g.Variants)
		groups = append(groups, g)
	}
	return groups
}

// buildVariant extracts the variant attributes for one row. Extraction runs
// in priority order: explicit columns, SKU suffix vocabulary, trailing name
// descriptors, then the raw suffix so the label is never empty.
func buildVariant(row *models.ParsedRow, style string, profile *config.VendorProfile) models.VariantSpec {
	v := models.VariantSpec{
		Row:     row,
		SKU:     row.SKU,
		Price:   row.Price,
		Stock:   row.StockQuantity,
		Barcode: row.Barcode,
	}

	suffix := skuSuffix(row.SKU, style, profile.BrandPrefix)
	rules := profile.Variants

	if rules.UseColumns {
		v.Size = row.Size
		v.Color = row.Color
	}

	if v.Size == "" && rules.SuffixVocabulary {
		v.Size = sizeFromSuffix(suffix)
	}
	if v.Size == "" && rules.NameDescriptors {
		v.Size = sizeFromName(row.Name)
	}

	if v.Color == "" && rules.SuffixVocabulary {
		v.Color = colorFromSuffix(suffix)
	}
	if v.Color == "" && rules.NameDescriptors {
		v.Color = colorFromName(row.Name)
	}

	v.Label = variantLabel(v.Size, v.Color, suffix)
	return v
}

// sortVariants orders variants for display. When every variant has a
// rankable size (numeric or a known garment token) they sort small to
// large; otherwise order falls back to the label.
func sortVariants(variants []models.VariantSpec) {
	rankable := true
	for _, v := range variants {
		if _, ok := sizeSortKey(v.Size); !ok {
			rankable = false
			break
		}
	}
	if rankable && len(variants) > 1 {
		sort.SliceStable(variants, func(i, j int) bool {
			ri, _ := sizeSortKey(variants[i].Size)
			rj, _ := sizeSortKey(variants[j].Size)
			return ri < rj
		})
		return
	}
	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].Label < variants[j].Label
	})
}

// skuSuffix strips the vendor prefix and the style code from a SKU, leaving
// the variant-bearing tail. "CHT-CMW6095-7M" with style "CMW6095" yields "7M".
func skuSuffix(sku, style, prefix string) string {
	s := sku
	if prefix != "" && strings.HasPrefix(strings.ToUpper(s), strings.ToUpper(prefix)) {
		s = s[len(prefix):]
	}
	if style != "" {
		if idx := strings.Index(strings.ToUpper(s), strings.ToUpper(style)); idx >= 0 {
			s = s[:idx] + s[idx+len(style):]
		}
	}
	return strings.TrimLeft(s, "-_ ")
}

func variantLabel(size, color, suffix string) string {
	var parts []string
	if size != "" {
		parts = append(parts, fmt.Sprintf("Size: %s", size))
	}
	if color != "" {
		parts = append(parts, fmt.Sprintf("Color: %s", color))
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	if suffix != "" {
		return suffix
	}
	return "Default"
}
