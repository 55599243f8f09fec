package importer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/adasafety/catops/internal/catalog"
	"github.com/adasafety/catops/internal/config"
	"github.com/adasafety/catops/pkg/models"
)

const (
	metaTitleMax       = 70
	metaDescriptionMax = 160
)

// buildProduct assembles the catalog record for a group. Shared fields come
// from the first row; price and stock aggregate over the variants.
func (i *Importer) buildProduct(g *models.VariantGroup, name, sku, slug string, brandID, categoryID *uuid.UUID) *catalog.Product {
	first := g.First()

	price := first.Price
	if g.HasVariants() && price.IsZero() {
		price = g.LowestPrice()
	}

	stock := first.StockQuantity
	if g.HasVariants() {
		stock = g.TotalStock()
		if stock == 0 {
			stock = i.opts.DefaultStockQuantity * len(g.Variants)
		}
	} else if stock == 0 {
		stock = i.opts.DefaultStockQuantity
	}

	status := models.ParseStatus(first.Status, i.opts.DefaultStatus)
	status = models.StatusFromStockType(first.StockType, status)

	description := assembleDescription(first, i.profile.DescriptionSections)
	metaTitle, metaDescription, keywords := buildSEO(name, first.BrandName, first.ChildCategory, description)

	return &catalog.Product{
		SKU:              sku,
		Slug:             slug,
		Name:             name,
		Description:      description,
		ShortDescription: truncate(name, metaTitleMax),
		BrandID:          brandID,
		CategoryID:       categoryID,
		SupplierID:       i.opts.DefaultSupplierID,
		BasePrice:        price,
		CostPrice:        first.CostPrice,
		MSRP:             first.MSRP,
		Status:           status,
		HasVariants:      g.HasVariants(),
		StockQuantity:    stock,
		Barcode:          first.Barcode,
		Weight:           first.Weight,
		Length:           first.Length,
		Width:            first.Width,
		Height:           first.Height,
		MetaTitle:        metaTitle,
		MetaDescription:  metaDescription,
		MetaKeywords:     keywords,
	}
}

// assembleDescription joins the configured description sections into one
// text. List sections render as bulleted blocks under a heading.
func assembleDescription(row *models.ParsedRow, sections []string) string {
	if len(sections) == 0 {
		return row.Description
	}

	var parts []string
	for _, section := range sections {
		switch section {
		case config.FieldDescription:
			if row.Description != "" {
				parts = append(parts, row.Description)
			}
		case config.FieldFeatures:
			if block := bulletBlock("Features", row.Features); block != "" {
				parts = append(parts, block)
			}
		case config.FieldSpecifications:
			if block := bulletBlock("Specifications", row.Specifications); block != "" {
				parts = append(parts, block)
			}
		case config.FieldApplications:
			if block := bulletBlock("Applications", row.Applications); block != "" {
				parts = append(parts, block)
			}
		}
	}
	return strings.Join(parts, "\n\n")
}

func bulletBlock(heading string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(heading)
	b.WriteString(":")
	for _, item := range items {
		b.WriteString("\n- ")
		b.WriteString(item)
	}
	return b.String()
}

// buildSEO derives the meta fields from the product name, brand and
// category, within the usual search-snippet limits.
func buildSEO(name, brand, category, description string) (title, metaDescription string, keywords []string) {
	title = name
	if brand != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(brand)) {
		title = fmt.Sprintf("%s | %s", name, brand)
	}
	title = truncate(title, metaTitleMax)

	metaDescription = description
	if metaDescription == "" {
		metaDescription = name
	}
	// Meta descriptions stay on one line.
	if idx := strings.IndexByte(metaDescription, '\n'); idx >= 0 {
		metaDescription = metaDescription[:idx]
	}
	metaDescription = truncate(metaDescription, metaDescriptionMax)

	seen := make(map[string]bool)
	for _, kw := range []string{brand, category, name} {
		kw = strings.TrimSpace(kw)
		if kw == "" || seen[strings.ToLower(kw)] {
			continue
		}
		seen[strings.ToLower(kw)] = true
		keywords = append(keywords, kw)
	}
	return title, metaDescription, keywords
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if idx := strings.LastIndexByte(cut, ' '); idx > max/2 {
		cut = cut[:idx]
	}
	return cut
}
