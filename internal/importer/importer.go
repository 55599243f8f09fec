package importer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/adasafety/catops/internal/catalog"
	"github.com/adasafety/catops/internal/config"
	"github.com/adasafety/catops/internal/grouper"
	"github.com/adasafety/catops/internal/images"
	"github.com/adasafety/catops/internal/mapper"
	"github.com/adasafety/catops/internal/parser"
	"github.com/adasafety/catops/internal/taxonomy"
	"github.com/adasafety/catops/pkg/models"
)

// Options configures an import run.
type Options struct {
	// SkipExisting leaves products already in the catalog untouched.
	// The default is to update them in place.
	SkipExisting         bool
	ImportImages         bool
	ImageBasePath        string
	DryRun               bool
	DefaultStockQuantity int
	DefaultStatus        models.ProductStatus
	DefaultSupplierID    string
	DefaultWarehouseID   string
	DefaultBrandID       *uuid.UUID
	DefaultCategoryID    *uuid.UUID
	Parallelism          int
	Limit                int // cap on product groups processed, 0 = all
}

// Deps carries the collaborators an Importer is built from.
type Deps struct {
	Store     catalog.Store
	Profile   *config.VendorProfile
	Locator   *images.Locator
	Processor *images.Processor
	Log       *logrus.Logger
	// Progress, when set, is called after each processed group. Calls
	// are serialized, so the callback needs no locking of its own.
	Progress func(done, total int)
}

// Importer runs one vendor file through the import pipeline.
type Importer struct {
	store     catalog.Store
	profile   *config.VendorProfile
	resolver  *taxonomy.Resolver
	locator   *images.Locator
	processor *images.Processor
	log       *logrus.Logger
	progress  func(done, total int)
	opts      Options

	mu     sync.Mutex
	result *models.ImportResult
	done   int

	progressMu sync.Mutex
}

// New creates an Importer.
func New(deps Deps, opts Options) *Importer {
	log := deps.Log
	if log == nil {
		log = logrus.New()
	}
	if opts.DefaultStatus == "" {
		opts.DefaultStatus = models.StatusDraft
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = 1
	}
	return &Importer{
		store:     deps.Store,
		profile:   deps.Profile,
		resolver:  taxonomy.NewResolver(deps.Store),
		locator:   deps.Locator,
		processor: deps.Processor,
		log:       log,
		progress:  deps.Progress,
		opts:      opts,
	}
}

// Run imports one vendor file: parse, normalize, group, then process each
// product group. Row and group failures are recorded on the result; only
// structural failures (unreadable file, no identifier column) return an
// error.
func (i *Importer) Run(ctx context.Context, data []byte, filename string) (*models.ImportResult, error) {
	result := &models.ImportResult{
		Vendor:    i.profile.Name,
		DryRun:    i.opts.DryRun,
		StartedAt: time.Now(),
	}
	i.result = result

	table, err := parser.ReadTable(data, filename)
	if err != nil {
		return nil, err
	}
	sheet, err := parser.MapHeader(table, i.profile)
	if err != nil {
		return nil, err
	}

	var rows []*models.ParsedRow
	for _, raw := range sheet.DataRows() {
		row, err := mapper.Normalize(raw, i.profile)
		if err != nil {
			if err == mapper.ErrBlankRow {
				result.RowsSkipped++
				continue
			}
			result.AddError(raw.Number, "", err.Error())
			continue
		}
		result.RowsParsed++
		rows = append(rows, row)
	}

	groups := grouper.Group(rows, i.profile)
	if i.opts.Limit > 0 && len(groups) > i.opts.Limit {
		groups = groups[:i.opts.Limit]
	}
	result.Groups = len(groups)

	if i.opts.ImportImages && i.locator != nil {
		if err := i.locator.Prepare(ctx, i.opts.ImageBasePath); err != nil {
			return nil, fmt.Errorf("failed to prepare image lookup: %w", err)
		}
	}

	eg := &errgroup.Group{}
	eg.SetLimit(i.opts.Parallelism)

	for _, group := range groups {
		if ctx.Err() != nil {
			break
		}
		g := group
		eg.Go(func() error {
			if err := i.processGroup(ctx, g); err != nil {
				i.recordError(g, err)
			}
			i.tick(len(groups))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	completed := time.Now()
	result.CompletedAt = &completed

	i.log.WithFields(logrus.Fields{
		"vendor":  result.Vendor,
		"groups":  result.Groups,
		"created": result.Created,
		"updated": result.Updated,
		"failed":  result.Failed,
		"dry_run": result.DryRun,
	}).Info("import finished")
	return result, nil
}

func (i *Importer) recordError(g *models.VariantGroup, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.result.AddError(g.First().RowNumber, g.Key, err.Error())
	i.log.WithError(err).WithField("group", g.Key).Warn("group failed")
}

func (i *Importer) warn(g *models.VariantGroup, msg string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.result.AddWarning(g.First().RowNumber, g.Key, msg)
}

func (i *Importer) tick(total int) {
	i.mu.Lock()
	i.done++
	done := i.done
	i.mu.Unlock()
	if i.progress != nil {
		i.progressMu.Lock()
		i.progress(done, total)
		i.progressMu.Unlock()
	}
}

func (i *Importer) count(fn func(r *models.ImportResult)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	fn(i.result)
}

// processGroup imports one product group end to end.
func (i *Importer) processGroup(ctx context.Context, g *models.VariantGroup) error {
	first := g.First()

	name := first.Name
	if g.HasVariants() && i.profile.Variants.NameDescriptors {
		name = grouper.CleanBaseName(name)
	}
	if name == "" {
		name = g.Key
	}

	productSKU := first.SKU
	if g.HasVariants() {
		productSKU = g.Key
	}
	slug := taxonomy.Slugify(name)
	if slug == "" {
		slug = taxonomy.Slugify(productSKU)
	}

	// Locate source images up front; vendors that require an image have
	// the whole product skipped when none exists.
	var candidates []models.ImageCandidate
	if i.opts.ImportImages && i.locator != nil {
		var err error
		candidates, err = i.locator.Locate(ctx, mapper.SplitList(first.ImageRef), first.SKU, g.Key, g.Variants[0].Color)
		if err != nil {
			return fmt.Errorf("image lookup failed: %w", err)
		}
		if len(candidates) == 0 && i.profile.RequireImage {
			i.warn(g, "no image found, product skipped")
			i.count(func(r *models.ImportResult) { r.SkippedNoImage++ })
			return nil
		}
	}

	existing, err := i.store.FindProductBySKU(ctx, productSKU)
	if err != nil {
		return err
	}
	if existing == nil {
		existing, err = i.store.FindProductBySlug(ctx, slug)
		if err != nil {
			return err
		}
	}
	if existing != nil && i.opts.SkipExisting {
		i.warn(g, fmt.Sprintf("product %s exists, skipped (skip-existing)", productSKU))
		return nil
	}

	// A dry run reports what would happen without touching the store or
	// the image storage.
	if i.opts.DryRun {
		i.count(func(r *models.ImportResult) {
			if existing != nil {
				r.MarkUpdated(productSKU)
			} else {
				r.MarkCreated(productSKU)
			}
			if g.HasVariants() {
				r.Variants += len(g.Variants)
			}
			r.Images += len(candidates)
		})
		return nil
	}

	brandID := i.opts.DefaultBrandID
	var brandSlug string
	if brandID == nil {
		brand, err := i.resolver.ResolveBrand(ctx, first.BrandName)
		if err != nil {
			return err
		}
		if brand != nil {
			brandID = &brand.ID
			brandSlug = brand.Slug
		}
	}

	categoryID := i.opts.DefaultCategoryID
	if categoryID == nil {
		category, err := i.resolver.ResolveCategory(ctx, first.ParentCategory, first.ChildCategory)
		if err != nil {
			return err
		}
		if category != nil {
			categoryID = &category.ID
		}
	}

	product := i.buildProduct(g, name, productSKU, slug, brandID, categoryID)
	if existing != nil {
		product.ID = existing.ID
		product.Images = existing.Images
		if err := i.store.UpdateProduct(ctx, product); err != nil {
			return err
		}
		i.count(func(r *models.ImportResult) { r.MarkUpdated(productSKU) })
	} else {
		if err := i.store.CreateProduct(ctx, product); err != nil {
			return err
		}
		i.count(func(r *models.ImportResult) { r.MarkCreated(productSKU) })
	}

	if g.HasVariants() {
		if err := i.replaceVariants(ctx, product, g); err != nil {
			return err
		}
	}

	if i.opts.ImportImages && len(candidates) > 0 {
		if err := i.importImages(ctx, g, product, brandSlug, candidates); err != nil {
			return err
		}
	}

	if i.opts.DefaultWarehouseID != "" {
		stock := &catalog.WarehouseStock{
			ProductID:   product.ID,
			WarehouseID: i.opts.DefaultWarehouseID,
			Quantity:    product.StockQuantity,
		}
		if err := i.store.UpsertWarehouseStock(ctx, stock); err != nil {
			return err
		}
	}

	return nil
}

// replaceVariants rewrites a product's variants from the group, delete
// first so re-imports stay idempotent.
func (i *Importer) replaceVariants(ctx context.Context, product *catalog.Product, g *models.VariantGroup) error {
	if err := i.store.DeleteVariants(ctx, product.ID); err != nil {
		return err
	}
	for pos, spec := range g.Variants {
		price := spec.Price
		if price.IsZero() {
			price = product.BasePrice
		}
		stock := spec.Stock
		if stock == 0 {
			stock = i.opts.DefaultStockQuantity
		}
		v := &catalog.Variant{
			ProductID:     product.ID,
			SKU:           spec.SKU,
			Name:          spec.Label,
			Size:          spec.Size,
			Color:         spec.Color,
			BasePrice:     price,
			CostPrice:     spec.Row.CostPrice,
			StockQuantity: stock,
			Barcode:       spec.Barcode,
			Position:      pos,
			IsActive:      true,
		}
		if err := i.store.CreateVariant(ctx, v); err != nil {
			return err
		}
		i.count(func(r *models.ImportResult) { r.Variants++ })
	}
	return nil
}

// importImages processes the located source images into renditions and
// rewrites the product's image records. A failure on one image is a
// warning; the rest of the set still lands.
func (i *Importer) importImages(ctx context.Context, g *models.VariantGroup, product *catalog.Product, brandSlug string, candidates []models.ImageCandidate) error {
	destDir := images.DestDir(brandSlug, product.Slug)

	var sets []*models.RenditionSet
	for _, c := range candidates {
		set, err := i.processor.Process(ctx, c.Path, destDir)
		if err != nil {
			i.warn(g, fmt.Sprintf("image %s failed: %v", c.Path, err))
			continue
		}
		sets = append(sets, set)
	}
	if len(sets) == 0 {
		return nil
	}

	if err := i.store.DeleteProductImages(ctx, product.ID); err != nil {
		return err
	}

	urls := make([]string, 0, len(sets))
	for pos, set := range sets {
		primary := set.Primary()
		var thumb string
		for _, r := range set.Renditions {
			if r.Size == "thumb" {
				thumb = r.Path
			}
		}
		img := &catalog.ProductImage{
			ProductID: product.ID,
			URL:       primary.Path,
			ThumbURL:  thumb,
			AltText:   product.Name,
			Position:  pos,
			IsPrimary: pos == 0,
		}
		if err := i.store.CreateProductImage(ctx, img); err != nil {
			return err
		}
		urls = append(urls, primary.Path)
		i.count(func(r *models.ImportResult) {
			r.Images++
			if set.Reused {
				r.ImagesReused++
			}
		})
	}

	product.Images = urls
	return i.store.UpdateProduct(ctx, product)
}
