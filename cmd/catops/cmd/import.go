package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/adasafety/catops/internal/catalog"
	"github.com/adasafety/catops/internal/config"
	"github.com/adasafety/catops/internal/images"
	"github.com/adasafety/catops/internal/importer"
	"github.com/adasafety/catops/internal/storage"
	"github.com/adasafety/catops/pkg/models"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a vendor spreadsheet into the catalog",
	Long: `Parse a vendor spreadsheet (XLSX or CSV), group rows into products
with variants, resolve brands and categories, process product images,
and write everything to the catalog database.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importVendor     string
	importDryRun     bool
	importImages     bool
	importImagePath  string
	importUpdate     bool
	importStock      int
	importStatus     string
	importWarehouse  string
	importSupplier   string
	importBrandID    string
	importCategoryID string
	importLimit      int
	importParallel   int
	importVerbose    bool
)

func init() {
	importCmd.Flags().StringVarP(&importVendor, "vendor", "v", "", "Vendor profile (gsa, pip, carhartt, wolverine, occunomix)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and report without writing anything")
	importCmd.Flags().BoolVar(&importImages, "images", true, "Process product images")
	importCmd.Flags().StringVar(&importImagePath, "image-path", "", "Directory holding the vendor's image drop")
	importCmd.Flags().BoolVar(&importUpdate, "update-existing", true, "Update products that already exist (--update-existing=false to skip them)")
	importCmd.Flags().IntVar(&importStock, "stock", 0, "Default stock quantity for rows without one")
	importCmd.Flags().StringVar(&importStatus, "status", "", "Default product status (DRAFT, ACTIVE, INACTIVE)")
	importCmd.Flags().StringVar(&importWarehouse, "warehouse", "", "Warehouse ID for stock rows")
	importCmd.Flags().StringVar(&importSupplier, "supplier", "", "Supplier ID stamped on imported products")
	importCmd.Flags().StringVar(&importBrandID, "brand-id", "", "Force every product into this brand")
	importCmd.Flags().StringVar(&importCategoryID, "category-id", "", "Force every product into this category")
	importCmd.Flags().IntVar(&importLimit, "limit", 0, "Process at most N products (0 = all)")
	importCmd.Flags().IntVar(&importParallel, "parallel", 0, "Concurrent product groups (default from config)")
	importCmd.Flags().BoolVar(&importVerbose, "verbose", false, "Debug logging")
}

func runImport(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	vendor := importVendor
	if vendor == "" {
		vendor = cfg.Imports.DefaultVendor
	}
	if vendor == "" {
		return fmt.Errorf("no vendor given; use --vendor or set imports.default_vendor")
	}
	profile, ok := cfg.Profile(vendor)
	if !ok {
		return fmt.Errorf("unknown vendor %q; run 'catops vendors' to list profiles", vendor)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if importVerbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	store, cleanup, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}

	deps := importer.Deps{
		Store:   store,
		Profile: profile,
		Log:     log,
	}
	if opts.ImportImages {
		sourceFS := storage.NewOS("")
		destFS, err := openRenditionStorage(cfg)
		if err != nil {
			return err
		}
		deps.Locator = images.NewLocator(sourceFS, profile, log)
		deps.Processor = images.NewProcessor(sourceFS, destFS, log)
	}

	header := color.New(color.FgCyan, color.Bold)
	header.Printf("\n  IMPORTING %s\n", strings.ToUpper(vendor))
	fmt.Println("  " + strings.Repeat("─", 40))
	fmt.Printf("  File: %s\n", filepath.Base(filePath))
	if opts.DryRun {
		color.Yellow("  Dry run: nothing will be written")
	}
	fmt.Println()

	var bar *progressbar.ProgressBar
	deps.Progress = func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("  Importing products"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        color.GreenString("█"),
					SaucerHead:    color.GreenString("█"),
					SaucerPadding: "░",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionShowCount(),
			)
		}
		_ = bar.Set(done)
	}

	imp := importer.New(deps, opts)
	result, err := imp.Run(ctx, data, filePath)
	if err != nil {
		return err
	}
	fmt.Println()

	printResult(result)
	return nil
}

// buildOptions maps flags and config defaults onto importer options.
func buildOptions(cfg *config.Config) (importer.Options, error) {
	opts := importer.Options{
		SkipExisting:         !importUpdate,
		ImportImages:         importRunImagesEnabled(),
		ImageBasePath:        importImagePath,
		DryRun:               importDryRun,
		DefaultStockQuantity: importStock,
		DefaultStatus:        models.ParseStatus(importStatus, models.ProductStatus(cfg.Defaults.Status)),
		DefaultSupplierID:    importSupplier,
		DefaultWarehouseID:   importWarehouse,
		Parallelism:          importParallel,
		Limit:                importLimit,
	}
	if opts.DefaultStockQuantity == 0 {
		opts.DefaultStockQuantity = cfg.Defaults.StockQuantity
	}
	if opts.DefaultSupplierID == "" {
		opts.DefaultSupplierID = cfg.Defaults.SupplierID
	}
	if opts.DefaultWarehouseID == "" {
		opts.DefaultWarehouseID = cfg.Defaults.WarehouseID
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = cfg.Imports.Parallelism
	}

	for _, pair := range []struct {
		flag string
		cfg  string
		dst  **uuid.UUID
	}{
		{importBrandID, cfg.Defaults.BrandID, &opts.DefaultBrandID},
		{importCategoryID, cfg.Defaults.CategoryID, &opts.DefaultCategoryID},
	} {
		raw := pair.flag
		if raw == "" {
			raw = pair.cfg
		}
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid id %q: %w", raw, err)
		}
		*pair.dst = &id
	}
	return opts, nil
}

func importRunImagesEnabled() bool {
	return importImages && importImagePath != ""
}

// openStore connects to the configured database. A dry run without
// database credentials falls back to an in-memory catalog so files can be
// validated offline.
func openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (catalog.Store, func(), error) {
	client, err := getDBClient()
	if err != nil {
		if importDryRun {
			log.WithError(err).Warn("database unavailable, dry run uses an in-memory catalog")
			return catalog.NewMemoryStore(), func() {}, nil
		}
		return nil, nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := client.Connect(connectCtx); err != nil {
		if importDryRun {
			log.WithError(err).Warn("database unavailable, dry run uses an in-memory catalog")
			return catalog.NewMemoryStore(), func() {}, nil
		}
		return nil, nil, fmt.Errorf("failed to connect: %w", err)
	}

	timeout := time.Duration(cfg.Imports.StoreTimeoutS) * time.Second
	store := catalog.WithRetry(newDBStore(client), timeout, 1)
	return store, client.Close, nil
}

// openRenditionStorage picks the processed-image backend from config.
func openRenditionStorage(cfg *config.Config) (storage.Filesystem, error) {
	switch cfg.Storage.Backend {
	case "minio":
		m := cfg.Storage.Minio
		return storage.NewMinio(
			m.Endpoint,
			os.Getenv(m.AccessKeyEnv),
			os.Getenv(m.SecretKeyEnv),
			m.Bucket,
			m.UseSSL,
		)
	default:
		return storage.NewOS(cfg.Storage.OutputDir), nil
	}
}

func printResult(result *models.ImportResult) {
	header := color.New(color.FgCyan, color.Bold)
	header.Println("\n  IMPORT SUMMARY")
	fmt.Println("  " + strings.Repeat("─", 40))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Count"})
	table.SetBorder(false)
	table.SetHeaderColor(
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
	)

	table.Append([]string{"Rows parsed", fmt.Sprintf("%d", result.RowsParsed)})
	table.Append([]string{"Rows skipped", fmt.Sprintf("%d", result.RowsSkipped)})
	table.Append([]string{"Products", fmt.Sprintf("%d", result.Groups)})
	table.Append([]string{"Created", fmt.Sprintf("%d", result.Created)})
	table.Append([]string{"Updated", fmt.Sprintf("%d", result.Updated)})
	table.Append([]string{"Variants", fmt.Sprintf("%d", result.Variants)})
	table.Append([]string{"Images", fmt.Sprintf("%d", result.Images)})
	table.Append([]string{"Images reused", fmt.Sprintf("%d", result.ImagesReused)})
	table.Append([]string{"Skipped (no image)", fmt.Sprintf("%d", result.SkippedNoImage)})
	table.Append([]string{"Failed", fmt.Sprintf("%d", result.Failed)})
	table.Render()

	if len(result.Errors) > 0 {
		fmt.Println()
		color.Red("  Errors:")
		for _, e := range result.Errors {
			fmt.Printf("    row %d (%s): %s\n", e.Row, e.Group, e.Message)
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Println()
		color.Yellow("  Warnings:")
		for _, w := range result.Warnings {
			fmt.Printf("    row %d (%s): %s\n", w.Row, w.Group, w.Message)
		}
	}

	fmt.Println()
	if result.Failed == 0 {
		color.Green("  ✓ Import complete in %s", result.Duration().Round(time.Millisecond))
	} else {
		color.Yellow("  Import finished with %d failures in %s", result.Failed, result.Duration().Round(time.Millisecond))
	}
	fmt.Println()
}
