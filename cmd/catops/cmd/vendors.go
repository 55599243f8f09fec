package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/adasafety/catops/internal/config"
)

var vendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "List available vendor profiles",
	Long:  "Lists every vendor profile, built-in and configured, with its grouping and image conventions",
	RunE:  runVendors,
}

func runVendors(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	profiles := cfg.Profiles()
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	header := color.New(color.FgCyan, color.Bold)
	header.Println("\n  VENDOR PROFILES")
	fmt.Println("  " + strings.Repeat("─", 40))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Vendor", "Description", "Grouping", "Variants", "Images"})
	table.SetBorder(false)
	table.SetHeaderColor(
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
	)

	for _, name := range names {
		p := profiles[name]
		table.Append([]string{
			name,
			p.Description,
			groupingLabel(p),
			variantLabel(p),
			imageLabel(p),
		})
	}
	table.Render()

	if cfg.Imports.DefaultVendor != "" {
		fmt.Printf("\n  Default vendor: %s\n", color.GreenString(cfg.Imports.DefaultVendor))
	}
	fmt.Println()
	return nil
}

func groupingLabel(p *config.VendorProfile) string {
	if p.StyleFromSKU {
		return "sku prefix"
	}
	if len(p.FieldAliases[config.FieldStyle]) > 0 {
		return "style column"
	}
	return "per row"
}

func variantLabel(p *config.VendorProfile) string {
	var parts []string
	if p.Variants.UseColumns {
		parts = append(parts, "columns")
	}
	if p.Variants.SuffixVocabulary {
		parts = append(parts, "sku suffix")
	}
	if p.Variants.NameDescriptors {
		parts = append(parts, "name")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func imageLabel(p *config.VendorProfile) string {
	if p.Images == "" {
		return "-"
	}
	label := p.Images
	if p.ImageMapCSV {
		label += " + csv map"
	}
	return label
}
