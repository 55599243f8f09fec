package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
)

var importTemplateCmd = &cobra.Command{
	Use:   "template [file]",
	Short: "Write a sample import spreadsheet",
	Long:  "Writes an XLSX file with the generic import headers and one sample row",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runImportTemplate,
}

func init() {
	importCmd.AddCommand(importTemplateCmd)
}

func runImportTemplate(cmd *cobra.Command, args []string) error {
	path := "product-import-template.xlsx"
	if len(args) > 0 {
		path = args[0]
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	f.SetSheetName("Sheet1", sheet)

	headers := []interface{}{
		"Vendor Part Number",
		"Item_name",
		"Item_description",
		"Manufacturer Information",
		"Category",
		"Unit Price",
		"Wholesale Price",
		"Stock",
		"Weight",
		"UPC",
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	sample := []interface{}{
		"1006980",
		"Sample Safety Helmet",
		"Professional safety helmet with adjustable straps",
		"3M",
		"Head Protection",
		45.99,
		38.00,
		100,
		0.5,
		"012345678901",
	}
	if err := f.SetSheetRow(sheet, "A2", &sample); err != nil {
		return fmt.Errorf("failed to write sample row: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E0E0E0"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "J1", headerStyle); err != nil {
		return fmt.Errorf("failed to style headers: %w", err)
	}

	widths := []float64{20, 40, 60, 25, 20, 15, 15, 10, 10, 15}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	color.Green("  ✓ Wrote import template: %s", path)
	fmt.Println()
	return nil
}
