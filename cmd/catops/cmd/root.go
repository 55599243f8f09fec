package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catops",
	Short: "Catalog Operations Terminal",
	Long: color.New(color.FgCyan, color.Bold).Sprint(`
   ___      _
  / __\__ _| |_ ___  _ __  ___
 / /  / _' | __/ _ \| '_ \/ __|
/ /__| (_| | || (_) | |_) \__ \
\____/\__,_|\__\___/| .__/|___/
                    |_|
`) + `
Catalog Operations Terminal - Vendor catalog import toolkit

Turn vendor spreadsheets into a clean product catalog: variant
detection, brand and category resolution, and multi-resolution
image processing in one pass.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(vendorsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(dbCmd)
}
