package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lexboard/internal/report"
	"lexboard/internal/store"
)

// showStatus prints database row counts and the effective configuration.
func showStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("lexboard status")
	fmt.Printf("  database:    %s\n", cfg.DatabasePath)
	fmt.Printf("  workbook:    %s", cfg.WorkbookPath)
	if _, err := os.Stat(cfg.WorkbookPath); err != nil {
		fmt.Print(" (missing)")
	}
	fmt.Println()
	fmt.Printf("  export dir:  %s\n", cfg.ExportDir)

	renderer := report.NewWkhtmltopdf(cfg.WkhtmltopdfPath)
	if renderer.Available() {
		fmt.Printf("  pdf export:  enabled (%s)\n", cfg.WkhtmltopdfPath)
	} else {
		fmt.Printf("  pdf export:  disabled, wkhtmltopdf not found at %s\n", cfg.WkhtmltopdfPath)
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats(context.Background())
	if err != nil {
		return err
	}
	fmt.Println("  tables:")
	for _, table := range []string{"jurisdictions", "sectors", "laws", "barriers"} {
		fmt.Printf("    %-14s %d rows\n", table, stats[table])
	}
	return nil
}
