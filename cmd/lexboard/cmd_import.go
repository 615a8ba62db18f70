package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lexboard/internal/importer"
	"lexboard/internal/store"
)

// runInitDB creates the schema and nothing else.
func runInitDB(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	logger.Info("database initialized", zap.String("path", cfg.DatabasePath))
	fmt.Printf("Database tables created at %s\n", cfg.DatabasePath)
	return nil
}

// runImport runs the workbook-to-SQLite pipeline and prints the summary.
func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	workbookPath := cfg.WorkbookPath
	if len(args) == 1 {
		workbookPath = args[0]
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	sum, err := importer.New(st, logger).Run(context.Background(), workbookPath)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %s into %s: %s\n", workbookPath, cfg.DatabasePath, sum)
	return nil
}
