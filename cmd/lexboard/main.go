package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lexboard/cmd/lexboard/dashboard"
	"lexboard/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dbPath     string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lexboard",
	Short: "lexboard - innovation scores and legal frameworks dashboard",
	Long: `lexboard explores jurisdiction/industry innovation scores and the
legislation behind them.

It imports a legislation workbook (.xlsx) into a relational SQLite schema
(jurisdictions, sectors, laws, barriers) and serves an interactive terminal
dashboard with industry and jurisdiction filters, a bar chart, and CSV/PDF
export of the filtered view.

Run without arguments to start the dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for the dashboard (it has its own UI)
		if cmd.Name() == "lexboard" || cmd.Name() == "dashboard" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd, args)
	},
}

// dashboardCmd launches the interactive TUI
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive dashboard",
	Long: `Opens the terminal dashboard: innovation scores per jurisdiction with
industry and jurisdiction filters, a bar chart, the matching legislation, and
export keys (e: CSV, p: PDF).

Legislation comes from the workbook when it exists, otherwise from the
imported database.`,
	RunE: runDashboard,
}

// initCmd creates the database schema
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the SQLite schema",
	Long: `Creates the four-table schema (jurisdictions, sectors, laws, barriers)
in the configured database file. Safe to run repeatedly.`,
	RunE: runInitDB,
}

// importCmd loads the workbook into the database
var importCmd = &cobra.Command{
	Use:   "import [workbook.xlsx]",
	Short: "Import the legislation workbook into the database",
	Long: `Reads the legislation spreadsheet and populates the relational schema:

  1. Drops rows missing Jurisdiction, Law/Subprovision, or Significance
  2. Inserts deduplicated jurisdictions and sectors (reference tables first)
  3. Inserts one law per row and one barrier per law x sector

Row-level problems are skipped with a warning, never fatal. Without an
argument the configured workbook path is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

// exportCmd writes the filtered view as CSV, headless
var exportCmd = &cobra.Command{
	Use:   "export [scores|legislation]",
	Short: "Export the filtered view as CSV",
	Long: `Writes the filtered score or legislation table to the export
directory, named after the selected industry:

  lexboard export scores --industry Fintech
  lexboard export legislation --industry "All Industries" -j "United States" -j Canada`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"scores", "legislation"},
	RunE:      runExport,
}

// reportCmd renders the PDF report, headless
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the innovation report as PDF",
	Long: `Builds the HTML innovation report for the filtered view and renders it
with wkhtmltopdf. If the configured binary is missing, the command prints a
warning and exits successfully with PDF export disabled.`,
	RunE: runReport,
}

// statusCmd shows database and config status
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database row counts and configuration",
	RunE:  showStatus,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "lexboard.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (overrides config)")

	exportCmd.Flags().StringP("industry", "i", "All Industries", "Industry to select")
	exportCmd.Flags().StringSliceP("jurisdiction", "j", nil, "Jurisdictions to keep (default: all)")
	reportCmd.Flags().StringP("industry", "i", "All Industries", "Industry to select")
	reportCmd.Flags().StringSliceP("jurisdiction", "j", nil, "Jurisdictions to keep (default: all)")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies CLI overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if verbose {
		cfg.Logging.Verbose = true
	}
	return cfg, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return dashboard.Run(cfg)
}
