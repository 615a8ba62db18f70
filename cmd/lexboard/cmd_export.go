package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lexboard/internal/config"
	"lexboard/internal/domain"
	"lexboard/internal/export"
	"lexboard/internal/legislation"
	"lexboard/internal/report"
	"lexboard/internal/scores"
	"lexboard/internal/store"
)

// resolveFilter reads the --industry/--jurisdiction flags, defaulting the
// jurisdiction subset to all of them.
func resolveFilter(cmd *cobra.Command) (string, []string, error) {
	industry, err := cmd.Flags().GetString("industry")
	if err != nil {
		return "", nil, err
	}
	valid := industry == domain.AllIndustries
	for _, ind := range domain.Industries {
		if industry == ind {
			valid = true
		}
	}
	if !valid {
		return "", nil, fmt.Errorf("unknown industry %q", industry)
	}

	jurisdictions, err := cmd.Flags().GetStringSlice("jurisdiction")
	if err != nil {
		return "", nil, err
	}
	if len(jurisdictions) == 0 {
		jurisdictions = append(jurisdictions, domain.Jurisdictions...)
	} else {
		for i, j := range jurisdictions {
			jurisdictions[i] = domain.CanonicalJurisdiction(j)
		}
	}
	return industry, jurisdictions, nil
}

// legislationSource mirrors the dashboard's source selection: workbook when
// present, database otherwise. The returned closer may be nil.
func legislationSource(cfg *config.Config) (legislation.Source, func() error, error) {
	if _, err := os.Stat(cfg.WorkbookPath); err == nil {
		return &legislation.WorkbookSource{Path: cfg.WorkbookPath}, nil, nil
	}
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	return &legislation.StoreSource{Store: st}, st.Close, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	industry, jurisdictions, err := resolveFilter(cmd)
	if err != nil {
		return err
	}

	switch args[0] {
	case "scores":
		scored, err := scores.Filter(industry, jurisdictions)
		if err != nil {
			return err
		}
		path, err := export.ScoresToFile(cfg.ExportDir, industry, scored)
		if err != nil {
			return err
		}
		logger.Info("scores exported", zap.String("path", path), zap.Int("rows", len(scored)))
		fmt.Println(path)

	case "legislation":
		src, closer, err := legislationSource(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}
		rows, err := src.Legislation(context.Background(),
			legislation.Filter{Industry: industry, Jurisdictions: jurisdictions})
		if err != nil {
			return err
		}
		path, err := export.LegislationToFile(cfg.ExportDir, industry, rows)
		if err != nil {
			return err
		}
		logger.Info("legislation exported", zap.String("path", path), zap.Int("rows", len(rows)))
		fmt.Println(path)

	default:
		return fmt.Errorf("unknown export target %q (want scores or legislation)", args[0])
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	industry, jurisdictions, err := resolveFilter(cmd)
	if err != nil {
		return err
	}

	scored, err := scores.Filter(industry, jurisdictions)
	if err != nil {
		return err
	}

	src, closer, err := legislationSource(cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}
	rows, err := src.Legislation(context.Background(),
		legislation.Filter{Industry: industry, Jurisdictions: jurisdictions})
	if err != nil {
		return err
	}

	renderer := report.NewWkhtmltopdf(cfg.WkhtmltopdfPath)
	path, err := report.Generate(context.Background(), renderer, cfg.ExportDir, report.Data{
		Title:       industry,
		Scores:      scored,
		Legislation: rows,
	})
	if errors.Is(err, report.ErrRendererUnavailable) {
		// Missing renderer disables the feature; it is not a failure.
		logger.Warn("PDF export disabled", zap.String("wkhtmltopdf", cfg.WkhtmltopdfPath))
		fmt.Printf("PDF export disabled: wkhtmltopdf not found at %s\n", cfg.WkhtmltopdfPath)
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("report rendered", zap.String("path", path))
	fmt.Println(path)
	return nil
}
