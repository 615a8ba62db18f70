// Package importer loads the legislation workbook into the relational
// schema. The import is a deliberate two-phase build: reference tables
// (jurisdictions, sectors) are fully populated before any law or barrier
// references them, so dependent inserts never race the rows they point at.
package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lexboard/internal/domain"
	"lexboard/internal/store"
	"lexboard/internal/workbook"
)

// Placeholder values for fields the workbook does not carry.
const (
	lawType           = "Mixed"
	lawEnforceability = "Unrated"
	barrierRiskScore  = 5
	defaultStage      = "General"
)

// Summary reports what a single import run did.
type Summary struct {
	RunID           string
	RowsRead        int
	RowsDropped     int
	Jurisdictions   int
	Sectors         int
	Laws            int
	Barriers        int
	SkippedLaws     int // jurisdiction lookup misses
	SkippedBarriers int // sector lookup misses
}

func (s Summary) String() string {
	return fmt.Sprintf("read %d rows (%d dropped), %d jurisdictions, %d sectors, %d laws, %d barriers (%d laws and %d barriers skipped)",
		s.RowsRead, s.RowsDropped, s.Jurisdictions, s.Sectors, s.Laws, s.Barriers, s.SkippedLaws, s.SkippedBarriers)
}

// Importer runs the workbook-to-SQLite pipeline.
type Importer struct {
	store  *store.Store
	logger *zap.Logger
}

// New returns an Importer writing to st. A nil logger is replaced with a nop.
func New(st *store.Store, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{store: st, logger: logger}
}

// Run imports the workbook at path. Row-level problems (missing required
// fields, unresolved lookups) are skipped and counted, never fatal; only
// workbook or database access errors abort the run. There is no cross-table
// transaction: a failure partway through leaves earlier inserts in place.
func (imp *Importer) Run(ctx context.Context, path string) (*Summary, error) {
	sum := &Summary{RunID: uuid.NewString()}
	log := imp.logger.With(zap.String("run_id", sum.RunID), zap.String("workbook", path))

	records, err := workbook.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sum.RowsRead = len(records)

	kept := make([]workbook.Record, 0, len(records))
	for _, rec := range records {
		if !rec.Complete() {
			sum.RowsDropped++
			log.Debug("dropping incomplete row",
				zap.String("jurisdiction", rec.Jurisdiction),
				zap.String("law", rec.Law))
			continue
		}
		rec.Jurisdiction = domain.CanonicalJurisdiction(rec.Jurisdiction)
		kept = append(kept, rec)
	}

	if err := imp.buildReferenceTables(ctx, kept, sum, log); err != nil {
		return nil, err
	}
	if err := imp.insertLaws(ctx, kept, sum, log); err != nil {
		return nil, err
	}

	log.Info("import complete",
		zap.Int("rows_read", sum.RowsRead),
		zap.Int("rows_dropped", sum.RowsDropped),
		zap.Int("laws", sum.Laws),
		zap.Int("barriers", sum.Barriers))
	return sum, nil
}

// buildReferenceTables is phase 1: deduplicated jurisdiction and sector
// names, inserted before anything references them.
func (imp *Importer) buildReferenceTables(ctx context.Context, records []workbook.Record, sum *Summary, log *zap.Logger) error {
	jurisdictions := make(map[string]bool)
	sectors := make(map[string]bool)
	for _, rec := range records {
		jurisdictions[rec.Jurisdiction] = true
		for _, sec := range domain.SplitIndustries(rec.RelevantIndustry) {
			sectors[sec] = true
		}
	}

	for name := range jurisdictions {
		if err := imp.store.UpsertJurisdiction(ctx, name); err != nil {
			return err
		}
	}
	for name := range sectors {
		if err := imp.store.UpsertSector(ctx, name); err != nil {
			return err
		}
	}

	sum.Jurisdictions = len(jurisdictions)
	sum.Sectors = len(sectors)
	log.Debug("reference tables built",
		zap.Int("jurisdictions", len(jurisdictions)),
		zap.Int("sectors", len(sectors)))
	return nil
}

// insertLaws is phase 2: one law per record, one barrier per law x sector.
func (imp *Importer) insertLaws(ctx context.Context, records []workbook.Record, sum *Summary, log *zap.Logger) error {
	for _, rec := range records {
		jurisID, ok, err := imp.store.JurisdictionID(ctx, rec.Jurisdiction)
		if err != nil {
			return err
		}
		if !ok {
			// Phase 1 inserted every jurisdiction seen in phase 2's
			// input, so a miss here means the data changed under us.
			sum.SkippedLaws++
			log.Warn("skipping law: jurisdiction not found",
				zap.String("jurisdiction", rec.Jurisdiction),
				zap.String("law", rec.Law))
			continue
		}

		lawID, err := imp.store.InsertLaw(ctx, domain.Law{
			JurisdictionID: jurisID,
			Name:           rec.Law,
			Type:           lawType,
			Summary:        rec.Significance,
			Enforceability: lawEnforceability,
		})
		if err != nil {
			return err
		}
		sum.Laws++

		stage := rec.InnovationStage
		if stage == "" {
			stage = defaultStage
		}
		for _, sector := range domain.SplitIndustries(rec.RelevantIndustry) {
			sectorID, ok, err := imp.store.SectorID(ctx, sector)
			if err != nil {
				return err
			}
			if !ok {
				sum.SkippedBarriers++
				log.Warn("skipping barrier: sector not found",
					zap.String("sector", sector),
					zap.String("law", rec.Law))
				continue
			}
			if err := imp.store.InsertBarrier(ctx, domain.Barrier{
				LawID:       lawID,
				SectorID:    sectorID,
				RiskScore:   barrierRiskScore,
				Description: fmt.Sprintf("Relevant to %s stage in %s", stage, sector),
			}); err != nil {
				return err
			}
			sum.Barriers++
		}
	}
	return nil
}
