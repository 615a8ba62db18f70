package importer_test

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"lexboard/internal/importer"
	"lexboard/internal/store"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	header := []interface{}{
		"Jurisdiction", "Law/Subprovision", "Significance",
		"Relevant Industry", "Innovation Stage", "Enforceability", "Risk Score",
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "laws_import.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func tableNames(t *testing.T, s *store.Store, table string) []string {
	t.Helper()
	rows, err := s.DB().Query("SELECT name FROM " + table + " ORDER BY name")
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestRun(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"United States of America", "CCPA", "Privacy rules", "Technology, Fintech", "Scaling", "Strong", "7"},
		{"EU", "GDPR", "Data protection", "Technology", "", "", ""},
		{"UK", "FCA Sandbox", "Fintech regime", "", "", "", ""},
		{"Canada", "Bill C-27", "", "Technology", "Early", "", ""}, // missing significance, dropped
	})

	s, err := store.Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	sum, err := importer.New(s, zap.NewNop()).Run(context.Background(), path)
	require.NoError(t, err)

	assert.NotEmpty(t, sum.RunID)
	assert.Equal(t, 4, sum.RowsRead)
	assert.Equal(t, 1, sum.RowsDropped)
	assert.Equal(t, 3, sum.Laws)
	assert.Equal(t, 3, sum.Barriers)
	assert.Zero(t, sum.SkippedLaws)
	assert.Zero(t, sum.SkippedBarriers)

	// Reference tables equal the distinct canonicalized source values.
	wantJurisdictions := []string{"European Union", "United Kingdom", "United States"}
	if diff := cmp.Diff(wantJurisdictions, tableNames(t, s, "jurisdictions")); diff != "" {
		t.Errorf("jurisdictions mismatch (-want +got):\n%s", diff)
	}
	wantSectors := []string{"Fintech", "Technology"}
	if diff := cmp.Diff(wantSectors, tableNames(t, s, "sectors")); diff != "" {
		t.Errorf("sectors mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_DropsIncompleteRows(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"", "Orphan Law", "Summary", "", "", "", ""},
		{"Canada", "", "Summary", "", "", "", ""},
		{"Canada", "Kept Law", "Summary", "", "", "", ""},
	})

	s, err := store.Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	sum, err := importer.New(s, nil).Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.RowsDropped)
	assert.Equal(t, 1, sum.Laws)
	assert.Equal(t, []string{"Kept Law"}, lawNames(t, s))
}

func lawNames(t *testing.T, s *store.Store) []string {
	t.Helper()
	rows, err := s.DB().Query("SELECT name FROM laws ORDER BY name")
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestRun_ReferentialIntegrity(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"United States", "CCPA", "Privacy rules", "Technology, Fintech", "Scaling", "", ""},
		{"EU", "GDPR", "Data protection", "Technology, Pharmaceuticals", "", "", ""},
	})

	s, err := store.Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = importer.New(s, nil).Run(context.Background(), path)
	require.NoError(t, err)

	// Every law resolves to a jurisdiction row.
	var orphanLaws int
	require.NoError(t, s.DB().QueryRow(`
		SELECT COUNT(*) FROM laws l
		LEFT JOIN jurisdictions j ON j.id = l.jurisdiction_id
		WHERE j.id IS NULL`).Scan(&orphanLaws))
	assert.Zero(t, orphanLaws)

	// Every barrier resolves to a law and a sector row.
	var orphanBarriers int
	require.NoError(t, s.DB().QueryRow(`
		SELECT COUNT(*) FROM barriers b
		LEFT JOIN laws l ON l.id = b.law_id
		LEFT JOIN sectors sec ON sec.id = b.sector_id
		WHERE l.id IS NULL OR sec.id IS NULL`).Scan(&orphanBarriers))
	assert.Zero(t, orphanBarriers)
}

func TestRun_BarrierPlaceholders(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"United States", "CCPA", "Privacy rules", "Fintech", "Scaling", "", ""},
		{"Canada", "Bill C-27", "Reform", "Technology", "", "", ""},
	})

	s, err := store.Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = importer.New(s, nil).Run(context.Background(), path)
	require.NoError(t, err)

	rows, err := s.DB().Query("SELECT risk_score, description FROM barriers")
	require.NoError(t, err)
	defer rows.Close()

	var descriptions []string
	for rows.Next() {
		var risk int
		var desc string
		require.NoError(t, rows.Scan(&risk, &desc))
		assert.Equal(t, 5, risk)
		descriptions = append(descriptions, desc)
	}
	require.NoError(t, rows.Err())

	sort.Strings(descriptions)
	want := []string{
		"Relevant to General stage in Technology", // stage defaults when blank
		"Relevant to Scaling stage in Fintech",
	}
	assert.Equal(t, want, descriptions)
}

func TestRun_RerunDeduplicatesReferenceTables(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Canada", "Bill C-27", "Reform", "Technology", "", "", ""},
	})

	s, err := store.Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	imp := importer.New(s, nil)
	_, err = imp.Run(context.Background(), path)
	require.NoError(t, err)
	_, err = imp.Run(context.Background(), path)
	require.NoError(t, err)

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats["jurisdictions"])
	assert.Equal(t, 1, stats["sectors"])
	// Laws are not deduplicated; two runs mean two rows.
	assert.Equal(t, 2, stats["laws"])
}
