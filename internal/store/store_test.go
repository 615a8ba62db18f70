package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"lexboard/internal/domain"
	"lexboard/internal/store"
)

// TestMain ensures no goroutines leak across store tests.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesSchema(t *testing.T) {
	s := openTestStore(t)

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	for _, table := range []string{"jurisdictions", "sectors", "laws", "barriers"} {
		n, ok := stats[table]
		assert.True(t, ok, "stats missing table %s", table)
		assert.Zero(t, n)
	}
}

func TestUpsert_Deduplicates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Canada", "Canada", " Canada ", "United Kingdom"} {
		require.NoError(t, s.UpsertJurisdiction(ctx, name))
	}
	for _, name := range []string{"Fintech", "Fintech", "Technology"} {
		require.NoError(t, s.UpsertSector(ctx, name))
	}

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats["jurisdictions"])
	assert.Equal(t, 2, stats["sectors"])
}

func TestLookup_MissingName(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, ok, err := s.JurisdictionID(ctx, "Atlantis")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.SectorID(ctx, "Alchemy")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInsertLaw_ResolvesJurisdiction(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertJurisdiction(ctx, "United States"))
	jid, ok, err := s.JurisdictionID(ctx, "United States")
	require.NoError(t, err)
	require.True(t, ok)

	lawID, err := s.InsertLaw(ctx, domain.Law{
		JurisdictionID: jid,
		Name:           "CCPA",
		Type:           "Mixed",
		Summary:        "California privacy rules",
		Enforceability: "Unrated",
	})
	require.NoError(t, err)
	assert.Positive(t, lawID)

	// The law's jurisdiction_id resolves back to an existing row.
	var name string
	err = s.DB().QueryRow(`
		SELECT j.name FROM laws l JOIN jurisdictions j ON j.id = l.jurisdiction_id
		WHERE l.id = ?`, lawID).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "United States", name)
}

func TestLegislation_JoinsBarriersAndSectors(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertJurisdiction(ctx, "European Union"))
	require.NoError(t, s.UpsertSector(ctx, "Technology"))
	require.NoError(t, s.UpsertSector(ctx, "Fintech"))

	jid, _, err := s.JurisdictionID(ctx, "European Union")
	require.NoError(t, err)
	lawID, err := s.InsertLaw(ctx, domain.Law{
		JurisdictionID: jid,
		Name:           "GDPR",
		Type:           "Mixed",
		Summary:        "Data protection regime",
		Enforceability: "Unrated",
	})
	require.NoError(t, err)

	for _, sector := range []string{"Technology", "Fintech"} {
		sid, ok, err := s.SectorID(ctx, sector)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, s.InsertBarrier(ctx, domain.Barrier{
			LawID:       lawID,
			SectorID:    sid,
			RiskScore:   5,
			Description: "Relevant to General stage in " + sector,
		}))
	}

	rows, err := s.Legislation(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "European Union", r.Jurisdiction)
	assert.Equal(t, "GDPR", r.Law)
	assert.Equal(t, "Data protection regime", r.Significance)
	assert.Equal(t, "5", r.RiskScore)

	assert.Contains(t, r.Industries, "Technology")
	assert.Contains(t, r.Industries, "Fintech")
}

func TestLegislation_LawWithoutBarriers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertJurisdiction(ctx, "Canada"))
	jid, _, err := s.JurisdictionID(ctx, "Canada")
	require.NoError(t, err)
	_, err = s.InsertLaw(ctx, domain.Law{JurisdictionID: jid, Name: "Bill C-27", Summary: "Reform"})
	require.NoError(t, err)

	rows, err := s.Legislation(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Industries)
	assert.Empty(t, rows[0].RiskScore)
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legal_data.db")

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.UpsertJurisdiction(context.Background(), "Canada"))
	require.NoError(t, s.Close())

	s2, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s2.Close()

	_, ok, err := s2.JurisdictionID(context.Background(), "Canada")
	require.NoError(t, err)
	assert.True(t, ok)
}
