// Package store implements the four-table relational schema backing the
// legislation data: jurisdictions, sectors, laws, and barriers, persisted in
// a local SQLite file.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"lexboard/internal/domain"
)

// Store wraps the SQLite database. Reference tables (jurisdictions, sectors)
// carry UNIQUE(name) so insert-or-ignore deduplication is enforced by the
// schema rather than by caller discipline.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// Open initializes the SQLite database at the given path, creating the
// schema if needed. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// initialize creates the required tables.
func (s *Store) initialize() error {
	jurisdictionsTable := `
	CREATE TABLE IF NOT EXISTS jurisdictions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		UNIQUE(name)
	);
	`

	sectorsTable := `
	CREATE TABLE IF NOT EXISTS sectors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		UNIQUE(name)
	);
	`

	lawsTable := `
	CREATE TABLE IF NOT EXISTS laws (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		jurisdiction_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		type TEXT,
		summary TEXT,
		enforceability TEXT,
		FOREIGN KEY(jurisdiction_id) REFERENCES jurisdictions(id)
	);
	CREATE INDEX IF NOT EXISTS idx_laws_jurisdiction ON laws(jurisdiction_id);
	`

	barriersTable := `
	CREATE TABLE IF NOT EXISTS barriers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		law_id INTEGER NOT NULL,
		sector_id INTEGER NOT NULL,
		risk_score INTEGER,
		description TEXT,
		FOREIGN KEY(law_id) REFERENCES laws(id),
		FOREIGN KEY(sector_id) REFERENCES sectors(id)
	);
	CREATE INDEX IF NOT EXISTS idx_barriers_law ON barriers(law_id);
	CREATE INDEX IF NOT EXISTS idx_barriers_sector ON barriers(sector_id);
	`

	for _, table := range []string{jurisdictionsTable, sectorsTable, lawsTable, barriersTable} {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for tests and ad hoc queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// UpsertJurisdiction inserts a jurisdiction name if not already present.
func (s *Store) UpsertJurisdiction(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO jurisdictions (name) VALUES (?)", strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("failed to insert jurisdiction %q: %w", name, err)
	}
	return nil
}

// UpsertSector inserts a sector name if not already present.
func (s *Store) UpsertSector(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO sectors (name) VALUES (?)", strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("failed to insert sector %q: %w", name, err)
	}
	return nil
}

// JurisdictionID resolves a jurisdiction name to its row ID. The second
// return value reports whether the name exists.
func (s *Store) JurisdictionID(ctx context.Context, name string) (int64, bool, error) {
	return s.lookupID(ctx, "jurisdictions", name)
}

// SectorID resolves a sector name to its row ID.
func (s *Store) SectorID(ctx context.Context, name string) (int64, bool, error) {
	return s.lookupID(ctx, "sectors", name)
}

func (s *Store) lookupID(ctx context.Context, table, name string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id int64
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id FROM %s WHERE name = ?", table), strings.TrimSpace(name)).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up %s %q: %w", table, name, err)
	}
	return id, true, nil
}

// InsertLaw inserts a law row and returns its ID.
func (s *Store) InsertLaw(ctx context.Context, law domain.Law) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO laws (jurisdiction_id, name, type, summary, enforceability)
		VALUES (?, ?, ?, ?, ?)`,
		law.JurisdictionID, law.Name, law.Type, law.Summary, law.Enforceability)
	if err != nil {
		return 0, fmt.Errorf("failed to insert law %q: %w", law.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read law id: %w", err)
	}
	return id, nil
}

// InsertBarrier inserts a barrier row linking a law and a sector.
func (s *Store) InsertBarrier(ctx context.Context, b domain.Barrier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO barriers (law_id, sector_id, risk_score, description)
		VALUES (?, ?, ?, ?)`,
		b.LawID, b.SectorID, b.RiskScore, b.Description)
	if err != nil {
		return fmt.Errorf("failed to insert barrier: %w", err)
	}
	return nil
}

// Legislation returns one display row per law, joined with its jurisdiction
// and the sectors its barriers reference. The risk score surfaced is the
// maximum across the law's barriers; laws without barriers get an empty
// industries field.
func (s *Store) Legislation(ctx context.Context) ([]domain.LegislationRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT j.name, l.name, l.summary, l.enforceability,
		       COALESCE(GROUP_CONCAT(sec.name, ', '), ''),
		       COALESCE(MAX(b.risk_score), 0)
		FROM laws l
		JOIN jurisdictions j ON j.id = l.jurisdiction_id
		LEFT JOIN barriers b ON b.law_id = l.id
		LEFT JOIN sectors sec ON sec.id = b.sector_id
		GROUP BY l.id
		ORDER BY l.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query legislation: %w", err)
	}
	defer rows.Close()

	var out []domain.LegislationRow
	for rows.Next() {
		var r domain.LegislationRow
		var risk int
		if err := rows.Scan(&r.Jurisdiction, &r.Law, &r.Significance,
			&r.Enforceability, &r.Industries, &risk); err != nil {
			return nil, fmt.Errorf("failed to scan legislation row: %w", err)
		}
		if risk > 0 {
			r.RiskScore = fmt.Sprintf("%d", risk)
		}
		// The schema does not keep the innovation stage on laws; the
		// importer's default stands in for display purposes.
		r.InnovationStage = "General"
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate legislation rows: %w", err)
	}
	return out, nil
}

// Stats returns row counts per table.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]int, 4)
	for _, table := range []string{"jurisdictions", "sectors", "laws", "barriers"} {
		var n int
		if err := s.db.QueryRowContext(ctx,
			fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		stats[table] = n
	}
	return stats, nil
}
