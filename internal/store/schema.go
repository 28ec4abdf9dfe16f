package store

import (
	"context"
	"database/sql"
)

const schemaVersion = 1

// Migrate brings the schema up to schemaVersion, tracked in PRAGMA user_version.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRowContext(ctx, `PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= schemaVersion {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	stmts := []string{`
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  started_at TEXT NOT NULL,
  finished_at TEXT NOT NULL,
  cities TEXT NOT NULL DEFAULT '[]',
  batches INTEGER NOT NULL DEFAULT 0,
  failed_batches INTEGER NOT NULL DEFAULT 0,
  kept INTEGER NOT NULL DEFAULT 0,
  csv_path TEXT NOT NULL DEFAULT ''
);`, `
CREATE TABLE IF NOT EXISTS investor_leads (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
  rank INTEGER NOT NULL,
  name TEXT NOT NULL,
  title TEXT NOT NULL,
  location TEXT NOT NULL,
  profile_url TEXT NOT NULL DEFAULT '',
  search_term TEXT NOT NULL,
  target_city TEXT NOT NULL,
  quality_score INTEGER NOT NULL,
  tags TEXT NOT NULL DEFAULT '[]',
  scraped_at TEXT NOT NULL
);`, `
CREATE TABLE IF NOT EXISTS property_leads (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
  rank INTEGER NOT NULL,
  owner_name TEXT NOT NULL,
  address TEXT NOT NULL,
  city TEXT NOT NULL,
  estimated_value INTEGER NOT NULL,
  property_type TEXT NOT NULL,
  status TEXT NOT NULL,
  urgency_score INTEGER NOT NULL,
  lead_quality TEXT NOT NULL,
  deceased_age TEXT NOT NULL,
  death_date TEXT NOT NULL,
  obituary_source TEXT NOT NULL DEFAULT '',
  property_potential_score INTEGER NOT NULL,
  heir_contacts TEXT NOT NULL DEFAULT '[]',
  found_at TEXT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_investor_leads_run ON investor_leads(run_id, rank);`,
		`CREATE INDEX IF NOT EXISTS idx_property_leads_run ON property_leads(run_id, rank);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);`,
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}
