package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"leadflow-engine/internal/domain"
)

type Run struct {
	ID            string
	Kind          string // investors | inheritance
	StartedAt     time.Time
	FinishedAt    time.Time
	Cities        []string
	Batches       int
	FailedBatches int
	Kept          int
	CSVPath       string
}

// Fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func insertRun(ctx context.Context, tx *sql.Tx, r Run) error {
	cities, _ := json.Marshal(r.Cities)
	_, err := tx.ExecContext(ctx, `
INSERT INTO runs (id, kind, started_at, finished_at, cities, batches, failed_batches, kept, csv_path)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		r.ID, r.Kind, r.StartedAt.UTC().Format(timeLayout), r.FinishedAt.UTC().Format(timeLayout),
		string(cities), r.Batches, r.FailedBatches, r.Kept, r.CSVPath,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// SaveInvestorRun stores the run and its leads in rank order.
func (d *DB) SaveInvestorRun(ctx context.Context, r Run, leads []domain.InvestorLead) error {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertRun(ctx, tx, r); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO investor_leads (run_id, rank, name, title, location, profile_url, search_term, target_city, quality_score, tags, scraped_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, l := range leads {
		tags, _ := json.Marshal(nonNil(l.Tags))
		if _, err := stmt.ExecContext(ctx, r.ID, i+1, l.Name, l.Title, l.Location, l.ProfileURL,
			l.SearchTerm, l.TargetCity, l.QualityScore, string(tags), l.ScrapedAt.UTC().Format(timeLayout)); err != nil {
			return fmt.Errorf("insert investor %q: %w", l.Name, err)
		}
	}
	return tx.Commit()
}

func (d *DB) SavePropertyRun(ctx context.Context, r Run, props []domain.PropertyRecord) error {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertRun(ctx, tx, r); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO property_leads (run_id, rank, owner_name, address, city, estimated_value, property_type, status,
  urgency_score, lead_quality, deceased_age, death_date, obituary_source, property_potential_score, heir_contacts, found_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range props {
		contacts, _ := json.Marshal(nonNil(p.HeirContacts))
		if _, err := stmt.ExecContext(ctx, r.ID, i+1, p.OwnerName, p.Address, p.City, p.EstimatedValue,
			string(p.PropertyType), p.Status, p.UrgencyScore, string(p.LeadQuality), p.DeceasedAge, p.DeathDate,
			p.ObituarySource, p.PropertyPotentialScore, string(contacts), p.FoundAt.UTC().Format(timeLayout)); err != nil {
			return fmt.Errorf("insert property %q: %w", p.Address, err)
		}
	}
	return tx.Commit()
}

// ListRuns returns the newest runs first.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, kind, started_at, finished_at, cities, batches, failed_batches, kept, csv_path
FROM runs
ORDER BY started_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var started, finished, cities string
		if err := rows.Scan(&r.ID, &r.Kind, &started, &finished, &cities,
			&r.Batches, &r.FailedBatches, &r.Kept, &r.CSVPath); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(timeLayout, started)
		r.FinishedAt, _ = time.Parse(timeLayout, finished)
		_ = json.Unmarshal([]byte(cities), &r.Cities)
		out = append(out, r)
	}
	return out, rows.Err()
}

// TopInvestors returns a run's leads in rank order.
func (d *DB) TopInvestors(ctx context.Context, runID string, limit int) ([]domain.InvestorLead, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT name, title, location, profile_url, search_term, target_city, quality_score, tags, scraped_at
FROM investor_leads
WHERE run_id = ?
ORDER BY rank
LIMIT ?;`, runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.InvestorLead
	for rows.Next() {
		var l domain.InvestorLead
		var tags, scraped string
		if err := rows.Scan(&l.Name, &l.Title, &l.Location, &l.ProfileURL, &l.SearchTerm,
			&l.TargetCity, &l.QualityScore, &tags, &scraped); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(tags), &l.Tags)
		l.ScrapedAt, _ = time.Parse(timeLayout, scraped)
		l.LeadType = domain.LeadTypeInvestor
		out = append(out, l)
	}
	return out, rows.Err()
}

// CleanupOldRuns deletes runs (and their leads) started before cutoff.
func (d *DB) CleanupOldRuns(ctx context.Context, cutoff time.Time) (deleted int64, err error) {
	res, err := d.Pool.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?;`, cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("cleanup old runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
