package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/skyview.report/internal/report"
)

// Run is one recorded sweep.
type Run struct {
	RunID             string
	StartedUnixNanos  int64
	FinishedUnixNanos int64

	SurfacePath      string
	CanopyTopPath    string
	CanopyBottomPath string

	Width  int
	Height int

	ParamsJSON string
	Status     string
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// RecordRun inserts a run and its summary statistics in one transaction.
func (db *DB) RecordRun(run Run, stats []report.Summary) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO svf_runs (
			run_id, started_unix_nanos, finished_unix_nanos,
			surface_path, canopy_top_path, canopy_bottom_path,
			width, height, params_json, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.StartedUnixNanos, run.FinishedUnixNanos,
		run.SurfacePath, run.CanopyTopPath, run.CanopyBottomPath,
		run.Width, run.Height, run.ParamsJSON, run.Status,
	); err != nil {
		return fmt.Errorf("ledger: insert run: %w", err)
	}

	for _, s := range stats {
		if _, err := tx.Exec(`
			INSERT INTO svf_run_stats (
				run_id, sector, class, cells,
				mean, stddev, min, max, p05, p50, p95
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, s.Sector, s.Class, s.Cells,
			s.Mean, s.StdDev, s.Min, s.Max, s.P05, s.P50, s.P95,
		); err != nil {
			return fmt.Errorf("ledger: insert stats for %s/%s: %w", s.Sector, s.Class, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	return nil
}

// GetRun loads one run by id.
func (db *DB) GetRun(runID string) (Run, error) {
	var run Run
	err := db.QueryRow(`
		SELECT run_id, started_unix_nanos, finished_unix_nanos,
		       surface_path, canopy_top_path, canopy_bottom_path,
		       width, height, params_json, status
		FROM svf_runs WHERE run_id = ?`, runID).Scan(
		&run.RunID, &run.StartedUnixNanos, &run.FinishedUnixNanos,
		&run.SurfacePath, &run.CanopyTopPath, &run.CanopyBottomPath,
		&run.Width, &run.Height, &run.ParamsJSON, &run.Status,
	)
	if err == sql.ErrNoRows {
		return Run{}, fmt.Errorf("ledger: run %s not found", runID)
	}
	if err != nil {
		return Run{}, fmt.Errorf("ledger: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT run_id, started_unix_nanos, finished_unix_nanos,
		       surface_path, canopy_top_path, canopy_bottom_path,
		       width, height, params_json, status
		FROM svf_runs ORDER BY started_unix_nanos DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.RunID, &run.StartedUnixNanos, &run.FinishedUnixNanos,
			&run.SurfacePath, &run.CanopyTopPath, &run.CanopyBottomPath,
			&run.Width, &run.Height, &run.ParamsJSON, &run.Status,
		); err != nil {
			return nil, fmt.Errorf("ledger: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunStats loads the recorded summaries for a run, in insertion order.
func (db *DB) RunStats(runID string) ([]report.Summary, error) {
	rows, err := db.Query(`
		SELECT sector, class, cells, mean, stddev, min, max, p05, p50, p95
		FROM svf_run_stats WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}
	defer rows.Close()

	var stats []report.Summary
	for rows.Next() {
		var s report.Summary
		if err := rows.Scan(
			&s.Sector, &s.Class, &s.Cells,
			&s.Mean, &s.StdDev, &s.Min, &s.Max, &s.P05, &s.P50, &s.P95,
		); err != nil {
			return nil, fmt.Errorf("ledger: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
