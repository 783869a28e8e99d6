// Package db is the sqlite run ledger: one row per sweep plus the 15
// per-sector/class summary statistics, so past runs can be compared without
// re-reading the output rasters.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the sql handle so ledger operations hang off one type.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the ledger database at path. Schema management is
// left to the migrate functions.
func Open(path string) (*DB, error) {
	sdb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", path, err)
	}
	// Single-writer batch tool; WAL keeps the ledger readable while a run
	// is being recorded.
	if _, err := sdb.Exec(`PRAGMA journal_mode=WAL; PRAGMA foreign_keys=ON;`); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("ledger: set pragmas: %w", err)
	}
	return &DB{sdb}, nil
}
