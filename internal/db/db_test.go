package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/skyview.report/internal/report"
)

func openTestLedger(t *testing.T) *DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.MigrateUp())
	return database
}

func sampleRun() Run {
	now := time.Now().UnixNano()
	return Run{
		RunID:             NewRunID(),
		StartedUnixNanos:  now - int64(3*time.Second),
		FinishedUnixNanos: now,
		SurfacePath:       "dsm.asc",
		CanopyTopPath:     "cdsm.asc",
		CanopyBottomPath:  "tdsm.asc",
		Width:             128,
		Height:            96,
		ParamsJSON:        `{"trace_radius":100}`,
		Status:            "completed",
	}
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	database := openTestLedger(t)
	require.NoError(t, database.MigrateUp())

	version, dirty, err := database.MigrateVersion()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)
}

func TestRecordAndReadBackRun(t *testing.T) {
	database := openTestLedger(t)

	run := sampleRun()
	stats := []report.Summary{
		{Sector: "total", Class: "surface", Cells: 12288, Mean: 0.91, StdDev: 0.04, Min: 0.2, Max: 1, P05: 0.8, P50: 0.92, P95: 0.99},
		{Sector: "total", Class: "veg", Cells: 12288, Mean: 0.95},
	}
	require.NoError(t, database.RecordRun(run, stats))

	got, err := database.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, run, got)

	gotStats, err := database.RunStats(run.RunID)
	require.NoError(t, err)
	require.Len(t, gotStats, 2)
	assert.Equal(t, stats[0], gotStats[0])
	assert.Equal(t, "veg", gotStats[1].Class)
}

func TestGetRunMissing(t *testing.T) {
	database := openTestLedger(t)
	_, err := database.GetRun("no-such-run")
	assert.Error(t, err)
}

func TestListRunsNewestFirst(t *testing.T) {
	database := openTestLedger(t)

	older := sampleRun()
	older.StartedUnixNanos = 100
	newer := sampleRun()
	newer.StartedUnixNanos = 200
	require.NoError(t, database.RecordRun(older, nil))
	require.NoError(t, database.RecordRun(newer, nil))

	runs, err := database.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.RunID, runs[0].RunID)
	assert.Equal(t, older.RunID, runs[1].RunID)
}

func TestRecordRunDuplicateIDFails(t *testing.T) {
	database := openTestLedger(t)
	run := sampleRun()
	require.NoError(t, database.RecordRun(run, nil))
	assert.Error(t, database.RecordRun(run, nil))
}
