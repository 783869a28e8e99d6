// Command skyview computes Sky View Factor rasters from a surface model and
// a two-layer vegetation model, writes the 15 output grids plus report
// artefacts, and records the run in a sqlite ledger.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/skyview.report/internal/config"
	"github.com/banshee-data/skyview.report/internal/db"
	"github.com/banshee-data/skyview.report/internal/raster"
	"github.com/banshee-data/skyview.report/internal/report"
	"github.com/banshee-data/skyview.report/internal/svf"
)

var (
	configPath       = flag.String("config", "", "JSON run configuration file")
	surfacePath      = flag.String("surface", "", "surface (DSM) raster, overrides config")
	canopyTopPath    = flag.String("canopy-top", "", "canopy top raster, overrides config")
	canopyBottomPath = flag.String("canopy-bottom", "", "canopy bottom raster, overrides config")
	outputDir        = flag.String("out", "", "output directory, overrides config")
	ledgerPath       = flag.String("db", "", "sqlite run ledger path, overrides config")
	scale            = flag.Float64("scale", 0, "grid cells per vertical unit (0 derives 1/cellsize)")
	traceRadius      = flag.Float64("trace-radius", 0, "maximum ray march distance in cells (0 keeps config)")
	azimuthInterval  = flag.Float64("azimuth-interval", 0, "azimuth step in degrees (0 keeps config)")
	altitudeInterval = flag.Float64("altitude-interval", 0, "altitude step in degrees (0 keeps config)")
	workers          = flag.Int("workers", 0, "sweep workers (0 means one per CPU)")
	noCharts         = flag.Bool("no-charts", false, "skip the PNG heatmaps and HTML report")
)

func main() {
	// `skyview migrate up|down|status` manages the ledger schema and
	// `skyview runs` lists recorded runs.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			fs := flag.NewFlagSet("migrate", flag.ExitOnError)
			dbPath := fs.String("db", "skyview.db", "sqlite run ledger path")
			fs.Parse(os.Args[2:])
			db.RunMigrateCommand(fs.Args(), *dbPath)
			return
		case "runs":
			fs := flag.NewFlagSet("runs", flag.ExitOnError)
			dbPath := fs.String("db", "skyview.db", "sqlite run ledger path")
			limit := fs.Int("limit", 20, "maximum runs to list")
			fs.Parse(os.Args[2:])
			listRuns(*dbPath, *limit)
			return
		}
	}

	flag.Parse()
	cfg := resolveConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	surface := mustReadGrid(cfg.Surface)
	canopyTop := mustReadGrid(cfg.CanopyTop)
	canopyBottom := mustReadGrid(cfg.CanopyBottom)
	if !surface.SameShape(canopyTop) || !surface.SameShape(canopyBottom) {
		log.Fatalf("Input rasters are not co-registered: surface %dx%d cell %g, canopy top %dx%d cell %g, canopy bottom %dx%d cell %g",
			surface.Cols, surface.Rows, surface.CellSize,
			canopyTop.Cols, canopyTop.Rows, canopyTop.CellSize,
			canopyBottom.Cols, canopyBottom.Rows, canopyBottom.CellSize)
	}

	if cfg.Scale == 0 {
		cfg.Scale = 1 / surface.CellSize
		log.Printf("Derived scale %g from cellsize %g", cfg.Scale, surface.CellSize)
	}

	fields := &svf.HeightFields{
		Width:        surface.Cols,
		Height:       surface.Rows,
		Surface:      surface.Data,
		CanopyTop:    canopyTop.Data,
		CanopyBottom: canopyBottom.Data,
	}
	params := cfg.Params()

	started := time.Now()
	res, err := svf.Compute(fields, params, cfg.Workers)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}
	finished := time.Now()

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	writeOutputs(cfg.OutputDir, surface, res)

	sums := report.Summaries(res)
	for _, s := range sums {
		if s.Sector == "total" {
			log.Printf("total/%s: mean SVF %.4f (p05 %.4f, p95 %.4f)", s.Class, s.Mean, s.P05, s.P95)
		}
	}

	if cfg.WriteCharts {
		writeReports(cfg.OutputDir, res, sums)
	}

	if cfg.Ledger != "" {
		recordRun(cfg, fields, params, started, finished, sums)
	}
	log.Printf("Run complete in %s", finished.Sub(started).Round(time.Millisecond))
}

// resolveConfig overlays CLI flags onto the config file values.
func resolveConfig() config.Run {
	var file *config.File
	if *configPath != "" {
		var err error
		file, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	cfg := file.Resolve()

	if *surfacePath != "" {
		cfg.Surface = *surfacePath
	}
	if *canopyTopPath != "" {
		cfg.CanopyTop = *canopyTopPath
	}
	if *canopyBottomPath != "" {
		cfg.CanopyBottom = *canopyBottomPath
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *ledgerPath != "" {
		cfg.Ledger = *ledgerPath
	}
	if *scale != 0 {
		cfg.Scale = *scale
	}
	if *traceRadius != 0 {
		cfg.TraceRadius = *traceRadius
	}
	if *azimuthInterval != 0 {
		cfg.AzimuthInterval = *azimuthInterval
	}
	if *altitudeInterval != 0 {
		cfg.AltitudeInterval = *altitudeInterval
	}
	if *workers != 0 {
		cfg.Workers = *workers
	}
	if *noCharts {
		cfg.WriteCharts = false
	}
	return cfg
}

// mustReadGrid reads an input raster and rejects NODATA cells up front; the
// sweep needs a finite height at every cell.
func mustReadGrid(path string) *raster.Grid {
	g, err := raster.ReadASC(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	nodata := 0
	for _, v := range g.Data {
		if math.IsNaN(float64(v)) {
			nodata++
		}
	}
	if nodata > 0 {
		log.Fatalf("%s has %d NODATA cells; fill or clip the raster before running", path, nodata)
	}
	return g
}

// writeOutputs writes the 15 SVF rasters with the input georeference.
func writeOutputs(dir string, ref *raster.Grid, res *svf.Results) {
	res.Each(func(s svf.Sector, c svf.Class, grid []float32) {
		out := &raster.Grid{
			Cols: ref.Cols, Rows: ref.Rows,
			Xll: ref.Xll, Yll: ref.Yll,
			CellSize: ref.CellSize,
			NoData:   raster.DefaultNoData,
			Data:     grid,
		}
		name := fmt.Sprintf("svf_%s_%s.asc", s, c)
		if err := raster.WriteASC(filepath.Join(dir, name), out); err != nil {
			log.Fatalf("Failed to write %s: %v", name, err)
		}
	})
}

func writeReports(dir string, res *svf.Results, sums []report.Summary) {
	for c := svf.Class(0); c < svf.NumClasses; c++ {
		name := fmt.Sprintf("svf_total_%s.png", c)
		grid := res.Grid(svf.SectorTotal, c)
		if err := report.WriteHeatmap(filepath.Join(dir, name), "total/"+c.String(), res.Width, res.Height, grid); err != nil {
			log.Printf("Failed to write heatmap %s: %v", name, err)
		}
	}
	if err := report.WriteChart(filepath.Join(dir, "svf_report.html"), sums); err != nil {
		log.Printf("Failed to write report chart: %v", err)
	}
}

// listRuns prints the most recent ledger entries with the mean total/surface
// SVF of each run when stats were recorded.
func listRuns(dbPath string, limit int) {
	ledger, err := db.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open ledger: %v", err)
	}
	defer ledger.Close()

	runs, err := ledger.ListRuns(limit)
	if err != nil {
		log.Fatalf("Failed to list runs: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs")
		return
	}
	for _, run := range runs {
		started := time.Unix(0, run.StartedUnixNanos)
		elapsed := time.Duration(run.FinishedUnixNanos - run.StartedUnixNanos).Round(time.Millisecond)
		line := fmt.Sprintf("%s  %s  %dx%d  %s  %s",
			run.RunID, started.Format(time.RFC3339), run.Width, run.Height, elapsed, run.Status)
		stats, err := ledger.RunStats(run.RunID)
		if err == nil {
			for _, s := range stats {
				if s.Sector == "total" && s.Class == "surface" {
					line += fmt.Sprintf("  mean total/surface %.4f", s.Mean)
					break
				}
			}
		}
		fmt.Println(line)
	}
}

func recordRun(cfg config.Run, fields *svf.HeightFields, params svf.Params, started, finished time.Time, sums []report.Summary) {
	ledger, err := db.Open(cfg.Ledger)
	if err != nil {
		log.Fatalf("Failed to open ledger: %v", err)
	}
	defer ledger.Close()
	if err := ledger.MigrateUp(); err != nil {
		log.Fatalf("Failed to migrate ledger: %v", err)
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		log.Fatalf("Failed to encode params: %v", err)
	}
	run := db.Run{
		RunID:             db.NewRunID(),
		StartedUnixNanos:  started.UnixNano(),
		FinishedUnixNanos: finished.UnixNano(),
		SurfacePath:       cfg.Surface,
		CanopyTopPath:     cfg.CanopyTop,
		CanopyBottomPath:  cfg.CanopyBottom,
		Width:             fields.Width,
		Height:            fields.Height,
		ParamsJSON:        string(paramsJSON),
		Status:            "completed",
	}
	if err := ledger.RecordRun(run, sums); err != nil {
		log.Fatalf("Failed to record run: %v", err)
	}
	log.Printf("Recorded run %s in %s", run.RunID, cfg.Ledger)
}
