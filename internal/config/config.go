// Package config loads run configuration for the skyview CLI. The JSON
// schema uses pointer fields so partial files are safe: omitted fields keep
// their defaults, and CLI flags can override file values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/skyview.report/internal/svf"
)

// maxConfigSize guards against accidentally pointing the loader at a
// raster.
const maxConfigSize = 1 << 20

// File is the on-disk configuration schema.
type File struct {
	// Input rasters (ESRI ASCII grids, co-registered).
	Surface      *string `json:"surface,omitempty"`
	CanopyTop    *string `json:"canopy_top,omitempty"`
	CanopyBottom *string `json:"canopy_bottom,omitempty"`

	// OutputDir receives the 15 SVF rasters and report artefacts.
	OutputDir *string `json:"output_dir,omitempty"`

	// Ledger is the sqlite run ledger path; empty disables recording.
	Ledger *string `json:"ledger,omitempty"`

	// Sweep parameters. Scale defaults to 1/cellsize of the surface raster
	// when omitted.
	Scale            *float64 `json:"scale,omitempty"`
	TraceRadius      *float64 `json:"trace_radius,omitempty"`
	AzimuthStart     *float64 `json:"azimuth_start,omitempty"`
	AzimuthEnd       *float64 `json:"azimuth_end,omitempty"`
	AzimuthInterval  *float64 `json:"azimuth_interval,omitempty"`
	AltitudeInterval *float64 `json:"altitude_interval,omitempty"`

	// Workers caps the sweep worker count; 0 means one per CPU.
	Workers *int `json:"workers,omitempty"`

	// WriteCharts toggles the PNG heatmaps and HTML report.
	WriteCharts *bool `json:"write_charts,omitempty"`
}

// Run is the fully resolved configuration a run executes with.
type Run struct {
	Surface      string
	CanopyTop    string
	CanopyBottom string
	OutputDir    string
	Ledger       string

	// Scale of 0 means "derive from the surface raster's cellsize".
	Scale            float64
	TraceRadius      float64
	AzimuthStart     float64
	AzimuthEnd       float64
	AzimuthInterval  float64
	AltitudeInterval float64

	Workers     int
	WriteCharts bool
}

// Load parses a JSON config file. The file must have a .json extension and
// stay under the size guard.
func Load(path string) (*File, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config: file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("config: %s is %d bytes, limit is %d", cleanPath, info.Size(), maxConfigSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", cleanPath, err)
	}
	return &f, nil
}

// Resolve overlays the file's values onto the defaults and returns the
// concrete run configuration. A nil receiver yields pure defaults.
func (f *File) Resolve() Run {
	r := Run{
		OutputDir:        "out",
		TraceRadius:      100,
		AzimuthStart:     0,
		AzimuthEnd:       360,
		AzimuthInterval:  5,
		AltitudeInterval: 5,
		WriteCharts:      true,
	}
	if f == nil {
		return r
	}
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&r.Surface, f.Surface)
	setString(&r.CanopyTop, f.CanopyTop)
	setString(&r.CanopyBottom, f.CanopyBottom)
	setString(&r.OutputDir, f.OutputDir)
	setString(&r.Ledger, f.Ledger)
	setFloat(&r.Scale, f.Scale)
	setFloat(&r.TraceRadius, f.TraceRadius)
	setFloat(&r.AzimuthStart, f.AzimuthStart)
	setFloat(&r.AzimuthEnd, f.AzimuthEnd)
	setFloat(&r.AzimuthInterval, f.AzimuthInterval)
	setFloat(&r.AltitudeInterval, f.AltitudeInterval)
	if f.Workers != nil {
		r.Workers = *f.Workers
	}
	if f.WriteCharts != nil {
		r.WriteCharts = *f.WriteCharts
	}
	return r
}

// Params converts the resolved configuration into sweep parameters.
// A zero Scale must be replaced with the raster-derived value first.
func (r *Run) Params() svf.Params {
	return svf.Params{
		Scale:            r.Scale,
		TraceRadius:      r.TraceRadius,
		AzimuthStart:     r.AzimuthStart,
		AzimuthEnd:       r.AzimuthEnd,
		AzimuthInterval:  r.AzimuthInterval,
		AltitudeInterval: r.AltitudeInterval,
	}
}

// Validate checks everything that can be checked before touching the
// rasters. Scale is validated later because it may be raster-derived.
func (r *Run) Validate() error {
	if r.Surface == "" {
		return fmt.Errorf("config: surface raster path is required")
	}
	if r.CanopyTop == "" {
		return fmt.Errorf("config: canopy top raster path is required")
	}
	if r.CanopyBottom == "" {
		return fmt.Errorf("config: canopy bottom raster path is required")
	}
	if r.OutputDir == "" {
		return fmt.Errorf("config: output directory is required")
	}
	if r.Scale < 0 {
		return fmt.Errorf("config: scale must be non-negative, got %g", r.Scale)
	}

	// Delegate the angular checks with a placeholder scale so a
	// raster-derived scale does not mask interval errors.
	p := r.Params()
	if p.Scale == 0 {
		p.Scale = 1
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
