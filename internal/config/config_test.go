package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAndResolvePartialConfig(t *testing.T) {
	path := writeConfig(t, `{
		"surface": "dsm.asc",
		"canopy_top": "cdsm.asc",
		"canopy_bottom": "tdsm.asc",
		"trace_radius": 50,
		"workers": 3
	}`)

	f, err := Load(path)
	require.NoError(t, err)
	r := f.Resolve()

	assert.Equal(t, "dsm.asc", r.Surface)
	assert.Equal(t, 50.0, r.TraceRadius)
	assert.Equal(t, 3, r.Workers)
	// Omitted fields keep defaults.
	assert.Equal(t, 5.0, r.AzimuthInterval)
	assert.Equal(t, 360.0, r.AzimuthEnd)
	assert.Equal(t, "out", r.OutputDir)
	assert.True(t, r.WriteCharts)
	assert.Zero(t, r.Scale, "scale should default to raster-derived")
}

func TestLoadRejectsNonJSON(t *testing.T) {
	_, err := Load("run.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := writeConfig(t, `{"surface": `)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestResolveNilGivesDefaults(t *testing.T) {
	var f *File
	r := f.Resolve()
	assert.Equal(t, 100.0, r.TraceRadius)
	assert.Equal(t, 5.0, r.AltitudeInterval)
}

func TestValidate(t *testing.T) {
	valid := Run{
		Surface:          "a.asc",
		CanopyTop:        "b.asc",
		CanopyBottom:     "c.asc",
		OutputDir:        "out",
		TraceRadius:      100,
		AzimuthEnd:       360,
		AzimuthInterval:  5,
		AltitudeInterval: 5,
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Run)
	}{
		{"missing surface", func(r *Run) { r.Surface = "" }},
		{"missing canopy top", func(r *Run) { r.CanopyTop = "" }},
		{"missing output dir", func(r *Run) { r.OutputDir = "" }},
		{"negative scale", func(r *Run) { r.Scale = -2 }},
		{"non-dividing azimuth interval", func(r *Run) { r.AzimuthInterval = 7 }},
		{"non-dividing altitude interval", func(r *Run) { r.AltitudeInterval = 28 }},
		{"zero altitude interval", func(r *Run) { r.AltitudeInterval = 0 }},
		{"negative trace radius", func(r *Run) { r.TraceRadius = -1 }},
	}
	for _, c := range cases {
		r := valid
		c.mutate(&r)
		assert.Error(t, r.Validate(), c.name)
	}
}
