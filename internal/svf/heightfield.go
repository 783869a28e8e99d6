// Package svf computes per-cell Sky View Factor over co-registered raster
// height fields. The hemisphere above each cell is swept with a fixed
// altitude/azimuth discretisation; each directional sample is ray-marched
// outward through the surface and canopy grids, and any occlusion is
// accumulated into five directional sectors split across three occlusion
// classes.
package svf

import (
	"fmt"
	"math"
)

// HeightFields holds the three co-registered input rasters, row-major,
// width*height each, in a shared physical unit. CanopyBottom <= CanopyTop
// per cell is a caller precondition.
type HeightFields struct {
	Width  int
	Height int

	// Surface is the ground/building top elevation.
	Surface []float32
	// CanopyTop and CanopyBottom bound the vegetation occlusion band.
	CanopyTop    []float32
	CanopyBottom []float32
}

// Idx maps grid coordinates to the flat slice index.
func (h *HeightFields) Idx(x, y int) int {
	return y*h.Width + x
}

// Validate checks the dimension agreement and finiteness preconditions the
// per-pixel sweep itself never re-checks.
func (h *HeightFields) Validate() error {
	if h.Width <= 0 || h.Height <= 0 {
		return fmt.Errorf("height fields: invalid dimensions %dx%d", h.Width, h.Height)
	}
	n := h.Width * h.Height
	grids := []struct {
		name string
		data []float32
	}{
		{"surface", h.Surface},
		{"canopy top", h.CanopyTop},
		{"canopy bottom", h.CanopyBottom},
	}
	for _, g := range grids {
		if len(g.data) != n {
			return fmt.Errorf("height fields: %s grid has %d cells, want %d", g.name, len(g.data), n)
		}
		for i, v := range g.data {
			f := float64(v)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("height fields: %s grid has non-finite value at cell %d", g.name, i)
			}
		}
	}
	return nil
}
