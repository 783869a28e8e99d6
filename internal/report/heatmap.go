package report

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// svfGrid adapts a row-major output grid to plotter.GridXYZ. Raster row 0
// is the northernmost, so the y axis is flipped to keep north up.
type svfGrid struct {
	width  int
	height int
	data   []float32
}

func (g svfGrid) Dims() (int, int) { return g.width, g.height }
func (g svfGrid) X(c int) float64  { return float64(c) }
func (g svfGrid) Y(r int) float64  { return float64(g.height - 1 - r) }

func (g svfGrid) Z(c, r int) float64 {
	v := float64(g.data[r*g.width+c])
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// WriteHeatmap renders one output grid as a PNG heatmap with a fixed [0, 1]
// colour range so plots from different runs are comparable.
func WriteHeatmap(path, title string, width, height int, data []float32) error {
	if len(data) != width*height {
		return fmt.Errorf("report: grid has %d cells, want %d", len(data), width*height)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"

	hm := plotter.NewHeatMap(svfGrid{width: width, height: height, data: data},
		moreland.SmoothBlueRed().Palette(255))
	hm.Min = 0
	hm.Max = 1
	p.Add(hm)

	if err := p.Save(8*vg.Inch, 8*vg.Inch*vg.Length(height)/vg.Length(width), path); err != nil {
		return fmt.Errorf("report: save heatmap: %w", err)
	}
	return nil
}
