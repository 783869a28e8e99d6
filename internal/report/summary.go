// Package report produces post-run artefacts: per-grid descriptive
// statistics, PNG heatmaps and a standalone HTML chart.
package report

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/skyview.report/internal/svf"
)

// Summary holds descriptive statistics for one sector/class output grid,
// computed over finite cells only.
type Summary struct {
	Sector string
	Class  string
	Cells  int

	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P05    float64
	P50    float64
	P95    float64
}

// Summaries computes one Summary per sector/class grid, in the results'
// fixed iteration order.
func Summaries(res *svf.Results) []Summary {
	out := make([]Summary, 0, int(svf.NumSectors)*int(svf.NumClasses))
	res.Each(func(s svf.Sector, c svf.Class, grid []float32) {
		sum := summarise(grid)
		sum.Sector = s.String()
		sum.Class = c.String()
		out = append(out, sum)
	})
	return out
}

func summarise(grid []float32) Summary {
	xs := make([]float64, 0, len(grid))
	for _, v := range grid {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		xs = append(xs, f)
	}
	if len(xs) == 0 {
		return Summary{
			Mean: math.NaN(), StdDev: math.NaN(),
			Min: math.NaN(), Max: math.NaN(),
			P05: math.NaN(), P50: math.NaN(), P95: math.NaN(),
		}
	}
	sort.Float64s(xs)
	return Summary{
		Cells:  len(xs),
		Mean:   stat.Mean(xs, nil),
		StdDev: stat.StdDev(xs, nil),
		Min:    xs[0],
		Max:    xs[len(xs)-1],
		P05:    stat.Quantile(0.05, stat.Empirical, xs, nil),
		P50:    stat.Quantile(0.50, stat.Empirical, xs, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, xs, nil),
	}
}
