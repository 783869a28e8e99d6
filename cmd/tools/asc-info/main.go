// Command asc-info prints the header and value statistics of ESRI ASCII
// grids. Useful for checking that input rasters are co-registered before a
// sweep.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/skyview.report/internal/raster"
)

var withStats = flag.Bool("stats", true, "compute value statistics (reads every cell)")

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatalf("Usage: asc-info [-stats=false] <grid.asc> [grid.asc ...]")
	}

	for _, path := range flag.Args() {
		g, err := raster.ReadASC(path)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", path, err)
		}
		printInfo(path, g)
	}
}

func printInfo(path string, g *raster.Grid) {
	fmt.Printf("%s\n", path)
	fmt.Printf("  ncols %d  nrows %d\n", g.Cols, g.Rows)
	fmt.Printf("  xllcorner %g  yllcorner %g  cellsize %g\n", g.Xll, g.Yll, g.CellSize)
	fmt.Printf("  nodata %g\n", g.NoData)

	if !*withStats {
		return
	}

	xs := make([]float64, 0, len(g.Data))
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range g.Data {
		f := float64(v)
		if math.IsNaN(f) {
			continue
		}
		xs = append(xs, f)
		min = math.Min(min, f)
		max = math.Max(max, f)
	}
	nodata := len(g.Data) - len(xs)
	if len(xs) == 0 {
		fmt.Printf("  all %d cells are nodata\n", nodata)
		return
	}
	fmt.Printf("  cells %d (nodata %d)\n", len(xs), nodata)
	fmt.Printf("  min %g  max %g  mean %g  stddev %g\n",
		min, max, stat.Mean(xs, nil), stat.StdDev(xs, nil))
}
