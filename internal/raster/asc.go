// Package raster reads and writes ESRI ASCII grid (.asc) rasters, the
// interchange format the pipeline uses for height fields and SVF outputs.
package raster

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// DefaultNoData is written when a grid was built without an explicit
// NODATA_value header.
const DefaultNoData = -9999.0

// Grid is one single-band raster. Data is row-major with the first row
// being the northernmost, as stored in the file. NODATA cells are held as
// NaN in memory.
type Grid struct {
	Cols     int
	Rows     int
	Xll      float64 // x of the lower-left corner
	Yll      float64 // y of the lower-left corner
	CellSize float64
	NoData   float64

	Data []float32
}

// Idx maps column/row coordinates to the flat slice index.
func (g *Grid) Idx(col, row int) int {
	return row*g.Cols + col
}

// SameShape reports whether two grids are dimensionally co-registered.
func (g *Grid) SameShape(o *Grid) bool {
	return g.Cols == o.Cols && g.Rows == o.Rows &&
		g.Xll == o.Xll && g.Yll == o.Yll && g.CellSize == o.CellSize
}

// ReadASC parses an ESRI ASCII grid file. Header keywords are
// case-insensitive; NODATA_value is optional and defaults to -9999. Cells
// matching the NODATA value are mapped to NaN.
func ReadASC(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}

	g := &Grid{Cols: -1, Rows: -1, CellSize: -1, NoData: DefaultNoData}

	// Header: keyword/value pairs until the first bare number.
	var pending string
	for {
		tok, ok := next()
		if !ok {
			return nil, fmt.Errorf("raster: %s: truncated header", path)
		}
		if _, err := strconv.ParseFloat(tok, 64); err == nil {
			pending = tok
			break
		}
		val, ok := next()
		if !ok {
			return nil, fmt.Errorf("raster: %s: header keyword %q has no value", path, tok)
		}
		fv, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("raster: %s: bad value %q for %s: %w", path, val, tok, err)
		}
		switch strings.ToLower(tok) {
		case "ncols":
			g.Cols = int(fv)
		case "nrows":
			g.Rows = int(fv)
		case "xllcorner", "xllcenter":
			g.Xll = fv
		case "yllcorner", "yllcenter":
			g.Yll = fv
		case "cellsize":
			g.CellSize = fv
		case "nodata_value":
			g.NoData = fv
		default:
			return nil, fmt.Errorf("raster: %s: unknown header keyword %q", path, tok)
		}
	}
	if g.Cols <= 0 || g.Rows <= 0 {
		return nil, fmt.Errorf("raster: %s: missing or invalid ncols/nrows", path)
	}
	if g.CellSize <= 0 {
		return nil, fmt.Errorf("raster: %s: missing or invalid cellsize", path)
	}

	n := g.Cols * g.Rows
	g.Data = make([]float32, 0, n)
	appendCell := func(tok string) error {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("raster: %s: bad cell value %q: %w", path, tok, err)
		}
		if v == g.NoData {
			v = math.NaN()
		}
		g.Data = append(g.Data, float32(v))
		return nil
	}
	if err := appendCell(pending); err != nil {
		return nil, err
	}
	for len(g.Data) < n {
		tok, ok := next()
		if !ok {
			return nil, fmt.Errorf("raster: %s: expected %d cells, got %d", path, n, len(g.Data))
		}
		if err := appendCell(tok); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("raster: %s: %w", path, err)
	}
	return g, nil
}

// WriteASC writes the grid in ESRI ASCII format, one raster row per line.
// NaN cells are written as the grid's NODATA value.
func WriteASC(path string, g *Grid) error {
	if len(g.Data) != g.Cols*g.Rows {
		return fmt.Errorf("raster: grid has %d cells, want %d", len(g.Data), g.Cols*g.Rows)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: %w", err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "ncols %d\n", g.Cols)
	fmt.Fprintf(w, "nrows %d\n", g.Rows)
	fmt.Fprintf(w, "xllcorner %g\n", g.Xll)
	fmt.Fprintf(w, "yllcorner %g\n", g.Yll)
	fmt.Fprintf(w, "cellsize %g\n", g.CellSize)
	fmt.Fprintf(w, "NODATA_value %g\n", g.NoData)

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if col > 0 {
				w.WriteByte(' ')
			}
			v := float64(g.Data[g.Idx(col, row)])
			if math.IsNaN(v) {
				v = g.NoData
			}
			w.WriteString(strconv.FormatFloat(v, 'g', -1, 32))
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("raster: %w", err)
	}
	return f.Close()
}
