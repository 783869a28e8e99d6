package svf

// Results holds the 15 output grids, one per (sector, class) pair, same
// dimensions as the inputs. Values are nominally in [0, 1] but are not
// clamped; a sector with zero accumulated weight yields non-finite values
// rather than a signalled fault.
type Results struct {
	Width  int
	Height int

	grids [NumSectors][NumClasses][]float32
}

func newResults(width, height int) *Results {
	r := &Results{Width: width, Height: height}
	for s := Sector(0); s < NumSectors; s++ {
		for c := Class(0); c < NumClasses; c++ {
			r.grids[s][c] = make([]float32, width*height)
		}
	}
	return r
}

// Grid returns the row-major output grid for one sector/class pair.
func (r *Results) Grid(s Sector, c Class) []float32 {
	return r.grids[s][c]
}

// Each calls fn for every sector/class grid in a fixed order.
func (r *Results) Each(fn func(s Sector, c Class, grid []float32)) {
	for s := Sector(0); s < NumSectors; s++ {
		for c := Class(0); c < NumClasses; c++ {
			fn(s, c, r.grids[s][c])
		}
	}
}

// computePixel runs the full angular sweep for one output cell and writes
// its 15 values. Out-of-range coordinates are a dispatch overprovisioning
// guard and write nothing. The iteration order (ascending altitude ring,
// then ascending azimuth slice) is fixed so outputs are bit-reproducible.
func computePixel(h *HeightFields, hem *hemisphere, p Params, res *Results, x, y int) {
	if x < 0 || x >= h.Width || y < 0 || y >= h.Height {
		return
	}
	i := h.Idx(x, y)
	surf0 := float64(h.Surface[i])

	var acc accumulator
	for _, rg := range hem.rings {
		for _, sl := range hem.slices {
			acc.addSample(sl.sectors, rg.weight)
			marchRay(h, x, y, surf0, rg, sl, p, &acc)
		}
	}

	for s := Sector(0); s < NumSectors; s++ {
		for c := Class(0); c < NumClasses; c++ {
			res.grids[s][c][i] = float32(1 - acc.occluded[s][c]/acc.total[s])
		}
	}
}
