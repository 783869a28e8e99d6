package svf

import "math"

// occlusionState is the per-ray latch machine. Each ray contributes at most
// once per class; the state makes the four classification branches
// exhaustive.
type occlusionState uint8

const (
	// rayClear: no occlusion registered yet.
	rayClear occlusionState = iota
	// rayVegetationOnly: the ray passed through the canopy band.
	rayVegetationOnly
	// raySurfaceOnly: the ray was blocked by bare surface.
	raySurfaceOnly
	// rayBlocked: both latches set; nothing further can change the outcome.
	rayBlocked
)

// marchRay traces one (ring, slice) sample outward from the pixel at (x, y)
// with origin surface height surf0, classifying the first occlusion of each
// kind into acc at the ring's weight.
//
// The radius r is the slant distance along the ray in cell units: the
// sampled cell is the origin offset by round(r*cos(a)) cells along the
// slice direction, and the ray has risen (r/scale)*sin(a) elevation units.
// The step grows with radius (bounded below by one cell) so angular
// sampling error stays bounded near the origin without oversampling far
// out. Leaving the grid ends the ray; only a fully latched ray terminates
// early.
func marchRay(h *HeightFields, x, y int, surf0 float64, rg ring, sl azSlice, p Params, acc *accumulator) {
	state := rayClear
	for r := 1.0; r <= p.TraceRadius; r += math.Max(1, 0.1*r*rg.cosA) {
		horiz := r * rg.cosA
		px := x + int(math.Round(horiz*sl.cosZ))
		py := y + int(math.Round(horiz*sl.sinZ))
		if px < 0 || px >= h.Width || py < 0 || py >= h.Height {
			return
		}
		i := h.Idx(px, py)
		rayHeight := surf0 + (r/p.Scale)*rg.sinA

		if rayHeight < float64(h.Surface[i]) {
			if state == rayVegetationOnly {
				// Retroactive reclassification: the vegetation weight this
				// ray already registered moves to the adjusted class, and
				// the surface block is recorded as usual.
				acc.reassignToAdjusted(sl.sectors, rg.weight)
				acc.addOcclusion(sl.sectors, ClassSurface, rg.weight)
				state = rayBlocked
			} else if state == rayClear {
				acc.addOcclusion(sl.sectors, ClassSurface, rg.weight)
				state = raySurfaceOnly
			}
		}

		if state == rayClear &&
			rayHeight < float64(h.CanopyTop[i]) && rayHeight > float64(h.CanopyBottom[i]) {
			acc.addOcclusion(sl.sectors, ClassVegetation, rg.weight)
			state = rayVegetationOnly
		}

		if state == rayBlocked {
			return
		}
	}
}
