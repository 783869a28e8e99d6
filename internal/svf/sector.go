package svf

import "math"

// Sector is one of the five directional aggregation buckets.
type Sector int

const (
	SectorTotal Sector = iota
	SectorEast
	SectorSouth
	SectorWest
	SectorNorth

	NumSectors
)

func (s Sector) String() string {
	switch s {
	case SectorTotal:
		return "total"
	case SectorEast:
		return "east"
	case SectorSouth:
		return "south"
	case SectorWest:
		return "west"
	case SectorNorth:
		return "north"
	}
	return "unknown"
}

// Class is the occlusion class a blocked sample is recorded under.
type Class int

const (
	// ClassSurface marks rays blocked by the bare surface before any other
	// occlusion.
	ClassSurface Class = iota
	// ClassVegetation marks rays that pass through the canopy band before
	// any surface block.
	ClassVegetation
	// ClassVegetationAdjusted marks rays that registered vegetation and were
	// later also blocked by surface; their weight is moved out of
	// ClassVegetation.
	ClassVegetationAdjusted

	NumClasses
)

func (c Class) String() string {
	switch c {
	case ClassSurface:
		return "surface"
	case ClassVegetation:
		return "veg"
	case ClassVegetationAdjusted:
		return "vegadj"
	}
	return "unknown"
}

// sectorMask is a bit set over the five sectors.
type sectorMask uint8

func (m sectorMask) has(s Sector) bool {
	return m&(1<<uint(s)) != 0
}

// sectorsFor classifies an azimuth (radians, normalised to [0, 2*pi)) into
// Total plus every cardinal half-plane whose range contains it. The
// documented ranges are endpoint-inclusive, so the four boundary angles land
// in every adjacent range; this overlap is long-standing behaviour and is
// kept as-is.
func sectorsFor(az float64) sectorMask {
	m := sectorMask(1 << uint(SectorTotal))
	if az >= 0 && az <= math.Pi {
		m |= 1 << uint(SectorSouth)
	}
	if az >= math.Pi/2 && az <= 3*math.Pi/2 {
		m |= 1 << uint(SectorWest)
	}
	if az >= math.Pi && az <= 2*math.Pi {
		m |= 1 << uint(SectorNorth)
	}
	if az >= 3*math.Pi/2 || az <= math.Pi/2 {
		m |= 1 << uint(SectorEast)
	}
	return m
}

// accumulator carries one pixel's running sums for the duration of its
// sweep: per-sector total weight (the shared denominator) and per
// sector/class occluded weight (the numerators).
type accumulator struct {
	total    [NumSectors]float64
	occluded [NumSectors][NumClasses]float64
}

// addSample credits a sample's weight to every applicable sector
// denominator, independent of the march outcome.
func (a *accumulator) addSample(m sectorMask, w float64) {
	for s := Sector(0); s < NumSectors; s++ {
		if m.has(s) {
			a.total[s] += w
		}
	}
}

// addOcclusion credits a blocked sample's weight to the matching class
// numerator in every applicable sector.
func (a *accumulator) addOcclusion(m sectorMask, c Class, w float64) {
	for s := Sector(0); s < NumSectors; s++ {
		if m.has(s) {
			a.occluded[s][c] += w
		}
	}
}

// reassignToAdjusted performs the retroactive reclassification: the weight a
// ray had registered as vegetation is moved into the vegetation-adjusted
// class. Weight is moved, never created or destroyed.
func (a *accumulator) reassignToAdjusted(m sectorMask, w float64) {
	for s := Sector(0); s < NumSectors; s++ {
		if m.has(s) {
			a.occluded[s][ClassVegetation] -= w
			a.occluded[s][ClassVegetationAdjusted] += w
		}
	}
}
