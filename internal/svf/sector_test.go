package svf

import (
	"math"
	"testing"
)

func maskOf(sectors ...Sector) sectorMask {
	var m sectorMask
	for _, s := range sectors {
		m |= 1 << uint(s)
	}
	return m
}

func TestSectorsForInterior(t *testing.T) {
	cases := []struct {
		az   float64
		want sectorMask
	}{
		{math.Pi / 4, maskOf(SectorTotal, SectorSouth, SectorEast)},
		{3 * math.Pi / 4, maskOf(SectorTotal, SectorSouth, SectorWest)},
		{5 * math.Pi / 4, maskOf(SectorTotal, SectorWest, SectorNorth)},
		{7 * math.Pi / 4, maskOf(SectorTotal, SectorNorth, SectorEast)},
	}
	for _, c := range cases {
		if got := sectorsFor(c.az); got != c.want {
			t.Errorf("sectorsFor(%v) = %05b, want %05b", c.az, got, c.want)
		}
	}
}

func TestSectorsForBoundaries(t *testing.T) {
	// The documented ranges are endpoint-inclusive, so each boundary angle
	// contributes to every adjacent range as well as Total. Kept as
	// documented behaviour, not corrected.
	cases := []struct {
		az   float64
		want sectorMask
	}{
		{0, maskOf(SectorTotal, SectorSouth, SectorEast)},
		{math.Pi / 2, maskOf(SectorTotal, SectorSouth, SectorWest, SectorEast)},
		{math.Pi, maskOf(SectorTotal, SectorSouth, SectorWest, SectorNorth)},
		{3 * math.Pi / 2, maskOf(SectorTotal, SectorWest, SectorNorth, SectorEast)},
	}
	for _, c := range cases {
		if got := sectorsFor(c.az); got != c.want {
			t.Errorf("sectorsFor(%v) = %05b, want %05b", c.az, got, c.want)
		}
	}
}

func TestAccumulatorRoutesWeights(t *testing.T) {
	var acc accumulator
	m := maskOf(SectorTotal, SectorSouth)

	acc.addSample(m, 2.5)
	acc.addOcclusion(m, ClassSurface, 1.5)

	if acc.total[SectorTotal] != 2.5 || acc.total[SectorSouth] != 2.5 {
		t.Fatalf("total weights not routed: %+v", acc.total)
	}
	if acc.total[SectorNorth] != 0 {
		t.Fatalf("north total should be untouched, got %v", acc.total[SectorNorth])
	}
	if acc.occluded[SectorSouth][ClassSurface] != 1.5 {
		t.Fatalf("south surface occlusion = %v, want 1.5", acc.occluded[SectorSouth][ClassSurface])
	}
	if acc.occluded[SectorSouth][ClassVegetation] != 0 {
		t.Fatalf("vegetation occlusion should be untouched")
	}
}

func TestReassignMovesWeightWithoutCreatingAny(t *testing.T) {
	var acc accumulator
	m := maskOf(SectorTotal, SectorWest)

	acc.addOcclusion(m, ClassVegetation, 0.75)
	before := acc.occluded[SectorTotal][ClassVegetation] +
		acc.occluded[SectorTotal][ClassVegetationAdjusted]

	acc.reassignToAdjusted(m, 0.75)
	after := acc.occluded[SectorTotal][ClassVegetation] +
		acc.occluded[SectorTotal][ClassVegetationAdjusted]

	if before != after {
		t.Fatalf("reassignment changed summed occluded weight: %v -> %v", before, after)
	}
	if acc.occluded[SectorTotal][ClassVegetation] != 0 {
		t.Fatalf("vegetation weight not fully moved: %v", acc.occluded[SectorTotal][ClassVegetation])
	}
	if acc.occluded[SectorWest][ClassVegetationAdjusted] != 0.75 {
		t.Fatalf("adjusted weight = %v, want 0.75", acc.occluded[SectorWest][ClassVegetationAdjusted])
	}
}

func TestSectorAndClassNames(t *testing.T) {
	if SectorTotal.String() != "total" || SectorNorth.String() != "north" {
		t.Fatal("unexpected sector names")
	}
	if ClassVegetationAdjusted.String() != "vegadj" {
		t.Fatal("unexpected class name")
	}
}
