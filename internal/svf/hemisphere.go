package svf

import (
	"math"

	"github.com/banshee-data/skyview.report/internal/units"
)

// AnnulusWeight returns the contribution of one (altitude, azimuth)
// hemisphere cell: the spherical-zone area between a-dA/2 and a+dA/2 scaled
// by the azimuthal fraction dZ, re-weighted by cos(a) for the
// horizontal-plane projection the SVF convention uses. All arguments are in
// radians; a must lie in [0, pi/2] (not clamped). The result depends only on
// the altitude ring, so it is evaluated once per ring and shared across
// every azimuth slice and every pixel.
func AnnulusWeight(a, dA, dZ float64) float64 {
	return dZ * (math.Cos(a-dA/2) - math.Cos(a+dA/2)) * math.Cos(a)
}

// ring is one altitude band of the discretised hemisphere.
type ring struct {
	altitude float64 // band centre, radians
	sinA     float64
	cosA     float64
	weight   float64 // AnnulusWeight for this ring at the sweep's dZ
}

// azSlice is one azimuth direction of the discretised hemisphere.
type azSlice struct {
	azimuth float64 // radians, normalised to [0, 2*pi)
	cosZ    float64
	sinZ    float64
	sectors sectorMask
}

// hemisphere is the fixed angular discretisation for one sweep, built once
// and shared read-only by every pixel worker. Rings are centred at
// (k+1/2)*dA so the a+-dA/2 bands tile [0, 90] exactly.
type hemisphere struct {
	rings  []ring
	slices []azSlice
}

func newHemisphere(p Params) *hemisphere {
	dA := units.Radians(p.AltitudeInterval)
	dZ := units.Radians(p.AzimuthInterval)

	nRings := int(math.Round(90 / p.AltitudeInterval))
	nSlices := int(math.Round((p.AzimuthEnd - p.AzimuthStart) / p.AzimuthInterval))

	hem := &hemisphere{
		rings:  make([]ring, 0, nRings),
		slices: make([]azSlice, 0, nSlices),
	}
	for k := 0; k < nRings; k++ {
		a := (float64(k) + 0.5) * dA
		hem.rings = append(hem.rings, ring{
			altitude: a,
			sinA:     math.Sin(a),
			cosA:     math.Cos(a),
			weight:   AnnulusWeight(a, dA, dZ),
		})
	}
	for j := 0; j < nSlices; j++ {
		azDeg := units.NormalizeAzimuthDeg(p.AzimuthStart + float64(j)*p.AzimuthInterval)
		az := units.Radians(azDeg)
		hem.slices = append(hem.slices, azSlice{
			azimuth: az,
			cosZ:    math.Cos(az),
			sinZ:    math.Sin(az),
			sectors: sectorsFor(az),
		})
	}
	return hem
}
