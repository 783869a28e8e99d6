package svf

import (
	"fmt"
	"math"
)

// Params configures one sweep. Angles are in degrees; distances are in grid
// cells.
type Params struct {
	// Scale converts cells of ray travel into vertical units: a ray that has
	// travelled r cells has risen (r/Scale)*sin(altitude) elevation units.
	Scale float64

	// TraceRadius is the maximum march distance along a ray, in cells.
	// Values below 1 execute no steps at all, so every output is exactly 1.
	TraceRadius float64

	// Azimuth sweep range and step, degrees. The sweep covers
	// [AzimuthStart, AzimuthEnd) in AzimuthInterval steps; the nominal
	// configuration is 0..360.
	AzimuthStart    float64
	AzimuthEnd      float64
	AzimuthInterval float64

	// AltitudeInterval is the ring step in degrees over the fixed 0..90
	// altitude range.
	AltitudeInterval float64
}

// DefaultParams returns the nominal full-hemisphere sweep at 5 degree
// resolution.
func DefaultParams() Params {
	return Params{
		Scale:            1,
		TraceRadius:      100,
		AzimuthStart:     0,
		AzimuthEnd:       360,
		AzimuthInterval:  5,
		AltitudeInterval: 5,
	}
}

// divides reports whether iv evenly divides span, within float tolerance.
func divides(span, iv float64) bool {
	r := math.Mod(span, iv)
	return r < 1e-9 || iv-r < 1e-9
}

// Validate rejects configurations that would leave sector denominators
// inexact or the march ill-defined. Sector totals are only guaranteed
// non-zero when the azimuth interval divides each sector's span and every
// altitude ring contributes.
func (p Params) Validate() error {
	if p.Scale <= 0 {
		return fmt.Errorf("params: scale must be positive, got %g", p.Scale)
	}
	if p.TraceRadius < 0 {
		return fmt.Errorf("params: trace radius must be non-negative, got %g", p.TraceRadius)
	}
	if p.AzimuthInterval <= 0 {
		return fmt.Errorf("params: azimuth interval must be positive, got %g", p.AzimuthInterval)
	}
	if p.AltitudeInterval <= 0 {
		return fmt.Errorf("params: altitude interval must be positive, got %g", p.AltitudeInterval)
	}
	if p.AzimuthEnd <= p.AzimuthStart {
		return fmt.Errorf("params: azimuth range [%g, %g) is empty", p.AzimuthStart, p.AzimuthEnd)
	}
	if !divides(p.AzimuthEnd-p.AzimuthStart, p.AzimuthInterval) {
		return fmt.Errorf("params: azimuth interval %g does not divide range %g",
			p.AzimuthInterval, p.AzimuthEnd-p.AzimuthStart)
	}
	if !divides(90, p.AltitudeInterval) {
		return fmt.Errorf("params: altitude interval %g does not divide 90", p.AltitudeInterval)
	}
	return nil
}
