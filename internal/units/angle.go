// Package units holds small conversion helpers shared across the pipeline.
package units

import "math"

const degreesPerRadian = 180.0 / math.Pi

// Radians converts an angle in degrees to radians.
func Radians(deg float64) float64 {
	return deg / degreesPerRadian
}

// Degrees converts an angle in radians to degrees.
func Degrees(rad float64) float64 {
	return rad * degreesPerRadian
}

// NormalizeAzimuthDeg wraps an azimuth in degrees into [0, 360).
func NormalizeAzimuthDeg(deg float64) float64 {
	a := math.Mod(deg, 360.0)
	if a < 0 {
		a += 360.0
	}
	return a
}
