package svf

import (
	"math"
	"testing"

	"github.com/banshee-data/skyview.report/internal/units"
)

func TestAnnulusWeightAtHorizon(t *testing.T) {
	// The zone between -5 and +5 degrees is symmetric about the horizon, so
	// the closed-form cos difference cancels exactly.
	got := AnnulusWeight(0, units.Radians(10), units.Radians(10))
	if math.Abs(got) > 1e-12 {
		t.Fatalf("AnnulusWeight(0, 10deg, 10deg) = %g, want 0", got)
	}
}

func TestAnnulusWeightRegression(t *testing.T) {
	// Hand evaluation at a=30deg, dA=dZ=10deg:
	// 0.1745329 * (cos 25deg - cos 35deg) * cos 30deg = 0.0131736
	got := AnnulusWeight(units.Radians(30), units.Radians(10), units.Radians(10))
	if math.Abs(got-0.0131736) > 1e-6 {
		t.Fatalf("AnnulusWeight(30deg, 10deg, 10deg) = %.7f, want 0.0131736", got)
	}
}

func TestRingBandsTileHemisphere(t *testing.T) {
	// Rings are centred at (k+1/2)*dA, so the raw zone terms telescope to
	// cos(0) - cos(90deg) = 1 regardless of the interval.
	for _, ivDeg := range []float64{5, 10, 30} {
		p := DefaultParams()
		p.AltitudeInterval = ivDeg
		hem := newHemisphere(p)

		dA := units.Radians(ivDeg)
		sum := 0.0
		for _, rg := range hem.rings {
			sum += math.Cos(rg.altitude-dA/2) - math.Cos(rg.altitude+dA/2)
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("interval %gdeg: zone terms sum to %v, want 1", ivDeg, sum)
		}
		if want := int(90 / ivDeg); len(hem.rings) != want {
			t.Errorf("interval %gdeg: %d rings, want %d", ivDeg, len(hem.rings), want)
		}
	}
}

func TestHemisphereSliceLayout(t *testing.T) {
	p := DefaultParams()
	p.AzimuthInterval = 5
	hem := newHemisphere(p)

	if len(hem.slices) != 72 {
		t.Fatalf("got %d slices for a 5deg full sweep, want 72", len(hem.slices))
	}
	for j, sl := range hem.slices {
		want := units.Radians(float64(j) * 5)
		if math.Abs(sl.azimuth-want) > 1e-9 {
			t.Fatalf("slice %d azimuth = %v, want %v", j, sl.azimuth, want)
		}
	}
}

func TestRingWeightSharedAcrossSlices(t *testing.T) {
	p := DefaultParams()
	hem := newHemisphere(p)
	for _, rg := range hem.rings {
		want := AnnulusWeight(rg.altitude, units.Radians(p.AltitudeInterval), units.Radians(p.AzimuthInterval))
		if rg.weight != want {
			t.Fatalf("ring at %v has weight %v, want %v", rg.altitude, rg.weight, want)
		}
		if rg.weight <= 0 {
			t.Fatalf("ring at %v has non-positive weight %v", rg.altitude, rg.weight)
		}
	}
}
