package impact

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	deg2rad = math.Pi / 180
	// JoulesPerMegaton is the energy released by one megaton of TNT.
	JoulesPerMegaton = 4.184e9 * 1e6
)

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, 2*math.Pi)
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}

// norm returns the norm of a given vector which is supposed to be 3x1.
func norm(v []float64) float64 {
	return floats.Norm(v, 2)
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// round2 rounds to two decimals, as map coordinates are displayed.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
