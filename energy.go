package impact

import "math"

const (
	magnitudeCap = 10.0 // Richter-like scale cap
)

// KineticEnergy returns the kinetic energy in Joules of a body of the given mass (kg)
// moving at the given velocity (km/s).
// A zero velocity is accepted and returns zero Joules (e.g. a fully cancelled approach).
func KineticEnergy(massKg, velocityKmS float64) (float64, error) {
	if err := checkPositive("KineticEnergy", "mass", massKg); err != nil {
		return 0, err
	}
	if err := checkNonNegative("KineticEnergy", "velocity", velocityKmS); err != nil {
		return 0, err
	}
	v := velocityKmS * 1e3
	e := 0.5 * massKg * v * v
	if math.IsInf(e, 0) {
		return 0, domainErr("KineticEnergy", "energy", e, "overflows")
	}
	return e, nil
}

// MegatonsTNT converts Joules to megatons of TNT.
func MegatonsTNT(joules float64) float64 {
	return joules / JoulesPerMegaton
}

// JoulesFromMegatons is the inverse of MegatonsTNT.
func JoulesFromMegatons(mt float64) float64 {
	return mt * JoulesPerMegaton
}

// CraterDiameter returns the simplified crater diameter in km for an impact of the given
// energy and entry angle (in degrees from the horizontal). A grazing impact (0°) leaves no crater.
func CraterDiameter(joules, angleDeg float64) (float64, error) {
	if err := checkNonNegative("CraterDiameter", "energy", joules); err != nil {
		return 0, err
	}
	if math.IsNaN(angleDeg) || angleDeg < 0 || angleDeg > 180 {
		return 0, domainErr("CraterDiameter", "angle", angleDeg, "must be within [0, 180] degrees")
	}
	efficiency := math.Sin(angleDeg * deg2rad)
	if angleDeg == 180 {
		// sin(π) is not exactly zero in floating point.
		efficiency = 0
	}
	return math.Pow(MegatonsTNT(joules), 0.25) * 0.1 * efficiency, nil
}

// SeismicMagnitude returns the equivalent seismic magnitude of an impact, capped at 10.
// Sub-megaton yields return a negative magnitude which is not floored: callers which
// display it must clamp on their own.
func SeismicMagnitude(joules float64) (float64, error) {
	if err := checkPositive("SeismicMagnitude", "energy", joules); err != nil {
		return 0, err
	}
	return math.Min(0.67*math.Log10(MegatonsTNT(joules))+3.87, magnitudeCap), nil
}
