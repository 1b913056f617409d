package impact

import (
	"fmt"
	"math"
)

const (
	// DefaultPopulationDensity is used when a Location does not specify one (people per km²).
	DefaultPopulationDensity = 50.0
	maxImpactAngle           = 90.0
)

// TsunamiRisk defines the tsunami risk tier of an impact.
type TsunamiRisk uint8

const (
	// TsunamiNone is returned for land impacts.
	TsunamiNone TsunamiRisk = iota
	// TsunamiLow is an ocean impact with waves under 5 m.
	TsunamiLow
	// TsunamiMedium is an ocean impact with waves from 5 m up to 10 m.
	TsunamiMedium
	// TsunamiHigh is an ocean impact with waves of 10 m or more.
	TsunamiHigh
)

func (r TsunamiRisk) String() string {
	switch r {
	case TsunamiNone:
		return "none"
	case TsunamiLow:
		return "low"
	case TsunamiMedium:
		return "medium"
	case TsunamiHigh:
		return "high"
	default:
		panic(fmt.Errorf("unknown tsunami risk %d", uint8(r)))
	}
}

// TsunamiEstimate is the tsunami risk and wave height in meters.
type TsunamiEstimate struct {
	Risk        TsunamiRisk
	WaveHeightM float64
}

// Areas are the affected areas in km², from the innermost to the outermost ring.
type Areas struct {
	Primary, Secondary, Tertiary float64
}

// Casualties is the simplified casualty estimate per damage ring.
type Casualties struct {
	Immediate, Secondary, Affected int64
}

// Location describes where the body lands.
// A non-positive PopulationDensity means unspecified.
type Location struct {
	IsOcean           bool
	PopulationDensity float64
}

// density returns the population density, or the default when unspecified.
func (l Location) density() float64 {
	if l.PopulationDensity > 0 {
		return l.PopulationDensity
	}
	return DefaultPopulationDensity
}

// Body is an impacting body. It is immutable once built with NewBody.
type Body struct {
	MassKg      float64
	VelocityKmS float64
	DiameterKm  float64
	AngleDeg    float64 // Entry angle from the horizontal
}

// NewBody returns a validated impacting body.
func NewBody(massKg, velocityKmS, diameterKm, angleDeg float64) (Body, error) {
	const op = "NewBody"
	if err := checkPositive(op, "mass", massKg); err != nil {
		return Body{}, err
	}
	if err := checkPositive(op, "velocity", velocityKmS); err != nil {
		return Body{}, err
	}
	if err := checkPositive(op, "diameter", diameterKm); err != nil {
		return Body{}, err
	}
	if math.IsNaN(angleDeg) || angleDeg < 0 || angleDeg > maxImpactAngle {
		return Body{}, domainErr(op, "angle", angleDeg, "must be within [0, 90] degrees")
	}
	return Body{massKg, velocityKmS, diameterKm, angleDeg}, nil
}

func (b Body) String() string {
	return fmt.Sprintf("m=%.3e kg v=%.2f km/s d=%.3f km θ=%.1f°", b.MassKg, b.VelocityKmS, b.DiameterKm, b.AngleDeg)
}

// Result gathers all the effects of an impact.
type Result struct {
	EnergyJ     float64
	TNTMegatons float64
	CraterKm    float64
	Magnitude   float64
	Tsunami     TsunamiEstimate
	Areas       Areas
	Casualties  Casualties
}

func (r Result) String() string {
	return fmt.Sprintf("E=%.3e J (%.2f Mt) crater=%.3f km M=%.2f tsunami=%s (%.1f m)", r.EnergyJ, r.TNTMegatons, r.CraterKm, r.Magnitude, r.Tsunami.Risk, r.Tsunami.WaveHeightM)
}

// Tsunami returns the tsunami estimate of an impact. Land impacts never raise a tsunami.
func Tsunami(isOcean bool, joules float64) (TsunamiEstimate, error) {
	if err := checkNonNegative("Tsunami", "energy", joules); err != nil {
		return TsunamiEstimate{}, err
	}
	if !isOcean {
		return TsunamiEstimate{TsunamiNone, 0}, nil
	}
	height := math.Pow(MegatonsTNT(joules), 0.2) * 2
	risk := TsunamiLow
	if height >= 10 {
		risk = TsunamiHigh
	} else if height >= 5 {
		risk = TsunamiMedium
	}
	return TsunamiEstimate{risk, height}, nil
}

// AffectedAreas returns the three damage rings given the crater diameter (km) and the seismic magnitude.
// The primary ring covers the crater and its immediate ejecta, the secondary adds the seismic
// and thermal effects and the tertiary the atmospheric ones.
func AffectedAreas(craterKm, magnitude float64) Areas {
	r1 := 2 * craterKm
	r2 := r1 + 5*magnitude
	r3 := r2 + 10*magnitude
	return Areas{math.Pi * r1 * r1, math.Pi * r2 * r2, math.Pi * r3 * r3}
}

// EstimateCasualties returns the casualties per ring. A non-positive density uses DefaultPopulationDensity.
// Counts saturate at math.MaxInt64.
func EstimateCasualties(areas Areas, density float64) Casualties {
	d := Location{PopulationDensity: density}.density()
	return Casualties{
		Immediate: headcount(areas.Primary * d * 0.9),
		Secondary: headcount(areas.Secondary * d * 0.3),
		Affected:  headcount(areas.Tertiary * d * 0.1),
	}
}

// headcount floors a number of people, saturating at math.MaxInt64.
func headcount(people float64) int64 {
	switch {
	case math.IsNaN(people) || people <= 0:
		return 0
	case people >= math.MaxInt64:
		return math.MaxInt64
	default:
		return int64(math.Floor(people))
	}
}

// Assess computes every effect of the impact of b at loc.
func Assess(b Body, loc Location) (Result, error) {
	var rslt Result
	var err error
	if rslt.EnergyJ, err = KineticEnergy(b.MassKg, b.VelocityKmS); err != nil {
		return Result{}, err
	}
	rslt.TNTMegatons = MegatonsTNT(rslt.EnergyJ)
	if rslt.CraterKm, err = CraterDiameter(rslt.EnergyJ, b.AngleDeg); err != nil {
		return Result{}, err
	}
	if rslt.Magnitude, err = SeismicMagnitude(rslt.EnergyJ); err != nil {
		return Result{}, err
	}
	if rslt.Tsunami, err = Tsunami(loc.IsOcean, rslt.EnergyJ); err != nil {
		return Result{}, err
	}
	rslt.Areas = AffectedAreas(rslt.CraterKm, rslt.Magnitude)
	rslt.Casualties = EstimateCasualties(rslt.Areas, loc.density())
	return rslt, nil
}
