package impact

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

const (
	// SceneScale is the number of scene units per astronomical unit.
	SceneScale = 3.0
	// LegacyAnomalyRate is the angular rate (rad per time unit) of the display orbit.
	LegacyAnomalyRate = 0.5
	// DefaultPathSamples is the number of segments of an orbit polyline.
	DefaultPathSamples = 100

	deflectedEccentricityFactor = 1.3
	deflectedPathOffset         = 0.5 // scene units above the orbital plane
	keplerε                     = 1e-12
	keplerMaxIter               = 50
)

// Position3 is a position in scene units.
type Position3 struct {
	X, Y, Z float64
}

// Vector returns the position as a 3x1 slice.
func (p Position3) Vector() []float64 {
	return []float64{p.X, p.Y, p.Z}
}

// Norm returns the distance to the scene origin.
func (p Position3) Norm() float64 {
	return norm(p.Vector())
}

// Scale returns the position multiplied by s.
func (p Position3) Scale(s float64) Position3 {
	return Position3{p.X * s, p.Y * s, p.Z * s}
}

func (p Position3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", p.X, p.Y, p.Z)
}

// AnomalyModel maps a time onto the true anomaly of an orbit.
type AnomalyModel interface {
	// TrueAnomaly returns the true anomaly in radians at time t.
	TrueAnomaly(t float64, o OrbitState) float64
}

// LinearAnomaly advances the true anomaly uniformly with time. This is not Keplerian
// motion: the shape of the orbit is right but the body does not speed up at periapsis.
// The display orbit has always been animated this way.
type LinearAnomaly struct {
	Rate float64 // rad per time unit
}

// TrueAnomaly implements the AnomalyModel interface.
// As math.Mod, the result has the sign of t*Rate+Phase.
func (m LinearAnomaly) TrueAnomaly(t float64, o OrbitState) float64 {
	return math.Mod(t*m.Rate+o.Phase, 2*math.Pi)
}

// KeplerAnomaly advances the mean anomaly uniformly with time and solves Kepler's
// equation M = E - e sin E by Newton iteration.
type KeplerAnomaly struct {
	Rate float64 // mean motion, in rad per time unit
}

// TrueAnomaly implements the AnomalyModel interface. The returned angle is within [0, 2π).
func (m KeplerAnomaly) TrueAnomaly(t float64, o OrbitState) float64 {
	e := o.Eccentricity
	M := math.Mod(t*m.Rate+o.Phase, 2*math.Pi)
	if M < 0 {
		M += 2 * math.Pi
	}
	E := EccentricAnomaly(M, e)
	sinE2, cosE2 := math.Sincos(E / 2)
	ν := 2 * math.Atan2(math.Sqrt(1+e)*sinE2, math.Sqrt(1-e)*cosE2)
	if ν < 0 {
		ν += 2 * math.Pi
	}
	return ν
}

// EccentricAnomaly solves Kepler's equation for the eccentric anomaly given the mean
// anomaly M (rad) and an elliptical eccentricity.
func EccentricAnomaly(M, e float64) float64 {
	E := M
	if e > 0.8 {
		E = math.Pi
	}
	for i := 0; i < keplerMaxIter; i++ {
		sinE, cosE := math.Sincos(E)
		δ := (E - e*sinE - M) / (1 - e*cosE)
		E -= δ
		if scalar.EqualWithinAbs(δ, 0, keplerε) {
			break
		}
	}
	return E
}

// LegacyAnomaly returns the anomaly model used by OrbitalPosition.
func LegacyAnomaly() AnomalyModel {
	return LinearAnomaly{Rate: LegacyAnomalyRate}
}

// OrbitState is a fixed, non-precessing conic around the Sun.
type OrbitState struct {
	SemiMajorAxisAU float64
	Eccentricity    float64
	Phase           float64 // rad
}

// NewOrbitState returns a validated orbit. Only elliptical orbits are supported.
func NewOrbitState(aAU, e, phase float64) (OrbitState, error) {
	o := OrbitState{aAU, e, phase}
	if err := o.validate("NewOrbitState"); err != nil {
		return OrbitState{}, err
	}
	return o, nil
}

func (o OrbitState) validate(op string) error {
	if err := checkPositive(op, "semi major axis", o.SemiMajorAxisAU); err != nil {
		return err
	}
	if math.IsNaN(o.Eccentricity) || o.Eccentricity < 0 || o.Eccentricity >= 1 {
		return domainErr(op, "eccentricity", o.Eccentricity, "must be within [0, 1)")
	}
	if math.IsNaN(o.Phase) || math.IsInf(o.Phase, 0) {
		return domainErr(op, "phase", o.Phase, "must be finite")
	}
	return nil
}

// SemiParameter returns the semi parameter in AU.
func (o OrbitState) SemiParameter() float64 {
	return o.SemiMajorAxisAU * (1 - o.Eccentricity*o.Eccentricity)
}

// Apoapsis returns the apoapsis in AU.
func (o OrbitState) Apoapsis() float64 {
	return o.SemiMajorAxisAU * (1 + o.Eccentricity)
}

// Periapsis returns the periapsis in AU.
func (o OrbitState) Periapsis() float64 {
	return o.SemiMajorAxisAU * (1 - o.Eccentricity)
}

// Radius returns the heliocentric distance in AU at the true anomaly ν.
func (o OrbitState) Radius(ν float64) float64 {
	return o.SemiParameter() / (1 + o.Eccentricity*math.Cos(ν))
}

// PositionAtAnomaly returns the scene position at the true anomaly ν, y being the height
// above the orbital plane.
func (o OrbitState) PositionAtAnomaly(ν, y float64) Position3 {
	r := o.Radius(ν) * SceneScale
	sinν, cosν := math.Sincos(ν)
	return Position3{r * cosν, y, r * sinν}
}

// PositionAt returns the scene position at time t using the provided anomaly model,
// or LegacyAnomaly if nil.
func (o OrbitState) PositionAt(t float64, m AnomalyModel) Position3 {
	if m == nil {
		m = LegacyAnomaly()
	}
	return o.PositionAtAnomaly(m.TrueAnomaly(t, o), 0)
}

// Period returns the orbital period in years (Kepler's third law around one solar mass).
func (o OrbitState) Period() float64 {
	return math.Sqrt(math.Pow(o.SemiMajorAxisAU, 3))
}

// Path samples the orbit in n equal anomaly steps. The returned polyline is closed: it has
// n+1 points and the last one is the first one.
func (o OrbitState) Path(n int) (Path, error) {
	if err := o.validate("Path"); err != nil {
		return nil, err
	}
	return o.sample(n, 0)
}

// DeflectedPath samples the orbit as shown once deflected: the eccentricity is scaled by 1.3
// and the path is drawn slightly above the orbital plane. This is a visual cue, not a
// recomputed orbit.
func (o OrbitState) DeflectedPath(n int) (Path, error) {
	if err := o.validate("DeflectedPath"); err != nil {
		return nil, err
	}
	d := o
	d.Eccentricity *= deflectedEccentricityFactor
	if d.Eccentricity >= 1 {
		return nil, domainErr("DeflectedPath", "eccentricity", o.Eccentricity, fmt.Sprintf("deflected eccentricity %.4f is not elliptical", d.Eccentricity))
	}
	return d.sample(n, deflectedPathOffset)
}

func (o OrbitState) sample(n int, y float64) (Path, error) {
	if n < 1 {
		return nil, fmt.Errorf("path needs at least one segment, got %d", n)
	}
	angles := floats.Span(make([]float64, n+1), 0, 2*math.Pi)
	path := make(Path, len(angles))
	for i, ν := range angles {
		path[i] = o.PositionAtAnomaly(ν, y)
	}
	return path, nil
}

// String implements the stringer interface.
func (o OrbitState) String() string {
	return fmt.Sprintf("a=%.3f AU e=%.4f φ=%.3f", o.SemiMajorAxisAU, o.Eccentricity, Rad2deg(o.Phase))
}

// Path is an orbit polyline.
type Path []Position3

// Dense returns the path as a Nx3 matrix.
func (p Path) Dense() *mat.Dense {
	if len(p) == 0 {
		return nil
	}
	data := make([]float64, 0, 3*len(p))
	for _, pt := range p {
		data = append(data, pt.X, pt.Y, pt.Z)
	}
	return mat.NewDense(len(p), 3, data)
}

// OrbitalPosition returns the scene position at time t of a body on the orbit of
// semi major axis a (AU), eccentricity e and phase (rad), with the legacy linear anomaly.
func OrbitalPosition(t, aAU, e, phase float64) (Position3, error) {
	o := OrbitState{aAU, e, phase}
	if err := o.validate("OrbitalPosition"); err != nil {
		return Position3{}, err
	}
	return o.PositionAt(t, LegacyAnomaly()), nil
}

// OrbitalPeriod returns the orbital period in years of an orbit with semi major axis a (AU).
func OrbitalPeriod(aAU float64) (float64, error) {
	if err := checkPositive("OrbitalPeriod", "semi major axis", aAU); err != nil {
		return 0, err
	}
	return OrbitState{SemiMajorAxisAU: aAU}.Period(), nil
}
