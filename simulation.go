package impact

import (
	"fmt"
	"math"

	kitlog "github.com/go-kit/log"
)

const (
	// SceneToKm converts scene distances to kilometers as shown on the dashboard.
	SceneToKm = 150000.0
	// EarthSceneRadius is the radius of the Earth in scene units.
	EarthSceneRadius = 2.0
	// ClockRate is the simulation time elapsed per second of wall clock.
	ClockRate = 0.5

	deflectionΔvRatio = 0.05     // fraction of the approach velocity which deflects the body
	safeDistanceKm    = 800000.0 // beyond this distance the body is considered deflected
	secondsPerDay     = 86400.0
)

// Status is the mission status.
type Status uint8

const (
	// Monitoring is the status before the first frame.
	Monitoring Status = iota
	// Success means the body is deflected.
	Success
	// Impact means the body is on a collision course.
	Impact
)

func (s Status) String() string {
	switch s {
	case Monitoring:
		return "monitoring"
	case Success:
		return "success"
	case Impact:
		return "impact"
	default:
		panic(fmt.Errorf("unknown status %d", uint8(s)))
	}
}

// Params are the user tunable parameters of a simulation.
type Params struct {
	DiameterKm  float64
	MassKg      float64
	VelocityKmS float64
	AngleDeg    float64
	Method      DeflectionMethod
	ΔvKmS       float64
	Orbit       OrbitState
	Location    Location
}

// DefaultParams returns the parameters of a one kilometer wide body at 20 km/s.
func DefaultParams() Params {
	return Params{
		DiameterKm:  1.0,
		MassKg:      1.5e12,
		VelocityKmS: 20,
		AngleDeg:    45,
		Method:      Kinetic,
		ΔvKmS:       0,
		Orbit:       OrbitState{defaultSemiMajorAU, defaultEccentricity, 0},
	}
}

// Body returns the impacting body of these parameters, before any deflection.
func (p Params) Body() (Body, error) {
	return NewBody(p.MassKg, p.VelocityKmS, p.DiameterKm, p.AngleDeg)
}

// Validate returns an error if the parameters cannot be simulated.
func (p Params) Validate() error {
	if _, err := p.Body(); err != nil {
		return err
	}
	if err := checkNonNegative("Params", "Δv", p.ΔvKmS); err != nil {
		return err
	}
	return p.Orbit.validate("Params")
}

// WorldSize returns the displayed size of a body of the given diameter, in scene units:
// 10 km per unit, within [0.1, 2].
func WorldSize(diameterKm float64) float64 {
	return clamp(diameterKm/10, 0.1, 2.0)
}

// Telemetry is the dashboard state of a frame.
type Telemetry struct {
	DistanceKm        float64
	EffectiveVelocity float64 // km/s, after deflection
	TimeToImpactDays  float64
	TNTMegatons       float64
	CraterKm          float64
	Magnitude         float64
	Position          Position3 // km
	Deflected         bool
}

// Frame is the state of the simulation after a tick.
type Frame struct {
	Time      float64
	Position  Position3 // scene units
	Status    Status
	Telemetry Telemetry
	Collision bool      // true on the frame where the body hits the Earth
	ImpactAt  Position3 // impact point on the Earth surface, in scene units
}

// Simulation animates a body along its display orbit. It holds all the state which the
// frame loop needs: callers only drive it with Tick.
// A Simulation is not safe for concurrent use.
type Simulation struct {
	params   Params
	anomaly  AnomalyModel
	time     float64
	playing  bool
	impacted bool
	status   Status
	logger   kitlog.Logger
}

// NewSimulation returns a new playing simulation. The anomaly model may be nil to use the legacy
// linear anomaly and the logger may be nil to discard logs.
func NewSimulation(p Params, anomaly AnomalyModel, logger kitlog.Logger) (*Simulation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if anomaly == nil {
		anomaly = LegacyAnomaly()
	}
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Simulation{params: p, anomaly: anomaly, playing: true, status: Monitoring, logger: kitlog.With(logger, "subsys", "sim")}, nil
}

// Params returns the current parameters.
func (s *Simulation) Params() Params {
	return s.params
}

// Time returns the elapsed simulation time.
func (s *Simulation) Time() float64 {
	return s.time
}

// Status returns the status as of the last tick.
func (s *Simulation) Status() Status {
	return s.status
}

// Playing returns whether ticks advance the time.
func (s *Simulation) Playing() bool {
	return s.playing
}

// Pause stops the clock.
func (s *Simulation) Pause() {
	s.playing = false
}

// Resume restarts the clock.
func (s *Simulation) Resume() {
	s.playing = true
}

// Reset rewinds the simulation, cancels the deflection and plays again.
func (s *Simulation) Reset() {
	s.time = 0
	s.params.ΔvKmS = 0
	s.impacted = false
	s.status = Monitoring
	s.playing = true
	s.logger.Log("level", "info", "message", "reset")
}

// SetParams replaces the parameters, keeping the clock.
func (s *Simulation) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p
	return nil
}

// SetDeflection sets the deflection method and Δv (km/s).
func (s *Simulation) SetDeflection(m DeflectionMethod, ΔvKmS float64) error {
	p := s.params
	p.Method = m
	p.ΔvKmS = ΔvKmS
	return s.SetParams(p)
}

// SetAsteroid loads the physical parameters of an asteroid and rewinds the simulation.
// The orbit phase is kept.
func (s *Simulation) SetAsteroid(a Asteroid) error {
	p := s.params
	p.DiameterKm = a.DiameterKm
	p.MassKg = a.MassKg
	p.VelocityKmS = a.VelocityKmS
	if a.SemiMajorAxisAU > 0 {
		p.Orbit = OrbitState{a.SemiMajorAxisAU, a.Eccentricity, p.Orbit.Phase}
	}
	if err := s.SetParams(p); err != nil {
		return fmt.Errorf("cannot simulate %s: %w", a.Name, err)
	}
	s.Reset()
	s.logger.Log("level", "info", "asteroid", a.Name, "orbit", p.Orbit)
	return nil
}

// Tick advances the clock by deltaSeconds of wall clock (if playing) and returns the frame.
func (s *Simulation) Tick(deltaSeconds float64) (Frame, error) {
	if err := checkNonNegative("Tick", "delta", deltaSeconds); err != nil {
		return Frame{}, err
	}
	if s.playing {
		s.time += deltaSeconds * ClockRate
	}
	pos := s.params.Orbit.PositionAt(s.time, s.anomaly)
	tlm, err := s.telemetry(pos)
	if err != nil {
		return Frame{}, err
	}
	frame := Frame{Time: s.time, Position: pos, Telemetry: tlm, Status: Impact}
	if tlm.Deflected {
		frame.Status = Success
	}
	if frame.Status != s.status {
		s.logger.Log("level", "notice", "time", s.time, "status", frame.Status, "distance(km)", tlm.DistanceKm)
		s.status = frame.Status
	}
	// Collision when the body touches the Earth globe.
	r := pos.Norm()
	if !tlm.Deflected && !s.impacted && r <= EarthSceneRadius+WorldSize(s.params.DiameterKm) {
		s.impacted = true
		frame.Collision = true
		if r > 0 {
			frame.ImpactAt = pos.Scale(EarthSceneRadius / r)
		}
		s.logger.Log("level", "critical", "time", s.time, "impact", frame.ImpactAt, "energy(Mt)", tlm.TNTMegatons)
	}
	return frame, nil
}

func (s *Simulation) telemetry(pos Position3) (Telemetry, error) {
	p := s.params
	tlm := Telemetry{
		DistanceKm:        pos.Norm() * SceneToKm,
		EffectiveVelocity: math.Max(0, p.VelocityKmS-p.ΔvKmS),
		Position:          pos.Scale(SceneToKm),
	}
	tlm.TimeToImpactDays = tlm.DistanceKm / p.VelocityKmS / secondsPerDay
	tlm.Deflected = p.ΔvKmS >= p.VelocityKmS*deflectionΔvRatio || tlm.DistanceKm > safeDistanceKm
	if tlm.EffectiveVelocity == 0 {
		// Fully cancelled: nothing hits.
		return tlm, nil
	}
	energy, err := KineticEnergy(p.MassKg, tlm.EffectiveVelocity)
	if err != nil {
		return Telemetry{}, err
	}
	tlm.TNTMegatons = MegatonsTNT(energy)
	if tlm.CraterKm, err = CraterDiameter(energy, p.AngleDeg); err != nil {
		return Telemetry{}, err
	}
	if tlm.Magnitude, err = SeismicMagnitude(energy); err != nil {
		return Telemetry{}, err
	}
	return tlm, nil
}

// Assess returns the full effects of the impact with the current parameters and deflection.
func (s *Simulation) Assess() (Result, error) {
	p := s.params
	v := math.Max(0, p.VelocityKmS-p.ΔvKmS)
	if v == 0 {
		return Result{}, domainErr("Assess", "effective velocity", v, "body is fully deflected")
	}
	b, err := NewBody(p.MassKg, v, p.DiameterKm, p.AngleDeg)
	if err != nil {
		return Result{}, err
	}
	return Assess(b, p.Location)
}
