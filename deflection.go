package impact

import (
	"fmt"
	"math"
	"strings"
)

const (
	baseDeflectionΔv = 0.1 // km/s with one year of lead time
	daysPerYear      = 365.0
)

// Feasibility defines how achievable a deflection is.
type Feasibility uint8

const (
	// FeasibilityLow is for Δv of 5 km/s or more.
	FeasibilityLow Feasibility = iota + 1
	// FeasibilityMedium is for Δv from 1 km/s up to 5 km/s.
	FeasibilityMedium
	// FeasibilityHigh is for Δv under 1 km/s.
	FeasibilityHigh
)

func (f Feasibility) String() string {
	switch f {
	case FeasibilityLow:
		return "low"
	case FeasibilityMedium:
		return "medium"
	case FeasibilityHigh:
		return "high"
	default:
		panic(fmt.Errorf("unknown feasibility %d", uint8(f)))
	}
}

// DeflectionRequirement is the velocity change needed to deflect a body and the energy it takes.
type DeflectionRequirement struct {
	ΔvKmS       float64
	EnergyJ     float64
	Feasibility Feasibility
}

// Deflection returns the Δv (km/s) needed to deflect a body of the given mass when
// leadTimeDays remain before the impact. The required Δv decreases with the square root of the lead time.
func Deflection(massKg, leadTimeDays float64) (DeflectionRequirement, error) {
	if err := checkPositive("Deflection", "mass", massKg); err != nil {
		return DeflectionRequirement{}, err
	}
	if err := checkPositive("Deflection", "lead time", leadTimeDays); err != nil {
		return DeflectionRequirement{}, err
	}
	Δv := baseDeflectionΔv / math.Sqrt(leadTimeDays/daysPerYear)
	energy, err := KineticEnergy(massKg, Δv)
	if err != nil {
		return DeflectionRequirement{}, err
	}
	feas := FeasibilityLow
	if Δv < 1 {
		feas = FeasibilityHigh
	} else if Δv < 5 {
		feas = FeasibilityMedium
	}
	return DeflectionRequirement{Δv, energy, feas}, nil
}

// TechReadiness defines the technology readiness of a deflection method.
type TechReadiness uint8

const (
	// ReadinessLow has never flown.
	ReadinessLow TechReadiness = iota + 1
	// ReadinessMedium has been partially demonstrated.
	ReadinessMedium
	// ReadinessHigh has been demonstrated (e.g. DART).
	ReadinessHigh
)

// Multiplier returns the scoring weight of this readiness level.
func (r TechReadiness) Multiplier() float64 {
	switch r {
	case ReadinessHigh:
		return 1.2
	case ReadinessMedium:
		return 1.0
	default:
		return 0.8
	}
}

func (r TechReadiness) String() string {
	switch r {
	case ReadinessLow:
		return "low"
	case ReadinessMedium:
		return "medium"
	case ReadinessHigh:
		return "high"
	default:
		panic(fmt.Errorf("unknown tech readiness %d", uint8(r)))
	}
}

// DeflectionMethod defines a deflection technique.
type DeflectionMethod uint8

const (
	// Kinetic is a kinetic impactor.
	Kinetic DeflectionMethod = iota + 1
	// Ion is an ion beam shepherd.
	Ion
	// Nuclear is a stand-off nuclear blast.
	Nuclear
	// GravityTractor is a spacecraft hovering near the body.
	GravityTractor
)

// DeflectionMethods lists all the supported methods.
var DeflectionMethods = []DeflectionMethod{Kinetic, Ion, Nuclear, GravityTractor}

// MethodProfile is the static profile of a deflection method.
type MethodProfile struct {
	Name            string
	Description     string
	ΔvEfficiency    float64
	MinLeadTimeDays float64
	Readiness       TechReadiness
}

var methodProfiles = map[DeflectionMethod]MethodProfile{
	Kinetic:        {"Kinetic Impactor", "Direct collision to change velocity", 0.7, 180, ReadinessHigh},
	Ion:            {"Ion Beam Thruster", "Slow continuous push", 0.9, 730, ReadinessMedium},
	Nuclear:        {"Nuclear Blast", "High energy deflection", 1.5, 90, ReadinessLow},
	GravityTractor: {"Gravity Tractor", "Gravitational pull deflection", 0.3, 1460, ReadinessMedium},
}

// Profile returns the static profile of this method.
func (m DeflectionMethod) Profile() MethodProfile {
	p, ok := methodProfiles[m]
	if !ok {
		panic(fmt.Errorf("unknown deflection method %d", uint8(m)))
	}
	return p
}

func (m DeflectionMethod) String() string {
	switch m {
	case Kinetic:
		return "kinetic"
	case Ion:
		return "ion"
	case Nuclear:
		return "nuclear"
	case GravityTractor:
		return "gravity"
	default:
		panic(fmt.Errorf("unknown deflection method %d", uint8(m)))
	}
}

// DeflectionMethodFromString returns the method from its name.
func DeflectionMethodFromString(name string) (DeflectionMethod, error) {
	switch strings.ToLower(name) {
	case "kinetic":
		return Kinetic, nil
	case "ion":
		return Ion, nil
	case "nuclear":
		return Nuclear, nil
	case "gravity", "gravitytractor", "gravity-tractor":
		return GravityTractor, nil
	default:
		return 0, fmt.Errorf("undefined deflection method '%s'", name)
	}
}

// MethodScore is the viability of a method for a given lead time.
type MethodScore struct {
	Viable bool
	Score  float64
}

// Score returns whether this method is viable with the given lead time and its score.
// A method which needs more lead time than available always scores zero.
func (m DeflectionMethod) Score(leadTimeDays float64) MethodScore {
	p := m.Profile()
	if !(leadTimeDays >= p.MinLeadTimeDays) {
		return MethodScore{}
	}
	return MethodScore{true, p.ΔvEfficiency * p.Readiness.Multiplier()}
}

// ScoreMethods scores all the deflection methods for the given lead time.
func ScoreMethods(leadTimeDays float64) map[DeflectionMethod]MethodScore {
	scores := make(map[DeflectionMethod]MethodScore, len(DeflectionMethods))
	for _, m := range DeflectionMethods {
		scores[m] = m.Score(leadTimeDays)
	}
	return scores
}

// BestMethod returns the highest scoring viable method, if any.
func BestMethod(leadTimeDays float64) (best DeflectionMethod, ok bool) {
	var top float64
	for _, m := range DeflectionMethods {
		if s := m.Score(leadTimeDays); s.Viable && s.Score > top {
			best, top, ok = m, s.Score, true
		}
	}
	return
}
