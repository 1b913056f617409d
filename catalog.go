package impact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/soniakeys/meeus/v3/julian"
)

const (
	// MaxCatalogSize is the maximum number of asteroids kept from NeoWs documents.
	MaxCatalogSize = 30
	// AsteroidDensity is the assumed bulk density in kg/m³.
	AsteroidDensity = 2000.0

	closeApproachFormat = "2006-01-02"
	defaultDiameterKm   = 1.0
	defaultVelocityKmS  = 20.0
	defaultAbsoluteMag  = 20.0
	defaultMissKm       = 500000.0
	// NeoWs does not provide orbital elements in the feed, these are display placeholders.
	defaultSemiMajorAU  = 1.5
	defaultEccentricity = 0.2
	defaultInclination  = 15.0
)

// DefaultImpactSite is used when no asteroid is selected.
var DefaultImpactSite = Coord{LatDeg: 20, LngDeg: -40}

// Asteroid is a near Earth object as used by the simulation.
type Asteroid struct {
	ID                string
	Name              string
	DiameterKm        float64
	MassKg            float64
	VelocityKmS       float64
	AbsoluteMagnitude float64
	Hazardous         bool
	MissDistanceKm    float64
	CloseApproach     time.Time // Zero if unknown
	SemiMajorAxisAU   float64
	Eccentricity      float64
	InclinationDeg    float64
}

func (a Asteroid) String() string {
	return fmt.Sprintf("%s [%s] d=%.2f km v=%.2f km/s", a.Name, a.ID, a.DiameterKm, a.VelocityKmS)
}

// Body returns the impacting body of this asteroid for the given entry angle.
func (a Asteroid) Body(angleDeg float64) (Body, error) {
	return NewBody(a.MassKg, a.VelocityKmS, a.DiameterKm, angleDeg)
}

// Orbit returns the display orbit of this asteroid.
func (a Asteroid) Orbit() (OrbitState, error) {
	return NewOrbitState(a.SemiMajorAxisAU, a.Eccentricity, 0)
}

// LeadTimeDays returns the number of days from the provided date until the close approach.
func (a Asteroid) LeadTimeDays(from time.Time) (float64, error) {
	if a.CloseApproach.IsZero() {
		return 0, fmt.Errorf("no close approach date for %s", a.Name)
	}
	return julian.TimeToJD(a.CloseApproach.UTC()) - julian.TimeToJD(from.UTC()), nil
}

// ImpactSite returns the deterministic map location associated with this asteroid.
func (a Asteroid) ImpactSite() Coord {
	base := float64(leadingInt(a.ID)) + math.Round(a.DiameterKm*100)
	return Coord{LatDeg: round2(math.Sin(base) * 60), LngDeg: round2(math.Cos(base) * 180)}
}

// leadingInt parses the leading decimal digits of s, or returns 0.
func leadingInt(s string) int64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// EstimateMass returns the mass in kg of a spherical body of the given diameter (km) at AsteroidDensity.
func EstimateMass(diameterKm float64) float64 {
	radiusM := diameterKm * 500
	return 4. / 3. * math.Pi * math.Pow(radiusM, 3) * AsteroidDensity
}

/* NeoWs document definitions */

type neoDocument struct {
	ID               string          `json:"id"`
	NearEarthObjects json.RawMessage `json:"near_earth_objects"`
}

type neoObject struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Designation        string  `json:"designation"`
	AbsoluteMagnitudeH float64 `json:"absolute_magnitude_h"`
	EstimatedDiameter  struct {
		Kilometers struct {
			Min float64 `json:"estimated_diameter_min"`
			Max float64 `json:"estimated_diameter_max"`
		} `json:"kilometers"`
	} `json:"estimated_diameter"`
	Hazardous     bool `json:"is_potentially_hazardous_asteroid"`
	CloseApproach []struct {
		Date             string `json:"close_approach_date"`
		RelativeVelocity struct {
			KmPerS string `json:"kilometers_per_second"`
		} `json:"relative_velocity"`
		MissDistance struct {
			Km string `json:"kilometers"`
		} `json:"miss_distance"`
	} `json:"close_approach_data"`
}

func (n neoObject) asteroid() Asteroid {
	a := Asteroid{
		ID:                n.ID,
		Name:              n.Name,
		DiameterKm:        n.EstimatedDiameter.Kilometers.Max,
		VelocityKmS:       defaultVelocityKmS,
		AbsoluteMagnitude: n.AbsoluteMagnitudeH,
		Hazardous:         n.Hazardous,
		MissDistanceKm:    defaultMissKm,
		SemiMajorAxisAU:   defaultSemiMajorAU,
		Eccentricity:      defaultEccentricity,
		InclinationDeg:    defaultInclination,
	}
	if a.Name == "" {
		a.Name = n.Designation
	}
	if a.Name == "" {
		a.Name = "Asteroid " + n.ID
	}
	if a.DiameterKm <= 0 {
		a.DiameterKm = defaultDiameterKm
	}
	if a.AbsoluteMagnitude == 0 {
		a.AbsoluteMagnitude = defaultAbsoluteMag
	}
	a.MassKg = EstimateMass(a.DiameterKm)
	if len(n.CloseApproach) > 0 {
		ca := n.CloseApproach[0]
		if v, err := strconv.ParseFloat(ca.RelativeVelocity.KmPerS, 64); err == nil {
			a.VelocityKmS = v
		}
		if d, err := strconv.ParseFloat(ca.MissDistance.Km, 64); err == nil {
			a.MissDistanceKm = d
		}
		if dt, err := time.Parse(closeApproachFormat, ca.Date); err == nil {
			a.CloseApproach = dt
		}
	}
	return a
}

// ParseNeoWs reads a NASA NeoWs document: a feed (objects grouped by date), a browse
// page (list of objects) or the lookup of a single object.
// Feed dates are read in chronological order.
func ParseNeoWs(r io.Reader) ([]Asteroid, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc neoDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid NeoWs document: %w", err)
	}
	var objects []neoObject
	switch neo := bytes.TrimSpace(doc.NearEarthObjects); {
	case len(neo) == 0 || bytes.Equal(neo, []byte("null")):
		if doc.ID == "" {
			return nil, errors.New("NeoWs document has neither near_earth_objects nor id")
		}
		var single neoObject
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("invalid NeoWs object: %w", err)
		}
		objects = append(objects, single)
	case neo[0] == '{':
		byDate := make(map[string][]neoObject)
		if err := json.Unmarshal(neo, &byDate); err != nil {
			return nil, fmt.Errorf("invalid NeoWs feed: %w", err)
		}
		dates := make([]string, 0, len(byDate))
		for date := range byDate {
			dates = append(dates, date)
		}
		sort.Strings(dates)
		for _, date := range dates {
			objects = append(objects, byDate[date]...)
		}
	case neo[0] == '[':
		if err := json.Unmarshal(neo, &objects); err != nil {
			return nil, fmt.Errorf("invalid NeoWs browse page: %w", err)
		}
	default:
		return nil, errors.New("unexpected near_earth_objects value")
	}
	asteroids := make([]Asteroid, len(objects))
	for i, obj := range objects {
		asteroids[i] = obj.asteroid()
	}
	return asteroids, nil
}

// LoadCatalog reads the provided NeoWs documents in order and keeps the first MaxCatalogSize
// asteroids. If any document cannot be read, or if none is provided, the bundled fallback
// asteroids are returned and the failure is logged.
func LoadCatalog(logger kitlog.Logger, paths ...string) []Asteroid {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	var catalog []Asteroid
	for _, path := range paths {
		asteroids, err := readCatalogFile(path)
		if err != nil {
			logger.Log("level", "warning", "subsys", "catalog", "file", path, "err", err, "message", "using fallback asteroids")
			return FallbackAsteroids()
		}
		catalog = append(catalog, asteroids...)
	}
	if len(catalog) == 0 {
		logger.Log("level", "info", "subsys", "catalog", "message", "no asteroids loaded, using fallback asteroids")
		return FallbackAsteroids()
	}
	if len(catalog) > MaxCatalogSize {
		catalog = catalog[:MaxCatalogSize]
	}
	logger.Log("level", "info", "subsys", "catalog", "asteroids", len(catalog))
	return catalog
}

func readCatalogFile(path string) ([]Asteroid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseNeoWs(f)
}

// FallbackAsteroids returns the bundled asteroids used for offline and demo mode.
func FallbackAsteroids() []Asteroid {
	asteroids, err := ParseNeoWs(strings.NewReader(fallbackNeoWs))
	if err != nil {
		panic(fmt.Errorf("bundled asteroids are invalid: %s", err))
	}
	return asteroids
}

// FindAsteroid returns the asteroid of the provided ID or name (case insensitive).
func FindAsteroid(catalog []Asteroid, key string) (Asteroid, error) {
	if key == "" {
		return Asteroid{}, errors.New("empty asteroid key")
	}
	for _, a := range catalog {
		if a.ID == key || strings.EqualFold(a.Name, key) || strings.Contains(strings.ToLower(a.Name), strings.ToLower(key)) {
			return a, nil
		}
	}
	return Asteroid{}, fmt.Errorf("undefined asteroid '%s'", key)
}

// fallbackNeoWs is a NeoWs browse page of well known potentially hazardous asteroids.
const fallbackNeoWs = `{"near_earth_objects": [
  {"id": "2099942", "name": "99942 Apophis (2004 MN4)", "absolute_magnitude_h": 19.7,
   "estimated_diameter": {"kilometers": {"estimated_diameter_min": 0.31, "estimated_diameter_max": 0.69}},
   "is_potentially_hazardous_asteroid": true,
   "close_approach_data": [{"close_approach_date": "2029-04-13",
     "relative_velocity": {"kilometers_per_second": "7.42"}, "miss_distance": {"kilometers": "38000"}}]},
  {"id": "101955", "name": "101955 Bennu (1999 RQ36)", "absolute_magnitude_h": 20.9,
   "estimated_diameter": {"kilometers": {"estimated_diameter_min": 0.45, "estimated_diameter_max": 0.51}},
   "is_potentially_hazardous_asteroid": true,
   "close_approach_data": [{"close_approach_date": "2135-09-25",
     "relative_velocity": {"kilometers_per_second": "11.2"}, "miss_distance": {"kilometers": "750000"}}]},
  {"id": "65803", "name": "65803 Didymos (1996 GT)", "absolute_magnitude_h": 18.2,
   "estimated_diameter": {"kilometers": {"estimated_diameter_min": 0.7, "estimated_diameter_max": 0.85}},
   "is_potentially_hazardous_asteroid": false,
   "close_approach_data": [{"close_approach_date": "2123-05-05",
     "relative_velocity": {"kilometers_per_second": "8.9"}, "miss_distance": {"kilometers": "5900000"}}]},
  {"id": "4179", "name": "4179 Toutatis (1989 AC)", "absolute_magnitude_h": 15.3,
   "estimated_diameter": {"kilometers": {"estimated_diameter_min": 4.6, "estimated_diameter_max": 5.4}},
   "is_potentially_hazardous_asteroid": true,
   "close_approach_data": [{"close_approach_date": "2069-11-05",
     "relative_velocity": {"kilometers_per_second": "13.5"}, "miss_distance": {"kilometers": "3000000"}}]}
]}`
