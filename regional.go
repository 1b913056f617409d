package impact

import (
	"fmt"
	"math"
	"strings"

	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/unit"
)

const (
	effectRadiusKm       = 10000.0 // no regional effect beyond this distance
	defaultCityMagnitude = 7.5
	baseCityTsunamiM     = 15.0
	baseCityWindKmh      = 200.0
	baseCityTempC        = 50.0
	variationWeight      = 0.05
)

// Coord is a map coordinate in degrees, longitude positive eastward.
type Coord struct {
	LatDeg, LngDeg float64
}

func (c Coord) String() string {
	return fmt.Sprintf("%.2f°, %.2f°", c.LatDeg, c.LngDeg)
}

// meeus returns the meeus coordinate, whose longitudes are positive westward.
func (c Coord) meeus() globe.Coord {
	return globe.Coord{Lat: unit.AngleFromDeg(c.LatDeg), Lon: unit.AngleFromDeg(-c.LngDeg)}
}

// DistanceKm returns the geodesic distance to o on the Earth ellipsoid.
func (c Coord) DistanceKm(o Coord) float64 {
	if c == o {
		return 0
	}
	return globe.Earth76.Distance(c.meeus(), o.meeus())
}

// RiskLevel is the regional risk tier of a city.
type RiskLevel uint8

const (
	// RiskLow is for cities with a distance factor of 0.2 or less.
	RiskLow RiskLevel = iota + 1
	// RiskModerate is above 0.2.
	RiskModerate
	// RiskHigh is above 0.4.
	RiskHigh
	// RiskCritical is above 0.7.
	RiskCritical
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskModerate:
		return "moderate"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	default:
		panic(fmt.Errorf("unknown risk level %d", uint8(r)))
	}
}

// City is a populated place.
type City struct {
	Name, Country string
	Coord
	Population int64
	Coastal    bool
}

func (c City) String() string {
	return c.Name + ", " + c.Country
}

// CityEffect are the effects of an impact felt in a city.
type CityEffect struct {
	City
	DistanceKm         float64
	Magnitude          float64
	TsunamiM           float64
	WindKmh            float64
	TempIncreaseC      float64
	AffectedPopulation int64
	Risk               RiskLevel
}

// Effects returns the effects felt in c of an impact at site of the provided seismic
// magnitude. The effects decrease linearly with the distance and vanish 10,000 km away.
// The variation, within [-1, 1], perturbs all the effects by up to 5%.
// A zero (or NaN) magnitude uses 7.5.
func (c City) Effects(site Coord, magnitude, variation float64) CityEffect {
	if magnitude == 0 || math.IsNaN(magnitude) {
		magnitude = defaultCityMagnitude
	}
	dist := c.DistanceKm(site)
	factor := math.Max(0, 1-dist/effectRadiusKm)
	weight := factor * (1 + clamp(variation, -1, 1)*variationWeight)
	eff := CityEffect{
		City:               c,
		DistanceKm:         dist,
		Magnitude:          round2(math.Max(0, magnitude*weight)),
		WindKmh:            math.Round(math.Max(0, baseCityWindKmh*weight)),
		TempIncreaseC:      math.Round(math.Max(0, baseCityTempC*weight)*10) / 10,
		AffectedPopulation: int64(math.Floor(float64(c.Population) * weight)),
	}
	if c.Coastal {
		eff.TsunamiM = math.Round(math.Max(0, baseCityTsunamiM*weight)*10) / 10
	}
	switch {
	case factor > 0.7:
		eff.Risk = RiskCritical
	case factor > 0.4:
		eff.Risk = RiskHigh
	case factor > 0.2:
		eff.Risk = RiskModerate
	default:
		eff.Risk = RiskLow
	}
	return eff
}

// CityEffects returns the unperturbed effects of an impact in each of the provided cities.
func CityEffects(site Coord, magnitude float64, cities []City) []CityEffect {
	effects := make([]CityEffect, len(cities))
	for i, c := range cities {
		effects[i] = c.Effects(site, magnitude, 0)
	}
	return effects
}

// FilterCities returns the cities whose name or country contains the query (case insensitive).
func FilterCities(cities []City, query string) []City {
	q := strings.ToLower(query)
	var rslt []City
	for _, c := range cities {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Country), q) {
			rslt = append(rslt, c)
		}
	}
	return rslt
}

// DefaultCities returns major cities across fifteen countries.
func DefaultCities() []City {
	return []City{
		{"Mumbai", "India", Coord{19.07, 72.87}, 20411000, true},
		{"Delhi", "India", Coord{28.61, 77.20}, 16787000, false},
		{"Chennai", "India", Coord{13.08, 80.27}, 7088000, true},
		{"New York", "USA", Coord{40.71, -74.00}, 8336000, true},
		{"Los Angeles", "USA", Coord{34.05, -118.24}, 3979000, true},
		{"Chicago", "USA", Coord{41.87, -87.62}, 2716000, false},
		{"Shanghai", "China", Coord{31.23, 121.47}, 24256800, true},
		{"Beijing", "China", Coord{39.90, 116.40}, 21516000, false},
		{"Tokyo", "Japan", Coord{35.68, 139.69}, 13960000, true},
		{"Osaka", "Japan", Coord{34.69, 135.50}, 2725000, true},
		{"London", "UK", Coord{51.50, -0.12}, 8982000, false},
		{"Manchester", "UK", Coord{53.48, -2.24}, 547627, false},
		{"São Paulo", "Brazil", Coord{-23.55, -46.63}, 12325000, false},
		{"Rio de Janeiro", "Brazil", Coord{-22.90, -43.17}, 6748000, true},
		{"Sydney", "Australia", Coord{-33.86, 151.20}, 5312000, true},
		{"Melbourne", "Australia", Coord{-37.81, 144.96}, 5078000, true},
		{"Paris", "France", Coord{48.85, 2.35}, 2161000, false},
		{"Marseille", "France", Coord{43.29, 5.36}, 869815, true},
		{"Berlin", "Germany", Coord{52.52, 13.40}, 3645000, false},
		{"Hamburg", "Germany", Coord{53.55, 9.99}, 1841000, true},
		{"Toronto", "Canada", Coord{43.65, -79.38}, 2930000, false},
		{"Vancouver", "Canada", Coord{49.28, -123.12}, 631486, true},
		{"Mexico City", "Mexico", Coord{19.43, -99.13}, 8918000, false},
		{"Cancún", "Mexico", Coord{21.16, -86.85}, 628306, true},
		{"Seoul", "South Korea", Coord{37.56, 126.97}, 9776000, false},
		{"Busan", "South Korea", Coord{35.17, 129.07}, 3449000, true},
		{"Rome", "Italy", Coord{41.90, 12.49}, 2873000, false},
		{"Naples", "Italy", Coord{40.85, 14.26}, 967069, true},
		{"Madrid", "Spain", Coord{40.41, -3.70}, 3223000, false},
		{"Barcelona", "Spain", Coord{41.38, 2.17}, 1620000, true},
		{"Moscow", "Russia", Coord{55.75, 37.61}, 12506000, false},
		{"Saint Petersburg", "Russia", Coord{59.93, 30.36}, 5384000, true},
	}
}
