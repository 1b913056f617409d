package impact

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func city(t *testing.T, name string) City {
	t.Helper()
	cities := FilterCities(DefaultCities(), name)
	if len(cities) != 1 {
		t.Fatalf("expected one city for %s, got %v", name, cities)
	}
	return cities[0]
}

func TestDistance(t *testing.T) {
	london := city(t, "London")
	for _, tc := range []struct {
		name     string
		min, max float64
	}{
		{"Paris", 330, 355},
		{"New York", 5500, 5650},
		{"Mumbai", 7100, 7300},
	} {
		d := london.DistanceKm(city(t, tc.name).Coord)
		if d < tc.min || d > tc.max {
			t.Fatalf("London to %s: %f km", tc.name, d)
		}
		if back := city(t, tc.name).DistanceKm(london.Coord); !scalar.EqualWithinRel(d, back, 1e-9) {
			t.Fatalf("distance not symmetric: %f != %f", d, back)
		}
	}
	if london.DistanceKm(london.Coord) != 0 {
		t.Fatal("distance to self should be zero")
	}
}

func TestCityEffectsAtSite(t *testing.T) {
	mumbai := city(t, "Mumbai")
	eff := mumbai.Effects(mumbai.Coord, 7.1232, 0)
	if eff.DistanceKm != 0 || eff.Risk != RiskCritical {
		t.Fatalf("effects=%+v", eff)
	}
	if eff.Magnitude != 7.12 || eff.WindKmh != 200 || eff.TempIncreaseC != 50 || eff.TsunamiM != 15 {
		t.Fatalf("effects=%+v", eff)
	}
	if eff.AffectedPopulation != mumbai.Population {
		t.Fatalf("affected=%d", eff.AffectedPopulation)
	}
	// Unknown magnitudes use 7.5.
	for _, m := range []float64{0, math.NaN()} {
		if eff := mumbai.Effects(mumbai.Coord, m, 0); eff.Magnitude != 7.5 {
			t.Fatalf("magnitude=%f", eff.Magnitude)
		}
	}
	delhi := city(t, "Delhi")
	if eff := delhi.Effects(delhi.Coord, 7, 0); eff.TsunamiM != 0 {
		t.Fatalf("inland city with a %f m tsunami", eff.TsunamiM)
	}
}

func TestCityEffectsVariation(t *testing.T) {
	tokyo := city(t, "Tokyo")
	site := Coord{35, 140}
	nominal := tokyo.Effects(site, 8, 0)
	up := tokyo.Effects(site, 8, 1)
	down := tokyo.Effects(site, 8, -1)
	if !(down.WindKmh < nominal.WindKmh && nominal.WindKmh < up.WindKmh) {
		t.Fatalf("wind: %f %f %f", down.WindKmh, nominal.WindKmh, up.WindKmh)
	}
	if up.Risk != nominal.Risk || down.Risk != nominal.Risk {
		t.Fatal("variation should not change the risk")
	}
	if clamped := tokyo.Effects(site, 8, 5); clamped != up {
		t.Fatalf("variation not clamped: %+v != %+v", clamped, up)
	}
	if !scalar.EqualWithinAbs(up.Magnitude, nominal.Magnitude*1.05, 0.02) {
		t.Fatalf("magnitude %f vs %f", up.Magnitude, nominal.Magnitude)
	}
}

func TestCityRisk(t *testing.T) {
	london := city(t, "London").Coord
	for name, exp := range map[string]RiskLevel{
		"London":   RiskCritical,
		"New York": RiskHigh,
		"Mumbai":   RiskModerate,
		"Tokyo":    RiskLow,
		"Sydney":   RiskLow,
	} {
		eff := city(t, name).Effects(london, 7, 0)
		if eff.Risk != exp {
			t.Fatalf("%s at %f km: %s, expected %s", name, eff.DistanceKm, eff.Risk, exp)
		}
	}
	// Beyond 10,000 km nothing is felt.
	eff := city(t, "Sydney").Effects(london, 7, 1)
	if eff.Magnitude != 0 || eff.WindKmh != 0 || eff.TempIncreaseC != 0 || eff.TsunamiM != 0 || eff.AffectedPopulation != 0 {
		t.Fatalf("effects=%+v", eff)
	}
	assertPanic(t, func() {
		_ = RiskLevel(0).String()
	})
}

func TestCityEffectsList(t *testing.T) {
	cities := DefaultCities()
	effects := CityEffects(DefaultImpactSite, 7, cities)
	if len(effects) != len(cities) {
		t.Fatalf("%d effects for %d cities", len(effects), len(cities))
	}
	for i, eff := range effects {
		if eff != cities[i].Effects(DefaultImpactSite, 7, 0) {
			t.Fatalf("effects of %s differ", cities[i])
		}
	}
}

func TestFilterCities(t *testing.T) {
	cities := DefaultCities()
	if len(cities) != 32 {
		t.Fatalf("%d cities", len(cities))
	}
	countries := make(map[string]bool)
	for _, c := range cities {
		countries[c.Country] = true
	}
	if len(countries) != 15 {
		t.Fatalf("%d countries", len(countries))
	}
	if india := FilterCities(cities, "INDIA"); len(india) != 3 {
		t.Fatalf("india=%v", india)
	}
	if ny := FilterCities(cities, "york"); len(ny) != 1 || ny[0].String() != "New York, USA" {
		t.Fatalf("ny=%v", ny)
	}
	if all := FilterCities(cities, ""); len(all) != len(cities) {
		t.Fatal("empty query should match all cities")
	}
	if none := FilterCities(cities, "Atlantis"); len(none) != 0 {
		t.Fatal("unexpected match")
	}
}
