package impact

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigEnv is the environment variable holding the directory of impact.toml.
	ConfigEnv  = "IMPACT_CONFIG"
	configName = "impact"
	envPrefix  = "IMPACT"
)

// Config is a simulation scenario.
type Config struct {
	Params       Params
	Anomaly      AnomalyModel
	Asteroid     string   // ID or name to pick from the catalog, if any
	CatalogFiles []string // NeoWs documents
	LeadTimeDays float64
	Site         Coord
	Frames       int
	FrameDelta   float64 // wall clock seconds per frame
	PathSamples  int
	OutputDir    string
}

func setDefaults(v *viper.Viper) {
	p := DefaultParams()
	v.SetDefault("general.output_path", "")
	v.SetDefault("general.catalog", []string{})
	v.SetDefault("general.asteroid", "")
	v.SetDefault("body.diameter", p.DiameterKm)
	v.SetDefault("body.mass", p.MassKg)
	v.SetDefault("body.velocity", p.VelocityKmS)
	v.SetDefault("body.angle", p.AngleDeg)
	v.SetDefault("orbit.semi_major_axis", p.Orbit.SemiMajorAxisAU)
	v.SetDefault("orbit.eccentricity", p.Orbit.Eccentricity)
	v.SetDefault("orbit.phase", 0.0)
	v.SetDefault("orbit.anomaly", "linear")
	v.SetDefault("deflection.method", p.Method.String())
	v.SetDefault("deflection.delta_v", p.ΔvKmS)
	v.SetDefault("deflection.lead_time", 365.0)
	v.SetDefault("location.ocean", false)
	v.SetDefault("location.population_density", DefaultPopulationDensity)
	v.SetDefault("location.latitude", DefaultImpactSite.LatDeg)
	v.SetDefault("location.longitude", DefaultImpactSite.LngDeg)
	v.SetDefault("simulation.frames", 600)
	v.SetDefault("simulation.frame_delta", 1/60.)
	v.SetDefault("simulation.path_samples", DefaultPathSamples)
}

// LoadConfig reads the scenario from the provided TOML file, or from impact.toml if path is a
// directory. Any key may be overridden by an IMPACT_ environment variable,
// e.g. IMPACT_BODY_VELOCITY.
// An empty path only uses the defaults and the environment.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			v.SetConfigName(configName)
			v.AddConfigPath(path)
		} else {
			v.SetConfigFile(path)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("%s/%s.toml not found", path, configName)
			}
			return Config{}, fmt.Errorf("could not read %s: %w", path, err)
		}
	}
	return configFrom(v)
}

// ConfigFromEnv loads the configuration from the directory named by IMPACT_CONFIG, or only
// the defaults if it is not set.
func ConfigFromEnv() (Config, error) {
	return LoadConfig(os.Getenv(ConfigEnv))
}

func configFrom(v *viper.Viper) (Config, error) {
	method, err := DeflectionMethodFromString(v.GetString("deflection.method"))
	if err != nil {
		return Config{}, err
	}
	p := Params{
		DiameterKm:  v.GetFloat64("body.diameter"),
		MassKg:      v.GetFloat64("body.mass"),
		VelocityKmS: v.GetFloat64("body.velocity"),
		AngleDeg:    v.GetFloat64("body.angle"),
		Method:      method,
		ΔvKmS:       v.GetFloat64("deflection.delta_v"),
		Orbit: OrbitState{
			SemiMajorAxisAU: v.GetFloat64("orbit.semi_major_axis"),
			Eccentricity:    v.GetFloat64("orbit.eccentricity"),
			Phase:           Deg2rad(v.GetFloat64("orbit.phase")),
		},
		Location: Location{
			IsOcean:           v.GetBool("location.ocean"),
			PopulationDensity: v.GetFloat64("location.population_density"),
		},
	}
	if err := p.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid scenario: %w", err)
	}
	anomaly, err := anomalyFromString(v.GetString("orbit.anomaly"))
	if err != nil {
		return Config{}, err
	}
	conf := Config{
		Params:       p,
		Anomaly:      anomaly,
		Asteroid:     v.GetString("general.asteroid"),
		CatalogFiles: v.GetStringSlice("general.catalog"),
		LeadTimeDays: v.GetFloat64("deflection.lead_time"),
		Site:         Coord{v.GetFloat64("location.latitude"), v.GetFloat64("location.longitude")},
		Frames:       v.GetInt("simulation.frames"),
		FrameDelta:   v.GetFloat64("simulation.frame_delta"),
		PathSamples:  v.GetInt("simulation.path_samples"),
		OutputDir:    v.GetString("general.output_path"),
	}
	if conf.Frames < 0 || conf.FrameDelta < 0 {
		return Config{}, errors.New("simulation frames and frame_delta must not be negative")
	}
	return conf, nil
}

// anomalyFromString returns the anomaly model from its name.
func anomalyFromString(name string) (AnomalyModel, error) {
	switch strings.ToLower(name) {
	case "", "linear", "legacy":
		return LegacyAnomaly(), nil
	case "kepler":
		return KeplerAnomaly{Rate: LegacyAnomalyRate}, nil
	default:
		return nil, fmt.Errorf("undefined anomaly model '%s'", name)
	}
}
