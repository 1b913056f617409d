package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/ChristopherRabotin/impact"
	kitlog "github.com/go-kit/log"
)

var (
	scenario  string
	asteroid  string
	listOnly  bool
	exportCSV bool
	topCities int
)

func init() {
	flag.StringVar(&scenario, "scenario", os.Getenv(impact.ConfigEnv), "scenario TOML file or directory containing impact.toml")
	flag.StringVar(&asteroid, "asteroid", "", "asteroid ID or name (overrides the scenario)")
	flag.BoolVar(&listOnly, "list", false, "list the catalog and exit")
	flag.BoolVar(&exportCSV, "export", false, "export the orbit path and frames as CSV to the output path")
	flag.IntVar(&topCities, "cities", 5, "number of closest cities to report")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	if err := run(logger); err != nil {
		logger.Log("level", "critical", "subsys", "main", "err", err)
		os.Exit(1)
	}
}

func run(logger kitlog.Logger) error {
	conf, err := impact.LoadConfig(scenario)
	if err != nil {
		return err
	}
	catalog := impact.LoadCatalog(logger, conf.CatalogFiles...)
	if listOnly {
		for _, a := range catalog {
			fmt.Println(a)
		}
		return nil
	}
	if asteroid != "" {
		conf.Asteroid = asteroid
	}

	sim, err := impact.NewSimulation(conf.Params, conf.Anomaly, logger)
	if err != nil {
		return err
	}
	leadTime := conf.LeadTimeDays
	site := conf.Site
	inclination := 0.0
	if conf.Asteroid != "" {
		a, err := impact.FindAsteroid(catalog, conf.Asteroid)
		if err != nil {
			return err
		}
		if err := sim.SetAsteroid(a); err != nil {
			return err
		}
		if lt, err := a.LeadTimeDays(time.Now()); err == nil && lt > 0 {
			leadTime = lt
		}
		site = a.ImpactSite()
		inclination = a.InclinationDeg
	}
	params := sim.Params()
	// Δv from the scenario applies on top of the asteroid.
	if err := sim.SetDeflection(params.Method, conf.Params.ΔvKmS); err != nil {
		return err
	}

	rslt, err := sim.Assess()
	if err != nil {
		logger.Log("level", "notice", "subsys", "physics", "message", "no impact", "err", err)
	} else {
		logger.Log("level", "info", "subsys", "physics", "result", rslt, "site", site, "marker", site.GlobePosition(impact.EarthSceneRadius),
			"immediate", rslt.Casualties.Immediate, "secondary", rslt.Casualties.Secondary, "affected", rslt.Casualties.Affected)
		reportCities(logger, site, rslt.Magnitude)
	}
	reportDeflection(logger, params.MassKg, leadTime)

	frames := make([]impact.Frame, 0, conf.Frames)
	for i := 0; i < conf.Frames; i++ {
		frame, err := sim.Tick(conf.FrameDelta)
		if err != nil {
			return err
		}
		frames = append(frames, frame)
	}
	sim.Pause()
	if n := len(frames); n > 0 {
		last := frames[n-1]
		logger.Log("level", "info", "subsys", "sim", "frames", n, "time", last.Time, "position", last.Position, "status", last.Status)
	}

	if !exportCSV {
		return nil
	}
	path, err := params.Orbit.Path(conf.PathSamples)
	if err != nil {
		return err
	}
	exports := map[string]func(io.Writer) error{
		"orbit":  func(w io.Writer) error { return impact.WritePathCSV(w, path) },
		"frames": func(w io.Writer) error { return impact.WriteFramesCSV(w, frames) },
	}
	if inclination != 0 {
		inclined := path.Incline(inclination)
		exports["orbit-inclined"] = func(w io.Writer) error { return impact.WritePathCSV(w, inclined) }
	}
	for name, write := range exports {
		filename, err := impact.ExportCSV(conf.OutputDir, name, write)
		if err != nil {
			return err
		}
		logger.Log("level", "info", "subsys", "export", "file", filename)
	}
	if deflected, err := params.Orbit.DeflectedPath(conf.PathSamples); err != nil {
		logger.Log("level", "warning", "subsys", "export", "err", err)
	} else if filename, err := impact.ExportCSV(conf.OutputDir, "orbit-deflected", func(w io.Writer) error { return impact.WritePathCSV(w, deflected) }); err != nil {
		return err
	} else {
		logger.Log("level", "info", "subsys", "export", "file", filename)
	}
	return nil
}

func reportDeflection(logger kitlog.Logger, massKg, leadTime float64) {
	req, err := impact.Deflection(massKg, leadTime)
	if err != nil {
		logger.Log("level", "warning", "subsys", "deflection", "err", err)
		return
	}
	logger.Log("level", "info", "subsys", "deflection", "lead(days)", leadTime, "Δv(km/s)", req.ΔvKmS, "energy(J)", req.EnergyJ, "feasibility", req.Feasibility)
	scores := impact.ScoreMethods(leadTime)
	for _, m := range impact.DeflectionMethods {
		logger.Log("level", "info", "subsys", "deflection", "method", m.Profile().Name, "viable", scores[m].Viable, "score", scores[m].Score)
	}
	if best, ok := impact.BestMethod(leadTime); ok {
		logger.Log("level", "notice", "subsys", "deflection", "best", best.Profile().Name)
	}
}

func reportCities(logger kitlog.Logger, site impact.Coord, magnitude float64) {
	effects := impact.CityEffects(site, magnitude, impact.DefaultCities())
	sort.Slice(effects, func(i, j int) bool { return effects[i].DistanceKm < effects[j].DistanceKm })
	if topCities >= 0 && topCities < len(effects) {
		effects = effects[:topCities]
	}
	for _, e := range effects {
		logger.Log("level", "info", "subsys", "regional", "city", e.Name, "distance(km)", fmt.Sprintf("%.0f", e.DistanceKm),
			"risk", e.Risk, "magnitude", e.Magnitude, "tsunami(m)", e.TsunamiM, "wind(km/h)", e.WindKmh, "population", e.AffectedPopulation)
	}
}
