package impact

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WritePathCSV writes the polyline as x,y,z records, with a header.
func WritePathCSV(w io.Writer, p Path) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "z"}); err != nil {
		return err
	}
	for _, pt := range p {
		if err := cw.Write([]string{ftoa(pt.X), ftoa(pt.Y), ftoa(pt.Z)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFramesCSV writes the frames of a simulation, one record per frame, with a header.
func WriteFramesCSV(w io.Writer, frames []Frame) error {
	cw := csv.NewWriter(w)
	header := []string{"time", "x", "y", "z", "status", "distance_km", "velocity_kms", "time_to_impact_days", "tnt_mt", "crater_km", "magnitude", "collision"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, f := range frames {
		t := f.Telemetry
		record := []string{ftoa(f.Time), ftoa(f.Position.X), ftoa(f.Position.Y), ftoa(f.Position.Z), f.Status.String(),
			ftoa(t.DistanceKm), ftoa(t.EffectiveVelocity), ftoa(t.TimeToImpactDays), ftoa(t.TNTMegatons), ftoa(t.CraterKm),
			ftoa(t.Magnitude), strconv.FormatBool(f.Collision)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV creates dir/name.csv and writes to it with the provided writer function.
func ExportCSV(dir, name string, write func(io.Writer) error) (string, error) {
	if dir == "" {
		dir = "."
	}
	filename := filepath.Join(dir, fmt.Sprintf("%s.csv", name))
	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	if err := write(f); err != nil {
		f.Close()
		return "", fmt.Errorf("could not write %s: %w", filename, err)
	}
	return filename, f.Close()
}
