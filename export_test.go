package impact

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWritePathCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePathCSV(&buf, Path{{1, 0, 0}, {0.5, 0.25, -2}}); err != nil {
		t.Fatal(err)
	}
	if exp := "x,y,z\n1,0,0\n0.5,0.25,-2\n"; buf.String() != exp {
		t.Fatalf("csv=%q", buf.String())
	}
}

func TestWriteFramesCSV(t *testing.T) {
	sim, _ := NewSimulation(closeOrbitParams(), nil, nil)
	var frames []Frame
	for i := 0; i < 5; i++ {
		frame, err := sim.Tick(0.1)
		if err != nil {
			t.Fatal(err)
		}
		frames = append(frames, frame)
	}
	var buf bytes.Buffer
	if err := WriteFramesCSV(&buf, frames); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != len(frames)+1 {
		t.Fatalf("%d records", len(records))
	}
	if records[0][0] != "time" || records[0][len(records[0])-1] != "collision" {
		t.Fatalf("header=%v", records[0])
	}
	if records[1][4] != "impact" || records[1][11] != "true" || records[2][11] != "false" {
		t.Fatalf("records=%v", records[1:3])
	}
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	o, _ := NewOrbitState(1.5, 0.2, 0)
	path, _ := o.Path(10)
	filename, err := ExportCSV(dir, "orbit", func(w io.Writer) error {
		return WritePathCSV(w, path)
	})
	if err != nil {
		t.Fatal(err)
	}
	if filename != filepath.Join(dir, "orbit.csv") {
		t.Fatalf("filename=%s", filename)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 12 {
		t.Fatalf("%d lines", len(lines))
	}
	if _, err := ExportCSV(dir, "broken", func(io.Writer) error { return errors.New("boom") }); err == nil {
		t.Fatal("writer errors should be returned")
	}
	if _, err := ExportCSV(filepath.Join(dir, "missing"), "orbit", func(io.Writer) error { return nil }); err == nil {
		t.Fatal("missing directory should fail")
	}
}
