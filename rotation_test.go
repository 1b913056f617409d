package impact

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

func TestR1R2(t *testing.T) {
	x := math.Pi / 3.0
	s, c := math.Sincos(x)
	r1 := R1(x)
	r2 := R2(x)
	// Test items equal to 1.
	if r1.At(0, 0) != r2.At(1, 1) || r1.At(0, 0) != 1 {
		t.Fatal("expected R1.At(0, 0) = R2.At(1, 1) = 1")
	}
	// Test items equal to 0.
	if r1.At(0, 1) != r1.At(0, 2) || r1.At(1, 0) != r1.At(2, 0) || r1.At(0, 1) != 0 {
		t.Fatal("misplaced zeros in R1")
	}
	if r2.At(0, 1) != r2.At(1, 2) || r2.At(1, 0) != r2.At(1, 2) || r2.At(1, 2) != 0 {
		t.Fatal("misplaced zeros in R2")
	}
	// Test R1.
	if r1.At(1, 1) != r1.At(2, 2) || r1.At(2, 2) != c {
		t.Fatal("expected R1 cosines misplaced")
	}
	if r1.At(2, 1) != -r1.At(1, 2) || r1.At(1, 2) != s {
		t.Fatal("expected R1 sines misplaced")
	}
	// Test R2.
	if r2.At(0, 0) != r2.At(2, 2) || r2.At(2, 2) != c {
		t.Fatal("expected R2 cosines misplaced")
	}
	if r2.At(2, 0) != -r2.At(0, 2) || r2.At(2, 0) != s {
		t.Fatal("expected R2 sines misplaced")
	}
	// Rotations are orthonormal.
	var id mat.Dense
	id.Mul(r1, r1.T())
	if !mat.EqualApprox(&id, mat.NewDiagDense(3, []float64{1, 1, 1}), 1e-12) {
		t.Fatalf("R1 R1ᵀ=\n%v", mat.Formatted(&id))
	}
}

func TestIncline(t *testing.T) {
	o, _ := NewOrbitState(1.5, 0.2, 0)
	path, _ := o.Path(40)
	if flat := path.Incline(0); !floats.EqualApprox(flat.Dense().RawMatrix().Data, path.Dense().RawMatrix().Data, 1e-12) {
		t.Fatal("zero inclination should not move the path")
	}
	inclined := path.Incline(15)
	i := Deg2rad(15)
	for k, pt := range inclined {
		orig := path[k]
		if !scalar.EqualWithinAbs(pt.Norm(), orig.Norm(), 1e-12) {
			t.Fatalf("rotation changed the radius of point %d", k)
		}
		exp := Position3{orig.X, orig.Z * math.Sin(i), orig.Z * math.Cos(i)}
		if !positionsEqual(pt, exp, 1e-12) {
			t.Fatalf("point %d: %s != %s", k, pt, exp)
		}
	}
	// The line of apsides does not move.
	if !positionsEqual(inclined[0], path[0], 1e-12) || !positionsEqual(inclined[20], path[20], 1e-12) {
		t.Fatal("apsides moved")
	}
}

func TestGlobePosition(t *testing.T) {
	for _, tc := range []struct {
		c   Coord
		exp Position3
	}{
		{Coord{0, 0}, Position3{2, 0, 0}},
		{Coord{90, 0}, Position3{0, 2, 0}},
		{Coord{-90, 123}, Position3{0, -2, 0}},
		{Coord{0, 90}, Position3{0, 0, -2}},
		{Coord{0, 180}, Position3{-2, 0, 0}},
	} {
		if pos := tc.c.GlobePosition(EarthSceneRadius); !positionsEqual(pos, tc.exp, 1e-12) {
			t.Fatalf("%s: %s != %s", tc.c, pos, tc.exp)
		}
	}
	site := DefaultImpactSite.GlobePosition(EarthSceneRadius)
	if !scalar.EqualWithinAbs(site.Norm(), EarthSceneRadius, 1e-12) {
		t.Fatalf("site %s is not on the globe", site)
	}
}
