package impact

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestAngles(t *testing.T) {
	for i := 0.0; i <= 360; i += 0.5 {
		var expPi float64
		specificCase := true
		switch math.Mod(i, 180) {
		case 0:
			expPi = 0
		case 30:
			expPi = 1 / 6.
		case 60:
			expPi = 1 / 3.
		case 90:
			expPi = 1 / 2.
		case 120:
			expPi = 2 / 3.
		case 150:
			expPi = 5 / 6.
		default:
			specificCase = false
		}
		if specificCase {
			if i >= 180 && i < 360 {
				expPi++
			}
			if i == 360 {
				expPi = 0
			}
			if !scalar.EqualWithinAbs(Deg2rad(i)/math.Pi, expPi, 1e-10) {
				t.Fatalf("%f deg: %f π rad, expected %f", i, Deg2rad(i)/math.Pi, expPi)
			}
		}
		back := Rad2deg(Deg2rad(i))
		if i < 360 && !scalar.EqualWithinAbs(back, i, 1e-9) {
			t.Fatalf("incorrect conversion for %3.2f: %f", i, back)
		} else if i == 360 && !scalar.EqualWithinAbs(back, 0, 1e-9) {
			t.Fatalf("incorrect conversion for %3.2f: %f", i, back)
		}
	}
	if !scalar.EqualWithinAbs(Rad2deg(Deg2rad(-359.)), 1, 1e-9) {
		t.Fatal("incorrect conversion for -359")
	}
	if !scalar.EqualWithinAbs(Rad2deg(Deg2rad(-180.)), 180, 1e-9) {
		t.Fatal("incorrect conversion for -180")
	}
}

func TestClamp(t *testing.T) {
	for _, tc := range []struct{ v, exp float64 }{{-5, 0.1}, {0.1, 0.1}, {1, 1}, {2, 2}, {20, 2}} {
		if c := clamp(tc.v, 0.1, 2); c != tc.exp {
			t.Fatalf("clamp(%f)=%f, expected %f", tc.v, c, tc.exp)
		}
	}
	if round2(12.3456) != 12.35 || round2(-0.004) != 0 {
		t.Fatal("round2 fail")
	}
}

func TestNorm(t *testing.T) {
	if n := norm([]float64{2, 3, 6}); n != 7 {
		t.Fatalf("|v|=%f", n)
	}
}
