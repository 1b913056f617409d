package impact

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

const testε = 1e-9

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("The code did not panic")
		}
	}()
	f()
}

// assertDomainError fails unless err is a *DomainError on the provided parameter.
func assertDomainError(t *testing.T, err error, param string) {
	t.Helper()
	var derr *DomainError
	if !errors.As(err, &derr) {
		t.Fatalf("expected a DomainError on %s, got %v", param, err)
	}
	if derr.Param != param {
		t.Fatalf("expected a DomainError on %s, got one on %s: %s", param, derr.Param, derr)
	}
}

// positionsEqual returns whether two positions are equal within an absolute tolerance.
func positionsEqual(a, b Position3, tol float64) bool {
	return floats.EqualApprox(a.Vector(), b.Vector(), tol)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
