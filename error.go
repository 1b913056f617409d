package impact

import (
	"fmt"
	"math"
)

// DomainError is returned when an input falls outside the domain of a formula,
// e.g. a non-positive mass or an eccentricity which would make the conic diverge.
// These are always caller mistakes and retrying will not help.
type DomainError struct {
	Op     string  // Operation which rejected the input
	Param  string  // Offending parameter
	Value  float64 // Offending value
	Reason string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: invalid %s=%g: %s", e.Op, e.Param, e.Value, e.Reason)
}

func domainErr(op, param string, value float64, reason string) *DomainError {
	return &DomainError{Op: op, Param: param, Value: value, Reason: reason}
}

// checkPositive rejects NaN, infinities and values <= 0.
func checkPositive(op, param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domainErr(op, param, v, "must be finite")
	}
	if v <= 0 {
		return domainErr(op, param, v, "must be strictly positive")
	}
	return nil
}

// checkNonNegative rejects NaN, infinities and values < 0.
func checkNonNegative(op, param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domainErr(op, param, v, "must be finite")
	}
	if v < 0 {
		return domainErr(op, param, v, "must not be negative")
	}
	return nil
}
