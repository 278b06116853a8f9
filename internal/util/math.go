package util

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Coerce returns a value that is at least min and at most max
func Coerce[T constraints.Ordered](value, min, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// Magnitude returns the decimal order of the integral part of |value|,
// i.e. floor(log10(floor(|value|))), with 0 for values below 1.
func Magnitude(value float64) int {
	integral := math.Floor(math.Abs(value))
	if integral < 1 || math.IsNaN(integral) || math.IsInf(integral, 0) {
		return 0
	}
	mag := 0
	for integral >= 10 {
		integral /= 10
		mag++
	}
	return mag
}

// NanToZero maps a failed (NaN) reading to zero for display purposes
func NanToZero(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	return value
}
