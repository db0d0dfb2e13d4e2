// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/oreha-calculator/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent gold with silver
// precision. Used for display and logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// FloorDiv returns how many complete batches of size fit into qty. Partial
// batches and negative quantities count as zero; counts beyond math.MaxInt
// saturate.
func FloorDiv(qty float64, size int) int {
	if size <= 0 || qty <= 0 {
		return 0
	}
	batches := math.Floor(qty / float64(size))
	if batches >= math.MaxInt {
		return math.MaxInt
	}
	return int(batches)
}

// Lots truncates qty down to a whole number of lots of size.
func Lots(qty float64, size int) float64 {
	if size <= 0 || qty <= 0 {
		return 0
	}
	return math.Floor(qty/float64(size)) * float64(size)
}

// MulCount multiplies two non-negative counts. It reports false when the
// product does not fit in an int.
func MulCount(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}
