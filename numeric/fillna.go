// SPDX-License-Identifier: MIT
package numeric

import (
	"math"

	"github.com/harvard-vpal/alosi-go/bkterr"
)

func nonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// FillNaN returns a new slice equal to x, with every NaN/±Inf entry replaced
// by fill. Finite entries of x are left exactly unchanged (§8 invariant 4).
func FillNaN(x []float64, fill float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	FillNaNInto(out, fill)
	return out
}

// FillNaNInto replaces every NaN/±Inf entry of x with fill, in place.
func FillNaNInto(x []float64, fill float64) {
	for i, v := range x {
		if nonFinite(v) {
			x[i] = fill
		}
	}
}

// FillNaNWith returns a new slice equal to x, with every NaN/±Inf entry of x
// replaced by the corresponding entry of the same-shape companion array
// fill. Returns a *bkterr.ValidationError if the lengths differ.
func FillNaNWith(x, fill []float64) ([]float64, error) {
	out := make([]float64, len(x))
	copy(out, x)
	if err := FillNaNWithInto(out, fill); err != nil {
		return nil, err
	}
	return out, nil
}

// FillNaNWithInto replaces every NaN/±Inf entry of x with the corresponding
// entry of fill, in place.
func FillNaNWithInto(x, fill []float64) error {
	if len(x) != len(fill) {
		return bkterr.NewValidationError("FillNaNWithInto", "fill", "length must match x")
	}
	for i, v := range x {
		if nonFinite(v) {
			x[i] = fill[i]
		}
	}
	return nil
}
