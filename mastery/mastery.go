// SPDX-License-Identifier: MIT
// Package mastery applies one Bayesian Knowledge Tracing update to a
// learner's mastery-odds vector given an observed score and the attempted
// activity's guess/slip/transit parameters.
package mastery

import (
	"math"

	"github.com/harvard-vpal/alosi-go/bkterr"
)

// Update returns a new mastery-odds vector L' after observing score s on an
// activity whose KC-aligned guess/slip/transit rows are given. L, guess,
// slip, and transit must all share the same length K.
//
// The update follows:
//
//	x0    = slip · (1+guess) / (1+slip)
//	x1_0  = ((1+guess) / (guess·(1+slip))) / x0
//	L'    = L · x0 · x1_0^s
//	L'    = L' + transit · (L' + 1)
//
// Post-conditions: every entry is clamped into [epsilon, 1/epsilon] (so +Inf
// becomes 1/epsilon and exact zeros become epsilon) — the output is always a
// strictly positive K-vector of odds.
func Update(L []float64, score float64, guess, slip, transit []float64, epsilon float64) ([]float64, error) {
	k := len(L)
	if len(guess) != k || len(slip) != k || len(transit) != k {
		return nil, bkterr.NewValidationError("Update", "guess/slip/transit", "must match len(L)")
	}
	if score < 0 || score > 1 {
		return nil, bkterr.NewValidationError("Update", "score", "must be in [0,1]")
	}

	out := make([]float64, k)
	for i := 0; i < k; i++ {
		g, s, tr := guess[i], slip[i], transit[i]

		x0 := s * (1 + g) / (1 + s)
		x10 := ((1 + g) / (g * (1 + s))) / x0

		lp := L[i] * x0 * math.Pow(x10, score)
		lp = lp + tr*(lp+1)

		if lp > 1/epsilon {
			lp = 1 / epsilon
		} else if lp < epsilon {
			lp = epsilon
		}
		out[i] = lp
	}

	return out, nil
}
