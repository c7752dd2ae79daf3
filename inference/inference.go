// SPDX-License-Identifier: MIT
// Package inference computes per-learner empirical knowledge inference: for
// a chronological sequence of a learner's score records, it infers for each
// knowledge component the posterior probability that the KC was already
// mastered at the time of each attempt. This is the z-matrix algorithm used
// internally by the estimator's training procedure.
package inference

import (
	"math"

	"github.com/harvard-vpal/alosi-go/bkterr"
	"github.com/harvard-vpal/alosi-go/matrix"
)

// ScoreRecord is one learner's scored attempt at an activity, in
// chronological order. Activity indexes a row of the guess/slip matrices.
type ScoreRecord struct {
	Activity int
	Score    float64 // correctness c_n in [0,1]
}

// Knowledge computes the N×K matrix knowl where knowl[n,k] is the inferred
// posterior probability that KC k was already mastered at the time of the
// n-th attempt in records. guess and slip are the Q×K global parameter
// matrices; records must be ordered chronologically for one learner.
func Knowledge(records []ScoreRecord, guess, slip *matrix.Dense) (*matrix.Dense, error) {
	n := len(records)
	if n == 0 {
		return nil, bkterr.NewValidationError("Knowledge", "records", "must be non-empty")
	}
	if err := matrix.ValidateNotNil(guess); err != nil {
		return nil, err
	}
	if err := matrix.ValidateNotNil(slip); err != nil {
		return nil, err
	}
	k := guess.Cols()

	// mg[n,k] = -log(guess[q_n,k]); ms[n,k] = -log(slip[q_n,k])
	mg := make([][]float64, n)
	ms := make([][]float64, n)
	for i, rec := range records {
		gRow, err := guess.Row(rec.Activity)
		if err != nil {
			return nil, err
		}
		sRow, err := slip.Row(rec.Activity)
		if err != nil {
			return nil, err
		}
		mgRow := make([]float64, k)
		msRow := make([]float64, k)
		for kk := 0; kk < k; kk++ {
			mgRow[kk] = -math.Log(gRow[kk])
			msRow[kk] = -math.Log(sRow[kk])
		}
		mg[i] = mgRow
		ms[i] = msRow
	}

	// z is (N+1)×K.
	z, err := matrix.NewDense(n+1, k)
	if err != nil {
		return nil, err
	}
	for kk := 0; kk < k; kk++ {
		// z[0,k]: hypothesis "mastered for all N" — every attempt is scored
		// against the slip cost, weighted by its incorrectness.
		var z0 float64
		for i := 0; i < n; i++ {
			z0 += (1 - records[i].Score) * ms[i][kk]
		}
		_ = z.Set(0, kk, z0)

		// z[N,k]: hypothesis "mastered for none" — every attempt scored
		// against the guess cost, weighted by its correctness.
		var zN float64
		for i := 0; i < n; i++ {
			zN += records[i].Score * mg[i][kk]
		}
		_ = z.Set(n, kk, zN)

		// z[m,k] for 0<m<N: mastered starting from attempt m onward.
		for m := 1; m < n; m++ {
			var acc float64
			for i := 0; i < m; i++ {
				acc += records[i].Score * mg[i][kk]
			}
			for i := m; i < n; i++ {
				acc += (1 - records[i].Score) * ms[i][kk]
			}
			_ = z.Set(m, kk, acc)
		}
	}

	out, err := matrix.NewDense(n, k)
	if err != nil {
		return nil, err
	}
	for kk := 0; kk < k; kk++ {
		col, err := columnOf(z, kk)
		if err != nil {
			return nil, err
		}
		minimizers := argminAll(col)
		indicator := make([]float64, n)
		for _, i := range minimizers {
			for idx := range indicator {
				indicator[idx] += indicatorFor(i, n, idx)
			}
		}
		denom := float64(len(minimizers))
		for idx := 0; idx < n; idx++ {
			if err := out.Set(idx, kk, indicator[idx]/denom); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

func columnOf(m *matrix.Dense, col int) ([]float64, error) {
	rows := m.Rows()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		v, err := m.At(i, col)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// argminAll returns every index achieving the minimum of x, preserving
// order of first occurrence — ties are preserved rather than broken, per
// §4.5's uniform tie-averaging.
func argminAll(x []float64) []int {
	min := math.Inf(1)
	for _, v := range x {
		if v < min {
			min = v
		}
	}
	var idxs []int
	for i, v := range x {
		if v == min {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// indicatorFor reports the value at position idx (0<=idx<n) of the
// indicator vector for minimizing row i: all-ones if i=0, ones on [i,N) if
// 0<i<N, all-zeros if i=N.
func indicatorFor(i, n, idx int) float64 {
	if i == 0 {
		return 1
	}
	if i == n {
		return 0
	}
	if idx >= i {
		return 1
	}
	return 0
}
