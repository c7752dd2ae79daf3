// SPDX-License-Identifier: MIT
// Package recommend implements the four-part weighted activity scorer:
// Readiness (P), Remediation (R), Continuity (C), and Difficulty (D). The
// final per-activity score is weights·[P,R,C,D], and the engine facade
// picks the argmax over the activities it was asked to consider.
package recommend

import (
	"math"

	"github.com/harvard-vpal/alosi-go/bkterr"
	"github.com/harvard-vpal/alosi-go/matrix"
)

// Weights holds the four sub-strategy weights applied to P/R/C/D.
type Weights struct {
	Wp, Wr, Wd, Wc float64
}

// Thresholds holds the prereq-forgiveness and mastery-cutoff thresholds,
// both expressed in odds space, matching Mastery.
type Thresholds struct {
	RStar float64 // <= 0, prereq forgiveness threshold
	LStar float64 // mastery odds cutoff
}

// ScoreInputs bundles everything the scorer needs for one recommend() call.
type ScoreInputs struct {
	Relevance  *matrix.Dense // Q×K
	Mastery    []float64     // K, learner mastery odds, passed through unchanged by the caller
	Prereq     *matrix.Dense // K×K, NaN entries treated as 0
	Difficulty []float64     // Q
	Thresholds Thresholds
	Weights    Weights
	// RLast is the relevance vector (length K) of the learner's most
	// recently attempted activity. Nil means no prior attempt: C is the
	// zero vector (§8 invariant 6).
	RLast []float64
}

// ScoreBreakdown exposes the four sub-strategy vectors alongside the
// combined score, for diagnostic logging by the engine facade.
type ScoreBreakdown struct {
	P, R, C, D []float64
}

func validateShapes(in ScoreInputs) error {
	if err := matrix.ValidateNotNil(in.Relevance); err != nil {
		return err
	}
	if err := matrix.ValidateNotNil(in.Prereq); err != nil {
		return err
	}
	k := in.Relevance.Cols()
	if len(in.Mastery) != k {
		return bkterr.NewValidationError("Score", "Mastery", "length must equal relevance's column count (K)")
	}
	if in.Prereq.Rows() != k || in.Prereq.Cols() != k {
		return bkterr.NewValidationError("Score", "Prereq", "must be K×K")
	}
	if len(in.Difficulty) != in.Relevance.Rows() {
		return bkterr.NewValidationError("Score", "Difficulty", "length must equal relevance's row count (Q)")
	}
	if in.RLast != nil && len(in.RLast) != k {
		return bkterr.NewValidationError("Score", "RLast", "length must equal K when non-nil")
	}
	return nil
}

// Score computes the combined per-activity score vector (length Q) and
// returns an error if shapes are inconsistent.
func Score(in ScoreInputs) ([]float64, error) {
	scores, _, err := score(in)
	return scores, err
}

// ScoreWithBreakdown is like Score but also returns the four sub-strategy
// vectors, for diagnostic visibility.
func ScoreWithBreakdown(in ScoreInputs) ([]float64, ScoreBreakdown, error) {
	return score(in)
}

func score(in ScoreInputs) ([]float64, ScoreBreakdown, error) {
	if err := validateShapes(in); err != nil {
		return nil, ScoreBreakdown{}, err
	}

	p, err := ScoreP(in.Relevance, in.Mastery, in.Prereq, in.Thresholds.RStar, in.Thresholds.LStar)
	if err != nil {
		return nil, ScoreBreakdown{}, err
	}
	r, err := ScoreR(in.Relevance, in.Mastery, in.Thresholds.LStar)
	if err != nil {
		return nil, ScoreBreakdown{}, err
	}
	c, err := ScoreC(in.Relevance, in.RLast)
	if err != nil {
		return nil, ScoreBreakdown{}, err
	}
	d, err := ScoreD(in.Relevance, in.Mastery, in.Difficulty)
	if err != nil {
		return nil, ScoreBreakdown{}, err
	}

	q := in.Relevance.Rows()
	out := make([]float64, q)
	w := in.Weights
	for i := 0; i < q; i++ {
		out[i] = w.Wp*p[i] + w.Wr*r[i] + w.Wd*c[i] + w.Wc*d[i]
	}

	return out, ScoreBreakdown{P: p, R: r, C: c, D: d}, nil
}

// ScoreP computes the Readiness sub-score: a prereq mastery gap propagated
// through the prereq graph, applied against each activity's relevance.
// P is <= 0 component-wise; larger (closer to 0) is better.
//
// The propagation is a transpose-then-matvec: mr = W^T * gap, where gap[row]
// is the (capped) mastery deficit on KC row and W[row,col] is how much KC
// row is a prereq of KC col. The per-activity accumulation is in turn
// R * term, a second matvec against each activity's relevance row.
func ScoreP(R *matrix.Dense, L []float64, W *matrix.Dense, rStar, LStar float64) ([]float64, error) {
	k := len(L)
	gap := make([]float64, k)
	for row := 0; row < k; row++ {
		g := L[row] - LStar
		if g > 0 {
			g = 0
		}
		gap[row] = g
	}

	sanitizedW, err := matrix.ReplaceInfNaN(W, 0)
	if err != nil {
		return nil, err
	}
	wt, err := matrix.Transpose(sanitizedW)
	if err != nil {
		return nil, err
	}
	mr, err := matrix.MatVec(wt, gap)
	if err != nil {
		return nil, err
	}

	term := make([]float64, k)
	for kk := 0; kk < k; kk++ {
		t := mr[kk] + rStar
		if t > 0 {
			t = 0
		}
		term[kk] = t
	}

	return matrix.MatVec(R, term)
}

// ScoreR computes the Remediation sub-score: larger when the learner is
// below mastery on KCs the activity exercises. Non-negative.
func ScoreR(R *matrix.Dense, L []float64, LStar float64) ([]float64, error) {
	q, k := R.Rows(), R.Cols()
	out := make([]float64, q)
	for i := 0; i < q; i++ {
		row, err := R.Row(i)
		if err != nil {
			return nil, err
		}
		var acc float64
		for kk := 0; kk < k; kk++ {
			gap := LStar - L[kk]
			if gap < 0 {
				gap = 0
			}
			acc += row[kk] * gap
		}
		out[i] = acc
	}

	return out, nil
}

// ScoreC computes the Continuity sub-score: the zero vector exactly when
// rLast is nil (§8 invariant 6), otherwise sqrt(Σ_k R[q,k]·rLast[k]).
func ScoreC(R *matrix.Dense, rLast []float64) ([]float64, error) {
	q := R.Rows()
	out := make([]float64, q)
	if rLast == nil {
		return out, nil
	}

	k := R.Cols()
	for i := 0; i < q; i++ {
		row, err := R.Row(i)
		if err != nil {
			return nil, err
		}
		var acc float64
		for kk := 0; kk < k; kk++ {
			acc += row[kk] * rLast[kk]
		}
		if acc < 0 {
			acc = 0
		}
		out[i] = math.Sqrt(acc)
	}

	return out, nil
}

// ScoreD computes the Difficulty-match sub-score: penalizes mismatch
// between learner mastery and activity difficulty. Built as a Hadamard
// product of relevance against a per-activity |L-difficulty| matrix,
// row-summed and negated.
func ScoreD(R *matrix.Dense, L []float64, difficulty []float64) ([]float64, error) {
	q, k := R.Rows(), R.Cols()
	gap, err := matrix.NewZeros(q, k)
	if err != nil {
		return nil, err
	}
	for i := 0; i < q; i++ {
		for kk := 0; kk < k; kk++ {
			diff := L[kk] - difficulty[i]
			if diff < 0 {
				diff = -diff
			}
			if err := gap.Set(i, kk, diff); err != nil {
				return nil, err
			}
		}
	}

	weighted, err := matrix.Hadamard(R, gap)
	if err != nil {
		return nil, err
	}
	sums, err := matrix.RowSums(weighted)
	if err != nil {
		return nil, err
	}

	out := make([]float64, q)
	for i := 0; i < q; i++ {
		out[i] = -sums[i]
	}
	return out, nil
}

// Argmax returns the index of the maximum element of scores. On ties, the
// lowest index wins (§4.4).
func Argmax(scores []float64) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}
