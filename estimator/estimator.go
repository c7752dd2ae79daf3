// SPDX-License-Identifier: MIT
// Package estimator implements batch BKT parameter re-estimation
// ("training"): aggregating per-learner knowledge inference over all score
// records into new guess/slip/transit matrices and a new mastery prior,
// gated by information and relevance thresholds and an optional degeneracy
// filter. This engine uses empirical-count updates with regularization
// thresholds, never gradient descent or EM.
package estimator

import (
	"math"
	"sort"

	"github.com/harvard-vpal/alosi-go/bkterr"
	"github.com/harvard-vpal/alosi-go/inference"
	"github.com/harvard-vpal/alosi-go/matrix"
	"github.com/harvard-vpal/alosi-go/numeric"
	"github.com/harvard-vpal/alosi-go/relevance"
)

// ScoreRecord is one (learner, activity, score) observation, the unit the
// whole system accumulates over. ScoreRecords grow monotonically and are
// append-only; Learner/Activity index into the learner and activity
// spaces respectively.
type ScoreRecord struct {
	// ID optionally identifies the originating request, for Store
	// implementations that dedupe against at-least-once delivery. Empty ID
	// means "no dedup requested".
	ID       string
	Learner  int64
	Activity int64
	Score    float64
}

// EstimateInputs bundles all state a Train cycle needs.
type EstimateInputs struct {
	Records []ScoreRecord

	Guess, Slip, Transit *matrix.Dense // current Q×K parameter matrices
	MasteryPrior         []float64     // current K-vector

	RelevanceThreshold   float64 // default 0.01; relevance values below are treated as zero
	InformationThreshold float64 // default 20; minimum evidence weight to emit a new estimate
	RemoveDegeneracy     bool    // default true
	Epsilon              float64 // odds regularization epsilon
}

// EstimateResult holds the newly estimated matrices/vector (all-finite,
// NaN-filled from the pre-training matrices so they are safe to write
// back), plus pre-fill "with NaN" diagnostic views exposing exactly which
// cells had insufficient evidence.
type EstimateResult struct {
	Guess, Slip, Transit *matrix.Dense
	MasteryPrior         []float64

	GuessWithNaN, SlipWithNaN, TransitWithNaN *matrix.Dense
	MasteryPriorWithNaN                       []float64
}

type accumulator struct {
	num, denom *matrix.Dense // Q×K
}

func newAccumulator(q, k int) (*accumulator, error) {
	num, err := matrix.NewZeros(q, k)
	if err != nil {
		return nil, err
	}
	denom, err := matrix.NewZeros(q, k)
	if err != nil {
		return nil, err
	}
	return &accumulator{num: num, denom: denom}, nil
}

func (a *accumulator) add(q, k int, num, denom float64) error {
	if num != 0 {
		cur, err := a.num.At(q, k)
		if err != nil {
			return err
		}
		if err := a.num.Set(q, k, cur+num); err != nil {
			return err
		}
	}
	if denom != 0 {
		cur, err := a.denom.At(q, k)
		if err != nil {
			return err
		}
		if err := a.denom.Set(q, k, cur+denom); err != nil {
			return err
		}
	}
	return nil
}

func threshold(v, t float64) float64 {
	if v >= t {
		return 1
	}
	return 0
}

// Estimate runs one full batch training cycle and returns the re-estimated
// parameters. Callers (the engine facade) write the result back to
// storage; this function itself never mutates inputs and never touches
// storage.
func Estimate(in EstimateInputs) (EstimateResult, error) {
	if err := validate(in); err != nil {
		return EstimateResult{}, err
	}

	q, k := in.Guess.Rows(), in.Guess.Cols()

	rel, err := relevance.FromOdds(in.Guess, in.Slip)
	if err != nil {
		return EstimateResult{}, err
	}

	guessAcc, err := newAccumulator(q, k)
	if err != nil {
		return EstimateResult{}, err
	}
	slipAcc, err := newAccumulator(q, k)
	if err != nil {
		return EstimateResult{}, err
	}
	transitAcc, err := newAccumulator(q, k)
	if err != nil {
		return EstimateResult{}, err
	}
	priorNum := make([]float64, k)
	priorDenom := make([]float64, k)

	for _, learnerRecords := range groupByLearner(in.Records) {
		if err := accumulateLearner(learnerRecords, rel, in.Guess, in.Slip, in.RelevanceThreshold,
			guessAcc, slipAcc, transitAcc, priorNum, priorDenom); err != nil {
			return EstimateResult{}, err
		}
	}

	guessWithNaN, guessFinal, err := finalize(guessAcc, in.Guess, in.InformationThreshold, in.Epsilon)
	if err != nil {
		return EstimateResult{}, err
	}
	slipWithNaN, slipFinal, err := finalize(slipAcc, in.Slip, in.InformationThreshold, in.Epsilon)
	if err != nil {
		return EstimateResult{}, err
	}

	if in.RemoveDegeneracy {
		if err := removeDegeneracy(guessWithNaN, slipWithNaN, guessFinal, slipFinal, in.Guess, in.Slip, in.Epsilon); err != nil {
			return EstimateResult{}, err
		}
	}

	transitWithNaN, transitFinal, err := finalize(transitAcc, in.Transit, in.InformationThreshold, in.Epsilon)
	if err != nil {
		return EstimateResult{}, err
	}

	priorWithNaN, priorFinal := finalizeVector(priorNum, priorDenom, in.MasteryPrior, in.InformationThreshold, in.Epsilon)

	return EstimateResult{
		Guess:               guessFinal,
		Slip:                slipFinal,
		Transit:             transitFinal,
		MasteryPrior:        priorFinal,
		GuessWithNaN:        guessWithNaN,
		SlipWithNaN:         slipWithNaN,
		TransitWithNaN:      transitWithNaN,
		MasteryPriorWithNaN: priorWithNaN,
	}, nil
}

func validate(in EstimateInputs) error {
	if err := matrix.ValidateNotNil(in.Guess); err != nil {
		return err
	}
	if err := matrix.ValidateNotNil(in.Slip); err != nil {
		return err
	}
	if err := matrix.ValidateNotNil(in.Transit); err != nil {
		return err
	}
	if err := matrix.ValidateSameShape(in.Guess, in.Slip); err != nil {
		return err
	}
	if err := matrix.ValidateSameShape(in.Guess, in.Transit); err != nil {
		return err
	}
	if len(in.MasteryPrior) != in.Guess.Cols() {
		return bkterr.NewValidationError("Estimate", "MasteryPrior", "length must equal K")
	}
	for _, rec := range in.Records {
		if rec.Score < 0 || rec.Score > 1 {
			return bkterr.NewValidationError("Estimate", "Score", "must be in [0,1]")
		}
	}
	return nil
}

// groupByLearner partitions Records by Learner, preserving the relative
// (chronological) order within each learner's subsequence — the z-matrix
// construction in knowledge inference is order-sensitive.
func groupByLearner(records []ScoreRecord) [][]ScoreRecord {
	order := make([]int64, 0)
	byLearner := make(map[int64][]ScoreRecord)
	for _, rec := range records {
		if _, ok := byLearner[rec.Learner]; !ok {
			order = append(order, rec.Learner)
		}
		byLearner[rec.Learner] = append(byLearner[rec.Learner], rec)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	out := make([][]ScoreRecord, 0, len(order))
	for _, learner := range order {
		out = append(out, byLearner[learner])
	}
	return out
}

func accumulateLearner(
	records []ScoreRecord,
	rel, guess, slip *matrix.Dense,
	relevanceThreshold float64,
	guessAcc, slipAcc, transitAcc *accumulator,
	priorNum, priorDenom []float64,
) error {
	n := len(records)
	if n == 0 {
		return nil
	}
	k := rel.Cols()

	// u_R: boolean mask over KCs the learner's attempts collectively touch.
	// attemptRel stacks one relevance row per attempt so the per-KC exposure
	// total can be read off with a single ColSums instead of a hand loop.
	attemptRel, err := matrix.NewZeros(n, k)
	if err != nil {
		return err
	}
	mku := make([][]float64, n) // per-attempt boolean relevance mask
	infRecords := make([]inference.ScoreRecord, n)
	for i, rec := range records {
		row, err := rel.Row(int(rec.Activity))
		if err != nil {
			return err
		}
		if err := attemptRel.SetRow(i, row); err != nil {
			return err
		}
		mkRow := make([]float64, k)
		for kk := 0; kk < k; kk++ {
			mkRow[kk] = threshold(row[kk], relevanceThreshold)
		}
		mku[i] = mkRow
		infRecords[i] = inference.ScoreRecord{Activity: int(rec.Activity), Score: rec.Score}
	}
	exposure, err := matrix.ColSums(attemptRel)
	if err != nil {
		return err
	}
	uR := make([]float64, k)
	for kk := 0; kk < k; kk++ {
		uR[kk] = threshold(exposure[kk], relevanceThreshold)
	}

	knowledge, err := inference.Knowledge(infRecords, guess, slip)
	if err != nil {
		return err
	}

	k0, err := knowledge.Row(0)
	if err != nil {
		return err
	}
	for kk := 0; kk < k; kk++ {
		priorNum[kk] += k0[kk] * uR[kk]
		priorDenom[kk] += uR[kk]
	}

	for i, rec := range records {
		knowRow, err := knowledge.Row(i)
		if err != nil {
			return err
		}
		q := int(rec.Activity)
		for kk := 0; kk < k; kk++ {
			m := mku[i][kk]
			kn := knowRow[kk]

			if err := guessAcc.add(q, kk, m*(1-kn)*rec.Score, m*(1-kn)); err != nil {
				return err
			}
			if err := slipAcc.add(q, kk, m*kn*(1-rec.Score), m*kn); err != nil {
				return err
			}
			if i < n-1 {
				knowNext, err := knowledge.Row(i + 1)
				if err != nil {
					return err
				}
				if err := transitAcc.add(q, kk, m*(1-kn)*knowNext[kk], m*(1-kn)); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// finalize divides numerator by denominator where denom>0, NaNs out cells
// below the information threshold, converts surviving probabilities to
// odds, and fills NaN entries from current (pre-training) values. Returns
// both the pre-fill "with NaN" view and the final all-finite matrix.
func finalize(acc *accumulator, current *matrix.Dense, informationThreshold, epsilon float64) (withNaN, final *matrix.Dense, err error) {
	q, k := acc.num.Rows(), acc.num.Cols()
	withNaN, err = matrix.NewDense(q, k)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < q; i++ {
		for j := 0; j < k; j++ {
			num, err := acc.num.At(i, j)
			if err != nil {
				return nil, nil, err
			}
			denom, err := acc.denom.At(i, j)
			if err != nil {
				return nil, nil, err
			}
			v := insufficientEvidence
			if denom > 0 && denom >= informationThreshold {
				v = num / denom
			}
			if err := withNaN.Set(i, j, v); err != nil {
				return nil, nil, err
			}
		}
	}

	final, err = fillFromCurrentAsOdds(withNaN, current, epsilon)
	if err != nil {
		return nil, nil, err
	}

	// Clamp the whole matrix into [epsilon, 1/epsilon] odds range before
	// it becomes the write-back candidate.
	clipped, err := matrix.Clip(final, epsilon, 1/epsilon)
	if err != nil {
		return nil, nil, err
	}
	final = clipped.(*matrix.Dense)

	return withNaN, final, nil
}

// insufficientEvidence is the NaN sentinel for "no estimate": not an error,
// the explicit signal that a cell lacked enough evidence (§7).
var insufficientEvidence = math.NaN()

// removeDegeneracy NaNs out guess[q,k] when guess>=0.5 or guess+slip>=1, and
// independently NaNs out slip[q,k] when slip>=0.5 or guess+slip>=1. The two
// conditions are evaluated separately: a cell can be degenerate for guess
// without being degenerate for slip, and vice versa.
func removeDegeneracy(guessWithNaN, slipWithNaN, guessFinal, slipFinal, guessCur, slipCur *matrix.Dense, epsilon float64) error {
	q, k := guessWithNaN.Rows(), guessWithNaN.Cols()
	for i := 0; i < q; i++ {
		for j := 0; j < k; j++ {
			gp, err := probOf(guessWithNaN, guessCur, i, j, epsilon)
			if err != nil {
				return err
			}
			sp, err := probOf(slipWithNaN, slipCur, i, j, epsilon)
			if err != nil {
				return err
			}
			sum := gp + sp
			if gp >= 0.5 || sum >= 1 {
				if err := guessWithNaN.Set(i, j, insufficientEvidence); err != nil {
					return err
				}
			}
			if sp >= 0.5 || sum >= 1 {
				if err := slipWithNaN.Set(i, j, insufficientEvidence); err != nil {
					return err
				}
			}
		}
	}
	// recompute finals after the extra NaN-out.
	newGuessFinal, err := fillFromCurrentAsOdds(guessWithNaN, guessCur, epsilon)
	if err != nil {
		return err
	}
	newSlipFinal, err := fillFromCurrentAsOdds(slipWithNaN, slipCur, epsilon)
	if err != nil {
		return err
	}
	clippedGuess, err := matrix.Clip(newGuessFinal, epsilon, 1/epsilon)
	if err != nil {
		return err
	}
	clippedSlip, err := matrix.Clip(newSlipFinal, epsilon, 1/epsilon)
	if err != nil {
		return err
	}
	copyInto(guessFinal, clippedGuess.(*matrix.Dense))
	copyInto(slipFinal, clippedSlip.(*matrix.Dense))
	return nil
}

func copyInto(dst, src *matrix.Dense) {
	rows := src.Rows()
	for i := 0; i < rows; i++ {
		row, _ := src.Row(i)
		_ = dst.SetRow(i, row)
	}
}

// probOf returns the probability estimate used for degeneracy checking: the
// raw (pre-fill, pre-odds) estimate where present, else the current odds
// matrix converted back to a probability.
func probOf(withNaNOrFinal, current *matrix.Dense, i, j int, epsilon float64) (float64, error) {
	v, err := withNaNOrFinal.At(i, j)
	if err != nil {
		return 0, err
	}
	if v == v { // not NaN
		return v, nil
	}
	cur, err := current.At(i, j)
	if err != nil {
		return 0, err
	}
	return numeric.ProbFromOdds(cur), nil
}

// fillFromCurrentAsOdds converts every finite (surviving) probability entry
// of withNaN to odds, and fills every NaN entry from the corresponding
// current odds matrix, so the result is all-finite and safe to write back.
func fillFromCurrentAsOdds(withNaN, current *matrix.Dense, epsilon float64) (*matrix.Dense, error) {
	q, k := withNaN.Rows(), withNaN.Cols()
	out, err := matrix.NewDense(q, k)
	if err != nil {
		return nil, err
	}
	for i := 0; i < q; i++ {
		for j := 0; j < k; j++ {
			v, err := withNaN.At(i, j)
			if err != nil {
				return nil, err
			}
			var odds float64
			if v == v { // finite probability estimate
				odds = numeric.OddsClip(v, epsilon)
			} else {
				odds, err = current.At(i, j)
				if err != nil {
					return nil, err
				}
			}
			if err := out.Set(i, j, odds); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func finalizeVector(num, denom, current []float64, informationThreshold, epsilon float64) (withNaN, final []float64) {
	k := len(num)
	withNaN = make([]float64, k)
	final = make([]float64, k)
	for i := 0; i < k; i++ {
		if denom[i] > 0 && denom[i] >= informationThreshold {
			withNaN[i] = num[i] / denom[i]
			final[i] = numeric.OddsClip(withNaN[i], epsilon)
		} else {
			withNaN[i] = insufficientEvidence
			final[i] = current[i]
		}
	}
	return withNaN, final
}
