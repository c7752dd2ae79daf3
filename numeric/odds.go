// SPDX-License-Identifier: MIT
// Package numeric provides the probability↔odds conversions and NaN/Inf
// sanitation that every other package in this module builds on. The engine
// keeps one canonical internal representation — odds — and performs the
// probability conversion only at the storage boundary, per the design note
// on odds vs. probability representations.
package numeric

import (
	"math"

	"github.com/harvard-vpal/alosi-go/bkterr"
	"github.com/harvard-vpal/alosi-go/matrix"
)

// DefaultEpsilon is the default regularization tolerance used to keep
// probabilities away from the 0/1 boundary before converting to odds.
const DefaultEpsilon = 1e-10

// clipProb clamps p into [eps, 1-eps].
func clipProb(p, eps float64) float64 {
	lo, hi := eps, 1-eps
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

// OddsClip clips p into [eps, 1-eps] unconditionally and returns p/(1-p).
// Use this when the caller has already accepted that out-of-range input is
// a clamping matter, not a contract violation (e.g. sanitizing externally
// sourced data before ingestion).
func OddsClip(p, eps float64) float64 {
	p = clipProb(p, eps)
	return p / (1 - p)
}

// Odds converts probability p to odds p/(1-p), clipping into [eps, 1-eps]
// first. Returns a *bkterr.NumericDomainError if p is negative or greater
// than 1 — i.e. if p is not itself a valid probability, as opposed to
// merely needing regularization at the boundary.
func Odds(p, eps float64) (float64, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, bkterr.NewNumericDomainError("Odds", p, "[0,1]")
	}
	return OddsClip(p, eps), nil
}

// ProbFromOdds converts odds x back to a probability: x/(1+x).
func ProbFromOdds(x float64) float64 {
	return x / (1 + x)
}

// OddsVec applies Odds element-wise. Returns the first encountered domain
// error, if any; partial results on error are discarded (nil returned).
func OddsVec(p []float64, eps float64) ([]float64, error) {
	out := make([]float64, len(p))
	for i, v := range p {
		o, err := Odds(v, eps)
		if err != nil {
			return nil, err
		}
		out[i] = o
	}
	return out, nil
}

// OddsClipVec applies OddsClip element-wise.
func OddsClipVec(p []float64, eps float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = OddsClip(v, eps)
	}
	return out
}

// ProbFromOddsVec applies ProbFromOdds element-wise.
func ProbFromOddsVec(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = ProbFromOdds(v)
	}
	return out
}

// ReplaceNonFiniteDense returns a copy of m with every NaN/±Inf entry
// replaced by fill. Thin wrapper over matrix.ReplaceInfNaN kept in this
// package so callers of numeric never need to import matrix directly for
// sanitation alone.
func ReplaceNonFiniteDense(m *matrix.Dense, fill float64) (*matrix.Dense, error) {
	out, err := matrix.ReplaceInfNaN(m, fill)
	if err != nil {
		return nil, err
	}
	return out.(*matrix.Dense), nil
}

// ReplaceNonFiniteDenseInto replaces every NaN/±Inf entry of m with fill,
// mutating m directly. Equivalent to ReplaceNonFiniteDense's inplace=true
// mode (§4.1 fillna).
func ReplaceNonFiniteDenseInto(m *matrix.Dense, fill float64) error {
	rows := m.Rows()
	for i := 0; i < rows; i++ {
		row, err := m.Row(i)
		if err != nil {
			return err
		}
		changed := false
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				row[j] = fill
				changed = true
			}
		}
		if changed {
			if err := m.SetRow(i, row); err != nil {
				return err
			}
		}
	}
	return nil
}
