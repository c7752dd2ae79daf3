// SPDX-License-Identifier: MIT
// Package relevance computes how informative an activity is about a
// knowledge component: relevance = -log(guess_odds) - log(slip_odds).
// This is used both by the recommendation scorer (on stored parameters) and
// by the estimator (to weight which KCs a given score is informative
// about).
package relevance

import (
	"math"

	"github.com/harvard-vpal/alosi-go/matrix"
)

// FromOdds computes the Q×K relevance matrix from guess and slip odds
// matrices of identical shape. Shape-preserving.
func FromOdds(guessOdds, slipOdds *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(guessOdds); err != nil {
		return nil, err
	}
	if err := matrix.ValidateNotNil(slipOdds); err != nil {
		return nil, err
	}
	if err := matrix.ValidateSameShape(guessOdds, slipOdds); err != nil {
		return nil, err
	}

	rows, cols := guessOdds.Rows(), guessOdds.Cols()
	logGuess, err := matrix.NewZeros(rows, cols)
	if err != nil {
		return nil, err
	}
	logSlip, err := matrix.NewZeros(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		g, err := guessOdds.Row(i)
		if err != nil {
			return nil, err
		}
		s, err := slipOdds.Row(i)
		if err != nil {
			return nil, err
		}
		logGRow := make([]float64, cols)
		logSRow := make([]float64, cols)
		for k := 0; k < cols; k++ {
			logGRow[k] = math.Log(g[k])
			logSRow[k] = math.Log(s[k])
		}
		if err := logGuess.SetRow(i, logGRow); err != nil {
			return nil, err
		}
		if err := logSlip.SetRow(i, logSRow); err != nil {
			return nil, err
		}
	}

	logSum, err := matrix.Add(logGuess, logSlip)
	if err != nil {
		return nil, err
	}
	negated, err := matrix.Scale(logSum, -1)
	if err != nil {
		return nil, err
	}

	return negated.(*matrix.Dense), nil
}

// FromOddsVec computes relevance element-wise over two equal-length odds
// vectors, e.g. a single activity's guess/slip row.
func FromOddsVec(guessOdds, slipOdds []float64) []float64 {
	out := make([]float64, len(guessOdds))
	for k := range guessOdds {
		out[k] = -math.Log(guessOdds[k]) - math.Log(slipOdds[k])
	}
	return out
}
