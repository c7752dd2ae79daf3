// SPDX-License-Identifier: MIT
package relevance_test

import (
	"math"
	"testing"

	"github.com/harvard-vpal/alosi-go/matrix"
	"github.com/harvard-vpal/alosi-go/relevance"
	"github.com/stretchr/testify/require"
)

func TestFromOdds(t *testing.T) {
	guess, err := matrix.NewDenseFromRows([][]float64{{0.1, 0.2}})
	require.NoError(t, err)
	slip, err := matrix.NewDenseFromRows([][]float64{{0.1, 0.1}})
	require.NoError(t, err)

	r, err := relevance.FromOdds(guess, slip)
	require.NoError(t, err)

	v, err := r.At(0, 0)
	require.NoError(t, err)
	require.InDelta(t, -math.Log(0.1)-math.Log(0.1), v, 1e-12)
}

func TestFromOdds_ShapeMismatch(t *testing.T) {
	guess, _ := matrix.NewDense(2, 2)
	slip, _ := matrix.NewDense(3, 2)
	_, err := relevance.FromOdds(guess, slip)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestFromOddsVec(t *testing.T) {
	out := relevance.FromOddsVec([]float64{0.1, 0.2}, []float64{0.1, 0.1})
	require.InDelta(t, -math.Log(0.1)-math.Log(0.1), out[0], 1e-12)
	require.InDelta(t, -math.Log(0.2)-math.Log(0.1), out[1], 1e-12)
}
