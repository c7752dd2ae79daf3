// SPDX-License-Identifier: MIT
package estimator

import (
	"math"
	"testing"

	"github.com/harvard-vpal/alosi-go/matrix"
	"github.com/stretchr/testify/require"
)

// A cell can be degenerate for guess without being degenerate for slip, and
// vice versa: (guess=0.3, slip=0.6) must NaN only slip (slip>=0.5), while
// (guess=0.6, slip=0.1) must NaN only guess (guess>=0.5). Neither cell's
// sum reaches 1, so the shared "sum>=1" branch never fires here.
func TestRemoveDegeneracy_AppliesGuessAndSlipConditionsIndependently(t *testing.T) {
	guessWithNaN, err := matrix.NewDenseFromRows([][]float64{{0.3, 0.6}})
	require.NoError(t, err)
	slipWithNaN, err := matrix.NewDenseFromRows([][]float64{{0.6, 0.1}})
	require.NoError(t, err)
	guessCur, err := matrix.NewDenseFromRows([][]float64{{1, 1}})
	require.NoError(t, err)
	slipCur, err := matrix.NewDenseFromRows([][]float64{{1, 1}})
	require.NoError(t, err)
	guessFinal, err := matrix.NewDense(1, 2)
	require.NoError(t, err)
	slipFinal, err := matrix.NewDense(1, 2)
	require.NoError(t, err)

	require.NoError(t, removeDegeneracy(guessWithNaN, slipWithNaN, guessFinal, slipFinal, guessCur, slipCur, 1e-6))

	g0, err := guessWithNaN.At(0, 0)
	require.NoError(t, err)
	require.False(t, math.IsNaN(g0), "guess=0.3 < 0.5 and sum=0.9 < 1: must survive")

	s0, err := slipWithNaN.At(0, 0)
	require.NoError(t, err)
	require.True(t, math.IsNaN(s0), "slip=0.6 >= 0.5: must be NaN'd independently of guess")

	g1, err := guessWithNaN.At(0, 1)
	require.NoError(t, err)
	require.True(t, math.IsNaN(g1), "guess=0.6 >= 0.5: must be NaN'd independently of slip")

	s1, err := slipWithNaN.At(0, 1)
	require.NoError(t, err)
	require.False(t, math.IsNaN(s1), "slip=0.1 < 0.5 and sum=0.7 < 1: must survive")
}
