// SPDX-License-Identifier: MIT
package inference_test

import (
	"testing"

	"github.com/harvard-vpal/alosi-go/inference"
	"github.com/harvard-vpal/alosi-go/matrix"
	"github.com/stretchr/testify/require"
)

func TestKnowledge_Shape(t *testing.T) {
	guess, err := matrix.NewDenseFromRows([][]float64{{0.1, 0.2}, {0.15, 0.25}})
	require.NoError(t, err)
	slip, err := matrix.NewDenseFromRows([][]float64{{0.1, 0.1}, {0.2, 0.2}})
	require.NoError(t, err)

	records := []inference.ScoreRecord{
		{Activity: 0, Score: 1},
		{Activity: 1, Score: 0},
		{Activity: 0, Score: 1},
	}

	knowl, err := inference.Knowledge(records, guess, slip)
	require.NoError(t, err)
	require.Equal(t, 3, knowl.Rows())
	require.Equal(t, 2, knowl.Cols())

	// every entry must be a valid probability in [0,1]
	for i := 0; i < knowl.Rows(); i++ {
		row, err := knowl.Row(i)
		require.NoError(t, err)
		for _, v := range row {
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestKnowledge_SingleAttempt_AllOrNothing(t *testing.T) {
	// With N=1, z has 2 rows per KC: z[0] (all mastered) vs z[1] (none
	// mastered). A correct answer makes z[0]=0 the unique minimizer; the
	// result has one row per attempt.
	guess, _ := matrix.NewDenseFromRows([][]float64{{0.1}})
	slip, _ := matrix.NewDenseFromRows([][]float64{{0.1}})

	records := []inference.ScoreRecord{{Activity: 0, Score: 1}}
	knowl, err := inference.Knowledge(records, guess, slip)
	require.NoError(t, err)
	require.Equal(t, 1, knowl.Rows())
}

func TestKnowledge_RejectsEmptyRecords(t *testing.T) {
	guess, _ := matrix.NewDense(1, 1)
	slip, _ := matrix.NewDense(1, 1)
	_, err := inference.Knowledge(nil, guess, slip)
	require.Error(t, err)
}
