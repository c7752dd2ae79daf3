// SPDX-License-Identifier: MIT
package mastery_test

import (
	"math"
	"testing"

	"github.com/harvard-vpal/alosi-go/mastery"
	"github.com/stretchr/testify/require"
)

// TestUpdate_PerfectScore exercises the K=2 perfect-score scenario: with
// transit=0, the update reduces to L' = L * (1+guess)/(guess*(1+slip)).
func TestUpdate_PerfectScore(t *testing.T) {
	L := []float64{1.0, 1.0}
	guess := []float64{0.1, 0.2}
	slip := []float64{0.1, 0.1}
	transit := []float64{0, 0}

	got, err := mastery.Update(L, 1.0, guess, slip, transit, 1e-10)
	require.NoError(t, err)

	want0 := (1 + guess[0]) / (guess[0] * (1 + slip[0]))
	want1 := (1 + guess[1]) / (guess[1] * (1 + slip[1]))
	require.InDelta(t, want0, got[0], 1e-9)
	require.InDelta(t, want1, got[1], 1e-9)
}

func TestUpdate_ZeroScoreIsNonIncreasingWhenSlipBelowOneAndNoTransit(t *testing.T) {
	L := []float64{2.0, 3.0}
	guess := []float64{0.1, 0.2}
	slip := []float64{0.3, 0.4}
	transit := []float64{0, 0}

	got, err := mastery.Update(L, 0.0, guess, slip, transit, 1e-10)
	require.NoError(t, err)

	for i := range L {
		require.LessOrEqual(t, got[i], L[i])
	}
}

func TestUpdate_PostConditionsSanitizeBoundaryOutputs(t *testing.T) {
	// A huge transit (1e300) combined with near-infinite odds pushes the result to
	// +Inf, which must be clamped to 1/epsilon.
	L := []float64{1e300}
	guess := []float64{0.999999}
	slip := []float64{1e-300}
	transit := []float64{1e300}

	got, err := mastery.Update(L, 1.0, guess, slip, transit, 1e-10)
	require.NoError(t, err)
	require.False(t, math.IsInf(got[0], 1))
	require.Equal(t, 1/1e-10, got[0])
}

func TestUpdate_RejectsScoreOutOfRange(t *testing.T) {
	_, err := mastery.Update([]float64{1}, 1.5, []float64{1}, []float64{1}, []float64{0}, 1e-10)
	require.Error(t, err)
}

func TestUpdate_RejectsLengthMismatch(t *testing.T) {
	_, err := mastery.Update([]float64{1, 1}, 1.0, []float64{1}, []float64{1, 1}, []float64{0, 0}, 1e-10)
	require.Error(t, err)
}
