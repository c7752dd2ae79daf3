// SPDX-License-Identifier: MIT
package numeric_test

import (
	"math"
	"testing"

	"github.com/harvard-vpal/alosi-go/bkterr"
	"github.com/harvard-vpal/alosi-go/matrix"
	"github.com/harvard-vpal/alosi-go/numeric"
	"github.com/stretchr/testify/require"
)

func TestOdds_RoundTripsWithProbFromOdds(t *testing.T) {
	eps := 1e-9
	for _, p := range []float64{0.001, 0.1, 0.5, 0.9, 0.999} {
		x, err := numeric.Odds(p, eps)
		require.NoError(t, err)

		back := numeric.ProbFromOdds(x)
		require.InDelta(t, p, back, 1e-6)
	}
}

func TestOdds_RejectsOutOfDomain(t *testing.T) {
	_, err := numeric.Odds(1.5, 1e-9)
	require.Error(t, err)
	var domainErr *bkterr.NumericDomainError
	require.ErrorAs(t, err, &domainErr)
	require.ErrorIs(t, err, bkterr.ErrNumericDomain)

	_, err = numeric.Odds(-0.1, 1e-9)
	require.Error(t, err)
}

func TestOddsClip_ClampsBoundaryValues(t *testing.T) {
	eps := 0.01
	x := numeric.OddsClip(0, eps)
	require.Equal(t, eps/(1-eps), x)

	x = numeric.OddsClip(1, eps)
	require.Equal(t, (1-eps)/(1-(1-eps)), x)
}

func TestReplaceNonFiniteDense(t *testing.T) {
	d, err := matrix.NewDenseFromRows([][]float64{{1, math.NaN()}, {math.Inf(-1), 4}})
	require.NoError(t, err)

	out, err := numeric.ReplaceNonFiniteDense(d, -1)
	require.NoError(t, err)

	v, err := out.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, -1.0, v)
}

func TestReplaceNonFiniteDenseInto(t *testing.T) {
	d, err := matrix.NewDenseFromRows([][]float64{{math.NaN(), 2}})
	require.NoError(t, err)

	require.NoError(t, numeric.ReplaceNonFiniteDenseInto(d, 0))
	v, err := d.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)
}
