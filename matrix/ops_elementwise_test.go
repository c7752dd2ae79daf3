// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/harvard-vpal/alosi-go/matrix"
	"github.com/stretchr/testify/require"
)

func TestReplaceInfNaN(t *testing.T) {
	d := must2D(t, [][]float64{{1, math.NaN()}, {math.Inf(1), 4}})

	out, err := matrix.ReplaceInfNaN(d, 0)
	require.NoError(t, err)

	for i, want := range []float64{1, 0, 0, 4} {
		v, err := out.At(i/2, i%2)
		require.NoError(t, err)
		require.Equal(t, want, v)
	}
}

func TestReplaceInfNaN_RejectsNonFiniteReplacement(t *testing.T) {
	d, _ := matrix.NewDense(1, 1)
	_, err := matrix.ReplaceInfNaN(d, math.NaN())
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestClip(t *testing.T) {
	d := must2D(t, [][]float64{{-5, 0.5, 10}})

	out, err := matrix.Clip(d, 0, 1)
	require.NoError(t, err)

	for j, want := range []float64{0, 0.5, 1} {
		v, err := out.At(0, j)
		require.NoError(t, err)
		require.Equal(t, want, v)
	}
}

func TestClip_SwapsInvertedBounds(t *testing.T) {
	d := must2D(t, [][]float64{{5}})
	out, err := matrix.Clip(d, 10, 0)
	require.NoError(t, err)
	v, err := out.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 5.0, v)
}

func TestAllClose(t *testing.T) {
	a := must2D(t, [][]float64{{1.0, 2.0}})
	b := must2D(t, [][]float64{{1.0000001, 2.0000001}})

	ok, err := matrix.AllClose(a, b, 1e-6, 1e-9)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(a, b, 0, 0)
	require.NoError(t, err)
	require.False(t, ok)
}
