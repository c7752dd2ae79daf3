// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/harvard-vpal/alosi-go/matrix"
	"github.com/stretchr/testify/require"
)

func must2D(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	return d
}

func TestAdd_Succeeds(t *testing.T) {
	a := must2D(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := must2D(t, [][]float64{{6, 5, 4}, {3, 2, 1}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			v, err := sum.At(i, j)
			require.NoError(t, err)
			require.Equal(t, 7.0, v)
		}
	}
}

func TestAdd_DimensionMismatch(t *testing.T) {
	a, _ := matrix.NewDense(2, 2)
	b, _ := matrix.NewDense(3, 2)
	_, err := matrix.Add(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestSub_Succeeds(t *testing.T) {
	a := must2D(t, [][]float64{{5, 4}, {3, 2}})
	b := must2D(t, [][]float64{{1, 1}, {1, 1}})

	diff, err := matrix.Sub(a, b)
	require.NoError(t, err)
	v, err := diff.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestTranspose(t *testing.T) {
	a := must2D(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	tr, err := matrix.Transpose(a)
	require.NoError(t, err)
	require.Equal(t, 3, tr.Rows())
	require.Equal(t, 2, tr.Cols())

	v, err := tr.At(2, 1)
	require.NoError(t, err)
	require.Equal(t, 6.0, v)
}

func TestScale(t *testing.T) {
	a := must2D(t, [][]float64{{1, 2}, {3, 4}})

	scaled, err := matrix.Scale(a, 2.0)
	require.NoError(t, err)
	v, err := scaled.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 8.0, v)
}

func TestHadamard(t *testing.T) {
	a := must2D(t, [][]float64{{1, 2}, {3, 4}})
	b := must2D(t, [][]float64{{2, 2}, {2, 2}})

	prod, err := matrix.Hadamard(a, b)
	require.NoError(t, err)
	v, err := prod.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 6.0, v)
}

func TestMatVec(t *testing.T) {
	a := must2D(t, [][]float64{{1, 2}, {3, 4}})

	y, err := matrix.MatVec(a, []float64{1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{3, 7}, y)
}

func TestMatVec_DimensionMismatch(t *testing.T) {
	a, _ := matrix.NewDense(2, 3)
	_, err := matrix.MatVec(a, []float64{1, 1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
