// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/harvard-vpal/alosi-go/matrix"
	"github.com/stretchr/testify/require"
)

func TestDenseImplementsMatrix(t *testing.T) {
	var _ matrix.Matrix = (*matrix.Dense)(nil)
}

func TestRowSumsColSums(t *testing.T) {
	d := must2D(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	rs, err := matrix.RowSums(d)
	require.NoError(t, err)
	require.Equal(t, []float64{6, 15}, rs)

	cs, err := matrix.ColSums(d)
	require.NoError(t, err)
	require.Equal(t, []float64{5, 7, 9}, cs)
}

func TestNewZeros(t *testing.T) {
	z, err := matrix.NewZeros(2, 2)
	require.NoError(t, err)
	v, err := z.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)
}
