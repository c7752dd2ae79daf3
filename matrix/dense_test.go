// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/harvard-vpal/alosi-go/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewDense_RejectsNonPositiveDims(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(3, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestDense_AtSetRoundTrip(t *testing.T) {
	d, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	require.NoError(t, d.Set(1, 1, 4.5))
	v, err := d.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 4.5, v)
}

func TestDense_AtOutOfRange(t *testing.T) {
	d, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = d.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	err = d.Set(0, -1, 1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestNewDenseFromRows(t *testing.T) {
	d, err := matrix.NewDenseFromRows([][]float64{
		{1, 2},
		{3, 4},
	})
	require.NoError(t, err)
	require.Equal(t, 2, d.Rows())
	require.Equal(t, 2, d.Cols())

	v, err := d.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 3.0, v)
}

func TestNewDenseFromRows_RaggedRows(t *testing.T) {
	_, err := matrix.NewDenseFromRows([][]float64{
		{1, 2},
		{3},
	})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestDense_RowSetRow(t *testing.T) {
	d, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	require.NoError(t, d.SetRow(0, []float64{1, 2, 3}))
	row, err := d.Row(0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, row)

	err = d.SetRow(0, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestDense_Clone(t *testing.T) {
	d, err := matrix.NewDense(1, 2)
	require.NoError(t, err)
	require.NoError(t, d.Set(0, 0, 9))

	clone := d.Clone()
	require.NoError(t, d.Set(0, 0, 1))

	v, err := clone.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 9.0, v)
}
