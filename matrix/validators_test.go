// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/harvard-vpal/alosi-go/matrix"
	"github.com/stretchr/testify/require"
)

func TestValidateNotNil(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)

	d, _ := matrix.NewDense(1, 1)
	require.NoError(t, matrix.ValidateNotNil(d))
}

func TestValidateSameShape(t *testing.T) {
	a, _ := matrix.NewDense(2, 3)
	b, _ := matrix.NewDense(3, 2)
	require.ErrorIs(t, matrix.ValidateSameShape(a, b), matrix.ErrDimensionMismatch)

	c, _ := matrix.NewDense(2, 3)
	require.NoError(t, matrix.ValidateSameShape(a, c))
}

func TestValidateSquare(t *testing.T) {
	a, _ := matrix.NewDense(2, 3)
	require.ErrorIs(t, matrix.ValidateSquare(a), matrix.ErrDimensionMismatch)

	b, _ := matrix.NewDense(3, 3)
	require.NoError(t, matrix.ValidateSquare(b))
}

func TestValidateVecLen(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1, 2}, 3), matrix.ErrDimensionMismatch)
	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2, 3}, 3))
}
