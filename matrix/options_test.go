// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/harvard-vpal/alosi-go/matrix"
	"github.com/stretchr/testify/require"
)

func TestGatherOptions_Defaults(t *testing.T) {
	require.NotPanics(t, func() {
		matrix.NewMatrixOptions()
	})
}

func TestWithEpsilon_PanicsOnNonFinite(t *testing.T) {
	require.Panics(t, func() {
		matrix.NewMatrixOptions(matrix.WithEpsilon(math.NaN()))
	})
	require.Panics(t, func() {
		matrix.NewMatrixOptions(matrix.WithEpsilon(-1))
	})
}

func TestWithEpsilon_Accepts(t *testing.T) {
	require.NotPanics(t, func() {
		matrix.NewMatrixOptions(matrix.WithEpsilon(1e-6))
	})
}

func TestWithValidateNaNInf_Toggle(t *testing.T) {
	require.NotPanics(t, func() {
		matrix.NewMatrixOptions(matrix.WithNoValidateNaNInf())
		matrix.NewMatrixOptions(matrix.WithValidateNaNInf())
	})
}
