// SPDX-License-Identifier: MIT
// Package matrix: public aliases over the private ew* micro-kernels, plus
// small Dense constructors used throughout the numeric substrate.
package matrix

// NewZeros returns a newly allocated rows×cols Dense matrix of zeros. Alias
// kept for readability at call sites that want an explicit "zeros" intent
// over the equivalent NewDense.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// RowSums returns the sum of each row of m.
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("RowSums", err)
	}
	rows, cols := m.Rows(), m.Cols()
	out := make([]float64, rows)
	if d, ok := m.(*Dense); ok {
		for i := 0; i < rows; i++ {
			base := i * cols
			var acc float64
			for j := 0; j < cols; j++ {
				acc += d.data[base+j]
			}
			out[i] = acc
		}
		return out, nil
	}
	for i := 0; i < rows; i++ {
		var acc float64
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf("RowSums", err)
			}
			acc += v
		}
		out[i] = acc
	}
	return out, nil
}

// ColSums returns the sum of each column of m.
func ColSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ColSums", err)
	}
	rows, cols := m.Rows(), m.Cols()
	out := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf("ColSums", err)
			}
			out[j] += v
		}
	}
	return out, nil
}

// ReplaceInfNaN returns a copy of X with every ±Inf/NaN element replaced by val.
func ReplaceInfNaN(X Matrix, val float64) (Matrix, error) {
	return ewReplaceInfNaN(X, val)
}

// Clip returns a copy of X with every element clamped into [lo, hi].
func Clip(X Matrix, lo, hi float64) (Matrix, error) {
	return ewClipRange(X, lo, hi)
}

// AllClose reports whether a and b are element-wise close within rtol/atol.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}
