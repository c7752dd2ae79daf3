// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, transpose, scalar scaling,
// the Hadamard product, and matrix-vector multiplication. All functions
// perform strict fail-fast validation and return clear errors on dimension
// mismatches.
//
// Purpose:
//   - Declare canonical linear-algebra kernels used by the numeric substrate
//     of the adaptive engine (relevance, recommendation scoring, and
//     training build on these).
//
// Notes:
//   - Implementations live in dedicated kernel files (same package) to keep roles clean.
//   - All kernels must use central validators and return plain sentinels or wrapped via matrixErrorf at the facade.
package matrix

import "fmt"

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opHadamard  = "Hadamard"
	opMatVec    = "MatVec"
)

// matrixErrorf wraps an underlying error with the given tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Add returns a new Matrix containing the element-wise sum of a and b.
//
// Contract:
//   - a, b must be non-nil and have identical shapes.
//
// Determinism & Performance:
//   - Loop order is fixed (flat 0..n-1 in fast path; i→j in fallback).
//   - Single allocation for the result; no temps inside loops.
//
// Complexity: Time O(r*c), Space O(r*c).
//
// AI-Hints:
//   - If both operands are *Dense, pass them directly to avoid interface dispatch.
//   - ValidateSameShape catches shape bugs early and keeps inner loops branchless.
func Add(a, b Matrix) (Matrix, error) {
	// Validate inputs non-nil
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	// Validate shapes match
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}

	// Allocate result Dense
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}

	// Fast path: *Dense × *Dense → single flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			length := rows * cols
			for idx := 0; idx < length; idx++ { // deterministic 0..n-1
				res.data[idx] = da.data[idx] + db.data[idx]
			}

			return res, nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			av, _ = a.At(i, j)
			bv, _ = b.At(i, j)
			_ = res.Set(i, j, av+bv)
		}
	}

	return res, nil
}

// Sub returns a new Matrix with the element-wise difference a - b.
//
// Contract: non-nil inputs, identical shapes.
// Determinism: fixed loop order (fast: flat; fallback: i→j).
// Complexity: Time O(r*c), Space O(r*c).
//
// AI-Hints:
//   - Use *Dense fast path for heavy workloads.
//   - Keep inputs immutable; this routine allocates a fresh result.
func Sub(a, b Matrix) (Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opSub, err)
	}

	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			length := rows * cols
			for idx := 0; idx < length; idx++ {
				res.data[idx] = da.data[idx] - db.data[idx]
			}

			return res, nil
		}
	}

	var (
		i, j   int
		av, bv float64
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			av, _ = a.At(i, j)
			bv, _ = b.At(i, j)
			_ = res.Set(i, j, av-bv)
		}
	}

	return res, nil
}

// Transpose returns a new Matrix with rows and columns swapped.
//
// Contract: m non-nil.
// Determinism: fixed i→j; fast path copies via flat indices.
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if dm, ok := m.(*Dense); ok {
		var baseSrc int
		for i = 0; i < rows; i++ {
			baseSrc = i * cols
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = dm.data[baseSrc+j]
			}
		}
		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, _ = m.At(i, j)
			_ = res.Set(j, i, v)
		}
	}

	return res, nil
}

// Scale returns a new Matrix with each element of m multiplied by alpha.
//
// Contract: m non-nil.
// Determinism: flat loop (fast) or i→j (fallback).
// Complexity: Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	if dm, ok := m.(*Dense); ok {
		n := rows * cols
		for idx := 0; idx < n; idx++ {
			res.data[idx] = dm.data[idx] * alpha
		}
		return res, nil
	}

	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, _ = m.At(i, j)
			_ = res.Set(i, j, v*alpha)
		}
	}

	return res, nil
}

// Hadamard returns element-wise product a ⊙ b as a new Matrix (Dense).
//
// Contract: a,b non-nil; identical shapes.
// Determinism: flat loop (fast) or i→j (fallback).
// Complexity: Time O(r*c), Space O(r*c).
func Hadamard(a, b Matrix) (Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}

	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var n, idx int
			n = rows * cols
			for idx = 0; idx < n; idx++ {
				res.data[idx] = da.data[idx] * db.data[idx]
			}

			return res, nil
		}
	}

	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			av, _ = a.At(i, j)
			bv, _ = b.At(i, j)
			_ = res.Set(i, j, av*bv)
		}
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc, xv float64
		for i = 0; i < d.r; i++ {
			acc = 0
			base = i * d.c
			for j = 0; j < d.c; j++ {
				xv = x[j]
				if xv != 0 {
					acc += d.data[base+j] * xv
				}
			}
			y[i] = acc
		}

		return y, nil
	}

	var i, j int
	var mv float64
	for i = 0; i < rows; i++ {
		y[i] = 0
		for j = 0; j < cols; j++ {
			mv, _ = m.At(i, j)
			y[i] += mv * x[j]
		}
	}

	return y, nil
}
