// Package matrix provides the dense numeric substrate used throughout the
// adaptive engine: guess/slip/transit odds, prerequisite weights, and
// relevance kernels are all Q×K or K×K Dense matrices.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set.
//   - Canonical linear-algebra kernels (Add, Sub, Transpose, Scale,
//     Hadamard, MatVec) shared by relevance, recommend, and estimator.
//   - Element-wise sanitation kernels (ReplaceInfNaN, Clip, AllClose) used to
//     keep training accumulators and odds matrices free of NaN/Inf.
//
// Matrices are always dense here: the activity/KC spaces this engine scores
// over are small enough that O(Q*K) memory is never a concern, so there is
// no sparse representation.
package matrix
