// Package matrix offers a sparse matrix type with three interchangeable
// multiplication strategies, plus the dense counterpart used for conversions.
//
// The matrix package provides:
//
//   - SparseMatrix: dictionary-of-keys storage, safe At/Set (errors, never
//     panics on bad indices), zero-extension aware Equal.
//   - MulSeq, MulTasks, MulThreads: one row-oriented product kernel driven by
//     a Sequential, TaskExecutor or ThreadExecutor. All three add terms in
//     increasing inner index, so their results are identical.
//   - Dense: row-major reference matrix; ToDense / FromDense conversions.
//   - Solve: sparse LU solve for square systems.
//
// Errors are package sentinels (ErrOutOfRange, ErrInvalidDimensions,
// ErrDimensionMismatch, ...) wrapped with call-site context; match them
// with errors.Is.
//
// See the examples in this package for usage patterns.
package matrix
