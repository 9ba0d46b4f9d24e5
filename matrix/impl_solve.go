// SPDX-License-Identifier: MIT

// Package matrix - linear solve A·x = b via sparse LU factorization.
//
// Purpose:
//   - Let a square SparseMatrix act as a system matrix without densifying it.
//   - Delegate ordering and factorization to github.com/edp1096/sparse, which
//     uses 1-based element and vector indexing.
//
// AI-Hints:
//   - Each call builds and factors a fresh system; the receiver is never mutated.
//   - Entries are stamped in row-major order, so factorization input is deterministic.
package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"
)

const opSolve = "SparseMatrix.Solve"

// solverConfig mirrors the real-valued configuration used for circuit
// matrices: expandable, no external-to-internal translation.
func solverConfig() *sparse.Configuration {
	return &sparse.Configuration{
		Real:                    true,
		Complex:                 false,
		SeparatedComplexVectors: false,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}
}

// Solve returns x with m·x = b.
//
// Errors:
//   - ErrNonSquare when Rows() != Cols().
//   - ErrInvalidDimensions for a 0×0 system.
//   - ErrDimensionMismatch when len(b) != Rows().
//   - ErrSingular when factorization or substitution fails.
//
// Complexity:
//   - Depends on fill-in; O(nnz log nnz) to stamp the system.
func (m *SparseMatrix) Solve(b []float64) ([]float64, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if m.r == 0 {
		return nil, matrixErrorf(opSolve, ErrInvalidDimensions)
	}
	if err := ValidateVecLen(b, m.r); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	n := m.r
	a, err := sparse.Create(int64(n), solverConfig())
	if err != nil {
		return nil, fmt.Errorf("%s: create: %w", opSolve, err)
	}
	for i := 1; i <= n; i++ {
		a.GetElement(int64(i), int64(i)) // every row owns a diagonal slot
	}
	m.Do(func(i, j int, v float64) bool {
		a.GetElement(int64(i+1), int64(j+1)).Real += v
		return true
	})

	if err = a.Factor(); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", opSolve, ErrSingular, err)
	}

	rhs := make([]float64, n+1) // index 0 unused
	copy(rhs[1:], b)
	sol, err := a.Solve(rhs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", opSolve, ErrSingular, err)
	}
	if len(sol) < n+1 {
		return nil, fmt.Errorf("%s: solution has %d slots, want %d: %w", opSolve, len(sol), n+1, ErrDimensionMismatch)
	}

	x := make([]float64, n)
	copy(x, sol[1:n+1])

	return x, nil
}
