// SPDX-License-Identifier: MIT

// Package matrix provides generic operations on any Matrix implementation.
// All functions perform strict fail-fast validation and return wrapped
// sentinels on dimension mismatches.
package matrix

import "fmt"

// Operation name constants for unified error wrapping.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
)

// matrixErrorf wraps an underlying error with the given tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul performs standard matrix multiplication of a and b (a × b).
// Stage 1 (Validate): nil-check and inner-dimension match.
// Stage 2 (Dispatch): two *SparseMatrix operands take MulSeq and return a *SparseMatrix.
// Stage 3 (Execute): otherwise i-k-j loop into a Dense, fast path for two *Dense.
// Stage 4 (Finalize): return result.
//
// For every (i,j) the terms are added in increasing k on all paths, so a
// Dense product of ToDense(a), ToDense(b) equals a.MulSeq(b) bit-for-bit.
// Complexity: O(r*n*c) time and O(r*c) memory on the dense paths.
func Mul(a, b Matrix) (Matrix, error) {
	// Stage 1: Validate inputs
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	// Stage 2: sparse fast path
	if sa, okA := a.(*SparseMatrix); okA {
		if sb, okB := b.(*SparseMatrix); okB {
			res, err := sa.MulSeq(sb)
			if err != nil {
				return nil, matrixErrorf(opMul, err)
			}
			return res, nil
		}
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k int
		av, bv  float64
	)
	// Stage 3: fast path for two Dense matrices
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowOffsetA, rowOffsetB, rowOffsetR int
			for i = 0; i < aRows; i++ {
				rowOffsetA = i * aCols
				rowOffsetR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowOffsetA+k]
					if av == 0 {
						continue // structural zero contributes nothing
					}
					rowOffsetB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
					}
				}
			}
			return res, nil
		}
	}

	// Fallback: generic interface loop in the same i-k-j order.
	for i = 0; i < aRows; i++ {
		for k = 0; k < aCols; k++ {
			av, _ = a.At(i, k) // safe: bounds ensured
			if av == 0 {
				continue
			}
			for j = 0; j < bCols; j++ {
				bv, _ = b.At(k, j)
				res.data[i*bCols+j] += av * bv
			}
		}
	}

	// Stage 4: Return result
	return res, nil
}

// Transpose returns mᵀ. A *SparseMatrix stays sparse; anything else becomes Dense.
// Complexity: O(nnz) for sparse, O(r·c) otherwise.
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	if sm, ok := m.(*SparseMatrix); ok {
		return sm.Transpose(), nil
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, _ = m.At(i, j)
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}
