// SPDX-License-Identifier: MIT

// Package matrix: conversions between SparseMatrix, Dense and triplet lists.
package matrix

import "fmt"

// ToDense materializes s as a row-major Dense with the same numeric policy.
// Complexity: O(r*c + nnz).
func ToDense(s *SparseMatrix) (*Dense, error) {
	if s == nil {
		return nil, matrixErrorf("ToDense", ErrNilMatrix)
	}
	d := &Dense{
		r:              s.r,
		c:              s.c,
		data:           make([]float64, s.r*s.c),
		validateNaNInf: s.validateNaNInf,
	}
	for k, v := range s.data {
		d.data[k.row*s.c+k.col] = v
	}

	return d, nil
}

// FromDense copies every non-zero element of m into a new SparseMatrix.
// m may be any Matrix (including another SparseMatrix); a *Dense is read
// straight from its row-major buffer.
//
// Errors:
//   - ErrNilMatrix for nil input.
//   - ErrNaNInf when m holds a non-finite value and the policy (opts) validates.
func FromDense(m Matrix, opts ...Option) (*SparseMatrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("FromDense", err)
	}
	s, err := NewSparse(m.Rows(), m.Cols(), opts...)
	if err != nil {
		return nil, matrixErrorf("FromDense", err)
	}

	if d, ok := m.(*Dense); ok {
		d.Do(func(i, j int, v float64) bool {
			err = s.Set(i, j, v)
			return err == nil
		})
		if err != nil {
			return nil, matrixErrorf("FromDense", err)
		}

		return s, nil
	}

	var v float64
	for i := 0; i < s.r; i++ {
		for j := 0; j < s.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf("FromDense", err)
			}
			if err = s.Set(i, j, v); err != nil {
				return nil, matrixErrorf("FromDense", err)
			}
		}
	}

	return s, nil
}

// NewSparseFromTriplets builds a rows×cols matrix from (row, col, val) entries.
// Duplicate coordinates are summed in input order; sums that cancel to 0 are dropped.
//
// Errors:
//   - ErrInvalidDimensions for a negative shape.
//   - ErrOutOfRange for a triplet outside the shape (reported with its index).
//   - ErrNaNInf when a value (or a running sum) is non-finite and the policy validates.
func NewSparseFromTriplets(rows, cols int, ts []Triplet, opts ...Option) (*SparseMatrix, error) {
	s, err := NewSparse(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	for n, t := range ts {
		if err = s.checkIndex(t.Row, t.Col); err != nil {
			return nil, fmt.Errorf("NewSparseFromTriplets: triplet %d (%d,%d): %w", n, t.Row, t.Col, err)
		}
		sum := s.data[coord{t.Row, t.Col}] + t.Val
		if err = s.Set(t.Row, t.Col, sum); err != nil {
			return nil, fmt.Errorf("NewSparseFromTriplets: triplet %d: %w", n, err)
		}
	}

	return s, nil
}
