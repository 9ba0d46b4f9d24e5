// SPDX-License-Identifier: MIT

// Package matrix - SparseMatrix storage (dictionary of keys) & safe accessors.
//
// Purpose:
//   - Hold only non-zero entries, keyed by (row, col); unstored coordinates read as 0.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism: every ordered traversal (Do, String,
//     compression for multiply) sorts keys first; map iteration order never leaks.
//   - Enforce the same numeric policy as Dense (optional rejection of NaN/Inf).
//
// AI-Hints:
//   - Set(i, j, 0) deletes the entry, so NNZ() counts true non-zeros.
//   - Equality is zero-extension aware: absent and zero compare equal.
//   - Multiplication lives in impl_multiply.go; it never mutates operands.
//
// Complexity quicksheet:
//   - NewSparse: O(1); At/Set: O(1) expected; Clone: O(nnz); Do/String: O(nnz log nnz) / O(r*c).

package matrix

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxNewSparse = "NewSparse"
	ctxSparseAt  = "At"
	ctxSparseSet = "Set"
)

// sparseErrorf wraps an error with a uniform SparseMatrix context and callsite indices.
func sparseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("SparseMatrix.%s(%d,%d): %w", method, row, col, err)
}

// SparseMatrix is a rows×cols matrix storing only non-zero values.
//   - r,c hold dimensions (both >= 0, fixed for the lifetime of the value).
//   - data maps (row, col) to a non-zero value.
//   - validateNaNInf enables NaN/Inf rejection in Set (policy default from options.go).
//
// A SparseMatrix is not safe for concurrent mutation. Concurrent reads
// (including every multiply strategy) are safe while no goroutine calls Set.
type SparseMatrix struct {
	r, c           int
	data           map[coord]float64
	validateNaNInf bool
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*SparseMatrix)(nil)
	_ fmt.Stringer = (*SparseMatrix)(nil)
)

// NewSparse creates an all-zero rows×cols sparse matrix.
//
// Zero dimensions are legal and denote an empty matrix. Options select the
// numeric policy (WithNoValidateNaNInf); execution options are ignored here.
//
// Errors:
//   - ErrInvalidDimensions when rows < 0 or cols < 0.
//
// Complexity:
//   - Time O(1), Space O(1).
func NewSparse(rows, cols int, opts ...Option) (*SparseMatrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%s(%d,%d): %w", ctxNewSparse, rows, cols, ErrInvalidDimensions)
	}
	o := gatherOptions(opts...)

	return newSparse(rows, cols, o.validateNaNInf, 0), nil
}

// newSparse is the internal constructor; callers have validated the shape.
func newSparse(rows, cols int, validateNaNInf bool, capacity int) *SparseMatrix {
	return &SparseMatrix{
		r:              rows,
		c:              cols,
		data:           make(map[coord]float64, capacity),
		validateNaNInf: validateNaNInf,
	}
}

// Rows returns the row count (M). Complexity: O(1).
func (m *SparseMatrix) Rows() int { return m.r }

// Cols returns the column count (N). Complexity: O(1).
func (m *SparseMatrix) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call.
func (m *SparseMatrix) Shape() (rows, cols int) { return m.r, m.c }

// NNZ returns the number of stored (non-zero) entries.
func (m *SparseMatrix) NNZ() int { return len(m.data) }

func (m *SparseMatrix) checkIndex(row, col int) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return ErrOutOfRange
	}

	return nil
}

// At returns the value at (row, col), or 0 when no entry is stored.
//
// Errors:
//   - ErrOutOfRange when row∉[0,Rows) or col∉[0,Cols).
//
// Complexity:
//   - Time O(1) expected, no allocations.
func (m *SparseMatrix) At(row, col int) (float64, error) {
	if err := m.checkIndex(row, col); err != nil {
		return 0, sparseErrorf(ctxSparseAt, row, col, err)
	}

	return m.data[coord{row, col}], nil
}

// Set stores v at (row, col). Storing 0 removes the entry.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf when the numeric policy rejects v.
//
// Complexity:
//   - Time O(1) amortized.
func (m *SparseMatrix) Set(row, col int, v float64) error {
	if err := m.checkIndex(row, col); err != nil {
		return sparseErrorf(ctxSparseSet, row, col, err)
	}
	if m.validateNaNInf && isNonFinite(v) {
		return sparseErrorf(ctxSparseSet, row, col, ErrNaNInf)
	}
	if v == 0 {
		delete(m.data, coord{row, col})
		return nil
	}
	m.data[coord{row, col}] = v

	return nil
}

// Clone returns a deep copy with the same shape, entries and numeric policy.
// Complexity: O(nnz).
func (m *SparseMatrix) Clone() Matrix {
	return m.clone()
}

func (m *SparseMatrix) clone() *SparseMatrix {
	cp := newSparse(m.r, m.c, m.validateNaNInf, len(m.data))
	for k, v := range m.data {
		cp.data[k] = v
	}

	return cp
}

// Equal reports whether m and other have the same shape and the same value
// at every coordinate. Absent entries compare equal to zero; NaN equals NaN
// at the same coordinate, so Equal is reflexive even for overflowed
// products. Two nil matrices are equal.
//
// Complexity: O(nnz(m) + nnz(other)).
func (m *SparseMatrix) Equal(other *SparseMatrix) bool {
	return m.equalWithin(other, 0)
}

// EqualApprox is Equal with an absolute tolerance: |m[i,j]-other[i,j]| <= eps.
func (m *SparseMatrix) EqualApprox(other *SparseMatrix, eps float64) bool {
	return m.equalWithin(other, eps)
}

func (m *SparseMatrix) equalWithin(other *SparseMatrix, eps float64) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	if m.r != other.r || m.c != other.c {
		return false
	}
	for k, v := range m.data {
		if !closeTo(v, other.data[k], eps) {
			return false
		}
	}
	// Entries present only in other must be zero (within eps) to match.
	for k, v := range other.data {
		if _, ok := m.data[k]; !ok && !closeTo(0, v, eps) {
			return false
		}
	}

	return true
}

func closeTo(a, b, eps float64) bool {
	if a == b || (math.IsNaN(a) && math.IsNaN(b)) {
		return true
	}

	return math.Abs(a-b) <= eps
}

// sortedKeys returns stored coordinates in row-major order.
func (m *SparseMatrix) sortedKeys() []coord {
	keys := make([]coord, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b coord) int {
		if c := cmp.Compare(a.row, b.row); c != 0 {
			return c
		}
		return cmp.Compare(a.col, b.col)
	})

	return keys
}

// Do visits each stored entry in row-major order and calls f(i, j, v).
// It stops early when f returns false. Zero entries are not visited.
//
// Complexity:
//   - Time O(nnz log nnz), Space O(nnz).
func (m *SparseMatrix) Do(f func(i, j int, v float64) bool) {
	for _, k := range m.sortedKeys() {
		if !f(k.row, k.col, m.data[k]) {
			return
		}
	}
}

// Triplets returns the stored entries in row-major order.
func (m *SparseMatrix) Triplets() []Triplet {
	out := make([]Triplet, 0, len(m.data))
	m.Do(func(i, j int, v float64) bool {
		out = append(out, Triplet{Row: i, Col: j, Val: v})
		return true
	})

	return out
}

// Transpose returns a new cols×rows matrix with entries mirrored.
// Complexity: O(nnz).
func (m *SparseMatrix) Transpose() *SparseMatrix {
	t := newSparse(m.c, m.r, m.validateNaNInf, len(m.data))
	for k, v := range m.data {
		t.data[coord{k.col, k.row}] = v
	}

	return t
}

// String renders the matrix densely, one bracketed row per line, in the
// same layout as Dense.String. Intended for small matrices and diagnostics.
//
// Complexity: Time O(r*c).
func (m *SparseMatrix) String() string {
	var b strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[coord{i, j}]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
