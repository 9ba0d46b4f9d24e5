// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense and sparse implementations.
// Errors and options live in dedicated files (errors.go, options.go).
package matrix

// coord is a (row, col) key of a stored sparse entry.
// Using ints keeps the key compact and hash-friendly.
type coord struct {
	row int
	col int
}

// Triplet is a single (Row, Col, Val) entry used for bulk construction.
type Triplet struct {
	Row int
	Col int
	Val float64
}

// Matrix represents a two-dimensional mutable array of float64 values.
// Both *Dense and *SparseMatrix implement it, so generic kernels (Mul) and
// conversions accept either.
//
// Complexity notes: all methods are expected O(1) except Clone.
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	Clone() Matrix
}
