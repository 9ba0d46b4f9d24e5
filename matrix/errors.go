// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Every exported operation returns one of these (possibly wrapped with
// call-site context) and tests match them via errors.Is. No operation panics
// on user-triggered error conditions; option constructors panic on
// nonsensical parameters (programmer error).

package matrix

import "errors"

// NOTE ON NAMING & WRAPPING
// -------------------------
// Every message is prefixed with "matrix: ..." for easy grepping across logs.
// Call sites wrap with fmt.Errorf("Ctx: %w", ErrX); callers still match with
// errors.Is. All three multiply strategies surface the same sentinel for the
// same misuse because validation runs before dispatch.

var (
	// ErrInvalidDimensions is returned when a requested shape has a negative
	// dimension. Zero rows or zero columns are legal (empty matrix).
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 0")

	// ErrOutOfRange indicates that a row or column index lies outside [0,Rows)×[0,Cols).
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes,
	// e.g. Mul where a.Cols != b.Rows, or Solve with len(b) != Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNaNInf signals a NaN or ±Inf value rejected by the numeric policy.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrSingular is returned when the LU factorization behind Solve fails.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
	ErrUnknownStrategy = errors.New("matrix: unknown multiply strategy")
)

// ErrIndexOutOfBounds historically named the same condition as ErrOutOfRange.
//
// Deprecated: use ErrOutOfRange.
var ErrIndexOutOfBounds = ErrOutOfRange
