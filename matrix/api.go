// SPDX-License-Identifier: MIT
// Package matrix — public API facades.
//
// Purpose:
//   - Provide thin entry points for common tasks across the package.
//   - Avoid logic duplication: each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.
//
// AI-Hints:
//   - SparseProduct is the one-liner when the strategy comes from configuration.
//   - Use NewIdentitySparse to build neutral elements for tests and preconditioning.

package matrix

// NewIdentitySparse returns I_n as a SparseMatrix (n stored ones).
// Complexity: O(n).
func NewIdentitySparse(n int, opts ...Option) (*SparseMatrix, error) {
	I, err := NewSparse(n, n, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ { // fixed i order guarantees reproducibility
		I.data[coord{i, i}] = 1
	}

	return I, nil
}

// SparseProduct multiplies a·b with strategy s. opts configure both the
// executor (WithWorkers, WithGrain) and logging (WithLogger).
//
// Errors: ErrUnknownStrategy, ErrNilMatrix, ErrDimensionMismatch.
func SparseProduct(a, b *SparseMatrix, s Strategy, opts ...Option) (*SparseMatrix, error) {
	switch s {
	case StrategySeq:
		return a.MulSeq(b, opts...)
	case StrategyTasks:
		return a.MulTasks(b, opts...)
	case StrategyThreads:
		return a.MulThreads(b, opts...)
	default:
		_, err := ExecutorFor(s)
		return nil, err
	}
}
