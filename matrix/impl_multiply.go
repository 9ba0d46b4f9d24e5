// SPDX-License-Identifier: MIT

// Package matrix - sparse × sparse product, one kernel for every strategy.
//
// Purpose:
//   - Compute C = A·B with C[i,j] = Σ_k A[i,k]·B[k,j], visiting only stored
//     entries, and let an Executor decide how output rows are partitioned.
//
// Implementation:
//   - Stage 1 (Validate): nil operands, then A.Cols == B.Rows. Runs before any
//     dispatch, so every strategy reports the same sentinel for the same misuse.
//   - Stage 2 (Prepare): compress both operands into read-only row snapshots
//     (column indices ascending inside each row).
//   - Stage 3 (Execute): the executor runs rowProduct over disjoint [lo,hi)
//     ranges; each output row has exactly one writer, so no locking.
//   - Stage 4 (Finalize): after the barrier, fill the result map on the
//     calling goroutine.
//
// Determinism:
//   - For a fixed (i,j), terms are added in increasing k in every strategy, so
//     MulSeq, MulTasks and MulThreads return bit-identical values.
//   - Exact-zero sums are not stored.
//
// AI-Hints:
//   - Snapshots are built once per call; reuse operands freely across calls.
//   - Rows of very different density favour MulTasks with a small grain.
package matrix

import (
	"fmt"
	"slices"
	"time"
)

// Operation tags for error wrapping and log records.
const (
	opMultiply   = "Multiply"
	opMulSeq     = "MulSeq"
	opMulTasks   = "MulTasks"
	opMulThreads = "MulThreads"
)

// compressed is an immutable row-compressed snapshot of a SparseMatrix.
// Row i owns colIdx/vals[rowPtr[i]:rowPtr[i+1]], sorted by column.
type compressed struct {
	rows, cols int
	rowPtr     []int
	colIdx     []int
	vals       []float64
}

// compress builds the snapshot in O(nnz log nnz).
func (m *SparseMatrix) compress() compressed {
	keys := m.sortedKeys()
	c := compressed{
		rows:   m.r,
		cols:   m.c,
		rowPtr: make([]int, m.r+1),
		colIdx: make([]int, len(keys)),
		vals:   make([]float64, len(keys)),
	}
	for p, k := range keys {
		c.rowPtr[k.row+1]++
		c.colIdx[p] = k.col
		c.vals[p] = m.data[k]
	}
	for i := 0; i < m.r; i++ {
		c.rowPtr[i+1] += c.rowPtr[i]
	}

	return c
}

// rowEntry is one non-zero of an output row.
type rowEntry struct {
	col int
	val float64
}

// productKernel holds the read-only inputs and the per-row output slots.
type productKernel struct {
	a, b compressed
	out  [][]rowEntry // out[i] written only by the range owning row i
}

// rowProduct computes output rows [lo, hi).
// A dense accumulator of width b.cols is reused across the range; touched
// records which columns received a term so reset stays O(row work).
func (k *productKernel) rowProduct(lo, hi int) {
	acc := make([]float64, k.b.cols)
	seen := make([]bool, k.b.cols)
	touched := make([]int, 0, 16)

	var i, p, q, kk, j int
	var av float64
	for i = lo; i < hi; i++ {
		touched = touched[:0]
		for p = k.a.rowPtr[i]; p < k.a.rowPtr[i+1]; p++ { // increasing k
			kk = k.a.colIdx[p]
			av = k.a.vals[p]
			for q = k.b.rowPtr[kk]; q < k.b.rowPtr[kk+1]; q++ {
				j = k.b.colIdx[q]
				if !seen[j] {
					seen[j] = true
					touched = append(touched, j)
				}
				acc[j] += av * k.b.vals[q]
			}
		}
		if len(touched) == 0 {
			continue
		}
		slices.Sort(touched)

		row := make([]rowEntry, 0, len(touched))
		for _, j = range touched {
			if acc[j] != 0 {
				row = append(row, rowEntry{col: j, val: acc[j]})
			}
			acc[j] = 0
			seen[j] = false
		}
		k.out[i] = row
	}
}

// Multiply returns m·other computed by exec (nil means Sequential).
// Inputs are never mutated; the result is a new matrix owned by the caller
// and inherits m's numeric policy.
//
// Options: WithLogger routes Debug records; execution options are already
// baked into exec.
//
// Errors:
//   - ErrNilMatrix when m or other is nil.
//   - ErrDimensionMismatch when m.Cols() != other.Rows().
//
// Complexity:
//   - Time O(nnz log nnz + Σ_i Σ_{k∈row i of A} nnz(row k of B)), Space O(nnz(C) + workers·cols(B)).
func (m *SparseMatrix) Multiply(other *SparseMatrix, exec Executor, opts ...Option) (*SparseMatrix, error) {
	return m.multiply(opMultiply, other, exec, opts...)
}

// MulSeq is the sequential reference product.
func (m *SparseMatrix) MulSeq(other *SparseMatrix, opts ...Option) (*SparseMatrix, error) {
	return m.multiply(opMulSeq, other, Sequential{}, opts...)
}

// MulTasks computes the product on a bounded task pool.
// WithWorkers bounds the pool; WithGrain sets rows per task.
func (m *SparseMatrix) MulTasks(other *SparseMatrix, opts ...Option) (*SparseMatrix, error) {
	return m.multiply(opMulTasks, other, NewTaskExecutor(opts...), opts...)
}

// MulThreads computes the product with one goroutine per contiguous row
// slice. WithWorkers sets the slice count.
func (m *SparseMatrix) MulThreads(other *SparseMatrix, opts ...Option) (*SparseMatrix, error) {
	return m.multiply(opMulThreads, other, NewThreadExecutor(opts...), opts...)
}

func (m *SparseMatrix) multiply(op string, other *SparseMatrix, exec Executor, opts ...Option) (*SparseMatrix, error) {
	// Stage 1: validate before anything is dispatched.
	if err := ValidateMulCompatible(m, other); err != nil {
		return nil, fmt.Errorf("SparseMatrix.%s: %w", op, err)
	}
	if exec == nil {
		exec = Sequential{}
	}
	o := gatherOptions(opts...)
	log := o.logger.With("op", op, "strategy", exec.Strategy().String())

	// Stage 2: read-only snapshots shared by every range.
	k := &productKernel{
		a:   m.compress(),
		b:   other.compress(),
		out: make([][]rowEntry, m.r),
	}
	log.Debug("sparse multiply dispatched",
		"m", m.r, "k", m.c, "n", other.c,
		"nnz_a", len(k.a.vals), "nnz_b", len(k.b.vals))

	// Stage 3: run the kernel; Execute returns after every range finished.
	start := time.Now()
	exec.Execute(m.r, k.rowProduct)
	elapsed := time.Since(start)

	// Stage 4: assemble on the caller's goroutine.
	res := newSparse(m.r, other.c, m.validateNaNInf, countEntries(k.out))
	for i, row := range k.out {
		for _, e := range row {
			res.data[coord{i, e.col}] = e.val
		}
	}
	log.Debug("sparse multiply completed", "nnz_c", len(res.data), "elapsed", elapsed)

	return res, nil
}

func countEntries(rows [][]rowEntry) int {
	n := 0
	for _, r := range rows {
		n += len(r)
	}

	return n
}

// MulVec returns y = m·x, summing each row in increasing column order.
//
// Errors: ErrDimensionMismatch when len(x) != Cols().
// Complexity: O(nnz log nnz).
func (m *SparseMatrix) MulVec(x []float64) ([]float64, error) {
	if err := ValidateVecLen(x, m.c); err != nil {
		return nil, fmt.Errorf("SparseMatrix.MulVec: %w", err)
	}
	y := make([]float64, m.r)
	m.Do(func(i, j int, v float64) bool {
		y[i] += v * x[j]
		return true
	})

	return y, nil
}
