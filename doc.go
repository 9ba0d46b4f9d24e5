// Package spmm is a sparse matrix library built around one question: how
// should a sparse × sparse product be spread across cores?
//
// What is in the box?
//
//	A small, deterministic toolkit that brings together:
//		• SparseMatrix: dictionary-of-keys storage with safe, error-returning accessors
//		• Three multiply strategies sharing one kernel: sequential, task pool, thread-per-slice
//		• Dense conversions and a dense reference product
//		• Sparse LU solve for square systems
//		• A benchmark harness and CLI that time the strategies side by side
//
// Why three strategies?
//
//   - Sequential is the reference every other result is checked against
//   - Tasks cut the output rows into small chunks; idle workers pick up the next one
//   - Threads hand each worker one contiguous slice, joined before return
//
// All three add the terms of every output entry in the same order, so their
// results are bit-identical, not merely close.
//
// Packages:
//
//	matrix/          — SparseMatrix, Dense, executors, Solve
//	internal/bench/  — operand generator and timing harness
//	internal/config/ — spmm.yaml / SPMM_* configuration
//	internal/logging — slog construction
//	cmd/spmm/        — `spmm bench`, `spmm version`
//
// Quick example:
//
//	a, _ := matrix.NewSparse(3, 5)
//	b, _ := matrix.NewSparse(5, 6)
//	_ = a.Set(0, 4, 2)
//	_ = b.Set(4, 1, 3)
//	c, _ := a.MulTasks(b, matrix.WithWorkers(4)) // 3×6, c[0,1] == 6
//
//	go install github.com/katalvlaran/spmm/cmd/spmm@latest
package spmm
