// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures for the sparse and dense kernels.
//   - Keep all data finite so the numeric policy never interferes.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spmm/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the generic (interface) paths of Mul and Transpose.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// MustSparse allocates an r×c *SparseMatrix or fails the test.
func MustSparse(t testing.TB, r, c int, opts ...matrix.Option) *matrix.SparseMatrix {
	t.Helper()
	m, err := matrix.NewSparse(r, c, opts...)
	require.NoError(t, err, "NewSparse(%d,%d)", r, c)

	return m
}

// MustSet writes v at (i,j) or fails the test.
func MustSet(t testing.TB, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v), "Set(%d,%d)", i, j)
}

// MustAt reads (i,j) or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// SparseFrom builds an r×c sparse matrix from row-major values (zeros skipped).
func SparseFrom(t testing.TB, r, c int, vals []float64) *matrix.SparseMatrix {
	t.Helper()
	require.Len(t, vals, r*c)
	m := MustSparse(t, r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			MustSet(t, m, i, j, vals[i*c+j])
		}
	}

	return m
}

// DenseFrom builds an r×c dense matrix from row-major values.
func DenseFrom(t testing.TB, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	require.Len(t, vals, r*c)
	d := MustDense(t, r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			MustSet(t, d, i, j, vals[i*c+j])
		}
	}

	return d
}

// RandomSparse fills an r×c matrix: each cell is non-zero with probability
// density and drawn from U(-1,1). Deterministic for a fixed seed.
func RandomSparse(t testing.TB, r, c int, density float64, seed int64) *matrix.SparseMatrix {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := MustSparse(t, r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if rng.Float64() < density {
				MustSet(t, m, i, j, rng.Float64()*2-1)
			}
		}
	}

	return m
}

// DenseProduct returns ToDense(a)·ToDense(b) converted back to sparse.
func DenseProduct(t testing.TB, a, b *matrix.SparseMatrix) *matrix.SparseMatrix {
	t.Helper()
	da, err := matrix.ToDense(a)
	require.NoError(t, err)
	db, err := matrix.ToDense(b)
	require.NoError(t, err)
	p, err := matrix.Mul(da, db)
	require.NoError(t, err)
	s, err := matrix.FromDense(p)
	require.NoError(t, err)

	return s
}
