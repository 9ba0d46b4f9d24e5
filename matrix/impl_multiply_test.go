// SPDX-License-Identifier: MIT
// Package matrix_test contains tests for the sparse product and its three strategies.
package matrix_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spmm/matrix"
)

// mulFunc adapts each strategy entry point to one signature.
type mulFunc func(a, b *matrix.SparseMatrix) (*matrix.SparseMatrix, error)

func strategies(opts ...matrix.Option) map[string]mulFunc {
	return map[string]mulFunc{
		"seq":     func(a, b *matrix.SparseMatrix) (*matrix.SparseMatrix, error) { return a.MulSeq(b, opts...) },
		"tasks":   func(a, b *matrix.SparseMatrix) (*matrix.SparseMatrix, error) { return a.MulTasks(b, opts...) },
		"threads": func(a, b *matrix.SparseMatrix) (*matrix.SparseMatrix, error) { return a.MulThreads(b, opts...) },
	}
}

// TestMultiply_Shape checks that (M×K)·(K×N) yields M×N for every strategy.
func TestMultiply_Shape(t *testing.T) {
	a := MustSparse(t, 3, 5)
	b := MustSparse(t, 5, 6)
	for name, mul := range strategies() {
		t.Run(name, func(t *testing.T) {
			c, err := mul(a, b)
			require.NoError(t, err)
			require.Equal(t, 3, c.Rows())
			require.Equal(t, 6, c.Cols())
			require.Zero(t, c.NNZ())
		})
	}
}

// TestMultiply_DimensionMismatch ensures every strategy rejects A.Cols != B.Rows.
func TestMultiply_DimensionMismatch(t *testing.T) {
	a := RandomSparse(t, 3, 6, 0.5, 1)
	b := RandomSparse(t, 5, 6, 0.5, 2)
	for name, mul := range strategies() {
		t.Run(name, func(t *testing.T) {
			c, err := mul(a, b)
			require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
			require.Nil(t, c)
		})
	}
	for _, s := range matrix.Strategies() {
		_, err := matrix.SparseProduct(a, b, s)
		require.ErrorIs(t, err, matrix.ErrDimensionMismatch, s.String())
	}
}

// TestMultiply_Nil ensures nil operands are reported, not dereferenced.
func TestMultiply_Nil(t *testing.T) {
	var nilM *matrix.SparseMatrix
	a := MustSparse(t, 2, 2)
	for name, mul := range strategies() {
		t.Run(name, func(t *testing.T) {
			_, err := mul(a, nil)
			require.ErrorIs(t, err, matrix.ErrNilMatrix)
			_, err = mul(nilM, a)
			require.ErrorIs(t, err, matrix.ErrNilMatrix)
		})
	}
}

// TestMultiply_KnownProduct checks a hand-computed 2×3 · 3×2 product.
func TestMultiply_KnownProduct(t *testing.T) {
	a := SparseFrom(t, 2, 3, []float64{
		1, 0, 2,
		0, 3, 0,
	})
	b := SparseFrom(t, 3, 2, []float64{
		4, 0,
		0, 5,
		6, 0,
	})
	want := SparseFrom(t, 2, 2, []float64{
		16, 0,
		0, 15,
	})
	for name, mul := range strategies(matrix.WithWorkers(2), matrix.WithGrain(1)) {
		t.Run(name, func(t *testing.T) {
			c, err := mul(a, b)
			require.NoError(t, err)
			require.True(t, want.Equal(c), "got\n%s", c)
			require.Equal(t, 2, c.NNZ())
		})
	}
}

// TestMultiply_CancellationNotStored verifies exact-zero sums leave no entry.
func TestMultiply_CancellationNotStored(t *testing.T) {
	a := SparseFrom(t, 1, 2, []float64{1, 1})
	b := SparseFrom(t, 2, 1, []float64{2, -2})
	for name, mul := range strategies() {
		t.Run(name, func(t *testing.T) {
			c, err := mul(a, b)
			require.NoError(t, err)
			require.Zero(t, c.NNZ())
			require.Zero(t, MustAt(t, c, 0, 0))
		})
	}
}

// TestMultiply_StrategiesAgree runs random operands through every strategy
// with several worker/grain settings; results must be identical to MulSeq.
func TestMultiply_StrategiesAgree(t *testing.T) {
	shapes := []struct {
		m, k, n int
		density float64
	}{
		{1, 1, 1, 1},
		{7, 5, 9, 0.4},
		{33, 20, 17, 0.15},
		{64, 64, 64, 0.05},
		{100, 3, 100, 0.9},
	}
	for si, sh := range shapes {
		a := RandomSparse(t, sh.m, sh.k, sh.density, int64(10+si))
		b := RandomSparse(t, sh.k, sh.n, sh.density, int64(20+si))
		ref, err := a.MulSeq(b)
		require.NoError(t, err)

		for _, workers := range []int{1, 2, 3, 8} {
			for _, grain := range []int{1, 4, 64} {
				opts := []matrix.Option{matrix.WithWorkers(workers), matrix.WithGrain(grain)}
				t.Run(fmt.Sprintf("%dx%dx%d/w=%d/g=%d", sh.m, sh.k, sh.n, workers, grain), func(t *testing.T) {
					tc, err := a.MulTasks(b, opts...)
					require.NoError(t, err)
					require.True(t, ref.Equal(tc), "tasks differs")

					th, err := a.MulThreads(b, opts...)
					require.NoError(t, err)
					require.True(t, ref.Equal(th), "threads differs")
				})
			}
		}
	}
}

// TestMultiply_OverflowAgrees checks finite operands whose product overflows
// to NaN: every strategy stores the NaN and results still compare equal.
func TestMultiply_OverflowAgrees(t *testing.T) {
	a := SparseFrom(t, 1, 2, []float64{1e308, 1e308})
	b := SparseFrom(t, 2, 1, []float64{1e308, -1e308})

	seq, err := a.MulSeq(b)
	require.NoError(t, err)
	require.True(t, math.IsNaN(MustAt(t, seq, 0, 0)))
	require.Equal(t, 1, seq.NNZ())
	require.True(t, seq.Equal(seq))

	for name, mul := range strategies(matrix.WithWorkers(2), matrix.WithGrain(1)) {
		t.Run(name, func(t *testing.T) {
			c, err := mul(a, b)
			require.NoError(t, err)
			require.True(t, seq.Equal(c))
			require.True(t, c.Equal(seq))
		})
	}
}

// TestMultiply_DenseReference compares against the dense i-k-j product.
func TestMultiply_DenseReference(t *testing.T) {
	a := RandomSparse(t, 25, 30, 0.2, 101)
	b := RandomSparse(t, 30, 12, 0.2, 202)
	want := DenseProduct(t, a, b)

	for name, mul := range strategies(matrix.WithWorkers(4), matrix.WithGrain(3)) {
		t.Run(name, func(t *testing.T) {
			c, err := mul(a, b)
			require.NoError(t, err)
			require.True(t, want.Equal(c))
			require.True(t, want.EqualApprox(c, matrix.DefaultEpsilon))
		})
	}
}

// TestMultiply_Deterministic ensures repeated parallel runs return identical results.
func TestMultiply_Deterministic(t *testing.T) {
	a := RandomSparse(t, 50, 40, 0.1, 3)
	b := RandomSparse(t, 40, 60, 0.1, 4)
	first, err := a.MulTasks(b, matrix.WithWorkers(4), matrix.WithGrain(2))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := a.MulTasks(b, matrix.WithWorkers(4), matrix.WithGrain(2))
		require.NoError(t, err)
		require.True(t, first.Equal(again))
	}
}

// TestMultiply_TransposeIdentity checks (AB)ᵀ = BᵀAᵀ.
func TestMultiply_TransposeIdentity(t *testing.T) {
	a := RandomSparse(t, 9, 14, 0.3, 5)
	b := RandomSparse(t, 14, 11, 0.3, 6)

	ab, err := a.MulThreads(b, matrix.WithWorkers(3))
	require.NoError(t, err)
	btat, err := b.Transpose().MulTasks(a.Transpose(), matrix.WithWorkers(3), matrix.WithGrain(2))
	require.NoError(t, err)

	require.True(t, ab.Transpose().Equal(btat))
}

// TestMultiply_Identity checks A·I = I·A = A.
func TestMultiply_Identity(t *testing.T) {
	a := RandomSparse(t, 6, 6, 0.5, 8)
	id, err := matrix.NewIdentitySparse(6)
	require.NoError(t, err)

	for name, mul := range strategies(matrix.WithWorkers(2)) {
		t.Run(name, func(t *testing.T) {
			left, err := mul(id, a)
			require.NoError(t, err)
			right, err := mul(a, id)
			require.NoError(t, err)
			require.True(t, a.Equal(left))
			require.True(t, a.Equal(right))
		})
	}
}

// TestMultiply_InputsUnchanged verifies operands are never mutated.
func TestMultiply_InputsUnchanged(t *testing.T) {
	a := RandomSparse(t, 12, 10, 0.4, 9)
	b := RandomSparse(t, 10, 8, 0.4, 10)
	a0 := a.Clone().(*matrix.SparseMatrix)
	b0 := b.Clone().(*matrix.SparseMatrix)

	for _, mul := range strategies(matrix.WithWorkers(3), matrix.WithGrain(1)) {
		c, err := mul(a, b)
		require.NoError(t, err)
		MustSet(t, c, 0, 0, 42) // result is independent storage
	}
	require.True(t, a0.Equal(a))
	require.True(t, b0.Equal(b))
}

// TestMultiply_ZeroDimensions covers empty operands.
func TestMultiply_ZeroDimensions(t *testing.T) {
	tests := []struct {
		name    string
		m, k, n int
	}{
		{"no rows", 0, 5, 3},
		{"no inner", 3, 0, 4},
		{"no cols", 4, 2, 0},
		{"all empty", 0, 0, 0},
	}
	for _, tc := range tests {
		a := MustSparse(t, tc.m, tc.k)
		b := MustSparse(t, tc.k, tc.n)
		for name, mul := range strategies(matrix.WithWorkers(4)) {
			t.Run(tc.name+"/"+name, func(t *testing.T) {
				c, err := mul(a, b)
				require.NoError(t, err)
				require.Equal(t, tc.m, c.Rows())
				require.Equal(t, tc.n, c.Cols())
				require.Zero(t, c.NNZ())
			})
		}
	}
}

// TestMultiply_CustomExecutor runs Multiply with explicit executors and a nil one.
func TestMultiply_CustomExecutor(t *testing.T) {
	a := RandomSparse(t, 20, 20, 0.2, 11)
	b := RandomSparse(t, 20, 20, 0.2, 12)
	ref, err := a.Multiply(b, nil)
	require.NoError(t, err)

	for _, s := range matrix.Strategies() {
		exec, err := matrix.ExecutorFor(s, matrix.WithWorkers(5), matrix.WithGrain(3))
		require.NoError(t, err)
		c, err := a.Multiply(b, exec)
		require.NoError(t, err)
		require.True(t, ref.Equal(c), s.String())

		viaFacade, err := matrix.SparseProduct(a, b, s, matrix.WithWorkers(5))
		require.NoError(t, err)
		require.True(t, ref.Equal(viaFacade), s.String())
	}

	_, err = matrix.SparseProduct(a, b, matrix.Strategy(42))
	require.ErrorIs(t, err, matrix.ErrUnknownStrategy)
}

// TestMultiply_ZeroValueExecutors runs the exported executors without a constructor.
func TestMultiply_ZeroValueExecutors(t *testing.T) {
	a := RandomSparse(t, 37, 20, 0.3, 16)
	b := RandomSparse(t, 20, 25, 0.3, 17)
	ref, err := a.MulSeq(b)
	require.NoError(t, err)

	for _, exec := range []matrix.Executor{&matrix.TaskExecutor{}, &matrix.ThreadExecutor{}, matrix.Sequential{}} {
		c, err := a.Multiply(b, exec)
		require.NoError(t, err, exec.Strategy().String())
		require.True(t, ref.Equal(c), exec.Strategy().String())
	}
}

// TestMultiply_ConcurrentCallers shares operands between simultaneous products.
func TestMultiply_ConcurrentCallers(t *testing.T) {
	a := RandomSparse(t, 40, 30, 0.2, 13)
	b := RandomSparse(t, 30, 40, 0.2, 14)
	ref, err := a.MulSeq(b)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*matrix.SparseMatrix, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				results[i], _ = a.MulTasks(b, matrix.WithWorkers(2), matrix.WithGrain(4))
			} else {
				results[i], _ = a.MulThreads(b, matrix.WithWorkers(3))
			}
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		require.True(t, ref.Equal(r), "caller %d", i)
	}
}

// TestMultiply_Logging verifies Debug records reach an injected logger.
func TestMultiply_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	a := RandomSparse(t, 4, 4, 0.5, 15)
	_, err := a.MulThreads(a, matrix.WithLogger(logger), matrix.WithWorkers(2))
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "sparse multiply dispatched")
	require.Contains(t, out, "sparse multiply completed")
	require.Contains(t, out, "strategy=threads")
	require.Contains(t, out, "op=MulThreads")
}

// TestMultiply_InheritsPolicy checks the result keeps the left operand's NaN/Inf policy.
func TestMultiply_InheritsPolicy(t *testing.T) {
	loose := MustSparse(t, 1, 1, matrix.WithNoValidateNaNInf())
	MustSet(t, loose, 0, 0, 2)
	c, err := loose.MulSeq(loose)
	require.NoError(t, err)
	require.NoError(t, c.Set(0, 0, 1/zero()))

	strict := SparseFrom(t, 1, 1, []float64{2})
	c, err = strict.MulSeq(strict)
	require.NoError(t, err)
	require.ErrorIs(t, c.Set(0, 0, 1/zero()), matrix.ErrNaNInf)
}

func zero() float64 { return 0 }

// TestMulVec checks y = A·x and the length check.
func TestMulVec(t *testing.T) {
	a := SparseFrom(t, 2, 3, []float64{
		1, 0, 2,
		0, -1, 0,
	})
	y, err := a.MulVec([]float64{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []float64{7, -2}, y)

	_, err = a.MulVec([]float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
