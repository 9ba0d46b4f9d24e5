// Package bench times the three sparse multiply strategies on generated
// operands and checks that they agree.
//
// Timing is purely observational: the harness calls the public matrix API
// exactly as any other caller would and never influences its results.
package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/gonum/floats"

	"github.com/katalvlaran/spmm/internal/config"
	"github.com/katalvlaran/spmm/internal/logging"
	"github.com/katalvlaran/spmm/matrix"
)

// ErrMismatch is returned when a parallel strategy disagrees with the sequential product.
var ErrMismatch = errors.New("bench: strategies disagree")

// Config describes one benchmark run.
type Config struct {
	Rows, Inner, Cols int
	Density           float64
	Seed              int64
	Workers           int
	Grain             int
	Repeat            int
}

// FromConfig converts the loaded configuration section.
func FromConfig(c config.BenchConfig) Config {
	return Config{
		Rows:    c.Rows,
		Inner:   c.Inner,
		Cols:    c.Cols,
		Density: c.Density,
		Seed:    c.Seed,
		Workers: c.Workers,
		Grain:   c.Grain,
		Repeat:  c.Repeat,
	}
}

// Timing holds the wall-clock durations of one strategy.
type Timing struct {
	Strategy matrix.Strategy
	Runs     []time.Duration
	Best     time.Duration
	Mean     time.Duration
}

// Report is the outcome of Run.
type Report struct {
	Config  Config
	Workers int // resolved worker count
	NNZA    int
	NNZB    int
	NNZC    int
	Timings []Timing
	Agree   bool
}

// RandomSparse fills a rows×cols matrix where each cell is non-zero with
// probability density. Values are small signed integers so every product
// and sum is exact.
func RandomSparse(rows, cols int, density float64, rng *rand.Rand) (*matrix.SparseMatrix, error) {
	m, err := matrix.NewSparse(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if rng.Float64() >= density {
				continue
			}
			v := float64(rng.IntN(9) + 1)
			if rng.IntN(2) == 0 {
				v = -v
			}
			if err = m.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// Run generates A (Rows×Inner) and B (Inner×Cols) from Seed, multiplies them
// Repeat times with every strategy and verifies seq == tasks == threads.
// ctx is checked between runs; a single multiply is never interrupted.
//
// On disagreement the report is returned together with ErrMismatch.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) (*Report, error) {
	if cfg.Repeat < 1 {
		return nil, fmt.Errorf("bench: repeat must be >= 1, got %d", cfg.Repeat)
	}
	if cfg.Grain < 1 {
		return nil, fmt.Errorf("bench: grain must be >= 1, got %d", cfg.Grain)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("bench: workers must be >= 0, got %d", cfg.Workers)
	}
	if logger == nil {
		logger = logging.NopLogger()
	}

	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)^0x9e3779b97f4a7c15))
	a, err := RandomSparse(cfg.Rows, cfg.Inner, cfg.Density, rng)
	if err != nil {
		return nil, fmt.Errorf("bench: left operand: %w", err)
	}
	b, err := RandomSparse(cfg.Inner, cfg.Cols, cfg.Density, rng)
	if err != nil {
		return nil, fmt.Errorf("bench: right operand: %w", err)
	}

	opts := []matrix.Option{
		matrix.WithWorkers(cfg.Workers),
		matrix.WithGrain(cfg.Grain),
		matrix.WithLogger(logger),
	}
	rep := &Report{
		Config:  cfg,
		Workers: matrix.NewMatrixOptions(opts...).Workers(),
		NNZA:    a.NNZ(),
		NNZB:    b.NNZ(),
	}
	logger.Info("operands generated",
		"rows", cfg.Rows, "inner", cfg.Inner, "cols", cfg.Cols,
		"nnz_a", rep.NNZA, "nnz_b", rep.NNZB, "workers", rep.Workers)

	var reference *matrix.SparseMatrix
	rep.Agree = true
	for _, s := range matrix.Strategies() {
		tm := Timing{Strategy: s, Runs: make([]time.Duration, 0, cfg.Repeat)}
		var last *matrix.SparseMatrix
		for r := 0; r < cfg.Repeat; r++ {
			if err = ctx.Err(); err != nil {
				return nil, fmt.Errorf("bench: %w", err)
			}
			start := time.Now()
			last, err = matrix.SparseProduct(a, b, s, opts...)
			elapsed := time.Since(start)
			if err != nil {
				return nil, fmt.Errorf("bench: %s: %w", s, err)
			}
			tm.Runs = append(tm.Runs, elapsed)
		}
		tm.Best, tm.Mean = summarize(tm.Runs)
		rep.Timings = append(rep.Timings, tm)
		logger.Info("strategy timed", "strategy", s.String(), "best", tm.Best, "mean", tm.Mean)

		if reference == nil {
			reference = last
			rep.NNZC = last.NNZ()
			continue
		}
		if !reference.Equal(last) {
			rep.Agree = false
			logger.Error("strategy disagrees with sequential product", "strategy", s.String())
		}
	}

	if !rep.Agree {
		return rep, ErrMismatch
	}

	return rep, nil
}

// summarize returns the best and mean of runs (runs is non-empty).
func summarize(runs []time.Duration) (best, mean time.Duration) {
	secs := make([]float64, len(runs))
	for i, d := range runs {
		secs[i] = d.Seconds()
	}
	best = time.Duration(floats.Min(secs) * float64(time.Second))
	mean = time.Duration(floats.Sum(secs) / float64(len(secs)) * float64(time.Second))

	return best, mean
}
