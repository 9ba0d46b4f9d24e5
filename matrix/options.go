// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for sparse construction and the
// multiply executors. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Numeric policy (validateNaNInf) is captured by a matrix at construction
//     and carried by Clone/Transpose/multiply results.
//   - Execution policy (workers, grain) is read by ExecutorFor and the MulX
//     entry points; it never changes the numeric result, only how rows are
//     partitioned.
//   - The logger only receives Debug records; the default handler discards them.
package matrix

import (
	"io"
	"log/slog"
)

// ---------- Defaults (single source of truth) ----------

// Numeric policy.
const (
	// DefaultEpsilon defines the non-negative tolerance used by EqualApprox callers.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation in Set.
	DefaultValidateNaNInf = true
)

// Execution policy.
const (
	// DefaultWorkers means "derive from runtime.GOMAXPROCS(0)".
	DefaultWorkers = 0

	// DefaultGrain is the number of output rows per task of TaskExecutor.
	DefaultGrain = 16
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicWorkersInvalid = "matrix: WithWorkers: n must be >= 0"
	panicGrainInvalid   = "matrix: WithGrain: rows must be > 0"
	panicLoggerNil      = "matrix: WithLogger: logger must not be nil"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option` and resolve
// them via gatherOptions.
type Options struct {
	// numeric policy
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf

	// execution policy
	workers int // > 0 after finalizeOptions
	grain   int // > 0

	logger *slog.Logger // never nil after finalizeOptions
}

// Epsilon returns the resolved tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// Workers returns the resolved worker count (always >= 1).
func (o Options) Workers() int { return o.workers }

// Grain returns the resolved rows-per-task.
func (o Options) Grain() int { return o.grain }

// ValidateNaNInf reports whether the finite-only policy is enabled.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// ---------- Constructors (WithX) ----------

// WithEpsilon sets the numeric tolerance eps.
// Panics when eps is NaN, ±Inf or negative.
//
// AI-Hints:
//   - Results of the three multiply strategies are bit-identical; eps is for
//     comparing against externally computed references (e.g. a dense product
//     summed in a different order).
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables strict finite-value validation (default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-value validation in Set.
// Products of such matrices may contain NaN/±Inf; they are stored as-is.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithWorkers sets the parallelism of TaskExecutor and ThreadExecutor.
// n == 0 selects runtime.GOMAXPROCS(0). Panics on n < 0.
//
// Complexity:
//   - Time O(1), Space O(1).
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithGrain sets how many output rows a single task of TaskExecutor covers.
// Smaller grains give the scheduler more room to balance uneven rows.
// Panics on rows <= 0.
func WithGrain(rows int) Option {
	if rows <= 0 {
		panic(panicGrainInvalid)
	}

	return func(o *Options) { o.grain = rows }
}

// WithLogger routes Debug records about dispatch and completion to l.
// Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *Options) { o.logger = l }
}

// --------------------------- Option Resolution ---------------------------

// NewMatrixOptions resolves option setters against documented defaults.
// Exposed so callers (and the benchmark harness) can inspect effective values.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// discardLogger is shared by every Options without an explicit logger.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// gatherOptions applies user-provided Option setters on top of defaults and
// finalizes derived invariants. This is the canonical internal entry.
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
		workers:        DefaultWorkers,
		grain:          DefaultGrain,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	finalizeOptions(&o)

	return o
}

// finalizeOptions enforces derived invariants in exactly one place.
// MUST be called after applying all Option setters.
func finalizeOptions(o *Options) {
	o.workers = resolveWorkers(o.workers)
	if o.logger == nil {
		o.logger = discardLogger
	}
}
