// SPDX-License-Identifier: MIT

// Package matrix - row-range executors for the shared multiply kernel.
//
// Purpose:
//   - Decouple WHAT is computed (impl_multiply.go) from HOW the output row
//     range is partitioned and run, so every strategy shares one kernel and
//     therefore one accumulation order.
//
// Contract (all executors):
//   - Execute(n, fn) calls fn(lo, hi) on disjoint half-open ranges whose
//     union is exactly [0, n), and returns only after every call returned.
//   - Partitioning is static: decided from n and the executor's parameters
//     before the first call.
//   - A panic inside fn is re-raised on the caller's goroutine.
//
// AI-Hints:
//   - Sequential is the reference; compare parallel results against it.
//   - TaskExecutor suits uneven rows (many small tasks, idle workers pick
//     up the next one); ThreadExecutor suits uniform rows (one slice per worker).
package matrix

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
)

// Executor runs fn over a static partition of [0, n) and blocks until done.
type Executor interface {
	// Execute calls fn on disjoint ranges covering [0, n). n <= 0 is a no-op.
	Execute(n int, fn func(lo, hi int))

	// Strategy identifies the executor family (used in logs and reports).
	Strategy() Strategy
}

// Strategy names one of the three execution strategies.
type Strategy int

const (
	// StrategySeq runs the kernel on the calling goroutine.
	StrategySeq Strategy = iota
	// StrategyTasks runs fixed-grain tasks on a bounded goroutine pool.
	StrategyTasks
	// StrategyThreads runs one contiguous row slice per worker goroutine.
	StrategyThreads
)

// Strategies lists every strategy in reporting order.
func Strategies() []Strategy {
	return []Strategy{StrategySeq, StrategyTasks, StrategyThreads}
}

// String returns the canonical lower-case name.
func (s Strategy) String() string {
	switch s {
	case StrategySeq:
		return "seq"
	case StrategyTasks:
		return "tasks"
	case StrategyThreads:
		return "threads"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a name to a Strategy. Accepted (case-insensitive):
// "seq"/"sequential", "tasks"/"tbb", "threads"/"std".
//
// Errors: ErrUnknownStrategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "seq", "sequential":
		return StrategySeq, nil
	case "tasks", "tbb":
		return StrategyTasks, nil
	case "threads", "std":
		return StrategyThreads, nil
	default:
		return 0, fmt.Errorf("ParseStrategy(%q): %w", name, ErrUnknownStrategy)
	}
}

// ExecutorFor builds the executor of strategy s, configured by opts
// (WithWorkers, WithGrain).
//
// Errors: ErrUnknownStrategy for values outside the declared constants.
func ExecutorFor(s Strategy, opts ...Option) (Executor, error) {
	switch s {
	case StrategySeq:
		return Sequential{}, nil
	case StrategyTasks:
		return NewTaskExecutor(opts...), nil
	case StrategyThreads:
		return NewThreadExecutor(opts...), nil
	default:
		return nil, fmt.Errorf("ExecutorFor(%v): %w", s, ErrUnknownStrategy)
	}
}

// ---------- Sequential ----------

// Sequential runs fn(0, n) once on the calling goroutine.
type Sequential struct{}

// Execute implements Executor.
func (Sequential) Execute(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	fn(0, n)
}

// Strategy implements Executor.
func (Sequential) Strategy() Strategy { return StrategySeq }

// ---------- TaskExecutor ----------

// resolveWorkers maps n <= 0 to runtime.GOMAXPROCS(0) (at least 1).
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}

	return max(runtime.GOMAXPROCS(0), 1)
}

// resolveGrain maps rows <= 0 to DefaultGrain.
func resolveGrain(rows int) int {
	if rows > 0 {
		return rows
	}

	return DefaultGrain
}

// TaskExecutor cuts [0, n) into tasks of Grain rows and runs them on a pool
// of at most Workers goroutines. Tasks are queued in ascending order; each
// pool goroutine takes the next pending task when it finishes one.
//
// The zero value is ready to use: GOMAXPROCS workers, DefaultGrain rows per task.
type TaskExecutor struct {
	workers int
	grain   int
}

// NewTaskExecutor resolves WithWorkers/WithGrain against defaults.
func NewTaskExecutor(opts ...Option) *TaskExecutor {
	o := gatherOptions(opts...)

	return &TaskExecutor{workers: o.workers, grain: o.grain}
}

// Workers returns the resolved pool bound.
func (e *TaskExecutor) Workers() int { return resolveWorkers(e.workers) }

// Grain returns the resolved rows per task.
func (e *TaskExecutor) Grain() int { return resolveGrain(e.grain) }

// Tasks returns how many tasks Execute(n, ...) submits.
func (e *TaskExecutor) Tasks(n int) int {
	if n <= 0 {
		return 0
	}

	g := e.Grain()

	return (n + g - 1) / g
}

// Execute implements Executor.
//
// Complexity:
//   - ceil(n/grain) tasks; at most min(workers, tasks) goroutines alive.
func (e *TaskExecutor) Execute(n int, fn func(lo, hi int)) {
	tasks := e.Tasks(n)
	if tasks == 0 {
		return
	}
	if tasks == 1 {
		fn(0, n)
		return
	}

	grain := e.Grain()
	p := pool.New().WithMaxGoroutines(min(e.Workers(), tasks))
	for lo := 0; lo < n; lo += grain {
		hi := min(lo+grain, n)
		start := lo
		p.Go(func() { fn(start, hi) })
	}
	p.Wait() // barrier: every task returned (panics re-raised here)
}

// Strategy implements Executor.
func (e *TaskExecutor) Strategy() Strategy { return StrategyTasks }

// ---------- ThreadExecutor ----------

// ThreadExecutor splits [0, n) into min(Workers, n) contiguous slices of
// ceil(n/w) rows and runs each slice on its own goroutine, joined before return.
//
// The zero value is ready to use with GOMAXPROCS workers.
type ThreadExecutor struct {
	workers int
}

// NewThreadExecutor resolves WithWorkers against defaults.
func NewThreadExecutor(opts ...Option) *ThreadExecutor {
	o := gatherOptions(opts...)

	return &ThreadExecutor{workers: o.workers}
}

// Workers returns the resolved worker count.
func (e *ThreadExecutor) Workers() int { return resolveWorkers(e.workers) }

// Slices returns the [lo, hi) ranges Execute(n, ...) will run, in order.
func (e *ThreadExecutor) Slices(n int) [][2]int {
	if n <= 0 {
		return nil
	}
	w := min(e.Workers(), n)
	size := (n + w - 1) / w

	out := make([][2]int, 0, w)
	for lo := 0; lo < n; lo += size {
		out = append(out, [2]int{lo, min(lo+size, n)})
	}

	return out
}

// Execute implements Executor.
func (e *ThreadExecutor) Execute(n int, fn func(lo, hi int)) {
	parts := e.Slices(n)
	if len(parts) == 0 {
		return
	}
	if len(parts) == 1 {
		fn(0, n)
		return
	}

	wg := conc.NewWaitGroup()
	for _, s := range parts {
		lo, hi := s[0], s[1]
		wg.Go(func() { fn(lo, hi) })
	}
	wg.Wait() // join
}

// Strategy implements Executor.
func (e *ThreadExecutor) Strategy() Strategy { return StrategyThreads }
