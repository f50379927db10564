// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: constants.go - scenario defaults
//
// Purpose:
//   - Default sizes and iteration counts for every scenario the driver runs.
//   - config.Load starts from these and applies YAML overrides.
//
// ⚠️ No runtime logic here; all values must be compile-time resolvable
// ─────────────────────────────────────────────────────────────────────────────

package constants

import "time"

// ───────────────────────────── Counter ──────────────────────────────

const (
	// CounterThreads × CounterIncrements is the conservation workload
	// (even iterations relaxed, odd iterations seq_cst).
	CounterThreads    = 4
	CounterIncrements = 1000

	// BenchThreads × BenchIterations is the per-mode throughput workload.
	BenchThreads    = 4
	BenchIterations = 100000
)

// ───────────────────────────── Ring ─────────────────────────────────

const (
	// RingCapacity is the slot count; 99 items fit at once.
	RingCapacity = 100

	// RingItems is the number of values pushed through the ring.
	RingItems = 1000

	// RingValueMax bounds the pseudo-random produced values to [1, RingValueMax].
	RingValueMax = 1000

	// RingConsumerCore pins the consumer thread; -1 disables pinning.
	RingConsumerCore = -1
)

// ───────────────────────────── Barrier ──────────────────────────────

const (
	// BarrierWorkers fan out behind one start signal.
	BarrierWorkers = 6

	// BarrierSettle is how long the coordinator waits before signalling
	// start, so every worker is already spinning.
	BarrierSettle = 50 * time.Millisecond

	// BarrierWorkBase + i×BarrierWorkStep is worker i's simulated work.
	BarrierWorkBase = 10 * time.Millisecond
	BarrierWorkStep = 5 * time.Millisecond
)

// ───────────────────────────── Probe ────────────────────────────────

const (
	// ProbeCycles is the number of reset/publish/observe cycles per path.
	ProbeCycles = 1000
)

// ───────────────────────────── Output ───────────────────────────────

const (
	// HistoryDB is the default SQLite run-history file; empty disables it.
	HistoryDB = "atomics_runs.db"

	// LogLevel is the default zerolog level name.
	LogLevel = "info"
)
