// ============================================================================
// ATOMIC COUNTER
// ============================================================================
//
// A single machine-word counter offering the same increment under two
// memory-ordering modes.  It exists so a harness can run identical workloads
// under relaxed and sequentially-consistent ordering and compare them:
//
//   - relaxed: atomicity only; other goroutines may observe the increments in
//     any order relative to their other memory operations
//   - seq_cst: additionally part of the single global order every goroutine
//     agrees on
//
// Atomicity holds in both modes, so T goroutines doing I increments each
// always end at exactly T×I once they have been joined.
//
// Overflow wraps modulo 2^64 and is not treated as an error.

package counter

import (
	"atomics/order"

	"golang.org/x/sys/cpu"
)

// Counter is a padded atomic cell.  The zero value is ready to use and must
// not be copied after first use.
type Counter struct {
	_ cpu.CacheLinePad
	n uint64
	_ cpu.CacheLinePad
}

// IncrementRelaxed adds 1 with relaxed ordering.
//
//go:nosplit
func (c *Counter) IncrementRelaxed() {
	order.AddRelaxed64(&c.n, 1)
}

// IncrementSeqCst adds 1 with sequentially-consistent ordering.
//
//go:nosplit
func (c *Counter) IncrementSeqCst() {
	order.AddSeqCst64(&c.n, 1)
}

// Increment adds 1 using the named mode.  Only order.Relaxed and
// order.SeqCst are meaningful for this counter; anything else panics.
func (c *Counter) Increment(mode order.Mode) {
	switch mode {
	case order.Relaxed:
		c.IncrementRelaxed()
	case order.SeqCst:
		c.IncrementSeqCst()
	default:
		panic("counter: unsupported increment mode " + mode.String())
	}
}

// Get is a relaxed load.  While writers are running it may lag the most
// recent increment; after they have been joined it is exact.
//
//go:nosplit
func (c *Counter) Get() uint64 {
	return order.LoadRelaxed64(&c.n)
}

// Reset stores zero with relaxed ordering.  Callers must ensure no increment
// is in flight if they need the reset to be observed before the next one.
//
//go:nosplit
func (c *Counter) Reset() {
	order.StoreRelaxed64(&c.n, 0)
}
