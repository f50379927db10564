// ============================================================================
// START BARRIER
// ============================================================================
//
// Two-phase fan-out/fan-in coordination without OS blocking primitives:
//
//	coordinator                      worker (×W)
//	-----------                      -----------
//	prepare shared input
//	SignalStart   ready ← 1 (rel) ─▶ WaitForStart: spin on acquire(ready)
//	                                 ...work...
//	WaitForCompletions(W) ◀───────── SignalCompletion: fetch-add (acq_rel)
//	acquire(completed) == W
//	read workers' results
//
// The release/acquire pair on ready publishes everything the coordinator
// wrote before SignalStart.  The acq_rel increments chain every worker's
// writes into the counter's modification order, so once the coordinator's
// acquire load reads W, all W workers' prior writes are visible.
//
// Waiting always spins with a scheduler yield.  Short windows only.

package barrier

import (
	"atomics/order"
	"atomics/spin"

	"golang.org/x/sys/cpu"
)

// Start is a reusable start signal plus completion counter.  The zero value
// is an unsignalled barrier with no completions.
type Start struct {
	_         cpu.CacheLinePad
	ready     uint32 // written by the coordinator only
	_         cpu.CacheLinePad
	completed uint64 // incremented by workers
	_         cpu.CacheLinePad
}

// SignalStart releases every goroutine waiting in WaitForStart.
func (b *Start) SignalStart() {
	order.StoreRelease32(&b.ready, 1)
}

// WaitForStart spins until SignalStart has been observed.  There is no
// timeout and no cancellation.
func (b *Start) WaitForStart() {
	spin.Until(b.Started)
}

// Started is an acquire snapshot of the start flag.
func (b *Start) Started() bool {
	return order.LoadAcquire32(&b.ready) != 0
}

// SignalCompletion records one finished worker.
func (b *Start) SignalCompletion() {
	order.AddAcqRel64(&b.completed, 1)
}

// CompletionCount is an acquire load of the completion counter.
func (b *Start) CompletionCount() uint64 {
	return order.LoadAcquire64(&b.completed)
}

// WaitForCompletions spins until at least n completions have been
// signalled.
func (b *Start) WaitForCompletions(n uint64) {
	spin.Until(func() bool { return b.CompletionCount() >= n })
}

// Reset returns the barrier to its zero state with relaxed stores.  It is
// not synchronised: call it only when no goroutine is waiting on or
// signalling the barrier.
func (b *Start) Reset() {
	order.StoreRelaxed32(&b.ready, 0)
	order.StoreRelaxed64(&b.completed, 0)
}
