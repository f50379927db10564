// spin.go
//
// Busy-wait building blocks shared by every polling loop in the module.  None
// of them sleep or park: a waiting goroutine issues a CPU pause hint, hands
// its time slice back to the scheduler and polls again.  That keeps wake-up
// latency at a few hundred nanoseconds at the cost of a busy core, which is
// fine for short coordination windows and wrong for long waits.

package spin

import "runtime"

// Wait performs one back-off step: PAUSE (or a no-op) followed by a yield.
//
//go:nosplit
func Wait() {
	Relax()
	runtime.Gosched()
}

// Until polls cond, calling Wait between attempts, until it returns true.
// There is no timeout; callers that need one must check it inside cond.
func Until(cond func() bool) {
	for !cond() {
		Wait()
	}
}
