// control.go - process-wide run/stop and activity flags
// ============================================================================
// SYSTEM CONTROL ORCHESTRATION
// ============================================================================
//
// Lightweight global signalling for the long-running parts of the driver:
// pinned consumers poll these flags from their spin loops, the signal
// handler and the scenario runners write them.
//
// Flag protocol:
//
//	Writer (driver / producer)        Reader (pinned consumer)
//	--------------------------        ------------------------------
//	SignalActivity: hot ← 1 (rel) ──▶ acquire hot: stay in hot spin
//	Shutdown:       stop ← 1 (rel) ─▶ acquire stop: drain and exit
//
// Every write that must be visible to a consumer before it exits happens
// before the release store of stop.

package control

import (
	"time"

	"atomics/order"
)

// ============================================================================
// GLOBAL STATE
// ============================================================================

var (
	hot  uint32 // 1 while a producer is actively publishing
	stop uint32 // 1 once shutdown has been requested

	lastHot    uint64                    // unix nanos of the last SignalActivity
	cooldownNs = uint64(1 * time.Second) // idle period before hot is cleared
)

// ============================================================================
// ACTIVITY SIGNALLING
// ============================================================================

// SignalActivity marks producers as active.  Consumers stay in hot spin
// while the flag is set.
func SignalActivity() {
	order.StoreRelaxed64(&lastHot, uint64(time.Now().UnixNano()))
	order.StoreRelease32(&hot, 1)
}

// PollCooldown clears the hot flag once no activity has been signalled for
// the cooldown period.  Meant for idle paths such as the gap between
// driver scenarios.
func PollCooldown() {
	if order.LoadRelaxed32(&hot) == 0 {
		return
	}
	if uint64(time.Now().UnixNano())-order.LoadRelaxed64(&lastHot) > cooldownNs {
		order.StoreRelaxed32(&hot, 0)
	}
}

// SetCooldown overrides the idle period used by PollCooldown.
func SetCooldown(d time.Duration) {
	order.StoreRelaxed64(&cooldownNs, uint64(d))
}

// Hot reports whether activity is currently signalled.
func Hot() bool {
	return order.LoadAcquire32(&hot) != 0
}

// ============================================================================
// SHUTDOWN
// ============================================================================

// Shutdown requests every flag-driven loop to finish.  Idempotent.
func Shutdown() {
	order.StoreRelease32(&stop, 1)
}

// Stopping reports whether Shutdown has been called.
func Stopping() bool {
	return order.LoadAcquire32(&stop) != 0
}

// Reset clears both flags.  Only valid when no loop is observing them,
// e.g. between test cases.
func Reset() {
	order.StoreRelaxed32(&hot, 0)
	order.StoreRelaxed32(&stop, 0)
	order.StoreRelaxed64(&lastHot, 0)
}

// Flags returns the stop and hot flag addresses for loops that poll them
// directly (ring.PinnedConsumer).  Access them only through package order.
func Flags() (stopFlag, hotFlag *uint32) {
	return &stop, &hot
}
