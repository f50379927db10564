// ============================================================================
// HAPPENS-BEFORE PROBE
// ============================================================================
//
// Two payload cells guarded by one flag, with two ways to publish them:
//
//	PublishOrdered                    PublishUnordered
//	--------------                    ----------------
//	x ← 42        (relaxed)           x ← 42        (plain)
//	y ← 24        (relaxed)           y ← 24        (plain)
//	published ← 1 (release)           published ← 1 (plain)
//
// TryRead acquire-loads the flag and, if set, reads x and y.  With the
// ordered path the release/acquire pair guarantees (42, 24).  The unordered
// path gives no guarantee at all: the compiler or the CPU may make the flag
// visible before the payload, and a reader can see stale or half-written
// cells.  It is kept unsound on purpose as the negative example; on TSO
// hardware it may never visibly fail.
//
// States: unpublished ──Publish*──▶ published ──Reset──▶ unpublished.
// Reset has a single-writer precondition: no goroutine may be inside
// TryRead while it runs.

package probe

import (
	"atomics/order"

	"golang.org/x/sys/cpu"
)

const (
	// WantX and WantY are the values every publish writes.
	WantX uint64 = 42
	WantY uint64 = 24
)

// Probe is the shared state.  The zero value is unpublished.
type Probe struct {
	x         uint64
	y         uint64
	_         cpu.CacheLinePad
	published uint32
}

// PublishUnordered stores the payload and the flag with no ordering at all.
// Intentionally unsound; see the package comment.
//
//go:norace
//go:noinline
func (p *Probe) PublishUnordered() {
	p.x = WantX
	p.y = WantY
	p.published = 1
}

// PublishOrdered stores the payload relaxed and publishes it with a release
// store of the flag.
func (p *Probe) PublishOrdered() {
	order.StoreRelaxed64(&p.x, WantX)
	order.StoreRelaxed64(&p.y, WantY)
	order.StoreRelease32(&p.published, 1)
}

// TryRead returns the payload if the flag is set.  ok == false is the
// normal "nothing yet" outcome, not an error.
func (p *Probe) TryRead() (x, y uint64, ok bool) {
	if order.LoadAcquire32(&p.published) == 0 {
		return 0, 0, false
	}
	// The acquire above makes relaxed loads sufficient here.
	return order.LoadRelaxed64(&p.x), order.LoadRelaxed64(&p.y), true
}

// Published is an acquire snapshot of the flag.
func (p *Probe) Published() bool {
	return order.LoadAcquire32(&p.published) != 0
}

// Reset returns the probe to unpublished with relaxed stores.
func (p *Probe) Reset() {
	order.StoreRelaxed32(&p.published, 0)
	order.StoreRelaxed64(&p.x, 0)
	order.StoreRelaxed64(&p.y, 0)
}
