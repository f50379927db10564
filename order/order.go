// ============================================================================
// NAMED ATOMIC OPERATIONS
// ============================================================================

package order

import "sync/atomic"

// ============================================================================
// 64-BIT CELLS (cursors, counters, probe cells)
// ============================================================================

// LoadRelaxed64 loads *p with no ordering beyond atomicity.
//
//go:nosplit
func LoadRelaxed64(p *uint64) uint64 {
	return loadUint64(p)
}

// LoadAcquire64 loads *p; later accesses cannot move above it.
//
//go:nosplit
func LoadAcquire64(p *uint64) uint64 {
	return loadUint64(p)
}

// LoadSeqCst64 loads *p as part of the global total order.
//
//go:nosplit
func LoadSeqCst64(p *uint64) uint64 {
	return atomic.LoadUint64(p)
}

// StoreRelaxed64 stores v with no ordering beyond atomicity.
//
//go:nosplit
func StoreRelaxed64(p *uint64, v uint64) {
	storeUint64(p, v)
}

// StoreRelease64 stores v; earlier accesses cannot move below it.
//
//go:nosplit
func StoreRelease64(p *uint64, v uint64) {
	storeUint64(p, v)
}

// StoreSeqCst64 stores v as part of the global total order.
//
//go:nosplit
func StoreSeqCst64(p *uint64, v uint64) {
	atomic.StoreUint64(p, v)
}

// AddRelaxed64 atomically adds d to *p and returns the new value.
//
//go:nosplit
func AddRelaxed64(p *uint64, d uint64) uint64 {
	return atomic.AddUint64(p, d)
}

// AddAcqRel64 is a fetch-and-add that both observes prior releases and
// publishes the caller's earlier writes.
//
//go:nosplit
func AddAcqRel64(p *uint64, d uint64) uint64 {
	return atomic.AddUint64(p, d)
}

// AddSeqCst64 is a fetch-and-add in the global total order.
//
//go:nosplit
func AddSeqCst64(p *uint64, d uint64) uint64 {
	return atomic.AddUint64(p, d)
}

// ============================================================================
// 32-BIT CELLS (flags)
// ============================================================================

// LoadRelaxed32 loads *p with no ordering beyond atomicity.
//
//go:nosplit
func LoadRelaxed32(p *uint32) uint32 {
	return loadUint32(p)
}

// LoadAcquire32 loads *p; later accesses cannot move above it.
//
//go:nosplit
func LoadAcquire32(p *uint32) uint32 {
	return loadUint32(p)
}

// StoreRelaxed32 stores v with no ordering beyond atomicity.
//
//go:nosplit
func StoreRelaxed32(p *uint32, v uint32) {
	storeUint32(p, v)
}

// StoreRelease32 stores v; earlier accesses cannot move below it.
//
//go:nosplit
func StoreRelease32(p *uint32, v uint32) {
	storeUint32(p, v)
}

// CompareAndSwap32 is a seq-cst CAS, used for one-shot claims.
//
//go:nosplit
func CompareAndSwap32(p *uint32, old, new uint32) bool {
	return atomic.CompareAndSwapUint32(p, old, new)
}
