//go:build !amd64 || noasm || race

// order_fallback.go
//
// Portable accessors on sync/atomic.  Seq-cst is a conservative superset of
// every mode the callers ask for.

package order

import "sync/atomic"

func loadUint64(p *uint64) uint64 {
	return atomic.LoadUint64(p)
}

func storeUint64(p *uint64, v uint64) {
	atomic.StoreUint64(p, v)
}

func loadUint32(p *uint32) uint32 {
	return atomic.LoadUint32(p)
}

func storeUint32(p *uint32, v uint32) {
	atomic.StoreUint32(p, v)
}
