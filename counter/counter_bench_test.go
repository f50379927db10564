// ============================================================================
// ORDERING-MODE THROUGHPUT BENCHMARKS
// ============================================================================
//
// Relaxed vs seq_cst increments under identical contention.  The gap, if
// any, must be measured: on amd64 both modes compile to LOCK XADD.

package counter

import (
	"testing"

	"atomics/order"
)

func benchmarkIncrement(b *testing.B, mode order.Mode) {
	var c Counter
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Increment(mode)
		}
	})
}

func BenchmarkIncrementRelaxed(b *testing.B) { benchmarkIncrement(b, order.Relaxed) }

func BenchmarkIncrementSeqCst(b *testing.B) { benchmarkIncrement(b, order.SeqCst) }

// BenchmarkGetUncontended measures the relaxed load on its own.
func BenchmarkGetUncontended(b *testing.B) {
	var c Counter
	var sink uint64
	for i := 0; i < b.N; i++ {
		sink += c.Get()
	}
	_ = sink
}
