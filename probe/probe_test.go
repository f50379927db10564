// ============================================================================
// HAPPENS-BEFORE PROBE VALIDATION SUITE
// ============================================================================
//
// Test categories:
//   - State machine: unpublished → published → Reset → unpublished
//   - Happens-before: 1000 ordered cycles across two goroutines, every ok
//     read equals (42, 24)
//   - Free-running reader: continuous polling while a single ordered publish
//     lands, no reset involved
//   - Shared CPU: the stress reader yields, so cycles on one P stay cheap
//
// The unordered path is exercised in probe_unordered_test.go (non-race
// builds only).

package probe

import (
	"runtime"
	"sync"
	"testing"
	"time"
)

func TestStateMachine(t *testing.T) {
	var p Probe
	if _, _, ok := p.TryRead(); ok || p.Published() {
		t.Fatal("zero probe must be unpublished")
	}

	p.PublishOrdered()
	x, y, ok := p.TryRead()
	if !ok || x != WantX || y != WantY {
		t.Fatalf("TryRead after PublishOrdered = (%d, %d, %v)", x, y, ok)
	}

	p.Reset()
	if _, _, ok := p.TryRead(); ok || p.Published() {
		t.Fatal("Reset must return the probe to unpublished")
	}

	p.PublishUnordered()
	if x, y, ok := p.TryRead(); !ok || x != WantX || y != WantY {
		t.Fatalf("single-goroutine unordered publish = (%d, %d, %v)", x, y, ok)
	}
}

// TestHappensBeforeOrdered is the core property: release/acquire publication
// never exposes partial or stale cells.
func TestHappensBeforeOrdered(t *testing.T) {
	res := Stress(StressConfig{Cycles: 1000, Ordered: true})

	if res.Inconsistent != 0 {
		t.Fatalf("%d inconsistent reads, samples %v", res.Inconsistent, res.Samples)
	}
	if res.Reads != 1000 || res.Consistent != 1000 {
		t.Fatalf("reads=%d consistent=%d, want 1000 each", res.Reads, res.Consistent)
	}
	if res.Polls < res.Reads {
		t.Fatalf("polls %d < reads %d", res.Polls, res.Reads)
	}
	t.Logf("ordered: %d polls, %d reads", res.Polls, res.Reads)
}

// TestFreeRunningReaders polls from several goroutines while one ordered
// publish happens; whoever sees the flag must see the payload.
func TestFreeRunningReaders(t *testing.T) {
	const readers = 4
	for round := 0; round < 200; round++ {
		var p Probe
		var wg sync.WaitGroup
		errs := make(chan [2]uint64, readers)

		wg.Add(readers)
		for r := 0; r < readers; r++ {
			go func() {
				defer wg.Done()
				for {
					x, y, ok := p.TryRead()
					if !ok {
						runtime.Gosched()
						continue
					}
					if x != WantX || y != WantY {
						errs <- [2]uint64{x, y}
					}
					return
				}
			}()
		}

		runtime.Gosched()
		p.PublishOrdered()
		wg.Wait()
		close(errs)

		for pair := range errs {
			t.Fatalf("round %d: reader saw flag with payload %v", round, pair)
		}
	}
}

// TestStressSharesSingleCPU runs the writer and reader on one P.  The writer
// can only publish once the reader's miss path yields; a reader that never
// yields costs a full preemption slice per cycle.
func TestStressSharesSingleCPU(t *testing.T) {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(1))

	start := time.Now()
	res := Stress(StressConfig{Cycles: 200, Ordered: true})
	elapsed := time.Since(start)

	if res.Consistent != 200 || res.Inconsistent != 0 {
		t.Fatalf("consistent=%d inconsistent=%d, want 200/0", res.Consistent, res.Inconsistent)
	}
	if elapsed > time.Second {
		t.Fatalf("200 cycles on one CPU took %v (%d polls)", elapsed, res.Polls)
	}
	t.Logf("200 cycles on one CPU in %v, %d polls", elapsed, res.Polls)
}
