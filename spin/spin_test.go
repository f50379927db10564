package spin

import (
	"sync/atomic"
	"testing"
	"time"
)

// TestUntilReturnsOnceConditionHolds flips a flag from another goroutine and
// confirms Until observes it.
func TestUntilReturnsOnceConditionHolds(t *testing.T) {
	var flag atomic.Bool
	go func() {
		time.Sleep(5 * time.Millisecond)
		flag.Store(true)
	}()

	done := make(chan struct{})
	go func() {
		Until(flag.Load)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Until did not observe the flag")
	}
}

// TestUntilImmediate must not spin when the condition already holds.
func TestUntilImmediate(t *testing.T) {
	calls := 0
	Until(func() bool { calls++; return true })
	if calls != 1 {
		t.Fatalf("cond called %d times, want 1", calls)
	}
}

func TestRelaxAndWaitDoNotPanic(t *testing.T) {
	for i := 0; i < 100; i++ {
		Relax()
		Wait()
	}
}
