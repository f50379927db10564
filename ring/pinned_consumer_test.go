// ============================================================================
// PINNED CONSUMER LIFECYCLE VALIDATION SUITE
// ============================================================================
//
// Test categories:
//   - Delivery: every produced item reaches the handler, in order
//   - Shutdown: stop flag ends the loop and closes done exactly once
//   - Drain on stop: items published before stop are not lost
//   - Pinning: out-of-range / negative cores still run
//   - Shared CPU: hot spin yields so a producer on the same P keeps moving

package ring

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"atomics/order"
)

type consumerTestState struct {
	prod *Producer[int]
	cons *Consumer[int]
	stop *uint32
	hot  *uint32
	done chan struct{}
	seen []int
}

func newConsumerTestState(t *testing.T, capacity int) *consumerTestState {
	t.Helper()
	p, c, err := NewSPSC[int](capacity)
	if err != nil {
		t.Fatal(err)
	}
	return &consumerTestState{
		prod: p,
		cons: c,
		stop: new(uint32),
		hot:  new(uint32),
		done: make(chan struct{}),
	}
}

// launch starts the consumer; the handler runs on the consumer goroutine
// only, and seen is read after done is closed.
func (s *consumerTestState) launch(core int) {
	PinnedConsumer(core, s.cons, s.stop, s.hot, func(v int) {
		s.seen = append(s.seen, v)
	}, s.done)
}

func (s *consumerTestState) shutdown(t *testing.T) {
	t.Helper()
	order.StoreRelease32(s.stop, 1)
	select {
	case <-s.done:
	case <-time.After(10 * time.Second):
		t.Fatal("pinned consumer did not exit")
	}
}

func (s *consumerTestState) checkSeen(t *testing.T, items int) {
	t.Helper()
	if len(s.seen) != items {
		t.Fatalf("handler saw %d items, want %d", len(s.seen), items)
	}
	for i, v := range s.seen {
		if v != i {
			t.Fatalf("item %d = %d", i, v)
		}
	}
}

func TestPinnedConsumerDelivers(t *testing.T) {
	s := newConsumerTestState(t, 16)
	s.launch(0)

	order.StoreRelease32(s.hot, 1)
	for i := 0; i < 10000; i++ {
		s.prod.ProduceWait(i)
	}
	order.StoreRelease32(s.hot, 0)

	s.shutdown(t)
	s.checkSeen(t, 10000)
}

// TestPinnedConsumerDrainsOnStop publishes a burst and raises stop
// immediately; the final drain must pick up whatever is still queued.
func TestPinnedConsumerDrainsOnStop(t *testing.T) {
	s := newConsumerTestState(t, 64)
	for i := 0; i < 63; i++ {
		if err := s.prod.Produce(i); err != nil {
			t.Fatal(err)
		}
	}
	order.StoreRelease32(s.stop, 1)
	s.launch(-1)

	select {
	case <-s.done:
	case <-time.After(10 * time.Second):
		t.Fatal("pinned consumer did not exit")
	}
	s.checkSeen(t, 63)
}

// TestPinnedConsumerIdleThenStop lets the consumer fall into cold spin
// before stopping it.
func TestPinnedConsumerIdleThenStop(t *testing.T) {
	s := newConsumerTestState(t, 4)
	s.launch(1 << 20)

	time.Sleep(2 * hotWindow)
	s.prod.ProduceWait(0)
	time.Sleep(2 * hotWindow)

	s.shutdown(t)
	s.checkSeen(t, 1)
}

func TestPinnedConsumerDoneClosedOnce(t *testing.T) {
	s := newConsumerTestState(t, 4)
	var closes atomic.Int32
	watch := make(chan struct{})
	go func() {
		<-s.done
		closes.Add(1)
		close(watch)
	}()
	s.launch(-1)
	s.shutdown(t)
	<-watch
	if closes.Load() != 1 {
		t.Fatalf("done observed %d times", closes.Load())
	}
}

// TestPinnedConsumerSharesSingleCPU runs producer and consumer on one P with
// a one-deep ring and the hot flag held.  Each hand-off needs the consumer to
// yield from hot spin; without that every item waits out a preemption slice
// (~10-20ms), so 500 items would take seconds.
func TestPinnedConsumerSharesSingleCPU(t *testing.T) {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(1))

	const items = 500
	s := newConsumerTestState(t, 2)
	order.StoreRelease32(s.hot, 1)
	s.launch(-1)

	start := time.Now()
	for i := 0; i < items; i++ {
		s.prod.ProduceWait(i)
	}
	order.StoreRelease32(s.hot, 0)
	s.shutdown(t)
	elapsed := time.Since(start)

	s.checkSeen(t, items)
	if elapsed > time.Second {
		t.Fatalf("%d hand-offs on one CPU took %v", items, elapsed)
	}
	t.Logf("%d hand-offs on one CPU in %v", items, elapsed)
}
