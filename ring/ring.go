// ============================================================================
// LOCK-FREE SPSC RING BUFFER
// ============================================================================
//
// Fixed-capacity circular buffer shared by exactly one producer goroutine and
// exactly one consumer goroutine.  No lock is taken anywhere: each cursor has
// a single writer, and every cross-goroutine read of a cursor is an acquire
// load paired with the owner's release store.
//
// Cursor protocol:
//   - prod is written only by the producer, cons only by the consumer
//   - the owner reads its own cursor relaxed (nobody else writes it)
//   - the other side reads it with acquire, the owner publishes with release
//   - empty: prod == cons
//   - full:  (prod+1) mod size == cons, so one slot is always unused
//
// Happens-before edges:
//   - producer: plain slot write → release(prod) → consumer acquire(prod) →
//     plain slot read
//   - consumer: plain slot read/zero → release(cons) → producer acquire(cons)
//     → plain slot overwrite
//
// Memory layout:
//   - prod and cons sit on their own cache lines so the two sides never
//     false-share
//   - the slot slice is allocated once in New and never resized
//
// ⚠️  SPSC discipline is required.  A second concurrent producer or consumer
// breaks the single-writer-per-cursor invariant and races on the slots.  Use
// Split to hand out the two roles as distinct handle types.

package ring

import (
	"errors"

	"atomics/order"

	"golang.org/x/sys/cpu"
)

// MinCapacity is the smallest accepted capacity; it yields a one-deep queue.
const MinCapacity = 2

var (
	// ErrFull is returned by Produce when the buffer holds capacity-1 items.
	ErrFull = errors.New("ring: buffer full")

	// ErrEmpty is returned by Consume when no published item is available.
	ErrEmpty = errors.New("ring: buffer empty")

	// ErrCapacity is returned by New for a capacity below MinCapacity.
	ErrCapacity = errors.New("ring: capacity must be at least 2")
)

// Ring is a bounded SPSC queue of T.
type Ring[T any] struct {
	_    cpu.CacheLinePad
	prod uint64 // next slot to write; producer-owned
	_    cpu.CacheLinePad
	cons uint64 // next slot to read; consumer-owned
	_    cpu.CacheLinePad

	size  uint64 // slot count, including the reserved slot
	buf   []T
	split uint32 // set once Split has handed out the role handles
}

// New allocates a ring with capacity slots (capacity-1 usable).
func New[T any](capacity int) (*Ring[T], error) {
	if capacity < MinCapacity {
		return nil, ErrCapacity
	}
	return &Ring[T]{
		size: uint64(capacity),
		buf:  make([]T, capacity),
	}, nil
}

// MustNew is New for capacities fixed at compile time; it panics on error.
func MustNew[T any](capacity int) *Ring[T] {
	r, err := New[T](capacity)
	if err != nil {
		panic(err)
	}
	return r
}

// ============================================================================
// PRODUCER SIDE
// ============================================================================

// Produce enqueues item or returns ErrFull without touching the ring.
// Producer goroutine only.
func (r *Ring[T]) Produce(item T) error {
	// Own cursor: only this goroutine writes it.
	p := order.LoadRelaxed64(&r.prod)
	next := p + 1
	if next == r.size {
		next = 0
	}

	// Pairs with the release in Consume: the consumer is done with the slot.
	if next == order.LoadAcquire64(&r.cons) {
		return ErrFull
	}

	// Plain write, unobservable until the release store publishes it.
	r.buf[p] = item
	order.StoreRelease64(&r.prod, next)
	return nil
}

// ============================================================================
// CONSUMER SIDE
// ============================================================================

// Consume dequeues the oldest item or returns ErrEmpty.  Consumer goroutine
// only.
func (r *Ring[T]) Consume() (T, error) {
	var zero T

	// Own cursor: only this goroutine writes it.
	c := order.LoadRelaxed64(&r.cons)

	// Pairs with the release in Produce: the slot write is visible.
	if c == order.LoadAcquire64(&r.prod) {
		return zero, ErrEmpty
	}

	item := r.buf[c]
	r.buf[c] = zero // drop the reference before the slot is handed back

	next := c + 1
	if next == r.size {
		next = 0
	}
	// Hands the slot back to the producer.
	order.StoreRelease64(&r.cons, next)
	return item, nil
}

// ============================================================================
// DIAGNOSTICS
// ============================================================================

// IsEmpty compares acquire snapshots of both cursors.  The answer can be
// stale by the time it is returned; never use it instead of checking the
// error from Produce or Consume.
func (r *Ring[T]) IsEmpty() bool {
	return order.LoadAcquire64(&r.cons) == order.LoadAcquire64(&r.prod)
}

// Len is a best-effort item count built from two independent snapshots.
func (r *Ring[T]) Len() int {
	c := order.LoadAcquire64(&r.cons)
	p := order.LoadAcquire64(&r.prod)
	if p >= c {
		return int(p - c)
	}
	return int(r.size - c + p)
}

// Cap returns the slot count passed to New.  At most Cap()-1 items fit.
func (r *Ring[T]) Cap() int {
	return int(r.size)
}
