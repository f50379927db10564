// handles.go
//
// Role handles turning the SPSC precondition into a type distinction: the
// producer goroutine gets a *Producer that cannot consume, the consumer
// goroutine a *Consumer that cannot produce, and each ring hands out exactly
// one pair.

package ring

import (
	"errors"

	"atomics/order"
	"atomics/spin"
)

// ErrSplit is returned when Split is called on a ring that was already split.
var ErrSplit = errors.New("ring: producer and consumer already handed out")

// Producer is the write-only view of a Ring.
type Producer[T any] struct {
	r *Ring[T]
}

// Consumer is the read-only view of a Ring.
type Consumer[T any] struct {
	r *Ring[T]
}

// Split returns the ring's only producer and consumer handles.
func (r *Ring[T]) Split() (*Producer[T], *Consumer[T], error) {
	if !order.CompareAndSwap32(&r.split, 0, 1) {
		return nil, nil, ErrSplit
	}
	return &Producer[T]{r: r}, &Consumer[T]{r: r}, nil
}

// NewSPSC is New followed by Split.
func NewSPSC[T any](capacity int) (*Producer[T], *Consumer[T], error) {
	r, err := New[T](capacity)
	if err != nil {
		return nil, nil, err
	}
	return r.Split()
}

// Produce is Ring.Produce.
func (p *Producer[T]) Produce(item T) error {
	return p.r.Produce(item)
}

// ProduceWait retries Produce until it succeeds, yielding between attempts.
// It never returns if the consumer stops draining.
func (p *Producer[T]) ProduceWait(item T) {
	for p.r.Produce(item) != nil {
		spin.Wait()
	}
}

// Ring exposes the underlying ring for diagnostics (Len, IsEmpty, Cap).
func (p *Producer[T]) Ring() *Ring[T] {
	return p.r
}

// Consume is Ring.Consume.
func (c *Consumer[T]) Consume() (T, error) {
	return c.r.Consume()
}

// ConsumeWait retries Consume until an item arrives, yielding between
// attempts.  It never returns if the producer stops publishing.
func (c *Consumer[T]) ConsumeWait() T {
	for {
		if v, err := c.r.Consume(); err == nil {
			return v
		}
		spin.Wait()
	}
}

// Drain consumes until the ring reports empty, passing each item to fn, and
// returns the number of items handed over.
func (c *Consumer[T]) Drain(fn func(T)) int {
	n := 0
	for {
		v, err := c.r.Consume()
		if err != nil {
			return n
		}
		fn(v)
		n++
	}
}

// Ring exposes the underlying ring for diagnostics (Len, IsEmpty, Cap).
func (c *Consumer[T]) Ring() *Ring[T] {
	return c.r
}
