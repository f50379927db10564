// ════════════════════════════════════════════════════════════════════════════════════════════════
// CORE-PINNED CONSUMER
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Drains a ring's consumer handle on a dedicated OS thread pinned to one CPU.
//
// Adaptive polling:
//   - Hot spin while the hot flag is set or an item arrived within hotWindow:
//     PAUSE every miss, a scheduler yield every spinBudget misses
//   - Cold spin afterwards: PAUSE and a scheduler yield on every miss
//   - Exits once the stop flag is observed and everything published before it is drained
//
// Flag contract:
//
//	Producer                         Consumer
//	--------                         ------------------------------
//	hot  ← 1 (release)  ──────────▶  acquire: stay in hot spin
//	...Produce items...
//	stop ← 1 (release)  ──────────▶  acquire: drain remaining items, exit
//
// The consumer never writes either flag.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package ring

import (
	"runtime"
	"time"

	"atomics/debug"
	"atomics/order"
	"atomics/spin"
)

const (
	// hotWindow keeps the consumer spinning tightly after the last delivery.
	hotWindow = 50 * time.Millisecond

	// spinBudget is the number of hot misses between scheduler yields.
	spinBudget = 256
)

// PinnedConsumer starts a goroutine that locks itself to an OS thread,
// pins that thread to core (negative: no pinning) and passes every consumed
// item to fn until *stop becomes non-zero.  done is closed when it exits.
func PinnedConsumer[T any](
	core int,
	c *Consumer[T],
	stop, hot *uint32,
	fn func(T),
	done chan<- struct{},
) {
	go func() {
		runtime.LockOSThread()
		if err := setAffinity(core); err != nil {
			debug.DropError("PIN", err)
		}
		defer func() {
			runtime.UnlockOSThread()
			close(done)
		}()

		var miss int
		lastHit := time.Now()

		for {
			if v, err := c.Consume(); err == nil {
				fn(v)
				miss = 0
				lastHit = time.Now()
				continue
			}

			// Everything produced before stop was released is visible once
			// stop is acquired, so one final drain loses nothing.
			if order.LoadAcquire32(stop) != 0 {
				c.Drain(fn)
				return
			}

			// Hot: PAUSE, yielding every spinBudget misses so a producer
			// sharing this CPU still gets to run.
			if order.LoadAcquire32(hot) != 0 || time.Since(lastHit) <= hotWindow {
				if miss++; miss >= spinBudget {
					miss = 0
					spin.Wait()
					continue
				}
				spin.Relax()
				continue
			}

			// Cold: yield on every miss.
			miss = 0
			spin.Wait()
		}
	}()
}
