package harness

import (
	"fmt"
	"sync"
	"time"

	"atomics/counter"
	"atomics/order"
)

// CounterResult is the outcome of CounterConservation.
type CounterResult struct {
	Expected uint64 `json:"expected"`
	Actual   uint64 `json:"actual"`
}

// CounterConservation starts threads goroutines that each increment one
// counter increments times, alternating relaxed (even) and seq_cst (odd),
// joins them and checks the total.
func CounterConservation(threads, increments int) (CounterResult, error) {
	var c counter.Counter
	var wg sync.WaitGroup
	wg.Add(threads)
	for i := 0; i < threads; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				if j%2 == 0 {
					c.IncrementRelaxed()
				} else {
					c.IncrementSeqCst()
				}
			}
		}()
	}
	wg.Wait()

	res := CounterResult{
		Expected: uint64(threads) * uint64(increments),
		Actual:   c.Get(),
	}
	if res.Actual != res.Expected {
		return res, fmt.Errorf("%w: counter expected %d, got %d", ErrInvariant, res.Expected, res.Actual)
	}
	return res, nil
}

// BenchResult holds wall-clock durations per increment mode.
type BenchResult struct {
	Threads    int                      `json:"threads"`
	Iterations int                      `json:"iterations"`
	Durations  map[string]time.Duration `json:"durations"`
	// SeqCstOverRelaxed is duration(seq_cst)/duration(relaxed), or 0 when
	// either mode was not run.
	SeqCstOverRelaxed float64 `json:"seq_cst_over_relaxed"`
}

// OrderingBenchmark times threads×iterations increments for each mode on a
// fresh counter.  The counter total is checked after each mode.
func OrderingBenchmark(threads, iterations int, modes []order.Mode) (BenchResult, error) {
	res := BenchResult{
		Threads:    threads,
		Iterations: iterations,
		Durations:  make(map[string]time.Duration, len(modes)),
	}

	var c counter.Counter
	for _, mode := range modes {
		c.Reset()
		var wg sync.WaitGroup
		wg.Add(threads)
		start := time.Now()
		for i := 0; i < threads; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < iterations; j++ {
					c.Increment(mode)
				}
			}()
		}
		wg.Wait()
		res.Durations[mode.String()] = time.Since(start)

		if got, want := c.Get(), uint64(threads)*uint64(iterations); got != want {
			return res, fmt.Errorf("%w: %v benchmark counted %d, want %d", ErrInvariant, mode, got, want)
		}
	}

	relaxed, okR := res.Durations[order.Relaxed.String()]
	seqCst, okS := res.Durations[order.SeqCst.String()]
	if okR && okS && relaxed > 0 {
		res.SeqCstOverRelaxed = float64(seqCst) / float64(relaxed)
	}
	return res, nil
}
