package harness

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"atomics/barrier"
	"atomics/debug"
)

// BarrierConfig sizes BarrierFanOut.
type BarrierConfig struct {
	Workers  int
	Settle   time.Duration
	WorkBase time.Duration
	WorkStep time.Duration
}

// BarrierResult is the outcome of BarrierFanOut.
type BarrierResult struct {
	Workers     int    `json:"workers"`
	Completed   uint64 `json:"completed"`
	// WorkDone counts plain result slots the coordinator saw fully written
	// after fan-in.
	WorkDone    int64  `json:"work_done"`
	EarlyStarts int64  `json:"early_starts"`
}

// workSlot is one worker's plain result cell.
type workSlot struct {
	worker int // worker index + 1; zero means never written
	slept  time.Duration
}

// BarrierFanOut parks cfg.Workers goroutines behind one start signal, lets
// them settle, releases them, and waits for every completion.  Worker i
// simulates WorkBase + i×WorkStep of work.
//
// The work plan and the per-worker results are plain slices: the plan is
// visible to workers only through SignalStart/WaitForStart and the results
// to the coordinator only through SignalCompletion/WaitForCompletions.
func BarrierFanOut(cfg BarrierConfig) (BarrierResult, error) {
	var (
		b       barrier.Start
		started atomic.Int64
		wg      sync.WaitGroup
		plan    = make([]time.Duration, cfg.Workers)
		slots   = make([]workSlot, cfg.Workers)
	)

	wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go func() {
			defer wg.Done()
			debug.Logger().Debug().Int("worker", i).Msg("waiting for start signal")
			b.WaitForStart()
			started.Add(1)
			d := plan[i]
			time.Sleep(d)
			slots[i] = workSlot{worker: i + 1, slept: d}
			b.SignalCompletion()
			debug.Logger().Debug().Int("worker", i).Msg("completed work")
		}()
	}

	// Workers are already parked; they read the plan only after the start
	// signal publishes it.
	for i := range plan {
		plan[i] = cfg.WorkBase + time.Duration(i)*cfg.WorkStep
	}

	time.Sleep(cfg.Settle)
	early := started.Load()
	debug.Logger().Debug().Int("workers", cfg.Workers).Msg("sending start signal")
	b.SignalStart()
	b.WaitForCompletions(uint64(cfg.Workers))

	// Read before joining: the acquire in WaitForCompletions is the only
	// thing making the workers' slots visible here.
	res := BarrierResult{
		Workers:     cfg.Workers,
		Completed:   b.CompletionCount(),
		EarlyStarts: early,
	}
	for i, s := range slots {
		if s.worker == i+1 && s.slept == plan[i] {
			res.WorkDone++
		}
	}
	wg.Wait()

	if res.EarlyStarts != 0 {
		return res, fmt.Errorf("%w: %d workers passed the barrier before start", ErrInvariant, res.EarlyStarts)
	}
	if res.Completed != uint64(cfg.Workers) || res.WorkDone != int64(cfg.Workers) {
		return res, fmt.Errorf("%w: %d workers, %d completions, %d work units visible",
			ErrInvariant, cfg.Workers, res.Completed, res.WorkDone)
	}
	return res, nil
}
