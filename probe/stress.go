// stress.go
//
// Two-goroutine harness for the probe.  Each cycle:
//
//	writer                                  reader
//	------                                  ------
//	Reset                                   wait for cycle i (acquire)
//	cycle ← i (release)  ─────────────────▶ poll TryRead until ok
//	PublishOrdered / PublishUnordered       (polling overlaps the publish)
//	wait for ack == i (acquire) ◀────────── record (x, y); ack ← i (release)
//
// The handshake keeps Reset out of any TryRead window, which is the probe's
// documented precondition; everything else runs concurrently.

package probe

import (
	"runtime"

	"atomics/order"
	"atomics/spin"
)

const (
	// maxSamples bounds how many inconsistent pairs a result keeps.
	maxSamples = 16

	// pollBudget is the number of missed polls between reader yields.  The
	// writer may share the reader's CPU and cannot publish until it runs.
	pollBudget = 64
)

// StressConfig selects the publication path and the number of cycles.
type StressConfig struct {
	Cycles  int
	Ordered bool
}

// StressResult summarises one run.
type StressResult struct {
	Cycles  int  `json:"cycles"`
	Ordered bool `json:"ordered"`

	// Polls counts TryRead calls, Reads the ones that returned ok.
	Polls uint64 `json:"polls"`
	Reads uint64 `json:"reads"`

	// Consistent reads equal (42, 24); Inconsistent ones saw stale or
	// partial cells.  Samples keeps the first few inconsistent pairs.
	Consistent   uint64      `json:"consistent"`
	Inconsistent uint64      `json:"inconsistent"`
	Samples      [][2]uint64 `json:"samples,omitempty"`
}

// Stress runs cfg.Cycles publish/observe cycles on two goroutines and
// returns what the reader saw.
func Stress(cfg StressConfig) StressResult {
	var (
		p     Probe
		cycle uint64 // last cycle reset by the writer
		ack   uint64 // last cycle observed by the reader
		res   = StressResult{Cycles: cfg.Cycles, Ordered: cfg.Ordered}
		done  = make(chan struct{})
	)

	go func() {
		defer close(done)
		for i := uint64(1); i <= uint64(cfg.Cycles); i++ {
			p.Reset()
			order.StoreRelease64(&cycle, i)
			runtime.Gosched() // let the reader start polling before the publish

			if cfg.Ordered {
				p.PublishOrdered()
			} else {
				p.PublishUnordered()
			}

			for order.LoadAcquire64(&ack) != i {
				spin.Wait()
			}
		}
	}()

	for i := uint64(1); i <= uint64(cfg.Cycles); i++ {
		for order.LoadAcquire64(&cycle) != i {
			spin.Wait()
		}
		for miss := 0; ; {
			res.Polls++
			x, y, ok := p.TryRead()
			if !ok {
				if miss++; miss >= pollBudget {
					miss = 0
					spin.Wait()
					continue
				}
				spin.Relax()
				continue
			}
			res.Reads++
			if x == WantX && y == WantY {
				res.Consistent++
			} else {
				res.Inconsistent++
				if len(res.Samples) < maxSamples {
					res.Samples = append(res.Samples, [2]uint64{x, y})
				}
			}
			break
		}
		order.StoreRelease64(&ack, i)
	}

	<-done
	return res
}
