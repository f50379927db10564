package harness

import (
	"fmt"
	"time"

	"atomics/config"
	"atomics/control"
	"atomics/debug"
	"atomics/order"
	"atomics/report"
)

// Scenario is one named runner.  Run returns the runner's typed result,
// which becomes the report detail.
type Scenario struct {
	Name string
	Run  func() (any, error)
}

// Suite builds the scenarios in driver order from cfg.
func Suite(cfg config.Config) ([]Scenario, error) {
	modes := make([]order.Mode, 0, len(cfg.Counter.BenchModes))
	for _, name := range cfg.Counter.BenchModes {
		m, ok := order.ParseMode(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown bench mode %q", config.ErrInvalid, name)
		}
		modes = append(modes, m)
	}

	suite := []Scenario{
		{"counter_conservation", func() (any, error) {
			return CounterConservation(cfg.Counter.Threads, cfg.Counter.Increments)
		}},
		{"producer_consumer", func() (any, error) {
			return ProducerConsumer(TransferConfig{
				Capacity:     cfg.Ring.Capacity,
				Items:        cfg.Ring.Items,
				ValueMax:     cfg.Ring.ValueMax,
				Seed:         cfg.Ring.Seed,
				ConsumerCore: cfg.Ring.ConsumerCore,
			})
		}},
		{"barrier_fan_out", func() (any, error) {
			return BarrierFanOut(BarrierConfig{
				Workers:  cfg.Barrier.Workers,
				Settle:   cfg.Barrier.Settle,
				WorkBase: cfg.Barrier.WorkBase,
				WorkStep: cfg.Barrier.WorkStep,
			})
		}},
		{"memory_ordering", func() (any, error) {
			return MemoryOrdering(cfg.Probe.Cycles)
		}},
	}
	if !cfg.Probe.SkipUnordered {
		suite = append(suite, Scenario{"weak_ordering", func() (any, error) {
			return WeakOrdering(cfg.Probe.Cycles)
		}})
	}
	suite = append(suite,
		Scenario{"error_conditions", func() (any, error) {
			return nil, ErrorConditions()
		}},
		Scenario{"ordering_benchmark", func() (any, error) {
			return OrderingBenchmark(cfg.Counter.BenchThreads, cfg.Counter.BenchIterations, modes)
		}},
	)
	return suite, nil
}

// RunAll executes scenarios in order, appending each outcome to r.  After
// control.Shutdown the remaining scenarios are recorded as interrupted
// without running.
func RunAll(scenarios []Scenario, r *report.Report) {
	log := debug.Logger()
	for _, sc := range scenarios {
		control.PollCooldown()
		if control.Stopping() {
			r.Add(report.ScenarioResult{Name: sc.Name, Error: ErrInterrupted.Error()})
			log.Warn().Str("scenario", sc.Name).Msg("skipped after shutdown")
			continue
		}

		log.Info().Str("scenario", sc.Name).Bool("hot", control.Hot()).Msg("running")
		start := time.Now()
		detail, err := sc.Run()
		res := report.ScenarioResult{
			Name:    sc.Name,
			Passed:  err == nil,
			Elapsed: time.Since(start),
			Detail:  detail,
		}
		if err != nil {
			res.Error = err.Error()
			log.Error().Err(err).Str("scenario", sc.Name).Dur("elapsed", res.Elapsed).Msg("failed")
		} else {
			log.Info().Str("scenario", sc.Name).Dur("elapsed", res.Elapsed).Msg("passed")
		}
		r.Add(res)
	}
}
