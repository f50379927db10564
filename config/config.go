// Package config loads scenario parameters from YAML on top of the
// compile-time defaults in package constants.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"atomics/constants"
	"atomics/order"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is the full set of knobs the driver exposes.
type Config struct {
	Counter CounterConfig `yaml:"counter"`
	Ring    RingConfig    `yaml:"ring"`
	Barrier BarrierConfig `yaml:"barrier"`
	Probe   ProbeConfig   `yaml:"probe"`
	Output  OutputConfig  `yaml:"output"`
}

// CounterConfig sizes the conservation check and the ordering benchmark.
type CounterConfig struct {
	Threads         int      `yaml:"threads"`
	Increments      int      `yaml:"increments"`
	BenchThreads    int      `yaml:"bench_threads"`
	BenchIterations int      `yaml:"bench_iterations"`
	BenchModes      []string `yaml:"bench_modes"`
}

// RingConfig sizes the producer/consumer scenario.
type RingConfig struct {
	Capacity     int   `yaml:"capacity"`
	Items        int   `yaml:"items"`
	ValueMax     int   `yaml:"value_max"`
	Seed         int64 `yaml:"seed"`
	ConsumerCore int   `yaml:"consumer_core"`
}

// BarrierConfig sizes the fan-out/fan-in scenario.
type BarrierConfig struct {
	Workers  int           `yaml:"workers"`
	Settle   time.Duration `yaml:"settle"`
	WorkBase time.Duration `yaml:"work_base"`
	WorkStep time.Duration `yaml:"work_step"`
}

// ProbeConfig sizes the happens-before scenarios.
type ProbeConfig struct {
	Cycles        int  `yaml:"cycles"`
	SkipUnordered bool `yaml:"skip_unordered"`
}

// OutputConfig controls logging and persistence.
type OutputConfig struct {
	LogLevel  string `yaml:"log_level"`
	HistoryDB string `yaml:"history_db"`
	ReportOut string `yaml:"report_out"`
}

// Default returns the compile-time defaults.
func Default() Config {
	return Config{
		Counter: CounterConfig{
			Threads:         constants.CounterThreads,
			Increments:      constants.CounterIncrements,
			BenchThreads:    constants.BenchThreads,
			BenchIterations: constants.BenchIterations,
			BenchModes:      []string{order.Relaxed.String(), order.SeqCst.String()},
		},
		Ring: RingConfig{
			Capacity:     constants.RingCapacity,
			Items:        constants.RingItems,
			ValueMax:     constants.RingValueMax,
			ConsumerCore: constants.RingConsumerCore,
		},
		Barrier: BarrierConfig{
			Workers:  constants.BarrierWorkers,
			Settle:   constants.BarrierSettle,
			WorkBase: constants.BarrierWorkBase,
			WorkStep: constants.BarrierWorkStep,
		},
		Probe: ProbeConfig{
			Cycles: constants.ProbeCycles,
		},
		Output: OutputConfig{
			LogLevel:  constants.LogLevel,
			HistoryDB: constants.HistoryDB,
		},
	}
}

// Load reads path (YAML) over the defaults.  An empty path returns the
// defaults unchanged.  Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field that would make a scenario meaningless.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    int
	}{
		{"counter.threads", c.Counter.Threads},
		{"counter.increments", c.Counter.Increments},
		{"counter.bench_threads", c.Counter.BenchThreads},
		{"counter.bench_iterations", c.Counter.BenchIterations},
		{"ring.items", c.Ring.Items},
		{"ring.value_max", c.Ring.ValueMax},
		{"barrier.workers", c.Barrier.Workers},
		{"probe.cycles", c.Probe.Cycles},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, p.name, p.v)
		}
	}
	if c.Ring.Capacity < 2 {
		return fmt.Errorf("%w: ring.capacity must be at least 2, got %d", ErrInvalid, c.Ring.Capacity)
	}
	if c.Barrier.Settle < 0 || c.Barrier.WorkBase < 0 || c.Barrier.WorkStep < 0 {
		return fmt.Errorf("%w: barrier durations must not be negative", ErrInvalid)
	}
	for _, name := range c.Counter.BenchModes {
		m, ok := order.ParseMode(name)
		if !ok || (m != order.Relaxed && m != order.SeqCst) {
			return fmt.Errorf("%w: counter.bench_modes: %q is not relaxed or seq_cst", ErrInvalid, name)
		}
	}
	return nil
}
