package harness

import (
	"runtime"
	"testing"
	"time"

	"atomics/control"
	"atomics/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterConservation(t *testing.T) {
	res, err := CounterConservation(4, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(4000), res.Expected)
	assert.Equal(t, res.Expected, res.Actual)

	res, err = CounterConservation(1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Actual)
}

func TestProducerConsumer(t *testing.T) {
	control.Reset()

	for _, capacity := range []int{2, 3, 100} {
		res, err := ProducerConsumer(TransferConfig{
			Capacity:     capacity,
			Items:        5000,
			ValueMax:     1000,
			Seed:         int64(capacity),
			ConsumerCore: -1,
		})
		require.NoError(t, err, "capacity %d", capacity)
		assert.Equal(t, uint64(5000), res.Produced)
		assert.Equal(t, res.Produced, res.Consumed)
		assert.Equal(t, res.ProducedDigest, res.ConsumedDigest)
		assert.Len(t, res.ProducedDigest, 64)
	}
}

func TestProducerConsumerSingleCPU(t *testing.T) {
	control.Reset()
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(1))

	start := time.Now()
	res, err := ProducerConsumer(TransferConfig{Capacity: 2, Items: 500, ValueMax: 1000, Seed: 1, ConsumerCore: -1})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, uint64(500), res.Consumed)
	assert.Less(t, elapsed, 2*time.Second, "one-deep transfer on one CPU took %v", elapsed)
}

func TestProducerConsumerDeterministicStream(t *testing.T) {
	control.Reset()
	cfg := TransferConfig{Capacity: 8, Items: 500, ValueMax: 1000, Seed: 7, ConsumerCore: -1}

	a, err := ProducerConsumer(cfg)
	require.NoError(t, err)
	b, err := ProducerConsumer(cfg)
	require.NoError(t, err)
	assert.Equal(t, a.ProducedDigest, b.ProducedDigest, "same seed, same stream")

	cfg.Seed = 8
	c, err := ProducerConsumer(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.ProducedDigest, c.ProducedDigest)
}

func TestProducerConsumerInterrupted(t *testing.T) {
	control.Reset()
	control.Shutdown()
	defer control.Reset()

	res, err := ProducerConsumer(TransferConfig{Capacity: 4, Items: 100, ValueMax: 10, ConsumerCore: -1})
	require.ErrorIs(t, err, ErrInterrupted)
	assert.Zero(t, res.Produced)
	assert.Zero(t, res.Consumed)
}

func TestProducerConsumerBadCapacity(t *testing.T) {
	_, err := ProducerConsumer(TransferConfig{Capacity: 1, Items: 1, ValueMax: 1, ConsumerCore: -1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvariant)
}

func TestBarrierFanOut(t *testing.T) {
	res, err := BarrierFanOut(BarrierConfig{
		Workers:  6,
		Settle:   20 * time.Millisecond,
		WorkBase: time.Millisecond,
		WorkStep: time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Workers)
	assert.Equal(t, uint64(6), res.Completed)
	assert.Equal(t, int64(6), res.WorkDone)
	assert.Zero(t, res.EarlyStarts)
}

// TestBarrierFanOutPlainSlots uses zero-length work so every slot is written
// within microseconds of the start signal.  Plan and results are plain
// memory; under -race a missing start or fan-in edge is reported as a race.
func TestBarrierFanOutPlainSlots(t *testing.T) {
	for round := 0; round < 20; round++ {
		res, err := BarrierFanOut(BarrierConfig{Workers: 8, Settle: time.Millisecond})
		require.NoError(t, err, "round %d", round)
		assert.Equal(t, int64(8), res.WorkDone)
	}
}

func TestMemoryOrdering(t *testing.T) {
	res, err := MemoryOrdering(500)
	require.NoError(t, err)
	assert.True(t, res.Ordered)
	assert.Equal(t, uint64(500), res.Consistent)
	assert.Zero(t, res.Inconsistent)
}

func TestWeakOrderingNeverFails(t *testing.T) {
	res, err := WeakOrdering(200)
	require.NoError(t, err)
	assert.False(t, res.Ordered)
	assert.Equal(t, res.Reads, res.Consistent+res.Inconsistent)
}

func TestErrorConditions(t *testing.T) {
	assert.NoError(t, ErrorConditions())
}

func TestOrderingBenchmark(t *testing.T) {
	res, err := OrderingBenchmark(2, 10000, []order.Mode{order.Relaxed, order.SeqCst})
	require.NoError(t, err)
	assert.Contains(t, res.Durations, "relaxed")
	assert.Contains(t, res.Durations, "seq_cst")
	assert.Greater(t, res.SeqCstOverRelaxed, 0.0)

	res, err = OrderingBenchmark(1, 100, []order.Mode{order.SeqCst})
	require.NoError(t, err)
	assert.Zero(t, res.SeqCstOverRelaxed, "no ratio without both modes")
}
