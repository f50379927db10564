package harness

import (
	"errors"
	"fmt"

	"atomics/probe"
	"atomics/ring"
)

// MemoryOrdering stresses the release/acquire publication path; any read
// that saw the flag without the full payload is a failure.
func MemoryOrdering(cycles int) (probe.StressResult, error) {
	res := probe.Stress(probe.StressConfig{Cycles: cycles, Ordered: true})
	if res.Inconsistent != 0 {
		return res, fmt.Errorf("%w: %d inconsistent reads under release/acquire, e.g. %v",
			ErrInvariant, res.Inconsistent, res.Samples)
	}
	if res.Consistent == 0 {
		return res, fmt.Errorf("%w: no successful reads in %d cycles", ErrInvariant, cycles)
	}
	return res, nil
}

// WeakOrdering stresses the unordered publication path.  Inconsistent reads
// are the expected (if rare) outcome, so it never fails.
func WeakOrdering(cycles int) (probe.StressResult, error) {
	return probe.Stress(probe.StressConfig{Cycles: cycles, Ordered: false}), nil
}

// ErrorConditions walks the ring's expected error paths on one goroutine.
func ErrorConditions() error {
	if _, err := ring.New[int](1); !errors.Is(err, ring.ErrCapacity) {
		return fmt.Errorf("%w: capacity 1 accepted (%v)", ErrInvariant, err)
	}

	small := ring.MustNew[int](3)
	if err := small.Produce(1); err != nil {
		return fmt.Errorf("%w: first produce: %v", ErrInvariant, err)
	}
	if err := small.Produce(2); err != nil {
		return fmt.Errorf("%w: second produce: %v", ErrInvariant, err)
	}
	if err := small.Produce(3); !errors.Is(err, ring.ErrFull) {
		return fmt.Errorf("%w: produce into full ring returned %v", ErrInvariant, err)
	}
	if v, err := small.Consume(); err != nil || v != 1 {
		return fmt.Errorf("%w: consume returned %d, %v; want 1", ErrInvariant, v, err)
	}
	if err := small.Produce(4); err != nil {
		return fmt.Errorf("%w: produce after consume: %v", ErrInvariant, err)
	}

	empty := ring.MustNew[int](5)
	if _, err := empty.Consume(); !errors.Is(err, ring.ErrEmpty) {
		return fmt.Errorf("%w: consume from empty ring returned %v", ErrInvariant, err)
	}
	return nil
}
