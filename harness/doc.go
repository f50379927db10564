// Package harness runs the demonstration scenarios over the core
// primitives: counter conservation, SPSC transfer, barrier fan-out/fan-in,
// happens-before probing, error conditions and a relaxed vs seq_cst
// throughput comparison.
//
// Every runner owns the goroutines it starts and joins them before
// returning.  A runner returns an error wrapping ErrInvariant when the
// property it checks does not hold.
package harness
