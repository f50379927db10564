//go:build !linux

// setaffinity_stub.go
//
// No-op affinity for platforms without sched_setaffinity(2).  The consumer
// still runs on a locked OS thread; the kernel chooses the CPU.

package ring

func setAffinity(cpu int) error {
	return nil
}
