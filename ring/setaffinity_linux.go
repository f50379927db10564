//go:build linux

// setaffinity_linux.go
//
// Pins the calling OS thread to a single logical CPU via sched_setaffinity(2).
// Callers must hold runtime.LockOSThread, otherwise the goroutine may move to
// an unpinned thread at the next scheduling point.

package ring

import "golang.org/x/sys/unix"

// setAffinity pins the current thread to cpu.  A negative cpu leaves the
// thread unpinned.  EPERM/EINVAL (containers, offline CPUs) are returned
// for the caller to log; the thread then keeps its inherited mask.
func setAffinity(cpu int) error {
	if cpu < 0 {
		return nil
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}
