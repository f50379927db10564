// ============================================================================
// MEMORY-ORDERING VOCABULARY
// ============================================================================
//
// Package order names the memory-ordering mode attached to every atomic
// access in this module.  Each helper is the weakest mode that is correct for
// its call site, and the call site reads like the ordering argument:
//
//	p := order.LoadRelaxed64(&r.prod)   // owner-only cursor
//	c := order.LoadAcquire64(&r.cons)   // pairs with the consumer's release
//	order.StoreRelease64(&r.prod, next) // publishes the slot write above
//
// Mapping onto the Go memory model:
//   - Go's sync/atomic operations are sequentially consistent.  Every mode
//     below is therefore satisfied by sync/atomic, which is what the portable
//     build (and every -race build) uses.
//   - On amd64 the relaxed/acquire loads and relaxed/release stores lower to a
//     plain MOV behind an assembly call boundary.  x86-64 is TSO: loads are not
//     reordered with loads, stores are not reordered with older accesses, so a
//     plain MOV already carries acquire (load) and release (store) semantics and
//     the call boundary stops the compiler from moving accesses across it.
//     Seq-cst stores keep XCHG, so the two modes really differ in cost.
//   - Read-modify-writes are always LOCK-prefixed (amd64) or LDADDAL (arm64);
//     relaxed, acq-rel and seq-cst increments share one instruction.
//
// Cursor/flag fields accessed through these helpers must never be touched by
// plain Go loads or stores from another goroutine.

package order

// Mode identifies a memory-ordering discipline.
type Mode uint8

const (
	// Relaxed guarantees atomicity only.  Used for values read or written
	// exclusively by their owning goroutine.
	Relaxed Mode = iota

	// Acquire loads observe everything written before the paired release.
	Acquire

	// Release stores publish every earlier write to a paired acquire.
	Release

	// AcqRel read-modify-writes act as both acquire and release.
	AcqRel

	// SeqCst adds a single total order agreed on by every goroutine.
	SeqCst
)

var modeNames = [...]string{
	Relaxed: "relaxed",
	Acquire: "acquire",
	Release: "release",
	AcqRel:  "acq_rel",
	SeqCst:  "seq_cst",
}

// String returns the C++-style spelling of the mode (e.g. "acq_rel").
func (m Mode) String() string {
	if m.Valid() {
		return modeNames[m]
	}
	return "mode(" + itoa(int(m)) + ")"
}

// Valid reports whether m names one of the five defined modes.
func (m Mode) Valid() bool {
	return int(m) < len(modeNames)
}

// ParseMode maps a mode name back to its Mode.  The second result is false
// for unknown names.
func ParseMode(s string) (Mode, bool) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), true
		}
	}
	return 0, false
}

// itoa avoids pulling strconv into a package that sits on every hot path.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
