//go:build amd64 && !noasm

// relax_amd64.go
//
// Go declaration for Relax on amd64.  The body lives in relax_amd64.s and
// emits a single PAUSE so spin loops back off politely while staying in
// userspace.

package spin

// Relax executes the x86-64 PAUSE instruction.
//
//go:noescape
func Relax()
