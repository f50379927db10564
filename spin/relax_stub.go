//go:build !amd64 || noasm

// relax_stub.go
//
// Portable fall-back for non-amd64 builds or when assembly is disabled.

package spin

// Relax is a no-op on targets without a PAUSE equivalent wired up.
//
//go:nosplit
func Relax() {}
