//go:build amd64 && !noasm && !race

// order_amd64.go
//
// Declarations for the plain-MOV accessors in order_amd64.s.  Race builds
// use order_fallback.go instead so the detector can see the happens-before
// edges these accessors create.

package order

//go:noescape
func loadUint64(p *uint64) (v uint64)

//go:noescape
func storeUint64(p *uint64, v uint64)

//go:noescape
func loadUint32(p *uint32) (v uint32)

//go:noescape
func storeUint32(p *uint32, v uint32)
