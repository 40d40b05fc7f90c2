// Package mem provides aligned heap allocation.
package mem

import (
	"unsafe"
)

// Alignment is the default byte alignment (one cache line, AVX-512 width).
const Alignment = 64

// AllocAligned allocates a zeroed byte slice of the given size whose first
// byte sits at an address divisible by Alignment. It returns nil for
// non-positive sizes.
func AllocAligned(size int) []byte {
	return AllocAlignedTo(size, Alignment)
}

// AllocAlignedTo is AllocAligned with an explicit alignment, which must be a
// power of two. Alignments of 1 or less allocate a plain slice.
//
// The underlying array is over-allocated by align bytes and kept alive by the
// returned slice.
func AllocAlignedTo(size, align int) []byte {
	if size <= 0 {
		return nil
	}
	if align <= 1 {
		return make([]byte, size)
	}
	if align&(align-1) != 0 {
		panic("mem: alignment must be a power of two")
	}

	buf := make([]byte, size+align)

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	mask := uintptr(align - 1)
	offset := int((uintptr(align) - (addr & mask)) & mask)

	return buf[offset : offset+size : offset+size]
}

// IsAligned reports whether b starts at an address divisible by align.
// An empty slice is considered aligned.
func IsAligned(b []byte, align int) bool {
	if len(b) == 0 || align <= 1 {
		return true
	}
	addr := uintptr(unsafe.Pointer(&b[0])) //nolint:gosec // unsafe is required for memory alignment
	return addr&uintptr(align-1) == 0
}
