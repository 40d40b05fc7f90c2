// Package mmap provides anonymous read-write memory mappings.
//
// A Mapping is page-aligned memory obtained directly from the operating
// system, outside the Go heap. Large pixel buffers are allocated this way so
// that they neither count against the garbage collector's heap target nor
// stay resident after release.
//
//	m, err := mmap.MapAnon(size)
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//	m.Advise(mmap.AccessSequential)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON, madvise(2) for hints
//   - Windows: VirtualAlloc (Advise is a no-op)
//   - Others: MapAnon returns ErrUnsupported
//
// Close is idempotent. Callers must not touch the slice returned by Bytes
// after Close returns.
package mmap
