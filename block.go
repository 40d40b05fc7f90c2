package ndimage

import (
	"unsafe"

	"github.com/hupe1980/ndimage/internal/errs"
	"github.com/hupe1980/ndimage/internal/mem"
	"github.com/hupe1980/ndimage/internal/mmap"
)

// Allocator provides the memory behind data blocks.
//
// Allocate returns size zeroed bytes and a function that frees them. The
// free function may be nil when the memory is garbage collected.
type Allocator interface {
	Allocate(size int) (data []byte, free func() error, err error)
}

// HeapAllocator allocates data blocks on the Go heap, aligned to Alignment
// bytes (64 if zero).
type HeapAllocator struct {
	Alignment int
}

// Allocate implements Allocator.
func (a HeapAllocator) Allocate(size int) ([]byte, func() error, error) {
	align := a.Alignment
	if align == 0 {
		align = mem.Alignment
	}
	if align&(align-1) != 0 {
		return nil, nil, errs.Parameterf("%s: alignment %d", errs.InvalidParameter, align)
	}
	return mem.AllocAlignedTo(size, align), nil, nil
}

// MmapAllocator allocates data blocks as anonymous memory mappings outside
// the Go heap. Released blocks are unmapped immediately.
type MmapAllocator struct{}

// Allocate implements Allocator.
func (MmapAllocator) Allocate(size int) ([]byte, func() error, error) {
	m, err := mmap.MapAnon(size)
	if err != nil {
		return nil, nil, err
	}
	return m.Bytes(), m.Close, nil
}

// DataBlock is a reference-counted byte block shared by every image forged
// on it or derived from it as a view.
//
// The count is a plain integer; see the package documentation on sharing.
type DataBlock struct {
	data      []byte
	refs      int
	free      func() error
	onRelease func(size int, err error)
}

func newDataBlock(data []byte, free func() error, onRelease func(int, error)) *DataBlock {
	return &DataBlock{data: data, refs: 1, free: free, onRelease: onRelease}
}

// Bytes returns the whole block, or nil once released.
func (b *DataBlock) Bytes() []byte { return b.data }

// Len returns the block size in bytes.
func (b *DataBlock) Len() int { return len(b.data) }

// ShareCount returns the number of images bound to the block.
func (b *DataBlock) ShareCount() int { return b.refs }

// Released reports whether the block's memory has been returned.
func (b *DataBlock) Released() bool { return b.refs == 0 }

// Address returns the address of the first byte, 0 once released.
func (b *DataBlock) Address() uintptr {
	if len(b.data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b.data[0])) //nolint:gosec // address is only printed and compared
}

func (b *DataBlock) retain() {
	errs.Assert(b.refs > 0, "retaining a released data block")
	b.refs++
}

// drop decrements the share count and frees the memory when it reaches zero.
func (b *DataBlock) drop() error {
	errs.Assert(b.refs > 0, "dropping a released data block")
	b.refs--
	if b.refs > 0 {
		return nil
	}

	size := len(b.data)
	b.data = nil

	var err error
	if b.free != nil {
		if ferr := b.free(); ferr != nil {
			err = errs.Runtime("Failed to release data block", ferr)
		}
		b.free = nil
	}
	if b.onRelease != nil {
		b.onRelease(size, err)
	}
	return err
}
