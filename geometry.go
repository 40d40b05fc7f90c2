package ndimage

import (
	"github.com/hupe1980/ndimage/container"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// layout returns the strides and tensor stride used for geometry queries.
// Strides of the wrong length have not been computed yet; normal strides
// stand in for them.
func (img *Image) layout() (container.IntegerArray, int) {
	if img.strides.Len() == img.sizes.Len() {
		return img.strides, img.tensorStride
	}
	return normalStrides(&img.sizes, img.tensor.Elements()), 1
}

// HasValidStrides reports whether the strides have one entry per dimension
// and map distinct samples to distinct offsets. Size-1 dimensions, and the
// tensor dimension of a scalar image, are not constrained.
func (img *Image) HasValidStrides() bool {
	if img.strides.Len() != img.sizes.Len() {
		return false
	}

	var steps, extents container.IntegerArray
	for d, n := range img.sizes.Slice() {
		if n > 1 {
			steps.PushBack(abs(img.strides.At(d)))
			extents.PushBack(n)
		}
	}
	if e := img.tensor.Elements(); e > 1 {
		steps.PushBack(abs(img.tensorStride))
		extents.PushBack(e)
	}

	container.SortWith(&steps, &extents)
	for i := 0; i < steps.Len(); i++ {
		if steps.At(i) == 0 {
			return false
		}
		if i > 0 && steps.At(i) < steps.At(i-1)*extents.At(i-1) {
			return false
		}
	}
	return true
}

// DataBlockSizeAndStart returns the number of samples between the lowest
// and highest addressed sample (inclusive), and the offset of the lowest
// one relative to the origin, in samples. start is never positive.
func (img *Image) DataBlockSizeAndStart() (size, start int) {
	if img.NumberOfPixels() == 0 {
		return 0, 0
	}
	strides, tstride := img.layout()

	lo, hi := 0, 0
	extend := func(n, stride int) {
		ext := (n - 1) * stride
		if ext < 0 {
			lo += ext
		} else {
			hi += ext
		}
	}
	for d, n := range img.sizes.Slice() {
		extend(n, strides.At(d))
	}
	extend(img.tensor.Elements(), tstride)

	return hi - lo + 1, lo
}

// HasContiguousData reports whether the samples fill their span without
// gaps, in any order.
func (img *Image) HasContiguousData() bool {
	n := img.NumberOfSamples()
	size, _ := img.DataBlockSizeAndStart()
	return n > 0 && size == n
}

// HasNormalStrides reports whether the layout is the one Forge creates:
// tensor elements adjacent, then dimension 0, then dimension 1, and so on.
func (img *Image) HasNormalStrides() bool {
	if img.strides.Len() != img.sizes.Len() {
		return false
	}
	if !img.tensor.IsScalar() && img.tensorStride != 1 {
		return false
	}
	normal := normalStrides(&img.sizes, img.tensor.Elements())
	return img.strides.Equal(&normal)
}

// SimpleStride reports whether all samples lie on one evenly spaced run in
// memory, and returns that spacing. The tensor counts as one more
// dimension and size-1 dimensions are ignored, so an image with at most one
// non-singleton dimension is always simple. An image with a single sample
// has stride 1. The result depends only on sizes and strides; strides that
// map two samples to one offset are never simple.
func (img *Image) SimpleStride() (int, bool) {
	if img.strides.Len() == img.sizes.Len() && !img.HasValidStrides() {
		return 0, false
	}
	strides, tstride := img.layout()

	stride, found := 0, false
	consider := func(n, s int) {
		if n <= 1 {
			return
		}
		if a := abs(s); !found || a < stride {
			stride, found = a, true
		}
	}
	for d, n := range img.sizes.Slice() {
		consider(n, strides.At(d))
	}
	consider(img.tensor.Elements(), tstride)

	samples := img.NumberOfSamples()
	if samples == 0 {
		return 0, false
	}
	if !found {
		return 1, true
	}
	if stride == 0 {
		return 0, false
	}

	span, _ := img.DataBlockSizeAndStart()
	if (samples-1)*stride+1 != span {
		return 0, false
	}
	return stride, true
}

// SimpleStrideAndOrigin returns the simple stride together with the byte
// offset, within the data block, of the lowest addressed sample. Walking
// NumberOfSamples steps of stride samples from there visits every sample.
// ok is false if the image is raw or its strides are not simple.
func (img *Image) SimpleStrideAndOrigin() (stride, offset int, ok bool) {
	if !img.IsForged() {
		return 0, 0, false
	}
	stride, ok = img.SimpleStride()
	if !ok {
		return 0, 0, false
	}
	_, start := img.DataBlockSizeAndStart()
	return stride, img.origin + start*img.dataType.SizeOf(), true
}
