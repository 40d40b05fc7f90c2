package ndimage

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// byteRange returns the first and one-past-last byte touched by img within
// its data block.
func (img *Image) byteRange() (lo, hi int) {
	size, start := img.DataBlockSizeAndStart()
	sampleSize := img.dataType.SizeOf()
	lo = img.origin + start*sampleSize
	return lo, lo + size*sampleSize
}

// footprint returns the set of block bytes covered by img's samples.
func (img *Image) footprint() *roaring64.Bitmap {
	bm := roaring64.New()
	size := uint64(img.dataType.SizeOf())
	img.forEachSample(func(pos int) {
		p := uint64(pos)
		bm.AddRange(p, p+size)
	})
	return bm
}

// Aliases reports whether img and other share at least one byte of pixel
// data. Images on different data blocks, and raw images, never alias.
func (img *Image) Aliases(other *Image) bool {
	if !img.IsForged() || !other.IsForged() || img.block != other.block {
		return false
	}

	alo, ahi := img.byteRange()
	blo, bhi := other.byteRange()
	if ahi <= blo || bhi <= alo {
		return false
	}
	// Gap-free images touch every byte of their range.
	if img.HasContiguousData() && other.HasContiguousData() {
		return true
	}
	return img.footprint().Intersects(other.footprint())
}

// IsIdenticalView reports whether img and other address the same samples in
// the same order with the same data type.
func (img *Image) IsIdenticalView(other *Image) bool {
	if !img.IsForged() || !other.IsForged() {
		return false
	}
	return img.block == other.block &&
		img.origin == other.origin &&
		img.dataType == other.dataType &&
		img.sizes.Equal(&other.sizes) &&
		img.strides.Equal(&other.strides) &&
		img.tensor.Elements() == other.tensor.Elements() &&
		(img.tensor.IsScalar() || img.tensorStride == other.tensorStride)
}
