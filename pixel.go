package ndimage

import (
	"github.com/hupe1980/ndimage/container"
	"github.com/hupe1980/ndimage/internal/errs"
)

// Offset returns the offset, in samples relative to the origin, of the
// pixel at coords.
func (img *Image) Offset(coords ...int) (int, error) {
	if len(coords) != img.sizes.Len() {
		return 0, errs.Raise(errs.ArrayParameterWrongLength)
	}
	strides, _ := img.layout()
	off := 0
	for d, c := range coords {
		if c < 0 || c >= img.sizes.At(d) {
			return 0, errs.Raise(errs.CoordinatesOutOfRange)
		}
		off += c * strides.At(d)
	}
	return off, nil
}

// samplePos returns the byte position in the block of tensor element t of
// the pixel at coords.
func (img *Image) samplePos(coords []int, t int) (int, error) {
	if err := img.requireForged(); err != nil {
		return 0, err
	}
	off, err := img.Offset(coords...)
	if err != nil {
		return 0, err
	}
	if t < 0 || t >= img.tensor.Elements() {
		return 0, errs.Raise(errs.IndexOutOfRange)
	}
	return img.origin + (off+t*img.tensorStride)*img.dataType.SizeOf(), nil
}

// Sample returns tensor element t of the pixel at coords as a float64.
// Complex samples yield their real part.
func (img *Image) Sample(coords []int, t int) (float64, error) {
	pos, err := img.samplePos(coords, t)
	if err != nil {
		return 0, err
	}
	return decodeSample(img.block.data[pos:], img.dataType), nil
}

// SetSample stores v in tensor element t of the pixel at coords. Integer
// types round and saturate; complex types get a zero imaginary part.
func (img *Image) SetSample(coords []int, t int, v float64) error {
	pos, err := img.samplePos(coords, t)
	if err != nil {
		return err
	}
	encodeSample(img.block.data[pos:], img.dataType, v)
	return nil
}

// forEachSample calls fn with the byte position of every sample, pixels in
// normal order (dimension 0 fastest) and tensor elements innermost.
func (img *Image) forEachSample(fn func(pos int)) {
	n := img.NumberOfPixels()
	if n == 0 {
		return
	}
	ndims := img.sizes.Len()
	elements := img.tensor.Elements()
	size := img.dataType.SizeOf()
	tstep := img.tensorStride * size

	coords := container.New(ndims, 0)
	pos := img.origin
	for p := 0; p < n; p++ {
		for t := 0; t < elements; t++ {
			fn(pos + t*tstep)
		}
		for d := 0; d < ndims; d++ {
			c := coords.At(d) + 1
			if c < img.sizes.At(d) {
				coords.Set(d, c)
				pos += img.strides.At(d) * size
				break
			}
			coords.Set(d, 0)
			pos -= (c - 1) * img.strides.At(d) * size
		}
	}
}

// Fill sets every sample to v.
func (img *Image) Fill(v float64) error {
	if err := img.requireForged(); err != nil {
		return err
	}
	size := img.dataType.SizeOf()
	pattern := make([]byte, size)
	encodeSample(pattern, img.dataType, v)

	data := img.block.data
	img.forEachSample(func(pos int) {
		copy(data[pos:pos+size], pattern)
	})
	return nil
}

// Samples returns a copy of all samples in normal order, independent of the
// image's strides. The result has NumberOfSamples()*DataType().SizeOf()
// bytes, little-endian.
func (img *Image) Samples() ([]byte, error) {
	if err := img.requireForged(); err != nil {
		return nil, err
	}
	size := img.dataType.SizeOf()
	out := make([]byte, 0, img.NumberOfSamples()*size)

	data := img.block.data
	img.forEachSample(func(pos int) {
		out = append(out, data[pos:pos+size]...)
	})
	return out, nil
}

// SetSamples overwrites all samples from raw, which must be laid out as
// returned by Samples.
func (img *Image) SetSamples(raw []byte) error {
	if err := img.requireForged(); err != nil {
		return err
	}
	size := img.dataType.SizeOf()
	if len(raw) != img.NumberOfSamples()*size {
		return errs.Raise(errs.ArraySizesDontMatch)
	}

	data := img.block.data
	i := 0
	img.forEachSample(func(pos int) {
		copy(data[pos:pos+size], raw[i:i+size])
		i += size
	})
	return nil
}
