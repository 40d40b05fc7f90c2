package ndimage

import (
	"context"
	"time"

	"github.com/hupe1980/ndimage/container"
	"github.com/hupe1980/ndimage/datatype"
	"github.com/hupe1980/ndimage/internal/conv"
	"github.com/hupe1980/ndimage/internal/errs"
	"github.com/hupe1980/ndimage/physical"
	"github.com/hupe1980/ndimage/tensor"
)

// Image is an N-dimensional array of pixels, each holding one or more
// samples of a single data type.
//
// Images must not be copied by value; use QuickCopy to obtain a second
// image sharing the same data.
type Image struct {
	dataType     datatype.DataType
	sizes        container.IntegerArray
	strides      container.IntegerArray
	tensor       tensor.Tensor
	tensorStride int
	colorSpace   string
	pixelSize    physical.PixelSize

	block  *DataBlock
	origin int // byte offset of the first sample of pixel (0, ..., 0)

	opts *options
}

// NewRaw returns a raw 0-D scalar SFLOAT image.
func NewRaw(opts ...Option) *Image {
	return &Image{
		dataType:     datatype.SFloat,
		tensor:       tensor.Scalar(),
		tensorStride: 1,
		opts:         applyOptions(opts),
	}
}

// New returns a forged image with the given sizes, number of tensor elements
// (as a column vector) and data type. Samples are zero.
func New(sizes []int, tensorElements int, dt datatype.DataType, opts ...Option) (*Image, error) {
	img := NewRaw(opts...)
	if err := img.SetDataType(dt); err != nil {
		return nil, err
	}
	if err := img.SetSizes(sizes...); err != nil {
		return nil, err
	}
	if err := img.SetTensorSizes(tensorElements); err != nil {
		return nil, err
	}
	if err := img.Forge(); err != nil {
		return nil, err
	}
	return img, nil
}

// derive returns a raw image carrying img's properties and options.
func (img *Image) derive() *Image {
	return &Image{
		dataType:     img.dataType,
		sizes:        img.sizes.Clone(),
		strides:      img.strides.Clone(),
		tensor:       img.tensor,
		tensorStride: img.tensorStride,
		colorSpace:   img.colorSpace,
		pixelSize:    img.pixelSize.Clone(),
		opts:         img.opts,
	}
}

func (img *Image) requireRaw() error {
	if img.IsForged() {
		return errs.Raise(errs.ImageNotRaw)
	}
	return nil
}

func (img *Image) requireForged() error {
	if !img.IsForged() {
		return errs.Raise(errs.ImageNotForged)
	}
	return nil
}

// SetDataType sets the sample data type. The image must be raw.
func (img *Image) SetDataType(dt datatype.DataType) error {
	if err := img.requireRaw(); err != nil {
		return err
	}
	if !dt.Valid() {
		return errs.Raise(errs.DataTypeNotSupported)
	}
	img.dataType = dt
	return nil
}

// SetSizes sets the image sizes, one per dimension. The image must be raw.
// Strides set earlier are kept; Forge replaces them with normal strides if
// they no longer fit the sizes.
func (img *Image) SetSizes(sizes ...int) error {
	if err := img.requireRaw(); err != nil {
		return err
	}
	for _, s := range sizes {
		if s < 0 {
			return errs.Raise(errs.IllegalDimension)
		}
	}
	img.sizes = container.FromSlice(sizes)
	return nil
}

// SetStrides sets the per-dimension strides, in samples. The image must be
// raw. The strides must match the dimensionality when the image is forged,
// or they are replaced by normal strides.
func (img *Image) SetStrides(strides ...int) error {
	if err := img.requireRaw(); err != nil {
		return err
	}
	img.strides = container.FromSlice(strides)
	return nil
}

// SetTensorStride sets the step between samples of one pixel. The image must
// be raw.
func (img *Image) SetTensorStride(stride int) error {
	if err := img.requireRaw(); err != nil {
		return err
	}
	img.tensorStride = stride
	return nil
}

// SetTensor sets the tensor descriptor. The image must be raw, and the
// element count must match the channel count of a set color space.
func (img *Image) SetTensor(t tensor.Tensor) error {
	if err := img.requireRaw(); err != nil {
		return err
	}
	if !t.IsValid() {
		return errs.Raise(errs.InvalidParameter)
	}
	if img.colorSpace != "" {
		if n, _ := ColorSpaceChannels(img.colorSpace); n != t.Elements() {
			return errs.Raise(errs.InconsistentColorSpace)
		}
	}
	img.tensor = t
	return nil
}

// SetTensorSizes sets an n-element column-vector tensor. The image must be raw.
func (img *Image) SetTensorSizes(n int) error {
	t, err := tensor.Vector(n)
	if err != nil {
		return err
	}
	return img.SetTensor(t)
}

// SetColorSpace tags the image with a color space. The name must be known
// and its channel count must equal the number of tensor elements. An empty
// name removes the tag. Allowed in either state.
func (img *Image) SetColorSpace(name string) error {
	if name == "" {
		img.colorSpace = ""
		return nil
	}
	n, ok := ColorSpaceChannels(name)
	if !ok {
		return errs.Raise(errs.UnknownColorSpace)
	}
	if n != img.tensor.Elements() {
		return errs.Raise(errs.InconsistentColorSpace)
	}
	img.colorSpace = name
	return nil
}

// SetPixelSize sets the physical pixel size. Allowed in either state.
func (img *Image) SetPixelSize(ps physical.PixelSize) {
	img.pixelSize = ps.Clone()
}

// ResetPixelSize removes the physical calibration.
func (img *Image) ResetPixelSize() {
	img.pixelSize.Clear()
}

// DataType returns the sample data type.
func (img *Image) DataType() datatype.DataType { return img.dataType }

// Dimensionality returns the number of dimensions.
func (img *Image) Dimensionality() int { return img.sizes.Len() }

// Sizes returns a copy of the image sizes.
func (img *Image) Sizes() []int { return img.sizes.Values() }

// Size returns the size along dimension d.
func (img *Image) Size(d int) int { return img.sizes.At(d) }

// Strides returns a copy of the strides.
func (img *Image) Strides() []int { return img.strides.Values() }

// Stride returns the stride along dimension d.
func (img *Image) Stride(d int) int { return img.strides.At(d) }

// NumberOfPixels returns the product of the sizes (1 for a 0-D image).
func (img *Image) NumberOfPixels() int { return container.Product(&img.sizes) }

// NumberOfSamples returns the number of pixels times the tensor elements.
func (img *Image) NumberOfSamples() int { return img.NumberOfPixels() * img.tensor.Elements() }

// Tensor returns the tensor descriptor.
func (img *Image) Tensor() tensor.Tensor { return img.tensor }

// TensorElements returns the number of samples per pixel.
func (img *Image) TensorElements() int { return img.tensor.Elements() }

// TensorRows returns the number of tensor rows.
func (img *Image) TensorRows() int { return img.tensor.Rows() }

// TensorColumns returns the number of tensor columns.
func (img *Image) TensorColumns() int { return img.tensor.Columns() }

// TensorStride returns the step between samples of one pixel.
func (img *Image) TensorStride() int { return img.tensorStride }

// IsScalar reports whether each pixel holds a single sample.
func (img *Image) IsScalar() bool { return img.tensor.IsScalar() }

// ColorSpace returns the color-space tag, "" if none.
func (img *Image) ColorSpace() string { return img.colorSpace }

// IsColor reports whether a color space is set.
func (img *Image) IsColor() bool { return img.colorSpace != "" }

// PixelSize returns a copy of the physical pixel size.
func (img *Image) PixelSize() physical.PixelSize { return img.pixelSize.Clone() }

// HasPixelSize reports whether the image is physically calibrated.
func (img *Image) HasPixelSize() bool { return img.pixelSize.IsDefined() }

// IsForged reports whether a data block is bound.
func (img *Image) IsForged() bool { return img.block != nil }

// Block returns the bound data block, nil if raw.
func (img *Image) Block() *DataBlock { return img.block }

// ShareCount returns the number of images bound to the data block, 0 if raw.
func (img *Image) ShareCount() int {
	if img.block == nil {
		return 0
	}
	return img.block.ShareCount()
}

// Data returns the address of the data block, 0 if raw.
func (img *Image) Data() uintptr {
	if img.block == nil {
		return 0
	}
	return img.block.Address()
}

// Origin returns the address of the first sample of pixel (0, ..., 0),
// 0 if raw.
func (img *Image) Origin() uintptr {
	if img.block == nil {
		return 0
	}
	return img.block.Address() + uintptr(img.origin)
}

// OriginOffset returns the byte offset of the origin within the data block.
func (img *Image) OriginOffset() int { return img.origin }

// Forge allocates a data block for the image. All sizes must be positive.
// Strides that do not describe a valid, non-overlapping layout for the
// current sizes are replaced by normal strides. Forging a forged image does
// nothing.
func (img *Image) Forge() error {
	return img.forgeWith(img.opts.controller.TryAcquireMemory)
}

// ForgeContext is like Forge, but when a memory limit is configured it waits
// for other images to release enough memory instead of failing at once. It
// fails when ctx is done first, or when the block alone exceeds the limit.
func (img *Image) ForgeContext(ctx context.Context) error {
	rc := img.opts.controller
	return img.forgeWith(func(bytes int64) error {
		return rc.AcquireMemory(ctx, bytes)
	})
}

func (img *Image) forgeWith(reserve func(bytes int64) error) error {
	if img.IsForged() {
		return nil
	}

	start := time.Now()
	bytes, err := img.forge(reserve)
	img.opts.metricsCollector.RecordForge(bytes, time.Since(start), err)
	img.opts.logger.LogForge(img.sizes.Values(), img.dataType, bytes, err)
	return err
}

func (img *Image) forge(reserve func(bytes int64) error) (int, error) {
	for _, s := range img.sizes.Slice() {
		if s <= 0 {
			return 0, errs.Raise(errs.NoPixels)
		}
	}
	if !img.tensor.IsValid() {
		img.tensor = tensor.Scalar()
	}

	// Overflow checks on the sample count also bound every stride product
	// computed for normal strides.
	samples, err := conv.ProductInt(img.sizes.Slice())
	if err == nil {
		samples, err = conv.MulInt(samples, img.tensor.Elements())
	}
	if err == nil {
		_, err = conv.MulInt(samples, img.dataType.SizeOf())
	}
	if err != nil {
		return 0, errs.AddStackTrace(translateError(err))
	}

	if !img.HasValidStrides() {
		img.setNormalStrides()
	}

	span, start := img.DataBlockSizeAndStart()
	sampleSize := img.dataType.SizeOf()
	bytes, err := conv.MulInt(span, sampleSize)
	if err != nil {
		return 0, errs.AddStackTrace(translateError(err))
	}

	rc := img.opts.controller
	if err := reserve(int64(bytes)); err != nil {
		return bytes, errs.AddStackTrace(translateError(err))
	}

	data, free, err := img.opts.allocator.Allocate(bytes)
	if err != nil {
		rc.ReleaseMemory(int64(bytes))
		return bytes, errs.AddStackTrace(translateError(err))
	}

	opts := img.opts
	img.block = newDataBlock(data, free, func(size int, err error) {
		rc.ReleaseMemory(int64(size))
		opts.metricsCollector.RecordRelease(size)
		opts.logger.LogRelease(size, err)
	})
	img.origin = -start * sampleSize
	return bytes, nil
}

// setNormalStrides sets tensor stride 1 and strides that place dimension 0
// fastest after the tensor elements.
func (img *Image) setNormalStrides() {
	img.tensorStride = 1
	img.strides = normalStrides(&img.sizes, img.tensor.Elements())
}

func normalStrides(sizes *container.IntegerArray, elements int) container.IntegerArray {
	strides := container.New(sizes.Len(), 0)
	s := elements
	for d := 0; d < sizes.Len(); d++ {
		strides.Set(d, s)
		s *= sizes.At(d)
	}
	return strides
}

// Strip unbinds the data block, releasing it if this image was its last
// user. Properties are kept. Stripping a raw image does nothing.
func (img *Image) Strip() error {
	if !img.IsForged() {
		return nil
	}
	block := img.block
	img.block = nil
	img.origin = 0
	return block.drop()
}

// Reset strips the image and restores every property to its NewRaw value.
func (img *Image) Reset() error {
	err := img.Strip()
	img.dataType = datatype.SFloat
	img.sizes.Clear()
	img.strides.Clear()
	img.tensor = tensor.Scalar()
	img.tensorStride = 1
	img.colorSpace = ""
	img.pixelSize.Clear()
	return err
}
