package ndimage

import (
	"github.com/hupe1980/ndimage/container"
	"github.com/hupe1980/ndimage/internal/errs"
	"github.com/hupe1980/ndimage/physical"
	"github.com/hupe1980/ndimage/tensor"
)

// QuickCopy returns a new image with the same properties sharing img's data
// block. A raw image yields a raw copy.
func (img *Image) QuickCopy() *Image {
	if !img.IsForged() {
		return img.derive()
	}
	return img.view("copy")
}

// view returns a forged image sharing img's block and origin.
func (img *Image) view(kind string) *Image {
	v := img.derive()
	v.block = img.block
	v.block.retain()
	v.origin = img.origin

	img.opts.metricsCollector.RecordView(kind)
	img.opts.logger.LogView(kind, v.block.ShareCount())
	return v
}

func (img *Image) checkDimension(d int) error {
	if d < 0 || d >= img.sizes.Len() {
		return errs.Raise(errs.IllegalDimension)
	}
	return nil
}

// Mirror returns a view with the listed dimensions reversed.
func (img *Image) Mirror(dims ...int) (*Image, error) {
	if err := img.requireForged(); err != nil {
		return nil, err
	}
	seen := container.New(img.sizes.Len(), false)
	for _, d := range dims {
		if err := img.checkDimension(d); err != nil {
			return nil, err
		}
		if seen.At(d) {
			return nil, errs.Raise(errs.InvalidParameter)
		}
		seen.Set(d, true)
	}

	v := img.view("mirror")
	size := v.dataType.SizeOf()
	for _, d := range dims {
		s := v.strides.At(d)
		v.origin += (v.sizes.At(d) - 1) * s * size
		v.strides.Set(d, -s)
	}
	return v, nil
}

// PermuteDimensions returns a view whose dimension i is img's dimension
// order[i]. Each dimension may appear at most once; dimensions left out
// must have size 1 and are dropped.
func (img *Image) PermuteDimensions(order ...int) (*Image, error) {
	if err := img.requireForged(); err != nil {
		return nil, err
	}
	if err := img.checkPermutation(order); err != nil {
		return nil, err
	}
	return img.permuted("permute", order), nil
}

func (img *Image) checkPermutation(order []int) error {
	used := container.New(img.sizes.Len(), false)
	for _, d := range order {
		if err := img.checkDimension(d); err != nil {
			return err
		}
		if used.At(d) {
			return errs.Raise(errs.InvalidParameter)
		}
		used.Set(d, true)
	}
	for d, u := range used.Slice() {
		if !u && img.sizes.At(d) != 1 {
			return errs.Raise(errs.InvalidParameter)
		}
	}
	return nil
}

func (img *Image) permuted(kind string, order []int) *Image {
	v := img.view(kind)
	sizes := container.New(len(order), 0)
	strides := container.New(len(order), 0)
	for i, d := range order {
		sizes.Set(i, img.sizes.At(d))
		strides.Set(i, img.strides.At(d))
	}
	v.sizes.MoveFrom(&sizes)
	v.strides.MoveFrom(&strides)
	v.pixelSize = img.pixelSize.Permute(order)
	return v
}

// SwapDimensions returns a view with dimensions a and b exchanged.
func (img *Image) SwapDimensions(a, b int) (*Image, error) {
	if err := img.requireForged(); err != nil {
		return nil, err
	}
	if err := img.checkDimension(a); err != nil {
		return nil, err
	}
	if err := img.checkDimension(b); err != nil {
		return nil, err
	}
	order := make([]int, img.sizes.Len())
	for i := range order {
		order[i] = i
	}
	order[a], order[b] = b, a
	return img.permuted("swap", order), nil
}

// Subview returns a view of the box starting at origin with the given
// sizes. Both must have one entry per dimension and the box must lie inside
// the image.
func (img *Image) Subview(origin, sizes []int) (*Image, error) {
	if err := img.requireForged(); err != nil {
		return nil, err
	}
	ndims := img.sizes.Len()
	if len(origin) != ndims || len(sizes) != ndims {
		return nil, errs.Raise(errs.ArrayParameterWrongLength)
	}
	for d := 0; d < ndims; d++ {
		if origin[d] < 0 || sizes[d] < 1 || origin[d]+sizes[d] > img.sizes.At(d) {
			return nil, errs.Raise(errs.CoordinatesOutOfRange)
		}
	}
	off, err := img.Offset(origin...)
	if err != nil {
		return nil, err
	}

	v := img.view("subview")
	v.origin += off * v.dataType.SizeOf()
	v.sizes = container.FromSlice(sizes)
	return v, nil
}

// TensorElement returns a scalar view of tensor element i. The color space
// is dropped.
func (img *Image) TensorElement(i int) (*Image, error) {
	if err := img.requireForged(); err != nil {
		return nil, err
	}
	if i < 0 || i >= img.tensor.Elements() {
		return nil, errs.Raise(errs.IndexOutOfRange)
	}

	v := img.view("tensor-element")
	v.origin += i * img.tensorStride * v.dataType.SizeOf()
	v.tensor = tensor.Scalar()
	v.tensorStride = 1
	v.colorSpace = ""
	return v, nil
}

// Squeeze returns a view without the size-1 dimensions.
func (img *Image) Squeeze() (*Image, error) {
	if err := img.requireForged(); err != nil {
		return nil, err
	}

	v := img.view("squeeze")
	var keep []int
	for d, n := range img.sizes.Slice() {
		if n != 1 {
			keep = append(keep, d)
		}
	}
	v.sizes.Clear()
	v.strides.Clear()
	for _, d := range keep {
		v.sizes.PushBack(img.sizes.At(d))
		v.strides.PushBack(img.strides.At(d))
	}
	if img.pixelSize.IsDefined() {
		q := make([]physical.Quantity, len(keep))
		for i, d := range keep {
			q[i] = img.pixelSize.Get(d)
		}
		v.pixelSize = physical.NewPixelSize(q...)
	}
	return v, nil
}
