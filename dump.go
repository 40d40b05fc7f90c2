package ndimage

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders a multi-line description of the image: tensor shape,
// dimensionality, data type, color space, sizes, pixel size, strides,
// tensor stride and, for forged images, the data and origin addresses,
// share count and stride classification.
//
// The format is stable and meant for diagnostics and test comparisons.
func (img *Image) String() string {
	var b strings.Builder

	if img.tensor.Elements() == 1 {
		b.WriteString("Scalar image, ")
	} else {
		fmt.Fprintf(&b, "%dx%d-tensor image, ", img.tensor.Rows(), img.tensor.Columns())
	}
	fmt.Fprintf(&b, "%d-D, %s", img.sizes.Len(), img.dataType.Name())
	if img.IsColor() {
		b.WriteString(", color image: " + img.colorSpace)
	}
	b.WriteByte('\n')

	b.WriteString("   sizes: " + joinInts(img.sizes.Slice()) + "\n")

	if img.HasPixelSize() {
		b.WriteString("   pixel size: " + img.pixelSize.Format(img.sizes.Len()) + "\n")
	}

	b.WriteString("   strides: " + joinInts(img.strides.Slice()) + "\n")
	fmt.Fprintf(&b, "   tensor stride: %d\n", img.tensorStride)

	if !img.IsForged() {
		b.WriteString("   not forged\n")
		return b.String()
	}

	fmt.Fprintf(&b, "   data pointer:   %#x (shared among %d images)\n", img.Data(), img.ShareCount())
	fmt.Fprintf(&b, "   origin pointer: %#x\n", img.Origin())

	if img.HasContiguousData() {
		if img.HasNormalStrides() {
			b.WriteString("   strides are normal\n")
		} else {
			b.WriteString("   data are contiguous but strides are not normal\n")
		}
	}

	if stride, _, ok := img.SimpleStrideAndOrigin(); ok {
		fmt.Fprintf(&b, "   simple stride: %d\n", stride)
	} else {
		b.WriteString("   strides are not simple\n")
	}

	return b.String()
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}
