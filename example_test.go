package ndimage_test

import (
	"errors"
	"fmt"

	"github.com/hupe1980/ndimage"
	"github.com/hupe1980/ndimage/datatype"
)

func Example() {
	img := ndimage.NewRaw()
	_ = img.SetDataType(datatype.UInt8)
	_ = img.SetSizes(256, 128)
	_ = img.SetTensorSizes(3)
	_ = img.SetColorSpace("RGB")
	if err := img.Forge(); err != nil {
		fmt.Println(err)
		return
	}
	defer func() { _ = img.Strip() }()

	green, _ := img.TensorElement(1)
	fmt.Println(green.Sizes(), green.Strides(), green.ShareCount())

	stride, _ := green.SimpleStride()
	fmt.Println("simple stride:", stride)
	// Output:
	// [256 128] [3 768] 2
	// simple stride: 3
}

func ExampleImage_CheckProperties() {
	img, _ := ndimage.New([]int{64, 64, 10}, 1, datatype.SFloat)

	ok, _ := img.CheckProperties(3, datatype.ClassFloat, ndimage.Quiet)
	fmt.Println(ok)

	_, err := img.CheckProperties(2, datatype.ClassFloat, ndimage.Strict)
	var e *ndimage.Error
	if errors.As(err, &e) {
		fmt.Println(e.Message())
	}
	// Output:
	// true
	// Dimensionality not supported
}

func ExampleImage_Mirror() {
	img, _ := ndimage.New([]int{4}, 1, datatype.SInt16)
	for x := range 4 {
		_ = img.SetSample([]int{x}, 0, float64(x))
	}

	m, _ := img.Mirror(0)
	values := make([]float64, 4)
	for x := range values {
		values[x], _ = m.Sample([]int{x}, 0)
	}
	fmt.Println(values)
	fmt.Println(m.Aliases(img))
	// Output:
	// [3 2 1 0]
	// true
}
