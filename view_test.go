package ndimage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ndimage"
	"github.com/hupe1980/ndimage/datatype"
	"github.com/hupe1980/ndimage/physical"
)

// ramp returns a forged SINT32 image whose pixel (x, y) holds x + 10*y in
// every tensor element e, offset by 100*e.
func ramp(t *testing.T, sizes []int, elements int) *ndimage.Image {
	t.Helper()

	img, err := ndimage.New(sizes, elements, datatype.SInt32)
	require.NoError(t, err)
	for y := 0; y < sizes[1]; y++ {
		for x := 0; x < sizes[0]; x++ {
			for e := 0; e < elements; e++ {
				require.NoError(t, img.SetSample([]int{x, y}, e, float64(x+10*y+100*e)))
			}
		}
	}
	return img
}

func sampleAt(t *testing.T, img *ndimage.Image, e int, coords ...int) int {
	t.Helper()

	v, err := img.Sample(coords, e)
	require.NoError(t, err)
	return int(v)
}

func TestQuickCopy(t *testing.T) {
	img := ramp(t, []int{4, 3}, 1)
	c := img.QuickCopy()

	assert.True(t, c.IsIdenticalView(img))
	assert.Equal(t, 2, c.ShareCount())

	require.NoError(t, c.SetSample([]int{1, 1}, 0, -5))
	assert.Equal(t, -5, sampleAt(t, img, 0, 1, 1))

	raw := ndimage.NewRaw()
	require.NoError(t, raw.SetSizes(7))
	rc := raw.QuickCopy()
	assert.False(t, rc.IsForged())
	assert.Equal(t, []int{7}, rc.Sizes())
}

func TestMirror(t *testing.T) {
	img := ramp(t, []int{4, 3}, 1)

	m, err := img.Mirror(0)
	require.NoError(t, err)
	assert.Equal(t, []int{-1, 4}, m.Strides())
	assert.Equal(t, 3, sampleAt(t, m, 0, 0, 0))
	assert.Equal(t, 22, sampleAt(t, m, 0, 1, 2))
	assert.True(t, m.Aliases(img))
	assert.False(t, m.IsIdenticalView(img))

	both, err := img.Mirror(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 23, sampleAt(t, both, 0, 0, 0))
	assert.Equal(t, 0, sampleAt(t, both, 0, 3, 2))

	// Mirroring twice restores the original view.
	back, err := m.Mirror(0)
	require.NoError(t, err)
	assert.True(t, back.IsIdenticalView(img))

	_, err = img.Mirror(0, 0)
	requireError(t, err, ndimage.ErrParameter, "Parameter has invalid value")
	_, err = img.Mirror(2)
	requireError(t, err, ndimage.ErrParameter, "Illegal dimension")
	_, err = ndimage.NewRaw().Mirror()
	requireError(t, err, ndimage.ErrParameter, ndimage.MsgImageNotForged)
}

func TestPermuteDimensions(t *testing.T) {
	img := ramp(t, []int{4, 3}, 1)
	img.SetPixelSize(physical.NewPixelSize(
		physical.Quantity{Magnitude: 1, Units: "µm"},
		physical.Quantity{Magnitude: 5, Units: "µm"},
	))

	p, err := img.PermuteDimensions(1, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, p.Sizes())
	assert.Equal(t, []int{4, 1}, p.Strides())
	assert.Equal(t, 12, sampleAt(t, p, 0, 1, 2))
	assert.Equal(t, physical.Quantity{Magnitude: 5, Units: "µm"}, p.PixelSize().Get(0))

	s, err := img.SwapDimensions(0, 1)
	require.NoError(t, err)
	assert.True(t, s.IsIdenticalView(p))

	_, err = img.PermuteDimensions(0)
	requireError(t, err, ndimage.ErrParameter, "Parameter has invalid value")
	_, err = img.PermuteDimensions(1, 1)
	requireError(t, err, ndimage.ErrParameter, "Parameter has invalid value")
}

func TestPermuteDropsSingleton(t *testing.T) {
	img, err := ndimage.New([]int{5, 1, 2}, 1, datatype.UInt8)
	require.NoError(t, err)

	p, err := img.PermuteDimensions(2, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, p.Sizes())
	assert.Equal(t, []int{5, 1}, p.Strides())
}

func TestSubview(t *testing.T) {
	img := ramp(t, []int{6, 5}, 1)

	sub, err := img.Subview([]int{1, 2}, []int{3, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, sub.Sizes())
	assert.Equal(t, 21, sampleAt(t, sub, 0, 0, 0))
	assert.Equal(t, 33, sampleAt(t, sub, 0, 2, 1))
	assert.False(t, sub.HasContiguousData())
	assert.True(t, sub.Aliases(img))

	_, err = sub.Sample([]int{3, 0}, 0)
	requireError(t, err, ndimage.ErrParameter, "Coordinates out of range")

	_, err = img.Subview([]int{4, 0}, []int{3, 1})
	requireError(t, err, ndimage.ErrParameter, "Coordinates out of range")
	_, err = img.Subview([]int{0}, []int{1})
	requireError(t, err, ndimage.ErrParameter, "Array parameter has the wrong number of elements")
}

func TestTensorElement(t *testing.T) {
	img := ramp(t, []int{2, 2}, 3)
	require.NoError(t, img.SetColorSpace("RGB"))

	g, err := img.TensorElement(1)
	require.NoError(t, err)
	assert.True(t, g.IsScalar())
	assert.False(t, g.IsColor())
	assert.Equal(t, []int{3, 6}, g.Strides())
	assert.Equal(t, 111, sampleAt(t, g, 0, 1, 1))

	stride, ok := g.SimpleStride()
	assert.True(t, ok)
	assert.Equal(t, 3, stride)

	_, err = img.TensorElement(3)
	requireError(t, err, ndimage.ErrParameter, "Index out of range")
}

func TestSqueeze(t *testing.T) {
	img, err := ndimage.New([]int{4, 1, 3}, 1, datatype.UInt8)
	require.NoError(t, err)
	img.SetPixelSize(physical.NewPixelSize(
		physical.Quantity{Magnitude: 1, Units: "m"},
		physical.Quantity{Magnitude: 2, Units: "m"},
		physical.Quantity{Magnitude: 3, Units: "m"},
	))

	s, err := img.Squeeze()
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3}, s.Sizes())
	assert.Equal(t, []int{1, 4}, s.Strides())
	assert.True(t, s.HasNormalStrides())
	assert.Equal(t, "1 m x 3 m", s.PixelSize().Format(2))
}

func TestAliases(t *testing.T) {
	img := ramp(t, []int{4, 4}, 2)

	row0, err := img.Subview([]int{0, 0}, []int{4, 1})
	require.NoError(t, err)
	row1, err := img.Subview([]int{0, 1}, []int{4, 1})
	require.NoError(t, err)
	assert.False(t, row0.Aliases(row1))

	e0, err := img.TensorElement(0)
	require.NoError(t, err)
	e1, err := img.TensorElement(1)
	require.NoError(t, err)
	// Interleaved channels share a byte range but no samples.
	assert.False(t, e0.Aliases(e1))
	assert.True(t, e0.Aliases(img))
	assert.True(t, e1.Aliases(row0))

	other := ramp(t, []int{4, 4}, 2)
	assert.False(t, other.Aliases(img))

	// A single pixel inside the byte range of a strided column it is not part of.
	grid, err := ndimage.New([]int{2, 10}, 1, datatype.UInt8)
	require.NoError(t, err)
	even, err := grid.Subview([]int{0, 0}, []int{1, 10})
	require.NoError(t, err)
	odd, err := grid.Subview([]int{1, 3}, []int{1, 1})
	require.NoError(t, err)
	assert.False(t, odd.Aliases(even))
	assert.False(t, even.Aliases(odd))

	same, err := grid.Subview([]int{0, 3}, []int{1, 1})
	require.NoError(t, err)
	assert.True(t, same.Aliases(even))
	assert.True(t, even.Aliases(same))
	assert.False(t, ndimage.NewRaw().Aliases(img))
}
