package ndimage_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ndimage"
	"github.com/hupe1980/ndimage/datatype"
	"github.com/hupe1980/ndimage/testutil"
)

func TestOffset(t *testing.T) {
	img, err := ndimage.New([]int{4, 3}, 2, datatype.UInt8)
	require.NoError(t, err)

	off, err := img.Offset(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3*2+2*8, off)

	_, err = img.Offset(1)
	requireError(t, err, ndimage.ErrParameter, "Array parameter has the wrong number of elements")
	_, err = img.Offset(4, 0)
	requireError(t, err, ndimage.ErrParameter, "Coordinates out of range")
	_, err = img.Offset(-1, 0)
	requireError(t, err, ndimage.ErrParameter, "Coordinates out of range")

	_, err = img.Sample([]int{0, 0}, 2)
	requireError(t, err, ndimage.ErrParameter, "Index out of range")

	raw := ndimage.NewRaw()
	_, err = raw.Sample(nil, 0)
	requireError(t, err, ndimage.ErrParameter, ndimage.MsgImageNotForged)
}

func TestFillAndSamples(t *testing.T) {
	img, err := ndimage.New([]int{3, 2}, 2, datatype.UInt16)
	require.NoError(t, err)
	require.NoError(t, img.Fill(513))

	raw, err := img.Samples()
	require.NoError(t, err)
	require.Len(t, raw, 3*2*2*2)
	for i := 0; i < len(raw); i += 2 {
		assert.Equal(t, uint16(513), binary.LittleEndian.Uint16(raw[i:]))
	}

	// Samples of a view follow the view's normal order.
	mirrored, err := img.Mirror(0)
	require.NoError(t, err)
	for x := 0; x < 3; x++ {
		require.NoError(t, img.SetSample([]int{x, 0}, 0, float64(x)))
	}
	got, err := mirrored.Samples()
	require.NoError(t, err)
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(got[0:]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(got[4:]))
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(got[8:]))
}

func TestSetSamples(t *testing.T) {
	img, err := ndimage.New([]int{2, 2}, 1, datatype.SInt16)
	require.NoError(t, err)

	raw := make([]byte, 8)
	for i := range 4 {
		binary.LittleEndian.PutUint16(raw[2*i:], uint16(int16(-i)))
	}
	require.NoError(t, img.SetSamples(raw))

	v, err := img.Sample([]int{1, 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, -3.0, v)

	requireError(t, img.SetSamples(raw[:6]), ndimage.ErrParameter, "Array sizes don't match")
}

func TestSampleConversion(t *testing.T) {
	cases := []struct {
		dt   datatype.DataType
		in   float64
		want float64
	}{
		{datatype.Bin, 0.3, 1},
		{datatype.Bin, 0, 0},
		{datatype.UInt8, 300, 255},
		{datatype.UInt8, -5, 0},
		{datatype.UInt8, 2.5, 3},
		{datatype.SInt8, -200, -128},
		{datatype.SInt8, 127.4, 127},
		{datatype.UInt16, 70000, 65535},
		{datatype.SInt16, -1.6, -2},
		{datatype.UInt32, 1e12, math.MaxUint32},
		{datatype.SInt32, -1e12, math.MinInt32},
		{datatype.UInt64, -1, 0},
		{datatype.UInt64, 1e30, math.MaxUint64},
		{datatype.SInt64, 1e30, math.MaxInt64},
		{datatype.SInt64, math.NaN(), 0},
		{datatype.HFloat, 1.5, 1.5},
		{datatype.HFloat, -0.25, -0.25},
		{datatype.SFloat, 0.1, float64(float32(0.1))},
		{datatype.DFloat, 0.1, 0.1},
		{datatype.SComplex, -3.5, -3.5},
		{datatype.DComplex, 1e100, 1e100},
	}
	for _, tc := range cases {
		t.Run(tc.dt.Name(), func(t *testing.T) {
			img, err := ndimage.New([]int{1}, 1, tc.dt)
			require.NoError(t, err)
			require.NoError(t, img.SetSample([]int{0}, 0, tc.in))

			got, err := img.Sample([]int{0}, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got, "%v -> %s", tc.in, tc.dt)
		})
	}
}

func TestHFloatOverflow(t *testing.T) {
	img, err := ndimage.New([]int{1}, 1, datatype.HFloat)
	require.NoError(t, err)
	require.NoError(t, img.SetSample([]int{0}, 0, 70000))

	v, err := img.Sample([]int{0}, 0)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))
}

func TestComplexImaginaryPart(t *testing.T) {
	img, err := ndimage.New([]int{1}, 1, datatype.DComplex)
	require.NoError(t, err)
	require.NoError(t, img.Fill(2))

	b := img.Block().Bytes()
	assert.Equal(t, 2.0, math.Float64frombits(binary.LittleEndian.Uint64(b[0:])))
	assert.Equal(t, 0.0, math.Float64frombits(binary.LittleEndian.Uint64(b[8:])))
}

func TestDigest(t *testing.T) {
	rng := testutil.NewRNG(42)
	a := rng.UniformImage(t, []int{5, 4}, 2, datatype.SInt16)

	// Same content in a planar layout with gaps.
	b := testutil.StridedImage(t, []int{5, 4}, []int{1, 7}, 2, 40, datatype.SInt16)
	samples, err := a.Samples()
	require.NoError(t, err)
	require.NoError(t, b.SetSamples(samples))

	da, err := a.Digest()
	require.NoError(t, err)
	db, err := b.Digest()
	require.NoError(t, err)
	assert.Equal(t, da, db)
	assert.Len(t, da.String(), 64)

	require.NoError(t, b.SetSample([]int{4, 3}, 1, 12345))
	dc, err := b.Digest()
	require.NoError(t, err)
	assert.NotEqual(t, da, dc)

	_, err = ndimage.NewRaw().Digest()
	requireError(t, err, ndimage.ErrParameter, ndimage.MsgImageNotForged)
}

func TestDigestIncludesShape(t *testing.T) {
	a, err := ndimage.New([]int{6, 2}, 1, datatype.UInt8)
	require.NoError(t, err)
	b, err := ndimage.New([]int{3, 4}, 1, datatype.UInt8)
	require.NoError(t, err)

	da, err := a.Digest()
	require.NoError(t, err)
	db, err := b.Digest()
	require.NoError(t, err)
	assert.NotEqual(t, da, db)
}
