package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ndimage/datatype"
)

func TestSizes(t *testing.T) {
	rng := NewRNG(4711)

	sizes := rng.Sizes(5, 7)

	assert.Len(t, sizes, 5)
	for _, s := range sizes {
		assert.GreaterOrEqual(t, s, 1)
		assert.LessOrEqual(t, s, 7)
	}
}

func TestUniformImage(t *testing.T) {
	rng := NewRNG(4711)

	img := rng.UniformImage(t, []int{6, 5}, 2, datatype.UInt8)

	assert.True(t, img.IsForged())
	for y := range 5 {
		for x := range 6 {
			for e := range 2 {
				v, err := img.Sample([]int{x, y}, e)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 255.0)
				assert.Equal(t, float64(int64(v)), v)
			}
		}
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := rng.UniformImage(t, []int{4, 4}, 1, datatype.SFloat)

	rng.Reset()
	b := rng.UniformImage(t, []int{4, 4}, 1, datatype.SFloat)

	da, err := a.Digest()
	require.NoError(t, err)
	db, err := b.Digest()
	require.NoError(t, err)
	assert.Equal(t, da, db)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestStridedImage(t *testing.T) {
	img := StridedImage(t, []int{4, 3}, []int{3, 12}, 1, 1, datatype.SInt16)

	assert.Equal(t, []int{3, 12}, img.Strides())
	assert.False(t, img.HasNormalStrides())
}
