package testutil

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ndimage"
	"github.com/hupe1980/ndimage/datatype"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Sizes returns ndims random sizes in [1, maxSize].
func (r *RNG) Sizes(ndims, maxSize int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	sizes := make([]int, ndims)
	for i := range sizes {
		sizes[i] = 1 + r.rand.Intn(maxSize)
	}
	return sizes
}

// sampleRange returns the value range used for random samples of dt.
func sampleRange(dt datatype.DataType) (lo, hi float64) {
	switch dt {
	case datatype.Bin:
		return 0, 2
	case datatype.UInt8:
		return 0, 256
	case datatype.SInt8:
		return -128, 128
	case datatype.UInt16:
		return 0, 65536
	case datatype.SInt16:
		return -32768, 32768
	case datatype.HFloat:
		return -1000, 1000
	default:
		return -1e6, 1e6
	}
}

// FillUniform sets every sample of a forged image to a uniform value from
// the data type's range. Integer types receive whole numbers.
func (r *RNG) FillUniform(tb testing.TB, img *ndimage.Image) {
	tb.Helper()

	lo, hi := sampleRange(img.DataType())
	r.fill(tb, img, func() float64 {
		v := lo + r.rand.Float64()*(hi-lo)
		if img.DataType().IsInteger() || img.DataType().IsBinary() {
			return float64(int64(v))
		}
		return v
	})
}

// FillGaussian sets every sample of a forged image to a normal value with
// the given mean and standard deviation.
func (r *RNG) FillGaussian(tb testing.TB, img *ndimage.Image, mean, stddev float64) {
	tb.Helper()

	r.fill(tb, img, func() float64 {
		return mean + r.rand.NormFloat64()*stddev
	})
}

func (r *RNG) fill(tb testing.TB, img *ndimage.Image, next func() float64) {
	tb.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	coords := make([]int, img.Dimensionality())
	for range img.NumberOfPixels() {
		for t := range img.TensorElements() {
			require.NoError(tb, img.SetSample(coords, t, next()))
		}
		for d := range coords {
			coords[d]++
			if coords[d] < img.Size(d) {
				break
			}
			coords[d] = 0
		}
	}
}

// UniformImage forges an image and fills it with FillUniform.
func (r *RNG) UniformImage(tb testing.TB, sizes []int, tensorElements int, dt datatype.DataType, opts ...ndimage.Option) *ndimage.Image {
	tb.Helper()

	img, err := ndimage.New(sizes, tensorElements, dt, opts...)
	require.NoError(tb, err)
	r.FillUniform(tb, img)
	return img
}

// StridedImage forges an image with explicit strides and tensor stride.
// The layout must be valid for the sizes; the test fails if Forge falls
// back to normal strides.
func StridedImage(tb testing.TB, sizes, strides []int, tensorElements, tensorStride int, dt datatype.DataType, opts ...ndimage.Option) *ndimage.Image {
	tb.Helper()

	img := ndimage.NewRaw(opts...)
	require.NoError(tb, img.SetDataType(dt))
	require.NoError(tb, img.SetSizes(sizes...))
	require.NoError(tb, img.SetTensorSizes(tensorElements))
	require.NoError(tb, img.SetStrides(strides...))
	require.NoError(tb, img.SetTensorStride(tensorStride))
	require.NoError(tb, img.Forge())
	require.Equal(tb, strides, img.Strides(), "forge replaced the requested strides")
	return img
}
