package snapshot

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ndimage"
	"github.com/hupe1980/ndimage/codec"
	"github.com/hupe1980/ndimage/datatype"
	"github.com/hupe1980/ndimage/internal/hash"
	"github.com/hupe1980/ndimage/physical"
	"github.com/hupe1980/ndimage/resource"
	"github.com/hupe1980/ndimage/tensor"
	"github.com/hupe1980/ndimage/testutil"
)

func withCodec(c codec.Codec) func(*Options) {
	return func(o *Options) { o.Codec = c }
}

func withCompression(c Compression) func(*Options) {
	return func(o *Options) { o.Compression = c }
}

func requireSameImage(t *testing.T, want, got *ndimage.Image) {
	t.Helper()

	assert.Equal(t, want.DataType(), got.DataType())
	assert.Equal(t, want.Sizes(), got.Sizes())
	assert.True(t, want.Tensor().Equal(got.Tensor()))
	assert.Equal(t, want.ColorSpace(), got.ColorSpace())
	wantPS, gotPS := want.PixelSize(), got.PixelSize()
	assert.True(t, wantPS.Equal(&gotPS))

	ws, err := want.Samples()
	require.NoError(t, err)
	gs, err := got.Samples()
	require.NoError(t, err)
	assert.Equal(t, ws, gs)
}

func TestRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(4711)

	cases := []struct {
		name  string
		sizes []int
		elems int
		dt    datatype.DataType
	}{
		{"2d-uint8", []int{17, 9}, 1, datatype.UInt8},
		{"3d-sfloat-vector", []int{5, 4, 3}, 2, datatype.SFloat},
		{"1d-dcomplex", []int{33}, 1, datatype.DComplex},
		{"5d-sint16", []int{2, 3, 2, 2, 3}, 1, datatype.SInt16},
		{"bin", []int{64, 8}, 1, datatype.Bin},
	}

	for _, tc := range cases {
		for _, c := range []codec.Codec{codec.CBOR{}, codec.JSON{}} {
			for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
				t.Run(tc.name+"/"+c.Name()+"/"+comp.String(), func(t *testing.T) {
					img := rng.UniformImage(t, tc.sizes, tc.elems, tc.dt)

					data, err := Encode(img, withCodec(c), withCompression(comp))
					require.NoError(t, err)

					got, err := Decode(data)
					require.NoError(t, err)
					requireSameImage(t, img, got)
					assert.True(t, got.HasNormalStrides())
				})
			}
		}
	}
}

func TestRoundTripMetadata(t *testing.T) {
	img, err := ndimage.New([]int{4, 3}, 3, datatype.UInt8)
	require.NoError(t, err)
	require.NoError(t, img.SetColorSpace("RGB"))
	img.SetPixelSize(physical.NewPixelSize(
		physical.Quantity{Magnitude: 0.5, Units: "µm"},
		physical.Quantity{Magnitude: 2, Units: "µm"},
	))
	require.NoError(t, img.Fill(42))

	data, err := Encode(img)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	requireSameImage(t, img, got)
	assert.Equal(t, "RGB", got.ColorSpace())
	assert.Equal(t, physical.Quantity{Magnitude: 2, Units: "µm"}, got.PixelSize().Get(1))
}

func TestRoundTripTensorShape(t *testing.T) {
	sym, err := tensor.New(tensor.SymmetricMatrix, 3, 3)
	require.NoError(t, err)

	img := ndimage.NewRaw()
	require.NoError(t, img.SetSizes(6, 2))
	require.NoError(t, img.SetTensor(sym))
	require.NoError(t, img.Forge())
	require.NoError(t, img.Fill(1.5))

	data, err := Encode(img)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, tensor.SymmetricMatrix, got.Tensor().Shape())
	assert.Equal(t, 6, got.TensorElements())
	requireSameImage(t, img, got)
}

func TestEncodeView(t *testing.T) {
	rng := testutil.NewRNG(1)
	img := rng.UniformImage(t, []int{8, 6}, 1, datatype.SInt32)

	mirrored, err := img.Mirror(0)
	require.NoError(t, err)
	sub, err := mirrored.Subview([]int{1, 2}, []int{5, 3})
	require.NoError(t, err)

	data, err := Encode(sub)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)

	requireSameImage(t, sub, got)
	assert.Equal(t, 1, got.ShareCount())
	assert.False(t, got.Aliases(sub))
}

func TestEncodeRaw(t *testing.T) {
	_, err := Encode(ndimage.NewRaw())
	require.Error(t, err)
	assert.ErrorIs(t, err, ndimage.ErrParameter)
}

func TestReadHeader(t *testing.T) {
	img, err := ndimage.New([]int{3, 2}, 1, datatype.DFloat)
	require.NoError(t, err)

	data, err := Encode(img, withCodec(codec.JSON{}))
	require.NoError(t, err)

	hdr, err := ReadHeader(data)
	require.NoError(t, err)
	assert.Equal(t, "DFLOAT", hdr.DataType)
	assert.Equal(t, []int{3, 2}, hdr.Sizes)
	assert.Len(t, hdr.Digest, 32)
}

func TestDecodeCorrupt(t *testing.T) {
	rng := testutil.NewRNG(7)
	img := rng.UniformImage(t, []int{16, 16}, 1, datatype.UInt16)

	data, err := Encode(img, withCompression(CompressionNone))
	require.NoError(t, err)

	t.Run("flipped payload byte", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[len(bad)-10] ^= 0xff

		_, err := Decode(bad)
		require.Error(t, err)
		assert.ErrorIs(t, err, ndimage.ErrParameter)

		var e *ndimage.Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "Snapshot data is corrupt", e.Message())
	})

	t.Run("truncated", func(t *testing.T) {
		for _, n := range []int{0, 3, 8, len(data) / 2, len(data) - 1} {
			_, err := Decode(data[:n])
			assert.ErrorIs(t, err, ndimage.ErrParameter, "length %d", n)
		}
	})
}

func TestDecodeUnsupported(t *testing.T) {
	img, err := ndimage.New([]int{2}, 1, datatype.UInt8)
	require.NoError(t, err)
	data, err := Encode(img)
	require.NoError(t, err)

	resign := func(b []byte) []byte {
		return hash.AppendCRC32C(b[:len(b)-4])
	}

	t.Run("magic", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[0] = 'X'
		_, err := Decode(resign(bad))
		requireMessage(t, err, "Snapshot format is not supported")
	})

	t.Run("version", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[4] = 99
		_, err := Decode(resign(bad))
		requireMessage(t, err, "Snapshot format is not supported")
	})

	t.Run("codec", func(t *testing.T) {
		bad := bytes.Clone(data)
		// "cbor" -> "xbor"
		bad[7] = 'x'
		_, err := Decode(resign(bad))
		requireMessage(t, err, "Snapshot format is not supported")
	})
}

func requireMessage(t *testing.T, err error, msg string) {
	t.Helper()

	require.Error(t, err)
	var e *ndimage.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, msg, e.Message())
	assert.ErrorIs(t, err, ndimage.ErrParameter)
}

func TestDecodeDigestMismatch(t *testing.T) {
	img, err := ndimage.New([]int{4, 4}, 1, datatype.UInt8)
	require.NoError(t, err)
	require.NoError(t, img.Fill(3))

	hdr, payload, err := parse(mustEncode(t, img, withCompression(CompressionNone)))
	require.NoError(t, err)

	// A consistent snapshot whose digest describes other content.
	hdr.Digest[0] ^= 1
	data, err := assemble(codec.CBOR{}, &hdr, payload)
	require.NoError(t, err)

	_, err = Decode(data)
	requireMessage(t, err, "Snapshot data is corrupt")
}

func TestDecodeMemoryLimit(t *testing.T) {
	img, err := ndimage.New([]int{64, 64}, 1, datatype.DFloat)
	require.NoError(t, err)
	data := mustEncode(t, img)

	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1024})
	_, err = Decode(data, func(o *Options) {
		o.ImageOptions = []ndimage.Option{ndimage.WithResourceController(rc)}
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ndimage.ErrRuntime)
	assert.ErrorIs(t, err, ndimage.ErrMemoryLimitExceeded)
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestWriteRead(t *testing.T) {
	rng := testutil.NewRNG(99)
	img := rng.UniformImage(t, []int{32, 32}, 1, datatype.SFloat)

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	opt := func(o *Options) { o.Controller = rc }

	var buf bytes.Buffer
	require.NoError(t, Write(context.Background(), &buf, img, opt))

	got, err := Read(context.Background(), &buf, opt)
	require.NoError(t, err)
	requireSameImage(t, img, got)
}

func TestReadWaitsForMemory(t *testing.T) {
	img, err := ndimage.New([]int{16}, 1, datatype.SFloat)
	require.NoError(t, err)
	data := mustEncode(t, img)

	rc := resource.NewController(resource.Config{MemoryLimitBytes: 100})
	opt := func(o *Options) {
		o.ImageOptions = []ndimage.Option{ndimage.WithResourceController(rc)}
	}
	held, err := ndimage.New([]int{16}, 1, datatype.SFloat, ndimage.WithResourceController(rc))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = Read(ctx, bytes.NewReader(data), opt)
	require.Error(t, err)
	assert.ErrorIs(t, err, ndimage.ErrRuntime)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, held.Strip())
	got, err := Read(context.Background(), bytes.NewReader(data), opt)
	require.NoError(t, err)
	requireSameImage(t, img, got)
	assert.Equal(t, int64(64), rc.MemoryUsage())
}

func TestWriteCanceled(t *testing.T) {
	img, err := ndimage.New([]int{256}, 1, datatype.UInt8)
	require.NoError(t, err)

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 8})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err = Write(ctx, &buf, img, func(o *Options) { o.Controller = rc })
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestCompressionString(t *testing.T) {
	assert.Equal(t, "none", CompressionNone.String())
	assert.Equal(t, "lz4", CompressionLZ4.String())
	assert.Equal(t, "zstd", CompressionZSTD.String())
	assert.Equal(t, "compression(9)", Compression(9).String())
}

func TestCompressBlockFallsBackToVerbatim(t *testing.T) {
	rng := testutil.NewRNG(3)
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(rng.Intn(256))
	}

	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		block, err := compressBlock(data, c)
		require.NoError(t, err)
		assert.Len(t, block, blockHeaderSize+len(data), c.String())

		out, n, err := decompressBlock(block, c, len(data))
		require.NoError(t, err)
		assert.Equal(t, data, out)
		assert.Equal(t, len(block), n)
	}

	_, _, err := decompressBlock(mustCompress(t, data), CompressionZSTD, len(data)+1)
	assert.Error(t, err)
}

func mustCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	b, err := compressBlock(data, CompressionZSTD)
	require.NoError(t, err)
	return b
}

func mustEncode(t *testing.T, img *ndimage.Image, optFns ...func(*Options)) []byte {
	t.Helper()
	data, err := Encode(img, optFns...)
	require.NoError(t, err)
	return data
}
