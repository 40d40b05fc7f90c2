// Package snapshot serializes images to a self-describing byte format.
//
// A snapshot holds the image properties (data type, sizes, tensor shape,
// color space, pixel size), its samples in normal order and a content
// digest:
//
//	magic    "NDIM"
//	version  uint16
//	codec    uint8 length + name ("cbor", "json")
//	header   uint32 length + codec-encoded Header
//	payload  compressed sample block
//	checksum CRC32C of everything above
//
// Strides, views and sharing are not recorded: a decoded image is freshly
// forged with normal strides.
package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/ndimage"
	"github.com/hupe1980/ndimage/codec"
	"github.com/hupe1980/ndimage/datatype"
	"github.com/hupe1980/ndimage/internal/conv"
	"github.com/hupe1980/ndimage/internal/errs"
	"github.com/hupe1980/ndimage/internal/hash"
	"github.com/hupe1980/ndimage/physical"
	"github.com/hupe1980/ndimage/resource"
	"github.com/hupe1980/ndimage/tensor"
)

// Version is the snapshot format version written by Encode.
const Version uint16 = 1

var magic = [4]byte{'N', 'D', 'I', 'M'}

// Header describes the image stored in a snapshot.
type Header struct {
	DataType    string     `cbor:"dt" json:"dt"`
	Sizes       []int      `cbor:"sizes" json:"sizes"`
	TensorShape uint8      `cbor:"tshape" json:"tshape"`
	TensorRows  int        `cbor:"trows" json:"trows"`
	TensorCols  int        `cbor:"tcols" json:"tcols"`
	ColorSpace  string     `cbor:"color,omitempty" json:"color,omitempty"`
	PixelSize   []Quantity `cbor:"pixel,omitempty" json:"pixel,omitempty"`
	Compression uint8      `cbor:"comp" json:"comp"`
	Digest      []byte     `cbor:"digest" json:"digest"`
}

// Quantity is the serialized form of physical.Quantity.
type Quantity struct {
	Magnitude float64 `cbor:"m" json:"m"`
	Units     string  `cbor:"u" json:"u"`
}

// Options configures encoding and decoding.
type Options struct {
	// Codec encodes the header. Defaults to codec.Default.
	Codec codec.Codec
	// Compression applies to the sample payload. Defaults to ZSTD.
	Compression Compression
	// Controller throttles Write and Read to its IO limit. Optional.
	Controller *resource.Controller
	// ImageOptions are passed to the decoded image.
	ImageOptions []ndimage.Option
}

func applyOptions(optFns []func(*Options)) Options {
	o := Options{
		Codec:       codec.Default,
		Compression: CompressionZSTD,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.Codec == nil {
		o.Codec = codec.Default
	}
	return o
}

func corrupt(cause error) error {
	return errs.Wrap(errs.KindParameter, errs.CorruptSnapshot, cause)
}

func unsupported(format string, args ...any) error {
	return errs.Wrap(errs.KindParameter, errs.UnsupportedSnapshot, fmt.Errorf(format, args...))
}

// Encode serializes a forged image.
func Encode(img *ndimage.Image, optFns ...func(*Options)) ([]byte, error) {
	o := applyOptions(optFns)

	samples, err := img.Samples()
	if err != nil {
		return nil, err
	}
	digest, err := img.Digest()
	if err != nil {
		return nil, err
	}

	t := img.Tensor()
	hdr := Header{
		DataType:    img.DataType().Name(),
		Sizes:       img.Sizes(),
		TensorShape: uint8(t.Shape()),
		TensorRows:  t.Rows(),
		TensorCols:  t.Columns(),
		ColorSpace:  img.ColorSpace(),
		Compression: uint8(o.Compression),
		Digest:      digest[:],
	}
	if ps := img.PixelSize(); ps.IsDefined() {
		for d := 0; d < ps.Len(); d++ {
			q := ps.Get(d)
			hdr.PixelSize = append(hdr.PixelSize, Quantity{Magnitude: q.Magnitude, Units: q.Units})
		}
	}

	payload, err := compressBlock(samples, o.Compression)
	if err != nil {
		return nil, errs.Runtime("Failed to compress snapshot payload", err)
	}
	return assemble(o.Codec, &hdr, payload)
}

// assemble writes the preamble, encoded header, payload and checksum.
func assemble(c codec.Codec, hdr *Header, payload []byte) ([]byte, error) {
	hdrBytes, err := c.Marshal(hdr)
	if err != nil {
		return nil, errs.Runtime("Failed to encode snapshot header", err)
	}

	name := c.Name()
	if len(name) > 255 {
		return nil, errs.Parameterf("%s: codec name %q", errs.InvalidParameter, name)
	}
	hdrLen, err := conv.IntToUint32(len(hdrBytes))
	if err != nil {
		return nil, errs.Runtime(errs.SizeExceedsLimit, err)
	}

	out := make([]byte, 0, len(magic)+2+1+len(name)+4+len(hdrBytes)+len(payload)+4)
	out = append(out, magic[:]...)
	out = binary.LittleEndian.AppendUint16(out, Version)
	out = append(out, byte(len(name)))
	out = append(out, name...)
	out = binary.LittleEndian.AppendUint32(out, hdrLen)
	out = append(out, hdrBytes...)
	out = append(out, payload...)
	return hash.AppendCRC32C(out), nil
}

// ReadHeader parses the preamble and header of a snapshot without decoding
// the samples.
func ReadHeader(data []byte) (Header, error) {
	hdr, _, err := parse(data)
	return hdr, err
}

// parse validates the checksum and preamble, decodes the header and returns
// the remaining payload bytes.
func parse(data []byte) (Header, []byte, error) {
	var hdr Header

	body, ok := hash.VerifyCRC32C(data)
	if !ok {
		return hdr, nil, corrupt(errors.New("checksum mismatch"))
	}
	if len(body) < len(magic)+3 || !bytes.Equal(body[:len(magic)], magic[:]) {
		return hdr, nil, unsupported("missing magic")
	}
	body = body[len(magic):]

	if v := binary.LittleEndian.Uint16(body); v != Version {
		return hdr, nil, unsupported("version %d", v)
	}
	body = body[2:]

	nameLen := int(body[0])
	body = body[1:]
	if len(body) < nameLen+4 {
		return hdr, nil, corrupt(errBlockTruncated)
	}
	name := string(body[:nameLen])
	c, ok := codec.ByName(name)
	if !ok {
		return hdr, nil, unsupported("codec %q", name)
	}
	body = body[nameLen:]

	hdrLen := int(binary.LittleEndian.Uint32(body))
	body = body[4:]
	if len(body) < hdrLen {
		return hdr, nil, corrupt(errBlockTruncated)
	}
	if err := c.Unmarshal(body[:hdrLen], &hdr); err != nil {
		return hdr, nil, corrupt(err)
	}
	return hdr, body[hdrLen:], nil
}

// Decode reconstructs an image from a snapshot. The result is forged with
// normal strides and its content digest is verified.
func Decode(data []byte, optFns ...func(*Options)) (*ndimage.Image, error) {
	return decode(data, applyOptions(optFns), (*ndimage.Image).Forge)
}

func decode(data []byte, o Options, forge func(*ndimage.Image) error) (*ndimage.Image, error) {
	hdr, payload, err := parse(data)
	if err != nil {
		return nil, err
	}

	dt, err := datatype.Parse(hdr.DataType)
	if err != nil {
		return nil, corrupt(err)
	}
	t, err := tensor.New(tensor.Shape(hdr.TensorShape), hdr.TensorRows, hdr.TensorCols)
	if err != nil {
		return nil, corrupt(err)
	}

	want, err := conv.ProductInt(hdr.Sizes)
	if err == nil {
		want, err = conv.MulInt(want, t.Elements())
	}
	if err == nil {
		want, err = conv.MulInt(want, dt.SizeOf())
	}
	if err != nil {
		return nil, corrupt(err)
	}

	samples, consumed, err := decompressBlock(payload, Compression(hdr.Compression), want)
	if err != nil {
		return nil, corrupt(err)
	}
	if consumed != len(payload) {
		return nil, corrupt(fmt.Errorf("%d trailing bytes after payload", len(payload)-consumed))
	}

	img := ndimage.NewRaw(o.ImageOptions...)
	if err := build(img, hdr, dt, t, samples, forge); err != nil {
		_ = img.Strip()
		return nil, err
	}
	return img, nil
}

func build(img *ndimage.Image, hdr Header, dt datatype.DataType, t tensor.Tensor, samples []byte, forge func(*ndimage.Image) error) error {
	if err := img.SetDataType(dt); err != nil {
		return corrupt(err)
	}
	if err := img.SetSizes(hdr.Sizes...); err != nil {
		return corrupt(err)
	}
	if err := img.SetTensor(t); err != nil {
		return corrupt(err)
	}
	if err := img.SetColorSpace(hdr.ColorSpace); err != nil {
		return corrupt(err)
	}
	if len(hdr.PixelSize) > 0 {
		q := make([]physical.Quantity, len(hdr.PixelSize))
		for i, p := range hdr.PixelSize {
			q[i] = physical.Quantity{Magnitude: p.Magnitude, Units: p.Units}
		}
		img.SetPixelSize(physical.NewPixelSize(q...))
	}

	// Allocation failures keep their runtime kind.
	if err := forge(img); err != nil {
		return err
	}
	if err := img.SetSamples(samples); err != nil {
		return corrupt(err)
	}

	digest, err := img.Digest()
	if err != nil {
		return err
	}
	if !bytes.Equal(digest[:], hdr.Digest) {
		return corrupt(errors.New("content digest mismatch"))
	}
	return nil
}

// Write encodes img and writes it to w, throttled by the options'
// controller.
func Write(ctx context.Context, w io.Writer, img *ndimage.Image, optFns ...func(*Options)) error {
	o := applyOptions(optFns)
	data, err := Encode(img, optFns...)
	if err != nil {
		return err
	}
	_, err = resource.NewRateLimitedWriter(ctx, w, o.Controller).Write(data)
	return err
}

// Read reads a whole snapshot from r, throttled by the options'
// controller, and decodes it. Forging the decoded image waits for memory
// under the image options' memory limit until ctx is done.
func Read(ctx context.Context, r io.Reader, optFns ...func(*Options)) (*ndimage.Image, error) {
	o := applyOptions(optFns)
	data, err := io.ReadAll(resource.NewRateLimitedReader(ctx, r, o.Controller))
	if err != nil {
		return nil, err
	}
	return decode(data, o, func(img *ndimage.Image) error {
		return img.ForgeContext(ctx)
	})
}
