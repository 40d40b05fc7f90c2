package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/ndimage/internal/conv"
)

// Compression selects how the sample payload is stored.
type Compression uint8

const (
	// CompressionNone stores samples verbatim.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
)

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ZSTD encoder/decoder pools
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Payload block format:
//
//	[UncompressedSize uint64][StoredSize uint64][Data...]
//
// StoredSize 0 means Data is uncompressed.
const blockHeaderSize = 16

var errBlockTruncated = errors.New("payload block truncated")

// compressBlock compresses data, falling back to verbatim storage when the
// algorithm saves less than 10%.
func compressBlock(data []byte, c Compression) ([]byte, error) {
	var compressed []byte

	switch c {
	case CompressionNone:
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("unknown compression %d", c)
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		out := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint64(out[0:], uint64(len(data)))
		binary.LittleEndian.PutUint64(out[8:], 0)
		copy(out[blockHeaderSize:], data)
		return out, nil
	}

	out := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint64(out[0:], uint64(len(data)))
	binary.LittleEndian.PutUint64(out[8:], uint64(len(compressed)))
	copy(out[blockHeaderSize:], compressed)
	return out, nil
}

// decompressBlock reverses compressBlock for a payload of want bytes. It
// returns the payload and the number of bytes consumed from data.
func decompressBlock(data []byte, c Compression, want int) ([]byte, int, error) {
	if len(data) < blockHeaderSize {
		return nil, 0, errBlockTruncated
	}

	rawSize, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(data[0:]))
	if err != nil {
		return nil, 0, err
	}
	if rawSize != want {
		return nil, 0, fmt.Errorf("payload holds %d bytes, header describes %d", rawSize, want)
	}
	storedSize, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(data[8:]))
	if err != nil {
		return nil, 0, err
	}

	body := data[blockHeaderSize:]
	if storedSize == 0 {
		if len(body) < rawSize {
			return nil, 0, errBlockTruncated
		}
		return body[:rawSize], blockHeaderSize + rawSize, nil
	}
	if len(body) < storedSize {
		return nil, 0, errBlockTruncated
	}
	body = body[:storedSize]
	consumed := blockHeaderSize + storedSize

	switch c {
	case CompressionLZ4:
		out := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, 0, err
		}
		if n != rawSize {
			return nil, 0, errors.New("decompressed size mismatch")
		}
		return out, consumed, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		out, err := dec.DecodeAll(body, make([]byte, 0, rawSize))
		if err != nil {
			return nil, 0, err
		}
		if len(out) != rawSize {
			return nil, 0, errors.New("decompressed size mismatch")
		}
		return out, consumed, nil

	default:
		return nil, 0, fmt.Errorf("compressed payload with compression %s", c)
	}
}
