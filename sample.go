package ndimage

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"

	"github.com/hupe1980/ndimage/datatype"
)

// Samples are stored little-endian. Complex samples store the real part
// followed by the imaginary part.

func decodeSample(b []byte, dt datatype.DataType) float64 {
	le := binary.LittleEndian
	switch dt {
	case datatype.Bin:
		if b[0] != 0 {
			return 1
		}
		return 0
	case datatype.UInt8:
		return float64(b[0])
	case datatype.SInt8:
		return float64(int8(b[0]))
	case datatype.UInt16:
		return float64(le.Uint16(b))
	case datatype.SInt16:
		return float64(int16(le.Uint16(b)))
	case datatype.UInt32:
		return float64(le.Uint32(b))
	case datatype.SInt32:
		return float64(int32(le.Uint32(b)))
	case datatype.UInt64:
		return float64(le.Uint64(b))
	case datatype.SInt64:
		return float64(int64(le.Uint64(b)))
	case datatype.HFloat:
		return float64(float16.Frombits(le.Uint16(b)).Float32())
	case datatype.SFloat, datatype.SComplex:
		return float64(math.Float32frombits(le.Uint32(b)))
	case datatype.DFloat, datatype.DComplex:
		return math.Float64frombits(le.Uint64(b))
	}
	return 0
}

// encodeSample writes v into b, rounding and saturating for integer types.
// For complex types the imaginary part is set to zero.
func encodeSample(b []byte, dt datatype.DataType, v float64) {
	le := binary.LittleEndian
	switch dt {
	case datatype.Bin:
		if v != 0 && !math.IsNaN(v) {
			b[0] = 1
		} else {
			b[0] = 0
		}
	case datatype.UInt8:
		b[0] = uint8(saturate(v, 0, math.MaxUint8))
	case datatype.SInt8:
		b[0] = byte(int8(saturate(v, math.MinInt8, math.MaxInt8)))
	case datatype.UInt16:
		le.PutUint16(b, uint16(saturate(v, 0, math.MaxUint16)))
	case datatype.SInt16:
		le.PutUint16(b, uint16(int16(saturate(v, math.MinInt16, math.MaxInt16))))
	case datatype.UInt32:
		le.PutUint32(b, uint32(saturate(v, 0, math.MaxUint32)))
	case datatype.SInt32:
		le.PutUint32(b, uint32(int32(saturate(v, math.MinInt32, math.MaxInt32))))
	case datatype.UInt64:
		le.PutUint64(b, saturateUint64(v))
	case datatype.SInt64:
		le.PutUint64(b, uint64(saturateInt64(v)))
	case datatype.HFloat:
		le.PutUint16(b, float16.Fromfloat32(float32(v)).Bits())
	case datatype.SFloat:
		le.PutUint32(b, math.Float32bits(float32(v)))
	case datatype.DFloat:
		le.PutUint64(b, math.Float64bits(v))
	case datatype.SComplex:
		le.PutUint32(b, math.Float32bits(float32(v)))
		le.PutUint32(b[4:], 0)
	case datatype.DComplex:
		le.PutUint64(b, math.Float64bits(v))
		le.PutUint64(b[8:], 0)
	}
}

// saturate rounds v to the nearest integer and clamps it to [lo, hi].
// NaN maps to 0.
func saturate(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(math.Round(v), lo), hi)
}

// 2^64 and 2^63 are exact in float64; their integer neighbours are not.
const (
	twoTo64 = 18446744073709551616.0
	twoTo63 = 9223372036854775808.0
)

func saturateUint64(v float64) uint64 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= twoTo64:
		return math.MaxUint64
	}
	return uint64(math.Round(v))
}

func saturateInt64(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= twoTo63:
		return math.MaxInt64
	case v <= -twoTo63:
		return math.MinInt64
	}
	return int64(math.Round(v))
}
