// Package datatype describes the numeric representation of image samples.
//
// A DataType names a kind and width (e.g. UInt8, SFloat). Classes is a set
// of data types, used by validation functions to accept a family of types:
//
//	img.CheckProperties(2, datatype.ClassFloat, ndimage.Strict)
package datatype

import (
	"strings"

	"github.com/hupe1980/ndimage/internal/errs"
)

// DataType identifies the representation of one sample.
type DataType uint8

// Supported data types. The zero value is Bin.
const (
	Bin DataType = iota
	UInt8
	SInt8
	UInt16
	SInt16
	UInt32
	SInt32
	UInt64
	SInt64
	HFloat
	SFloat
	DFloat
	SComplex
	DComplex

	numTypes
)

var names = [numTypes]string{
	Bin:      "BIN",
	UInt8:    "UINT8",
	SInt8:    "SINT8",
	UInt16:   "UINT16",
	SInt16:   "SINT16",
	UInt32:   "UINT32",
	SInt32:   "SINT32",
	UInt64:   "UINT64",
	SInt64:   "SINT64",
	HFloat:   "HFLOAT",
	SFloat:   "SFLOAT",
	DFloat:   "DFLOAT",
	SComplex: "SCOMPLEX",
	DComplex: "DCOMPLEX",
}

var sizes = [numTypes]int{
	Bin:      1,
	UInt8:    1,
	SInt8:    1,
	UInt16:   2,
	SInt16:   2,
	UInt32:   4,
	SInt32:   4,
	UInt64:   8,
	SInt64:   8,
	HFloat:   2,
	SFloat:   4,
	DFloat:   8,
	SComplex: 8,
	DComplex: 16,
}

// Valid reports whether dt is one of the defined data types.
func (dt DataType) Valid() bool { return dt < numTypes }

// Name returns the upper-case name used in diagnostics, e.g. "SFLOAT".
func (dt DataType) Name() string {
	if !dt.Valid() {
		return "UNKNOWN"
	}
	return names[dt]
}

// String implements fmt.Stringer.
func (dt DataType) String() string { return dt.Name() }

// SizeOf returns the number of bytes one sample occupies.
func (dt DataType) SizeOf() int {
	if !dt.Valid() {
		return 0
	}
	return sizes[dt]
}

// Class returns the single-member class set for dt.
func (dt DataType) Class() Classes {
	if !dt.Valid() {
		return 0
	}
	return 1 << dt
}

// IsBinary reports whether dt is Bin.
func (dt DataType) IsBinary() bool { return dt == Bin }

// IsUnsigned reports whether dt is an unsigned integer type.
func (dt DataType) IsUnsigned() bool { return ClassUnsigned.Contains(dt) }

// IsSigned reports whether dt can hold negative values.
func (dt DataType) IsSigned() bool { return ClassSigned.Contains(dt) }

// IsInteger reports whether dt is an integer type (Bin excluded).
func (dt DataType) IsInteger() bool { return ClassInteger.Contains(dt) }

// IsFloat reports whether dt is a real floating-point type.
func (dt DataType) IsFloat() bool { return ClassFloat.Contains(dt) }

// IsComplex reports whether dt is a complex type.
func (dt DataType) IsComplex() bool { return ClassComplex.Contains(dt) }

// IsReal reports whether dt is a non-complex numeric type.
func (dt DataType) IsReal() bool { return ClassReal.Contains(dt) }

// Parse returns the data type with the given name (case-insensitive).
func Parse(name string) (DataType, error) {
	for dt, n := range names {
		if strings.EqualFold(n, name) {
			return DataType(dt), nil
		}
	}
	return 0, errs.Parameterf("%s: %q", errs.DataTypeNotSupported, name)
}

// Classes is a set of data types.
type Classes uint32

// Predefined classes.
const (
	ClassBin      = Classes(1 << Bin)
	ClassUInt8    = Classes(1 << UInt8)
	ClassSInt8    = Classes(1 << SInt8)
	ClassUInt16   = Classes(1 << UInt16)
	ClassSInt16   = Classes(1 << SInt16)
	ClassUInt32   = Classes(1 << UInt32)
	ClassSInt32   = Classes(1 << SInt32)
	ClassUInt64   = Classes(1 << UInt64)
	ClassSInt64   = Classes(1 << SInt64)
	ClassHFloat   = Classes(1 << HFloat)
	ClassSFloat   = Classes(1 << SFloat)
	ClassDFloat   = Classes(1 << DFloat)
	ClassSComplex = Classes(1 << SComplex)
	ClassDComplex = Classes(1 << DComplex)

	ClassBinary        = ClassBin
	ClassUnsigned      = ClassUInt8 | ClassUInt16 | ClassUInt32 | ClassUInt64
	ClassSignedInteger = ClassSInt8 | ClassSInt16 | ClassSInt32 | ClassSInt64
	ClassInteger       = ClassUnsigned | ClassSignedInteger
	ClassFloat         = ClassHFloat | ClassSFloat | ClassDFloat
	ClassComplex       = ClassSComplex | ClassDComplex
	ClassFlex          = ClassFloat | ClassComplex
	ClassReal          = ClassInteger | ClassFloat
	ClassSigned        = ClassSignedInteger | ClassFloat | ClassComplex
	ClassUnsignedAll   = ClassBinary | ClassUnsigned
	ClassNonBinary     = ClassReal | ClassComplex
	ClassAll           = ClassBinary | ClassNonBinary
)

// Contains reports whether dt is a member of c.
func (c Classes) Contains(dt DataType) bool {
	return dt.Valid() && c&dt.Class() != 0
}

// Members returns the data types in c in declaration order.
func (c Classes) Members() []DataType {
	var out []DataType
	for dt := DataType(0); dt < numTypes; dt++ {
		if c.Contains(dt) {
			out = append(out, dt)
		}
	}
	return out
}

// String lists the member names separated by "|".
func (c Classes) String() string {
	members := c.Members()
	parts := make([]string, len(members))
	for i, dt := range members {
		parts[i] = dt.Name()
	}
	return strings.Join(parts, "|")
}
