package ndimage

import (
	"github.com/hupe1980/ndimage/datatype"
	"github.com/hupe1980/ndimage/internal/errs"
)

// Mode selects how a failed comparison or check is reported.
type Mode uint8

const (
	// Quiet reports a mismatch as a false result.
	Quiet Mode = iota
	// Strict reports a mismatch as a parameter error naming the property.
	Strict
)

// Property selects the category compared by CompareProperties. Values are
// not combinable; compare several categories with several calls.
type Property uint8

// Property categories.
const (
	DataTypeProp Property = iota + 1
	DimensionalityProp
	SizesProp
	StridesProp
	TensorShapeProp
	TensorElementsProp
	TensorStrideProp
	ColorSpaceProp
	PixelSizeProp
)

var propertyNames = [...]string{
	DataTypeProp:       "data type",
	DimensionalityProp: "dimensionality",
	SizesProp:          "sizes",
	StridesProp:        "strides",
	TensorShapeProp:    "tensor shape",
	TensorElementsProp: "tensor elements",
	TensorStrideProp:   "tensor stride",
	ColorSpaceProp:     "color space",
	PixelSizeProp:      "pixel size",
}

func (p Property) String() string {
	if p == 0 || int(p) >= len(propertyNames) {
		return "unknown"
	}
	return propertyNames[p]
}

// CompareProperties reports whether img and other agree on the selected
// property. In Strict mode a mismatch is returned as a parameter error. An
// unknown property is always an error.
func (img *Image) CompareProperties(other *Image, prop Property, mode Mode) (bool, error) {
	var equal bool
	var msg string

	switch prop {
	case DataTypeProp:
		equal, msg = img.dataType == other.dataType, MsgDataTypeDontMatch
	case DimensionalityProp:
		equal, msg = img.sizes.Len() == other.sizes.Len(), MsgDimensionalityDontMatch
	case SizesProp:
		equal, msg = img.sizes.Equal(&other.sizes), MsgSizesDontMatch
	case StridesProp:
		equal, msg = img.strides.Equal(&other.strides), MsgStridesDontMatch
	case TensorShapeProp:
		equal, msg = img.tensor.Equal(other.tensor), MsgTensorShapeDontMatch
	case TensorElementsProp:
		equal, msg = img.tensor.Elements() == other.tensor.Elements(), MsgNTensorElemDontMatch
	case TensorStrideProp:
		equal, msg = img.tensorStride == other.tensorStride, MsgTensorStrideDontMatch
	case ColorSpaceProp:
		equal, msg = img.colorSpace == other.colorSpace, MsgColorSpaceDontMatch
	case PixelSizeProp:
		equal, msg = img.pixelSize.Equal(&other.pixelSize), MsgPixelSizeDontMatch
	default:
		return false, errs.Raise(errs.InvalidFlag)
	}

	if equal {
		return true, nil
	}
	if mode == Strict {
		return false, errs.Raise(msg)
	}
	return false, nil
}

// CheckProperties reports whether the image has ndims dimensions and a data
// type in classes. In Strict mode the first failing check is returned as an
// error: dimensionality first, then data type.
func (img *Image) CheckProperties(ndims int, classes datatype.Classes, mode Mode) (bool, error) {
	ok := img.sizes.Len() == ndims
	if !ok && mode == Strict {
		return false, errs.Raise(errs.DimensionalityNotSupported)
	}
	return img.checkDataType(ok, classes, mode)
}

// CheckSizes reports whether the image has exactly the given sizes and a
// data type in classes. In Strict mode the first failing check is returned
// as an error: sizes first, then data type.
func (img *Image) CheckSizes(sizes []int, classes datatype.Classes, mode Mode) (bool, error) {
	ok := img.sizes.EqualSlice(sizes)
	if !ok && mode == Strict {
		return false, errs.Raise(errs.SizesDontMatch)
	}
	return img.checkDataType(ok, classes, mode)
}

// CheckSizesAndTensorElements is CheckSizes with an additional check of
// the number of tensor elements, performed between the two.
func (img *Image) CheckSizesAndTensorElements(sizes []int, tensorElements int, classes datatype.Classes, mode Mode) (bool, error) {
	ok := img.sizes.EqualSlice(sizes)
	if !ok && mode == Strict {
		return false, errs.Raise(errs.SizesDontMatch)
	}
	if img.tensor.Elements() != tensorElements {
		if mode == Strict {
			return false, errs.Raise(errs.NTensorElemDontMatch)
		}
		ok = false
	}
	return img.checkDataType(ok, classes, mode)
}

func (img *Image) checkDataType(ok bool, classes datatype.Classes, mode Mode) (bool, error) {
	if !classes.Contains(img.dataType) {
		if mode == Strict {
			return false, errs.Raise(errs.DataTypeNotSupported)
		}
		return false, nil
	}
	return ok, nil
}
