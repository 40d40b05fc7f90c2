package ndimage

import (
	"errors"

	"github.com/hupe1980/ndimage/internal/conv"
	"github.com/hupe1980/ndimage/internal/errs"
	"github.com/hupe1980/ndimage/resource"
)

// Error is the concrete error type returned by ndimage. Use errors.Is with
// ErrAssertion, ErrParameter or ErrRuntime to classify it.
type Error = errs.Error

var (
	// ErrAssertion matches internal-consistency failures.
	ErrAssertion = errs.ErrAssertion
	// ErrParameter matches invalid-input failures.
	ErrParameter = errs.ErrParameter
	// ErrRuntime matches environment failures such as failed allocations.
	ErrRuntime = errs.ErrRuntime

	// ErrMemoryLimitExceeded is wrapped by forge failures caused by the
	// resource controller's memory limit.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)

// Messages carried by parameter errors raised from this package.
const (
	MsgImageNotRaw                = errs.ImageNotRaw
	MsgImageNotForged             = errs.ImageNotForged
	MsgNoPixels                   = errs.NoPixels
	MsgDataTypeNotSupported       = errs.DataTypeNotSupported
	MsgDimensionalityNotSupported = errs.DimensionalityNotSupported
	MsgSizesDontMatch             = errs.SizesDontMatch
	MsgNTensorElemDontMatch       = errs.NTensorElemDontMatch
	MsgInconsistentColorSpace     = errs.InconsistentColorSpace
	MsgUnknownColorSpace          = errs.UnknownColorSpace
	MsgInvalidFlag                = errs.InvalidFlag
)

// Mismatch messages returned by CompareProperties in Strict mode.
const (
	MsgDataTypeDontMatch       = "Data type doesn't match"
	MsgDimensionalityDontMatch = "Dimensionality doesn't match"
	MsgStridesDontMatch        = "Strides don't match"
	MsgTensorShapeDontMatch    = "Tensor shape doesn't match"
	MsgTensorStrideDontMatch   = "Tensor stride doesn't match"
	MsgColorSpaceDontMatch     = "Color space doesn't match"
	MsgPixelSizeDontMatch      = "Pixel sizes don't match"
)

// translateError maps failures from the allocation path onto the error
// taxonomy. Errors that already are an *Error pass through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return err
	}

	if errors.Is(err, conv.ErrOverflow) {
		return errs.Runtime(errs.SizeExceedsLimit, err)
	}

	// Memory limit, mmap and allocator failures.
	return errs.Runtime(errs.AllocationFailed, err)
}
