// Package ndimage provides an in-memory representation of N-dimensional,
// multi-channel numeric arrays ("images").
//
// An Image is described by a data type, a list of sizes (one per dimension),
// a list of strides, a tensor descriptor for the channels of each pixel and
// optional color-space and physical pixel-size metadata. Pixel data lives in
// a DataBlock that may be shared by several images; each image holds its own
// origin into the block, so sub-views, mirrored and permuted views address
// the same bytes with different geometry.
//
// # Quick Start
//
//	img := ndimage.NewRaw()
//	_ = img.SetSizes(256, 256)
//	_ = img.SetDataType(datatype.SFloat)
//	if err := img.Forge(); err != nil { ... }
//	defer img.Strip()
//
// Or in one step:
//
//	img, err := ndimage.New([]int{256, 256}, 3, datatype.UInt8)
//
// # States
//
// An image is either raw (no data block) or forged. Sizes, strides, tensor
// and data type can only be changed while raw; setters on a forged image
// fail with MsgImageNotRaw. Geometry changes on forged images are expressed
// as views (Mirror, PermuteDimensions, Subview, TensorElement, Squeeze) that
// share the data block. Color space and pixel size are metadata and can be
// changed in either state.
//
// # Sharing
//
// QuickCopy and every view increment the block's share count; Strip and
// Reset decrement it. The block is released exactly once, when the last
// image referencing it is stripped. Reference counting is not atomic: images
// sharing a block must not be forged or stripped from different goroutines
// without external synchronization.
//
// # Validation
//
// CompareProperties checks one property category per call:
//
//	ok, err := a.CompareProperties(b, ndimage.SizesProp, ndimage.Strict)
//
// CheckProperties and friends validate an image against expectations:
//
//	if _, err := img.CheckProperties(2, datatype.ClassFloat, ndimage.Strict); err != nil {
//	    return err
//	}
//
// # Errors
//
// Every failure is an *Error of one of three kinds, matched with errors.Is
// against ErrAssertion, ErrParameter or ErrRuntime.
package ndimage
