// Package testutil provides testing utilities for ndimage.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source and helpers that build images filled
// with reproducible sample values.
//
// # Random Images
//
//	rng := testutil.NewRNG(seed)
//	img := rng.UniformImage(t, []int{16, 8}, 3, datatype.UInt8)
//	rng.FillGaussian(img, 100, 15)
//
// # Strided Layouts
//
//	img := testutil.StridedImage(t, []int{4, 3}, []int{3, 12}, 3, 1, datatype.SFloat)
package testutil
