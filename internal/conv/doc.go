// Package conv provides overflow-checked integer conversion and arithmetic.
//
// Image geometry multiplies sizes and strides that come from callers or from
// snapshot headers; these helpers turn silent wraparound into errors.
//
// For values that are provably in range (loop indices, products already
// validated at forge time), use direct casts instead.
package conv
