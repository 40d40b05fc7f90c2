// Package container implements DimensionArray, the small-size-optimized
// sequence used throughout ndimage to hold one value per image dimension
// (sizes, strides, pixel sizes, permutations).
//
// Most images have two to four dimensions, so a DimensionArray stores up to
// four elements inline and only touches the heap beyond that:
//
//	sizes := container.Of(256, 256, 3)   // inline, no allocation
//	sizes.PushBack(10)                   // still inline (4 elements)
//	sizes.PushBack(2)                    // moves to an exact-size heap slice
//
// Heap storage is always exactly as large as the array. Every length change
// beyond the inline capacity reallocates, which keeps memory tight but makes
// repeated PushBack quadratic. Use a plain slice for growable sequences.
//
// Sort and SortWith use insertion sort, which is fast for the handful of
// elements these arrays hold and needs no scratch storage.
package container
