// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Pixel buffers start on a 64-byte boundary so that every sample of every
// supported data type is naturally aligned and rows can be processed with
// wide vector loads.
package mem
