// Package physical describes the physical calibration of image axes.
//
// A Quantity is a magnitude with a unit string ("0.25 µm"). A PixelSize holds
// one Quantity per image dimension. When a PixelSize has fewer entries than
// an image has dimensions, the last entry applies to all remaining ones,
// so a single entry describes an isotropic image of any dimensionality.
package physical

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/ndimage/container"
)

// PixelUnits is the unit of uncalibrated lengths.
const PixelUnits = "px"

// Quantity is a physical magnitude with units.
type Quantity struct {
	Magnitude float64
	Units     string
}

// Pixel returns the quantity "1 px".
func Pixel() Quantity {
	return Quantity{Magnitude: 1, Units: PixelUnits}
}

// SquarePixel returns the unit of uncalibrated areas, "px^2".
func SquarePixel() string {
	return PixelUnits + "^2"
}

// IsPhysical reports whether q carries real physical units, i.e. it is not
// expressed in pixels and not dimensionless.
func (q Quantity) IsPhysical() bool {
	return q.Units != "" && q.Units != PixelUnits
}

// String formats the quantity as "<magnitude> <units>".
func (q Quantity) String() string {
	m := strconv.FormatFloat(q.Magnitude, 'g', -1, 64)
	if q.Units == "" {
		return m
	}
	return m + " " + q.Units
}

// PixelSize holds per-dimension physical sizes. The zero value means "no
// calibration".
type PixelSize struct {
	sizes container.DimensionArray[Quantity]
}

// NewPixelSize returns a pixel size with the given per-axis quantities.
func NewPixelSize(q ...Quantity) PixelSize {
	return PixelSize{sizes: container.FromSlice(q)}
}

// Isotropic returns a pixel size with the same quantity along every axis.
func Isotropic(q Quantity) PixelSize {
	return NewPixelSize(q)
}

// IsDefined reports whether any calibration is stored.
func (p PixelSize) IsDefined() bool {
	return !p.sizes.Empty()
}

// Len returns the number of stored entries.
func (p PixelSize) Len() int {
	return p.sizes.Len()
}

// Get returns the size along dimension d. Dimensions past the stored
// entries repeat the last one; an undefined PixelSize yields Pixel().
func (p PixelSize) Get(d int) Quantity {
	n := p.sizes.Len()
	if n == 0 {
		return Pixel()
	}
	if d >= n {
		d = n - 1
	}
	return p.sizes.At(d)
}

// Set stores q for dimension d, extending the stored entries (by repeating
// the current last entry) if needed.
func (p *PixelSize) Set(d int, q Quantity) {
	n := p.sizes.Len()
	if d >= n {
		p.sizes.Resize(d+1, p.Get(n))
	}
	p.sizes.Set(d, q)
}

// Resize sets the number of stored entries to n, repeating the last entry
// when growing.
func (p *PixelSize) Resize(n int) {
	p.sizes.Resize(n, p.Get(p.sizes.Len()))
}

// Clear removes the calibration.
func (p *PixelSize) Clear() {
	p.sizes.Clear()
}

// IsIsotropic reports whether all stored entries are equal.
func (p PixelSize) IsIsotropic() bool {
	s := p.sizes.Slice()
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// Product returns the product of the magnitudes of the first n dimensions
// together with the combined units (e.g. "µm^2" for an isotropic 2-D pixel).
func (p PixelSize) Product(n int) Quantity {
	if n <= 0 {
		return Quantity{Magnitude: 1}
	}
	mag := 1.0
	units := map[string]int{}
	var order []string
	for d := 0; d < n; d++ {
		q := p.Get(d)
		mag *= q.Magnitude
		if q.Units == "" {
			continue
		}
		if _, seen := units[q.Units]; !seen {
			order = append(order, q.Units)
		}
		units[q.Units]++
	}
	parts := make([]string, 0, len(order))
	for _, u := range order {
		if units[u] == 1 {
			parts = append(parts, u)
		} else {
			parts = append(parts, fmt.Sprintf("%s^%d", u, units[u]))
		}
	}
	return Quantity{Magnitude: mag, Units: strings.Join(parts, "·")}
}

// Equal reports whether both pixel sizes store the same entries.
func (p PixelSize) Equal(other *PixelSize) bool {
	return p.sizes.Equal(&other.sizes)
}

// Clone returns an independent copy.
func (p PixelSize) Clone() PixelSize {
	return PixelSize{sizes: p.sizes.Clone()}
}

// Permute returns the pixel size reordered by order, expanding the stored
// entries to cover every referenced dimension.
func (p PixelSize) Permute(order []int) PixelSize {
	if !p.IsDefined() {
		return PixelSize{}
	}
	out := make([]Quantity, len(order))
	for i, d := range order {
		out[i] = p.Get(d)
	}
	return NewPixelSize(out...)
}

// Format joins the sizes of the first n dimensions with " x ".
func (p PixelSize) Format(n int) string {
	parts := make([]string, n)
	for d := 0; d < n; d++ {
		parts[d] = p.Get(d).String()
	}
	return strings.Join(parts, " x ")
}

// String joins the stored entries with " x ".
func (p PixelSize) String() string {
	return p.Format(p.sizes.Len())
}
