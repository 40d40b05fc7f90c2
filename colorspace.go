package ndimage

import "sort"

// colorSpaces maps known color-space names to their channel counts.
var colorSpaces = map[string]int{
	"grey": 1,
	"RGB":  3,
	"sRGB": 3,
	"CMY":  3,
	"CMYK": 4,
	"HSI":  3,
	"ICH":  3,
	"ISH":  3,
	"HCV":  3,
	"HSV":  3,
	"XYZ":  3,
	"Yxy":  3,
	"Lab":  3,
	"Luv":  3,
	"LCH":  3,
}

// ColorSpaceChannels returns the number of channels of the named color
// space and whether the name is known.
func ColorSpaceChannels(name string) (int, bool) {
	n, ok := colorSpaces[name]
	return n, ok
}

// ColorSpaces returns the known color-space names, sorted.
func ColorSpaces() []string {
	names := make([]string, 0, len(colorSpaces))
	for name := range colorSpaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
