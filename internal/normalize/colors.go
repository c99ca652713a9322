package normalize

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// String renders the color as "rgb(r, g, b)".
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex renders the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// palette is the 20-step categorical "tab20" table.
var palette = []Color{
	{0x1f, 0x77, 0xb4}, {0xae, 0xc7, 0xe8},
	{0xff, 0x7f, 0x0e}, {0xff, 0xbb, 0x78},
	{0x2c, 0xa0, 0x2c}, {0x98, 0xdf, 0x8a},
	{0xd6, 0x27, 0x28}, {0xff, 0x98, 0x96},
	{0x94, 0x67, 0xbd}, {0xc5, 0xb0, 0xd5},
	{0x8c, 0x56, 0x4b}, {0xc4, 0x9c, 0x94},
	{0xe3, 0x77, 0xc2}, {0xf7, 0xb6, 0xd2},
	{0x7f, 0x7f, 0x7f}, {0xc7, 0xc7, 0xc7},
	{0xbc, 0xbd, 0x22}, {0xdb, 0xdb, 0x8d},
	{0x17, 0xbe, 0xcf}, {0x9e, 0xda, 0xe5},
}

// PaletteSize is the number of distinct colors AssignColors can produce.
const PaletteSize = 20

// AssignColors samples n evenly spaced positions over the palette.
// The result is deterministic, and distinct for n <= PaletteSize.
func AssignColors(n int) []Color {
	switch {
	case n <= 0:
		return []Color{}
	case n == 1:
		return []Color{palette[0]}
	}

	positions := floats.Span(make([]float64, n), 0, 1)
	colors := make([]Color, n)
	for i, x := range positions {
		idx := int(x * float64(len(palette)))
		if idx >= len(palette) {
			idx = len(palette) - 1
		}
		colors[i] = palette[idx]
	}
	return colors
}
