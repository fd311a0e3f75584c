// effect_palette.go - Color value type and fixed palettes

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import "fmt"

// Color is an immutable RGBA8 value.
type Color struct {
	R, G, B, A byte
}

// DistanceSq returns the squared Euclidean distance to another color in RGB
// space. Alpha is ignored; palette snapping is a color-only operation.
func (c Color) DistanceSq(o Color) int {
	dr := int(c.R) - int(o.R)
	dg := int(c.G) - int(o.G)
	db := int(c.B) - int(o.B)
	return dr*dr + dg*dg + db*db
}

// packRGB packs the three color channels into a 24-bit cache key.
func packRGB(r, g, b byte) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Palette is an ordered, fixed set of reference colors. Never mutated after
// construction; the non-empty invariant is enforced by NewPalette.
type Palette struct {
	Colors []Color
}

// NewPalette builds a palette from at least one color. The slice is copied so
// callers cannot mutate the palette afterwards.
func NewPalette(colors []Color) (Palette, error) {
	if len(colors) == 0 {
		return Palette{}, fmt.Errorf("palette must contain at least one color")
	}
	own := make([]Color, len(colors))
	copy(own, colors)
	return Palette{Colors: own}, nil
}

// PaletteByID returns one of the built-in palettes.
func PaletteByID(id PaletteID) (Palette, error) {
	colors, ok := builtinPalettes[id]
	if !ok {
		return Palette{}, fmt.Errorf("unknown palette id %d", id)
	}
	return NewPalette(colors)
}

// Size returns the number of palette entries.
func (p Palette) Size() int {
	return len(p.Colors)
}
