// frame.go - RGBA frame buffer for Intuition Loop

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"image"
	"image/color"
)

// Frame is a width x height RGBA8 pixel buffer. A Frame is owned by exactly
// one pipeline phase at a time; hand-offs between phases go through Clone()
// so no two phases ever alias the same backing slice.
type Frame struct {
	Pix    []byte // RGBA, 4 bytes per pixel, row-major
	Width  int
	Height int
}

// NewFrame allocates a zeroed frame of the given dimensions.
func NewFrame(width, height int) *Frame {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &Frame{
		Pix:    make([]byte, width*height*4),
		Width:  width,
		Height: height,
	}
}

// FrameFromPixels wraps an existing RGBA buffer. The buffer must be exactly
// width*height*4 bytes; ownership transfers to the returned frame.
func FrameFromPixels(pixels []byte, width, height int) (*Frame, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel buffer size %d does not match %dx%d RGBA", len(pixels), width, height)
	}
	return &Frame{Pix: pixels, Width: width, Height: height}, nil
}

// Clone returns a deep copy for copy-on-handoff between pipeline phases.
func (f *Frame) Clone() *Frame {
	pix := make([]byte, len(f.Pix))
	copy(pix, f.Pix)
	return &Frame{Pix: pix, Width: f.Width, Height: f.Height}
}

// At returns the pixel at (x, y). Out-of-bounds coordinates return black.
func (f *Frame) At(x, y int) Color {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return Color{}
	}
	i := (y*f.Width + x) * 4
	return Color{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: f.Pix[i+3]}
}

// Set writes the pixel at (x, y). Out-of-bounds writes are ignored.
func (f *Frame) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	i := (y*f.Width + x) * 4
	f.Pix[i] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
	f.Pix[i+3] = c.A
}

// Fill sets every pixel to the given color.
func (f *Frame) Fill(c Color) {
	for i := 0; i < len(f.Pix); i += 4 {
		f.Pix[i] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
		f.Pix[i+3] = c.A
	}
}

// ToRGBA converts the frame to an image.RGBA sharing no memory with the frame.
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	copy(img.Pix, f.Pix)
	return img
}

// ToPaletted snaps the frame onto the given palette using the resolver.
// Used by the GIF encoder, which needs indexed frames.
func (f *Frame) ToPaletted(pal Palette, resolver *NearestColorResolver) *image.Paletted {
	cp := make(color.Palette, len(pal.Colors))
	for i, c := range pal.Colors {
		cp[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	img := image.NewPaletted(image.Rect(0, 0, f.Width, f.Height), cp)

	index := make(map[uint32]uint8, len(pal.Colors))
	for i, c := range pal.Colors {
		key := packRGB(c.R, c.G, c.B)
		if _, ok := index[key]; !ok {
			index[key] = uint8(i)
		}
	}

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			nearest := resolver.Resolve(c)
			img.SetColorIndex(x, y, index[packRGB(nearest.R, nearest.G, nearest.B)])
		}
	}
	return img
}

// FrameFromImage copies an image into a new frame.
func FrameFromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	f := NewFrame(bounds.Dx(), bounds.Dy())
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			f.Set(x, y, Color{R: byte(r >> 8), G: byte(g >> 8), B: byte(b >> 8), A: byte(a >> 8)})
		}
	}
	return f
}
