// effect_dither_test.go - Test suite for the dithering engines

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import (
	"bytes"
	"testing"
)

func newDitherFixture(t *testing.T, id PaletteID) *DitheringEngine {
	t.Helper()
	palette, err := PaletteByID(id)
	if err != nil {
		t.Fatalf("PaletteByID failed: %v", err)
	}
	return NewDitheringEngine(palette, NewNearestColorResolver(palette, 0))
}

func gradientFrame(width, height int) *Frame {
	f := NewFrame(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			f.Set(x, y, Color{
				R: byte(x * 255 / max(width-1, 1)),
				G: byte(y * 255 / max(height-1, 1)),
				B: byte((x + y) * 255 / max(width+height-2, 1)),
				A: 0xFF,
			})
		}
	}
	return f
}

func assertAllPaletteColors(t *testing.T, f *Frame, palette Palette) {
	t.Helper()
	members := make(map[uint32]bool, palette.Size())
	for _, c := range palette.Colors {
		members[packRGB(c.R, c.G, c.B)] = true
	}
	for i := 0; i < len(f.Pix); i += 4 {
		if !members[packRGB(f.Pix[i], f.Pix[i+1], f.Pix[i+2])] {
			t.Fatalf("Pixel %d (%d,%d,%d) is not a palette color",
				i/4, f.Pix[i], f.Pix[i+1], f.Pix[i+2])
		}
		if f.Pix[i+3] != 0xFF {
			t.Fatalf("Pixel %d alpha %d, expected opaque", i/4, f.Pix[i+3])
		}
	}
}

// =============================================================================
// Ordered (Bayer) Dithering
// =============================================================================

func TestDither_OrderedOutputsOnlyPaletteColors(t *testing.T) {
	e := newDitherFixture(t, PALETTE_GAMEBOY)
	cfg := DefaultEffectConfig()
	cfg.DitheringType = DITHER_ORDERED
	cfg.DitheringIntensity = 0.8

	out := e.Apply(gradientFrame(32, 32), cfg)
	assertAllPaletteColors(t, out, e.palette)
}

func TestDither_OrderedZeroIntensityIsPureSnap(t *testing.T) {
	e := newDitherFixture(t, PALETTE_MONO)
	cfg := DefaultEffectConfig()
	cfg.DitheringType = DITHER_ORDERED
	cfg.DitheringIntensity = 0

	// With no threshold offset, every pixel below mid-gray snaps to black.
	in := NewFrame(16, 16)
	in.Fill(Color{R: 40, G: 40, B: 40, A: 0xFF})
	out := e.Apply(in, cfg)

	want := Color{A: 0xFF}
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			if got := out.At(x, y); got != want {
				t.Fatalf("Pixel (%d,%d) = %+v, expected black snap", x, y, got)
			}
		}
	}
}

func TestDither_OrderedIsDeterministic(t *testing.T) {
	e := newDitherFixture(t, PALETTE_C64)
	cfg := DefaultEffectConfig()
	cfg.DitheringType = DITHER_ORDERED

	in := gradientFrame(24, 24)
	a := e.Apply(in, cfg)
	b := e.Apply(in, cfg)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Two ordered passes over the same frame differ")
	}
}

func TestDither_InputFrameUntouched(t *testing.T) {
	e := newDitherFixture(t, PALETTE_GAMEBOY)
	cfg := DefaultEffectConfig()

	in := gradientFrame(16, 16)
	before := make([]byte, len(in.Pix))
	copy(before, in.Pix)

	e.Apply(in, cfg)
	if !bytes.Equal(before, in.Pix) {
		t.Error("Apply modified the input frame")
	}
}

// =============================================================================
// Floyd-Steinberg Error Diffusion
// =============================================================================

func TestDither_DiffusionOutputsOnlyPaletteColors(t *testing.T) {
	e := newDitherFixture(t, PALETTE_GRAYSCALE4)
	cfg := DefaultEffectConfig()
	cfg.DitheringType = DITHER_DIFFUSION
	cfg.DitheringIntensity = 1.0

	out := e.Apply(gradientFrame(32, 32), cfg)
	assertAllPaletteColors(t, out, e.palette)
}

func TestDither_DiffusionPaletteFrameIsIdentity(t *testing.T) {
	e := newDitherFixture(t, PALETTE_GAMEBOY)
	cfg := DefaultEffectConfig()
	cfg.DitheringType = DITHER_DIFFUSION
	cfg.DitheringIntensity = 1.0

	// A frame already on the palette carries zero quantization error, so
	// diffusion must not disturb a single pixel.
	in := NewFrame(16, 16)
	in.Fill(e.palette.Colors[1])
	out := e.Apply(in, cfg)
	if !bytes.Equal(in.Pix, out.Pix) {
		t.Error("Diffusion altered a frame already on the palette")
	}
}

func TestDither_DiffusionSingleColumnFrame(t *testing.T) {
	e := newDitherFixture(t, PALETTE_MONO)
	cfg := DefaultEffectConfig()
	cfg.DitheringType = DITHER_DIFFUSION
	cfg.DitheringIntensity = 1.0

	// One-pixel-wide frame pushes every lateral diffusion write into the
	// margin columns.
	in := NewFrame(1, 32)
	in.Fill(Color{R: 128, G: 128, B: 128, A: 0xFF})
	out := e.Apply(in, cfg)
	assertAllPaletteColors(t, out, e.palette)
}

// =============================================================================
// Working-Resolution Scaling
// =============================================================================

func TestDither_ReducedResolutionKeepsDimensions(t *testing.T) {
	e := newDitherFixture(t, PALETTE_GAMEBOY)

	for _, dt := range []DitherType{DITHER_ORDERED, DITHER_DIFFUSION} {
		cfg := DefaultEffectConfig()
		cfg.DitheringType = dt
		cfg.DitheringResolution = 0.5

		in := gradientFrame(40, 30)
		out := e.Apply(in, cfg)
		if out.Width != 40 || out.Height != 30 {
			t.Errorf("Type %d: expected 40x30 output, got %dx%d", dt, out.Width, out.Height)
		}
		assertAllPaletteColors(t, out, e.palette)
	}
}

func TestDither_ReducedResolutionReplicatesBlocks(t *testing.T) {
	e := newDitherFixture(t, PALETTE_MONO)
	cfg := DefaultEffectConfig()
	cfg.DitheringType = DITHER_ORDERED
	cfg.DitheringIntensity = 0
	cfg.DitheringResolution = 0.5

	out := e.Apply(gradientFrame(32, 32), cfg)

	// Nearest-neighbor upsampling from half resolution means each 2x2 block
	// holds one color.
	for y := 0; y < out.Height; y += 2 {
		for x := 0; x < out.Width; x += 2 {
			c := out.At(x, y)
			if out.At(x+1, y) != c || out.At(x, y+1) != c || out.At(x+1, y+1) != c {
				t.Fatalf("2x2 block at (%d,%d) is not uniform", x, y)
			}
		}
	}
}

// =============================================================================
// Scaling Primitives
// =============================================================================

func TestScale_DownsampleExactAverage(t *testing.T) {
	in := NewFrame(4, 2)
	// Left half 100, right half 200.
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			v := byte(100)
			if x >= 2 {
				v = 200
			}
			in.Set(x, y, Color{R: v, G: v, B: v, A: 0xFF})
		}
	}

	out := downsampleBlockAverage(in, 2, 1)
	if out.Width != 2 || out.Height != 1 {
		t.Fatalf("Expected 2x1 output, got %dx%d", out.Width, out.Height)
	}
	if got := out.At(0, 0); got.R != 100 {
		t.Errorf("Left average = %d, expected 100", got.R)
	}
	if got := out.At(1, 0); got.R != 200 {
		t.Errorf("Right average = %d, expected 200", got.R)
	}
}

func TestScale_UpsampleReplicates(t *testing.T) {
	in := NewFrame(2, 1)
	in.Set(0, 0, Color{R: 10, A: 0xFF})
	in.Set(1, 0, Color{R: 20, A: 0xFF})

	out := upsampleNearest(in, 4, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := out.At(x, y).R; got != 10 {
				t.Errorf("Pixel (%d,%d) = %d, expected 10", x, y, got)
			}
		}
		for x := 2; x < 4; x++ {
			if got := out.At(x, y).R; got != 20 {
				t.Errorf("Pixel (%d,%d) = %d, expected 20", x, y, got)
			}
		}
	}
}
