// effect_pixelate_test.go - Test suite for the block pixelation engine

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

// =============================================================================
// Block Averaging
// =============================================================================

func TestPixelate_BlocksAreUniform(t *testing.T) {
	e := NewPixelationEngine()
	out := e.Apply(gradientFrame(32, 32), 8)

	for by := 0; by < 32; by += 8 {
		for bx := 0; bx < 32; bx += 8 {
			want := out.At(bx, by)
			for y := by; y < by+8; y++ {
				for x := bx; x < bx+8; x++ {
					if got := out.At(x, y); got != want {
						t.Fatalf("Block at (%d,%d): pixel (%d,%d) = %+v, expected %+v",
							bx, by, x, y, got, want)
					}
				}
			}
		}
	}
}

func TestPixelate_ExactAverage(t *testing.T) {
	e := NewPixelationEngine()

	// 2x2 frame: three pixels at 0, one at 100. Integer average is 25.
	in := NewFrame(2, 2)
	in.Set(1, 1, Color{R: 100, G: 100, B: 100, A: 0xFF})
	out := e.Apply(in, 2)

	if got := out.At(0, 0); got.R != 25 || got.G != 25 || got.B != 25 {
		t.Errorf("Expected average 25, got %+v", got)
	}
}

func TestPixelate_DimensionsUnchanged(t *testing.T) {
	e := NewPixelationEngine()
	out := e.Apply(gradientFrame(37, 23), 8)
	if out.Width != 37 || out.Height != 23 {
		t.Errorf("Expected 37x23 output, got %dx%d", out.Width, out.Height)
	}
}

func TestPixelate_PartialEdgeBlocksAveraged(t *testing.T) {
	e := NewPixelationEngine()

	// 5 wide, block 4: the right edge block is 1 pixel wide.
	in := NewFrame(5, 4)
	in.Fill(Color{R: 10, G: 10, B: 10, A: 0xFF})
	for y := 0; y < 4; y++ {
		in.Set(4, y, Color{R: 200, G: 200, B: 200, A: 0xFF})
	}
	out := e.Apply(in, 4)

	if got := out.At(4, 0); got.R != 200 {
		t.Errorf("Edge block average = %d, expected 200", got.R)
	}
	if got := out.At(0, 0); got.R != 10 {
		t.Errorf("Full block average = %d, expected 10", got.R)
	}
}

// =============================================================================
// Degenerate Block Sizes
// =============================================================================

func TestPixelate_BlockSizeOneIsCopy(t *testing.T) {
	e := NewPixelationEngine()
	in := gradientFrame(16, 16)
	out := e.Apply(in, 1)

	if !bytes.Equal(in.Pix, out.Pix) {
		t.Error("Block size 1 changed pixel data")
	}
	// Distinct backing storage: the caller still owns the input.
	out.Pix[0] ^= 0xFF
	if in.Pix[0] == out.Pix[0] {
		t.Error("Block size 1 returned an aliased buffer")
	}
}

func TestPixelate_BlockLargerThanFrame(t *testing.T) {
	e := NewPixelationEngine()
	out := e.Apply(gradientFrame(8, 8), 64)

	want := out.At(0, 0)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := out.At(x, y); got != want {
				t.Fatalf("Expected single uniform block, pixel (%d,%d) = %+v", x, y, got)
			}
		}
	}
}
