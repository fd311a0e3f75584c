// effect_dither.go - Ordered (Bayer) and Floyd-Steinberg dithering engines

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

/*
effect_dither.go - Palette quantization with dithering

Two interchangeable algorithms, both snapping the frame onto a fixed palette
through the session's NearestColorResolver:

- Ordered: the 8x8 Bayer threshold matrix is tiled over the frame and a
  per-pixel offset is added before nearest-color resolution. No inter-pixel
  dependency; deterministic.
- Error diffusion: Floyd-Steinberg, row-major, propagating the residual
  quantization error to unprocessed neighbors (7/16 right, 3/16 below-left,
  5/16 below, 1/16 below-right). Strict left-to-right, top-to-bottom data
  dependency; never parallelized within a frame.

The error buffer is a rolling pair of rows with one margin column on each
side, reused across the whole pass. No full-frame error copy is ever
allocated.

A working-resolution fraction below 1 routes the frame through a box-filter
downsample, dithers at the reduced size, and replicates back up with
nearest-neighbor sampling. The scaling path is identical for both
algorithms.
*/

package main

import "math"

// errorBuffer holds diffusion error terms for the current and next row, with
// a margin column on each side so lateral writes at the frame edge need no
// special casing. Lifetime is one dithering pass over one frame.
type errorBuffer struct {
	width int
	cur   [][3]float64
	next  [][3]float64
}

func newErrorBuffer(width int) *errorBuffer {
	return &errorBuffer{
		width: width,
		cur:   make([][3]float64, width+2),
		next:  make([][3]float64, width+2),
	}
}

// advance rolls to the next row: next becomes current, and the new next row
// is reset to zero.
func (eb *errorBuffer) advance() {
	eb.cur, eb.next = eb.next, eb.cur
	for i := range eb.next {
		eb.next[i] = [3]float64{}
	}
}

// DitheringEngine quantizes frames to a palette while scattering the
// quantization error to mask banding.
type DitheringEngine struct {
	palette  Palette
	resolver *NearestColorResolver
}

// NewDitheringEngine creates an engine bound to the session's palette and
// resolver.
func NewDitheringEngine(palette Palette, resolver *NearestColorResolver) *DitheringEngine {
	return &DitheringEngine{palette: palette, resolver: resolver}
}

// Apply dithers the frame per the configuration and returns a new frame of
// the same dimensions. The input frame is not modified.
func (e *DitheringEngine) Apply(frame *Frame, cfg EffectConfig) *Frame {
	working := frame
	scaled := cfg.DitheringResolution < 1.0
	if scaled {
		w := int(float64(frame.Width)*cfg.DitheringResolution + 0.5)
		h := int(float64(frame.Height)*cfg.DitheringResolution + 0.5)
		working = downsampleBlockAverage(frame, w, h)
	} else {
		working = frame.Clone()
	}

	switch cfg.DitheringType {
	case DITHER_DIFFUSION:
		e.diffuse(working, cfg.DitheringIntensity)
	default:
		e.ordered(working, cfg.DitheringIntensity)
	}

	if scaled {
		return upsampleNearest(working, frame.Width, frame.Height)
	}
	return working
}

// ordered applies Bayer threshold dithering in place. Safe to run per-pixel
// in any order; kept sequential to match the pipeline's cooperative model.
func (e *DitheringEngine) ordered(f *Frame, intensity float64) {
	for y := 0; y < f.Height; y++ {
		row := &bayer8x8[y&7]
		for x := 0; x < f.Width; x++ {
			threshold := (float64(row[x&7])/64.0 - 0.5) * intensity * 255.0
			i := (y*f.Width + x) * 4
			c := Color{
				R: clampByte(float64(f.Pix[i]) + threshold),
				G: clampByte(float64(f.Pix[i+1]) + threshold),
				B: clampByte(float64(f.Pix[i+2]) + threshold),
			}
			out := e.resolver.Resolve(c)
			f.Pix[i] = out.R
			f.Pix[i+1] = out.G
			f.Pix[i+2] = out.B
			f.Pix[i+3] = 0xFF
		}
	}
}

// diffuse applies Floyd-Steinberg error diffusion in place. Row-major with a
// strict left-to-right dependency; the rolling two-row buffer carries the
// error terms.
func (e *DitheringEngine) diffuse(f *Frame, intensity float64) {
	eb := newErrorBuffer(f.Width)

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			i := (y*f.Width + x) * 4
			ex := x + 1 // margin offset into the error rows

			adjR := clampFloat(float64(f.Pix[i])+eb.cur[ex][0]*intensity, 0, 255)
			adjG := clampFloat(float64(f.Pix[i+1])+eb.cur[ex][1]*intensity, 0, 255)
			adjB := clampFloat(float64(f.Pix[i+2])+eb.cur[ex][2]*intensity, 0, 255)

			out := e.resolver.Resolve(Color{
				R: byte(adjR + 0.5),
				G: byte(adjG + 0.5),
				B: byte(adjB + 0.5),
			})
			f.Pix[i] = out.R
			f.Pix[i+1] = out.G
			f.Pix[i+2] = out.B
			f.Pix[i+3] = 0xFF

			resR := adjR - float64(out.R)
			resG := adjG - float64(out.G)
			resB := adjB - float64(out.B)

			// Neighbors beyond the frame edge land in the margin columns
			// and are discarded when the buffer rolls. No wraparound.
			eb.cur[ex+1][0] += resR * FS_WEIGHT_RIGHT
			eb.cur[ex+1][1] += resG * FS_WEIGHT_RIGHT
			eb.cur[ex+1][2] += resB * FS_WEIGHT_RIGHT

			eb.next[ex-1][0] += resR * FS_WEIGHT_BELOW_LEFT
			eb.next[ex-1][1] += resG * FS_WEIGHT_BELOW_LEFT
			eb.next[ex-1][2] += resB * FS_WEIGHT_BELOW_LEFT

			eb.next[ex][0] += resR * FS_WEIGHT_BELOW
			eb.next[ex][1] += resG * FS_WEIGHT_BELOW
			eb.next[ex][2] += resB * FS_WEIGHT_BELOW

			eb.next[ex+1][0] += resR * FS_WEIGHT_BELOW_RIGHT
			eb.next[ex+1][1] += resG * FS_WEIGHT_BELOW_RIGHT
			eb.next[ex+1][2] += resB * FS_WEIGHT_BELOW_RIGHT
		}
		eb.advance()
	}
}

func clampByte(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(math.Round(v))
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
