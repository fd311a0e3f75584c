// render_surface.go - Renderer boundary and built-in seamless-loop scene

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"math"
)

// RenderSurface is the boundary to the renderer that produces each raw
// frame. The capture pipeline only ever reads from it; the scene and camera
// math behind it live outside this core.
type RenderSurface interface {
	// Advance moves the scene to absolute time t (seconds since session
	// start). Implementations with a periodic scene wrap t internally.
	Advance(t float64)

	// ReadPixels returns an RGBA8 copy of the given region of the current
	// frame. The returned buffer is owned by the caller.
	ReadPixels(x, y, width, height int) ([]byte, error)
}

// LoopRenderer is the built-in procedural test scene: a plasma field whose
// every term is a function of the loop phase 2*pi*t/loopDuration, so the
// frame at t=0 and the frame at t=loopDuration are bit-identical and the
// exported clip loops seamlessly.
type LoopRenderer struct {
	width, height int
	loopDuration  float64
	frame         *Frame
}

// NewLoopRenderer creates the scene at the given output size.
func NewLoopRenderer(width, height int, loopDuration float64) *LoopRenderer {
	if loopDuration <= 0 {
		loopDuration = 1
	}
	return &LoopRenderer{
		width:        width,
		height:       height,
		loopDuration: loopDuration,
		frame:        NewFrame(width, height),
	}
}

// Advance renders the plasma field at loop phase t.
func (r *LoopRenderer) Advance(t float64) {
	phase := 2 * math.Pi * math.Mod(t, r.loopDuration) / r.loopDuration
	cx := float64(r.width) / 2
	cy := float64(r.height) / 2

	for y := 0; y < r.height; y++ {
		fy := float64(y)
		for x := 0; x < r.width; x++ {
			fx := float64(x)
			v := math.Sin(fx/16+phase) +
				math.Sin(fy/9-phase) +
				math.Sin((fx+fy)/24+2*phase) +
				math.Sin(math.Hypot(fx-cx, fy-cy)/12-phase)
			v /= 4 // -1..1

			i := (y*r.width + x) * 4
			r.frame.Pix[i] = byte((math.Sin(v*math.Pi) + 1) * 127.5)
			r.frame.Pix[i+1] = byte((math.Sin(v*math.Pi+2*math.Pi/3) + 1) * 127.5)
			r.frame.Pix[i+2] = byte((math.Sin(v*math.Pi+4*math.Pi/3) + 1) * 127.5)
			r.frame.Pix[i+3] = 0xFF
		}
	}
}

// ReadPixels copies out the requested region of the current frame.
func (r *LoopRenderer) ReadPixels(x, y, width, height int) ([]byte, error) {
	if x < 0 || y < 0 || width <= 0 || height <= 0 ||
		x+width > r.width || y+height > r.height {
		return nil, fmt.Errorf("read region %d,%d %dx%d outside %dx%d surface",
			x, y, width, height, r.width, r.height)
	}
	out := make([]byte, width*height*4)
	for row := 0; row < height; row++ {
		src := ((y+row)*r.width + x) * 4
		copy(out[row*width*4:(row+1)*width*4], r.frame.Pix[src:src+width*4])
	}
	return out, nil
}
