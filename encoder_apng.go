// encoder_apng.go - APNG image-sequence encoder

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import (
	"image"

	"github.com/setanarut/apng"
)

// APNGEncoder is the batch image-sequence encoder: frames are buffered in
// full and written as one animated PNG on Finish. Truecolor, no palette
// indexing, so it preserves whatever the effect stack produced exactly.
type APNGEncoder struct {
	path string

	width, height int
	delay         int // centiseconds per frame
	frames        []image.Image
	begun         bool
}

// NewAPNGEncoder creates an encoder writing to path on Finish.
func NewAPNGEncoder(path string) *APNGEncoder {
	return &APNGEncoder{path: path}
}

// Begin fixes the geometry and derives the per-frame delay from the target
// frame rate.
func (e *APNGEncoder) Begin(width, height, fps int) error {
	if width <= 0 || height <= 0 || fps <= 0 {
		return &ExportError{Operation: "apng", Details: "invalid geometry or frame rate"}
	}
	e.width = width
	e.height = height
	e.delay = 100 / fps
	if e.delay < 1 {
		e.delay = 1
	}
	e.begun = true
	return nil
}

// WriteFrame buffers one frame.
func (e *APNGEncoder) WriteFrame(frame *Frame, displayDurationMs int) error {
	if !e.begun {
		return &ExportError{Operation: "apng", Details: "WriteFrame before Begin"}
	}
	if frame.Width != e.width || frame.Height != e.height {
		return &ExportError{Operation: "apng", Details: "frame dimensions changed mid-stream"}
	}
	e.frames = append(e.frames, frame.ToRGBA())
	return nil
}

// Finish writes the animated PNG.
func (e *APNGEncoder) Finish() (string, error) {
	if len(e.frames) == 0 {
		return "", &ExportError{Operation: "apng", Details: "no frames", Err: ErrNoFramesCaptured}
	}
	apng.Save(e.path, e.frames, uint16(e.delay))
	return e.path, nil
}

// Abort discards all buffered frames.
func (e *APNGEncoder) Abort() {
	e.frames = nil
}
