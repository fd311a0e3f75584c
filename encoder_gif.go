// encoder_gif.go - Looping GIF stream encoder

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import (
	"bytes"
	"image"
	"image/gif"
	"os"
)

// GIFEncoder encodes the frame stream as an infinitely looping GIF. Frames
// are indexed against the export palette; the encoder keeps its own resolver
// so it never shares cache state with the session's effect engines.
type GIFEncoder struct {
	path     string
	palette  Palette
	resolver *NearestColorResolver

	width, height int
	frames        []*image.Paletted
	delays        []int // centiseconds, GIF native unit
	begun         bool
}

// NewGIFEncoder creates an encoder writing to path on Finish.
func NewGIFEncoder(path string, palette Palette) *GIFEncoder {
	return &GIFEncoder{
		path:     path,
		palette:  palette,
		resolver: NewNearestColorResolver(palette, COLOR_CACHE_CAPACITY),
	}
}

// Begin fixes the geometry. The GIF container carries per-frame delays, so
// the frame rate itself is not recorded.
func (e *GIFEncoder) Begin(width, height, fps int) error {
	if width <= 0 || height <= 0 {
		return &ExportError{Operation: "gif", Details: "invalid dimensions"}
	}
	e.width = width
	e.height = height
	e.begun = true
	return nil
}

// WriteFrame indexes and appends one frame.
func (e *GIFEncoder) WriteFrame(frame *Frame, displayDurationMs int) error {
	if !e.begun {
		return &ExportError{Operation: "gif", Details: "WriteFrame before Begin"}
	}
	if frame.Width != e.width || frame.Height != e.height {
		return &ExportError{Operation: "gif", Details: "frame dimensions changed mid-stream"}
	}
	e.frames = append(e.frames, frame.ToPaletted(e.palette, e.resolver))
	e.delays = append(e.delays, displayDurationMs/10)
	return nil
}

// Finish writes the assembled GIF. LoopCount 0 makes the clip loop forever,
// which is the point of a seamless-loop export.
func (e *GIFEncoder) Finish() (string, error) {
	if len(e.frames) == 0 {
		return "", &ExportError{Operation: "gif", Details: "no frames", Err: ErrNoFramesCaptured}
	}
	g := &gif.GIF{
		Image:     e.frames,
		Delay:     e.delays,
		LoopCount: 0,
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return "", &ExportError{Operation: "gif", Details: "encode", Err: err}
	}
	if err := os.WriteFile(e.path, buf.Bytes(), 0o644); err != nil {
		return "", &ExportError{Operation: "gif", Details: "write artifact", Err: err}
	}
	return e.path, nil
}

// Abort discards all buffered frames; nothing touches the filesystem until
// Finish, so there is no partial artifact to clean up.
func (e *GIFEncoder) Abort() {
	e.frames = nil
	e.delays = nil
}
