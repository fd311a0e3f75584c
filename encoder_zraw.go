// encoder_zraw.go - Zstandard-compressed raw frame stream encoder

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

/*
encoder_zraw.go - ILZR container

A minimal intermediate format for lossless hand-off to external tooling:

  offset  size  field
  0       4     magic "ILZR"
  4       4     version (LE uint32, currently 1)
  8       4     width   (LE uint32)
  12      4     height  (LE uint32)
  16      4     fps     (LE uint32)
  20      4     frame count (LE uint32)
  24      ...   zstd stream of frames

Inside the zstd stream each frame is a LE uint32 display duration in
milliseconds followed by width*height*4 bytes of RGBA.
*/

package main

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/klauspost/compress/zstd"
)

const (
	zrawMagic   = "ILZR"
	zrawVersion = 1
)

// ZRawEncoder streams frames through a zstd writer as they arrive; only the
// header waits for Finish (it carries the frame count).
type ZRawEncoder struct {
	path string

	width, height, fps int
	frameCount         uint32

	compressed bytes.Buffer
	zenc       *zstd.Encoder
	begun      bool
}

// NewZRawEncoder creates an encoder writing to path on Finish.
func NewZRawEncoder(path string) *ZRawEncoder {
	return &ZRawEncoder{path: path}
}

// Begin fixes the geometry and opens the compression stream.
func (e *ZRawEncoder) Begin(width, height, fps int) error {
	if width <= 0 || height <= 0 || fps <= 0 {
		return &ExportError{Operation: "zraw", Details: "invalid geometry or frame rate"}
	}
	zenc, err := zstd.NewWriter(&e.compressed,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		return &ExportError{Operation: "zraw", Details: "zstd writer", Err: err}
	}
	e.width = width
	e.height = height
	e.fps = fps
	e.zenc = zenc
	e.begun = true
	return nil
}

// WriteFrame compresses one frame into the stream.
func (e *ZRawEncoder) WriteFrame(frame *Frame, displayDurationMs int) error {
	if !e.begun {
		return &ExportError{Operation: "zraw", Details: "WriteFrame before Begin"}
	}
	if frame.Width != e.width || frame.Height != e.height {
		return &ExportError{Operation: "zraw", Details: "frame dimensions changed mid-stream"}
	}
	var dur [4]byte
	binary.LittleEndian.PutUint32(dur[:], uint32(displayDurationMs))
	if _, err := e.zenc.Write(dur[:]); err != nil {
		return &ExportError{Operation: "zraw", Details: "compress frame header", Err: err}
	}
	if _, err := e.zenc.Write(frame.Pix); err != nil {
		return &ExportError{Operation: "zraw", Details: "compress frame", Err: err}
	}
	e.frameCount++
	return nil
}

// Finish closes the compression stream and writes header plus payload.
func (e *ZRawEncoder) Finish() (string, error) {
	if !e.begun || e.frameCount == 0 {
		return "", &ExportError{Operation: "zraw", Details: "no frames", Err: ErrNoFramesCaptured}
	}
	if err := e.zenc.Close(); err != nil {
		return "", &ExportError{Operation: "zraw", Details: "close zstd stream", Err: err}
	}

	var out bytes.Buffer
	out.Grow(24 + e.compressed.Len())
	out.WriteString(zrawMagic)
	for _, v := range []uint32{zrawVersion, uint32(e.width), uint32(e.height), uint32(e.fps), e.frameCount} {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		out.Write(b[:])
	}
	out.Write(e.compressed.Bytes())

	if err := os.WriteFile(e.path, out.Bytes(), 0o644); err != nil {
		return "", &ExportError{Operation: "zraw", Details: "write artifact", Err: err}
	}
	return e.path, nil
}

// Abort closes the stream and discards everything buffered.
func (e *ZRawEncoder) Abort() {
	if e.zenc != nil {
		_ = e.zenc.Close()
	}
	e.compressed.Reset()
	e.frameCount = 0
	e.begun = false
}
