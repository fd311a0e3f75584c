// encoder_interface.go - Encoder boundary and export error taxonomy

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import (
	"errors"
	"fmt"
)

// ExportError provides detailed error context for export operations.
type ExportError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *ExportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("export %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("export %s failed: %s", e.Operation, e.Details)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Sentinel errors for the export state machine.
var (
	// ErrExportAborted is the clean cancellation acknowledgment; not a
	// failure.
	ErrExportAborted = errors.New("export aborted")

	// ErrExportInFlight rejects a second export while one session owns the
	// pipeline's shared resources.
	ErrExportInFlight = errors.New("an export is already in flight")

	// ErrNoFramesCaptured is session-fatal: the capture phase produced
	// nothing to encode.
	ErrNoFramesCaptured = errors.New("no frames captured")
)

// StreamEncoder accepts an ordered stream of frames with per-frame display
// durations and produces the finished artifact on Finish. Both encoder
// kinds - continuous video-style and batch image-sequence - consume frames
// in the same strict streaming order.
type StreamEncoder interface {
	// Begin fixes the geometry and target frame rate. Called exactly once
	// before the first frame.
	Begin(width, height, fps int) error

	// WriteFrame appends the next frame. Frames arrive in strictly
	// increasing index order; the encoder must not reorder or drop them.
	WriteFrame(frame *Frame, displayDurationMs int) error

	// Finish flushes the artifact and returns its location.
	Finish() (string, error)

	// Abort discards all partially encoded output.
	Abort()
}
