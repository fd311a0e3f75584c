// capture_session.go - Per-export session state and frame ownership

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import (
	"sync/atomic"
)

// PipelineState tracks the export state machine.
type PipelineState int

const (
	STATE_IDLE PipelineState = iota
	STATE_CAPTURING
	STATE_PROCESSING
	STATE_PLAYBACK_ENCODING
	STATE_FINISHED
	STATE_ABORTED
	STATE_FAILED
)

func (s PipelineState) String() string {
	switch s {
	case STATE_IDLE:
		return "Idle"
	case STATE_CAPTURING:
		return "Capturing"
	case STATE_PROCESSING:
		return "Processing"
	case STATE_PLAYBACK_ENCODING:
		return "PlaybackEncoding"
	case STATE_FINISHED:
		return "Finished"
	case STATE_ABORTED:
		return "Aborted"
	case STATE_FAILED:
		return "Failed"
	}
	return "Unknown"
}

// capturedFrame pairs a raw frame with the elapsed capture time that
// produced it.
type capturedFrame struct {
	frame     *Frame
	timestamp float64 // seconds since session start
}

// CaptureSession owns every mutable resource of one export: the frame
// buffers, the nearest-color cache behind the resolver, the effect backend
// and the abort flag. A session is created when an export starts and torn
// down when it finishes, aborts or fails; the shared caches live and die
// with it, so two sessions never touch the same state. Only one session may
// be in flight per pipeline.
type CaptureSession struct {
	config   ExportConfig
	palette  Palette
	resolver *NearestColorResolver
	backend  EffectBackend
	mapper   *ASCIICellMapper

	targetFrames int
	interval     float64 // seconds per frame
	stopTime     float64 // capture cutoff, fractionally before the loop boundary

	raw       []capturedFrame
	processed []*Frame
	asciiText []string // per-frame text grids, ASCII mode only

	state PipelineState
	abort atomic.Bool
}

// newCaptureSession builds the session and its owned caches/engines.
func newCaptureSession(cfg ExportConfig) (*CaptureSession, error) {
	palette, err := PaletteByID(cfg.Effects.PaletteID)
	if err != nil {
		return nil, err
	}
	resolver := NewNearestColorResolver(palette, COLOR_CACHE_CAPACITY)
	backend, err := NewEffectBackend(EFFECT_BACKEND_AUTO, palette, resolver)
	if err != nil {
		return nil, err
	}
	if err := backend.Init(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	target := cfg.TargetFrameCount()
	interval := cfg.FrameInterval()
	return &CaptureSession{
		config:       cfg,
		palette:      palette,
		resolver:     resolver,
		backend:      backend,
		mapper:       NewASCIICellMapper(),
		targetFrames: target,
		interval:     interval,
		stopTime:     float64(target)*interval - CAPTURE_STOP_MARGIN*interval,
		raw:          make([]capturedFrame, 0, target),
		state:        STATE_IDLE,
	}, nil
}

// Abort requests cooperative cancellation. Observed at the next tick or
// iteration boundary in whichever phase is active.
func (s *CaptureSession) Abort() {
	s.abort.Store(true)
}

// Aborted reports whether cancellation was requested.
func (s *CaptureSession) Aborted() bool {
	return s.abort.Load()
}

// State returns the current pipeline state.
func (s *CaptureSession) State() PipelineState {
	return s.state
}

// teardown releases every buffer and cache the session owns.
func (s *CaptureSession) teardown() {
	s.raw = nil
	s.processed = nil
	s.asciiText = nil
	s.resolver.Clear()
	if s.backend != nil {
		s.backend.Destroy()
	}
}
