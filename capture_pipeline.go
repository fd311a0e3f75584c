// capture_pipeline.go - Multi-phase capture/process/encode export pipeline

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

/*
capture_pipeline.go - Export orchestration

State machine: Idle -> Capturing -> Processing -> PlaybackEncoding ->
{Finished, Aborted, Failed}.

Capturing is elapsed-time driven: every scheduler tick recomputes
expectedFrameIndex = floor(elapsed * fps) and captures exactly one raw frame
when the index advances. Counting timer firings instead would accumulate
drift and duplicate boundary frames under jitter. Capture stops a tenth of a
frame interval before the exact loop boundary so the first frame of the next
loop is never duplicated.

Processing applies the effect stack with no real-time deadline and yields
between every few frames to keep the host responsive. PlaybackEncoding
replays processed frames to the encoder, re-anchoring each frame's due time
to sessionStart + index*interval.

All phases run on the caller's goroutine; suspension points are the ticks,
the yield boundaries and the scheduled deliveries. Nothing suspends
mid-algorithm. The abort flag is polled at the start of every tick and
iteration in every phase.
*/

package main

import (
	"fmt"
	"sync"
	"time"
)

// ExportResult describes a finished export.
type ExportResult struct {
	OutputPath     string
	FramesCaptured int
	FramesEncoded  int
	Accelerated    bool // whether the GPU path executed the effect passes
}

// FrameCapturePipeline drives one export at a time from raw capture through
// encoded artifact.
type FrameCapturePipeline struct {
	surface RenderSurface
	encoder StreamEncoder
	clock   Clock
	preview PreviewOutput // optional; nil when exporting headless

	mu      sync.Mutex
	session *CaptureSession
}

// NewFrameCapturePipeline wires the pipeline to its collaborators. A nil
// clock selects the wall clock.
func NewFrameCapturePipeline(surface RenderSurface, encoder StreamEncoder, clock Clock) *FrameCapturePipeline {
	if clock == nil {
		clock = NewRealClock()
	}
	return &FrameCapturePipeline{
		surface: surface,
		encoder: encoder,
		clock:   clock,
	}
}

// SetPreview attaches a preview output that receives each processed frame
// during playback encoding.
func (p *FrameCapturePipeline) SetPreview(preview PreviewOutput) {
	p.preview = preview
}

// State reports the active session's state, or Idle between sessions.
func (p *FrameCapturePipeline) State() PipelineState {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return STATE_IDLE
	}
	return p.session.State()
}

// Abort requests cooperative cancellation of the in-flight export.
func (p *FrameCapturePipeline) Abort() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session != nil {
		p.session.Abort()
	}
}

// Export runs the full state machine synchronously and returns the result.
// A second export while one is in flight is rejected: the session owns the
// shared caches exclusively.
func (p *FrameCapturePipeline) Export(cfg ExportConfig) (*ExportResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &ExportError{Operation: "configuration", Details: "invalid export request", Err: err}
	}

	p.mu.Lock()
	if p.session != nil {
		p.mu.Unlock()
		return nil, ErrExportInFlight
	}
	session, err := newCaptureSession(cfg)
	if err != nil {
		p.mu.Unlock()
		return nil, &ExportError{Operation: "session", Details: "session construction", Err: err}
	}
	p.session = session
	p.mu.Unlock()

	defer func() {
		session.teardown()
		p.mu.Lock()
		p.session = nil
		p.mu.Unlock()
	}()

	result, err := p.run(session)
	if err != nil {
		if err == ErrExportAborted {
			session.state = STATE_ABORTED
		} else {
			session.state = STATE_FAILED
		}
		return nil, err
	}
	session.state = STATE_FINISHED
	return result, nil
}

// run advances the session through its phases.
func (p *FrameCapturePipeline) run(session *CaptureSession) (*ExportResult, error) {
	if err := p.capturePhase(session); err != nil {
		return nil, err
	}
	if err := p.processPhase(session); err != nil {
		return nil, err
	}
	path, err := p.playbackPhase(session)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		OutputPath:     path,
		FramesCaptured: len(session.raw),
		FramesEncoded:  len(session.processed),
		Accelerated:    session.backend.IsAccelerated(),
	}, nil
}

// capturePhase reads raw frames from the render surface at precise
// intervals until the stop time, fractionally before the loop boundary.
func (p *FrameCapturePipeline) capturePhase(session *CaptureSession) error {
	session.state = STATE_CAPTURING

	cfg := session.config
	fps := float64(cfg.FPS)
	tick := time.Duration(session.interval * float64(time.Second) / 4)
	if tick <= 0 {
		tick = time.Millisecond
	}

	start := p.clock.Now()
	lastIndex := -1
	for {
		if session.Aborted() {
			return ErrExportAborted
		}
		elapsed := p.clock.Now().Sub(start).Seconds()
		if elapsed >= session.stopTime || len(session.raw) >= session.targetFrames {
			break
		}

		expected := int(elapsed * fps)
		if expected > lastIndex {
			frameTime := float64(len(session.raw)) * session.interval
			p.surface.Advance(frameTime)

			pixels, err := p.surface.ReadPixels(0, 0, cfg.Width, cfg.Height)
			if err != nil {
				// Transient frame error: the surface was not ready. Skip
				// this frame and keep capturing.
				fmt.Printf("frame %d read failed, skipping: %v\n", expected, err)
				lastIndex = expected
				continue
			}
			frame, err := FrameFromPixels(pixels, cfg.Width, cfg.Height)
			if err != nil {
				return &ExportError{Operation: "capture", Details: "surface returned malformed buffer", Err: err}
			}
			session.raw = append(session.raw, capturedFrame{frame: frame, timestamp: frameTime})
			lastIndex = expected
		}
		p.clock.Sleep(tick)
	}

	if len(session.raw) == 0 {
		return &ExportError{Operation: "capture", Details: "surface produced no frames", Err: ErrNoFramesCaptured}
	}
	return nil
}

// processPhase applies the configured effect stack to every captured frame
// in order. ASCII mode replaces the effect stack entirely.
func (p *FrameCapturePipeline) processPhase(session *CaptureSession) error {
	session.state = STATE_PROCESSING

	effects := session.config.Effects
	session.processed = make([]*Frame, 0, len(session.raw))

	for i := range session.raw {
		if session.Aborted() {
			return ErrExportAborted
		}

		out, err := session.processFrame(session.raw[i].frame, effects)
		if err != nil {
			return &ExportError{Operation: "processing", Details: fmt.Sprintf("frame %d", i), Err: err}
		}
		session.processed = append(session.processed, out)
		session.raw[i].frame = nil // raw buffer handed off, release it

		if (i+1)%PROCESS_YIELD_INTERVAL == 0 {
			p.clock.Sleep(0) // cooperative yield point
		}
	}
	return nil
}

// processFrame runs one frame through the effect stack: dithering or plain
// palette reduction first, then pixelation. ASCII conversion supersedes
// both.
func (s *CaptureSession) processFrame(frame *Frame, effects EffectConfig) (*Frame, error) {
	if effects.ASCIIEnabled {
		grid := s.mapper.MapToCells(frame, effects)
		s.asciiText = append(s.asciiText, grid.Text())
		return s.mapper.RenderGrid(grid, s.config.Width, s.config.Height, effects.ASCIIBackdrop), nil
	}

	out := frame
	switch {
	case effects.DitheringEnabled:
		dithered, err := s.backend.ApplyDithering(out, effects)
		if err != nil {
			return nil, err
		}
		out = dithered
	case effects.PaletteReductionEnabled:
		// Ordered dithering at intensity zero degenerates to a pure
		// nearest-color snap, which is exactly palette reduction.
		reduced := effects
		reduced.DitheringType = DITHER_ORDERED
		reduced.DitheringIntensity = 0
		reduced.DitheringResolution = 1
		snapped, err := s.backend.ApplyDithering(out, reduced)
		if err != nil {
			return nil, err
		}
		out = snapped
	}

	if effects.PixelationEnabled {
		pixelated, err := s.backend.ApplyPixelation(out, effects.PixelSize)
		if err != nil {
			return nil, err
		}
		out = pixelated
	}

	if out == frame {
		// No effect configured: hand off a copy, never the raw buffer.
		out = frame.Clone()
	}
	return out, nil
}

// playbackPhase replays processed frames to the encoder at the exact target
// interval and finalizes the artifact.
func (p *FrameCapturePipeline) playbackPhase(session *CaptureSession) (string, error) {
	session.state = STATE_PLAYBACK_ENCODING

	cfg := session.config
	if err := p.encoder.Begin(cfg.Width, cfg.Height, cfg.FPS); err != nil {
		return "", &ExportError{Operation: "encoding", Details: "encoder initialization", Err: err}
	}

	durationMs := int(session.interval*1000 + 0.5)
	start := p.clock.Now()
	for i, frame := range session.processed {
		if session.Aborted() {
			p.encoder.Abort()
			return "", ErrExportAborted
		}

		// Re-anchor to sessionStart + i*interval rather than
		// previousFrame + interval; per-frame deltas would accumulate
		// drift over long exports.
		due := start.Add(time.Duration(float64(i) * session.interval * float64(time.Second)))
		if d := due.Sub(p.clock.Now()); d > 0 {
			p.clock.Sleep(d)
		}

		if err := p.encoder.WriteFrame(frame, durationMs); err != nil {
			p.encoder.Abort()
			return "", &ExportError{Operation: "encoding", Details: fmt.Sprintf("frame %d", i), Err: err}
		}
		if p.preview != nil && p.preview.IsStarted() {
			_ = p.preview.UpdateFrame(frame.Pix)
			if i < len(session.asciiText) {
				p.preview.SetASCIIText(session.asciiText[i])
			}
		}
	}

	path, err := p.encoder.Finish()
	if err != nil {
		return "", &ExportError{Operation: "encoding", Details: "finalize artifact", Err: err}
	}
	return path, nil
}
