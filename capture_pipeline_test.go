// capture_pipeline_test.go - Test suite for the export state machine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// testClock advances only when the pipeline sleeps, optionally with a fixed
// per-sleep jitter to simulate an imprecise scheduler.
type testClock struct {
	now     time.Time
	jitter  time.Duration
	onSleep func(d time.Duration)
}

func newTestClock() *testClock {
	return &testClock{now: time.Unix(1000, 0)}
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Sleep(d time.Duration) {
	if c.onSleep != nil {
		c.onSleep(d)
	}
	if d < 0 {
		d = 0
	}
	c.now = c.now.Add(d + c.jitter)
}

// testSurface produces frames whose red channel records the advance count,
// so encoded order is observable. The first failReads reads fail.
type testSurface struct {
	width, height int
	failReads     int

	reads     int
	advances  []float64
	lastPixel byte
}

func (s *testSurface) Advance(t float64) {
	s.advances = append(s.advances, t)
	s.lastPixel = byte(len(s.advances))
}

func (s *testSurface) ReadPixels(x, y, width, height int) ([]byte, error) {
	s.reads++
	if s.reads <= s.failReads {
		return nil, fmt.Errorf("surface busy")
	}
	buf := make([]byte, width*height*4)
	for i := 0; i < len(buf); i += 4 {
		buf[i] = s.lastPixel
		buf[i+3] = 0xFF
	}
	return buf, nil
}

// testEncoder records the stream it is fed.
type testEncoder struct {
	width, height, fps int
	begun              bool
	finished           bool
	aborted            bool
	frames             []*Frame
	durations          []int
}

func (e *testEncoder) Begin(width, height, fps int) error {
	e.width, e.height, e.fps = width, height, fps
	e.begun = true
	return nil
}

func (e *testEncoder) WriteFrame(frame *Frame, displayDurationMs int) error {
	e.frames = append(e.frames, frame)
	e.durations = append(e.durations, displayDurationMs)
	return nil
}

func (e *testEncoder) Finish() (string, error) {
	e.finished = true
	return "test-artifact", nil
}

func (e *testEncoder) Abort() {
	e.aborted = true
}

func testExportConfig() ExportConfig {
	cfg := ExportConfig{
		Width:        8,
		Height:       8,
		FPS:          30,
		LoopDuration: 2.0,
		LoopCount:    2,
		Effects:      DefaultEffectConfig(),
	}
	return cfg
}

// =============================================================================
// Frame Count and Timing
// =============================================================================

func TestPipeline_CapturesExactTargetFrameCount(t *testing.T) {
	surface := &testSurface{width: 8, height: 8}
	encoder := &testEncoder{}
	p := NewFrameCapturePipeline(surface, encoder, newTestClock())

	cfg := testExportConfig()
	result, err := p.Export(cfg)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	want := cfg.TargetFrameCount() // 2.0s * 2 loops * 30fps = 120
	if want != 120 {
		t.Fatalf("Fixture drifted: target %d", want)
	}
	if result.FramesCaptured != want {
		t.Errorf("FramesCaptured = %d, expected %d", result.FramesCaptured, want)
	}
	if result.FramesEncoded != want {
		t.Errorf("FramesEncoded = %d, expected %d", result.FramesEncoded, want)
	}
	if len(encoder.frames) != want {
		t.Errorf("Encoder received %d frames, expected %d", len(encoder.frames), want)
	}
	if result.OutputPath != "test-artifact" {
		t.Errorf("OutputPath = %q", result.OutputPath)
	}
}

func TestPipeline_SceneAdvancesStayBelowLoopBoundary(t *testing.T) {
	surface := &testSurface{width: 8, height: 8}
	p := NewFrameCapturePipeline(surface, &testEncoder{}, newTestClock())

	cfg := testExportConfig()
	if _, err := p.Export(cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	boundary := cfg.LoopDuration * float64(cfg.LoopCount)
	interval := cfg.FrameInterval()
	for i, ts := range surface.advances {
		if ts >= boundary {
			t.Fatalf("Advance %d at t=%v reached the loop boundary %v", i, ts, boundary)
		}
		if want := float64(i) * interval; ts != want {
			t.Fatalf("Advance %d at t=%v, expected %v", i, ts, want)
		}
	}
}

func TestPipeline_FrameCountStableUnderSchedulerJitter(t *testing.T) {
	clock := newTestClock()
	clock.jitter = 3 * time.Millisecond

	surface := &testSurface{width: 8, height: 8}
	p := NewFrameCapturePipeline(surface, &testEncoder{}, clock)

	cfg := testExportConfig()
	result, err := p.Export(cfg)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if result.FramesCaptured != cfg.TargetFrameCount() {
		t.Errorf("Jittered capture produced %d frames, expected %d",
			result.FramesCaptured, cfg.TargetFrameCount())
	}
}

func TestPipeline_EncodedStreamPreservesCaptureOrder(t *testing.T) {
	surface := &testSurface{width: 8, height: 8}
	encoder := &testEncoder{}
	p := NewFrameCapturePipeline(surface, encoder, newTestClock())

	cfg := testExportConfig()
	cfg.LoopDuration = 0.5
	cfg.LoopCount = 1
	if _, err := p.Export(cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// The surface stamps each frame with its advance ordinal.
	prev := -1
	for i, f := range encoder.frames {
		stamp := int(f.Pix[0])
		if stamp <= prev {
			t.Fatalf("Frame %d stamp %d out of order (prev %d)", i, stamp, prev)
		}
		prev = stamp
	}
}

func TestPipeline_UniformDisplayDurations(t *testing.T) {
	surface := &testSurface{width: 8, height: 8}
	encoder := &testEncoder{}
	p := NewFrameCapturePipeline(surface, encoder, newTestClock())

	cfg := testExportConfig()
	cfg.FPS = 25
	cfg.LoopDuration = 1.0
	cfg.LoopCount = 1
	if _, err := p.Export(cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	for i, d := range encoder.durations {
		if d != 40 {
			t.Errorf("Frame %d duration = %dms, expected 40ms", i, d)
		}
	}
}

// =============================================================================
// Transient and Fatal Capture Errors
// =============================================================================

func TestPipeline_TransientReadFailuresAreSkipped(t *testing.T) {
	surface := &testSurface{width: 8, height: 8, failReads: 3}
	encoder := &testEncoder{}
	p := NewFrameCapturePipeline(surface, encoder, newTestClock())

	cfg := testExportConfig()
	cfg.LoopDuration = 1.0
	cfg.LoopCount = 1
	result, err := p.Export(cfg)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if result.FramesCaptured != cfg.TargetFrameCount()-3 {
		t.Errorf("FramesCaptured = %d, expected %d after 3 skipped reads",
			result.FramesCaptured, cfg.TargetFrameCount()-3)
	}
	if !encoder.finished {
		t.Error("Encoder never finished despite surviving transient errors")
	}
}

func TestPipeline_NoFramesCapturedIsFatal(t *testing.T) {
	surface := &testSurface{width: 8, height: 8, failReads: 1 << 30}
	encoder := &testEncoder{}
	p := NewFrameCapturePipeline(surface, encoder, newTestClock())

	cfg := testExportConfig()
	cfg.LoopDuration = 0.2
	cfg.LoopCount = 1
	_, err := p.Export(cfg)
	if !errors.Is(err, ErrNoFramesCaptured) {
		t.Errorf("Expected ErrNoFramesCaptured, got %v", err)
	}
	if encoder.begun {
		t.Error("Encoder was started for an empty capture")
	}
}

func TestPipeline_InvalidConfigRejected(t *testing.T) {
	p := NewFrameCapturePipeline(&testSurface{}, &testEncoder{}, newTestClock())

	cfg := testExportConfig()
	cfg.FPS = 0
	if _, err := p.Export(cfg); err == nil {
		t.Error("Expected error for zero fps")
	}

	cfg = testExportConfig()
	cfg.Effects.DitheringIntensity = 1.5
	if _, err := p.Export(cfg); err == nil {
		t.Error("Expected error for out-of-range intensity")
	}
}

// =============================================================================
// Abort and Exclusivity
// =============================================================================

func TestPipeline_AbortDuringProcessing(t *testing.T) {
	surface := &testSurface{width: 8, height: 8}
	encoder := &testEncoder{}
	clock := newTestClock()
	p := NewFrameCapturePipeline(surface, encoder, clock)

	// Only the processing phase sleeps zero (its cooperative yield), so this
	// fires after capture has completed.
	clock.onSleep = func(d time.Duration) {
		if d == 0 {
			p.Abort()
		}
	}

	cfg := testExportConfig()
	cfg.LoopDuration = 1.0
	cfg.LoopCount = 1
	_, err := p.Export(cfg)
	if !errors.Is(err, ErrExportAborted) {
		t.Fatalf("Expected ErrExportAborted, got %v", err)
	}
	if encoder.begun || encoder.finished {
		t.Error("Aborted export still reached the encoder")
	}
	if p.State() != STATE_IDLE {
		t.Errorf("Pipeline state after abort = %v, expected Idle", p.State())
	}
}

func TestPipeline_SecondExportRejectedWhileInFlight(t *testing.T) {
	surface := &testSurface{width: 8, height: 8}
	clock := newTestClock()
	p := NewFrameCapturePipeline(surface, &testEncoder{}, clock)

	var nested error
	fired := false
	clock.onSleep = func(d time.Duration) {
		if !fired && d > 0 {
			fired = true
			_, nested = p.Export(testExportConfig())
		}
	}

	cfg := testExportConfig()
	cfg.LoopDuration = 0.2
	cfg.LoopCount = 1
	if _, err := p.Export(cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !errors.Is(nested, ErrExportInFlight) {
		t.Errorf("Nested export error = %v, expected ErrExportInFlight", nested)
	}
}

func TestPipeline_SequentialExportsAllowed(t *testing.T) {
	surface := &testSurface{width: 8, height: 8}
	p := NewFrameCapturePipeline(surface, &testEncoder{}, newTestClock())

	cfg := testExportConfig()
	cfg.LoopDuration = 0.2
	cfg.LoopCount = 1
	for i := 0; i < 2; i++ {
		if _, err := p.Export(cfg); err != nil {
			t.Fatalf("Export %d failed: %v", i, err)
		}
	}
	if p.State() != STATE_IDLE {
		t.Errorf("State between sessions = %v, expected Idle", p.State())
	}
}

// =============================================================================
// Effect Stack Routing
// =============================================================================

func TestPipeline_DitheredExportSnapsToPalette(t *testing.T) {
	surface := &testSurface{width: 8, height: 8}
	encoder := &testEncoder{}
	p := NewFrameCapturePipeline(surface, encoder, newTestClock())

	cfg := testExportConfig()
	cfg.LoopDuration = 0.2
	cfg.LoopCount = 1
	cfg.Effects.DitheringEnabled = true
	cfg.Effects.PaletteID = PALETTE_MONO
	if _, err := p.Export(cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	palette, _ := PaletteByID(PALETTE_MONO)
	for i, f := range encoder.frames {
		members := map[uint32]bool{}
		for _, c := range palette.Colors {
			members[packRGB(c.R, c.G, c.B)] = true
		}
		for j := 0; j < len(f.Pix); j += 4 {
			if !members[packRGB(f.Pix[j], f.Pix[j+1], f.Pix[j+2])] {
				t.Fatalf("Frame %d pixel %d off palette", i, j/4)
			}
		}
	}
}

func TestPipeline_PaletteReductionWithoutDithering(t *testing.T) {
	surface := &testSurface{width: 8, height: 8}
	encoder := &testEncoder{}
	p := NewFrameCapturePipeline(surface, encoder, newTestClock())

	cfg := testExportConfig()
	cfg.LoopDuration = 0.2
	cfg.LoopCount = 1
	cfg.Effects.PaletteReductionEnabled = true
	cfg.Effects.PaletteID = PALETTE_MONO
	if _, err := p.Export(cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// Near-black surface frames snap uniformly to black: reduction with no
	// dithering never scatters mixed palette entries across a flat region.
	for i, f := range encoder.frames {
		first := f.At(0, 0)
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				if f.At(x, y) != first {
					t.Fatalf("Frame %d not uniform after plain reduction", i)
				}
			}
		}
	}
}

func TestPipeline_ASCIIModeSupersedesOtherEffects(t *testing.T) {
	surface := &testSurface{width: 64, height: 64}
	encoder := &testEncoder{}
	p := NewFrameCapturePipeline(surface, encoder, newTestClock())

	cfg := testExportConfig()
	cfg.Width = 64
	cfg.Height = 64
	cfg.FPS = 10
	cfg.LoopDuration = 0.3
	cfg.LoopCount = 1
	cfg.Effects.ASCIIEnabled = true
	cfg.Effects.DitheringEnabled = true
	cfg.Effects.ASCIIResolution = 16
	if _, err := p.Export(cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if len(encoder.frames) == 0 {
		t.Fatal("No frames encoded")
	}
	for _, f := range encoder.frames {
		if f.Width != 64 || f.Height != 64 {
			t.Errorf("ASCII output %dx%d, expected 64x64", f.Width, f.Height)
		}
	}
}

func TestPipeline_NoEffectsCopiesRawFrames(t *testing.T) {
	surface := &testSurface{width: 8, height: 8}
	encoder := &testEncoder{}
	p := NewFrameCapturePipeline(surface, encoder, newTestClock())

	cfg := testExportConfig()
	cfg.LoopDuration = 0.2
	cfg.LoopCount = 1
	if _, err := p.Export(cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	for i, f := range encoder.frames {
		if f.Pix[0] == 0 {
			t.Errorf("Frame %d lost its surface stamp", i)
		}
	}
}
