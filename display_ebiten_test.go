//go:build !headless

// display_ebiten_test.go - Test suite for the preview window

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import (
	"sync"
	"testing"
)

// =============================================================================
// Construction
// =============================================================================

func TestPreviewWindow_RejectsBadDimensions(t *testing.T) {
	if _, err := NewPreviewWindow(0, 64); err == nil {
		t.Error("Expected error for zero width")
	}
	if _, err := NewPreviewWindow(64, -1); err == nil {
		t.Error("Expected error for negative height")
	}
}

// =============================================================================
// Concurrent Access
// =============================================================================

// The game loop goroutine and the export pipeline touch the window state from
// different goroutines, so every accessor must hold the buffer lock. Run with
// -race to catch regressions.
func TestPreviewWindow_ConcurrentStateAccess(t *testing.T) {
	win, err := NewPreviewWindow(8, 8)
	if err != nil {
		t.Fatalf("NewPreviewWindow failed: %v", err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, 8*8*4)
			for i := 0; i < 100; i++ {
				_ = win.IsStarted()
				if err := win.UpdateFrame(buf); err != nil {
					t.Errorf("UpdateFrame failed: %v", err)
				}
				win.SetASCIIText("frame")
				if err := win.Stop(); err != nil {
					t.Errorf("Stop failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	if win.IsStarted() {
		t.Error("Expected stopped window after concurrent Stop calls")
	}
}
