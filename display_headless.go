//go:build headless

// display_headless.go - No-op preview for headless builds

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

// PreviewWindow is the headless stand-in: it accepts frames and counts them
// so pipeline behaviour is identical with or without a display.
type PreviewWindow struct {
	running     bool
	width       int
	height      int
	frameCount  int
	lastASCII   string
	frameBuffer []byte
}

// NewPreviewWindow creates a headless preview at the export dimensions.
func NewPreviewWindow(width, height int) (PreviewOutput, error) {
	return &PreviewWindow{
		width:       width,
		height:      height,
		frameBuffer: make([]byte, width*height*4),
	}, nil
}

func (pw *PreviewWindow) Start() error {
	pw.running = true
	return nil
}

func (pw *PreviewWindow) Stop() error {
	pw.running = false
	return nil
}

func (pw *PreviewWindow) IsStarted() bool {
	return pw.running
}

func (pw *PreviewWindow) UpdateFrame(buffer []byte) error {
	copy(pw.frameBuffer, buffer)
	pw.frameCount++
	return nil
}

func (pw *PreviewWindow) SetASCIIText(text string) {
	pw.lastASCII = text
}
