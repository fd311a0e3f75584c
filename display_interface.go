// display_interface.go - Preview output boundary

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

// PreviewOutput shows processed frames while the pipeline encodes them. The
// pipeline treats it as fire-and-forget: a preview that is not started, or
// that drops a frame, never affects the export.
//
// NewPreviewWindow is provided by display_ebiten.go, or by
// display_headless.go under the headless build tag.
type PreviewOutput interface {
	Start() error
	Stop() error
	IsStarted() bool

	// UpdateFrame replaces the displayed frame with an RGBA buffer at the
	// preview's configured dimensions.
	UpdateFrame(buffer []byte) error

	// SetASCIIText publishes the most recent ASCII text frame so the
	// window can offer it for clipboard copy.
	SetASCIIText(text string)
}
