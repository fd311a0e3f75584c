//go:build !headless

// display_ebiten.go - Ebiten preview window

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

// PreviewWindow displays processed frames during playback encoding. Press C
// to copy the latest ASCII text frame to the clipboard, F11 to toggle
// fullscreen.
type PreviewWindow struct {
	running bool
	window  *ebiten.Image
	width   int
	height  int
	scale   int

	frameBuffer []byte
	bufferMutex sync.RWMutex
	done        chan struct{}

	asciiText string

	clipboardOnce sync.Once
	clipboardOK   bool
	fullscreen    bool
	statusText    string
}

// NewPreviewWindow creates a preview at the export dimensions.
func NewPreviewWindow(width, height int) (PreviewOutput, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid preview dimensions %dx%d", width, height)
	}
	return &PreviewWindow{
		width:       width,
		height:      height,
		scale:       1,
		frameBuffer: make([]byte, width*height*4),
		done:        make(chan struct{}),
	}, nil
}

func (pw *PreviewWindow) Start() error {
	pw.bufferMutex.Lock()
	if pw.running {
		pw.bufferMutex.Unlock()
		return nil
	}
	pw.running = true
	pw.bufferMutex.Unlock()

	ebiten.SetWindowSize(pw.width*pw.scale, pw.height*pw.scale)
	ebiten.SetWindowTitle("Intuition Loop (c) 2024 - 2026 Zayn Otley")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	go func() {
		defer func() {
			pw.bufferMutex.Lock()
			pw.running = false
			pw.bufferMutex.Unlock()
			select {
			case <-pw.done:
			default:
				close(pw.done)
			}
		}()
		if err := ebiten.RunGame(pw); err != nil {
			fmt.Printf("Ebiten error: %v\n", err)
		}
	}()
	return nil
}

func (pw *PreviewWindow) Stop() error {
	pw.bufferMutex.Lock()
	pw.running = false
	pw.bufferMutex.Unlock()
	return nil
}

func (pw *PreviewWindow) IsStarted() bool {
	pw.bufferMutex.RLock()
	defer pw.bufferMutex.RUnlock()
	return pw.running
}

// Done is closed when the window's game loop exits.
func (pw *PreviewWindow) Done() <-chan struct{} {
	return pw.done
}

func (pw *PreviewWindow) UpdateFrame(buffer []byte) error {
	pw.bufferMutex.Lock()
	copy(pw.frameBuffer, buffer)
	pw.bufferMutex.Unlock()
	return nil
}

func (pw *PreviewWindow) SetASCIIText(text string) {
	pw.bufferMutex.Lock()
	pw.asciiText = text
	pw.bufferMutex.Unlock()
}

// SetStatus updates the one-line status shown at the bottom of the window.
func (pw *PreviewWindow) SetStatus(status string) {
	pw.bufferMutex.Lock()
	pw.statusText = status
	pw.bufferMutex.Unlock()
}

func (pw *PreviewWindow) Update() error {
	if ebiten.IsWindowBeingClosed() || !pw.IsStarted() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		pw.fullscreen = !pw.fullscreen
		ebiten.SetFullscreen(pw.fullscreen)
		if !pw.fullscreen {
			ebiten.SetWindowSize(pw.width*pw.scale, pw.height*pw.scale)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		pw.copyASCIIToClipboard()
	}
	return nil
}

// copyASCIIToClipboard pushes the latest ASCII text frame to the system
// clipboard. Clipboard availability is probed once; on platforms without a
// clipboard the key is a no-op.
func (pw *PreviewWindow) copyASCIIToClipboard() {
	pw.clipboardOnce.Do(func() {
		pw.clipboardOK = clipboard.Init() == nil
	})
	if !pw.clipboardOK {
		return
	}
	pw.bufferMutex.RLock()
	text := pw.asciiText
	pw.bufferMutex.RUnlock()
	if text == "" {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
}

func (pw *PreviewWindow) Draw(screen *ebiten.Image) {
	if pw.window == nil {
		pw.window = ebiten.NewImage(pw.width, pw.height)
	}

	pw.bufferMutex.RLock()
	pw.window.WritePixels(pw.frameBuffer)
	status := pw.statusText
	pw.bufferMutex.RUnlock()
	screen.DrawImage(pw.window, nil)

	if status != "" {
		text.Draw(screen, status, basicfont.Face7x13, 6, pw.height-6,
			color.RGBA{190, 190, 190, 255})
	}
}

func (pw *PreviewWindow) Layout(_, _ int) (int, int) {
	return pw.width, pw.height
}
