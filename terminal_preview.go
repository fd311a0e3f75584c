// terminal_preview.go - ASCII frame preview on the controlling terminal

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalPreview prints ASCII text frames to stdout during playback
// encoding. It only activates when stdout is an interactive terminal; when
// output is piped the preview stays silent so it never corrupts redirected
// logs. Pixel frames are ignored, only the text grids are shown.
type TerminalPreview struct {
	fd        int
	active    bool
	started   bool
	lastLines int
}

// NewTerminalPreview probes stdout for TTY support.
func NewTerminalPreview() *TerminalPreview {
	fd := int(os.Stdout.Fd())
	return &TerminalPreview{
		fd:     fd,
		active: term.IsTerminal(fd),
	}
}

func (tp *TerminalPreview) Start() error {
	if !tp.active {
		return fmt.Errorf("stdout is not a terminal")
	}
	tp.started = true
	return nil
}

func (tp *TerminalPreview) Stop() error {
	if tp.started && tp.lastLines > 0 {
		fmt.Println()
	}
	tp.started = false
	return nil
}

func (tp *TerminalPreview) IsStarted() bool {
	return tp.started
}

// UpdateFrame is a no-op; the terminal can only show the text grids.
func (tp *TerminalPreview) UpdateFrame(_ []byte) error {
	return nil
}

// SetASCIIText renders one text frame, cropped to the current terminal
// size. Frames after the first overwrite the previous one in place.
func (tp *TerminalPreview) SetASCIIText(text string) {
	if !tp.started || text == "" {
		return
	}

	cols, rows, err := term.GetSize(tp.fd)
	if err != nil {
		cols, rows = 80, 24
	}
	// Leave one row so the shell prompt has somewhere to land afterwards.
	rows--

	if tp.lastLines > 0 {
		fmt.Printf("\x1b[%dA", tp.lastLines)
	}

	var sb strings.Builder
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for _, line := range lines {
		runes := []rune(line)
		if len(runes) > cols {
			runes = runes[:cols]
		}
		sb.WriteString(string(runes))
		sb.WriteString("\x1b[K\n")
	}
	fmt.Print(sb.String())
	tp.lastLines = len(lines)
}
