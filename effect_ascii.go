// effect_ascii.go - Character-grid (ASCII) frame rendering

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

/*
effect_ascii.go - Luminance-driven character mapping

Converts a frame into a grid of (character, color, brightness) cells. Cell
geometry is nominally cellWidth x cellWidth*2 (the doubled height compensates
for the ~2:1 aspect of monospace glyphs); the sample regions partition the
frame exactly, so every source pixel belongs to some cell. A sparse sample
grid of at most 8x8 probes per cell keeps the averaging cheap on large
frames.

Brightness per cell is Rec.709 luminance with gamma, contrast and optional
inversion applied, then mapped linearly onto a charset ordered darkest to
brightest. Blank (space) cells are transparent at render time: only the
backdrop shows through.
*/

package main

import (
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ASCIICell is one character cell: the selected glyph, its render color and
// the computed brightness in [0, 1].
type ASCIICell struct {
	Char       rune
	Color      Color
	Brightness float64
}

// CellGrid is a fixed rows x cols grid of cells plus the source-space cell
// geometry it was sampled with.
type CellGrid struct {
	Cells      []ASCIICell
	Cols, Rows int
	CellW      int // cell width in source pixels
	CellH      int // cell height in source pixels
}

// CellAt returns the cell at (col, row).
func (g *CellGrid) CellAt(col, row int) ASCIICell {
	return g.Cells[row*g.Cols+col]
}

// Text renders the grid as plain text, one line per row. Feeds the terminal
// preview and the clipboard copy in the preview window.
func (g *CellGrid) Text() string {
	var sb strings.Builder
	sb.Grow((g.Cols + 1) * g.Rows)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			sb.WriteRune(g.Cells[row*g.Cols+col].Char)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// rasterGlyphs maps runes outside basicfont.Face7x13's coverage
// (U+0020..U+007E) to ASCII stand-ins of comparable ink density. Without the
// substitution the face renders every such rune as the same replacement
// glyph and the block charset's brightness ramp collapses in RGBA output.
// Text output (terminal, clipboard) keeps the original runes.
var rasterGlyphs = map[rune]rune{
	'░': ':',
	'▒': '+',
	'▓': '#',
	'█': '@',
}

// rasterRune returns the glyph actually drawn for a cell character.
func rasterRune(ch rune) rune {
	if ch <= '~' {
		return ch
	}
	if sub, ok := rasterGlyphs[ch]; ok {
		return sub
	}
	return '#'
}

// ASCIICellMapper converts frames to character-cell grids and rasterizes the
// grids back into opaque RGBA frames.
type ASCIICellMapper struct {
	face font.Face
}

// NewASCIICellMapper creates a mapper using the built-in 7x13 bitmap face.
func NewASCIICellMapper() *ASCIICellMapper {
	return &ASCIICellMapper{face: basicfont.Face7x13}
}

// MapToCells samples the frame into a character grid per the configuration.
func (m *ASCIICellMapper) MapToCells(frame *Frame, cfg EffectConfig) *CellGrid {
	cols := cfg.ASCIIResolution
	if cols > frame.Width {
		cols = frame.Width
	}
	if cols < 1 {
		cols = 1
	}
	cellW := frame.Width / cols
	if cellW < 1 {
		cellW = 1
	}
	cellH := cellW * ASCII_CELL_ASPECT
	rows := frame.Height / cellH
	if rows < 1 {
		rows = 1
	}

	charset := asciiCharsets[cfg.ASCIICharset]
	grid := &CellGrid{
		Cells: make([]ASCIICell, cols*rows),
		Cols:  cols,
		Rows:  rows,
		CellW: cellW,
		CellH: cellH,
	}

	// Sample regions come from an exact integer partition of the frame, so a
	// grid that does not divide the dimensions evenly spreads the remainder
	// across cells instead of cropping the right and bottom edges.
	for row := 0; row < rows; row++ {
		y0 := row * frame.Height / rows
		y1 := (row + 1) * frame.Height / rows
		for col := 0; col < cols; col++ {
			x0 := col * frame.Width / cols
			x1 := (col + 1) * frame.Width / cols
			avg := sampleCellAverage(frame, x0, y0, x1-x0, y1-y0)
			brightness := shapeBrightness(luminance(avg), cfg)
			idx := brightnessToIndex(brightness, len(charset))

			cell := ASCIICell{
				Char:       charset[idx],
				Brightness: brightness,
			}
			if cfg.ASCIIColorMode {
				cell.Color = boostColor(avg, brightness, cfg.BrightnessBoost)
			} else {
				cell.Color = scaleColor(cfg.ASCIITextColor, brightness)
			}
			grid.Cells[row*cols+col] = cell
		}
	}
	return grid
}

// RenderGrid rasterizes a cell grid into an opaque frame of the given
// dimensions. Blank cells are skipped so the backdrop shows through.
func (m *ASCIICellMapper) RenderGrid(grid *CellGrid, width, height int, backdrop Color) *Frame {
	out := NewFrame(width, height)
	out.Fill(backdrop)

	img := &image.RGBA{Pix: out.Pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	drawer := &font.Drawer{
		Dst:  img,
		Face: m.face,
	}

	cellPxW := width / grid.Cols
	cellPxH := height / grid.Rows
	if cellPxW < 1 {
		cellPxW = 1
	}
	if cellPxH < 1 {
		cellPxH = 1
	}
	ascent := m.face.Metrics().Ascent.Ceil()

	var buf [4]byte
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			cell := grid.CellAt(col, row)
			if cell.Char == ' ' {
				continue
			}
			drawer.Src = image.NewUniform(color.RGBA{
				R: cell.Color.R, G: cell.Color.G, B: cell.Color.B, A: 255,
			})
			drawer.Dot = fixed.P(col*cellPxW, row*cellPxH+ascent)
			n := copy(buf[:], string(rasterRune(cell.Char)))
			drawer.DrawString(string(buf[:n]))
		}
	}

	return out
}

// sampleCellAverage averages a sparse probe grid inside the cell bounds. At
// most ASCII_MAX_CELL_SAMPLES probes per axis.
func sampleCellAverage(frame *Frame, x0, y0, cellW, cellH int) Color {
	strideX := cellW / ASCII_MAX_CELL_SAMPLES
	if strideX < 1 {
		strideX = 1
	}
	strideY := cellH / ASCII_MAX_CELL_SAMPLES
	if strideY < 1 {
		strideY = 1
	}

	var sumR, sumG, sumB, n int
	for dy := 0; dy < cellH; dy += strideY {
		y := y0 + dy
		if y >= frame.Height {
			break
		}
		for dx := 0; dx < cellW; dx += strideX {
			x := x0 + dx
			if x >= frame.Width {
				break
			}
			i := (y*frame.Width + x) * 4
			sumR += int(frame.Pix[i])
			sumG += int(frame.Pix[i+1])
			sumB += int(frame.Pix[i+2])
			n++
		}
	}
	if n == 0 {
		return Color{A: 0xFF}
	}
	return Color{R: byte(sumR / n), G: byte(sumG / n), B: byte(sumB / n), A: 0xFF}
}

// luminance is the Rec.709 perceptual weighting over normalized channels.
func luminance(c Color) float64 {
	return 0.2126*float64(c.R)/255.0 + 0.7152*float64(c.G)/255.0 + 0.0722*float64(c.B)/255.0
}

// shapeBrightness applies gamma, contrast and inversion in that order.
func shapeBrightness(b float64, cfg EffectConfig) float64 {
	if cfg.ASCIIGamma != 1.0 {
		b = math.Pow(b, 1.0/cfg.ASCIIGamma)
	}
	b = clampFloat((b-0.5)*cfg.ASCIIContrast+0.5, 0, 1)
	if cfg.ASCIIInvert {
		b = 1 - b
	}
	return b
}

// brightnessToIndex maps brightness linearly onto the charset, darkest at
// index 0.
func brightnessToIndex(b float64, charsetLen int) int {
	idx := int(b * float64(charsetLen))
	if idx >= charsetLen {
		idx = charsetLen - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// boostColor stretches the sampled average toward full intensity and scales
// it by brightness and the configured boost.
func boostColor(avg Color, brightness, boost float64) Color {
	maxc := float64(max(avg.R, max(avg.G, avg.B)))
	if maxc == 0 {
		return Color{A: 0xFF}
	}
	gain := 255.0 / maxc * brightness * boost
	return Color{
		R: clampByte(float64(avg.R) * gain),
		G: clampByte(float64(avg.G) * gain),
		B: clampByte(float64(avg.B) * gain),
		A: 0xFF,
	}
}

// scaleColor dims a fixed color by brightness (monochrome mode).
func scaleColor(c Color, brightness float64) Color {
	return Color{
		R: clampByte(float64(c.R) * brightness),
		G: clampByte(float64(c.G) * brightness),
		B: clampByte(float64(c.B) * brightness),
		A: 0xFF,
	}
}
