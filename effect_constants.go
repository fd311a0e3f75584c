// effect_constants.go - Palettes, charsets and tuning constants for the effect engines

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

// Nearest-color cache
const (
	COLOR_CACHE_CAPACITY = 8192 // LRU bound on distinct resolved colors per session
)

// Dithering
const (
	DITHER_MIN_RESOLUTION = 0.05 // smallest allowed working-resolution fraction
	DITHER_MAX_RESOLUTION = 1.0
)

// ASCII rendering
const (
	ASCII_MIN_COLUMNS      = 8
	ASCII_MAX_COLUMNS      = 480
	ASCII_DEFAULT_COLUMNS  = 120
	ASCII_MAX_CELL_SAMPLES = 8 // sample grid per cell axis, at most 8x8 probes
	ASCII_CELL_ASPECT      = 2 // cell height = cell width * 2 (monospace glyphs are ~2:1)
)

// Capture pipeline
const (
	CAPTURE_STOP_MARGIN     = 0.1 // fraction of one frame interval held back before the loop boundary
	PROCESS_YIELD_INTERVAL  = 5   // frames processed between cooperative yields
	CAPTURE_MAX_FRAME_COUNT = 100000
)

// Palette identifiers
type PaletteID int

const (
	PALETTE_MONO PaletteID = iota
	PALETTE_GAMEBOY
	PALETTE_GRAYSCALE4
	PALETTE_CGA
	PALETTE_C64
)

// bayer8x8 is the ordered-dithering threshold matrix. Values 0..63, tiled
// across the frame by (x mod 8, y mod 8).
var bayer8x8 = [8][8]int{
	{0, 32, 8, 40, 2, 34, 10, 42},
	{48, 16, 56, 24, 50, 18, 58, 26},
	{12, 44, 4, 36, 14, 46, 6, 38},
	{60, 28, 52, 20, 62, 30, 54, 22},
	{3, 35, 11, 43, 1, 33, 9, 41},
	{51, 19, 59, 27, 49, 17, 57, 25},
	{15, 47, 7, 39, 13, 45, 5, 37},
	{63, 31, 55, 23, 61, 29, 53, 21},
}

// Floyd-Steinberg diffusion weights, sixteenths.
const (
	FS_WEIGHT_RIGHT       = 7.0 / 16.0
	FS_WEIGHT_BELOW_LEFT  = 3.0 / 16.0
	FS_WEIGHT_BELOW       = 5.0 / 16.0
	FS_WEIGHT_BELOW_RIGHT = 1.0 / 16.0
)

// Charset identifiers, each ordered darkest to brightest.
type CharsetID int

const (
	CHARSET_STANDARD CharsetID = iota
	CHARSET_BLOCKS
	CHARSET_DENSE
)

var asciiCharsets = map[CharsetID][]rune{
	CHARSET_STANDARD: []rune(" .:-=+*#%@"),
	CHARSET_BLOCKS:   []rune(" ░▒▓█"),
	CHARSET_DENSE:    []rune(" .'`^\",:;Il!i><~+_-?][}{1)(|\\/tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@$"),
}

// Built-in palettes. Entry order matters: nearest-color ties resolve to the
// first entry in insertion order.
var builtinPalettes = map[PaletteID][]Color{
	PALETTE_MONO: {
		{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
		{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	},
	PALETTE_GAMEBOY: {
		{R: 0x0F, G: 0x38, B: 0x0F, A: 0xFF},
		{R: 0x30, G: 0x62, B: 0x30, A: 0xFF},
		{R: 0x8B, G: 0xAC, B: 0x0F, A: 0xFF},
		{R: 0x9B, G: 0xBC, B: 0x0F, A: 0xFF},
	},
	PALETTE_GRAYSCALE4: {
		{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
		{R: 0x55, G: 0x55, B: 0x55, A: 0xFF},
		{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF},
		{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	},
	PALETTE_CGA: {
		{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
		{R: 0x00, G: 0x00, B: 0xAA, A: 0xFF},
		{R: 0x00, G: 0xAA, B: 0x00, A: 0xFF},
		{R: 0x00, G: 0xAA, B: 0xAA, A: 0xFF},
		{R: 0xAA, G: 0x00, B: 0x00, A: 0xFF},
		{R: 0xAA, G: 0x00, B: 0xAA, A: 0xFF},
		{R: 0xAA, G: 0x55, B: 0x00, A: 0xFF},
		{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF},
		{R: 0x55, G: 0x55, B: 0x55, A: 0xFF},
		{R: 0x55, G: 0x55, B: 0xFF, A: 0xFF},
		{R: 0x55, G: 0xFF, B: 0x55, A: 0xFF},
		{R: 0x55, G: 0xFF, B: 0xFF, A: 0xFF},
		{R: 0xFF, G: 0x55, B: 0x55, A: 0xFF},
		{R: 0xFF, G: 0x55, B: 0xFF, A: 0xFF},
		{R: 0xFF, G: 0xFF, B: 0x55, A: 0xFF},
		{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	},
	PALETTE_C64: {
		{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
		{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		{R: 0x88, G: 0x00, B: 0x00, A: 0xFF},
		{R: 0xAA, G: 0xFF, B: 0xEE, A: 0xFF},
		{R: 0xCC, G: 0x44, B: 0xCC, A: 0xFF},
		{R: 0x00, G: 0xCC, B: 0x55, A: 0xFF},
		{R: 0x00, G: 0x00, B: 0xAA, A: 0xFF},
		{R: 0xEE, G: 0xEE, B: 0x77, A: 0xFF},
		{R: 0xDD, G: 0x88, B: 0x55, A: 0xFF},
		{R: 0x66, G: 0x44, B: 0x00, A: 0xFF},
		{R: 0xFF, G: 0x77, B: 0x77, A: 0xFF},
		{R: 0x33, G: 0x33, B: 0x33, A: 0xFF},
		{R: 0x77, G: 0x77, B: 0x77, A: 0xFF},
		{R: 0xAA, G: 0xFF, B: 0x66, A: 0xFF},
		{R: 0x00, G: 0x88, B: 0xFF, A: 0xFF},
		{R: 0xBB, G: 0xBB, B: 0xBB, A: 0xFF},
	},
}
