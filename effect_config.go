// effect_config.go - Effect and export configuration

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import "fmt"

// DitherType selects the quantization algorithm.
type DitherType int

const (
	DITHER_ORDERED DitherType = iota // Bayer 8x8 threshold matrix
	DITHER_DIFFUSION                 // Floyd-Steinberg error diffusion
)

// EffectConfig is a read-only snapshot of the effect tunables for one
// invocation. The pipeline copies it at session start and never mutates it
// mid-operation.
type EffectConfig struct {
	DitheringEnabled    bool
	DitheringType       DitherType
	DitheringIntensity  float64 // 0..1
	DitheringResolution float64 // 0.05..1, working-resolution fraction
	PaletteID           PaletteID

	// PaletteReductionEnabled snaps every pixel to the palette without
	// scattering the quantization error. Ignored when dithering is on,
	// which already quantizes to the palette.
	PaletteReductionEnabled bool

	PixelationEnabled bool
	PixelSize         int // block edge in pixels, >= 1

	ASCIIEnabled     bool
	ASCIICharset     CharsetID
	ASCIIResolution  int // character columns
	ASCIIContrast    float64
	ASCIIGamma       float64
	ASCIIInvert      bool
	ASCIIColorMode   bool
	BrightnessBoost  float64
	ASCIITextColor   Color // monochrome mode glyph color
	ASCIIBackdrop    Color // fill behind skipped (blank) cells
}

// DefaultEffectConfig returns the tunables as shipped.
func DefaultEffectConfig() EffectConfig {
	return EffectConfig{
		DitheringType:       DITHER_ORDERED,
		DitheringIntensity:  0.8,
		DitheringResolution: 1.0,
		PaletteID:           PALETTE_GAMEBOY,
		PixelSize:           4,
		ASCIICharset:        CHARSET_STANDARD,
		ASCIIResolution:     ASCII_DEFAULT_COLUMNS,
		ASCIIContrast:       1.0,
		ASCIIGamma:          1.0,
		ASCIIColorMode:      true,
		BrightnessBoost:     1.0,
		ASCIITextColor:      Color{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF},
		ASCIIBackdrop:       Color{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
	}
}

// Validate clamps nothing; out-of-range tunables are configuration errors.
func (c EffectConfig) Validate() error {
	if c.DitheringIntensity < 0 || c.DitheringIntensity > 1 {
		return fmt.Errorf("dithering intensity %v out of range 0..1", c.DitheringIntensity)
	}
	if c.DitheringResolution < DITHER_MIN_RESOLUTION || c.DitheringResolution > DITHER_MAX_RESOLUTION {
		return fmt.Errorf("dithering resolution %v out of range %v..%v",
			c.DitheringResolution, DITHER_MIN_RESOLUTION, DITHER_MAX_RESOLUTION)
	}
	if c.PixelationEnabled && c.PixelSize < 1 {
		return fmt.Errorf("pixel size %d must be >= 1", c.PixelSize)
	}
	if c.ASCIIEnabled {
		if c.ASCIIResolution < ASCII_MIN_COLUMNS || c.ASCIIResolution > ASCII_MAX_COLUMNS {
			return fmt.Errorf("ascii resolution %d out of range %d..%d",
				c.ASCIIResolution, ASCII_MIN_COLUMNS, ASCII_MAX_COLUMNS)
		}
		if _, ok := asciiCharsets[c.ASCIICharset]; !ok {
			return fmt.Errorf("unknown ascii charset %d", c.ASCIICharset)
		}
		if c.ASCIIGamma <= 0 {
			return fmt.Errorf("ascii gamma %v must be positive", c.ASCIIGamma)
		}
	}
	if _, ok := builtinPalettes[c.PaletteID]; !ok {
		return fmt.Errorf("unknown palette id %d", c.PaletteID)
	}
	return nil
}

// ExportConfig describes one export request.
type ExportConfig struct {
	Width        int
	Height       int
	FPS          int
	LoopDuration float64 // seconds of one animation loop
	LoopCount    int
	Effects      EffectConfig
}

// Validate checks the export geometry and timing.
func (c ExportConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid export dimensions %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %d", c.FPS)
	}
	if c.LoopDuration <= 0 {
		return fmt.Errorf("invalid loop duration %v", c.LoopDuration)
	}
	if c.LoopCount < 1 {
		return fmt.Errorf("invalid loop count %d", c.LoopCount)
	}
	if c.TargetFrameCount() > CAPTURE_MAX_FRAME_COUNT {
		return fmt.Errorf("target frame count %d exceeds limit %d",
			c.TargetFrameCount(), CAPTURE_MAX_FRAME_COUNT)
	}
	return c.Effects.Validate()
}

// TargetFrameCount is round(loopDuration * loopCount * fps).
func (c ExportConfig) TargetFrameCount() int {
	return int(c.LoopDuration*float64(c.LoopCount)*float64(c.FPS) + 0.5)
}

// FrameInterval is the duration of one frame in seconds.
func (c ExportConfig) FrameInterval() float64 {
	return 1.0 / float64(c.FPS)
}
