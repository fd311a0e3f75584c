// gpu_software.go - Software (CPU) effect backend

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

// SoftwareBackend runs the effect passes on the CPU engines. It is both the
// fallback when Vulkan is unavailable and the reference implementation the
// accelerated path is validated against.
type SoftwareBackend struct {
	width, height int
	dither        *DitheringEngine
	pixelate      *PixelationEngine
}

// NewSoftwareBackend creates a CPU backend bound to the session's palette
// and resolver.
func NewSoftwareBackend(palette Palette, resolver *NearestColorResolver) *SoftwareBackend {
	return &SoftwareBackend{
		dither:   NewDitheringEngine(palette, resolver),
		pixelate: NewPixelationEngine(),
	}
}

// Init records the working dimensions.
func (b *SoftwareBackend) Init(width, height int) error {
	if width <= 0 || height <= 0 {
		return &EffectError{
			Operation: "init",
			Details:   "invalid dimensions",
		}
	}
	b.width = width
	b.height = height
	return nil
}

// IsAccelerated reports false: this is the CPU strategy.
func (b *SoftwareBackend) IsAccelerated() bool {
	return false
}

// ApplyDithering quantizes the frame to the session palette.
func (b *SoftwareBackend) ApplyDithering(frame *Frame, cfg EffectConfig) (*Frame, error) {
	return b.dither.Apply(frame, cfg), nil
}

// ApplyPixelation flattens blockSize x blockSize blocks to their average.
func (b *SoftwareBackend) ApplyPixelation(frame *Frame, blockSize int) (*Frame, error) {
	return b.pixelate.Apply(frame, blockSize), nil
}

// Destroy releases nothing; the CPU engines hold no device resources.
func (b *SoftwareBackend) Destroy() {}
