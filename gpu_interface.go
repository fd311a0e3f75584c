// gpu_interface.go - Effect backend interface and capability-probing factory

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import "fmt"

// EffectError provides detailed error context for effect backend operations.
type EffectError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *EffectError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("effect %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("effect %s failed: %s", e.Operation, e.Details)
}

func (e *EffectError) Unwrap() error {
	return e.Err
}

// EffectBackend executes the per-pixel effect passes. Two strategies exist:
// the CPU engines and a Vulkan-accelerated path. Callers must not depend on
// which path executed; accelerated output may differ from the CPU output
// only within EFFECT_EPSILON per channel.
type EffectBackend interface {
	// Lifecycle
	Init(width, height int) error
	Destroy()

	// Capability report; informational only
	IsAccelerated() bool

	// Effect passes. Both return a new frame and leave the input untouched.
	ApplyDithering(frame *Frame, cfg EffectConfig) (*Frame, error)
	ApplyPixelation(frame *Frame, blockSize int) (*Frame, error)
}

// Predefined effect backend types
const (
	EFFECT_BACKEND_AUTO     = iota // Probe for Vulkan, fall back to software
	EFFECT_BACKEND_SOFTWARE        // CPU engines only
	EFFECT_BACKEND_VULKAN          // Vulkan; falls back internally if unavailable
)

// NewEffectBackend creates an effect backend of the requested kind. The
// returned backend is always usable: probe or initialization failures on the
// accelerated path degrade to the software strategy instead of surfacing an
// error.
func NewEffectBackend(kind int, palette Palette, resolver *NearestColorResolver) (EffectBackend, error) {
	switch kind {
	case EFFECT_BACKEND_SOFTWARE:
		return NewSoftwareBackend(palette, resolver), nil
	case EFFECT_BACKEND_AUTO, EFFECT_BACKEND_VULKAN:
		return NewVulkanEffectBackend(palette, resolver), nil
	}
	return nil, &EffectError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", kind),
	}
}
