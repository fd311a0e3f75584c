//go:build !headless

// gpu_vulkan.go - Vulkan effect backend with capability probe and software fallback

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

/*
gpu_vulkan.go - Vulkan-accelerated effect passes

The accelerated path expresses the dithering and pixelation passes as
per-pixel fragment shader work over a full-screen textured quad (sources in
gpu_shaders.go). The probe runs once at backend construction: loading the
Vulkan runtime and resolving the instance proc address. Any failure during
probing, device creation or pipeline compilation is caught here and the
backend silently degrades to the software strategy with identical observable
output (within EFFECT_EPSILON per channel).

Vulkan pipeline (TODO):
- VkInstance, VkDevice, VkQueue setup
- Compute or full-screen-quad graphics pipeline per effect pass
- Staging buffer upload, framebuffer readback

The software delegate serves two purposes:
1. Fallback when Vulkan is unavailable
2. Reference implementation for validating accelerated output
*/

package main

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// VulkanEffectBackend implements EffectBackend on the GPU where possible.
type VulkanEffectBackend struct {
	// Vulkan handles (held once the pipeline work lands)
	// instance       vk.Instance
	// physicalDevice vk.PhysicalDevice
	// device         vk.Device
	// queue          vk.Queue
	// ditherPipeline vk.Pipeline
	// pixelPipeline  vk.Pipeline

	initialized bool // true when the Vulkan runtime probed successfully

	// Software delegate; executes every pass until the device pipelines are
	// wired, and permanently when the probe fails.
	software *SoftwareBackend
}

// NewVulkanEffectBackend probes for Vulkan support and builds the backend.
// Never fails: an unusable Vulkan runtime produces a backend that runs on
// the software delegate.
func NewVulkanEffectBackend(palette Palette, resolver *NearestColorResolver) *VulkanEffectBackend {
	b := &VulkanEffectBackend{
		software: NewSoftwareBackend(palette, resolver),
	}
	if err := probeVulkan(); err != nil {
		fmt.Printf("Vulkan unavailable, using software effects: %v\n", err)
		return b
	}
	b.initialized = true
	return b
}

// probeVulkan loads the Vulkan runtime and verifies the loader entry points
// resolve. A panic from the loader (missing libvulkan) is converted to an
// error so the caller can fall back.
func probeVulkan() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("vulkan loader panic: %v", r)
		}
	}()
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return fmt.Errorf("resolve vkGetInstanceProcAddr: %w", err)
	}
	if err := vk.Init(); err != nil {
		return fmt.Errorf("init vulkan bindings: %w", err)
	}
	return nil
}

// Init initializes both paths with the working dimensions.
func (b *VulkanEffectBackend) Init(width, height int) error {
	// TODO: allocate staging buffers and per-pass pipelines at this size
	return b.software.Init(width, height)
}

// IsAccelerated reports whether the effect passes execute on the device. A
// usable runtime is not enough: every pass runs on the software delegate
// until the device pipelines land, so delegation is reported as such.
func (b *VulkanEffectBackend) IsAccelerated() bool {
	return false
}

// ApplyDithering runs the dithering pass.
func (b *VulkanEffectBackend) ApplyDithering(frame *Frame, cfg EffectConfig) (*Frame, error) {
	// TODO: dispatch ditherPipeline once the device path lands
	return b.software.ApplyDithering(frame, cfg)
}

// ApplyPixelation runs the pixelation pass.
func (b *VulkanEffectBackend) ApplyPixelation(frame *Frame, blockSize int) (*Frame, error) {
	// TODO: dispatch pixelPipeline once the device path lands
	return b.software.ApplyPixelation(frame, blockSize)
}

// Destroy releases device resources.
func (b *VulkanEffectBackend) Destroy() {
	if b.software != nil {
		b.software.Destroy()
	}
	b.initialized = false
}
