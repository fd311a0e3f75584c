//go:build headless

// gpu_vulkan_headless.go - Headless stand-in for the Vulkan effect backend

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

// VulkanEffectBackend under the headless build never probes a device and
// always runs on the software delegate. Keeps the test binary free of the
// Vulkan loader.
type VulkanEffectBackend struct {
	software *SoftwareBackend
}

func NewVulkanEffectBackend(palette Palette, resolver *NearestColorResolver) *VulkanEffectBackend {
	return &VulkanEffectBackend{software: NewSoftwareBackend(palette, resolver)}
}

func (b *VulkanEffectBackend) Init(width, height int) error {
	return b.software.Init(width, height)
}

func (b *VulkanEffectBackend) IsAccelerated() bool {
	return false
}

func (b *VulkanEffectBackend) ApplyDithering(frame *Frame, cfg EffectConfig) (*Frame, error) {
	return b.software.ApplyDithering(frame, cfg)
}

func (b *VulkanEffectBackend) ApplyPixelation(frame *Frame, blockSize int) (*Frame, error) {
	return b.software.ApplyPixelation(frame, blockSize)
}

func (b *VulkanEffectBackend) Destroy() {
	b.software.Destroy()
}
