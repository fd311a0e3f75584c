// gpu_shaders.go - Embedded shader sources for the Vulkan effect backend

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

/*
gpu_shaders.go - Per-pixel effect passes as full-screen quad shaders

GLSL sources are kept as reference comments; the SPIR-V binaries are
compiled with:
  glslc -fshader-stage=fragment dither.frag -o dither.spv
  glslc -fshader-stage=fragment pixelate.frag -o pixelate.spv

Both passes sample the captured frame as a texture and write one output
pixel each, mirroring the CPU engines' math exactly. The ordered-dither pass
is a direct shader port; Floyd-Steinberg stays CPU-only because its
left-to-right data dependency does not map to per-pixel parallel execution.
*/

package main

// Ordered-dither fragment shader GLSL source (for reference)
//
// #version 450
//
// layout(location = 0) in vec2 fragTexCoord;
// layout(location = 0) out vec4 outColor;
//
// layout(binding = 0) uniform sampler2D frameSampler;
// layout(binding = 1) uniform sampler2D bayerSampler;   // 8x8 threshold tile
// layout(binding = 2) uniform PaletteBlock {
//     vec4 colors[256];
//     int  count;
// } palette;
//
// layout(push_constant) uniform PushConstants {
//     float frameWidth;
//     float frameHeight;
//     float intensity;
// } pc;
//
// void main() {
//     vec2 pixel = fragTexCoord * vec2(pc.frameWidth, pc.frameHeight);
//     float threshold = texture(bayerSampler, fract(pixel / 8.0)).r - 0.5;
//     vec3 adjusted = clamp(texture(frameSampler, fragTexCoord).rgb
//                           + threshold * pc.intensity, 0.0, 1.0);
//
//     // Nearest palette entry by squared RGB distance; first entry wins ties.
//     int best = 0;
//     float bestDist = 1e9;
//     for (int i = 0; i < palette.count; i++) {
//         vec3 d = adjusted - palette.colors[i].rgb;
//         float dist = dot(d, d);
//         if (dist < bestDist) { bestDist = dist; best = i; }
//     }
//     outColor = vec4(palette.colors[best].rgb, 1.0);
// }

// Pixelation fragment shader GLSL source (for reference)
//
// #version 450
//
// layout(location = 0) in vec2 fragTexCoord;
// layout(location = 0) out vec4 outColor;
//
// layout(binding = 0) uniform sampler2D frameSampler;
//
// layout(push_constant) uniform PushConstants {
//     float frameWidth;
//     float frameHeight;
//     int   blockSize;
// } pc;
//
// void main() {
//     vec2 pixel = floor(fragTexCoord * vec2(pc.frameWidth, pc.frameHeight));
//     vec2 block = floor(pixel / float(pc.blockSize)) * float(pc.blockSize);
//
//     // Average the whole block; edge blocks clamp to the frame bounds.
//     vec3 sum = vec3(0.0);
//     int n = 0;
//     for (int dy = 0; dy < pc.blockSize; dy++) {
//         for (int dx = 0; dx < pc.blockSize; dx++) {
//             vec2 p = block + vec2(dx, dy);
//             if (p.x >= pc.frameWidth || p.y >= pc.frameHeight) continue;
//             sum += texelFetch(frameSampler, ivec2(p), 0).rgb;
//             n++;
//         }
//     }
//     outColor = vec4(sum / float(n), 1.0);
// }

// DitherShaderSPV contains the compiled SPIR-V ordered-dither fragment shader.
// Placeholder header only until the device pipeline lands; regenerate from
// the GLSL above.
var DitherShaderSPV = []byte{
	// SPIR-V magic number
	0x03, 0x02, 0x23, 0x07,
	// Version 1.0
	0x00, 0x00, 0x01, 0x00,
	// Generator magic
	0x00, 0x00, 0x00, 0x00,
	// Bound
	0x00, 0x00, 0x00, 0x00,
	// Schema
	0x00, 0x00, 0x00, 0x00,
}

// PixelateShaderSPV contains the compiled SPIR-V pixelation fragment shader.
// Placeholder header only until the device pipeline lands; regenerate from
// the GLSL above.
var PixelateShaderSPV = []byte{
	// SPIR-V magic number
	0x03, 0x02, 0x23, 0x07,
	// Version 1.0
	0x00, 0x00, 0x01, 0x00,
	// Generator magic
	0x00, 0x00, 0x00, 0x00,
	// Bound
	0x00, 0x00, 0x00, 0x00,
	// Schema
	0x00, 0x00, 0x00, 0x00,
}

// DitherPushConstants defines the push constant layout for the dither pass.
type DitherPushConstants struct {
	FrameWidth  float32
	FrameHeight float32
	Intensity   float32 // 0.0-1.0
}

// PixelatePushConstants defines the push constant layout for the pixelation
// pass.
type PixelatePushConstants struct {
	FrameWidth  float32
	FrameHeight float32
	BlockSize   int32
}

// EFFECT_EPSILON bounds the allowed per-channel divergence between the
// accelerated and software paths (GPU interpolation and float precision).
const EFFECT_EPSILON = 2.0 / 255.0
