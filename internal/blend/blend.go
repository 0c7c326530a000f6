// Package blend provides the fixed-point shading tables and the alpha and
// fog blend equations of the rasterizer.
//
// All arithmetic runs at hardware precision: 6-bit color components and
// 5-bit alpha. Results are exact; there is no rounding beyond the shifts the
// hardware performs.
package blend

import "github.com/gogpu/softrast/internal/color"

// AlphaBlend blends src into dst.
//
// With blending enabled an opaque source, or a fully transparent
// destination, replaces dst outright. Otherwise each color channel becomes
//
//	((a+1)*src + (31-a)*dst) >> 5
//
// and the resulting alpha is the larger of the two. With blending disabled
// any source with non-zero alpha replaces dst.
func AlphaBlend(dst *color.Color, src color.Color, enabled bool) {
	if !enabled {
		if src.A != 0 {
			*dst = src
		}
		return
	}

	if src.A == color.MaxAlpha || dst.A == 0 {
		*dst = src
	} else {
		alpha := uint16(src.A) + 1
		inv := 32 - alpha
		dst.R = uint8((alpha*uint16(src.R) + inv*uint16(dst.R)) >> 5)
		dst.G = uint8((alpha*uint16(src.G) + inv*uint16(dst.G)) >> 5)
		dst.B = uint8((alpha*uint16(src.B) + inv*uint16(dst.B)) >> 5)
	}
	dst.A = max(src.A, dst.A)
}

// Fog mixes the fog color into dst with a density in [0,128].
// A density of 127 is treated as 128 (full replacement).
// In alpha-only mode only the alpha channel is fogged.
func Fog(dst *color.Color, density uint8, fog color.Color, alphaOnly bool) {
	d := uint16(density)
	if d == 127 {
		d = 128
	}
	inv := 128 - d
	if !alphaOnly {
		dst.R = uint8((inv*uint16(dst.R) + d*uint16(fog.R)) >> 7)
		dst.G = uint8((inv*uint16(dst.G) + d*uint16(fog.G)) >> 7)
		dst.B = uint8((inv*uint16(dst.B) + d*uint16(fog.B)) >> 7)
	}
	dst.A = uint8((inv*uint16(dst.A) + d*uint16(fog.A)) >> 7)
}

// SaturatingAdd adds two 6-bit components, clamping at 63.
func SaturatingAdd(a, b uint8) uint8 {
	return min(color.MaxRGB, a+b)
}
