// Package color provides the hardware-native color type of the rasterizer
// and conversions from the 15-bit register formats it is fed with.
package color

// Color is a visible pixel at hardware precision: 6-bit RGB components
// in [0,63] and a 5-bit alpha in [0,31].
type Color struct {
	R, G, B, A uint8
}

// Channel limits.
const (
	MaxRGB   = 63
	MaxAlpha = 31
)

// White is the sample returned when no texture is bound.
var White = Color{R: MaxRGB, G: MaxRGB, B: MaxRGB, A: MaxAlpha}

// Opaque reports whether the color has full alpha.
func (c Color) Opaque() bool {
	return c.A == MaxAlpha
}

// Expand5to6 widens a 5-bit component to 6 bits.
// Zero stays zero; any other value becomes 2x+1 so that 31 maps to 63.
func Expand5to6(x uint8) uint8 {
	if x == 0 {
		return 0
	}
	return x<<1 + 1
}

// From555 decodes a packed RGB555 value (red in the low bits) into a
// 6-bit color with the given 5-bit alpha.
func From555(c uint16, alpha uint8) Color {
	return Color{
		R: Expand5to6(uint8(c & 0x1F)),
		G: Expand5to6(uint8((c >> 5) & 0x1F)),
		B: Expand5to6(uint8((c >> 10) & 0x1F)),
		A: alpha & 0x1F,
	}
}

// FromRegister decodes a 32-bit color register that carries RGB555 in
// bits 0-14 and a 5-bit alpha in bits 16-20, as used by the clear and fog
// color registers.
func FromRegister(reg uint32) Color {
	return From555(uint16(reg&0x7FFF), uint8((reg>>16)&0x1F))
}

// expandTone widens a 5-bit component to 6 bits through its 8-bit
// expansion, the path toon colors take.
func expandTone(x uint8) uint8 {
	return x<<1 | x>>4
}

// FromToon555 decodes a toon table entry. Alpha is left at zero; toon
// colors only ever feed the RGB channels.
func FromToon555(c uint16) Color {
	return Color{
		R: expandTone(uint8(c & 0x1F)),
		G: expandTone(uint8((c >> 5) & 0x1F)),
		B: expandTone(uint8((c >> 10) & 0x1F)),
	}
}
