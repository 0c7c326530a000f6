package color

// expand6LUT maps a 6-bit component to 8 bits, replicating the high bits
// into the low ones so that 63 becomes 255.
var expand6LUT [64]uint8

// expand5LUT maps a 5-bit alpha to 8 bits the same way.
var expand5LUT [32]uint8

func init() {
	for i := range expand6LUT {
		expand6LUT[i] = uint8(i<<2 | i>>4)
	}
	for i := range expand5LUT {
		expand5LUT[i] = uint8(i<<3 | i>>2)
	}
}

// To8 converts a 6-bit color component to 8 bits.
func To8(v uint8) uint8 {
	return expand6LUT[v&0x3F]
}

// AlphaTo8 converts a 5-bit alpha to 8 bits.
func AlphaTo8(a uint8) uint8 {
	return expand5LUT[a&0x1F]
}

// RGBA8 returns the color as non-premultiplied 8-bit components.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return To8(c.R), To8(c.G), To8(c.B), AlphaTo8(c.A)
}
