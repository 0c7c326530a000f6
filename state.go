package softrast

import "github.com/gogpu/softrast/internal/raster"

// Shading selects how toon-mode polygons use the toon table.
type Shading = raster.Shading

// Toon shading modes.
const (
	ShadingToon      = raster.ShadingToon
	ShadingHighlight = raster.ShadingHighlight
)

// ClearImageSize is the width and height of the clear image planes.
const ClearImageSize = 256

// ClearImage replaces the flat clear color and depth with a scrollable
// 256x256 image.
type ClearImage struct {
	// Color holds RGB555 pixels; bit 15 makes the pixel opaque.
	Color []uint16
	// Depth holds 15-bit depths; bit 15 sets the fog flag.
	Depth []uint16

	ScrollX, ScrollY uint8
}

func (c *ClearImage) valid() bool {
	const n = ClearImageSize * ClearImageSize
	return len(c.Color) >= n && len(c.Depth) >= n
}

// RenderState is the per-frame register state the rasterizer reads.
type RenderState struct {
	// ClearColor holds RGB555 in bits 0-14, the fog flag in bit 15,
	// alpha in bits 16-20 and the opaque polygon ID in bits 24-29.
	ClearColor uint32
	// ClearDepth is a 24-bit depth; see Depth15To24.
	ClearDepth uint32
	// ClearImage, when set, is used instead of ClearColor and ClearDepth.
	ClearImage *ClearImage

	FogEnabled   bool
	FogAlphaOnly bool
	// FogColor uses the ClearColor layout without ID and fog bits.
	FogColor   uint32
	FogOffset  uint32
	FogShift   uint8
	FogDensity [32]uint8

	ToonTable [32]uint16
	Shading   Shading

	AlphaTest     bool
	AlphaTestRef  uint8
	AlphaBlending bool
	Texturing     bool
	WBuffer       bool

	EdgeMarking    bool
	EdgeMarkColors [8]uint16
	Antialiasing   bool
}

// Depth15To24 expands a 15-bit depth register value to 24 bits.
// The maximum 0x7FFF maps to the far value 0xFFFFFF.
func Depth15To24(d uint16) uint32 {
	d &= 0x7FFF
	v := uint32(d) * 0x200
	if d == 0x7FFF {
		v += 0x1FF
	}
	return v
}
