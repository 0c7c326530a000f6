package raster

import (
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softrast/internal/color"
)

// TexFormat extracts the texture format field (0 = no texture) from a
// texture parameter word.
func TexFormat(texParam uint32) uint32 {
	return (texParam >> 26) & 7
}

// TexSize returns the texture dimensions encoded in a texture parameter word.
func TexSize(texParam uint32) (width, height int) {
	return 8 << ((texParam >> 20) & 7), 8 << ((texParam >> 23) & 7)
}

// addressMode decodes one axis of the wrap bits: repeat enables wrapping,
// flip turns wrapping into mirroring. Flip without repeat still clamps.
func addressMode(repeat, flip bool) gputypes.AddressMode {
	switch {
	case repeat && flip:
		return gputypes.AddressModeMirrorRepeat
	case repeat:
		return gputypes.AddressModeRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}

// Sampler fetches texels from a decoded texture.
type Sampler struct {
	Enabled       bool
	Width, Height int
	WShift        int
	AddressU      gputypes.AddressMode
	AddressV      gputypes.AddressMode

	texels []color.Color
	round  bool
}

// Setup configures the sampler for a texture parameter word and its decoded
// texels. A nil texel slice (cache miss) disables sampling.
func (s *Sampler) Setup(texParam uint32, texels []color.Color, texturing, round bool) {
	s.WShift = int((texParam>>20)&7) + 3
	s.Width, s.Height = TexSize(texParam)
	s.AddressU = addressMode(texParam&(1<<16) != 0, texParam&(1<<18) != 0)
	s.AddressV = addressMode(texParam&(1<<17) != 0, texParam&(1<<19) != 0)
	s.texels = texels
	s.round = round
	s.Enabled = texturing && TexFormat(texParam) != 0 && len(texels) >= s.Width*s.Height
}

func wrap(v, size int, mode gputypes.AddressMode) int {
	switch mode {
	case gputypes.AddressModeRepeat:
		return v & (size - 1)
	case gputypes.AddressModeMirrorRepeat:
		v &= size<<1 - 1
		if v >= size {
			v = size<<1 - v - 1
		}
		return v
	default:
		return min(max(v, 0), size-1)
	}
}

// roundCoord rounds a texture coordinate to 1/256 of a texel, away from zero.
func roundCoord(v float32) float32 {
	if v > 0 {
		return float32(math.Floor(float64(v)*256+0.5) / 256)
	}
	return float32(-math.Floor(math.Abs(float64(v))*256+0.5) / 256)
}

// Sample returns the texel at (u, v) in texel units, or white when
// sampling is disabled.
func (s *Sampler) Sample(u, v float32) color.Color {
	if !s.Enabled {
		return color.White
	}
	var iu, iv int
	if s.round {
		// Rounded coordinates are truncated, not floored.
		iu, iv = int(roundCoord(u)), int(roundCoord(v))
	} else {
		iu, iv = int(math.Floor(float64(u))), int(math.Floor(float64(v)))
	}
	iu = wrap(iu, s.Width, s.AddressU)
	iv = wrap(iv, s.Height, s.AddressV)
	return s.texels[iv<<s.WShift+iu]
}
