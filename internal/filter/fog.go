package filter

import (
	"github.com/gogpu/softrast/internal/blend"
	"github.com/gogpu/softrast/internal/color"
	"github.com/gogpu/softrast/internal/raster"
)

// Fog blends fogColor into every fogged pixel by the table density at its
// depth. In alpha-only mode only the alpha channel is fogged.
func Fog(fb *raster.Framebuffer, table *FogTable, fogColor color.Color, alphaOnly bool) {
	for i := range fb.Fragments {
		f := &fb.Fragments[i]
		if !f.Fogged {
			continue
		}
		idx := min(f.Depth>>9, FogTableSize-1)
		blend.Fog(&fb.Colors[i], table[idx], fogColor, alphaOnly)
	}
}
