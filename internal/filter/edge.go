package filter

import (
	"github.com/gogpu/softrast/internal/blend"
	"github.com/gogpu/softrast/internal/color"
	"github.com/gogpu/softrast/internal/raster"
)

// EdgeColors decodes the 8 edge color registers. Edges are drawn half
// transparent when antialiasing is on.
func EdgeColors(regs *[8]uint16, antialiasing bool) [8]color.Color {
	alpha := uint8(0x1F)
	if antialiasing {
		alpha = 0x0F
	}
	var out [8]color.Color
	for i, c := range regs {
		out[i] = color.From555(c, alpha)
	}
	return out
}

// MarkEdges outlines opaque polygons. A pixel whose opaque ID is greater
// than a neighbour's paints that neighbour with the edge color of its own
// ID group (ID>>3). Using > instead of != keeps overlapping polygons of
// different IDs from getting a double edge.
func MarkEdges(fb *raster.Framebuffer, colors *[8]color.Color, blending bool) {
	w, h := fb.Width, fb.Height
	frags := fb.Fragments

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			f := &frags[i]
			if f.IsTranslucentPoly {
				continue
			}
			self := f.OpaqueID
			edge := colors[self>>3]

			isEdge := func(dx, dy int) bool {
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					return false
				}
				return self > frags[ny*w+nx].OpaqueID
			}
			draw := func(dx, dy int) {
				blend.AlphaBlend(&fb.Colors[i+dx+w*dy], edge, blending)
			}

			upLeft, up, upRight := isEdge(-1, -1), isEdge(0, -1), isEdge(1, -1)
			left, right := isEdge(-1, 0), isEdge(1, 0)
			downLeft, down, downRight := isEdge(-1, 1), isEdge(0, 1), isEdge(1, 1)

			if upLeft && upRight && downLeft && !downRight {
				draw(-1, -1)
			}
			if up && !down {
				draw(0, -1)
			}
			if upLeft && upRight && !downLeft && downRight {
				draw(1, -1)
			}
			if left && !right {
				draw(-1, 0)
			}
			if right && !left {
				draw(1, 0)
			}
			if upLeft && !upRight && downLeft && downRight {
				draw(-1, 1)
			}
			if down && !up {
				draw(0, 1)
			}
			if !upLeft && upRight && downLeft && downRight {
				draw(1, 1)
			}
		}
	}
}
