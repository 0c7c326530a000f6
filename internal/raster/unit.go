package raster

import (
	"github.com/gogpu/softrast/internal/blend"
	"github.com/gogpu/softrast/internal/color"
	"github.com/gogpu/softrast/internal/parallel"
)

// Shading selects how toon-mode polygons combine with the toon table.
type Shading uint8

const (
	// ShadingToon multiplies the texel by the toon color.
	ShadingToon Shading = iota
	// ShadingHighlight modulates by the vertex intensity and adds the toon color.
	ShadingHighlight
)

// State is the per-frame rendering state every unit reads.
type State struct {
	WBuffer       bool
	AlphaTest     bool
	AlphaTestRef  uint8
	AlphaBlending bool
	Texturing     bool
	Shading       Shading
	Toon          [32]color.Color

	// DecalTolerance widens the depth-equal test to |depth-dst| <= tolerance.
	DecalTolerance uint32

	// LineHack gives zero-width spans of line polygons a minimum width.
	LineHack bool

	// TexCoordRounding rounds texture coordinates to 1/256 texel before
	// truncating them instead of flooring.
	TexCoordRounding bool
}

// Frame is one frame's immutable rasterization input plus its target.
type Frame struct {
	State  State
	Polys  []ClippedPolygon
	Target *Framebuffer
}

// Unit rasterizes the scanlines its slice owns.
type Unit struct {
	Slice parallel.Slice

	tables *blend.Tables

	// Per-frame and per-polygon state.
	frame    *Frame
	fb       *Framebuffer
	attr     PolyAttr
	sampler  Sampler
	verts    [MaxClippedVerts]*Vertex
	lineHack bool
}

// NewUnit creates a unit drawing the rows of s.
func NewUnit(s parallel.Slice, tables *blend.Tables) *Unit {
	return &Unit{
		Slice:  s,
		tables: tables,
	}
}

// Render draws every visible polygon of the frame into the unit's rows,
// in list order.
func (u *Unit) Render(f *Frame) {
	u.frame = f
	u.fb = f.Target
	defer func() {
		u.frame = nil
		u.fb = nil
	}()

	st := &f.State
	for i := range f.Polys {
		cp := &f.Polys[i]
		if !cp.Visible {
			continue
		}

		u.attr = cp.Attr
		u.sampler.Setup(cp.Poly.TexParam, cp.Texture, st.Texturing, st.TexCoordRounding)
		for j := range u.verts {
			if j < cp.Count {
				u.verts[j] = &cp.Verts[j]
			} else {
				u.verts[j] = nil
			}
		}
		u.lineHack = st.LineHack && cp.Poly.Line

		// Screen Y points down, so front faces arrive counter-clockwise and
		// are reversed into the clockwise order the shape engine walks.
		u.drawPolygon(cp.Count, !u.attr.Backfacing)
	}
}
