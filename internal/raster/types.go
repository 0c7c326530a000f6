package raster

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softrast/internal/color"
)

// MaxClippedVerts is the largest vertex count a clipped polygon can have.
const MaxClippedVerts = 10

// Native screen size. Framebuffers are this size times the render scale.
const (
	NativeWidth  = 256
	NativeHeight = 192
)

// Vertex is a polygon vertex as produced by the geometry front end.
//
// Before the viewport transform X, Y, Z, W are clip-space coordinates.
// U and V are texel coordinates and Color holds 6-bit intensities in [0,63].
type Vertex struct {
	X, Y, Z, W float32
	U, V       float32
	Color      [3]float32
}

// Viewport is a polygon's target rectangle in native pixels with a
// bottom-left origin. A zero Width or Height selects the whole screen.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Polygon is one primitive of a frame's polygon list.
type Polygon struct {
	// Indices into the frame's vertex list, 3 or 4 entries.
	Indices []int

	// Attr is the raw polygon attribute word, see DecodePolyAttr.
	Attr uint32

	// TexParam and TexPalette select and configure the texture.
	TexParam   uint32
	TexPalette uint32

	Viewport Viewport

	// Line marks primitives emitted by line drawing commands. These get the
	// minimum one pixel span treatment when the line hack is enabled.
	Line bool
}

// ClippedPolygon is a polygon after frustum clipping.
//
// The engine rewrites Verts in place: first into screen space, then X and Y
// are snapped to 28.4 fixed point (see FDot4), stored as whole floats.
type ClippedPolygon struct {
	Poly  *Polygon
	Count int
	Verts [MaxClippedVerts]Vertex

	// Set by the orchestrator before rasterization.
	Attr    PolyAttr
	Visible bool
	Texture []color.Color
}

// Mode is the polygon shading mode.
type Mode uint8

// Shading modes.
const (
	ModeModulate Mode = iota
	ModeDecal
	ModeToon
	ModeShadow
)

// PolyAttr is the decoded polygon attribute word.
type PolyAttr struct {
	Raw uint32

	Mode                  Mode
	RenderBack            bool
	RenderFront           bool
	TranslucentDepthWrite bool
	FarPlaneIntersect     bool
	DepthEqual            bool
	Fogged                bool
	Alpha                 uint8
	PolyID                uint8

	// Derived during orchestration.
	Backfacing  bool
	Translucent bool
}

// DecodePolyAttr decodes a raw polygon attribute word.
func DecodePolyAttr(attr uint32) PolyAttr {
	return PolyAttr{
		Raw:                   attr,
		Mode:                  Mode((attr >> 4) & 3),
		RenderBack:            attr&(1<<6) != 0,
		RenderFront:           attr&(1<<7) != 0,
		TranslucentDepthWrite: attr&(1<<11) != 0,
		FarPlaneIntersect:     attr&(1<<12) != 0,
		DepthEqual:            attr&(1<<14) != 0,
		Fogged:                attr&(1<<15) != 0,
		Alpha:                 uint8((attr >> 16) & 0x1F),
		PolyID:                uint8((attr >> 24) & 0x3F),
	}
}

// IsTranslucent reports whether a polygon blends with what is behind it:
// either its alpha is below 31 or its texture format carries alpha
// (A3I5 or A5I3).
func IsTranslucent(attr, texParam uint32) bool {
	if attr&0x001F0000 != 0x001F0000 {
		return true
	}
	format := (texParam >> 26) & 7
	return format == 1 || format == 6
}

// CullMode maps the render-front/render-back bits onto the face culling
// vocabulary of the GPU backend. Polygons with neither bit set are never
// drawn; Visible handles that case.
func (a PolyAttr) CullMode() gputypes.CullMode {
	switch {
	case a.RenderFront && a.RenderBack:
		return gputypes.CullModeNone
	case a.RenderBack:
		return gputypes.CullModeFront
	default:
		return gputypes.CullModeBack
	}
}

// DepthCompare returns the depth test the polygon uses.
func (a PolyAttr) DepthCompare() gputypes.CompareFunction {
	if a.DepthEqual {
		return gputypes.CompareFunctionEqual
	}
	return gputypes.CompareFunctionLess
}

// Visible reports whether a polygon facing the given way is drawn.
func (a PolyAttr) Visible(backfacing bool) bool {
	// Shadow polygons that draw (non-zero ID) never draw their back faces.
	if a.Mode == ModeShadow && a.PolyID != 0 {
		return !backfacing
	}
	if !a.RenderFront && !a.RenderBack {
		return false
	}
	switch a.CullMode() {
	case gputypes.CullModeFront:
		return backfacing
	case gputypes.CullModeBack:
		return !backfacing
	default:
		return true
	}
}

// UnsetTranslucentID marks a fragment no translucent polygon has touched.
const UnsetTranslucentID = 255

// Fragment is the hidden-surface state of one pixel.
type Fragment struct {
	Depth             uint32
	Stencil           uint8
	OpaqueID          uint8
	TranslucentID     uint8
	IsTranslucentPoly bool
	Fogged            bool
}

// Framebuffer is the render target shared by all units of a frame.
type Framebuffer struct {
	Width, Height int
	Fragments     []Fragment
	Colors        []color.Color
}

// NewFramebuffer allocates a framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:     width,
		Height:    height,
		Fragments: make([]Fragment, width*height),
		Colors:    make([]color.Color, width*height),
	}
}

// Clear resets every fragment and color.
func (fb *Framebuffer) Clear(f Fragment, c color.Color) {
	for i := range fb.Fragments {
		fb.Fragments[i] = f
	}
	for i := range fb.Colors {
		fb.Colors[i] = c
	}
}
