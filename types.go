package softrast

import (
	"github.com/gogpu/softrast/internal/cache"
	"github.com/gogpu/softrast/internal/color"
	"github.com/gogpu/softrast/internal/raster"
	"github.com/gogpu/softrast/internal/texture"
)

// Geometry and buffer types shared with the rasterizer core.
type (
	// Vertex is a clip-space vertex with texel coordinates and a 6-bit color.
	Vertex = raster.Vertex
	// Polygon is one entry of a frame's polygon list.
	Polygon = raster.Polygon
	// Viewport is a polygon's target rectangle in native pixels.
	Viewport = raster.Viewport
	// ClippedPolygon is a polygon after clipping, up to MaxClippedVerts vertices.
	ClippedPolygon = raster.ClippedPolygon
	// PolyAttr is a decoded polygon attribute word.
	PolyAttr = raster.PolyAttr
	// Fragment is the hidden-surface state of one pixel.
	Fragment = raster.Fragment
	// FragmentColor is a pixel color: 6-bit RGB, 5-bit alpha.
	FragmentColor = color.Color
)

// MaxClippedVerts is the largest vertex count a clipper may produce.
const MaxClippedVerts = raster.MaxClippedVerts

// Native screen size.
const (
	NativeWidth  = raster.NativeWidth
	NativeHeight = raster.NativeHeight
)

// TextureSource decodes textures for the texture cache. A nil result or an
// error makes polygons using the texture render untextured.
type TextureSource = texture.Source

// TextureSourceFunc adapts a function to TextureSource.
type TextureSourceFunc = texture.SourceFunc

// Clipper clips a polygon against the view volume and appends the
// resulting polygons, in clip space, to dst.
type Clipper interface {
	ClipPolygon(dst []ClippedPolygon, poly *Polygon, verts []Vertex) []ClippedPolygon
}

// Renderer is the frame-level contract shared by rasterizer backends.
type Renderer interface {
	// Init prepares the renderer for use. It may be called again to
	// start over from a clean state.
	Init() error

	// Reset drops cached textures and clears the buffers.
	Reset()

	// Render draws polygons[indices[i]] in order.
	Render(state *RenderState, vertices []Vertex, polygons []Polygon, indices []int)

	// RenderFinish completes the last rendered frame.
	RenderFinish()

	// VramReconfigure signals that texture memory was remapped.
	VramReconfigure()

	// Close releases the renderer's workers.
	Close()
}

// TextureStats reports texture cache usage.
type TextureStats = cache.Stats
