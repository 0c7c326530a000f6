// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package softrast

import (
	"fmt"
	stdimage "image"

	"github.com/gogpu/softrast/internal/blend"
	"github.com/gogpu/softrast/internal/clip"
	"github.com/gogpu/softrast/internal/color"
	"github.com/gogpu/softrast/internal/filter"
	"github.com/gogpu/softrast/internal/image"
	"github.com/gogpu/softrast/internal/parallel"
	"github.com/gogpu/softrast/internal/raster"
	"github.com/gogpu/softrast/internal/texture"
)

// Engine is the software rasterizer. An Engine is driven from a single
// goroutine; it parallelizes internally.
type Engine struct {
	opts          options
	width, height int

	tables   *blend.Tables
	units    []*raster.Unit
	work     []func()
	pool     *parallel.Pool
	pending  *parallel.Join
	textures *texture.Cache
	clipper  Clipper

	fb       *raster.Framebuffer
	frame    raster.Frame
	polys    []ClippedPolygon
	state    RenderState
	fogTable filter.FogTable

	out      []byte
	rendered bool
	finished bool
	closed   bool
}

var _ Renderer = (*Engine)(nil)

// New creates an engine and initializes it.
func New(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.scale < 1 || o.scale > MaxScale {
		return nil, fmt.Errorf("softrast: scale %d: %w", o.scale, ErrInvalidScale)
	}
	if err := image.CheckFormat(o.format); err != nil {
		return nil, fmt.Errorf("softrast: output format: %w", err)
	}

	e := &Engine{
		opts:   o,
		width:  NativeWidth * o.scale,
		height: NativeHeight * o.scale,
		tables: blend.NewTables(),
	}
	if err := e.Init(); err != nil {
		return nil, err
	}

	Logger().Info("softrast: engine created",
		"cores", len(e.units),
		"scale", o.scale,
		"format", o.format,
	)
	return e, nil
}

// Init allocates the buffers and worker threads. Calling Init on a live
// engine restarts it from a clean state.
func (e *Engine) Init() error {
	if e.closed {
		return ErrClosed
	}
	e.wait()
	if e.pool != nil {
		e.pool.Close()
		e.pool = nil
	}

	slices := parallel.Partition(e.opts.cores)
	e.units = make([]*raster.Unit, len(slices))
	e.work = make([]func(), len(slices))
	for i, s := range slices {
		u := raster.NewUnit(s, e.tables)
		e.units[i] = u
		e.work[i] = func() { u.Render(&e.frame) }
	}
	if len(slices) > 1 {
		e.pool = parallel.NewPool(len(slices))
		Logger().Debug("softrast: rasterizer threads started", "threads", e.pool.Threads())
	}

	e.clipper = e.opts.clipper
	if e.clipper == nil {
		e.clipper = clip.NewFrustum()
	}
	e.textures = texture.NewCache(e.opts.textures, e.opts.textureCacheSize)
	e.fb = raster.NewFramebuffer(e.width, e.height)
	e.out = make([]byte, e.width*e.height*image.BytesPerPixel)
	e.Reset()
	return nil
}

// Reset drops cached textures and clears the buffers to transparent black
// at the far plane.
func (e *Engine) Reset() {
	e.wait()
	e.textures.Invalidate()
	e.fb.Clear(raster.Fragment{
		Depth:         0xFFFFFF,
		TranslucentID: raster.UnsetTranslucentID,
	}, color.Color{})
	clear(e.out)
	e.rendered = false
	e.finished = false
}

// VramReconfigure drops every decoded texture; they are decoded again on
// next use.
func (e *Engine) VramReconfigure() {
	e.wait()
	e.textures.Invalidate()
}

// Close stops the worker threads. The engine cannot be used afterwards.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.wait()
	if e.pool != nil {
		e.pool.Close()
		e.pool = nil
	}
	e.closed = true
	Logger().Info("softrast: engine closed")
}

func (e *Engine) wait() {
	e.pending.Wait()
	e.pending = nil
}

// Render draws polygons[indices[i]] in index order. Out of range indices
// are skipped.
//
// The polygons slice must stay unchanged until RenderFinish returns.
func (e *Engine) Render(state *RenderState, vertices []Vertex, polygons []Polygon, indices []int) {
	if e.closed {
		return
	}
	e.wait()
	e.state = *state
	st := &e.state

	if st.FogEnabled {
		e.fogTable.Update(st.FogOffset, st.FogShift, &st.FogDensity)
	}
	e.clear(st)

	e.polys = e.polys[:0]
	for _, idx := range indices {
		if idx < 0 || idx >= len(polygons) {
			Logger().Debug("softrast: polygon index out of range", "index", idx, "polygons", len(polygons))
			continue
		}
		e.polys = e.clipper.ClipPolygon(e.polys, &polygons[idx], vertices)
	}
	for i := range e.polys {
		e.setupPolygon(&e.polys[i])
	}

	e.frame = raster.Frame{
		State:  e.rasterState(st),
		Polys:  e.polys,
		Target: e.fb,
	}

	if e.pool == nil {
		e.units[0].Render(&e.frame)
	} else {
		e.pending = e.pool.Dispatch(e.work)
	}
	e.rendered = true
	e.finished = false
}

// RenderFinish waits for the rasterizer threads, applies edge marking and
// fog and converts the frame to the output format.
func (e *Engine) RenderFinish() {
	if !e.rendered || e.finished {
		return
	}
	e.wait()
	e.textures.EvictFrame()

	st := &e.state
	if st.EdgeMarking {
		colors := filter.EdgeColors(&st.EdgeMarkColors, st.Antialiasing)
		filter.MarkEdges(e.fb, &colors, st.AlphaBlending)
	}
	if st.FogEnabled {
		filter.Fog(e.fb, &e.fogTable, color.FromRegister(st.FogColor), st.FogAlphaOnly)
	}

	// The format was validated by New.
	_ = image.Convert(e.out, e.fb.Colors, e.opts.format)
	e.finished = true
}

func (e *Engine) rasterState(st *RenderState) raster.State {
	rs := raster.State{
		WBuffer:          st.WBuffer,
		AlphaTest:        st.AlphaTest,
		AlphaTestRef:     st.AlphaTestRef,
		AlphaBlending:    st.AlphaBlending,
		Texturing:        st.Texturing,
		Shading:          st.Shading,
		DecalTolerance:   e.opts.decalTolerance,
		LineHack:         e.opts.lineHack,
		TexCoordRounding: e.opts.texCoordRounding,
	}
	for i, c := range st.ToonTable {
		rs.Toon[i] = color.FromToon555(c)
	}
	return rs
}

// clear resets the framebuffer from the clear registers or the clear image.
func (e *Engine) clear(st *RenderState) {
	id := uint8((st.ClearColor >> 24) & 0x3F)

	if st.ClearImage == nil || !st.ClearImage.valid() {
		if st.ClearImage != nil {
			Logger().Debug("softrast: clear image too small, using clear color")
		}
		e.fb.Clear(raster.Fragment{
			Depth:         st.ClearDepth & 0xFFFFFF,
			OpaqueID:      id,
			TranslucentID: raster.UnsetTranslucentID,
			Fogged:        st.ClearColor&(1<<15) != 0,
		}, color.FromRegister(st.ClearColor))
		return
	}

	img := st.ClearImage
	s := e.opts.scale
	for y := 0; y < e.height; y++ {
		row := ((y/s + int(img.ScrollY)) & 0xFF) * ClearImageSize
		for x := 0; x < e.width; x++ {
			i := row + ((x/s + int(img.ScrollX)) & 0xFF)
			c, d := img.Color[i], img.Depth[i]

			adr := y*e.width + x
			e.fb.Colors[adr] = color.From555(c, uint8(31*(c>>15)))
			e.fb.Fragments[adr] = raster.Fragment{
				Depth:         Depth15To24(d),
				OpaqueID:      id,
				TranslucentID: raster.UnsetTranslucentID,
				Fogged:        d>>15 != 0,
			}
		}
	}
}

// setupPolygon maps a clipped polygon to screen space, decides its
// visibility and resolves its texture.
func (e *Engine) setupPolygon(cp *ClippedPolygon) {
	poly := cp.Poly
	cp.Attr = raster.DecodePolyAttr(poly.Attr)
	cp.Attr.Translucent = raster.IsTranslucent(poly.Attr, poly.TexParam)
	cp.Visible = false
	cp.Texture = nil

	if cp.Count < 3 || cp.Count > MaxClippedVerts {
		return
	}
	if !e.viewportTransform(cp) {
		Logger().Debug("softrast: polygon behind the eye", "attr", poly.Attr)
		return
	}

	cp.Attr.Backfacing = backfacing(cp.Verts[:cp.Count])
	cp.Visible = cp.Attr.Visible(cp.Attr.Backfacing)
	if !cp.Visible {
		return
	}

	for i := 0; i < cp.Count; i++ {
		v := &cp.Verts[i]
		v.X = float32(raster.FDot4FromFloat32(v.X))
		v.Y = float32(raster.FDot4FromFloat32(v.Y))
	}
	if e.state.Texturing {
		cp.Texture = e.textures.Lookup(poly.TexParam, poly.TexPalette)
	}
}

// viewportTransform divides by W and scales the vertices into the
// framebuffer. It reports false when a vertex has a non-positive W.
func (e *Engine) viewportTransform(cp *ClippedPolygon) bool {
	s := float32(e.opts.scale)
	xmax, ymax := float32(e.width), float32(e.height)
	if e.opts.scale > 1 {
		xmax -= 0.001
		ymax -= 0.001
	}

	vp := cp.Poly.Viewport
	if vp.Width == 0 || vp.Height == 0 {
		vp = Viewport{Width: NativeWidth, Height: NativeHeight}
	}

	for i := 0; i < cp.Count; i++ {
		if !(cp.Verts[i].W > 0) {
			return false
		}
	}
	for i := 0; i < cp.Count; i++ {
		v := &cp.Verts[i]
		w := v.W
		x := (v.X + w) / (2 * w)
		y := (v.Y + w) / (2 * w)
		v.Z = (v.Z + w) / (2 * w)
		v.U /= w
		v.V /= w
		for c := range v.Color {
			v.Color[c] /= w
		}

		x = x*float32(vp.Width)*s + float32(vp.X)*s
		y = y*float32(vp.Height)*s + float32(vp.Y)*s
		y = ymax - y

		v.X = min(max(x, 0), xmax)
		v.Y = min(max(y, 0), ymax)
	}
	return true
}

// backfacing reports whether a screen-space polygon winds clockwise on
// screen. Uses the shoelace sum so mildly concave outlines still classify.
func backfacing(v []Vertex) bool {
	var facing float32
	for j := range v {
		k := (j + 1) % len(v)
		facing += (v[k].Y + v[j].Y) * (v[k].X - v[j].X)
	}
	return facing < 0
}

// Size returns the framebuffer size in pixels.
func (e *Engine) Size() (width, height int) {
	return e.width, e.height
}

// Frame returns the converted output of the last finished frame,
// row-major, 4 bytes per pixel. The slice is reused by later frames.
func (e *Engine) Frame() []byte {
	return e.out
}

// ColorBuffer returns the internal 6-bit color buffer. It waits for the
// rasterizer threads; edge marking and fog are only applied by RenderFinish.
func (e *Engine) ColorBuffer() []FragmentColor {
	e.wait()
	return e.fb.Colors
}

// Fragments returns the per-pixel depth, stencil and ID state. It waits
// for the rasterizer threads.
func (e *Engine) Fragments() []Fragment {
	e.wait()
	return e.fb.Fragments
}

// Image returns the color buffer at render resolution. It waits for the
// rasterizer threads.
func (e *Engine) Image() *stdimage.NRGBA {
	e.wait()
	return image.ToNRGBA(e.fb.Colors, e.width, e.height)
}

// NativeImage returns Image downscaled to 256x192.
func (e *Engine) NativeImage() *stdimage.NRGBA {
	img := e.Image()
	if e.opts.scale == 1 {
		return img
	}
	return image.Downscale(img, NativeWidth, NativeHeight)
}

// TextureStats returns the texture cache statistics.
func (e *Engine) TextureStats() TextureStats {
	return e.textures.Stats()
}
