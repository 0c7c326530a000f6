// Package clip clips polygons against the homogeneous view frustum.
package clip

import "github.com/gogpu/softrast/internal/raster"

// plane is one frustum half-space: coordinate axis and side.
type plane struct {
	axis int  // 0 = x, 1 = y, 2 = z
	far  bool // true for coord <= w, false for coord >= -w
}

var frustumPlanes = [6]plane{
	{0, false}, {0, true},
	{1, false}, {1, true},
	{2, false}, {2, true},
}

func coord(v *raster.Vertex, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// distance is positive inside the plane, zero on it.
func (p plane) distance(v *raster.Vertex) float32 {
	c := coord(v, p.axis)
	if p.far {
		return v.W - c
	}
	return v.W + c
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// interpolate returns the vertex at t along a->b with every attribute
// interpolated linearly in clip space.
func interpolate(a, b *raster.Vertex, t float32) raster.Vertex {
	return raster.Vertex{
		X: lerp(a.X, b.X, t),
		Y: lerp(a.Y, b.Y, t),
		Z: lerp(a.Z, b.Z, t),
		W: lerp(a.W, b.W, t),
		U: lerp(a.U, b.U, t),
		V: lerp(a.V, b.V, t),
		Color: [3]float32{
			lerp(a.Color[0], b.Color[0], t),
			lerp(a.Color[1], b.Color[1], t),
			lerp(a.Color[2], b.Color[2], t),
		},
	}
}

// Frustum is a Sutherland-Hodgman clipper against -w <= x, y, z <= w.
//
// Clipping a convex polygon of up to 4 vertices against 6 planes yields
// at most raster.MaxClippedVerts vertices.
type Frustum struct {
	// Scratch buffers, swapped between planes.
	a, b [raster.MaxClippedVerts]raster.Vertex
}

// NewFrustum creates a frustum clipper.
func NewFrustum() *Frustum {
	return &Frustum{}
}

// ClipPolygon clips the polygon whose vertices are verts[poly.Indices[i]]
// and appends the result to dst. Polygons entirely outside, or with fewer
// than 3 vertices left, append nothing. Frustum is not safe for
// concurrent use.
func (f *Frustum) ClipPolygon(dst []raster.ClippedPolygon, poly *raster.Polygon, verts []raster.Vertex) []raster.ClippedPolygon {
	n := len(poly.Indices)
	if n < 3 || n > 4 {
		return dst
	}

	for i, idx := range poly.Indices {
		if idx < 0 || idx >= len(verts) {
			return dst
		}
		f.a[i] = verts[idx]
	}

	src, out := &f.a, &f.b
	for _, p := range frustumPlanes {
		n = clipAgainst(out, src[:n], p)
		if n < 3 {
			return dst
		}
		src, out = out, src
	}

	cp := raster.ClippedPolygon{Poly: poly, Count: n}
	copy(cp.Verts[:], src[:n])
	return append(dst, cp)
}

// clipAgainst clips in against one plane into out and returns the new
// vertex count.
func clipAgainst(out *[raster.MaxClippedVerts]raster.Vertex, in []raster.Vertex, p plane) int {
	n := 0
	emit := func(v raster.Vertex) {
		if n < len(out) {
			out[n] = v
			n++
		}
	}

	for i := range in {
		cur := &in[i]
		next := &in[(i+1)%len(in)]
		dc, dn := p.distance(cur), p.distance(next)

		if dc >= 0 {
			emit(*cur)
		}
		// A vertex on the plane is emitted as itself, never as a crossing.
		if (dc > 0 && dn < 0) || (dc < 0 && dn > 0) {
			emit(interpolate(cur, next, dc/(dc-dn)))
		}
	}
	return n
}
