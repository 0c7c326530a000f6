// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

// rotateVerts moves vertex 0 to the end of the list.
func rotateVerts(v []*Vertex) {
	first := v[0]
	copy(v, v[1:])
	v[len(v)-1] = first
}

// sortVerts brings the polygon into shape engine order: optionally
// reversed, then rotated so vertex 0 is topmost, leftmost on ties.
func sortVerts(v []*Vertex, backwards bool) {
	n := len(v)
	if backwards {
		for i := 0; i < n/2; i++ {
			v[i], v[n-i-1] = v[n-i-1], v[i]
		}
	}

	for {
		rotated := false
		for i := 1; i < n; i++ {
			if v[0].Y > v[i].Y {
				rotateVerts(v)
				rotated = true
				break
			}
		}
		if !rotated {
			break
		}
	}

	for v[0].Y == v[1].Y && v[0].X > v[1].X {
		rotateVerts(v)
	}
}

// drawPolygon walks a convex polygon of n vertices from its top vertex
// down both sides at once: the right chain clockwise, the left chain
// counter-clockwise, until the chains meet.
func (u *Unit) drawPolygon(n int, backwards bool) {
	if n < 3 || n > MaxClippedVerts {
		slogger().Debug("raster: skipping polygon", "verts", n)
		return
	}
	verts := u.verts[:n]
	sortVerts(verts, backwards)

	// lv starts one past the end so that it wraps to vertex 0.
	lv, rv := n, 0

	var left, right Edge
	stepLeft, stepRight := true, true
	for {
		okLeft, okRight := true, true
		if stepLeft {
			top := lv
			if top == n {
				top = 0
			}
			left, okLeft = NewEdge(verts[top], verts[lv-1])
		}
		if stepRight {
			right, okRight = NewEdge(verts[rv], verts[rv+1])
		}
		stepLeft, stepRight = false, false

		if !okLeft || !okRight {
			return
		}

		u.runScanlines(&left, &right)

		if right.Height == 0 {
			stepRight = true
			rv++
		}
		if left.Height == 0 {
			stepLeft = true
			lv--
		}

		if lv <= rv+1 {
			break
		}
	}
}
