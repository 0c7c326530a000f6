// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// drawScanline fills the span between left and right on the current row.
func (u *Unit) drawScanline(left, right *Edge) {
	xStart := int(left.X)
	width := int(right.X) - xStart

	// Line polygons can collapse to zero width; give them the width of the
	// steeper edge's next step, at least one pixel.
	if u.lineHack && width == 0 {
		width = int(max(1, abs64(left.nextStep()), abs64(right.nextStep())))
	}

	y := left.Y
	if y < 0 || y >= u.fb.Height {
		slogger().Debug("raster: scanline out of bounds", "y", y)
		return
	}

	// Start values come from the left edge; per-pixel deltas reach the
	// right edge after width pixels.
	var cur, delta [NumAttributes]float32
	invWidth := 1 / float32(width)
	for i := range cur {
		cur[i] = left.interp[i].Curr
		delta[i] = (right.interp[i].Curr - cur[i]) * invWidth
	}

	x := xStart
	adr := y*u.fb.Width + x
	if x < 0 {
		skip := float32(-x)
		for i := range cur {
			cur[i] += delta[i] * skip
		}
		adr -= x
		width += x
		x = 0
	}
	if x+width > u.fb.Width {
		width = u.fb.Width - x
	}

	for ; width > 0; width-- {
		u.pixel(adr, cur[AttrR], cur[AttrG], cur[AttrB], cur[AttrU], cur[AttrV], 1/cur[AttrInvW], cur[AttrZ])
		adr++
		for i := range cur {
			cur[i] += delta[i]
		}
	}
}

// runScanlines draws rows until either edge runs out.
func (u *Unit) runScanlines(left, right *Edge) {
	h := min(left.Height, right.Height)

	// Horizontal line polygon: both edges are flat, draw their single row.
	if u.lineHack && left.Height == 0 && right.Height == 0 && left.Y >= 0 && left.Y < u.fb.Height {
		if u.Slice.Owns(left.Y) {
			u.drawScanline(left, right)
		}
	}

	for ; h > 0; h-- {
		if u.Slice.Owns(left.Y) {
			u.drawScanline(left, right)
		}
		left.Step()
		right.Step()
	}
}
