// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

// Attribute identifies one interpolated vertex attribute.
type Attribute int

// Interpolated attributes, in the order they are stored.
const (
	AttrInvW Attribute = iota
	AttrZ
	AttrU
	AttrV
	AttrR
	AttrG
	AttrB

	NumAttributes
)

// Interpolant is one attribute walked along an edge.
type Interpolant struct {
	Attr      Attribute
	Curr      float32
	Step      float32
	StepExtra float32
}

func (i *Interpolant) constant(v float32) {
	i.Curr = v
	i.Step = 0
	i.StepExtra = 0
}

// setup initializes the interpolant between top and bottom values.
// dx is the attribute's gradient per pixel of X, dy its gradient per unit
// of Y; stepExtra is applied whenever the edge's X takes its Bresenham carry.
func (i *Interpolant) setup(top, bottom, dx, dy float32, xStep int64, xPrestep, yPrestep float32) {
	dy *= bottom - top
	i.Curr = top + yPrestep*dy + xPrestep*dx
	i.Step = float32(xStep)*dx + dy
	i.StepExtra = dx
}

// Edge walks one polygon edge from its top vertex to its bottom vertex,
// one scanline per Step, with exact fixed-point X.
type Edge struct {
	X, XStep               int64
	Numerator, Denominator int64
	ErrorTerm              int64
	Y, Height              int

	interp [NumAttributes]Interpolant
}

// InvW returns the 1/w interpolant.
func (e *Edge) InvW() *Interpolant { return &e.interp[AttrInvW] }

// Z returns the depth interpolant.
func (e *Edge) Z() *Interpolant { return &e.interp[AttrZ] }

// U returns the perspective-divided U interpolant.
func (e *Edge) U() *Interpolant { return &e.interp[AttrU] }

// V returns the perspective-divided V interpolant.
func (e *Edge) V() *Interpolant { return &e.interp[AttrV] }

// Color returns the interpolant of color channel c (0 red, 1 green, 2 blue).
func (e *Edge) Color(c int) *Interpolant { return &e.interp[AttrR+Attribute(c)] }

// Interpolants returns all interpolants for generic iteration.
func (e *Edge) Interpolants() []Interpolant { return e.interp[:] }

// attributeValues returns the interpolated attribute values of a screen vertex.
func attributeValues(v *Vertex) [NumAttributes]float32 {
	return [NumAttributes]float32{
		AttrInvW: 1 / v.W,
		AttrZ:    v.Z,
		AttrU:    v.U,
		AttrV:    v.V,
		AttrR:    v.Color[0],
		AttrG:    v.Color[1],
		AttrB:    v.Color[2],
	}
}

// NewEdge builds the edge from top to bottom. X and Y of both vertices must
// already hold 28.4 fixed-point values.
//
// ok is false when the edge runs upward or otherwise has a non-positive
// DDA denominator; the polygon it belongs to must then be skipped.
func NewEdge(top, bottom *Vertex) (e Edge, ok bool) {
	ok = true
	topX, topY := int64(top.X), int64(top.Y)
	botX, botY := int64(bottom.X), int64(bottom.Y)

	e.Y = FDot4(topY).Ceil()
	e.Height = FDot4(botY).Ceil() - e.Y
	e.X = int64(FDot4(topX).Ceil())
	width := int64(FDot4(botX).Ceil()) - e.X // can be negative

	for i := range e.interp {
		e.interp[i].Attr = Attribute(i)
	}
	topVals := attributeValues(top)

	if e.Height == 0 && width == 0 {
		// Single-point edge: keep enough state for a one pixel polygon.
		e.XStep = 1
		e.Numerator = 0
		e.Denominator = 1
		e.ErrorTerm = 0
		for i := range e.interp {
			e.interp[i].constant(topVals[i])
		}
		return e, ok
	}

	dN := botY - topY
	dM := botX - topX
	if dN != 0 {
		var good bool
		initial := dM*16*int64(e.Y) - dM*topY + dN*topX - 1 + dN*16
		e.X, e.ErrorTerm, good = FloorDivMod(initial, dN*16)
		ok = ok && good
		e.XStep, e.Numerator, good = FloorDivMod(dM*16, dN*16)
		ok = ok && good
		e.Denominator = dN * 16
	} else {
		// Horizontal edge: still give the line hack something to work with.
		e.XStep = width
		e.Numerator = 0
		e.ErrorTerm = 0
		e.Denominator = 1
		dN = 1
	}

	yPrestep := FDot4(int64(e.Y)*16 - topY).Float32()
	xPrestep := FDot4(e.X*16 - topX).Float32()
	dy := 1 / FDot4(dN).Float32()

	// Edge attributes are linear in Y; the X gradient is zero.
	const dx = 0
	botVals := attributeValues(bottom)
	for i := range e.interp {
		e.interp[i].setup(topVals[i], botVals[i], dx, dy, e.XStep, xPrestep, yPrestep)
	}
	return e, ok
}

// Step advances the edge one scanline and returns the remaining height.
func (e *Edge) Step() int {
	e.X += e.XStep
	e.Y++
	e.Height--
	for i := range e.interp {
		e.interp[i].Curr += e.interp[i].Step
	}

	e.ErrorTerm += e.Numerator
	if e.ErrorTerm >= e.Denominator {
		e.X++
		e.ErrorTerm -= e.Denominator
		for i := range e.interp {
			e.interp[i].Curr += e.interp[i].StepExtra
		}
	}
	return e.Height
}

// nextStep returns how far X moves on the next Step, including the
// Bresenham carry.
func (e *Edge) nextStep() int64 {
	w := e.XStep
	if e.ErrorTerm+e.Numerator >= e.Denominator {
		w++
	}
	return w
}
