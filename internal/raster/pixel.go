package raster

import (
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/softrast/internal/blend"
	"github.com/gogpu/softrast/internal/color"
)

// outcome is the result of one fragment through the pipeline.
type outcome uint8

const (
	fragmentDrawn outcome = iota
	fragmentRejected
	fragmentDepthFail
)

// floorU32 floors v into [0, MaxUint32].
func floorU32(v float32) uint32 {
	f := math.Floor(float64(v))
	if f <= 0 {
		return 0
	}
	if f >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(f)
}

// fragmentDepth converts the interpolated w or z into 24-bit buffer depth.
func fragmentDepth(wbuffer bool, w, z float32) uint32 {
	if wbuffer {
		return floorU32(4096 * w)
	}
	return floorU32(z*0x7FFF) << 9
}

func (u *Unit) depthPass(depth, stored uint32) bool {
	switch u.attr.DepthCompare() {
	case gputypes.CompareFunctionEqual:
		tol := u.frame.State.DecalTolerance
		if tol == 0 {
			return depth == stored
		}
		diff := int64(depth) - int64(stored)
		return diff >= -int64(tol) && diff <= int64(tol)
	default:
		return depth < stored
	}
}

// materialComponent perspective-corrects and clamps an interpolated color.
func materialComponent(c, w float32) uint8 {
	v := math.Floor(float64(c*w + 0.5))
	return uint8(min(max(v, 0), color.MaxRGB))
}

// pixel runs the full pipeline for one covered pixel. Colors, u and v
// arrive divided by w; w is the reciprocal of the interpolated 1/w.
func (u *Unit) pixel(adr int, r, g, b, invu, invv, w, z float32) {
	dst := &u.fb.Fragments[adr]
	res := u.fragment(dst, &u.fb.Colors[adr], r, g, b, invu, invv, w, z)

	// The stencil is a single counter shared by the mask pass (ID 0) and
	// the draw pass (ID != 0) of shadow volumes.
	if u.attr.Mode != ModeShadow {
		return
	}
	if u.attr.PolyID == 0 {
		if res == fragmentDepthFail {
			dst.Stencil++
		}
	} else if dst.Stencil != 0 {
		dst.Stencil--
	}
}

func (u *Unit) fragment(dst *Fragment, dstColor *color.Color, r, g, b, invu, invv, w, z float32) outcome {
	st := &u.frame.State
	attr := &u.attr

	depth := fragmentDepth(st.WBuffer, w, z)
	if !u.depthPass(depth, dst.Depth) {
		return fragmentDepthFail
	}

	if attr.Mode == ModeShadow {
		if attr.PolyID == 0 || dst.Stencil == 0 {
			return fragmentRejected
		}
		// Keeps casters from shadowing themselves when the game gave the
		// shadow the caster's ID.
		if dst.OpaqueID == attr.PolyID {
			return fragmentRejected
		}
	}

	material := color.Color{
		R: materialComponent(r, w),
		G: materialComponent(g, w),
		B: materialComponent(b, w),
		A: attr.Alpha,
	}
	out := u.shade(material, invu*w, invv*w)

	if out.A == 0 {
		return fragmentRejected
	}
	if st.AlphaTest && out.A < st.AlphaTestRef {
		return fragmentRejected
	}

	opaque := out.Opaque()
	if opaque {
		dst.OpaqueID = attr.PolyID
		dst.IsTranslucentPoly = attr.Translucent
		dst.Fogged = attr.Fogged
		*dstColor = out
	} else {
		// Self-overlapping translucent polygons blend only once per pixel.
		if dst.TranslucentID == attr.PolyID {
			return fragmentRejected
		}
		dst.TranslucentID = attr.PolyID
		blend.AlphaBlend(dstColor, out, st.AlphaBlending)
		dst.Fogged = dst.Fogged && attr.Fogged
	}

	if opaque || attr.TranslucentDepthWrite {
		dst.Depth = depth
	}
	return fragmentDrawn
}

// shade combines the material color with the texture for the polygon mode.
// tu and tv are perspective-corrected texel coordinates.
func (u *Unit) shade(material color.Color, tu, tv float32) color.Color {
	t := u.tables

	switch u.attr.Mode {
	case ModeModulate:
		return t.ModulateColor(u.sampler.Sample(tu, tv), material)

	case ModeDecal:
		if !u.sampler.Enabled {
			return material
		}
		return t.DecalColor(u.sampler.Sample(tu, tv), material)

	case ModeToon:
		tex := u.sampler.Sample(tu, tv)
		toon := u.frame.State.Toon[material.R>>1]
		alpha := t.ModulateAlpha(tex.A, material.A)
		if u.frame.State.Shading == ShadingHighlight {
			return color.Color{
				R: blend.SaturatingAdd(t.Modulate[tex.R][material.R], toon.R),
				G: blend.SaturatingAdd(t.Modulate[tex.G][material.R], toon.G),
				B: blend.SaturatingAdd(t.Modulate[tex.B][material.R], toon.B),
				A: alpha,
			}
		}
		return color.Color{
			R: t.Modulate[tex.R][toon.R],
			G: t.Modulate[tex.G][toon.G],
			B: t.Modulate[tex.B][toon.B],
			A: alpha,
		}

	default:
		return material
	}
}
