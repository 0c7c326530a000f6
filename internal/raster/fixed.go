// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import "math"

// FDot4 is a 28.4 fixed-point screen coordinate.
type FDot4 int32

// FDot4One is 1.0 in 28.4 fixed point.
const FDot4One FDot4 = 16

// FDot4FromFloat32 converts a pixel coordinate to 28.4, rounding to the
// nearest step with ties to even.
func FDot4FromFloat32(v float32) FDot4 {
	return FDot4(int32(math.RoundToEven(float64(v * 16))))
}

// Float32 returns the value in pixels.
func (f FDot4) Float32() float32 {
	return float32(f) / 16
}

// Ceil returns the smallest integer pixel coordinate >= f.
// Negative values round toward +inf as well.
func (f FDot4) Ceil() int {
	n := int(f) - 1 + 16
	if n >= 0 {
		return n / 16
	}
	r := -((-n) / 16)
	if (-n)%16 != 0 {
		r--
	}
	return r
}

// FloorDivMod divides numerator by denominator rounding toward -inf, and
// returns the non-negative remainder. This is the two's-complement DDA
// behaviour of the hardware edge walker.
//
// ok is false when denominator <= 0; such edges come from degenerate or
// inverted shapes and must not be walked.
func FloorDivMod(numerator, denominator int64) (floor, mod int64, ok bool) {
	if denominator <= 0 {
		return 0, 0, false
	}
	if numerator >= 0 {
		return numerator / denominator, numerator % denominator, true
	}
	floor = -((-numerator) / denominator)
	mod = (-numerator) % denominator
	if mod != 0 {
		floor--
		mod = denominator - mod
	}
	return floor, mod, true
}
