// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package filter

// FogTableSize is the number of fog table entries, one per 15-bit depth.
const FogTableSize = 32768

// MaxFogShift is the largest fog shift with a non-zero step.
const MaxFogShift = 10

// FogTable maps depth>>9 to a fog density in [0,128].
type FogTable [FogTableSize]uint8

// Update rebuilds the table as a piecewise-linear ramp through 32
// densities. The ramp starts at offset; sample j sits at
// offset + (j+1)*step with step = 0x400>>shift. Depths before the first
// sample take density[0], depths after the last take density[31].
func (t *FogTable) Update(offset uint32, shift uint8, density *[32]uint8) {
	shift = min(shift, MaxFogShift)
	increment := uint32(0x400) >> shift
	divShift := MaxFogShift - shift
	offset = min(offset, FogTableSize)

	iMin := min(FogTableSize, (2<<divShift)+offset+1-increment)
	iMax := min(FogTableSize, (33<<divShift)+offset+1-increment)

	for i := uint32(0); i < iMin; i++ {
		t[i] = density[0]
	}
	for i := iMin; i < iMax; i++ {
		num := i - offset + increment - 1
		j := (num >> divShift) - 1
		value := (num &^ (increment - 1)) + offset
		diff := value - i
		t[i] = uint8((diff*uint32(density[j-1]) + (increment-diff)*uint32(density[j])) >> divShift)
	}
	for i := iMax; i < FogTableSize; i++ {
		t[i] = density[31]
	}
}
