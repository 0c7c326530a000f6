package color

import "testing"

func TestExpand5to6(t *testing.T) {
	tests := []struct {
		in, want uint8
	}{
		{0, 0},
		{1, 3},
		{15, 31},
		{31, 63},
	}
	for _, tt := range tests {
		if got := Expand5to6(tt.in); got != tt.want {
			t.Errorf("Expand5to6(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFrom555(t *testing.T) {
	c := From555(0x7FFF, 31)
	if c != White {
		t.Errorf("From555(0x7FFF) = %+v, want %+v", c, White)
	}

	// Red only, alpha masked to 5 bits.
	c = From555(0x001F, 0xFF)
	want := Color{R: 63, G: 0, B: 0, A: 31}
	if c != want {
		t.Errorf("From555(0x001F) = %+v, want %+v", c, want)
	}
}

func TestFromRegister(t *testing.T) {
	// Blue 0x1F, alpha 16.
	reg := uint32(0x1F<<10) | 16<<16
	got := FromRegister(reg)
	want := Color{R: 0, G: 0, B: 63, A: 16}
	if got != want {
		t.Errorf("FromRegister(%#x) = %+v, want %+v", reg, got, want)
	}
}

func TestRGBA8(t *testing.T) {
	r, g, b, a := White.RGBA8()
	if r != 255 || g != 255 || b != 255 || a != 255 {
		t.Errorf("White.RGBA8() = %d,%d,%d,%d, want all 255", r, g, b, a)
	}

	r, g, b, a = Color{}.RGBA8()
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("zero.RGBA8() = %d,%d,%d,%d, want all 0", r, g, b, a)
	}
}

func TestLUTMonotonic(t *testing.T) {
	for i := 1; i < 64; i++ {
		if To8(uint8(i)) <= To8(uint8(i-1)) {
			t.Fatalf("To8 not increasing at %d", i)
		}
	}
	for i := 1; i < 32; i++ {
		if AlphaTo8(uint8(i)) <= AlphaTo8(uint8(i-1)) {
			t.Fatalf("AlphaTo8 not increasing at %d", i)
		}
	}
}

func TestFromToon555(t *testing.T) {
	tests := []struct {
		in   uint16
		want Color
	}{
		{0x0000, Color{}},
		{0x7FFF, Color{R: 63, G: 63, B: 63}},
		{0x0001, Color{R: 2}},
		{0x0010 << 5, Color{G: 33}},
	}
	for _, tt := range tests {
		if got := FromToon555(tt.in); got != tt.want {
			t.Errorf("FromToon555(%#04x) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
