package raster

import "testing"

func TestFDot4Ceil(t *testing.T) {
	tests := []struct {
		in   FDot4
		want int
	}{
		{0, 0},
		{1, 1},
		{15, 1},
		{16, 1},
		{17, 2},
		{-1, 0},
		{-16, -1},
		{-17, -1},
		{-32, -2},
		{-33, -2},
	}
	for _, tt := range tests {
		if got := tt.in.Ceil(); got != tt.want {
			t.Errorf("FDot4(%d).Ceil() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFDot4FromFloat32Rounds(t *testing.T) {
	tests := []struct {
		in   float32
		want FDot4
	}{
		{1, 16},
		{1.99, 32},
		{-1.99, -32},
		{0.03, 0},
		{0.04, 1},
		{0.03125, 0},
		{0.09375, 2},
	}
	for _, tt := range tests {
		if got := FDot4FromFloat32(tt.in); got != tt.want {
			t.Errorf("FDot4FromFloat32(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFloorDivMod(t *testing.T) {
	tests := []struct {
		num, den  int64
		floor     int64
		mod       int64
		wantValid bool
	}{
		{7, 2, 3, 1, true},
		{-7, 2, -4, 1, true},
		{-8, 2, -4, 0, true},
		{0, 5, 0, 0, true},
		{5, 0, 0, 0, false},
		{5, -1, 0, 0, false},
	}
	for _, tt := range tests {
		floor, mod, ok := FloorDivMod(tt.num, tt.den)
		if ok != tt.wantValid {
			t.Errorf("FloorDivMod(%d, %d) ok = %v, want %v", tt.num, tt.den, ok, tt.wantValid)
			continue
		}
		if !ok {
			continue
		}
		if floor != tt.floor || mod != tt.mod {
			t.Errorf("FloorDivMod(%d, %d) = (%d, %d), want (%d, %d)",
				tt.num, tt.den, floor, mod, tt.floor, tt.mod)
		}
		if floor*tt.den+mod != tt.num {
			t.Errorf("FloorDivMod(%d, %d): floor*den+mod != num", tt.num, tt.den)
		}
	}
}
