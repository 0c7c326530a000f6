package raster

import "testing"

// fx returns a vertex at the pixel position (x, y) in 28.4 form.
func fx(x, y float32) Vertex {
	return Vertex{X: x * 16, Y: y * 16, Z: 0.5, W: 1, Color: [3]float32{63, 63, 63}}
}

func TestNewEdge_Vertical(t *testing.T) {
	top, bottom := fx(3, 0), fx(3, 10)
	e, ok := NewEdge(&top, &bottom)
	if !ok {
		t.Fatal("NewEdge() failed for vertical edge")
	}
	if e.Y != 0 || e.Height != 10 {
		t.Errorf("Y, Height = %d, %d, want 0, 10", e.Y, e.Height)
	}
	for i := 0; i < 10; i++ {
		if e.X != 3 {
			t.Fatalf("row %d: X = %d, want 3", i, e.X)
		}
		e.Step()
	}
	if e.Height != 0 {
		t.Errorf("Height after walk = %d, want 0", e.Height)
	}
}

func TestNewEdge_Diagonal(t *testing.T) {
	top, bottom := fx(0, 0), fx(10, 10)
	e, ok := NewEdge(&top, &bottom)
	if !ok {
		t.Fatal("NewEdge() failed")
	}
	for i := 0; i < 10; i++ {
		if int(e.X) != i {
			t.Fatalf("row %d: X = %d, want %d", i, e.X, i)
		}
		e.Step()
	}
}

func TestNewEdge_Upward(t *testing.T) {
	top, bottom := fx(0, 10), fx(5, 0)
	if _, ok := NewEdge(&top, &bottom); ok {
		t.Error("NewEdge() should fail for an edge running upward")
	}
}

func TestNewEdge_SinglePoint(t *testing.T) {
	a := fx(4, 4)
	e, ok := NewEdge(&a, &a)
	if !ok {
		t.Fatal("single point edge should not fail")
	}
	if e.Height != 0 || e.XStep != 1 || e.Denominator != 1 {
		t.Errorf("edge = %+v, want height 0, xstep 1, denominator 1", e)
	}
	if got := e.Z().Curr; got != 0.5 {
		t.Errorf("Z = %v, want 0.5", got)
	}
}

func TestEdge_InterpolatesAttributes(t *testing.T) {
	top, bottom := fx(0, 0), fx(0, 8)
	top.Color = [3]float32{0, 0, 0}
	bottom.Color = [3]float32{32, 0, 0}
	e, _ := NewEdge(&top, &bottom)
	for i := 0; i < 4; i++ {
		e.Step()
	}
	if got := e.Color(0).Curr; got < 15.9 || got > 16.1 {
		t.Errorf("red at half height = %v, want 16", got)
	}
}

func TestEdge_NextStepCarry(t *testing.T) {
	// Slope 1.5 alternates steps of 1 and 2.
	top, bottom := fx(0, 0), fx(15, 10)
	e, _ := NewEdge(&top, &bottom)
	total := int64(0)
	for e.Height > 0 {
		want := e.nextStep()
		x := e.X
		e.Step()
		if e.X-x != want {
			t.Fatalf("nextStep() = %d, actual step %d", want, e.X-x)
		}
		total += want
	}
	if total < 14 || total > 15 {
		t.Errorf("total X movement = %d, want about 15", total)
	}
}
