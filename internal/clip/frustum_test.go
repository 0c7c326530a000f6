package clip

import (
	"math"
	"testing"

	"github.com/gogpu/softrast/internal/raster"
)

func v(x, y, z float32) raster.Vertex {
	return raster.Vertex{X: x, Y: y, Z: z, W: 1, Color: [3]float32{x * 10, y * 10, 0}}
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestFrustum_InsideUnchanged(t *testing.T) {
	verts := []raster.Vertex{v(-0.5, -0.5, 0), v(0.5, -0.5, 0), v(0, 0.5, 0)}
	poly := &raster.Polygon{Indices: []int{0, 1, 2}}

	out := NewFrustum().ClipPolygon(nil, poly, verts)
	if len(out) != 1 {
		t.Fatalf("got %d polygons, want 1", len(out))
	}
	cp := out[0]
	if cp.Count != 3 || cp.Poly != poly {
		t.Fatalf("Count = %d, want 3", cp.Count)
	}
	for i := 0; i < 3; i++ {
		if cp.Verts[i] != verts[i] {
			t.Errorf("vertex %d = %+v, want %+v", i, cp.Verts[i], verts[i])
		}
	}
}

func TestFrustum_OutsideRejected(t *testing.T) {
	verts := []raster.Vertex{v(2, 2, 0), v(3, 2, 0), v(2, 3, 0)}
	poly := &raster.Polygon{Indices: []int{0, 1, 2}}
	if out := NewFrustum().ClipPolygon(nil, poly, verts); len(out) != 0 {
		t.Errorf("got %d polygons, want 0", len(out))
	}
}

func TestFrustum_ClipsOnePlane(t *testing.T) {
	// Quad crossing x = 1.
	verts := []raster.Vertex{v(0, 0, 0), v(0, 0.5, 0), v(2, 0.5, 0), v(2, 0, 0)}
	poly := &raster.Polygon{Indices: []int{0, 1, 2, 3}}

	out := NewFrustum().ClipPolygon(nil, poly, verts)
	if len(out) != 1 {
		t.Fatalf("got %d polygons, want 1", len(out))
	}
	cp := out[0]
	if cp.Count != 4 {
		t.Fatalf("Count = %d, want 4", cp.Count)
	}
	for i := 0; i < cp.Count; i++ {
		if cp.Verts[i].X > 1+1e-6 {
			t.Errorf("vertex %d X = %v, outside frustum", i, cp.Verts[i].X)
		}
		// Attributes follow the position.
		if !near(cp.Verts[i].Color[0], cp.Verts[i].X*10) {
			t.Errorf("vertex %d red = %v, want %v", i, cp.Verts[i].Color[0], cp.Verts[i].X*10)
		}
	}
}

func TestFrustum_MaxVertices(t *testing.T) {
	// A large quad rotated 45 degrees and pushed through the near and far
	// planes gets cut by several planes at once.
	verts := []raster.Vertex{
		{X: 0, Y: -3, Z: -3, W: 1},
		{X: 3, Y: 0, Z: 0, W: 1},
		{X: 0, Y: 3, Z: 3, W: 1},
		{X: -3, Y: 0, Z: 0, W: 1},
	}
	poly := &raster.Polygon{Indices: []int{0, 1, 2, 3}}
	out := NewFrustum().ClipPolygon(nil, poly, verts)
	if len(out) != 1 {
		t.Fatalf("got %d polygons, want 1", len(out))
	}
	cp := out[0]
	if cp.Count < 3 || cp.Count > raster.MaxClippedVerts {
		t.Fatalf("Count = %d, want 3..%d", cp.Count, raster.MaxClippedVerts)
	}
	for i := 0; i < cp.Count; i++ {
		p := cp.Verts[i]
		for _, c := range []float32{p.X, p.Y, p.Z} {
			if c < -p.W-1e-5 || c > p.W+1e-5 {
				t.Errorf("vertex %d = %+v outside frustum", i, p)
			}
		}
	}
}

func TestFrustum_BadInput(t *testing.T) {
	verts := []raster.Vertex{v(0, 0, 0), v(0.5, 0, 0)}
	f := NewFrustum()
	tests := []struct {
		name    string
		indices []int
	}{
		{"two vertices", []int{0, 1}},
		{"five vertices", []int{0, 1, 0, 1, 0}},
		{"index out of range", []int{0, 1, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if out := f.ClipPolygon(nil, &raster.Polygon{Indices: tt.indices}, verts); len(out) != 0 {
				t.Errorf("got %d polygons, want 0", len(out))
			}
		})
	}
}

func TestFrustum_AppendsToDst(t *testing.T) {
	verts := []raster.Vertex{v(-0.5, -0.5, 0), v(0.5, -0.5, 0), v(0, 0.5, 0)}
	poly := &raster.Polygon{Indices: []int{0, 1, 2}}
	f := NewFrustum()

	var out []raster.ClippedPolygon
	out = f.ClipPolygon(out, poly, verts)
	out = f.ClipPolygon(out, poly, verts)
	if len(out) != 2 {
		t.Errorf("got %d polygons, want 2", len(out))
	}
}

func TestFrustum_VertexOnPlane(t *testing.T) {
	tests := []struct {
		name  string
		verts []raster.Vertex
		want  [][2]float32 // nil: rejected
	}{
		{
			name:  "inside then on then outside",
			verts: []raster.Vertex{v(0, 0, 0), v(1, 0, 0), v(2, 0.5, 0), v(0, 0.5, 0)},
			want:  [][2]float32{{0, 0}, {1, 0}, {1, 0.5}, {0, 0.5}},
		},
		{
			name:  "outside then on",
			verts: []raster.Vertex{v(0, 0, 0), v(2, 0, 0), v(1, 0.5, 0), v(0, 0.5, 0)},
			want:  [][2]float32{{0, 0}, {1, 0}, {1, 0.5}, {0, 0.5}},
		},
		{
			name:  "touching at one vertex",
			verts: []raster.Vertex{v(1, 0, 0), v(2, 0.5, 0), v(2, -0.5, 0)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			indices := make([]int, len(tt.verts))
			for i := range indices {
				indices[i] = i
			}
			out := NewFrustum().ClipPolygon(nil, &raster.Polygon{Indices: indices}, tt.verts)
			if tt.want == nil {
				if len(out) != 0 {
					t.Fatalf("got %d polygons, want 0", len(out))
				}
				return
			}
			if len(out) != 1 {
				t.Fatalf("got %d polygons, want 1", len(out))
			}
			cp := out[0]
			if cp.Count != len(tt.want) {
				t.Fatalf("Count = %d, want %d", cp.Count, len(tt.want))
			}
			for i, w := range tt.want {
				p := cp.Verts[i]
				if !near(p.X, w[0]) || !near(p.Y, w[1]) {
					t.Errorf("vertex %d = (%v, %v), want (%v, %v)", i, p.X, p.Y, w[0], w[1])
				}
			}
		})
	}
}
