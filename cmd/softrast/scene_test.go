package main

import (
	stdimage "image"
	stdcolor "image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/internal/image"
)

// =============================================================================
// Parsing Tests
// =============================================================================

func TestParseScene_Defaults(t *testing.T) {
	s, err := ParseScene([]byte(`
name: tri
vertices:
  - {pos: [-1, -1, 0]}
  - {pos: [1, -1, 0]}
  - {pos: [0, 1, 0, 2]}
polygons:
  - vertices: [0, 1, 2]
`), ".")
	if err != nil {
		t.Fatalf("ParseScene() error = %v", err)
	}

	if s.Version != 1 || s.Scale != 1 || s.Output != "tri.png" {
		t.Errorf("normalized header = v%d scale %d output %q", s.Version, s.Scale, s.Output)
	}
	if *s.State.ClearDepth != 0xFFFFFF {
		t.Errorf("default clear depth = %#x, want far", *s.State.ClearDepth)
	}
	p := s.Polygons[0]
	if p.Mode != "modulate" || *p.Alpha != 31 || p.Cull != "back" {
		t.Errorf("normalized polygon = %+v", p)
	}

	verts, polys := s.Geometry(nil)
	if verts[2].W != 2 || verts[0].W != 1 {
		t.Errorf("W = %v, %v; want 1 and 2", verts[0].W, verts[2].W)
	}
	if verts[0].Color != [3]float32{63, 63, 63} {
		t.Errorf("default color = %v, want white", verts[0].Color)
	}
	if want := uint32(1<<7 | 31<<16); polys[0].Attr != want {
		t.Errorf("Attr = %#x, want %#x", polys[0].Attr, want)
	}
}

func TestParseScene_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "vertices: [", "parse scene"},
		{"version", "version: 3", "unsupported scene version"},
		{"short pos", "vertices: [{pos: [1, 2]}]", "vertex 0"},
		{"two vertices", "polygons: [{vertices: [0, 1]}]", "polygon 0: needs 3 or 4"},
		{"mode", "polygons: [{vertices: [0, 1, 2], mode: sparkle}]", "unknown mode"},
		{"cull", "polygons: [{vertices: [0, 1, 2], cull: sideways}]", "unknown cull"},
		{"texture", "polygons: [{vertices: [0, 1, 2], texture: wood}]", "unknown texture"},
		{"viewport", "polygons: [{vertices: [0, 1, 2], viewport: [0, 0]}]", "viewport"},
		{"index", "vertices: [{pos: [0, 0, 0]}]\npolygons: [{vertices: [0, 0, 1]}]", "vertex 1 out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tt.yaml), ".")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseScene() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestPolygonConfig_Attr(t *testing.T) {
	alpha := uint8(12)
	p := PolygonConfig{
		Mode:       "shadow",
		Alpha:      &alpha,
		ID:         9,
		Cull:       "none",
		Fog:        true,
		DepthEqual: true,
		DepthWrite: true,
	}
	want := uint32(3<<4 | 1<<6 | 1<<7 | 1<<11 | 1<<14 | 1<<15 | 12<<16 | 9<<24)
	if got := p.attr(); got != want {
		t.Errorf("attr() = %#x, want %#x", got, want)
	}
}

func TestRenderState_Fog(t *testing.T) {
	s, err := ParseScene([]byte(`
state:
  fog: {color: 0x1F001F, shift: 3, density: [10, 20]}
  shading: highlight
  texturing: false
`), ".")
	if err != nil {
		t.Fatal(err)
	}
	st := s.RenderState()
	if !st.FogEnabled || st.FogShift != 3 || st.FogColor != 0x1F001F {
		t.Errorf("fog state = %+v", st)
	}
	if st.FogDensity[0] != 10 || st.FogDensity[1] != 20 || st.FogDensity[31] != 20 {
		t.Errorf("densities = %v, want 10 then 20 held", st.FogDensity)
	}
	if st.Shading != softrast.ShadingHighlight || st.Texturing {
		t.Errorf("shading = %v texturing = %v", st.Shading, st.Texturing)
	}
}

func TestDirectTexParam(t *testing.T) {
	p := directTexParam(3, 16, 64, TextureConfig{Repeat: true})
	if p>>26&7 != 7 {
		t.Errorf("format = %d, want 7", p>>26&7)
	}
	if p>>20&7 != 1 || p>>23&7 != 3 {
		t.Errorf("size fields = %d, %d; want 1, 3", p>>20&7, p>>23&7)
	}
	if p&0xFFFF != 3 || p&(1<<16|1<<17) != 1<<16|1<<17 || p&(1<<18) != 0 {
		t.Errorf("param = %#x", p)
	}
}

// =============================================================================
// Rendering Tests
// =============================================================================

func TestLoadScene_Render(t *testing.T) {
	s, err := LoadScene(filepath.Join("testdata", "overlap.yaml"))
	if err != nil {
		t.Fatalf("LoadScene() error = %v", err)
	}

	frames := 0
	img, err := s.Render(2, 3, false, func() { frames++ })
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if frames != 3 {
		t.Errorf("onFrame called %d times, want 3", frames)
	}
	if b := img.Bounds(); b.Dx() != 256 || b.Dy() != 192 {
		t.Fatalf("bounds = %v", b)
	}
	if c := img.NRGBAAt(2, 2); c.R != 0 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("background = %+v, want opaque black", c)
	}
	// Left part of the red quad, outside the triangle. Its depth lies past
	// the end of the density ramp, so fog replaces it entirely.
	if c := img.NRGBAAt(40, 120); c != (stdcolor.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("quad pixel = %+v, want fully fogged", c)
	}
}

func TestScene_TexturedRender(t *testing.T) {
	dir := t.TempDir()
	tex := stdimage.NewNRGBA(stdimage.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			tex.SetNRGBA(x, y, stdcolor.NRGBA{G: 255, A: 255})
		}
	}
	if err := image.SavePNG(filepath.Join(dir, "green.png"), tex); err != nil {
		t.Fatal(err)
	}

	s, err := ParseScene([]byte(`
name: textured
scale: 2
textures:
  - {name: green, path: green.png, repeat: true}
vertices:
  - {pos: [-1, -1, 0], uv: [0, 8]}
  - {pos: [1, -1, 0], uv: [8, 8]}
  - {pos: [1, 1, 0], uv: [8, 0]}
  - {pos: [-1, 1, 0], uv: [0, 0]}
polygons:
  - {vertices: [0, 1, 2, 3], texture: green, id: 1}
`), dir)
	if err != nil {
		t.Fatalf("ParseScene() error = %v", err)
	}

	img, err := s.Render(1, 1, true, nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 256 || b.Dy() != 192 {
		t.Fatalf("native bounds = %v", b)
	}
	if c := img.NRGBAAt(128, 96); c.R > 5 || c.G < 250 || c.B > 5 {
		t.Errorf("textured pixel = %+v, want green", c)
	}
}

func TestScene_BadTextureSize(t *testing.T) {
	dir := t.TempDir()
	if err := image.SavePNG(filepath.Join(dir, "odd.png"), stdimage.NewNRGBA(stdimage.Rect(0, 0, 12, 8))); err != nil {
		t.Fatal(err)
	}
	s, err := ParseScene([]byte("textures: [{name: odd, path: odd.png}]"), dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadTextures(); err == nil || !strings.Contains(err.Error(), "power of two") {
		t.Errorf("LoadTextures() error = %v, want size error", err)
	}
}
