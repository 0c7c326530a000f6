package main

import (
	"fmt"
	stdimage "image"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/internal/image"
)

// Scene is a single frame described in YAML.
type Scene struct {
	Version int    `yaml:"version"`
	Name    string `yaml:"name"`
	Scale   int    `yaml:"scale,omitempty"`
	Output  string `yaml:"output,omitempty"`

	State    StateConfig     `yaml:"state"`
	Textures []TextureConfig `yaml:"textures,omitempty"`
	Vertices []VertexConfig  `yaml:"vertices"`
	Polygons []PolygonConfig `yaml:"polygons"`

	// dir resolves relative texture paths.
	dir string
}

type StateConfig struct {
	ClearColor    uint32   `yaml:"clearColor,omitempty"`
	ClearDepth    *uint32  `yaml:"clearDepth,omitempty"`
	AlphaBlending bool     `yaml:"alphaBlending,omitempty"`
	AlphaTest     uint8    `yaml:"alphaTest,omitempty"`
	Texturing     *bool    `yaml:"texturing,omitempty"`
	WBuffer       bool     `yaml:"wBuffer,omitempty"`
	Shading       string   `yaml:"shading,omitempty"`
	Toon          []uint16 `yaml:"toon,omitempty"`
	EdgeColors    []uint16 `yaml:"edgeColors,omitempty"`
	Antialiasing  bool     `yaml:"antialiasing,omitempty"`

	Fog *FogConfig `yaml:"fog,omitempty"`
}

type FogConfig struct {
	Color     uint32  `yaml:"color"`
	Offset    uint32  `yaml:"offset,omitempty"`
	Shift     uint8   `yaml:"shift,omitempty"`
	Density   []uint8 `yaml:"density"`
	AlphaOnly bool    `yaml:"alphaOnly,omitempty"`
}

type TextureConfig struct {
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
	Repeat bool   `yaml:"repeat,omitempty"`
	Flip   bool   `yaml:"flip,omitempty"`
}

type VertexConfig struct {
	Pos   []float32 `yaml:"pos"`
	UV    []float32 `yaml:"uv,omitempty"`
	Color []float32 `yaml:"color,omitempty"`
}

type PolygonConfig struct {
	Vertices   []int  `yaml:"vertices"`
	Mode       string `yaml:"mode,omitempty"`
	Alpha      *uint8 `yaml:"alpha,omitempty"`
	ID         uint8  `yaml:"id,omitempty"`
	Cull       string `yaml:"cull,omitempty"`
	Fog        bool   `yaml:"fog,omitempty"`
	DepthEqual bool   `yaml:"depthEqual,omitempty"`
	DepthWrite bool   `yaml:"depthWrite,omitempty"`
	Texture    string `yaml:"texture,omitempty"`
	Viewport   []int  `yaml:"viewport,omitempty"`
	Line       bool   `yaml:"line,omitempty"`
}

func (s *Scene) normalize() {
	if s.Version == 0 {
		s.Version = 1
	}
	if s.Scale == 0 {
		s.Scale = 1
	}
	if s.Output == "" {
		s.Output = s.Name + ".png"
	}
	if s.State.ClearDepth == nil {
		far := uint32(0xFFFFFF)
		s.State.ClearDepth = &far
	}
	for i := range s.Polygons {
		p := &s.Polygons[i]
		if p.Mode == "" {
			p.Mode = "modulate"
		}
		if p.Alpha == nil {
			opaque := uint8(31)
			p.Alpha = &opaque
		}
		if p.Cull == "" {
			p.Cull = "back"
		}
	}
}

// LoadScene reads and validates a scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := ParseScene(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		s.Output = s.Name + ".png"
	}
	return s, nil
}

// ParseScene decodes a scene. Texture paths are relative to dir.
func ParseScene(data []byte, dir string) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	s.normalize()
	s.dir = dir
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) validate() error {
	if s.Version != 1 {
		return fmt.Errorf("unsupported scene version %d", s.Version)
	}
	for i, v := range s.Vertices {
		if len(v.Pos) < 3 || len(v.Pos) > 4 {
			return fmt.Errorf("vertex %d: pos needs 3 or 4 components", i)
		}
	}
	for i, p := range s.Polygons {
		if len(p.Vertices) < 3 || len(p.Vertices) > 4 {
			return fmt.Errorf("polygon %d: needs 3 or 4 vertices", i)
		}
		if _, ok := polygonModes[p.Mode]; !ok {
			return fmt.Errorf("polygon %d: unknown mode %q", i, p.Mode)
		}
		if _, ok := cullModes[p.Cull]; !ok {
			return fmt.Errorf("polygon %d: unknown cull mode %q", i, p.Cull)
		}
		if p.Texture != "" && s.textureIndex(p.Texture) < 0 {
			return fmt.Errorf("polygon %d: unknown texture %q", i, p.Texture)
		}
		if p.Viewport != nil && len(p.Viewport) != 4 {
			return fmt.Errorf("polygon %d: viewport needs x, y, width, height", i)
		}
		for _, v := range p.Vertices {
			if v < 0 || v >= len(s.Vertices) {
				return fmt.Errorf("polygon %d: vertex %d out of range", i, v)
			}
		}
	}
	return nil
}

var polygonModes = map[string]uint32{
	"modulate": 0,
	"decal":    1,
	"toon":     2,
	"shadow":   3,
}

var cullModes = map[string]uint32{
	"back":  1 << 7,
	"front": 1 << 6,
	"none":  1<<6 | 1<<7,
}

func (s *Scene) textureIndex(name string) int {
	for i, t := range s.Textures {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// RenderState converts the scene state block.
func (s *Scene) RenderState() *softrast.RenderState {
	c := &s.State
	st := &softrast.RenderState{
		ClearColor:    c.ClearColor,
		ClearDepth:    *c.ClearDepth,
		AlphaBlending: c.AlphaBlending,
		AlphaTest:     c.AlphaTest != 0,
		AlphaTestRef:  c.AlphaTest,
		Texturing:     c.Texturing == nil || *c.Texturing,
		WBuffer:       c.WBuffer,
		EdgeMarking:   len(c.EdgeColors) > 0,
		Antialiasing:  c.Antialiasing,
	}
	if c.Shading == "highlight" {
		st.Shading = softrast.ShadingHighlight
	}
	copy(st.ToonTable[:], c.Toon)
	copy(st.EdgeMarkColors[:], c.EdgeColors)

	if f := c.Fog; f != nil {
		st.FogEnabled = true
		st.FogAlphaOnly = f.AlphaOnly
		st.FogColor = f.Color
		st.FogOffset = f.Offset
		st.FogShift = f.Shift
		// Short density lists hold their last value.
		for i := range st.FogDensity {
			if len(f.Density) == 0 {
				break
			}
			st.FogDensity[i] = f.Density[min(i, len(f.Density)-1)]
		}
	}
	return st
}

// Geometry returns the vertex and polygon lists. Texture dimensions come
// from the loaded texels.
func (s *Scene) Geometry(textures []stdimage.Image) ([]softrast.Vertex, []softrast.Polygon) {
	verts := make([]softrast.Vertex, len(s.Vertices))
	for i, v := range s.Vertices {
		vx := softrast.Vertex{X: v.Pos[0], Y: v.Pos[1], Z: v.Pos[2], W: 1}
		if len(v.Pos) == 4 {
			vx.W = v.Pos[3]
		}
		if len(v.UV) == 2 {
			vx.U, vx.V = v.UV[0], v.UV[1]
		}
		vx.Color = [3]float32{63, 63, 63}
		copy(vx.Color[:], v.Color)
		verts[i] = vx
	}

	polys := make([]softrast.Polygon, len(s.Polygons))
	for i, p := range s.Polygons {
		poly := softrast.Polygon{
			Indices: p.Vertices,
			Attr:    p.attr(),
			Line:    p.Line,
		}
		if p.Viewport != nil {
			poly.Viewport = softrast.Viewport{X: p.Viewport[0], Y: p.Viewport[1], Width: p.Viewport[2], Height: p.Viewport[3]}
		}
		if p.Texture != "" {
			idx := s.textureIndex(p.Texture)
			if idx < len(textures) && textures[idx] != nil {
				img := textures[idx]
				b := img.Bounds()
				poly.TexParam = directTexParam(idx, b.Dx(), b.Dy(), s.Textures[idx])
			}
		}
		polys[i] = poly
	}
	return verts, polys
}

func (p *PolygonConfig) attr() uint32 {
	a := polygonModes[p.Mode]<<4 | cullModes[p.Cull]
	if p.DepthWrite {
		a |= 1 << 11
	}
	if p.DepthEqual {
		a |= 1 << 14
	}
	if p.Fog {
		a |= 1 << 15
	}
	return a | uint32(*p.Alpha&0x1F)<<16 | uint32(p.ID&0x3F)<<24
}

// directTexParam builds a direct-color texture parameter word. The
// texture's index goes in the address field so every texture has its own
// cache key.
func directTexParam(index, width, height int, cfg TextureConfig) uint32 {
	sizeShift := func(n int) uint32 {
		s := uint32(0)
		for 8<<s < n && s < 7 {
			s++
		}
		return s
	}
	p := uint32(7)<<26 | sizeShift(width)<<20 | sizeShift(height)<<23 | uint32(index)&0xFFFF
	if cfg.Repeat {
		p |= 1<<16 | 1<<17
	}
	if cfg.Flip {
		p |= 1<<18 | 1<<19
	}
	return p
}

// LoadTextures reads the scene's PNG textures. Textures whose size is not
// a power of two between 8 and 1024 are rejected.
func (s *Scene) LoadTextures() ([]stdimage.Image, error) {
	out := make([]stdimage.Image, len(s.Textures))
	for i, t := range s.Textures {
		path := t.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.dir, path)
		}
		img, err := image.LoadPNG(path)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", t.Name, err)
		}
		b := img.Bounds()
		if !validTexSize(b.Dx()) || !validTexSize(b.Dy()) {
			return nil, fmt.Errorf("texture %q: size %dx%d is not a power of two in [8,1024]", t.Name, b.Dx(), b.Dy())
		}
		out[i] = img
	}
	return out, nil
}

func validTexSize(n int) bool {
	return n >= 8 && n <= 1024 && n&(n-1) == 0
}

// textureSource serves decoded scene textures by the index stored in the
// texture parameter's address field.
func textureSource(textures []stdimage.Image) softrast.TextureSource {
	return softrast.TextureSourceFunc(func(texParam, _ uint32) ([]softrast.FragmentColor, error) {
		idx := int(texParam & 0xFFFF)
		if idx >= len(textures) || textures[idx] == nil {
			return nil, fmt.Errorf("no texture at index %d", idx)
		}
		return image.Texels(textures[idx]), nil
	})
}

// Render draws the scene frames times and returns the last frame.
// onFrame, if set, runs after every frame.
func (s *Scene) Render(cores, frames int, native bool, onFrame func()) (*stdimage.NRGBA, error) {
	textures, err := s.LoadTextures()
	if err != nil {
		return nil, err
	}

	e, err := softrast.New(
		softrast.WithCores(cores),
		softrast.WithScale(s.Scale),
		softrast.WithTextureSource(textureSource(textures)),
	)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	defer e.Close()

	st := s.RenderState()
	verts, polys := s.Geometry(textures)
	order := make([]int, len(polys))
	for i := range order {
		order[i] = i
	}

	for range max(frames, 1) {
		e.Render(st, verts, polys, order)
		e.RenderFinish()
		if onFrame != nil {
			onFrame()
		}
	}

	if native {
		return e.NativeImage(), nil
	}
	return e.Image(), nil
}
