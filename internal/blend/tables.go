package blend

import "github.com/gogpu/softrast/internal/color"

// Tables holds the precomputed texture combine tables.
//
// A Tables value is built once by NewTables and is read-only afterwards, so
// it may be shared by any number of rasterizer units without locking.
type Tables struct {
	// Modulate[t][v] is the product of a texel and a vertex component:
	// ((t+1)*(v+1)-1) >> 6.
	Modulate [64][64]uint8

	// Decal[a][t][v] mixes a texel over a vertex component weighted by the
	// 5-bit texel alpha: (t*a + v*(31-a)) >> 5.
	Decal [32][64][64]uint8
}

// NewTables builds the combine tables.
func NewTables() *Tables {
	t := &Tables{}
	for i := 0; i < 64; i++ {
		for j := 0; j < 64; j++ {
			t.Modulate[i][j] = uint8(((i+1)*(j+1) - 1) >> 6)
			for a := 0; a < 32; a++ {
				t.Decal[a][i][j] = uint8((i*a + j*(31-a)) >> 5)
			}
		}
	}
	return t
}

// ModulateAlpha combines two 5-bit alphas through the 6-bit modulate table.
func (t *Tables) ModulateAlpha(tex, material uint8) uint8 {
	return t.Modulate[color.Expand5to6(tex)][color.Expand5to6(material)] >> 1
}

// ModulateColor multiplies texel and vertex color per channel.
// The alpha is combined with ModulateAlpha.
func (t *Tables) ModulateColor(tex, material color.Color) color.Color {
	return color.Color{
		R: t.Modulate[tex.R][material.R],
		G: t.Modulate[tex.G][material.G],
		B: t.Modulate[tex.B][material.B],
		A: t.ModulateAlpha(tex.A, material.A),
	}
}

// DecalColor lays the texel over the vertex color weighted by texel alpha.
// The vertex alpha passes through.
func (t *Tables) DecalColor(tex, material color.Color) color.Color {
	d := &t.Decal[tex.A]
	return color.Color{
		R: d[tex.R][material.R],
		G: d[tex.G][material.G],
		B: d[tex.B][material.B],
		A: material.A,
	}
}
