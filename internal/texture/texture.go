// Package texture resolves polygon texture parameters to decoded texels.
//
// Decoding itself is done by a Source; this package keys and caches the
// results across frames and evicts them at frame boundaries.
package texture

import (
	"fmt"

	"github.com/gogpu/softrast/internal/cache"
	"github.com/gogpu/softrast/internal/color"
	"github.com/gogpu/softrast/internal/raster"
)

// DefaultCacheSize is the default texel budget of a Cache: 32 MiB worth
// of 4-byte texels.
const DefaultCacheSize = 8 << 20

// Source decodes the texture described by a texture parameter word and
// palette base into row-major texels of the encoded width and height.
type Source interface {
	DecodeTexture(texParam, texPalette uint32) ([]color.Color, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(texParam, texPalette uint32) ([]color.Color, error)

// DecodeTexture calls f.
func (f SourceFunc) DecodeTexture(texParam, texPalette uint32) ([]color.Color, error) {
	return f(texParam, texPalette)
}

// Key identifies a decoded texture. Wrap, flip and coordinate transform
// bits do not change the texels and are masked out.
type Key struct {
	Param   uint32
	Palette uint32
}

const keyParamMask = ^uint32(0xF<<16 | 3<<30)

// KeyFor returns the cache key of a texture.
func KeyFor(texParam, texPalette uint32) Key {
	k := Key{Param: texParam & keyParamMask, Palette: texPalette}
	// Direct color textures have no palette.
	if raster.TexFormat(texParam) == 7 {
		k.Palette = 0
	}
	return k
}

// Cache maps texture keys to decoded texels.
//
// Lookup, EvictFrame and Invalidate must be called from a single goroutine,
// the one that orchestrates frames. Texel slices returned by Lookup stay
// valid after eviction; they are never written.
//
// Textures the source fails to decode are not retried until Invalidate.
type Cache struct {
	src     Source
	entries *cache.Cache[Key, []color.Color]
	failed  map[Key]struct{}
}

// NewCache creates a texture cache over src with a budget of size texels.
// A size of 0 or less selects DefaultCacheSize.
func NewCache(src Source, size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		src:     src,
		entries: cache.New[Key, []color.Color](size),
		failed:  make(map[Key]struct{}),
	}
}

// Lookup returns the texels of a texture, decoding it on first use.
// It returns nil for untextured polygons and for textures the source
// cannot decode; those sample as no texture.
func (c *Cache) Lookup(texParam, texPalette uint32) []color.Color {
	if raster.TexFormat(texParam) == 0 || c.src == nil {
		return nil
	}

	key := KeyFor(texParam, texPalette)
	if _, ok := c.failed[key]; ok {
		return nil
	}

	w, h := raster.TexSize(texParam)
	texels, err := c.entries.GetOrCreate(key, func() ([]color.Color, int, error) {
		texels, err := c.src.DecodeTexture(texParam, texPalette)
		if err != nil {
			return nil, 0, err
		}
		if len(texels) < w*h {
			return nil, 0, fmt.Errorf("texture: decoded %d texels, want %dx%d", len(texels), w, h)
		}
		return texels, len(texels), nil
	})
	if err != nil {
		c.failed[key] = struct{}{}
		slogger().Debug("texture: miss", "param", texParam, "palette", texPalette, "err", err)
		return nil
	}
	return texels
}

// EvictFrame trims the cache to its budget, least recently used first.
func (c *Cache) EvictFrame() {
	if n := c.entries.Evict(); n > 0 {
		slogger().Debug("texture: evicted", "count", n)
	}
}

// Invalidate drops every cached texture. Called when texture memory is
// remapped.
func (c *Cache) Invalidate() {
	c.entries.Clear()
	clear(c.failed)
}

// Stats returns the underlying cache statistics.
func (c *Cache) Stats() cache.Stats {
	return c.entries.Stats()
}
