package softrast

import (
	"runtime"

	"github.com/gogpu/gputypes"
)

// Option configures an Engine during creation.
//
// Example:
//
//	e, err := softrast.New(
//	    softrast.WithCores(4),
//	    softrast.WithScale(2),
//	    softrast.WithTextureSource(src),
//	)
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	cores            int
	scale            int
	format           gputypes.TextureFormat
	textures         TextureSource
	textureCacheSize int
	clipper          Clipper
	decalTolerance   uint32
	lineHack         bool
	texCoordRounding bool
}

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		cores:    runtime.GOMAXPROCS(0),
		scale:    1,
		format:   gputypes.TextureFormatRGBA8Unorm,
		lineHack: true,
	}
}

// WithCores sets the number of rasterizer threads. The count is rounded
// down to a power of two and capped at 16; 1 renders synchronously.
func WithCores(n int) Option {
	return func(o *options) {
		o.cores = n
	}
}

// WithScale renders at scale times the native 256x192 resolution.
// Valid scales are 1 to 4.
func WithScale(scale int) Option {
	return func(o *options) {
		o.scale = scale
	}
}

// WithOutputFormat selects the byte layout of Frame:
// gputypes.TextureFormatRGBA8Unorm (default) or TextureFormatBGRA8Unorm.
func WithOutputFormat(format gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithTextureSource sets the texture decoder. Without one every polygon
// renders untextured.
func WithTextureSource(src TextureSource) Option {
	return func(o *options) {
		o.textures = src
	}
}

// WithTextureCacheSize sets the decoded texture budget in texels.
func WithTextureCacheSize(texels int) Option {
	return func(o *options) {
		o.textureCacheSize = texels
	}
}

// WithClipper replaces the built-in frustum clipper.
func WithClipper(c Clipper) Option {
	return func(o *options) {
		o.clipper = c
	}
}

// WithDecalDepthTolerance lets depth-equal polygons pass when their depth
// is within tolerance of the stored depth. Zero requires exact equality.
func WithDecalDepthTolerance(tolerance uint32) Option {
	return func(o *options) {
		o.decalTolerance = tolerance
	}
}

// WithLineHack controls the minimum one pixel width given to line
// polygons. Enabled by default.
func WithLineHack(enabled bool) Option {
	return func(o *options) {
		o.lineHack = enabled
	}
}

// WithTextureCoordRounding rounds texture coordinates to 1/256 texel
// before truncating them instead of flooring.
func WithTextureCoordRounding(enabled bool) Option {
	return func(o *options) {
		o.texCoordRounding = enabled
	}
}
