package image

import (
	"errors"
	"fmt"
	"image"
	stdcolor "image/color"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/softrast/internal/color"
)

// ErrUnsupportedFormat is returned for presentation formats other than
// RGBA8Unorm and BGRA8Unorm.
var ErrUnsupportedFormat = errors.New("image: unsupported format")

// BytesPerPixel is the size of one presented pixel.
const BytesPerPixel = 4

// CheckFormat reports whether frames can be presented in format.
func CheckFormat(format gputypes.TextureFormat) error {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
}

// Convert writes src as 8-bit pixels in format into dst, which must hold
// len(src)*BytesPerPixel bytes.
func Convert(dst []byte, src []color.Color, format gputypes.TextureFormat) error {
	if err := CheckFormat(format); err != nil {
		return err
	}
	if len(dst) < len(src)*BytesPerPixel {
		return fmt.Errorf("image: destination holds %d bytes, need %d", len(dst), len(src)*BytesPerPixel)
	}

	bgra := format == gputypes.TextureFormatBGRA8Unorm
	for i, c := range src {
		r, g, b, a := c.RGBA8()
		if bgra {
			r, b = b, r
		}
		p := dst[i*BytesPerPixel : i*BytesPerPixel+BytesPerPixel : i*BytesPerPixel+BytesPerPixel]
		p[0], p[1], p[2], p[3] = r, g, b, a
	}
	return nil
}

// ToNRGBA converts a width x height color buffer into a new image.
// Colors are not premultiplied, so the result is an NRGBA image.
func ToNRGBA(src []color.Color, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	// RGBA8Unorm matches the NRGBA byte order.
	_ = Convert(img.Pix, src[:width*height], gputypes.TextureFormatRGBA8Unorm)
	return img
}

// Downscale resamples img to width x height with bilinear filtering.
// An image already at that size is returned as is.
func Downscale(img *image.NRGBA, width, height int) *image.NRGBA {
	if img.Bounds().Dx() == width && img.Bounds().Dy() == height {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// Texels converts an image into hardware precision texels, row-major.
func Texels(img image.Image) []color.Color {
	b := img.Bounds()
	out := make([]color.Color, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n := nrgbaAt(img, x, y)
			out = append(out, color.Color{
				R: n[0] >> 2,
				G: n[1] >> 2,
				B: n[2] >> 2,
				A: n[3] >> 3,
			})
		}
	}
	return out
}

// nrgbaAt returns the non-premultiplied 8-bit color at (x, y).
func nrgbaAt(img image.Image, x, y int) [4]uint8 {
	if n, ok := img.(*image.NRGBA); ok {
		i := n.PixOffset(x, y)
		return [4]uint8{n.Pix[i], n.Pix[i+1], n.Pix[i+2], n.Pix[i+3]}
	}
	c := stdcolor.NRGBAModel.Convert(img.At(x, y)).(stdcolor.NRGBA)
	return [4]uint8{c.R, c.G, c.B, c.A}
}
