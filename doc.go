// Package softrast is a software rasterizer for a fixed-function handheld
// 3D GPU. It reproduces the hardware's polygon fill pixel for pixel:
// fixed-point edge walking, perspective-correct interpolation, the four
// texture blend modes, shadow volumes through a stencil counter,
// translucency ordering by polygon ID, edge marking and fog.
//
// # Quick Start
//
//	e, err := softrast.New(softrast.WithCores(4))
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	e.Render(&state, vertices, polygons, order)
//	e.RenderFinish()
//	pixels := e.Frame() // RGBA8, 256x192
//
// # Frames
//
// Render clips and transforms the polygon list, then rasterizes it. With
// more than one core the rasterization runs on pinned worker threads and
// Render returns immediately; RenderFinish joins the workers, runs the
// post-processing passes and converts the result. Frames never overlap:
// Render waits for the previous frame first.
//
// Frame holds the converted output after RenderFinish and until the next
// Render. Image, ColorBuffer and Fragments wait for the workers, so they
// are safe right after Render, before edge marking and fog.
//
// # Scanline Interleaving
//
// Each worker owns the rows y with y&mask == value. Core counts are
// rounded down to a power of two, at most 16, so every row has exactly
// one owner and workers never write the same pixel.
package softrast
