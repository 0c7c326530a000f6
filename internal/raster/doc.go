// Package raster implements the polygon fill core of the software renderer:
// the fixed-point edge stepper, the convex shape engine, the scanline runner
// and the per-pixel shading, depth, stencil and blend pipeline.
//
// A Unit rasterizes an entire frame's clipped polygon list but only writes
// the scanlines selected by its (mask, value) pair. Units with disjoint
// selections can therefore run concurrently over one Framebuffer without
// locking.
package raster
