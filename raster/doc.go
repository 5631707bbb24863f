// Package raster is a small software triangle rasterizer.
//
// It takes positions that are already in normalized device coordinates, maps
// them through a viewport and fills or outlines indexed triangles on a Target.
// Both windings are filled; there is no culling and no depth buffer.
//
// Pipeline (fixed):
//
//	NDC positions → Viewport → Rasterization → Target.
//
// Coverage is sampled at pixel centers, which is close enough to what an
// OpenGL driver produces for the output to be compared against a window.
package raster
