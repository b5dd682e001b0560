// Package imaging provides the pixel-level pieces of dominant color extraction.
//
// The package loads images from a source string, draws them onto an offscreen
// raster surface, reads back the center of that surface and reduces the
// sampled pixels to one RGB value. Nothing in this package caches results;
// see package extract for the memoizing orchestrator.
//
// # Pipeline
//
//  1. A Loader decodes the image named by a source string (URL, data URI,
//     file URL or path).
//  2. The image is drawn onto a Surface no larger than MaxSurfaceSize on
//     either axis. Images are scaled down, never up.
//  3. The pixels of SampleRegion, the center 50% of the surface on each axis,
//     are read back as non-premultiplied RGBA bytes.
//  4. AverageColor inspects every SampleStride-th pixel, skips transparent,
//     near-white and near-black pixels, and returns the rounded mean. If
//     nothing survives, FallbackColor (mid-gray) is returned.
//
// # Raster Backends
//
// Surfaces come from a SurfaceProvider, selected by name:
//   - "imaging": github.com/disintegration/imaging (default)
//   - "bild": github.com/anthonynsimon/bild
//   - "none": no raster capability; Acquire always fails
//
// # Color Representation
//
// RGBColor formats as a CSS value, "rgb(R, G, B)", and can be expanded into
// hex, HSL and WCAG relative luminance with Describe.
//
// # Thread Safety
//
// AverageColor and the color helpers are pure. A Surface holds drawing state
// and must not be shared between goroutines; acquire one per extraction.
// SourceLoader is safe for concurrent use.
package imaging
