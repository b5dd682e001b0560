// Package extract memoizes dominant color extraction by image source.
//
// An Extractor wires a Loader, a SurfaceProvider and a ColorCache from package
// imaging into one call, Extract. Failures are reported as *Error values whose
// kind is ErrSurfaceUnavailable, ErrLoadFailed or ErrExtractionFailed, and they
// never populate the cache.
package extract
