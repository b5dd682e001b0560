package extract

import (
	"context"
	"fmt"
	"image"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/ironsheep/dominant-color-mcp/internal/imaging"
)

// Extractor computes and memoizes the dominant color of images.
//
// Each Extractor owns its ColorCache unless one is supplied with WithCache, so
// separate instances (per application, per test) never share results.
//
// By default concurrent calls for the same source are not deduplicated: each
// misses the cache, loads and samples independently, and the last one to
// finish writes the entry. WithCoalescing makes concurrent callers share a
// single load instead.
type Extractor struct {
	cache    *ColorCache
	loader   imaging.Loader
	surfaces imaging.SurfaceProvider
	flights  *singleflight.Group
	logger   *log.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCache makes the Extractor read and write cache instead of a private one.
func WithCache(cache *ColorCache) Option {
	return func(e *Extractor) {
		e.cache = cache
	}
}

// WithLoader replaces the default SourceLoader.
func WithLoader(loader imaging.Loader) Option {
	return func(e *Extractor) {
		e.loader = loader
	}
}

// WithSurfaceProvider replaces the default imaging raster backend.
func WithSurfaceProvider(p imaging.SurfaceProvider) Option {
	return func(e *Extractor) {
		e.surfaces = p
	}
}

// WithCoalescing shares one in-flight extraction between concurrent callers
// asking for the same source. The first caller's context governs the shared
// load.
func WithCoalescing() Option {
	return func(e *Extractor) {
		e.flights = &singleflight.Group{}
	}
}

// WithLogger enables debug logging of cache misses and failures.
func WithLogger(l *log.Logger) Option {
	return func(e *Extractor) {
		e.logger = l
	}
}

// New creates an Extractor with an empty cache, a SourceLoader and the
// imaging raster backend, adjusted by opts.
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = NewColorCache()
	}
	if e.loader == nil {
		e.loader = imaging.NewSourceLoader()
	}
	if e.surfaces == nil {
		e.surfaces, _ = imaging.NewSurfaceProvider(imaging.BackendImaging)
	}
	return e
}

// Extract returns the dominant color of the image identified by src.
//
// A cached color is returned without any I/O. Otherwise a raster surface is
// acquired, the image is loaded and sampled, and the result is cached under
// the exact src string. Failures are returned as *Error and are never cached,
// so a later call repeats the whole attempt. Extract does not retry and adds
// no timeout of its own; cancel ctx to abandon a load.
func (e *Extractor) Extract(ctx context.Context, src string) (imaging.RGBColor, error) {
	if color, ok := e.cache.Get(src); ok {
		return color, nil
	}

	if e.flights == nil {
		return e.extract(ctx, src)
	}

	v, err, _ := e.flights.Do(src, func() (interface{}, error) {
		// A flight that finished between our lookup and Do already stored it.
		if color, ok := e.cache.Get(src); ok {
			return color, nil
		}
		return e.extract(ctx, src)
	})
	if err != nil {
		return imaging.RGBColor{}, err
	}
	return v.(imaging.RGBColor), nil
}

func (e *Extractor) extract(ctx context.Context, src string) (imaging.RGBColor, error) {
	e.debugf("color cache miss: %s", src)

	surface, img, err := e.prepare(ctx, src)
	if err != nil {
		return imaging.RGBColor{}, err
	}

	var color imaging.RGBColor
	err = rasterize(func() (err error) {
		color, err = imaging.DominantColor(surface, img)
		return err
	})
	if err != nil {
		return e.fail(ErrExtractionFailed, src, err)
	}

	e.cache.Store(src, color)
	e.debugf("dominant color of %s is %s", src, color)
	return color, nil
}

// Preview renders what Extract samples for src: the downscaled surface with
// the sample region outlined. It fails the same way Extract does and never
// touches the cache.
func (e *Extractor) Preview(ctx context.Context, src, outlineHex string) (*imaging.PreviewResult, error) {
	surface, img, err := e.prepare(ctx, src)
	if err != nil {
		return nil, err
	}

	var result *imaging.PreviewResult
	err = rasterize(func() (err error) {
		result, err = imaging.SamplePreview(surface, img, outlineHex)
		return err
	})
	if err != nil {
		_, err = e.fail(ErrExtractionFailed, src, err)
		return nil, err
	}
	return result, nil
}

// prepare acquires a surface and then loads the image. Nothing is loaded
// when no surface is available.
func (e *Extractor) prepare(ctx context.Context, src string) (imaging.Surface, image.Image, error) {
	surface, err := e.surfaces.Acquire()
	if err == nil && surface == nil {
		err = imaging.ErrRasterUnsupported
	}
	if err != nil {
		_, err = e.fail(ErrSurfaceUnavailable, src, err)
		return nil, nil, err
	}

	img, err := e.loader.Load(ctx, src)
	if err != nil {
		_, err = e.fail(ErrLoadFailed, src, err)
		return nil, nil, err
	}
	return surface, img, nil
}

// rasterize runs fn, turning a panic from a misbehaving image or surface into
// an error.
func rasterize(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during rasterization: %v", r)
		}
	}()
	return fn()
}

func (e *Extractor) fail(kind error, src string, cause error) (imaging.RGBColor, error) {
	err := &Error{Kind: kind, Source: src, Err: cause}
	e.debugf("%v", err)
	return imaging.RGBColor{}, err
}

func (e *Extractor) debugf(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}

// Cache returns the cache this Extractor reads and writes.
func (e *Extractor) Cache() *ColorCache {
	return e.cache
}

// ClearCache drops every cached color. The next Extract for any source runs
// the full load and raster pipeline again.
func (e *Extractor) ClearCache() {
	e.cache.Clear()
}

// CacheSize returns the number of cached colors.
func (e *Extractor) CacheSize() int {
	return e.cache.Size()
}
