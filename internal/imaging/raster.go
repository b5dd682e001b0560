package imaging

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
)

// MaxSurfaceSize is the largest surface dimension, per axis, that an image is
// drawn onto before sampling. Images are only ever scaled down.
const MaxSurfaceSize = 200

// ErrRasterUnsupported is returned by a SurfaceProvider that cannot supply a
// 2D raster surface.
var ErrRasterUnsupported = errors.New("2D raster surface not supported")

// Surface is an offscreen pixel buffer an image can be drawn onto and read
// back from.
type Surface interface {
	// Draw scales img into a width x height surface anchored at (0,0),
	// replacing any previous contents.
	Draw(img image.Image, width, height int) error

	// ReadPixels returns the pixels inside r as non-premultiplied RGBA bytes,
	// row-major and tightly packed. The part of r outside the surface is
	// ignored.
	ReadPixels(r image.Rectangle) ([]uint8, error)
}

// SurfaceProvider hands out surfaces. Acquire fails when the platform has no
// 2D raster capability.
type SurfaceProvider interface {
	Acquire() (Surface, error)
}

// SurfaceProviderFunc adapts a function to the SurfaceProvider interface.
type SurfaceProviderFunc func() (Surface, error)

// Acquire calls f.
func (f SurfaceProviderFunc) Acquire() (Surface, error) {
	return f()
}

// Raster backend names accepted by NewSurfaceProvider.
const (
	BackendImaging = "imaging"
	BackendBild    = "bild"
	BackendNone    = "none"
)

// NewSurfaceProvider returns the provider for a named raster backend.
// An empty name selects BackendImaging.
func NewSurfaceProvider(backend string) (SurfaceProvider, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendImaging:
		return SurfaceProviderFunc(func() (Surface, error) {
			return &nrgbaSurface{scale: resizeImaging}, nil
		}), nil
	case BackendBild:
		return SurfaceProviderFunc(func() (Surface, error) {
			return &nrgbaSurface{scale: resizeBild}, nil
		}), nil
	case BackendNone:
		return SurfaceProviderFunc(func() (Surface, error) {
			return nil, ErrRasterUnsupported
		}), nil
	default:
		return nil, fmt.Errorf("unknown raster backend: %s", backend)
	}
}

// nrgbaSurface keeps its contents as a non-premultiplied image so that
// readback matches what a browser canvas returns.
type nrgbaSurface struct {
	scale  func(img image.Image, width, height int) *image.NRGBA
	canvas *image.NRGBA
}

func (s *nrgbaSurface) Draw(img image.Image, width, height int) error {
	if img == nil {
		return errors.New("nil image")
	}
	if width <= 0 || height <= 0 || img.Bounds().Empty() {
		s.canvas = image.NewNRGBA(image.Rect(0, 0, 0, 0))
		return nil
	}
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		s.canvas = imaging.Clone(img)
		return nil
	}
	s.canvas = s.scale(img, width, height)
	return nil
}

func (s *nrgbaSurface) ReadPixels(r image.Rectangle) ([]uint8, error) {
	if s.canvas == nil {
		return nil, errors.New("surface has not been drawn")
	}
	region := imaging.Crop(s.canvas, r)
	return region.Pix, nil
}

func resizeImaging(img image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(img, width, height, imaging.Linear)
}

func resizeBild(img image.Image, width, height int) *image.NRGBA {
	// bild works on premultiplied RGBA; Clone converts back.
	return imaging.Clone(transform.Resize(img, width, height, transform.Linear))
}

// SurfaceSize returns the surface dimensions for an image of the given
// natural size: each axis is clamped to MaxSurfaceSize independently.
func SurfaceSize(width, height int) (int, int) {
	return clampAxis(width), clampAxis(height)
}

func clampAxis(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxSurfaceSize {
		return MaxSurfaceSize
	}
	return n
}

// SampleRegion returns the center sub-rectangle of a width x height surface
// that gets sampled: origin at 25% of each axis and extent 50% of each axis,
// both truncated. On a non-empty surface the extent is at least one pixel,
// where strict truncation would give an empty region for a 1-pixel axis.
func SampleRegion(width, height int) image.Rectangle {
	x0, y0 := width/4, height/4
	w, h := width/2, height/2
	if width > 0 && w == 0 {
		w = 1
	}
	if height > 0 && h == 0 {
		h = 1
	}
	return image.Rect(x0, y0, x0+w, y0+h)
}

// Rasterize draws img onto s at its surface size and reads back the pixels
// of the sample region.
func Rasterize(s Surface, img image.Image) ([]uint8, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	bounds := img.Bounds()
	w, h := SurfaceSize(bounds.Dx(), bounds.Dy())

	if err := s.Draw(img, w, h); err != nil {
		return nil, fmt.Errorf("failed to draw image: %w", err)
	}

	pix, err := s.ReadPixels(SampleRegion(w, h))
	if err != nil {
		return nil, fmt.Errorf("failed to read pixels: %w", err)
	}
	return pix, nil
}

// DominantColor rasterizes img onto s and averages the sampled pixels.
func DominantColor(s Surface, img image.Image) (RGBColor, error) {
	pix, err := Rasterize(s, img)
	if err != nil {
		return RGBColor{}, err
	}
	return AverageColor(pix), nil
}
