package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultOutlineColor is used when no outline color is given or it cannot be
// parsed.
const DefaultOutlineColor = "#ff0000"

// Box is a rectangle expressed as origin and extent.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PreviewResult shows what the color sampler sees for an image.
type PreviewResult struct {
	Image         ImageInfo   `json:"image"`
	SurfaceWidth  int         `json:"surface_width"`
	SurfaceHeight int         `json:"surface_height"`
	Region        Box         `json:"region"`
	Color         ColorResult `json:"color"`
	SurfaceBase64 string      `json:"surface_base64"` // Surface with the sample region outlined
	RegionBase64  string      `json:"region_base64"`  // Sampled pixels only
	MimeType      string      `json:"mime_type"`
}

// SamplePreview rasterizes img onto s and renders the downscaled surface with
// the sample region outlined, plus the sampled region on its own, both as
// base64 PNG. The color is computed from the same pixels DominantColor uses.
func SamplePreview(s Surface, img image.Image, outlineHex string) (*PreviewResult, error) {
	info := DescribeImage(img)
	w, h := SurfaceSize(info.Width, info.Height)

	if err := s.Draw(img, w, h); err != nil {
		return nil, fmt.Errorf("failed to draw image: %w", err)
	}

	full, err := readImage(s, image.Rect(0, 0, w, h))
	if err != nil {
		return nil, err
	}
	region := SampleRegion(w, h)
	sampled, err := readImage(s, region)
	if err != nil {
		return nil, err
	}

	outline, err := colorful.Hex(outlineHex)
	if err != nil {
		outline, _ = colorful.Hex(DefaultOutlineColor)
	}
	drawOutline(full, region, outline)

	surfacePNG, err := encodePNG(full)
	if err != nil {
		return nil, err
	}
	regionPNG, err := encodePNG(sampled)
	if err != nil {
		return nil, err
	}

	return &PreviewResult{
		Image:         info,
		SurfaceWidth:  w,
		SurfaceHeight: h,
		Region: Box{
			X:      region.Min.X,
			Y:      region.Min.Y,
			Width:  region.Dx(),
			Height: region.Dy(),
		},
		Color:         Describe(AverageColor(sampled.Pix)),
		SurfaceBase64: surfacePNG,
		RegionBase64:  regionPNG,
		MimeType:      "image/png",
	}, nil
}

func readImage(s Surface, r image.Rectangle) (*image.NRGBA, error) {
	pix, err := s.ReadPixels(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read pixels: %w", err)
	}
	if len(pix) != r.Dx()*r.Dy()*bytesPerPixel {
		return nil, fmt.Errorf("surface returned %d bytes for %dx%d region", len(pix), r.Dx(), r.Dy())
	}
	return &image.NRGBA{
		Pix:    pix,
		Stride: r.Dx() * bytesPerPixel,
		Rect:   image.Rect(0, 0, r.Dx(), r.Dy()),
	}, nil
}

// drawOutline draws a one pixel border just inside r.
func drawOutline(img *image.NRGBA, r image.Rectangle, c colorful.Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	cr, cg, cb := c.RGB255()
	col := color.NRGBA{R: cr, G: cg, B: cb, A: 255}

	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetNRGBA(x, r.Min.Y, col)
		img.SetNRGBA(x, r.Max.Y-1, col)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetNRGBA(r.Min.X, y, col)
		img.SetNRGBA(r.Max.X-1, y, col)
	}
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
