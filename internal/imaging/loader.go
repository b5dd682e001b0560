package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultMaxBytes is the default limit on the encoded size of a loaded image.
const DefaultMaxBytes int64 = 32 << 20

// DefaultMaxPixels is the default limit on the decoded area of a loaded image.
const DefaultMaxPixels int64 = 50_000_000

// Loader fetches and decodes the image identified by a source string.
type Loader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, src string) (image.Image, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, src string) (image.Image, error) {
	return f(ctx, src)
}

// SourceLoader resolves image sources of the following forms:
//   - http:// and https:// URLs, fetched with Client
//   - data: URIs, base64 or percent-encoded
//   - file:// URLs
//   - anything else, treated as a filesystem path
//
// Supported formats are PNG, JPEG, GIF, WebP, BMP and TIFF.
//
// HTTP requests are sent without cookies or credentials and no origin check is
// applied to the decoded pixels. No timeout is imposed beyond what ctx and
// Client carry.
type SourceLoader struct {
	// Client is used for http(s) sources. nil means http.DefaultClient.
	Client *http.Client

	// MaxBytes limits the encoded image size. Zero means DefaultMaxBytes.
	MaxBytes int64

	// MaxPixels limits width*height as declared by the image header, checked
	// before any pixel buffer is allocated. Zero means DefaultMaxPixels.
	MaxPixels int64
}

// NewSourceLoader creates a SourceLoader with the default client and limit.
func NewSourceLoader() *SourceLoader {
	return &SourceLoader{}
}

// Load opens src, decodes it and returns the image.
func (l *SourceLoader) Load(ctx context.Context, src string) (image.Image, error) {
	rc, err := l.open(ctx, src)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	limit := l.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("image exceeds %d bytes", limit)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	maxPixels := l.MaxPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	if area := int64(cfg.Width) * int64(cfg.Height); area > maxPixels {
		return nil, fmt.Errorf("failed to decode image: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, maxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func (l *SourceLoader) open(ctx context.Context, src string) (io.ReadCloser, error) {
	if src == "" {
		return nil, errors.New("empty image source")
	}

	lower := strings.ToLower(src)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return l.fetch(ctx, src)
	case strings.HasPrefix(lower, "data:"):
		data, err := decodeDataURI(src)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	case strings.HasPrefix(lower, "file://"):
		u, err := url.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("invalid file URL: %w", err)
		}
		return openFile(u.Path)
	default:
		return openFile(src)
	}
}

func (l *SourceLoader) fetch(ctx context.Context, src string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return resp.Body, nil
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return f, nil
}

// decodeDataURI returns the payload of a data: URI of the form
// data:[<mediatype>][;base64],<data>.
func decodeDataURI(src string) ([]byte, error) {
	header, payload, ok := strings.Cut(src[len("data:"):], ",")
	if !ok {
		return nil, errors.New("malformed data URI: missing comma")
	}

	if strings.HasSuffix(strings.ToLower(header), ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("malformed data URI: %w", err)
		}
		return data, nil
	}

	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("malformed data URI: %w", err)
	}
	return []byte(decoded), nil
}

// ImageInfo contains metadata about a decoded image.
type ImageInfo struct {
	// Width is the natural image width in pixels.
	Width int `json:"width"`

	// Height is the natural image height in pixels.
	Height int `json:"height"`

	// HasAlpha indicates whether the decoded color model carries alpha.
	HasAlpha bool `json:"has_alpha"`
}

// DescribeImage reports the natural dimensions and alpha support of img.
func DescribeImage(img image.Image) ImageInfo {
	bounds := img.Bounds()
	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted:
		hasAlpha = true
	}
	return ImageInfo{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		HasAlpha: hasAlpha,
	}
}
