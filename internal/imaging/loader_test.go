package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

// encodeTestPNG returns the PNG encoding of a uniform image.
func encodeTestPNG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, createInMemoryImage(width, height, c)); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return buf.Bytes()
}

// createTestImage creates a simple test image file and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if _, err := tmpFile.Write(encodeTestPNG(t, width, height, c)); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to write image: %v", err)
	}

	return tmpFile.Name()
}

func assertBounds(t *testing.T, img image.Image, width, height int) {
	t.Helper()
	if img == nil {
		t.Fatal("Load returned nil image")
	}
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		t.Errorf("unexpected dimensions: got %dx%d, want %dx%d", b.Dx(), b.Dy(), width, height)
	}
}

func TestSourceLoader_FilePath(t *testing.T) {
	imgPath := createTestImage(t, 100, 60, color.RGBA{255, 0, 0, 255})
	defer os.Remove(imgPath)

	img, err := NewSourceLoader().Load(context.Background(), imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertBounds(t, img, 100, 60)
}

func TestSourceLoader_FileURL(t *testing.T) {
	imgPath := createTestImage(t, 32, 16, color.RGBA{0, 255, 0, 255})
	defer os.Remove(imgPath)

	img, err := NewSourceLoader().Load(context.Background(), "file://"+imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertBounds(t, img, 32, 16)
}

func TestSourceLoader_DataURI(t *testing.T) {
	data := encodeTestPNG(t, 8, 4, color.RGBA{0, 0, 255, 255})
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)

	img, err := NewSourceLoader().Load(context.Background(), src)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertBounds(t, img, 8, 4)
}

func TestSourceLoader_Errors(t *testing.T) {
	invalid, err := os.CreateTemp("", "invalid-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	invalid.WriteString("not an image")
	invalid.Close()
	defer os.Remove(invalid.Name())

	tests := []struct {
		name string
		src  string
	}{
		{"empty source", ""},
		{"non-existent file", "/nonexistent/path/to/image.png"},
		{"invalid image data", invalid.Name()},
		{"data URI without comma", "data:image/png;base64"},
		{"data URI bad base64", "data:image/png;base64,!!!"},
		{"data URI not an image", "data:text/plain,hello%20world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSourceLoader().Load(context.Background(), tt.src); err == nil {
				t.Errorf("Load(%q) should fail", tt.src)
			}
		})
	}
}

func TestSourceLoader_HTTP(t *testing.T) {
	data := encodeTestPNG(t, 50, 40, color.RGBA{200, 100, 50, 255})

	mux := http.NewServeMux()
	mux.HandleFunc("/thumb.png", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") != "" {
			t.Errorf("request should not carry cookies")
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	loader := &SourceLoader{Client: srv.Client()}

	img, err := loader.Load(context.Background(), srv.URL+"/thumb.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertBounds(t, img, 50, 40)

	if _, err := loader.Load(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Error("Load should fail for a 404 response")
	}
}

func TestSourceLoader_MaxBytes(t *testing.T) {
	data := encodeTestPNG(t, 50, 40, color.RGBA{200, 100, 50, 255})
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)

	loader := &SourceLoader{MaxBytes: int64(len(data) - 1)}
	if _, err := loader.Load(context.Background(), src); err == nil {
		t.Error("Load should fail when the image exceeds MaxBytes")
	}

	loader.MaxBytes = int64(len(data))
	if _, err := loader.Load(context.Background(), src); err != nil {
		t.Errorf("Load should succeed at exactly MaxBytes: %v", err)
	}
}

// headerOnlyPNG returns a tiny 1x1 PNG whose IHDR claims width x height.
func headerOnlyPNG(t *testing.T, width, height uint32) []byte {
	t.Helper()
	data := encodeTestPNG(t, 1, 1, color.Gray{Y: 128})
	if string(data[12:16]) != "IHDR" {
		t.Fatalf("unexpected first chunk %q", data[12:16])
	}
	binary.BigEndian.PutUint32(data[16:20], width)
	binary.BigEndian.PutUint32(data[20:24], height)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestSourceLoader_MaxPixels(t *testing.T) {
	data := headerOnlyPNG(t, 100000, 100000)
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)

	_, err := NewSourceLoader().Load(context.Background(), src)
	if err == nil {
		t.Fatal("Load should reject a header declaring 100000x100000")
	}
	if !strings.Contains(err.Error(), "failed to decode image") {
		t.Errorf("got %q, want a decode failure", err)
	}
	if !strings.Contains(err.Error(), "100000x100000") {
		t.Errorf("got %q, want the declared size in the message", err)
	}

	small := encodeTestPNG(t, 50, 40, color.RGBA{200, 100, 50, 255})
	realSrc := "data:image/png;base64," + base64.StdEncoding.EncodeToString(small)

	loader := &SourceLoader{MaxPixels: 50*40 - 1}
	if _, err := loader.Load(context.Background(), realSrc); err == nil {
		t.Error("Load should fail when the image exceeds MaxPixels")
	}

	loader.MaxPixels = 50 * 40
	img, err := loader.Load(context.Background(), realSrc)
	if err != nil {
		t.Fatalf("Load should succeed at exactly MaxPixels: %v", err)
	}
	assertBounds(t, img, 50, 40)
}

func TestSourceLoader_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("unreachable"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&SourceLoader{Client: srv.Client()}).Load(ctx, srv.URL)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestLoaderFunc(t *testing.T) {
	want := createInMemoryImage(3, 3, color.Black)
	var gotSrc string
	l := LoaderFunc(func(ctx context.Context, src string) (image.Image, error) {
		gotSrc = src
		return want, nil
	})

	img, err := l.Load(context.Background(), "thumb")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img != want || gotSrc != "thumb" {
		t.Error("LoaderFunc did not delegate to the wrapped function")
	}
}

func TestDescribeImage(t *testing.T) {
	info := DescribeImage(createInMemoryImage(30, 20, color.White))
	if info.Width != 30 || info.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", info.Width, info.Height)
	}
	if !info.HasAlpha {
		t.Error("RGBA image should report alpha")
	}

	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	if DescribeImage(gray).HasAlpha {
		t.Error("Gray image should not report alpha")
	}
}
