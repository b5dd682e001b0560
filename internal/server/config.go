package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ironsheep/dominant-color-mcp/internal/imaging"
)

// Environment variables read by LoadConfig.
const (
	EnvLogLevel  = "DOMINANT_COLOR_LOG_LEVEL"
	EnvRaster    = "DOMINANT_COLOR_RASTER"
	EnvCoalesce  = "DOMINANT_COLOR_COALESCE"
	EnvMaxBytes  = "DOMINANT_COLOR_MAX_BYTES"
	EnvMaxPixels = "DOMINANT_COLOR_MAX_PIXELS"
)

// Config holds server settings.
type Config struct {
	// Debug enables debug logging to stderr.
	Debug bool

	// RasterBackend selects the surface implementation: "imaging", "bild"
	// or "none".
	RasterBackend string

	// Coalesce shares one extraction between concurrent requests for the
	// same source.
	Coalesce bool

	// MaxBytes limits the encoded size of loaded images.
	MaxBytes int64

	// MaxPixels limits the decoded area (width*height) of loaded images.
	MaxPixels int64
}

// DefaultConfig returns the settings used when no environment is set.
func DefaultConfig() Config {
	return Config{
		RasterBackend: imaging.BackendImaging,
		MaxBytes:      imaging.DefaultMaxBytes,
		MaxPixels:     imaging.DefaultMaxPixels,
	}
}

// LoadConfig builds a Config from environment variables looked up with getenv
// (normally os.Getenv). Unset variables keep their defaults.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.Debug = strings.EqualFold(v, "debug")
	}

	if v := strings.TrimSpace(getenv(EnvRaster)); v != "" {
		if _, err := imaging.NewSurfaceProvider(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvRaster, err)
		}
		cfg.RasterBackend = strings.ToLower(v)
	}

	if v := strings.TrimSpace(getenv(EnvCoalesce)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvCoalesce, err)
		}
		cfg.Coalesce = b
	}

	if v := strings.TrimSpace(getenv(EnvMaxBytes)); v != "" {
		n, err := parsePositive(EnvMaxBytes, v)
		if err != nil {
			return cfg, err
		}
		cfg.MaxBytes = n
	}

	if v := strings.TrimSpace(getenv(EnvMaxPixels)); v != "" {
		n, err := parsePositive(EnvMaxPixels, v)
		if err != nil {
			return cfg, err
		}
		cfg.MaxPixels = n
	}

	return cfg, nil
}

func parsePositive(name, v string) (int64, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %d", name, n)
	}
	return n, nil
}
