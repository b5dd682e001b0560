package extract

import (
	"errors"
	"strings"
)

// Error kinds reported by Extract. Match them with errors.Is.
var (
	// ErrSurfaceUnavailable means no 2D raster surface could be acquired.
	// Nothing was loaded.
	ErrSurfaceUnavailable = errors.New("2D raster surface not supported")

	// ErrLoadFailed means the image could not be fetched or decoded.
	// Match it with errors.Is rather than by message text.
	ErrLoadFailed = errors.New("failed to load image")

	// ErrExtractionFailed means drawing or sampling a loaded image failed.
	ErrExtractionFailed = errors.New("failed to extract color")
)

// Error describes a failed extraction.
type Error struct {
	Kind   error  // One of the Err* kinds above
	Source string // The requested image source
	Err    error  // Underlying cause, may be nil
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Source != "" {
		b.WriteString(": ")
		b.WriteString(e.Source)
	}
	if e.Err != nil && e.Err.Error() != e.Kind.Error() {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
