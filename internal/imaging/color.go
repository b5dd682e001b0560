package imaging

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
//
// RGBColor is a value type: two colors are equal when all three channels are
// equal, so results may be compared with ==.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// FallbackColor is returned when no sampled pixel survives filtering.
var FallbackColor = RGBColor{R: 128, G: 128, B: 128}

// String formats the color as a CSS rgb() value, e.g. "rgb(255, 128, 64)".
func (c RGBColor) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex formats the color as a lowercase "#rrggbb" string.
func (c RGBColor) Hex() string {
	return c.colorful().Hex()
}

// HSL converts the color to HSL with integer components.
func (c RGBColor) HSL() HSLColor {
	h, s, l := c.colorful().Hsl()
	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}

func (c RGBColor) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Relative luminance weights from WCAG 2.x.
const (
	lumaRed   = 0.2126
	lumaGreen = 0.7152
	lumaBlue  = 0.0722
)

// Brightness returns the WCAG relative luminance of c in the range [0, 1].
//
// Channels are linearized from sRGB before weighting, so green contributes
// most and blue least. Black is exactly 0 and white is 1 within floating
// point tolerance.
func Brightness(c RGBColor) float64 {
	r, g, b := c.colorful().LinearRgb()
	return lumaRed*r + lumaGreen*g + lumaBlue*b
}

// ColorResult contains a color value in the representations returned by the
// server tools.
type ColorResult struct {
	CSS        string   `json:"css"`        // CSS "rgb(R, G, B)"
	Hex        string   `json:"hex"`        // Hex format "#rrggbb"
	RGB        RGBColor `json:"rgb"`        // RGB components
	HSL        HSLColor `json:"hsl"`        // HSL representation
	Brightness float64  `json:"brightness"` // Relative luminance (0-1)
}

// Describe expands c into every representation carried by ColorResult.
func Describe(c RGBColor) ColorResult {
	return ColorResult{
		CSS:        c.String(),
		Hex:        c.Hex(),
		RGB:        c,
		HSL:        c.HSL(),
		Brightness: Brightness(c),
	}
}
