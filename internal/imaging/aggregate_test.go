package imaging

import "testing"

// uniformPixels returns n RGBA pixels of the same value.
func uniformPixels(n int, r, g, b, a uint8) []uint8 {
	pix := make([]uint8, 0, n*4)
	for i := 0; i < n; i++ {
		pix = append(pix, r, g, b, a)
	}
	return pix
}

func TestAverageColor_Uniform(t *testing.T) {
	got := AverageColor(uniformPixels(100, 200, 100, 50, 255))
	want := RGBColor{200, 100, 50}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestAverageColor_Fallback(t *testing.T) {
	tests := []struct {
		name string
		pix  []uint8
	}{
		{"nil buffer", nil},
		{"empty buffer", []uint8{}},
		{"fully transparent", uniformPixels(64, 200, 100, 50, 0)},
		{"mostly transparent", uniformPixels(64, 200, 100, 50, 127)},
		{"near white", uniformPixels(64, 250, 250, 250, 255)},
		{"pure white", uniformPixels(64, 255, 255, 255, 255)},
		{"near black", uniformPixels(64, 10, 10, 10, 255)},
		{"pure black", uniformPixels(64, 0, 0, 0, 255)},
		{"partial pixel only", []uint8{200, 100, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageColor(tt.pix); got != FallbackColor {
				t.Errorf("got %+v, want fallback %+v", got, FallbackColor)
			}
		})
	}
}

func TestAverageColor_SinglePixel(t *testing.T) {
	got := AverageColor([]uint8{100, 150, 200, 255})
	if got != (RGBColor{100, 150, 200}) {
		t.Errorf("got %+v, want {100 150 200}", got)
	}
}

func TestAverageColor_Stride(t *testing.T) {
	// Only pixels 0 and 4 are inspected; the red pixels in between are skipped.
	pix := uniformPixels(8, 200, 0, 0, 255)
	copy(pix[0:4], []uint8{60, 60, 60, 255})
	copy(pix[16:20], []uint8{100, 100, 100, 255})

	got := AverageColor(pix)
	if got != (RGBColor{80, 80, 80}) {
		t.Errorf("got %+v, want {80 80 80}", got)
	}
}

func TestAverageColor_Rounding(t *testing.T) {
	pix := make([]uint8, 8*4)
	copy(pix[0:4], []uint8{100, 100, 100, 255})
	copy(pix[16:20], []uint8{101, 102, 103, 255})

	// Means are 100.5, 101 and 101.5; halves round up.
	got := AverageColor(pix)
	if got != (RGBColor{101, 101, 102}) {
		t.Errorf("got %+v, want {101 101 102}", got)
	}
}

func TestAverageColor_FilterBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		pixel []uint8
		kept  bool
	}{
		{"alpha at threshold", []uint8{100, 100, 100, 128}, true},
		{"alpha below threshold", []uint8{100, 100, 100, 127}, false},
		{"mean exactly max", []uint8{240, 240, 240, 255}, true},
		{"mean just above max", []uint8{241, 240, 240, 255}, false},
		{"mean exactly min", []uint8{15, 15, 15, 255}, true},
		{"mean just below min", []uint8{14, 15, 15, 255}, false},
		{"bright channel with moderate mean", []uint8{255, 0, 0, 255}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageColor(tt.pixel)
			want := FallbackColor
			if tt.kept {
				want = RGBColor{tt.pixel[0], tt.pixel[1], tt.pixel[2]}
			}
			if got != want {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestAverageColor_MixedFiltering(t *testing.T) {
	// Sampled pixels: transparent, white, black, and two subject pixels.
	pix := make([]uint8, 0, 20*4)
	sampled := [][]uint8{
		{50, 60, 70, 0},
		{255, 255, 255, 255},
		{0, 0, 0, 255},
		{40, 80, 120, 255},
		{60, 100, 140, 255},
	}
	for _, p := range sampled {
		pix = append(pix, p...)
		pix = append(pix, uniformPixels(3, 1, 2, 3, 255)...)
	}

	got := AverageColor(pix)
	if got != (RGBColor{50, 90, 130}) {
		t.Errorf("got %+v, want {50 90 130}", got)
	}
}
