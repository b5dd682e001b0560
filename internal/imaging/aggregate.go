package imaging

import "math"

// Sampling parameters for AverageColor.
const (
	// SampleStride is the pixel interval between inspected pixels.
	SampleStride = 4

	// MinAlpha is the lowest alpha treated as opaque subject content.
	MinAlpha = 128

	// MaxMean and MinMean bound mean(R,G,B); pixels outside are treated as
	// near-white or near-black background.
	MaxMean = 240
	MinMean = 15
)

const bytesPerPixel = 4

// AverageColor computes the filtered mean color of non-premultiplied RGBA
// pixel data.
//
// Only every SampleStride-th pixel is inspected. Pixels with alpha below
// MinAlpha, or whose channel mean is above MaxMean or below MinMean, are
// skipped. The remaining channels are averaged and rounded. When nothing
// survives the filter, FallbackColor is returned.
//
// A trailing partial pixel is ignored, so any input is accepted.
func AverageColor(pix []uint8) RGBColor {
	var rSum, gSum, bSum, count uint64

	for i := 0; i+bytesPerPixel <= len(pix); i += SampleStride * bytesPerPixel {
		r, g, b, a := pix[i], pix[i+1], pix[i+2], pix[i+3]

		if a < MinAlpha {
			continue
		}

		mean := (float64(r) + float64(g) + float64(b)) / 3
		if mean > MaxMean || mean < MinMean {
			continue
		}

		rSum += uint64(r)
		gSum += uint64(g)
		bSum += uint64(b)
		count++
	}

	if count == 0 {
		return FallbackColor
	}

	return RGBColor{
		R: roundMean(rSum, count),
		G: roundMean(gSum, count),
		B: roundMean(bSum, count),
	}
}

func roundMean(sum, count uint64) uint8 {
	return uint8(math.Round(float64(sum) / float64(count)))
}
