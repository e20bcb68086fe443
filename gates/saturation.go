package gates

import (
	"fmt"

	"github.com/decantra/bgverify/images"
)

// Saturation checks that the bright content of the central playfield is
// vividly colored rather than washed out. Bright pixels (HSV value above the
// configured floor) inside the center band must average at least the minimum
// saturation. A frame with no bright pixels at all fails closed.
func Saturation(cfg Config, buf *images.PixelBuffer) Result {
	if buf.Empty() {
		return fail(NameSaturation, "image has no pixel data")
	}
	roi := images.ResolveROI(buf.Width, buf.Height, images.CenterBand)
	if roi.Area() == 0 {
		return fail(NameSaturation, "Center ROI has zero area")
	}

	var sum float64
	count := 0
	for y := roi.Y0; y < roi.Y1; y++ {
		for x := roi.X0; x < roi.X1; x++ {
			r, g, b := buf.RGB(x, y)
			s, v := saturationValue(r, g, b)
			if v >= cfg.BrightValueMin {
				sum += float64(s)
				count++
			}
		}
	}
	if count == 0 {
		return fail(NameSaturation,
			fmt.Sprintf("No bright pixels (V >= %v) found in center ROI", cfg.BrightValueMin))
	}
	mean := float32(sum / float64(count))
	return verdict(NameSaturation, mean >= cfg.SaturationMin, fmt.Sprintf(
		"Average saturation=%.4f over %d bright pixels (threshold >= %v)",
		mean, count, cfg.SaturationMin))
}

// saturationValue returns the HSV saturation in [0, 1] and value in [0, 255]
// of one RGB pixel.
func saturationValue(r, g, b uint8) (float32, float32) {
	maxC := r
	if g > maxC {
		maxC = g
	}
	if b > maxC {
		maxC = b
	}
	minC := r
	if g < minC {
		minC = g
	}
	if b < minC {
		minC = b
	}
	if maxC == 0 {
		return 0, 0
	}
	return float32(maxC-minC) / float32(maxC), float32(maxC)
}
