package images

import "github.com/chewxy/math32"

// ROI is a named rectangular sample region resolved against a concrete image
// size. x1/y1 are exclusive, like image.Rectangle. A degenerate (zero-area)
// ROI is valid; gates that receive one fail closed instead of panicking.
type ROI struct {
	Name string
	X0   int
	X1   int
	Y0   int
	Y1   int
}

// W returns the ROI width in pixels, never negative.
func (r ROI) W() int {
	if r.X1 <= r.X0 {
		return 0
	}
	return r.X1 - r.X0
}

// H returns the ROI height in pixels, never negative.
func (r ROI) H() int {
	if r.Y1 <= r.Y0 {
		return 0
	}
	return r.Y1 - r.Y0
}

// Area returns the pixel area of the ROI.
func (r ROI) Area() int {
	return r.W() * r.H()
}

// FractionalBounds describes an ROI by normalized [0, 1] fractions of the
// image dimensions, so the same region definition works across device
// resolutions.
type FractionalBounds struct {
	Name string
	X0   float32
	X1   float32
	Y0   float32
	Y1   float32
}

// Background band definitions. The vertical band avoids the top HUD and the
// bottom control strip; the left/right bands avoid the playfield.
var (
	// LeftBand covers columns [0, 12%] of width, rows [25%, 75%] of height.
	LeftBand = FractionalBounds{Name: "Left", X0: 0, X1: 0.12, Y0: 0.25, Y1: 0.75}
	// RightBand covers columns [88%, 100%] of width, rows [25%, 75%] of height.
	RightBand = FractionalBounds{Name: "Right", X0: 0.88, X1: 1, Y0: 0.25, Y1: 0.75}
	// CenterBand covers the central playfield, used by the saturation check.
	CenterBand = FractionalBounds{Name: "Center", X0: 0.1, X1: 0.9, Y0: 0.25, Y1: 0.75}
	// SampleBand is the full-width background band sampled by the
	// sampled-median darkness profile.
	SampleBand = FractionalBounds{Name: "Sample", X0: 0, X1: 1, Y0: 0.20, Y1: 0.80}
)

// ResolveROI maps fractional bounds onto a concrete image size, rounding to
// nearest and clamping each coordinate to [0, dimension]. It never fails:
// a degenerate result is returned as-is for the gate layer to detect.
func ResolveROI(width, height int, fb FractionalBounds) ROI {
	return ROI{
		Name: fb.Name,
		X0:   clampRound(fb.X0, width),
		X1:   clampRound(fb.X1, width),
		Y0:   clampRound(fb.Y0, height),
		Y1:   clampRound(fb.Y1, height),
	}
}

// BackgroundROIs resolves the canonical left/right background bands for an
// image. Every per-image gate samples exactly these two regions.
func BackgroundROIs(width, height int) (ROI, ROI) {
	return ResolveROI(width, height, LeftBand), ResolveROI(width, height, RightBand)
}

func clampRound(frac float32, dim int) int {
	v := int(math32.Round(frac * float32(dim)))
	if v < 0 {
		return 0
	}
	if v > dim {
		return dim
	}
	return v
}

// Values copies the samples of field inside the ROI into a flat slice,
// row-major. Returns nil for a degenerate ROI or an empty field.
func (r ROI) Values(field *LumaField) []float32 {
	if field.Empty() || r.Area() == 0 {
		return nil
	}
	out := make([]float32, 0, r.Area())
	for y := r.Y0; y < r.Y1; y++ {
		row := field.Pix[y*field.Width : y*field.Width+field.Width]
		out = append(out, row[r.X0:r.X1]...)
	}
	return out
}
