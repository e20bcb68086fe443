// Package compare measures how far a current capture has drifted from a
// stored baseline. It supplements the gate verdicts: gates answer "is this
// frame acceptable", compare answers "how different is it from last
// release". No thresholds live here; callers interpret the metrics.
package compare

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/decantra/bgverify/images"
)

// histBins is the histogram resolution of the L1 distance metric.
const histBins = 256

// Metrics quantifies the difference between two luminance fields. MAE and
// RMSE are normalized to [0, 1] (255 = full scale); HistL1 is the mean
// absolute difference of the two sum-normalized brightness histograms.
type Metrics struct {
	MAE    float32
	RMSE   float32
	HistL1 float32
}

// Fields computes the metrics over two fields of identical dimensions.
func Fields(baseline, current *images.LumaField) (Metrics, error) {
	if baseline.Empty() || current.Empty() {
		return Metrics{}, errors.New("empty luminance field")
	}
	if baseline.Width != current.Width || baseline.Height != current.Height {
		return Metrics{}, errors.Errorf("dimension mismatch %dx%d vs %dx%d",
			baseline.Width, baseline.Height, current.Width, current.Height)
	}
	return values(baseline.Pix, current.Pix), nil
}

func values(baseline, current []float32) Metrics {
	var absSum, sqSum float64
	for i := range baseline {
		d := float64(current[i]-baseline[i]) / 255
		if d < 0 {
			d = -d
		}
		absSum += d
		sqSum += d * d
	}
	n := float64(len(baseline))

	histBase := images.NormalizeSum(images.Histogram(baseline, histBins))
	histCurr := images.NormalizeSum(images.Histogram(current, histBins))
	var l1 float32
	for i := range histBase {
		d := histCurr[i] - histBase[i]
		if d < 0 {
			d = -d
		}
		l1 += d
	}

	return Metrics{
		MAE:    float32(absSum / n),
		RMSE:   math32.Sqrt(float32(sqSum / n)),
		HistL1: l1 / histBins,
	}
}

// borderFrac is the share of each dimension treated as the frame fringe.
const borderFrac = 0.18

// Borders computes the metrics over the four border fringes (18% of each
// dimension) and averages them. Background drift concentrates in the
// fringes, where no gameplay UI masks it.
func Borders(baseline, current *images.LumaField) (Metrics, error) {
	if baseline.Empty() || current.Empty() {
		return Metrics{}, errors.New("empty luminance field")
	}
	if baseline.Width != current.Width || baseline.Height != current.Height {
		return Metrics{}, errors.Errorf("dimension mismatch %dx%d vs %dx%d",
			baseline.Width, baseline.Height, current.Width, current.Height)
	}

	w, h := baseline.Width, baseline.Height
	bx := int(float32(w) * borderFrac)
	by := int(float32(h) * borderFrac)
	regions := []images.ROI{
		{Name: "top", X0: 0, X1: w, Y0: 0, Y1: by},
		{Name: "bottom", X0: 0, X1: w, Y0: h - by, Y1: h},
		{Name: "left", X0: 0, X1: bx, Y0: 0, Y1: h},
		{Name: "right", X0: w - bx, X1: w, Y0: 0, Y1: h},
	}

	var sum Metrics
	counted := 0
	for _, roi := range regions {
		base := roi.Values(baseline)
		curr := roi.Values(current)
		if len(base) == 0 {
			continue
		}
		m := values(base, curr)
		sum.MAE += m.MAE
		sum.RMSE += m.RMSE
		sum.HistL1 += m.HistL1
		counted++
	}
	if counted == 0 {
		return Metrics{}, errors.New("border fringe has zero area")
	}
	n := float32(counted)
	return Metrics{MAE: sum.MAE / n, RMSE: sum.RMSE / n, HistL1: sum.HistL1 / n}, nil
}
