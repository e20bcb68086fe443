package gates

import (
	"fmt"

	"github.com/decantra/bgverify/images"
)

// boundaryInset is how far inside the ROI border the walk runs, keeping the
// 5x5 sample window clear of the ROI edge.
const boundaryInset = 3

// boundaryWindow is the side of the denoising mean window around each path
// point.
const boundaryWindow = 5

// windowMean averages a window x window patch of the field centered at
// (x, y), clamped to the ROI. Falls back to the single sample when the
// clamped patch collapses.
func windowMean(field *images.LumaField, roi images.ROI, x, y, window int) float32 {
	half := window / 2
	x0, x1 := x-half, x+half
	y0, y1 := y-half, y+half
	if x0 < roi.X0 {
		x0 = roi.X0
	}
	if x1 > roi.X1-1 {
		x1 = roi.X1 - 1
	}
	if y0 < roi.Y0 {
		y0 = roi.Y0
	}
	if y1 > roi.Y1-1 {
		y1 = roi.Y1 - 1
	}
	if x1 < x0 || y1 < y0 {
		return field.At(x, y)
	}
	var sum float32
	for yy := y0; yy <= y1; yy++ {
		for xx := x0; xx <= x1; xx++ {
			sum += field.At(xx, yy)
		}
	}
	return sum / float32((x1-x0+1)*(y1-y0+1))
}

// boundaryPath enumerates the clockwise rectangular walk: top edge left to
// right, right edge top to bottom, bottom edge right to left, left edge
// bottom to top. Returns nil when the inset rectangle collapses.
func boundaryPath(roi images.ROI) [][2]int {
	left := roi.X0 + boundaryInset
	right := roi.X1 - 1 - boundaryInset
	top := roi.Y0 + boundaryInset
	bottom := roi.Y1 - 1 - boundaryInset
	if right <= left || bottom <= top {
		return nil
	}
	path := make([][2]int, 0, 2*(right-left)+2*(bottom-top))
	for x := left; x <= right; x++ {
		path = append(path, [2]int{x, top})
	}
	for y := top + 1; y <= bottom; y++ {
		path = append(path, [2]int{right, y})
	}
	for x := right - 1; x >= left; x-- {
		path = append(path, [2]int{x, bottom})
	}
	for y := bottom - 1; y >= top+1; y-- {
		path = append(path, [2]int{left, y})
	}
	return path
}

func relativeDelta(prev, curr float32) float32 {
	d := curr - prev
	if d < 0 {
		d = -d
	}
	denom := prev
	if denom < 1 {
		denom = 1
	}
	return d / denom
}

// transitionCount walks the boundary path of one ROI and counts relative
// brightness jumps at or above the configured ratio. With WrapClosed the
// last sample is also compared back against the first.
func transitionCount(cfg Config, blurred *images.LumaField, roi images.ROI) (int, []float32) {
	path := boundaryPath(roi)
	if len(path) < 2 {
		return 0, nil
	}
	values := make([]float32, len(path))
	for i, pt := range path {
		values[i] = windowMean(blurred, roi, pt[0], pt[1], boundaryWindow)
	}
	transitions := 0
	for i := 1; i < len(values); i++ {
		if relativeDelta(values[i-1], values[i]) >= cfg.BoundaryTransitionRatio {
			transitions++
		}
	}
	if cfg.BoundaryWrap == WrapClosed {
		if relativeDelta(values[len(values)-1], values[0]) >= cfg.BoundaryTransitionRatio {
			transitions++
		}
	}
	return transitions, values
}

// BoundaryTransitions is Gate B: organic cloud structure produces many
// irregular brightness transitions along a closed walk just inside each
// band, while a flat gradient or a single hard seam produces few. Each band
// needs its own minimum and the two bands together need a summed minimum.
func BoundaryTransitions(cfg Config, blurred *images.LumaField, rois ...images.ROI) Result {
	ok := true
	total := 0
	details := make([]string, 0, len(rois)+1)
	for _, roi := range rois {
		if roi.Area() == 0 || blurred.Empty() {
			ok = false
			details = append(details, fmt.Sprintf("%s ROI has zero area", roi.Name))
			continue
		}
		transitions, values := transitionCount(cfg, blurred, roi)
		if values == nil {
			ok = false
			details = append(details, fmt.Sprintf("%s ROI too small for boundary walk", roi.Name))
			continue
		}
		total += transitions
		if transitions < cfg.BoundaryROITransitionsMin {
			ok = false
		}
		details = append(details, fmt.Sprintf(
			"%s ROI transitions=%d (threshold >= %d)",
			roi.Name, transitions, cfg.BoundaryROITransitionsMin))
	}
	if total < cfg.BoundaryTotalTransitionsMin {
		ok = false
	}
	details = append(details, fmt.Sprintf(
		"Total transitions=%d (threshold >= %d)", total, cfg.BoundaryTotalTransitionsMin))
	return verdict(NameBoundary, ok, details...)
}
