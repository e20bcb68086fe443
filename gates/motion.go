package gates

import (
	"fmt"
	"strings"

	"github.com/decantra/bgverify/images"
)

// ROIMotion aggregates the moving-pixel ratios of one band across every
// adjacent frame pair.
type ROIMotion struct {
	// Name of the band.
	Name string
	// PairRatios holds one moving-pixel fraction per adjacent frame pair,
	// in capture order.
	PairRatios []float32
	// Average is the arithmetic mean of PairRatios.
	Average float32
	// Passed reports whether Average cleared the configured floor.
	Passed bool
}

// MotionMetrics is the full Gate E measurement: one ROIMotion per band.
type MotionMetrics struct {
	ROIs []ROIMotion
}

// ComputeMotionMetrics measures how much of each band is actually moving
// between consecutive frames. frames are raw luminance fields of identical
// dimensions, in capture order.
func ComputeMotionMetrics(cfg Config, frames []*images.LumaField, rois ...images.ROI) MotionMetrics {
	metrics := MotionMetrics{ROIs: make([]ROIMotion, len(rois))}
	for i, roi := range rois {
		metrics.ROIs[i] = ROIMotion{Name: roi.Name}
	}
	for idx := 0; idx+1 < len(frames); idx++ {
		diff := images.AbsDiff(frames[idx], frames[idx+1])
		for i, roi := range rois {
			values := roi.Values(diff)
			ratio := float32(0)
			if len(values) > 0 {
				ratio = float32(images.CountAtLeast(values, cfg.MotionDeltaMin)) / float32(len(values))
			}
			metrics.ROIs[i].PairRatios = append(metrics.ROIs[i].PairRatios, ratio)
		}
	}
	for i := range metrics.ROIs {
		m := &metrics.ROIs[i]
		m.Average = images.Mean(m.PairRatios)
		m.Passed = m.Average >= cfg.MovingRatioMin
	}
	return metrics
}

// Motion is Gate E: the animated background layer must actually advance
// between captures. Fewer frames than MotionMinFrames makes the verdict
// Unavailable with an explicit diagnostic; the orchestrator decides whether
// that forces overall failure.
func Motion(cfg Config, frames []*images.LumaField, rois ...images.ROI) (Result, MotionMetrics) {
	if len(frames) < cfg.MotionMinFrames {
		return unavailable(NameMotion,
			fmt.Sprintf("Motion frames missing or insufficient (have %d, need >= %d).",
				len(frames), cfg.MotionMinFrames),
			"Capture motion frames and rerun.",
		), MotionMetrics{}
	}
	metrics := ComputeMotionMetrics(cfg, frames, rois...)
	ok := true
	details := make([]string, 0, 2*len(metrics.ROIs))
	for _, m := range metrics.ROIs {
		ok = ok && m.Passed
		details = append(details, fmt.Sprintf(
			"%s ROI moving_ratio_avg=%.6f (threshold >= %v)", m.Name, m.Average, cfg.MovingRatioMin))
	}
	for _, m := range metrics.ROIs {
		details = append(details, fmt.Sprintf(
			"%s ROI per-pair ratios=%s", m.Name, formatRatios(m.PairRatios)))
	}
	return verdict(NameMotion, ok, details...), metrics
}

func formatRatios(ratios []float32) string {
	parts := make([]string, len(ratios))
	for i, r := range ratios {
		parts[i] = fmt.Sprintf("%.6f", r)
	}
	return strings.Join(parts, ", ")
}
