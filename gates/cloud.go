package gates

import (
	"fmt"

	"github.com/decantra/bgverify/images"
)

// cloudStats holds the percentile spread of blurred luma inside one band.
type cloudStats struct {
	p05, p50, p95 float32
	contrast      float32
	ok            bool
}

func cloudBand(cfg Config, blurred *images.LumaField, roi images.ROI) cloudStats {
	values := roi.Values(blurred)
	if len(values) == 0 {
		return cloudStats{}
	}
	s := cloudStats{
		p05: images.Percentile(values, 5),
		p50: images.Percentile(values, 50),
		p95: images.Percentile(values, 95),
	}
	// The floor of 1 keeps a near-black band from blowing up the ratio.
	denom := s.p50
	if denom < 1 {
		denom = 1
	}
	s.contrast = (s.p95 - s.p05) / denom
	s.ok = s.contrast >= cfg.CloudContrastMin
	return s
}

// CloudVisibility is Gate A: cloud texture produces a gentle but detectable
// spread of blurred brightness in each background band. A flat or black band
// yields near-zero contrast and fails. Every band must pass independently.
func CloudVisibility(cfg Config, blurred *images.LumaField, rois ...images.ROI) Result {
	ok := true
	details := make([]string, 0, len(rois)+1)
	for _, roi := range rois {
		if roi.Area() == 0 || blurred.Empty() {
			ok = false
			details = append(details, fmt.Sprintf("%s ROI has zero area", roi.Name))
			continue
		}
		s := cloudBand(cfg, blurred, roi)
		ok = ok && s.ok
		details = append(details, fmt.Sprintf(
			"%s ROI contrast=%.4f (P05=%.2f, P50=%.2f, P95=%.2f)",
			roi.Name, s.contrast, s.p05, s.p50, s.p95))
	}
	details = append(details, fmt.Sprintf("Threshold contrast >= %v", cfg.CloudContrastMin))
	return verdict(NameCloud, ok, details...)
}
