package gates

import (
	"fmt"

	"github.com/decantra/bgverify/images"
)

// StarDensity is Gate C: each background band must hold enough star-bright
// pixels. Works on the raw luminance field; the blur would erase exactly the
// point highlights this gate is counting.
func StarDensity(cfg Config, raw *images.LumaField, rois ...images.ROI) Result {
	ok := true
	details := make([]string, 0, len(rois))
	for _, roi := range rois {
		values := roi.Values(raw)
		if len(values) == 0 {
			ok = false
			details = append(details, fmt.Sprintf("%s ROI has zero area", roi.Name))
			continue
		}
		density := float32(images.CountAtLeast(values, cfg.StarLumaMin)) / float32(len(values))
		if density < cfg.StarDensityMin {
			ok = false
		}
		details = append(details, fmt.Sprintf(
			"%s ROI star_density=%.6f (threshold >= %v)", roi.Name, density, cfg.StarDensityMin))
	}
	return verdict(NameStars, ok, details...)
}
