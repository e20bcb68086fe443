package gates

import (
	"fmt"

	"github.com/decantra/bgverify/images"
)

// NonBlackFloor is Gate D: raw-luma percentile floors per background band.
// It guards against a frame whose background layer dropped out entirely
// while still tolerating a deliberately dark theme.
func NonBlackFloor(cfg Config, raw *images.LumaField, rois ...images.ROI) Result {
	ok := true
	details := make([]string, 0, len(rois))
	for _, roi := range rois {
		values := roi.Values(raw)
		if len(values) == 0 {
			ok = false
			details = append(details, fmt.Sprintf("%s ROI has zero area", roi.Name))
			continue
		}
		p50 := images.Percentile(values, 50)
		p05 := images.Percentile(values, 5)
		if p50 < cfg.FloorP50Min || p05 < cfg.FloorP05Min {
			ok = false
		}
		details = append(details, fmt.Sprintf(
			"%s ROI P50=%.2f, P05=%.2f (thresholds >= %v / %v)",
			roi.Name, p50, p05, cfg.FloorP50Min, cfg.FloorP05Min))
	}
	return verdict(NameFloor, ok, details...)
}

// Darkness evaluates one profile of the black-base gate family over a raw
// luminance field. The profiles encode the historically distinct "dark but
// not black" definitions under a single parameterized gate.
func Darkness(cfg Config, profile DarknessProfile, raw *images.LumaField, rois ...images.ROI) Result {
	switch profile {
	case ProfileROIFloor:
		return NonBlackFloor(cfg, raw, rois...)
	case ProfileSampledMedian:
		return sampledMedian(cfg, raw)
	case ProfileFrameStats:
		return frameStats(cfg, raw)
	}
	return fail("Black base", fmt.Sprintf("unknown darkness profile %d", profile))
}

// sampledMedian bounds the median of a deterministic pixel sample of the
// central background band from above. The sample keeps large captures cheap;
// the pinned seed keeps the reported median reproducible.
func sampledMedian(cfg Config, raw *images.LumaField) Result {
	const name = "Black base (sampled median)"
	if raw.Empty() {
		return fail(name, "image has no pixel data")
	}
	band := images.ResolveROI(raw.Width, raw.Height, images.SampleBand)
	values := band.Values(raw)
	if len(values) == 0 {
		return fail(name, "sample band has zero area")
	}
	sample := images.Sample(values, cfg.SampleCount)
	median := images.Percentile(sample, 50)
	return verdict(name, median <= cfg.SampledMedianMax, fmt.Sprintf(
		"Median luma=%.1f over %d samples (threshold <= %v)",
		median, len(sample), cfg.SampledMedianMax))
}

// frameStats fails a frame that is both dark and flat, or almost entirely
// dark, over the whole raw field. Used on raw emulator captures where the
// band geometry is not trustworthy.
func frameStats(cfg Config, raw *images.LumaField) Result {
	const name = "Black base (frame stats)"
	if raw.Empty() {
		return fail(name, "image has no pixel data")
	}
	mean := images.Mean(raw.Pix)
	stddev := images.StdDev(raw.Pix)
	darkPct := float32(images.CountBelow(raw.Pix, cfg.DarkPixelLumaMax)) / float32(len(raw.Pix))

	darkAndFlat := mean < cfg.FrameMeanMin && stddev < cfg.FrameStdDevMin
	mostlyDark := darkPct > cfg.DarkPixelPctMax
	details := []string{
		fmt.Sprintf("Mean=%.2f, StdDev=%.2f, DarkPct=%.1f%%", mean, stddev, darkPct*100),
	}
	if darkAndFlat {
		details = append(details, fmt.Sprintf(
			"Too dark and flat (mean < %v and stddev < %v)", cfg.FrameMeanMin, cfg.FrameStdDevMin))
	}
	if mostlyDark {
		details = append(details, fmt.Sprintf(
			"Too many dark pixels (> %.0f%%)", cfg.DarkPixelPctMax*100))
	}
	return verdict(name, !darkAndFlat && !mostlyDark, details...)
}
