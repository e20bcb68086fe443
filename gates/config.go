package gates

import "github.com/pkg/errors"

// BoundaryWrap selects whether the boundary walk compares the last path
// sample back against the first. The release scripts historically disagreed
// on this, so both variants are kept as named modes instead of silently
// merging them.
type BoundaryWrap int

const (
	// WrapClosed treats the walk as a closed loop and also counts the
	// last-to-first delta.
	WrapClosed BoundaryWrap = iota
	// WrapOpen only counts deltas between consecutive path samples.
	WrapOpen
)

// DarknessProfile names one of the tuned definitions of "sufficiently dark
// but not black". The scripts this tool replaces each carried their own;
// they are unified here as profiles of a single gate family.
type DarknessProfile int

const (
	// ProfileROIFloor checks raw-luma percentiles inside the background
	// bands (p50 and p05 floors). This is the release-gate default.
	ProfileROIFloor DarknessProfile = iota
	// ProfileSampledMedian deterministically samples the central band and
	// bounds the median from above (dark theme, not washed out).
	ProfileSampledMedian
	// ProfileFrameStats checks whole-frame mean/stddev/dark-pixel share,
	// the variant used for raw emulator captures.
	ProfileFrameStats
)

// Config carries every gate threshold. The zero value is not usable; start
// from DefaultConfig and override individual fields in tests. All values are
// fixed, hand-tuned heuristics: reproducing them exactly is part of the
// contract, so Validate rejects impossible ranges at startup rather than at
// evaluation time.
type Config struct {
	// CloudContrastMin is the minimum (p95-p05)/max(p50,1) spread of blurred
	// luma per background band.
	CloudContrastMin float32

	// BoundaryTransitionRatio is the relative delta between consecutive
	// boundary samples that counts as one transition.
	BoundaryTransitionRatio float32
	// BoundaryROITransitionsMin is the per-band transition floor.
	BoundaryROITransitionsMin int
	// BoundaryTotalTransitionsMin is the floor on the summed transition
	// count across both bands.
	BoundaryTotalTransitionsMin int
	// BoundaryWrap selects the closed-loop or open-path walk variant.
	BoundaryWrap BoundaryWrap

	// StarLumaMin is the raw luma at which a pixel counts as star-bright.
	StarLumaMin float32
	// StarDensityMin is the minimum star-bright fraction of a band's area.
	StarDensityMin float32

	// FloorP50Min and FloorP05Min are the raw-luma percentile floors of the
	// ROIFloor darkness profile.
	FloorP50Min float32
	FloorP05Min float32

	// MotionMinFrames is the shortest frame sequence the motion gate will
	// evaluate; shorter sequences are Unavailable, not failing frames.
	MotionMinFrames int
	// MotionDeltaMin is the per-pixel |Δluma| at which a pixel counts as
	// moving between two consecutive frames.
	MotionDeltaMin float32
	// MovingRatioMin is the floor on the pair-averaged moving fraction per
	// band.
	MovingRatioMin float32

	// ThemeCorrelationMax is the ceiling on the cosine correlation of
	// blurred-luma histograms between adjacent sampled levels.
	ThemeCorrelationMax float32

	// EdgeSeamDeltaMax is the largest tolerated luma jump between adjacent
	// pixels on the full-image border strip.
	EdgeSeamDeltaMax int

	// BlackoutMedianMin and BlackoutNearBlackPctMax define the black-screen
	// check; NearBlackSumMax is the R+G+B sum under which a pixel counts as
	// near-black.
	BlackoutMedianMin       float32
	NearBlackSumMax         int
	BlackoutNearBlackPctMax float32

	// SampledMedianMax and SampleCount configure the SampledMedian darkness
	// profile. The sampler's seed is pinned; see images.Sample.
	SampledMedianMax float32
	SampleCount      int

	// FrameMeanMin/FrameStdDevMin/DarkPixelLumaMax/DarkPixelPctMax configure
	// the FrameStats darkness profile: a frame fails when it is both dark
	// and flat, or when almost every pixel is dark.
	FrameMeanMin     float32
	FrameStdDevMin   float32
	DarkPixelLumaMax float32
	DarkPixelPctMax  float32

	// PaletteSimilarityMax is the ceiling on pairwise RGB-histogram cosine
	// similarity between level thumbnails.
	PaletteSimilarityMax float32

	// SaturationMin is the floor on mean saturation of bright pixels in the
	// center band; BrightValueMin is the HSV value at which a pixel counts
	// as bright.
	SaturationMin  float32
	BrightValueMin float32
}

// DefaultConfig returns the tuned release thresholds.
func DefaultConfig() Config {
	return Config{
		CloudContrastMin: 0.35,

		BoundaryTransitionRatio:     0.35,
		BoundaryROITransitionsMin:   4,
		BoundaryTotalTransitionsMin: 12,
		BoundaryWrap:                WrapClosed,

		StarLumaMin:    200,
		StarDensityMin: 0.0005,

		FloorP50Min: 14,
		FloorP05Min: 6,

		MotionMinFrames: 3,
		MotionDeltaMin:  2.0,
		MovingRatioMin:  0.002,

		ThemeCorrelationMax: 0.75,

		EdgeSeamDeltaMax: 0x40,

		BlackoutMedianMin:       15,
		NearBlackSumMax:         30,
		BlackoutNearBlackPctMax: 0.95,

		SampledMedianMax: 50,
		SampleCount:      5000,

		FrameMeanMin:     18,
		FrameStdDevMin:   6,
		DarkPixelLumaMax: 16,
		DarkPixelPctMax:  0.85,

		PaletteSimilarityMax: 0.92,

		SaturationMin:  0.25,
		BrightValueMin: 180,
	}
}

// Validate rejects threshold combinations that can never be satisfied or
// never trigger. A bad configuration is a programming error: it should stop
// the process at startup, not surface as a per-image verdict.
func (c Config) Validate() error {
	if c.CloudContrastMin < 0 {
		return errors.Errorf("cloud contrast minimum must be >= 0, got %v", c.CloudContrastMin)
	}
	if c.BoundaryTransitionRatio <= 0 {
		return errors.Errorf("boundary transition ratio must be > 0, got %v", c.BoundaryTransitionRatio)
	}
	if c.BoundaryROITransitionsMin < 0 || c.BoundaryTotalTransitionsMin < 0 {
		return errors.New("boundary transition floors must be >= 0")
	}
	if c.StarLumaMin < 0 || c.StarLumaMin > 255 {
		return errors.Errorf("star luma threshold must be in [0, 255], got %v", c.StarLumaMin)
	}
	if c.StarDensityMin < 0 || c.StarDensityMin > 1 {
		return errors.Errorf("star density minimum must be in [0, 1], got %v", c.StarDensityMin)
	}
	if c.FloorP50Min < 0 || c.FloorP05Min < 0 {
		return errors.New("darkness floor percentile minimums must be >= 0")
	}
	if c.MotionMinFrames < 2 {
		return errors.Errorf("motion needs at least 2 frames per comparison, got minimum %d", c.MotionMinFrames)
	}
	if c.MotionDeltaMin <= 0 {
		return errors.Errorf("motion delta minimum must be > 0, got %v", c.MotionDeltaMin)
	}
	if c.MovingRatioMin < 0 || c.MovingRatioMin > 1 {
		return errors.Errorf("moving ratio minimum must be in [0, 1], got %v", c.MovingRatioMin)
	}
	if c.ThemeCorrelationMax <= 0 || c.ThemeCorrelationMax > 1 {
		return errors.Errorf("theme correlation ceiling must be in (0, 1], got %v", c.ThemeCorrelationMax)
	}
	if c.EdgeSeamDeltaMax < 0 || c.EdgeSeamDeltaMax > 255 {
		return errors.Errorf("edge seam delta ceiling must be in [0, 255], got %d", c.EdgeSeamDeltaMax)
	}
	if c.BlackoutNearBlackPctMax < 0 || c.BlackoutNearBlackPctMax > 1 {
		return errors.Errorf("near-black percentage ceiling must be in [0, 1], got %v", c.BlackoutNearBlackPctMax)
	}
	if c.SampleCount <= 0 {
		return errors.Errorf("sample count must be > 0, got %d", c.SampleCount)
	}
	if c.DarkPixelPctMax < 0 || c.DarkPixelPctMax > 1 {
		return errors.Errorf("dark pixel percentage ceiling must be in [0, 1], got %v", c.DarkPixelPctMax)
	}
	if c.PaletteSimilarityMax <= 0 || c.PaletteSimilarityMax > 1 {
		return errors.Errorf("palette similarity ceiling must be in (0, 1], got %v", c.PaletteSimilarityMax)
	}
	if c.SaturationMin < 0 || c.SaturationMin > 1 {
		return errors.Errorf("saturation minimum must be in [0, 1], got %v", c.SaturationMin)
	}
	return nil
}
