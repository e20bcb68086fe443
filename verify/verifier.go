// Package verify composes the individual gates into one deterministic
// pass/fail decision over a set of captured frames. The package is
// computation-only: it consumes decoded pixel buffers and produces a report;
// file discovery and decoding live in util.
package verify

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/decantra/bgverify/gates"
	"github.com/decantra/bgverify/images"
	"github.com/decantra/bgverify/images/kernels"
)

// Target is one screenshot to run the per-image gates against.
type Target struct {
	// Name labels the image in the report, typically the file basename.
	Name string
	// Buffer is the decoded pixel data. Never mutated.
	Buffer *images.PixelBuffer
}

// Request describes one verification invocation.
type Request struct {
	// Targets are the screenshots the per-image gates (A-D, plus the
	// extended checks) run against.
	Targets []Target
	// MotionFrames is the ordered animation capture sequence for Gate E.
	MotionFrames []*images.PixelBuffer
	// Levels maps level numbers to their screenshots for the theme and
	// palette comparisons.
	Levels map[int]*images.PixelBuffer
	// RequireMotion makes a missing or short frame sequence an unresolved
	// condition that forces overall failure. When false, motion is still
	// evaluated if enough frames are present, but its absence is tolerated.
	RequireMotion bool
	// RequireTheme does the same for the level triple of Gate F.
	RequireTheme bool
	// Extended additionally runs the edge-seam, black-screen, saturation
	// and palette checks recovered from the narrower sibling tools.
	Extended bool
}

// Verifier runs the full gate sequence with one fixed threshold
// configuration. It holds no mutable state; one Verifier may serve
// concurrent Run calls.
type Verifier struct {
	cfg gates.Config
	log zerolog.Logger
}

// New validates the configuration and builds a Verifier. An impossible
// threshold range is a programming error and is rejected here, at startup,
// rather than surfacing per image.
func New(cfg gates.Config, logger zerolog.Logger) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid gate configuration")
	}
	return &Verifier{cfg: cfg, log: logger}, nil
}

// Config returns the threshold configuration the verifier runs with.
func (v *Verifier) Config() gates.Config {
	return v.cfg
}

// Run evaluates every gate over the request and assembles the report.
// Gates A-D (and the extended per-image checks) run per target; motion,
// theme and palette run once globally. The overall verdict is the logical
// AND of every evaluated gate, and any required-but-missing input is
// recorded as an unresolved condition that also forces failure.
func (v *Verifier) Run(req Request) *Report {
	report := &Report{}

	for _, target := range req.Targets {
		report.Images = append(report.Images, v.verifyImage(target, req.Extended))
	}

	v.runMotion(req, report)
	v.runTheme(req, report)
	if req.Extended {
		v.runPalette(req, report)
	}

	report.finalize()
	v.log.Info().
		Bool("passed", report.Passed).
		Int("images", len(report.Images)).
		Strs("unresolved", report.Unresolved).
		Msg("verification complete")
	return report
}

// verifyImage runs the per-image gate sequence over one target.
func (v *Verifier) verifyImage(target Target, extended bool) ImageReport {
	buf := target.Buffer
	raw := images.Luminance(buf)
	sigma := kernels.SigmaFor(buf.Height)
	blurred := kernels.Gaussian(raw, sigma)
	left, right := images.BackgroundROIs(buf.Width, buf.Height)

	results := []gates.Result{
		gates.CloudVisibility(v.cfg, blurred, left, right),
		gates.BoundaryTransitions(v.cfg, blurred, left, right),
		gates.StarDensity(v.cfg, raw, left, right),
		gates.NonBlackFloor(v.cfg, raw, left, right),
	}
	if extended {
		results = append(results,
			gates.EdgeSeam(v.cfg, buf),
			gates.Blackout(v.cfg, buf, raw),
			gates.Darkness(v.cfg, gates.ProfileSampledMedian, raw),
			gates.Saturation(v.cfg, buf),
		)
	}

	for _, res := range results {
		v.log.Debug().
			Str("image", target.Name).
			Str("gate", res.Name).
			Str("status", res.Status.String()).
			Msg("gate evaluated")
	}
	return ImageReport{Name: target.Name, Results: results}
}

func (v *Verifier) runMotion(req Request, report *Report) {
	haveFrames := len(req.MotionFrames) >= v.cfg.MotionMinFrames
	if !req.RequireMotion && !haveFrames {
		return
	}

	frames := make([]*images.LumaField, len(req.MotionFrames))
	for i, frame := range req.MotionFrames {
		frames[i] = images.Luminance(frame)
	}
	var left, right images.ROI
	if len(req.MotionFrames) > 0 {
		first := req.MotionFrames[0]
		left, right = images.BackgroundROIs(first.Width, first.Height)
	}

	result, metrics := gates.Motion(v.cfg, frames, left, right)
	report.Motion = &result
	report.MotionMetrics = metrics
	if result.Status == gates.StatusUnavailable && req.RequireMotion {
		report.Unresolved = append(report.Unresolved,
			"motion capture required but fewer than the minimum frames were provided")
	}
}

func (v *Verifier) runTheme(req Request, report *Report) {
	if !req.RequireTheme && len(req.Levels) == 0 {
		return
	}

	available := make([]int, 0, len(req.Levels))
	for lvl := range req.Levels {
		available = append(available, lvl)
	}
	lv, err := gates.SelectThemeLevels(available)
	if err != nil {
		result := gates.Result{
			Name:    gates.NameTheme,
			Status:  gates.StatusUnavailable,
			Details: []string{err.Error()},
		}
		report.Theme = &result
		if req.RequireTheme {
			report.Unresolved = append(report.Unresolved, err.Error())
		}
		return
	}

	hist := func(lvl int) []float32 {
		buf := req.Levels[lvl]
		raw := images.Luminance(buf)
		blurred := kernels.Gaussian(raw, kernels.SigmaFor(buf.Height))
		return gates.ThemeHistogram(blurred)
	}
	result := gates.ThemeSeparation(v.cfg, lv, hist(lv.Early), hist(lv.Mid), hist(lv.Late))
	report.Theme = &result
}

func (v *Verifier) runPalette(req Request, report *Report) {
	if len(req.Levels) == 0 {
		return
	}
	features := make(map[int][]float32, len(req.Levels))
	for lvl, buf := range req.Levels {
		features[lvl] = gates.PaletteFeature(buf)
	}
	result := gates.PaletteSeparation(v.cfg, features)
	report.Palette = &result
}
