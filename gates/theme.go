package gates

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/decantra/bgverify/images"
)

// ErrMissingLevels marks the configuration error raised when the required
// theme-sampling screenshots are not all present. Theme separation cannot be
// partially evaluated, so this never degrades to a silent pass.
var ErrMissingLevels = errors.New("missing required level screenshots")

// ThemeLevels names the three sampling points spanning the theme
// progression: the first level, a mid-game level and a late-game level.
type ThemeLevels struct {
	Early int
	Mid   int
	Late  int
}

// Canonical sampling points. Release captures have carried both the 10/20
// and the 12/24 naming over time; either alias satisfies the slot.
var (
	earlyLevels = []int{1}
	midLevels   = []int{10, 12}
	lateLevels  = []int{20, 24}
)

// SelectThemeLevels picks the required level triple out of the available
// level numbers. Returns ErrMissingLevels (wrapped with the unfilled slots)
// when any slot has no candidate.
func SelectThemeLevels(available []int) (ThemeLevels, error) {
	have := make(map[int]bool, len(available))
	for _, lvl := range available {
		have[lvl] = true
	}
	pick := func(candidates []int) (int, bool) {
		for _, lvl := range candidates {
			if have[lvl] {
				return lvl, true
			}
		}
		return 0, false
	}

	var lv ThemeLevels
	var missing []string
	var ok bool
	if lv.Early, ok = pick(earlyLevels); !ok {
		missing = append(missing, describeSlot(earlyLevels))
	}
	if lv.Mid, ok = pick(midLevels); !ok {
		missing = append(missing, describeSlot(midLevels))
	}
	if lv.Late, ok = pick(lateLevels); !ok {
		missing = append(missing, describeSlot(lateLevels))
	}
	if len(missing) > 0 {
		return ThemeLevels{}, errors.Wrapf(ErrMissingLevels, "%s", strings.Join(missing, ", "))
	}
	return lv, nil
}

func describeSlot(candidates []int) string {
	sorted := append([]int(nil), candidates...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, lvl := range sorted {
		parts[i] = fmt.Sprintf("%d", lvl)
	}
	return "level " + strings.Join(parts, " or ")
}

// ThemeHistogram reduces a blurred luminance field to its L2-normalized
// 64-bin histogram. Two of these correlate via dot product, which for
// non-negative unit vectors is cosine similarity in [0, 1].
func ThemeHistogram(blurred *images.LumaField) []float32 {
	return images.NormalizeL2(images.Histogram(blurred.Pix, images.HistogramBins))
}

// ThemeSeparation is Gate F: adjacent sampled levels must be visually
// distinct, i.e. their blurred-luma histograms must not correlate above the
// ceiling. early/mid/late are the ThemeHistogram vectors of the selected
// level screenshots.
func ThemeSeparation(cfg Config, lv ThemeLevels, early, mid, late []float32) Result {
	corrEarlyMid := images.Correlate(early, mid)
	corrMidLate := images.Correlate(mid, late)
	ok := corrEarlyMid <= cfg.ThemeCorrelationMax && corrMidLate <= cfg.ThemeCorrelationMax
	return verdict(NameTheme, ok,
		fmt.Sprintf("Level %d vs %d correlation=%.4f (threshold <= %v)",
			lv.Early, lv.Mid, corrEarlyMid, cfg.ThemeCorrelationMax),
		fmt.Sprintf("Level %d vs %d correlation=%.4f (threshold <= %v)",
			lv.Mid, lv.Late, corrMidLate, cfg.ThemeCorrelationMax),
	)
}
