package gates

import (
	"fmt"
	"sort"

	"github.com/nfnt/resize"

	"github.com/decantra/bgverify/images"
)

const (
	paletteThumbSide   = 64
	paletteChannelBins = 16
)

// PaletteFeature reduces a screenshot to a compact color signature: the
// image is resampled to a 64x64 Lanczos thumbnail, then 16-bin histograms of
// each RGB channel are normalized to sum 1 and concatenated. Unlike the
// luma-only theme histogram this keeps hue information, so two themes with
// the same brightness curve but different palettes still separate.
func PaletteFeature(buf *images.PixelBuffer) []float32 {
	if buf.Empty() {
		return make([]float32, 3*paletteChannelBins)
	}
	thumb := resize.Resize(paletteThumbSide, paletteThumbSide, buf.ToImage(), resize.Lanczos3)
	small := images.FromImage(thumb)

	channels := [3][]float32{}
	for c := 0; c < 3; c++ {
		channels[c] = make([]float32, 0, paletteThumbSide*paletteThumbSide)
	}
	for i := 0; i < len(small.Pix); i += 3 {
		channels[0] = append(channels[0], float32(small.Pix[i]))
		channels[1] = append(channels[1], float32(small.Pix[i+1]))
		channels[2] = append(channels[2], float32(small.Pix[i+2]))
	}

	feature := make([]float32, 0, 3*paletteChannelBins)
	for c := 0; c < 3; c++ {
		hist := images.NormalizeSum(images.Histogram(channels[c], paletteChannelBins))
		feature = append(feature, hist...)
	}
	return feature
}

// PaletteSeparation compares every pair of level color signatures and fails
// when any pair is too similar. features maps a level number to its
// PaletteFeature vector; fewer than two features makes the gate Unavailable.
func PaletteSeparation(cfg Config, features map[int][]float32) Result {
	if len(features) < 2 {
		return unavailable(NamePalette,
			fmt.Sprintf("Need >= 2 level screenshots for palette comparison, have %d", len(features)))
	}
	levels := make([]int, 0, len(features))
	for lvl := range features {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)

	ok := true
	details := make([]string, 0, len(levels)*(len(levels)-1)/2)
	for i := 0; i < len(levels); i++ {
		for j := i + 1; j < len(levels); j++ {
			similarity := images.CosineSimilarity(features[levels[i]], features[levels[j]])
			pairOK := similarity < cfg.PaletteSimilarityMax
			ok = ok && pairOK
			details = append(details, fmt.Sprintf(
				"Level %d vs %d similarity=%.4f (threshold < %v)",
				levels[i], levels[j], similarity, cfg.PaletteSimilarityMax))
		}
	}
	return verdict(NamePalette, ok, details...)
}
