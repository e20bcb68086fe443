package images

import "github.com/chewxy/math32"

// HistogramBins is the bin count used by the theme-separation histogram.
const HistogramBins = 64

// Histogram builds a histogram of values over the closed range [0, 255] with
// the given number of bins. Values at exactly 255 land in the last bin,
// values outside the range are clamped into the edge bins.
func Histogram(values []float32, bins int) []float32 {
	if bins <= 0 {
		return nil
	}
	hist := make([]float32, bins)
	scale := float32(bins) / 255.0
	for _, v := range values {
		idx := int(v * scale)
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1
		}
		hist[idx]++
	}
	return hist
}

// NormalizeL2 scales hist to unit Euclidean length in place and returns it.
// An all-zero histogram is returned unchanged.
func NormalizeL2(hist []float32) []float32 {
	var acc float32
	for _, v := range hist {
		acc += v * v
	}
	if acc == 0 {
		return hist
	}
	norm := math32.Sqrt(acc)
	for i := range hist {
		hist[i] /= norm
	}
	return hist
}

// NormalizeSum scales hist so its components sum to 1, in place, and returns
// it. An all-zero histogram is returned unchanged.
func NormalizeSum(hist []float32) []float32 {
	var sum float32
	for _, v := range hist {
		sum += v
	}
	if sum == 0 {
		return hist
	}
	for i := range hist {
		hist[i] /= sum
	}
	return hist
}

// Correlate returns the dot product of two histograms. For unit-length
// non-negative histograms this is their cosine similarity in [0, 1]:
// 1 means identical distributions, 0 means disjoint support.
func Correlate(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot float32
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	return dot
}

// CosineSimilarity returns the normalized dot product of two feature
// vectors, or 1 when either vector has zero magnitude (indistinguishable).
func CosineSimilarity(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float32
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		na += v * v
	}
	for _, v := range b {
		nb += v * v
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return dot / (math32.Sqrt(na) * math32.Sqrt(nb))
}
