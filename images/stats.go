package images

import (
	"math/rand"
	"sort"

	"github.com/chewxy/math32"
)

// sampleSeed pins the deterministic sampler. Varying it changes the reported
// median for the same image, so the seed is part of the contract.
const sampleSeed = 42

// Percentile computes the q-th percentile (0..100) of values using linear
// interpolation between closest ranks, matching the statistic the gate
// thresholds were tuned against. The input slice is not modified.
//
// Returns 0 for an empty slice.
func Percentile(values []float32, q float32) float32 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float32, n)
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	if n == 1 {
		return sorted[0]
	}
	rank := q / 100 * float32(n-1)
	lo := int(math32.Floor(rank))
	if lo < 0 {
		lo = 0
	}
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := rank - float32(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float32) float32 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return float32(sum / float64(len(values)))
}

// StdDev returns the population standard deviation of values.
func StdDev(values []float32) float32 {
	if len(values) == 0 {
		return 0
	}
	mean := float64(Mean(values))
	var acc float64
	for _, v := range values {
		d := float64(v) - mean
		acc += d * d
	}
	return float32(math32.Sqrt(float32(acc / float64(len(values)))))
}

// CountAtLeast returns how many values are >= threshold.
func CountAtLeast(values []float32, threshold float32) int {
	count := 0
	for _, v := range values {
		if v >= threshold {
			count++
		}
	}
	return count
}

// CountBelow returns how many values are < threshold.
func CountBelow(values []float32, threshold float32) int {
	count := 0
	for _, v := range values {
		if v < threshold {
			count++
		}
	}
	return count
}

// Sample draws up to n values without replacement using the pinned seed, so
// repeated runs over the same image report the same statistic. When the
// input already fits in n it is returned unchanged.
func Sample(values []float32, n int) []float32 {
	if n <= 0 || len(values) <= n {
		return values
	}
	rng := rand.New(rand.NewSource(sampleSeed))
	picked := make([]float32, 0, n)
	for _, idx := range rng.Perm(len(values))[:n] {
		picked = append(picked, values[idx])
	}
	return picked
}
