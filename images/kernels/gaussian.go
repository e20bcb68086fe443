// Package kernels implements the Gaussian smoothing used by the cloud,
// boundary and theme gates. The blur separates scales: star highlights are
// point-like and get erased, cloud gradients are low-frequency and survive.
package kernels

import (
	"github.com/chewxy/math32"

	"github.com/decantra/bgverify/images"
)

// EdgeMode defines how sampling behaves outside the field bounds.
// - EdgeClamp: repeats edge samples.
// - EdgeMirror: reflects coordinates about the edge (reflect-101).
type EdgeMode int

const (
	EdgeClamp EdgeMode = iota
	EdgeMirror
)

// Options configures a Gaussian call.
type Options struct {
	// Sigma is the standard deviation of the kernel in pixels. Must be > 0.
	Sigma float32
	// Edge is the out-of-bounds sampling mode. EdgeMirror matches the
	// behavior the thresholds were tuned against.
	Edge EdgeMode
}

// MinSigma is the floor on the adaptive blur sigma. Below this the blur no
// longer erases star highlights on low-resolution captures.
const MinSigma float32 = 20

// SigmaFor returns the blur sigma for an image of the given height:
// max(20, round(0.01 * height)). It scales with resolution so high-DPI and
// low-DPI captures get comparable smoothing.
func SigmaFor(height int) float32 {
	sigma := math32.Round(0.01 * float32(height))
	if sigma < MinSigma {
		return MinSigma
	}
	return sigma
}

// Kernel builds a normalized 1-D Gaussian kernel for sigma, truncated at
// three standard deviations. The weights sum to 1, so a constant field is
// preserved exactly up to float rounding.
func Kernel(sigma float32) []float32 {
	if sigma <= 0 {
		return []float32{1}
	}
	radius := int(math32.Ceil(3 * sigma))
	k := make([]float32, 2*radius+1)
	inv := 1 / (2 * sigma * sigma)
	var sum float32
	for i := -radius; i <= radius; i++ {
		w := math32.Exp(-float32(i*i) * inv)
		k[i+radius] = w
		sum += w
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// Gaussian smooths a luminance field with a separable Gaussian at the given
// sigma, EdgeMirror sampling. The input field is never mutated.
func Gaussian(field *images.LumaField, sigma float32) *images.LumaField {
	return GaussianWith(field, Options{Sigma: sigma, Edge: EdgeMirror})
}
