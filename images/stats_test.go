package images

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPercentileInterpolation(t *testing.T) {
	values := []float32{40, 10, 30, 20}
	require.InDelta(t, 25, Percentile(values, 50), 0.001)
	require.InDelta(t, 10, Percentile(values, 0), 0.001)
	require.InDelta(t, 40, Percentile(values, 100), 0.001)
	// Input order must be preserved.
	require.Equal(t, []float32{40, 10, 30, 20}, values)
}

func TestPercentileEdgeCases(t *testing.T) {
	require.Zero(t, Percentile(nil, 50))
	require.InDelta(t, 7, Percentile([]float32{7}, 95), 0.001)

	values := make([]float32, 100)
	for i := range values {
		values[i] = float32(i)
	}
	require.InDelta(t, 94.05, Percentile(values, 95), 0.001)
}

func TestMeanStdDev(t *testing.T) {
	values := []float32{2, 4, 4, 4, 5, 5, 7, 9}
	require.InDelta(t, 5, Mean(values), 0.001)
	require.InDelta(t, 2, StdDev(values), 0.001)
	require.Zero(t, Mean(nil))
	require.Zero(t, StdDev(nil))
}

func TestCounts(t *testing.T) {
	values := []float32{0, 100, 200, 255}
	require.Equal(t, 2, CountAtLeast(values, 200))
	require.Equal(t, 2, CountBelow(values, 150))
}

func TestSampleDeterministic(t *testing.T) {
	values := make([]float32, 10000)
	for i := range values {
		values[i] = float32(i)
	}

	first := Sample(values, 500)
	second := Sample(values, 500)
	require.Len(t, first, 500)
	require.Equal(t, first, second, "pinned seed must make sampling reproducible")

	small := []float32{1, 2, 3}
	require.Equal(t, small, Sample(small, 500))
}
