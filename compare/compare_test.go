package compare

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/decantra/bgverify/images"
)

func constantField(w, h int, v float32) *images.LumaField {
	field := images.NewLumaField(w, h)
	for i := range field.Pix {
		field.Pix[i] = v
	}
	return field
}

func TestFieldsIdentical(t *testing.T) {
	field := constantField(100, 100, 90)
	m, err := Fields(field, field)
	require.NoError(t, err)
	require.Equal(t, float32(0), m.MAE)
	require.Equal(t, float32(0), m.RMSE)
	require.Equal(t, float32(0), m.HistL1)
}

func TestFieldsUniformOffset(t *testing.T) {
	// Every pixel shifted by 51 luma: MAE and RMSE both equal 0.2 of full
	// scale, and the two single-bin histograms disagree completely.
	m, err := Fields(constantField(50, 50, 40), constantField(50, 50, 91))
	require.NoError(t, err)
	require.InDelta(t, 0.2, float64(m.MAE), 1e-4)
	require.InDelta(t, 0.2, float64(m.RMSE), 1e-4)
	require.InDelta(t, 2.0/256, float64(m.HistL1), 1e-5)
}

func TestFieldsRMSEExceedsMAEOnSparseChange(t *testing.T) {
	baseline := constantField(100, 100, 50)
	current := constantField(100, 100, 50)
	current.Set(10, 10, 255)

	m, err := Fields(baseline, current)
	require.NoError(t, err)
	require.Greater(t, m.RMSE, m.MAE)
}

func TestFieldsDimensionMismatch(t *testing.T) {
	_, err := Fields(constantField(10, 10, 0), constantField(10, 20, 0))
	require.Error(t, err)
	require.Contains(t, err.Error(), "dimension mismatch")
}

func TestFieldsEmptyInput(t *testing.T) {
	_, err := Fields(images.NewLumaField(0, 0), constantField(10, 10, 0))
	require.Error(t, err)
}

func TestBordersIgnoresCenterDrift(t *testing.T) {
	baseline := constantField(100, 100, 80)
	current := constantField(100, 100, 80)
	// Drift confined to the playfield interior, outside every fringe.
	for y := 30; y < 70; y++ {
		for x := 30; x < 70; x++ {
			current.Set(x, y, 200)
		}
	}

	m, err := Borders(baseline, current)
	require.NoError(t, err)
	require.Equal(t, float32(0), m.MAE)
}

func TestBordersSeesFringeDrift(t *testing.T) {
	baseline := constantField(100, 100, 80)
	current := constantField(100, 100, 80)
	for x := 0; x < 100; x++ {
		current.Set(x, 0, 200)
	}

	m, err := Borders(baseline, current)
	require.NoError(t, err)
	require.Greater(t, m.MAE, float32(0))
}

func TestBordersDimensionMismatch(t *testing.T) {
	_, err := Borders(constantField(100, 100, 0), constantField(100, 50, 0))
	require.Error(t, err)
}
