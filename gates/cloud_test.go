package gates

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/decantra/bgverify/images"
)

func bandedField(w, h int, top, bottom float32) *images.LumaField {
	field := images.NewLumaField(w, h)
	for y := 0; y < h; y++ {
		v := top
		if y >= h/2 {
			v = bottom
		}
		for x := 0; x < w; x++ {
			field.Set(x, y, v)
		}
	}
	return field
}

func constantField(w, h int, v float32) *images.LumaField {
	field := images.NewLumaField(w, h)
	for i := range field.Pix {
		field.Pix[i] = v
	}
	return field
}

func fullROI(name string, field *images.LumaField) images.ROI {
	return images.ROI{Name: name, X0: 0, X1: field.Width, Y0: 0, Y1: field.Height}
}

func TestCloudVisibilityBandedROI(t *testing.T) {
	cfg := DefaultConfig()
	// 50/50 split between luma 10 and 200: p05=10, p50=105, p95=200,
	// contrast = 190/105 ~= 1.81.
	field := bandedField(10, 10, 10, 200)

	res := CloudVisibility(cfg, field, fullROI("Left", field))
	require.Equal(t, StatusPass, res.Status)
	require.Contains(t, res.Details[0], "contrast=1.8")
}

func TestCloudVisibilityUniformROIFails(t *testing.T) {
	cfg := DefaultConfig()
	field := constantField(10, 10, 128)

	res := CloudVisibility(cfg, field, fullROI("Left", field))
	require.Equal(t, StatusFail, res.Status)
	require.Contains(t, res.Details[0], "contrast=0.0000")
}

func TestCloudVisibilityZeroAreaROIFailsClosed(t *testing.T) {
	cfg := DefaultConfig()
	field := constantField(10, 10, 128)

	res := CloudVisibility(cfg, field, images.ROI{Name: "Left"})
	require.Equal(t, StatusFail, res.Status)
	require.Contains(t, res.Details[0], "zero area")
}

func TestCloudVisibilityRequiresEveryBand(t *testing.T) {
	cfg := DefaultConfig()
	banded := bandedField(10, 10, 10, 200)
	flat := images.ROI{Name: "Right", X0: 0, X1: 10, Y0: 0, Y1: 5} // uniform half

	res := CloudVisibility(cfg, banded, fullROI("Left", banded), flat)
	require.Equal(t, StatusFail, res.Status)
}

func TestCloudVisibilityNearBlackDenominatorFloor(t *testing.T) {
	cfg := DefaultConfig()
	// p50 below 1 must not blow up the ratio: spread 0.2 / floor 1.
	field := bandedField(10, 10, 0.1, 0.3)

	res := CloudVisibility(cfg, field, fullROI("Left", field))
	require.Equal(t, StatusFail, res.Status)
}
