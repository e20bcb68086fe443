package gates

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/decantra/bgverify/images"
)

func TestNonBlackFloorLitBandPasses(t *testing.T) {
	cfg := DefaultConfig()
	field := constantField(100, 100, 40)

	res := NonBlackFloor(cfg, field, fullROI("Left", field))
	require.Equal(t, StatusPass, res.Status)
	require.Contains(t, res.Details[0], "P50=40.00")
}

func TestNonBlackFloorBlackBandFails(t *testing.T) {
	cfg := DefaultConfig()
	field := images.NewLumaField(100, 100)

	res := NonBlackFloor(cfg, field, fullROI("Left", field))
	require.Equal(t, StatusFail, res.Status)
}

func TestNonBlackFloorMedianAloneNotEnough(t *testing.T) {
	cfg := DefaultConfig()
	// Median clears the bar but the darkest twentieth of the band is pure
	// black, which drags P05 under its floor.
	field := images.NewLumaField(100, 100)
	for y := 0; y < field.Height; y++ {
		for x := 0; x < field.Width; x++ {
			if y >= 10 {
				field.Set(x, y, 40)
			}
		}
	}

	res := NonBlackFloor(cfg, field, fullROI("Left", field))
	require.Equal(t, StatusFail, res.Status)
}

func TestNonBlackFloorZeroAreaFailsClosed(t *testing.T) {
	cfg := DefaultConfig()
	field := constantField(10, 10, 40)

	res := NonBlackFloor(cfg, field, images.ROI{Name: "Left"})
	require.Equal(t, StatusFail, res.Status)
	require.Contains(t, res.Details[0], "zero area")
}

func TestDarknessSampledMedian(t *testing.T) {
	cfg := DefaultConfig()

	dark := constantField(200, 200, 30)
	res := Darkness(cfg, ProfileSampledMedian, dark)
	require.Equal(t, StatusPass, res.Status)
	require.Equal(t, "Black base (sampled median)", res.Name)

	bright := constantField(200, 200, 120)
	res = Darkness(cfg, ProfileSampledMedian, bright)
	require.Equal(t, StatusFail, res.Status)
}

func TestDarknessFrameStatsDarkAndFlatFails(t *testing.T) {
	cfg := DefaultConfig()
	field := constantField(100, 100, 5)

	res := Darkness(cfg, ProfileFrameStats, field)
	require.Equal(t, StatusFail, res.Status)
	require.Contains(t, res.Details[1], "Too dark and flat")
}

func TestDarknessFrameStatsMostlyDarkFails(t *testing.T) {
	cfg := DefaultConfig()
	// Bright tenth keeps mean and stddev off the dark-and-flat trigger, but
	// nine tenths of the frame sit below the dark-pixel cutoff.
	field := images.NewLumaField(100, 100)
	for y := 0; y < field.Height; y++ {
		for x := 0; x < field.Width; x++ {
			if y < 10 {
				field.Set(x, y, 200)
			} else {
				field.Set(x, y, 5)
			}
		}
	}

	res := Darkness(cfg, ProfileFrameStats, field)
	require.Equal(t, StatusFail, res.Status)
	require.Contains(t, res.Details[1], "Too many dark pixels")
}

func TestDarknessFrameStatsLitFramePasses(t *testing.T) {
	cfg := DefaultConfig()
	res := Darkness(cfg, ProfileFrameStats, bandedField(100, 100, 40, 120))
	require.Equal(t, StatusPass, res.Status)
}

func TestDarknessROIFloorDelegates(t *testing.T) {
	cfg := DefaultConfig()
	field := constantField(50, 50, 40)
	res := Darkness(cfg, ProfileROIFloor, field, fullROI("Left", field))
	require.Equal(t, NameFloor, res.Name)
	require.Equal(t, StatusPass, res.Status)
}
