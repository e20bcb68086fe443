package gates

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/decantra/bgverify/images"
)

func TestBlackoutLitFramePasses(t *testing.T) {
	cfg := DefaultConfig()
	buf := constantBuffer(50, 50, 50, 50, 50)
	raw := images.Luminance(buf)

	res := Blackout(cfg, buf, raw)
	require.Equal(t, StatusPass, res.Status)
	require.Contains(t, res.Details[0], "Median luminance=50.0")
	require.Contains(t, res.Details[1], "Near-black pixels=0.0%")
}

func TestBlackoutDarkFrameFailsOnMedian(t *testing.T) {
	cfg := DefaultConfig()
	buf := constantBuffer(50, 50, 2, 2, 2)
	raw := images.Luminance(buf)

	res := Blackout(cfg, buf, raw)
	require.Equal(t, StatusFail, res.Status)
}

func TestBlackoutNearBlackDominanceFails(t *testing.T) {
	cfg := DefaultConfig()
	// Narrow bright stripe keeps the count check honest while near-black
	// pixels cover 98% of the frame.
	buf := images.NewPixelBuffer(100, 100)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if y < 2 {
				buf.SetRGB(x, y, 200, 200, 200)
			} else {
				buf.SetRGB(x, y, 5, 5, 5)
			}
		}
	}
	raw := images.Luminance(buf)

	res := Blackout(cfg, buf, raw)
	require.Equal(t, StatusFail, res.Status)
	require.Contains(t, res.Details[1], "Near-black pixels=98.0%")
}

func TestBlackoutNearBlackUsesChannelSum(t *testing.T) {
	cfg := DefaultConfig()
	// R+G+B = 36 sits above the near-black sum ceiling even though each
	// channel is dim. Brighter majority keeps the median check out of play.
	buf := images.NewPixelBuffer(100, 100)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if y < 60 {
				buf.SetRGB(x, y, 40, 40, 40)
			} else {
				buf.SetRGB(x, y, 12, 12, 12)
			}
		}
	}
	raw := images.Luminance(buf)

	res := Blackout(cfg, buf, raw)
	require.Equal(t, StatusPass, res.Status)
	require.Contains(t, res.Details[1], "Near-black pixels=0.0%")
}

func TestBlackoutEmptyFrameFailsClosed(t *testing.T) {
	cfg := DefaultConfig()
	res := Blackout(cfg, images.NewPixelBuffer(0, 0), images.NewLumaField(0, 0))
	require.Equal(t, StatusFail, res.Status)
	require.Contains(t, res.Details[0], "no pixel data")
}
