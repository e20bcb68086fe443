package gates

import (
	"fmt"

	"github.com/decantra/bgverify/images"
)

// Blackout rejects a frame that is effectively a black screen: the
// whole-frame median luminance must clear a floor and near-black pixels
// (R+G+B below the configured sum) must not dominate. This catches the
// overlay regression where a fullscreen layer blanks the scene while every
// band statistic still sees the few pixels that survive.
func Blackout(cfg Config, buf *images.PixelBuffer, raw *images.LumaField) Result {
	if buf.Empty() || raw.Empty() {
		return fail(NameBlackout, "image has no pixel data")
	}

	median := images.Percentile(raw.Pix, 50)
	nearBlack := 0
	for i := 0; i < len(buf.Pix); i += 3 {
		if int(buf.Pix[i])+int(buf.Pix[i+1])+int(buf.Pix[i+2]) < cfg.NearBlackSumMax {
			nearBlack++
		}
	}
	nearBlackPct := float32(nearBlack) / float32(len(raw.Pix))

	ok := median >= cfg.BlackoutMedianMin && nearBlackPct <= cfg.BlackoutNearBlackPctMax
	return verdict(NameBlackout, ok,
		fmt.Sprintf("Median luminance=%.1f (threshold >= %v)", median, cfg.BlackoutMedianMin),
		fmt.Sprintf("Near-black pixels=%.1f%% (threshold <= %.0f%%)",
			nearBlackPct*100, cfg.BlackoutNearBlackPctMax*100),
	)
}
