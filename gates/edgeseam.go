package gates

import (
	"fmt"

	"github.com/decantra/bgverify/images"
)

// EdgeSeam walks the one-pixel border strip of the whole image clockwise and
// bounds the largest luma jump between adjacent strip pixels, wraparound
// included. A mis-tiled or cropped background layer shows up as one hard
// seam on the frame edge long before it is visible in band statistics.
func EdgeSeam(cfg Config, buf *images.PixelBuffer) Result {
	if buf.Empty() || buf.Width < 2 || buf.Height < 2 {
		return fail(NameEdgeSeam, "image too small for border strip walk")
	}

	w, h := buf.Width, buf.Height
	strip := make([]int, 0, 2*w+2*h-4)
	for x := 0; x < w; x++ {
		strip = append(strip, images.LumaValue(buf.RGB(x, 0)))
	}
	for y := 1; y < h-1; y++ {
		strip = append(strip, images.LumaValue(buf.RGB(w-1, y)))
	}
	for x := w - 1; x >= 0; x-- {
		strip = append(strip, images.LumaValue(buf.RGB(x, h-1)))
	}
	for y := h - 2; y >= 1; y-- {
		strip = append(strip, images.LumaValue(buf.RGB(0, y)))
	}

	maxDelta, maxIdx := 0, -1
	for i := 0; i+1 < len(strip); i++ {
		delta := strip[i+1] - strip[i]
		if delta < 0 {
			delta = -delta
		}
		if delta > maxDelta {
			maxDelta, maxIdx = delta, i
		}
	}
	wrap := strip[len(strip)-1] - strip[0]
	if wrap < 0 {
		wrap = -wrap
	}
	if wrap > maxDelta {
		maxDelta, maxIdx = wrap, len(strip)-1
	}

	return verdict(NameEdgeSeam, maxDelta <= cfg.EdgeSeamDeltaMax, fmt.Sprintf(
		"Max delta=%d (0x%02X) at strip index %d (threshold <= %d)",
		maxDelta, maxDelta, maxIdx, cfg.EdgeSeamDeltaMax))
}
