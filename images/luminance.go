package images

// Rec.709 luma weights. Reproducing these exact coefficients is part of the
// verification contract; every threshold downstream was tuned against them.
const (
	LumaWeightR float32 = 0.2126
	LumaWeightG float32 = 0.7152
	LumaWeightB float32 = 0.0722
)

// Luminance converts an RGB buffer into a perceptual brightness field.
//
// Arguments:
// - buf: The source pixel buffer. Never mutated.
//
// Returns:
// - A new float32 LumaField in [0, 255], one sample per pixel. An empty
//   buffer yields an empty field.
func Luminance(buf *PixelBuffer) *LumaField {
	if buf.Empty() {
		return NewLumaField(0, 0)
	}
	field := NewLumaField(buf.Width, buf.Height)
	n := buf.Width * buf.Height
	for i := 0; i < n; i++ {
		j := i * 3
		field.Pix[i] = LumaWeightR*float32(buf.Pix[j]) +
			LumaWeightG*float32(buf.Pix[j+1]) +
			LumaWeightB*float32(buf.Pix[j+2])
	}
	return field
}

// LumaValue computes the integer Rec.709 luma of a single pixel, rounded to
// nearest. The edge-seam gate compares integer luma values, so the rounding
// here is part of its contract.
func LumaValue(r, g, b uint8) int {
	v := LumaWeightR*float32(r) + LumaWeightG*float32(g) + LumaWeightB*float32(b)
	return int(v + 0.5)
}

// AbsDiff computes the per-sample absolute difference |b - a| of two fields
// with identical dimensions.
//
// Returns:
// - A new field of deltas, or an empty field when dimensions differ or
//   either input is empty.
func AbsDiff(a, b *LumaField) *LumaField {
	if a.Empty() || b.Empty() || a.Width != b.Width || a.Height != b.Height {
		return NewLumaField(0, 0)
	}
	out := NewLumaField(a.Width, a.Height)
	for i := range a.Pix {
		d := b.Pix[i] - a.Pix[i]
		if d < 0 {
			d = -d
		}
		out.Pix[i] = d
	}
	return out
}
