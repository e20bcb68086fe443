//go:build !gocv
// +build !gocv

package kernels

import "github.com/decantra/bgverify/images"

// GaussianWith is the pure-Go separable implementation: one horizontal pass
// into a scratch field, one vertical pass into the result. Build with the
// gocv tag to swap in the OpenCV-backed variant on large capture sets.
func GaussianWith(field *images.LumaField, opt Options) *images.LumaField {
	if field.Empty() {
		return images.NewLumaField(0, 0)
	}
	kernel := Kernel(opt.Sigma)
	radius := len(kernel) / 2
	w, h := field.Width, field.Height

	tmp := images.NewLumaField(w, h)
	for y := 0; y < h; y++ {
		row := field.Pix[y*w : (y+1)*w]
		out := tmp.Pix[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			var acc float32
			for i, wgt := range kernel {
				acc += wgt * row[reflect(x+i-radius, w, opt.Edge)]
			}
			out[x] = acc
		}
	}

	dst := images.NewLumaField(w, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			var acc float32
			for i, wgt := range kernel {
				acc += wgt * tmp.Pix[reflect(y+i-radius, h, opt.Edge)*w+x]
			}
			dst.Pix[y*w+x] = acc
		}
	}
	return dst
}

// reflect maps an out-of-bounds coordinate back into [0, n) per the edge
// mode. Handles kernels wider than the field by folding repeatedly.
func reflect(i, n int, mode EdgeMode) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		switch {
		case i < 0:
			if mode == EdgeClamp {
				return 0
			}
			i = -i
		case i >= n:
			if mode == EdgeClamp {
				return n - 1
			}
			i = 2*(n-1) - i
		}
	}
	return i
}
