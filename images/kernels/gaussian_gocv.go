//go:build gocv
// +build gocv

package kernels

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/decantra/bgverify/images"
)

// GaussianWith is the OpenCV-backed implementation, selected with the gocv
// build tag. A zero kernel size lets OpenCV derive the window from sigma,
// the same call the release pipeline's capture tooling uses. Edge mode is
// ignored: OpenCV's default border (reflect-101) matches EdgeMirror.
func GaussianWith(field *images.LumaField, opt Options) *images.LumaField {
	if field.Empty() {
		return images.NewLumaField(0, 0)
	}

	src := gocv.NewMatWithSize(field.Height, field.Width, gocv.MatTypeCV32F)
	defer src.Close()
	srcData, err := src.DataPtrFloat32()
	if err != nil {
		return images.NewLumaField(0, 0)
	}
	copy(srcData, field.Pix)

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.GaussianBlur(src, &dst, image.Pt(0, 0), float64(opt.Sigma), float64(opt.Sigma), gocv.BorderDefault)

	out := images.NewLumaField(field.Width, field.Height)
	dstData, err := dst.DataPtrFloat32()
	if err != nil {
		return images.NewLumaField(0, 0)
	}
	copy(out.Pix, dstData)
	return out
}
