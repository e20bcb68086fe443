// Package images - pixel buffer and luminance field primitives shared by every
// verification gate. All transforms in this package are pure: they allocate a
// new field and never mutate their input.
package images

import (
	"image"
)

// PixelBuffer is an immutable 3-channel (RGB) grid of 8-bit intensities.
// Pix is packed row-major, 3 bytes per pixel. Gates never mutate it.
type PixelBuffer struct {
	// Width of the buffer in pixels.
	Width int
	// Height of the buffer in pixels.
	Height int
	// Pix holds the packed RGB samples, len = Width*Height*3.
	Pix []uint8
}

// NewPixelBuffer allocates a zeroed (all-black) buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Empty reports whether the buffer holds no pixel data.
func (p *PixelBuffer) Empty() bool {
	return p == nil || p.Width <= 0 || p.Height <= 0 || len(p.Pix) == 0
}

// RGB returns the red, green, blue samples at (x, y). The caller is
// responsible for passing in-bounds coordinates.
func (p *PixelBuffer) RGB(x, y int) (uint8, uint8, uint8) {
	i := (y*p.Width + x) * 3
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2]
}

// SetRGB writes one pixel. Intended for synthetic test fixtures; production
// buffers come out of the decoder already populated.
func (p *PixelBuffer) SetRGB(x, y int, r, g, b uint8) {
	i := (y*p.Width + x) * 3
	p.Pix[i] = r
	p.Pix[i+1] = g
	p.Pix[i+2] = b
}

// FromImage converts a decoded image.Image into a PixelBuffer.
//
// Arguments:
// - img: Any decoded image; alpha is dropped, samples are truncated to 8 bits.
//
// Returns:
// - A freshly allocated PixelBuffer with the image's pixel data.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	buf := NewPixelBuffer(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			buf.Pix[i] = uint8(r >> 8)
			buf.Pix[i+1] = uint8(g >> 8)
			buf.Pix[i+2] = uint8(b >> 8)
			i += 3
		}
	}
	return buf
}

// ToImage converts the buffer back into an opaque *image.RGBA, for
// collaborators that operate on the standard image interfaces (thumbnail
// resampling, debug dumps).
func (p *PixelBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	if p.Empty() {
		return img
	}
	for i, j := 0, 0; i < len(p.Pix); i, j = i+3, j+4 {
		img.Pix[j] = p.Pix[i]
		img.Pix[j+1] = p.Pix[i+1]
		img.Pix[j+2] = p.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// LumaField is a single-channel float32 brightness grid in [0, 255], derived
// from a PixelBuffer. Raw and blurred fields share this type but are kept
// separate by the caller: star and darkness statistics read the raw field,
// cloud, boundary and theme statistics read the blurred one.
type LumaField struct {
	// Width of the field in samples.
	Width int
	// Height of the field in samples.
	Height int
	// Pix holds the row-major samples, len = Width*Height.
	Pix []float32
}

// NewLumaField allocates a zeroed field.
func NewLumaField(width, height int) *LumaField {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &LumaField{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height),
	}
}

// Empty reports whether the field holds no samples.
func (f *LumaField) Empty() bool {
	return f == nil || f.Width <= 0 || f.Height <= 0 || len(f.Pix) == 0
}

// At returns the sample at (x, y) without bounds checking.
func (f *LumaField) At(x, y int) float32 {
	return f.Pix[y*f.Width+x]
}

// Set writes the sample at (x, y) without bounds checking.
func (f *LumaField) Set(x, y int, v float32) {
	f.Pix[y*f.Width+x] = v
}
