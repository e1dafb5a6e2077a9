package raster

import (
	"image"
	"image/color"
	"math"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float32 // NDC depth per pixel, initialized to +inf
}

// NewFrameBuffer allocates a color buffer filled with bg and a +inf z-buffer.
func NewFrameBuffer(w, h int, bg color.NRGBA) *FrameBuffer {
	n := w * h
	zbuf := make([]float32, n)
	for i := range zbuf {
		zbuf[i] = float32(math.Inf(1))
	}
	col := make([]uint8, n*4)
	for i := 0; i < len(col); i += 4 {
		col[i], col[i+1], col[i+2], col[i+3] = bg.R, bg.G, bg.B, bg.A
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  col,
		ZBuf:   zbuf,
	}
}

// Image copies the color buffer into a new NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
