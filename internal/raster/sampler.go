package raster

import "image"

// SampleTexture performs bilinear filtering with UV wrapping. t runs
// bottom-up, so t=0 samples the last image row.
func SampleTexture(tex *image.NRGBA, s, t float32) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()

	u := wrap(float64(s))
	v := 1 - wrap(float64(t))

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := tex.Stride
	pix := tex.Pix

	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	ch := func(o int) uint8 {
		return uint8(float64(pix[i00+o])*w00 + float64(pix[i10+o])*w10 +
			float64(pix[i01+o])*w01 + float64(pix[i11+o])*w11 + 0.5)
	}
	return ch(0), ch(1), ch(2), ch(3)
}

func wrap(u float64) float64 {
	u -= float64(int(u))
	if u < 0 {
		u += 1.0
	}
	return u
}
