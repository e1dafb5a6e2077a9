package raster

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a triangle corner after projection to screen space.
type Vertex struct {
	X, Y   float32 // Pixel coordinates, y down
	Z      float32 // NDC depth, smaller is closer
	Normal mgl32.Vec3
	Tex    mgl32.Vec2
}

// defaultColor is used when no texture is bound.
var defaultColor = [4]uint8{160, 160, 170, 255}

// RasterizeTriangle fills one triangle with z-buffering, interpolated
// normals and optional texture mapping. Both windings are drawn.
func RasterizeTriangle(fb *FrameBuffer, v [3]Vertex, tex *image.NRGBA, light *Light) {
	x0, y0 := v[0].X, v[0].Y
	x1, y1 := v[1].X, v[1].Y
	x2, y2 := v[2].X, v[2].Y

	minX := int(floor32(min(x0, x1, x2)))
	maxX := int(ceil32(max(x0, x1, x2)))
	minY := int(floor32(min(y0, y1, y2)))
	maxY := int(ceil32(max(y0, y1, y2)))

	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, fb.Width-1)
	maxY = min(maxY, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float32(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float32(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*v[0].Z + w1*v[1].Z + w2*v[2].Z
			zIdx := rowOff + sx
			if z >= fb.ZBuf[zIdx] {
				continue
			}

			c := defaultColor
			if tex != nil {
				t := v[0].Tex.Mul(w0).Add(v[1].Tex.Mul(w1)).Add(v[2].Tex.Mul(w2))
				c[0], c[1], c[2], c[3] = SampleTexture(tex, t[0], t[1])
				if c[3] < 8 {
					continue
				}
			}
			fb.ZBuf[zIdx] = z

			n := v[0].Normal.Mul(w0).Add(v[1].Normal.Mul(w1)).Add(v[2].Normal.Mul(w2))
			shade := light.Shade(n)

			px := zIdx * 4
			fb.Color[px] = light.Apply(c[0], shade)
			fb.Color[px+1] = light.Apply(c[1], shade)
			fb.Color[px+2] = light.Apply(c[2], shade)
			fb.Color[px+3] = c[3]
		}
	}
}

func floor32(v float32) float32 { return float32(math.Floor(float64(v))) }
func ceil32(v float32) float32  { return float32(math.Ceil(float64(v))) }
