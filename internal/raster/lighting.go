package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Light holds a two-light rig: a key light and a dimmer fill from the
// opposite side, both applied double-sided.
type Light struct {
	KeyDir   mgl32.Vec3
	FillDir  mgl32.Vec3
	Ambient  float32
	Key      float32
	Fill     float32
	InvGamma float64
}

// DefaultLight returns a key light from the upper front right.
func DefaultLight() Light {
	return Light{
		KeyDir:   mgl32.Vec3{0.4, -0.6, 0.7}.Normalize(),
		FillDir:  mgl32.Vec3{-0.5, 0.4, 0.3}.Normalize(),
		Ambient:  0.25,
		Key:      0.75,
		Fill:     0.25,
		InvGamma: 1.0 / 2.2,
	}
}

// Shade returns the light intensity for normal n. The normal need not be
// unit length; a zero normal receives ambient light only.
func (l *Light) Shade(n mgl32.Vec3) float32 {
	if n.Len() == 0 {
		return l.Ambient
	}
	n = n.Normalize()
	key := abs32(n.Dot(l.KeyDir))
	fill := abs32(n.Dot(l.FillDir))
	return l.Ambient + key*l.Key + fill*l.Fill
}

// Apply scales an sRGB channel by shade in linear space.
func (l *Light) Apply(c uint8, shade float32) uint8 {
	lin := srgbToLinear[c] * float64(shade)
	return clamp255(math.Pow(lin, l.InvGamma) * 255)
}

// Precomputed sRGB-to-linear lookup table.
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
