// Package raster is a software renderer for mesh buffers, used to produce
// snapshots without a GPU.
package raster

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/plyview/pkg/mesh"
)

// ErrInvalidColor is returned by ParseColor for malformed hex colors.
var ErrInvalidColor = errors.New("invalid color")

// Default camera angles, in degrees.
const (
	DefaultYaw   = -60
	DefaultPitch = 30
	fovY         = 45
)

// Options controls a render.
type Options struct {
	Size        int          // Output edge length in pixels
	Supersample int          // Render at Size*Supersample, then downscale
	Faceted     bool         // Shade with face normals
	Background  color.NRGBA  // Clear color
	Texture     *image.NRGBA // Optional, sampled with the buffer's s,t
	Yaw         float32      // Camera azimuth around +Z, degrees
	Pitch       float32      // Camera elevation above the XY plane, degrees
}

// DefaultOptions returns square 512px options with a three-quarter view.
func DefaultOptions() Options {
	return Options{
		Size:        512,
		Supersample: 2,
		Yaw:         DefaultYaw,
		Pitch:       DefaultPitch,
	}
}

// Camera returns view and projection matrices framing the box [lo, hi]
// from the given angles.
func Camera(lo, hi mgl32.Vec3, yaw, pitch float32) (view, proj mgl32.Mat4) {
	center := lo.Add(hi).Mul(0.5)
	radius := hi.Sub(lo).Len() / 2
	if radius < 1e-3 {
		radius = 1e-3
	}

	pitch = mgl32.Clamp(pitch, -89, 89)
	yr := float64(mgl32.DegToRad(yaw))
	pr := float64(mgl32.DegToRad(pitch))
	dir := mgl32.Vec3{
		float32(math.Cos(pr) * math.Cos(yr)),
		float32(math.Cos(pr) * math.Sin(yr)),
		float32(math.Sin(pr)),
	}

	dist := radius / float32(math.Sin(float64(mgl32.DegToRad(fovY/2)))) * 1.1
	eye := center.Add(dir.Mul(dist))
	view = mgl32.LookAtV(eye, center, mgl32.Vec3{0, 0, 1})

	near := max(dist-radius*1.5, dist*0.01)
	far := dist + radius*1.5
	proj = mgl32.Perspective(mgl32.DegToRad(fovY), 1, near, far)
	return view, proj
}

// Render rasterizes buf into a Size x Size image.
func Render(buf *mesh.Buffer, opts Options) *image.NRGBA {
	ss := max(opts.Supersample, 1)
	renderSize := opts.Size * ss

	fb := NewFrameBuffer(renderSize, renderSize, opts.Background)
	if buf == nil || buf.Vertices == 0 {
		return Downsample(fb.Image(), opts.Size)
	}

	lo, hi := buf.Bounds()
	view, proj := Camera(lo, hi, opts.Yaw, opts.Pitch)
	mvp := proj.Mul4(view)
	light := DefaultLight()

	half := float32(renderSize) / 2
	for tri := 0; tri < buf.Triangles(); tri++ {
		var v [3]Vertex
		visible := true
		for k := 0; k < 3; k++ {
			i := tri*3 + k
			clip := mvp.Mul4x1(buf.Position(i).Vec4(1))
			if clip.W() <= 1e-6 {
				visible = false
				break
			}
			ndc := clip.Vec3().Mul(1 / clip.W())
			v[k] = Vertex{
				X:      (ndc.X() + 1) * half,
				Y:      (1 - ndc.Y()) * half,
				Z:      ndc.Z(),
				Normal: buf.NormalAt(i, opts.Faceted),
				Tex:    buf.TexCoord(i),
			}
		}
		if visible {
			RasterizeTriangle(fb, v, opts.Texture, &light)
		}
	}

	return Downsample(fb.Image(), opts.Size)
}

// ParseColor parses "rrggbb" or "rrggbbaa" hex, with an optional leading '#'.
func ParseColor(s string) (color.NRGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	raw, err := hex.DecodeString(s)
	if err != nil || (len(raw) != 3 && len(raw) != 4) {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c := color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 255}
	if len(raw) == 4 {
		c.A = raw[3]
	}
	return c, nil
}
