// Package camera provides the orbit camera used by the viewer.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Projection selects how the view volume is mapped to the screen.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

func (p Projection) String() string {
	if p == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// OrbitCamera orbits around a center point in a Z-up world.
type OrbitCamera struct {
	Center mgl32.Vec3

	Distance float32 // Distance from center
	Pitch    float32 // Elevation above the XY plane, degrees
	Yaw      float32 // Rotation around +Z, degrees

	FovY       float32 // Vertical field of view, degrees
	Near, Far  float32
	Projection Projection

	// Constraints
	MinDistance float32
	MaxDistance float32

	// Sensitivity
	DragSensitivity float32 // Degrees per pixel
	ZoomSensitivity float32 // Distance per wheel notch
}

// NewOrbitCamera creates a camera 20 units out, looking down 15 degrees.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        20,
		Pitch:           15,
		Yaw:             -45,
		FovY:            60,
		Near:            0.01,
		Far:             100,
		MinDistance:     0.1,
		MaxDistance:     1000,
		DragSensitivity: 1,
		ZoomSensitivity: 2,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	// Z-up world to Y-up eye space, then back the eye off along its forward axis.
	view := mgl32.HomogRotate3DX(mgl32.DegToRad(-90))
	view = view.Mul4(mgl32.Translate3D(0, c.Distance, 0))
	view = view.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(c.Pitch)))
	view = view.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(c.Yaw)))
	return view.Mul4(mgl32.Translate3D(-c.Center[0], -c.Center[1], -c.Center[2]))
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	inv := c.ViewMatrix().Inv()
	return inv.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

// ProjectionMatrix returns the projection for the given viewport aspect ratio.
// The orthographic volume matches the perspective frustum at the center.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	if c.Projection == Orthographic {
		half := c.Distance * float32(math.Tan(float64(mgl32.DegToRad(c.FovY/2))))
		return mgl32.Ortho(-half*aspect, half*aspect, -half, half, c.Near, c.Far)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ToggleProjection switches between perspective and orthographic.
func (c *OrbitCamera) ToggleProjection() Projection {
	if c.Projection == Perspective {
		c.Projection = Orthographic
	} else {
		c.Projection = Perspective
	}
	return c.Projection
}

// HandleDrag updates rotation based on mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
}

// HandleZoom updates distance based on scroll wheel notches.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on a bounding box and backs off far enough
// to see all of it.
func (c *OrbitCamera) FitToBounds(lo, hi mgl32.Vec3) {
	c.Center = lo.Add(hi).Mul(0.5)

	radius := hi.Sub(lo).Len() / 2
	if radius < 0.5 {
		radius = 0.5
	}
	c.Distance = radius / float32(math.Sin(float64(mgl32.DegToRad(c.FovY/2)))) * 1.2
	c.MinDistance = radius * 0.1
	c.MaxDistance = radius * 50
	c.ZoomSensitivity = radius * 0.1
	c.Far = max(100, c.Distance+radius*50)
}
