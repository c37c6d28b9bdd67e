// Package camera provides the orbit camera used by the viewer.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera orbits around a center point using spherical coordinates.
type OrbitCamera struct {
	Center mgl32.Vec3

	Distance float32
	Pitch    float32 // vertical angle, radians
	Yaw      float32 // horizontal angle, radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32

	FOV  float32 // vertical field of view, radians
	Near float32
	Far  float32
}

// NewOrbitCamera creates an orbit camera with viewer defaults.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        5.0,
		Pitch:           0.4,
		Yaw:             0.6,
		MinDistance:     0.05,
		MaxDistance:     10000.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             mgl32.DegToRad(45),
		Near:            0.01,
		Far:             20000.0,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	x := c.Distance * math32.Cos(c.Pitch) * math32.Sin(c.Yaw)
	y := c.Distance * math32.Sin(c.Pitch)
	z := c.Distance * math32.Cos(c.Pitch) * math32.Cos(c.Yaw)

	return c.Center.Add(mgl32.Vec3{x, y, z})
}

// ViewMatrix returns the view matrix looking at the center point.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection for the given
// viewport aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// HandleDrag updates rotation from a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity

	c.Pitch = mgl32.Clamp(c.Pitch, c.MinPitch, c.MaxPitch)
}

// HandleZoom scales distance by the scroll wheel delta. Zoom speed is
// proportional to distance so it feels uniform at any scale.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on a bounding box and backs off far
// enough that the whole box is in view.
func (c *OrbitCamera) FitToBounds(min, max mgl32.Vec3) {
	c.Center = min.Add(max).Mul(0.5)

	radius := max.Sub(min).Len() * 0.5
	if radius <= 0 {
		radius = 1
	}

	// Distance so the bounding sphere fits inside the vertical FOV.
	c.Distance = radius / math32.Tan(c.FOV*0.5) * 1.2
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)

	c.Pitch = 0.4
	c.Yaw = 0.6
}
