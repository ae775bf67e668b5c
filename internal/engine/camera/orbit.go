package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/lathe/pkg/math"
	"github.com/Faultbox/lathe/pkg/mesh"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians above the horizon
	Yaw      float32 // radians around +Y, 0 looks down -Z

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32 // radians per pixel
	ZoomFactor      float32 // fraction of Distance per wheel click

	opts Options
}

// NewOrbitCamera creates an orbit camera at eye circling target.
func NewOrbitCamera(eye, target math.Vec3, opts Options) *OrbitCamera {
	c := &OrbitCamera{
		Center:          target,
		Distance:        10,
		Pitch:           0.5,
		MinDistance:     1,
		MaxDistance:     400,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: math.Radians(opts.LookSensitivity),
		ZoomFactor:      0.1,
		opts:            opts,
	}
	if c.opts.FOV <= 0 {
		c.opts.FOV = DefaultOptions().FOV
	}

	off := eye.Sub(target)
	if d := off.Length(); d > 0 {
		c.Distance = math.Clamp(d, c.MinDistance, c.MaxDistance)
		c.Pitch = math.Clamp(math32.Asin(off.Y/d), c.MinPitch, c.MaxPitch)
		c.Yaw = math32.Atan2(off.X, off.Z)
	}
	return c
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cp * sy,
		Y: c.Distance * sp,
		Z: c.Distance * cp * cy,
	})
}

// Target returns the orbit center.
func (c *OrbitCamera) Target() math.Vec3 {
	return c.Center
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, worldUp)
}

// Projection returns the perspective projection.
func (c *OrbitCamera) Projection(aspect float32) math.Mat4 {
	return projection(c.opts.FOV, aspect, c.opts.Near, c.opts.Far)
}

// Apply rotates on drag, zooms on wheel and pans the center on movement.
func (c *OrbitCamera) Apply(in Controls, dt float32) {
	lookY := in.LookY
	if c.opts.InvertLookY {
		lookY = -lookY
	}
	c.HandleDrag(in.LookX, lookY)
	c.HandleZoom(in.Zoom)
	c.HandleMovement(in.Forward, in.Right, in.Up, c.opts.MoveSpeed*dt)
	c.Yaw += c.opts.AutoRotate * dt
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = math.Clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomFactor
	c.Distance = math.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center point relative to the current yaw.
func (c *OrbitCamera) HandleMovement(forward, right, up, step float32) {
	sy, cy := math32.Sincos(c.Yaw)

	// forward points from the eye towards the center on the XZ plane
	c.Center.X += (-sy*forward + cy*right) * step
	c.Center.Z += (-cy*forward - sy*right) * step
	c.Center.Y += up * step
}

// FitToBounds centers on b and backs off far enough to see all of it.
func (c *OrbitCamera) FitToBounds(b mesh.Bounds) {
	c.Center = b.Center()
	size := b.Size()
	c.Distance = math.Clamp(size.Length()*0.9, c.MinDistance, c.MaxDistance)
	c.Pitch = 0.6
	c.Yaw = 0
}
