package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/lathe/pkg/math"
)

// FOV limits for wheel zoom, in degrees.
const (
	MinFOV = 20
	MaxFOV = 90

	maxPitch = 89
)

var worldUp = math.Vec3{Y: 1}

// FlyCamera moves freely, looking along the direction given by Yaw and
// Pitch (degrees). Yaw -90 looks down -Z.
type FlyCamera struct {
	Pos   math.Vec3
	Yaw   float32
	Pitch float32
	FOV   float32

	opts Options
}

// NewFlyCamera creates a fly camera at eye facing target.
func NewFlyCamera(eye, target math.Vec3, opts Options) *FlyCamera {
	c := &FlyCamera{
		Pos:  eye,
		Yaw:  -90,
		FOV:  opts.FOV,
		opts: opts,
	}
	if c.FOV <= 0 {
		c.FOV = DefaultOptions().FOV
	}

	dir := target.Sub(eye)
	if l := dir.Length(); l > 0 {
		dir = dir.Scale(1 / l)
		c.Yaw = math32.Atan2(dir.Z, dir.X) * 180 / math32.Pi
		c.Pitch = math.Clamp(math32.Asin(dir.Y)*180/math32.Pi, -maxPitch, maxPitch)
	}
	c.clampHeight()
	return c
}

// Front returns the unit view direction.
func (c *FlyCamera) Front() math.Vec3 {
	sy, cy := math32.Sincos(math.Radians(c.Yaw))
	sp, cp := math32.Sincos(math.Radians(c.Pitch))
	return math.Vec3{X: cy * cp, Y: sp, Z: sy * cp}.Normalize()
}

// Position returns the eye position.
func (c *FlyCamera) Position() math.Vec3 {
	return c.Pos
}

// Target returns the point one unit ahead of the eye.
func (c *FlyCamera) Target() math.Vec3 {
	return c.Pos.Add(c.Front())
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Pos, c.Target(), worldUp)
}

// Projection returns the perspective projection for the current FOV.
func (c *FlyCamera) Projection(aspect float32) math.Mat4 {
	return projection(c.FOV, aspect, c.opts.Near, c.opts.Far)
}

// Apply turns, zooms and moves the camera.
func (c *FlyCamera) Apply(in Controls, dt float32) {
	lookY := in.LookY
	if c.opts.InvertLookY {
		lookY = -lookY
	}
	c.Yaw += in.LookX * c.opts.LookSensitivity
	c.Pitch = math.Clamp(c.Pitch-lookY*c.opts.LookSensitivity, -maxPitch, maxPitch)

	if in.Zoom != 0 {
		c.FOV = math.Clamp(c.FOV-in.Zoom*c.opts.ZoomSensitivity, MinFOV, MaxFOV)
	}

	step := c.opts.MoveSpeed * dt
	front := c.Front()
	right := front.Cross(worldUp).Normalize()
	c.Pos = c.Pos.
		Add(front.Scale(in.Forward * step)).
		Add(right.Scale(in.Right * step)).
		Add(worldUp.Scale(in.Up * step))
	c.clampHeight()
}

func (c *FlyCamera) clampHeight() {
	if c.opts.MinHeight < c.opts.MaxHeight {
		c.Pos.Y = math.Clamp(c.Pos.Y, c.opts.MinHeight, c.opts.MaxHeight)
	}
}
