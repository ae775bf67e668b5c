// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"fmt"

	"github.com/Faultbox/lathe/pkg/math"
)

// Controls is one frame of camera input, already mapped from devices.
type Controls struct {
	Forward float32 // +1 forward, -1 back
	Right   float32 // +1 right, -1 left
	Up      float32 // +1 up, -1 down
	LookX   float32 // mouse motion in pixels
	LookY   float32
	Zoom    float32 // wheel clicks, positive away from the user
}

// IsZero reports whether c carries no input.
func (c Controls) IsZero() bool {
	return c == Controls{}
}

// Camera produces view and projection matrices and reacts to input.
type Camera interface {
	ViewMatrix() math.Mat4
	Projection(aspect float32) math.Mat4
	Position() math.Vec3
	Target() math.Vec3
	Apply(c Controls, dt float32)
}

// Mode selects a camera implementation.
type Mode string

const (
	ModeFly   Mode = "fly"
	ModeOrbit Mode = "orbit"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFly, ModeOrbit:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown camera mode %q", s)
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeOrbit {
		return ModeFly
	}
	return ModeOrbit
}

// Options are shared by every camera.
type Options struct {
	FOV             float32 // vertical, degrees
	Near, Far       float32
	MoveSpeed       float32 // units per second
	LookSensitivity float32 // degrees per pixel
	ZoomSensitivity float32 // degrees of FOV per wheel click
	MinHeight       float32 // fly camera height clamp; ignored unless MinHeight < MaxHeight
	MaxHeight       float32
	InvertLookY     bool
	AutoRotate      float32 // orbit yaw in radians per second
}

// DefaultOptions returns the settings used when none are configured.
func DefaultOptions() Options {
	return Options{
		FOV:             45,
		Near:            0.1,
		Far:             500,
		MoveSpeed:       6,
		LookSensitivity: 0.1,
		ZoomSensitivity: 2,
		MinHeight:       -5,
		MaxHeight:       40,
	}
}

// New creates a camera of the given mode at eye looking at target.
func New(mode Mode, eye, target math.Vec3, opts Options) (Camera, error) {
	switch mode {
	case ModeFly:
		return NewFlyCamera(eye, target, opts), nil
	case ModeOrbit:
		return NewOrbitCamera(eye, target, opts), nil
	}
	return nil, fmt.Errorf("unknown camera mode %q", mode)
}

func projection(fovDeg, aspect, near, far float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math.Radians(fovDeg), aspect, near, far)
}
