// Package revolve builds surface-of-revolution meshes: a radius-over-height
// profile swept around the Y axis into one indexed triangle strip.
package revolve

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrInvalidArgument reports a profile or segment count outside its domain.
var ErrInvalidArgument = errors.New("invalid argument")

// ProfileSpec describes a bottle-like profile: a cylindrical body of
// BaseRadius, a raised-cosine shoulder from ShoulderStart to ShoulderEnd, and a
// cylindrical neck of NeckRadius up to TotalHeight.
type ProfileSpec struct {
	TotalHeight   float32 `yaml:"total_height"`
	BaseRadius    float32 `yaml:"base_radius"`
	NeckRadius    float32 `yaml:"neck_radius"`
	ShoulderStart float32 `yaml:"shoulder_start"`
	ShoulderEnd   float32 `yaml:"shoulder_end"`
}

// Validate checks 0 <= ShoulderStart <= ShoulderEnd <= TotalHeight and
// positive finite radii.
func (s ProfileSpec) Validate() error {
	for _, f := range []struct {
		name string
		v    float32
	}{
		{"total height", s.TotalHeight},
		{"base radius", s.BaseRadius},
		{"neck radius", s.NeckRadius},
		{"shoulder start", s.ShoulderStart},
		{"shoulder end", s.ShoulderEnd},
	} {
		if math32.IsNaN(f.v) || math32.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidArgument, f.name)
		}
	}
	if s.BaseRadius <= 0 {
		return fmt.Errorf("%w: base radius %g must be positive", ErrInvalidArgument, s.BaseRadius)
	}
	if s.NeckRadius <= 0 {
		return fmt.Errorf("%w: neck radius %g must be positive", ErrInvalidArgument, s.NeckRadius)
	}
	if s.ShoulderStart < 0 || s.ShoulderStart > s.TotalHeight {
		return fmt.Errorf("%w: shoulder start %g outside [0, %g]", ErrInvalidArgument, s.ShoulderStart, s.TotalHeight)
	}
	if s.ShoulderEnd < 0 || s.ShoulderEnd > s.TotalHeight {
		return fmt.Errorf("%w: shoulder end %g outside [0, %g]", ErrInvalidArgument, s.ShoulderEnd, s.TotalHeight)
	}
	if s.ShoulderStart > s.ShoulderEnd {
		return fmt.Errorf("%w: shoulder start %g after shoulder end %g", ErrInvalidArgument, s.ShoulderStart, s.ShoulderEnd)
	}
	return nil
}

// RadiusAt evaluates the profile at height z.
//
// The shoulder blends with (1+cos(pi*t))/2, which has zero slope at both ends,
// so the taper meets body and neck without a crease. A zero-length shoulder
// is a sharp step: NeckRadius from ShoulderStart upward.
func RadiusAt(z float32, spec ProfileSpec) float32 {
	switch {
	case z < spec.ShoulderStart:
		return spec.BaseRadius
	case z > spec.ShoulderEnd:
		return spec.NeckRadius
	case spec.ShoulderEnd == spec.ShoulderStart:
		return spec.NeckRadius
	}
	t := (z - spec.ShoulderStart) / (spec.ShoulderEnd - spec.ShoulderStart)
	return spec.NeckRadius + 0.5*(spec.BaseRadius-spec.NeckRadius)*(1+math32.Cos(math32.Pi*t))
}
