package revolve

import (
	"github.com/Faultbox/lathe/pkg/mesh"
)

// DefaultBandEpsilon widens the shoulder band past ShoulderEnd so the color
// change lines up with the neck rather than the taper midpoint.
const DefaultBandEpsilon = 0.05

// Banding assigns one flat color per height region.
type Banding struct {
	Body        mesh.RGB `yaml:"body"`
	Band        mesh.RGB `yaml:"band"`
	Cap         mesh.RGB `yaml:"cap"`
	BandEpsilon float32  `yaml:"band_epsilon"`
}

// DefaultBanding is the reference bottle: purple body, silver band, black cap.
func DefaultBanding() Banding {
	return Banding{
		Body:        mesh.RGB{0.5, 0.0, 0.8},
		Band:        mesh.RGB{0.5, 0.5, 0.5},
		Cap:         mesh.RGB{0.0, 0.0, 0.0},
		BandEpsilon: DefaultBandEpsilon,
	}
}

// ColorAt returns the color for height z. It ignores the angle, so a whole
// ring shares one color.
func (b Banding) ColorAt(z float32, spec ProfileSpec) mesh.RGB {
	switch {
	case z < spec.ShoulderStart:
		return b.Body
	case z < spec.ShoulderEnd+b.BandEpsilon:
		return b.Band
	default:
		return b.Cap
	}
}

// ColorAt is DefaultBanding().ColorAt.
func ColorAt(z float32, spec ProfileSpec) mesh.RGB {
	return DefaultBanding().ColorAt(z, spec)
}
