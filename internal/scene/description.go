// Package scene loads declarative scene tables and turns them into meshes
// placed in world space.
package scene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/lathe/pkg/mesh"
	"github.com/Faultbox/lathe/pkg/revolve"
)

//go:embed room.yaml
var roomYAML []byte

// Description is the on-disk form of a scene.
type Description struct {
	Name       string      `yaml:"name"`
	ClearColor mesh.RGB    `yaml:"clear_color"`
	Screen     Screen      `yaml:"screen"`
	Camera     CameraView  `yaml:"camera"`
	Entries    []EntryDesc `yaml:"entries"`
}

// Screen is the reference resolution for props placed by pixel rectangle.
type Screen struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// CameraView is the initial eye position and look-at target.
type CameraView struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
}

// EntryDesc is one prop. Exactly one of Revolve or Box is set.
type EntryDesc struct {
	Name     string       `yaml:"name"`
	Revolve  *RevolveDesc `yaml:"revolve,omitempty"`
	Box      *BoxDesc     `yaml:"box,omitempty"`
	Color    mesh.RGB     `yaml:"color"`
	Position [3]float32   `yaml:"position"`
	Rotation [3]float32   `yaml:"rotation"` // degrees around X, Y, Z
	Scale    [3]float32   `yaml:"scale"`    // zero components mean 1
	Hidden   bool         `yaml:"hidden"`
}

// RevolveDesc is a surface of revolution.
type RevolveDesc struct {
	revolve.ProfileSpec `yaml:",inline"`

	AngularSegments  int              `yaml:"angular_segments"`
	VerticalSegments int              `yaml:"vertical_segments"`
	Banding          *revolve.Banding `yaml:"banding,omitempty"`
}

// BoxDesc is a rectangular prism given either by world corners (Min, Max) or
// by a pixel rectangle on Screen plus a Z depth range in NDC units.
type BoxDesc struct {
	Min    [3]float32  `yaml:"min"`
	Max    [3]float32  `yaml:"max"`
	RectPx *[4]float32 `yaml:"rect_px,omitempty"` // x0, y0, x1, y1
	Depth  [2]float32  `yaml:"depth"`
}

// Segment counts used when a revolve entry leaves them at zero.
const (
	DefaultAngularSegments  = 64
	DefaultVerticalSegments = 96
)

// Default returns the built-in room scene.
func Default() *Description {
	desc, err := Parse(roomYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in scene: %v", err))
	}
	return desc
}

// Load reads a scene description from a YAML file.
func Load(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	desc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}

// Parse decodes and validates a scene description. Unknown keys are errors so
// typos in hand-written scenes are caught.
func Parse(data []byte) (*Description, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var desc Description
	if err := dec.Decode(&desc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// Validate checks entry names and shapes without building any mesh.
func (d *Description) Validate() error {
	seen := make(map[string]bool, len(d.Entries))
	for i := range d.Entries {
		e := &d.Entries[i]
		if e.Name == "" {
			return fmt.Errorf("entry %d: missing name", i)
		}
		if seen[e.Name] {
			return fmt.Errorf("entry %q: duplicate name", e.Name)
		}
		seen[e.Name] = true

		switch {
		case e.Revolve != nil && e.Box != nil:
			return fmt.Errorf("entry %q: both revolve and box set", e.Name)
		case e.Revolve == nil && e.Box == nil:
			return fmt.Errorf("entry %q: needs revolve or box", e.Name)
		case e.Box != nil && e.Box.RectPx != nil:
			if d.Screen.Width <= 0 || d.Screen.Height <= 0 {
				return fmt.Errorf("entry %q: rect_px needs a screen size", e.Name)
			}
		}
	}
	return nil
}

// Marshal encodes d back to YAML.
func (d *Description) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
