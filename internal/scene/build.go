package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/lathe/internal/logger"
	"github.com/Faultbox/lathe/pkg/math"
	"github.com/Faultbox/lathe/pkg/mesh"
	"github.com/Faultbox/lathe/pkg/revolve"
)

// Entry is a built prop: its mesh in local space and the model matrix that
// places it.
type Entry struct {
	Name   string
	Mesh   *mesh.Mesh
	Model  math.Mat4
	Bounds mesh.Bounds // world space
}

// Scene is a fully built scene ready for upload.
type Scene struct {
	Name       string
	ClearColor mesh.RGB
	Camera     CameraView
	Entries    []Entry
	Bounds     mesh.Bounds
}

// VertexCount sums the vertices of every entry.
func (s *Scene) VertexCount() int {
	n := 0
	for _, e := range s.Entries {
		n += e.Mesh.VertexCount()
	}
	return n
}

// Build generates the mesh for every visible entry. It fails on the first
// entry that cannot be built; nothing is returned in that case.
func Build(desc *Description) (*Scene, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	log := logger.Named("scene")

	s := &Scene{
		Name:       desc.Name,
		ClearColor: desc.ClearColor,
		Camera:     desc.Camera,
		Entries:    make([]Entry, 0, len(desc.Entries)),
	}

	for i := range desc.Entries {
		ed := &desc.Entries[i]
		if ed.Hidden {
			continue
		}

		m, err := buildMesh(desc, ed)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", ed.Name, err)
		}

		model := math.Compose(math.V3(ed.Position), math.V3(ed.Rotation), math.V3(ed.Scale))
		e := Entry{
			Name:   ed.Name,
			Mesh:   m,
			Model:  model,
			Bounds: m.Bounds.Transform(model),
		}
		if len(s.Entries) == 0 {
			s.Bounds = e.Bounds
		} else {
			s.Bounds = s.Bounds.Union(e.Bounds)
		}
		s.Entries = append(s.Entries, e)

		log.Debug("entry built",
			zap.String("name", e.Name),
			zap.Stringer("topology", m.Topology),
			zap.Int("vertices", m.VertexCount()),
			zap.Int("indices", len(m.Indices)),
		)
	}

	log.Info("scene built",
		zap.String("name", s.Name),
		zap.Int("entries", len(s.Entries)),
		zap.Int("vertices", s.VertexCount()),
	)
	return s, nil
}

func buildMesh(desc *Description, ed *EntryDesc) (*mesh.Mesh, error) {
	if ed.Revolve != nil {
		return buildRevolve(ed.Revolve)
	}
	return buildBox(desc.Screen, ed.Box, ed.Color), nil
}

func buildRevolve(rd *RevolveDesc) (*mesh.Mesh, error) {
	angular := rd.AngularSegments
	if angular == 0 {
		angular = DefaultAngularSegments
	}
	vertical := rd.VerticalSegments
	if vertical == 0 {
		vertical = DefaultVerticalSegments
	}
	banding := revolve.DefaultBanding()
	if rd.Banding != nil {
		banding = *rd.Banding
	}

	rm, err := revolve.GenerateBanded(rd.ProfileSpec, angular, vertical, banding)
	if err != nil {
		return nil, err
	}
	return &rm.Mesh, nil
}

func buildBox(screen Screen, bd *BoxDesc, color mesh.RGB) *mesh.Mesh {
	if bd.RectPx == nil {
		return mesh.Box(math.V3(bd.Min), math.V3(bd.Max), color)
	}
	r := bd.RectPx
	minX, minY, maxX, maxY := mesh.RectToNDC(r[0], r[1], r[2], r[3], screen.Width, screen.Height)
	return mesh.Box(
		math.Vec3{X: minX, Y: minY, Z: bd.Depth[0]},
		math.Vec3{X: maxX, Y: maxY, Z: bd.Depth[1]},
		color,
	)
}
