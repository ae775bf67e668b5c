package revolve

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/lathe/pkg/mesh"
)

// Mesh is a revolved mesh: Rings rows of Columns vertices, drawn as a single
// triangle strip of TriangleStripLength indices.
type Mesh struct {
	mesh.Mesh

	Rings               int
	Columns             int
	TriangleStripLength int
}

// Ring is one horizontal circle of vertices.
type Ring struct {
	Height float32
	Radius float32
	Color  mesh.RGB
	// First is the index of the seam vertex at angle 0.
	First uint32
}

// Ring returns ring i, counted from the bottom.
func (m *Mesh) Ring(i int) Ring {
	first := i * m.Columns
	p := m.Position(first)
	return Ring{
		Height: p.Y,
		Radius: math32.Sqrt(p.X*p.X + p.Z*p.Z),
		Color:  m.Color(first),
		First:  uint32(first),
	}
}

// VertexCount returns (V+1)*(A+1) for V vertical and A angular segments.
func VertexCount(angularSegments, verticalSegments int) int {
	return (verticalSegments + 1) * (angularSegments + 1)
}

// IndexCount returns the strip length: two indices per column per ring pair
// plus a two-index join between consecutive ring pairs.
func IndexCount(angularSegments, verticalSegments int) int {
	return verticalSegments*2*(angularSegments+1) + 2*(verticalSegments-1)
}

// Generate revolves spec with DefaultBanding colors.
func Generate(spec ProfileSpec, angularSegments, verticalSegments int) (*Mesh, error) {
	return GenerateBanded(spec, angularSegments, verticalSegments, DefaultBanding())
}

// GenerateBanded revolves spec around +Y. Ring i sits at height
// i*TotalHeight/verticalSegments; column j at angle j*2pi/angularSegments,
// with column angularSegments repeating column 0 so the seam closes.
//
// Arguments are validated before anything is allocated; on error no mesh is
// returned.
func GenerateBanded(spec ProfileSpec, angularSegments, verticalSegments int, banding Banding) (*Mesh, error) {
	if angularSegments < 3 {
		return nil, fmt.Errorf("%w: angular segments %d < 3", ErrInvalidArgument, angularSegments)
	}
	if verticalSegments < 1 {
		return nil, fmt.Errorf("%w: vertical segments %d < 1", ErrInvalidArgument, verticalSegments)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	cols := angularSegments + 1
	rings := verticalSegments + 1

	// Unit circle once; every ring scales it.
	cosT := make([]float32, cols)
	sinT := make([]float32, cols)
	for j := 0; j < angularSegments; j++ {
		theta := float32(j) * 2 * math32.Pi / float32(angularSegments)
		sinT[j], cosT[j] = math32.Sincos(theta)
	}
	cosT[angularSegments], sinT[angularSegments] = cosT[0], sinT[0]

	vertices := make([]float32, 0, rings*cols*mesh.VertexStride)
	for i := 0; i < rings; i++ {
		y := float32(i) * spec.TotalHeight / float32(verticalSegments)
		if i == verticalSegments {
			y = spec.TotalHeight
		}
		r := RadiusAt(y, spec)
		c := banding.ColorAt(y, spec)
		for j := 0; j < cols; j++ {
			vertices = append(vertices, r*cosT[j], y, r*sinT[j], c[0], c[1], c[2])
		}
	}

	indices := make([]uint32, 0, IndexCount(angularSegments, verticalSegments))
	for i := 0; i < verticalSegments; i++ {
		lower := uint32(i * cols)
		upper := uint32((i + 1) * cols)
		for j := uint32(0); j < uint32(cols); j++ {
			indices = append(indices, lower+j, upper+j)
		}
		if i < verticalSegments-1 {
			indices = append(indices, upper+uint32(angularSegments), upper)
		}
	}

	return &Mesh{
		Mesh: mesh.Mesh{
			Vertices: vertices,
			Indices:  indices,
			Topology: mesh.TriangleStrip,
			Bounds:   mesh.ComputeBounds(vertices),
		},
		Rings:               rings,
		Columns:             cols,
		TriangleStripLength: len(indices),
	}, nil
}
