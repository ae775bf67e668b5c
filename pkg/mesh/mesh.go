// Package mesh holds the static, flat-colored mesh layout shared by every
// scene prop: interleaved position+color vertices and a 32-bit index list.
package mesh

import (
	"github.com/Faultbox/lathe/pkg/math"
)

// VertexStride is the number of floats per vertex: x, y, z, r, g, b.
const VertexStride = 6

// ColorOffset is the float offset of the color inside a vertex.
const ColorOffset = 3

// RGB is a linear color with components in [0, 1].
type RGB [3]float32

// Topology says how Indices are assembled into triangles.
type Topology int

const (
	// Triangles reads Indices three at a time.
	Triangles Topology = iota
	// TriangleStrip reads Indices as one strip; zero-area triangles act as joins.
	TriangleStrip
)

func (t Topology) String() string {
	switch t {
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle-strip"
	default:
		return "unknown"
	}
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns Max - Min.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Union returns the smallest box containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Transform returns the bounds of b's eight corners after m.
func (b Bounds) Transform(m math.Mat4) Bounds {
	var out Bounds
	for i := 0; i < 8; i++ {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		p := m.TransformPoint(c)
		if i == 0 {
			out = Bounds{Min: p, Max: p}
			continue
		}
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// Mesh is an owned vertex/index buffer pair ready for upload.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
	Topology Topology
	Bounds   Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / VertexStride
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) math.Vec3 {
	v := m.Vertices[i*VertexStride:]
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Color returns the color of vertex i.
func (m *Mesh) Color(i int) RGB {
	v := m.Vertices[i*VertexStride+ColorOffset:]
	return RGB{v[0], v[1], v[2]}
}

// Triangles returns the index triples the GPU would rasterize. Strips are
// unrolled with alternating winding; triangles with a repeated index are
// dropped.
func (m *Mesh) Triangles() [][3]uint32 {
	switch m.Topology {
	case TriangleStrip:
		if len(m.Indices) < 3 {
			return nil
		}
		tris := make([][3]uint32, 0, len(m.Indices)-2)
		for k := 2; k < len(m.Indices); k++ {
			a, b, c := m.Indices[k-2], m.Indices[k-1], m.Indices[k]
			if a == b || b == c || a == c {
				continue
			}
			if k%2 == 1 {
				a, b = b, a
			}
			tris = append(tris, [3]uint32{a, b, c})
		}
		return tris
	default:
		tris := make([][3]uint32, 0, len(m.Indices)/3)
		for k := 0; k+2 < len(m.Indices); k += 3 {
			tris = append(tris, [3]uint32{m.Indices[k], m.Indices[k+1], m.Indices[k+2]})
		}
		return tris
	}
}

// appendVertex writes one interleaved vertex.
func appendVertex(dst []float32, p math.Vec3, c RGB) []float32 {
	return append(dst, p.X, p.Y, p.Z, c[0], c[1], c[2])
}

// ComputeBounds scans the vertex buffer. An empty mesh has zero bounds.
func ComputeBounds(vertices []float32) Bounds {
	if len(vertices) < VertexStride {
		return Bounds{}
	}
	first := math.Vec3{X: vertices[0], Y: vertices[1], Z: vertices[2]}
	b := Bounds{Min: first, Max: first}
	for i := VertexStride; i+2 < len(vertices); i += VertexStride {
		p := math.Vec3{X: vertices[i], Y: vertices[i+1], Z: vertices[i+2]}
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}
