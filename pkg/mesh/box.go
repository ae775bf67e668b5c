package mesh

import (
	"github.com/Faultbox/lathe/pkg/math"
)

// boxIndices lists the 12 outward-facing (counter-clockwise) triangles of a
// box whose corner i has x from bit 0, y from bit 1 and z from bit 2.
var boxIndices = [36]uint32{
	0, 2, 3, 0, 3, 1, // -Z
	4, 5, 7, 4, 7, 6, // +Z
	0, 4, 6, 0, 6, 2, // -X
	1, 3, 7, 1, 7, 5, // +X
	0, 1, 5, 0, 5, 4, // -Y
	2, 6, 7, 2, 7, 3, // +Y
}

// Box builds a flat-colored rectangular prism with opposite corners a and b.
// The corners may be given in any order.
func Box(a, b math.Vec3, color RGB) *Mesh {
	lo, hi := a.Min(b), a.Max(b)

	vertices := make([]float32, 0, 8*VertexStride)
	for i := 0; i < 8; i++ {
		p := lo
		if i&1 != 0 {
			p.X = hi.X
		}
		if i&2 != 0 {
			p.Y = hi.Y
		}
		if i&4 != 0 {
			p.Z = hi.Z
		}
		vertices = appendVertex(vertices, p, color)
	}

	indices := make([]uint32, len(boxIndices))
	copy(indices, boxIndices[:])

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Topology: Triangles,
		Bounds:   Bounds{Min: lo, Max: hi},
	}
}
