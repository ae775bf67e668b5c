// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/lathe/pkg/math"
	"github.com/Faultbox/lathe/pkg/mesh"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxColor is the line color for bounds overlays.
var DefaultBBoxColor = mesh.RGB{1, 0.9, 0.1}

// bboxEdges pairs corner indices; corner i takes X from bit 0, Y from bit 1
// and Z from bit 2.
var bboxEdges = [12][2]int{
	// bottom
	{0, 1}, {1, 5}, {5, 4}, {4, 0},
	// top
	{2, 3}, {3, 7}, {7, 6}, {6, 2},
	// vertical
	{0, 2}, {1, 3}, {5, 7}, {4, 6},
}

// BoundsWireframe returns line vertices ([x, y, z] per vertex) outlining b
// after transforming its corners by model. Rotated models give an oriented
// box rather than a world-aligned one.
func BoundsWireframe(b mesh.Bounds, model math.Mat4) []float32 {
	var corners [8]math.Vec3
	for i := range corners {
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
		corners[i] = model.TransformPoint(c)
	}

	out := make([]float32, 0, BBoxWireframeVertexCount*3)
	for _, e := range bboxEdges {
		p, q := corners[e[0]], corners[e[1]]
		out = append(out, p.X, p.Y, p.Z, q.X, q.Y, q.Z)
	}
	return out
}
