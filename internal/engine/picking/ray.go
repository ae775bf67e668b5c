// Package picking provides ray casting and object picking utilities.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/lathe/pkg/math"
	"github.com/Faultbox/lathe/pkg/mesh"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // normalized
}

// ScreenToRay converts a pixel position to a world-space ray through the
// near and far clip planes of viewProj. ok is false when viewProj cannot be
// inverted.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, viewProj math.Mat4) (r Ray, ok bool) {
	inv, ok := viewProj.Inverse()
	if !ok || viewportW <= 0 || viewportH <= 0 {
		return Ray{}, false
	}

	ndcX, ndcY := mesh.PixelToNDC(screenX, screenY, viewportW, viewportH)
	near := inv.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := inv.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	dir := far.Sub(near)
	if dir.Length() == 0 {
		return Ray{}, false
	}
	return Ray{Origin: near, Direction: dir.Normalize()}, true
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectBounds tests ray intersection with an axis-aligned box using the
// slab method. If the ray starts inside the box, the exit distance is
// returned.
func (r Ray) IntersectBounds(b mesh.Bounds) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	o, d := r.Origin.Array(), r.Direction.Array()
	lo, hi := b.Min.Array(), b.Max.Array()
	for k := 0; k < 3; k++ {
		if d[k] == 0 {
			if o[k] < lo[k] || o[k] > hi[k] {
				return 0, false
			}
			continue
		}
		t1 := (lo[k] - o[k]) / d[k]
		t2 := (hi[k] - o[k]) / d[k]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Nearest returns the index of the closest box the ray hits and its
// distance, or -1 when nothing is hit.
func Nearest(r Ray, boxes []mesh.Bounds) (index int, t float32) {
	index = -1
	for i, b := range boxes {
		if d, hit := r.IntersectBounds(b); hit && (index < 0 || d < t) {
			index, t = i, d
		}
	}
	return index, t
}
