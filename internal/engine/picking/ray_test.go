package picking

import (
	"testing"

	"github.com/Faultbox/lathe/pkg/math"
	"github.com/Faultbox/lathe/pkg/mesh"
)

func unitBox(center math.Vec3) mesh.Bounds {
	h := math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	return mesh.Bounds{Min: center.Sub(h), Max: center.Add(h)}
}

func TestIntersectBounds(t *testing.T) {
	box := unitBox(math.Vec3{Z: -5})

	tests := []struct {
		name    string
		ray     Ray
		wantHit bool
		wantT   float32
	}{
		{"straight on", Ray{Direction: math.Vec3{Z: -1}}, true, 4.5},
		{"miss beside", Ray{Origin: math.Vec3{X: 2}, Direction: math.Vec3{Z: -1}}, false, 0},
		{"pointing away", Ray{Direction: math.Vec3{Z: 1}}, false, 0},
		{"from inside", Ray{Origin: math.Vec3{Z: -5}, Direction: math.Vec3{Z: -1}}, true, 0.5},
		{"parallel outside slab", Ray{Origin: math.Vec3{Y: 3}, Direction: math.Vec3{Z: -1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectBounds(box)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if hit && abs(got-tt.wantT) > 1e-5 {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestNearest(t *testing.T) {
	boxes := []mesh.Bounds{
		unitBox(math.Vec3{Z: -10}),
		unitBox(math.Vec3{Z: -3}),
		unitBox(math.Vec3{X: 5, Z: -1}),
	}
	r := Ray{Direction: math.Vec3{Z: -1}}
	if i, d := Nearest(r, boxes); i != 1 || abs(d-2.5) > 1e-5 {
		t.Errorf("Nearest = (%d, %v), want (1, 2.5)", i, d)
	}
	if i, _ := Nearest(Ray{Direction: math.Vec3{Y: 1}}, boxes); i != -1 {
		t.Errorf("Nearest = %d, want -1", i)
	}
}

func TestScreenToRayCenter(t *testing.T) {
	eye := math.Vec3{Z: 10}
	view := math.LookAt(eye, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(math.Radians(45), 2, 0.1, 100)

	r, ok := ScreenToRay(400, 200, 800, 400, proj.Mul(view))
	if !ok {
		t.Fatal("ScreenToRay failed")
	}
	if abs(r.Direction.X) > 1e-4 || abs(r.Direction.Y) > 1e-4 || abs(r.Direction.Z+1) > 1e-4 {
		t.Errorf("direction = %+v, want -Z", r.Direction)
	}
	if abs(r.Origin.Z-9.9) > 1e-3 {
		t.Errorf("origin z = %v, want near plane at 9.9", r.Origin.Z)
	}

	// the center pixel hits a box at the origin
	if _, hit := r.IntersectBounds(unitBox(math.Vec3{})); !hit {
		t.Error("center ray should hit the box at the origin")
	}

	// left edge of the screen points left
	left, _ := ScreenToRay(0, 200, 800, 400, proj.Mul(view))
	if left.Direction.X >= 0 {
		t.Errorf("left ray direction = %+v, want negative X", left.Direction)
	}
}

func TestScreenToRaySingular(t *testing.T) {
	if _, ok := ScreenToRay(0, 0, 10, 10, math.Mat4{}); ok {
		t.Error("singular matrix should fail")
	}
	if _, ok := ScreenToRay(0, 0, 0, 10, math.Identity()); ok {
		t.Error("empty viewport should fail")
	}
}

func TestRayAt(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1}, Direction: math.Vec3{Y: 1}}
	if p := r.At(3); p != (math.Vec3{X: 1, Y: 3}) {
		t.Errorf("At(3) = %+v", p)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
