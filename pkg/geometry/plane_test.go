package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-realtime-raytracer/pkg/core"
)

func TestPlane_Intersection_BasicIntersection(t *testing.T) {
	// Floor at y=-1 facing up
	plane := NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), Surface{})

	// Ray shooting down from above
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	dist := plane.Intersection(ray)
	if math.Abs(dist-6) > 1e-9 {
		t.Errorf("Expected distance 6, got %f", dist)
	}

	hitPoint := ray.At(dist)
	if hitPoint.Subtract(core.NewVec3(0, -1, 0)).Length() > 1e-9 {
		t.Errorf("Expected hit point (0, -1, 0), got %v", hitPoint)
	}
}

func TestPlane_Intersection_FacingAwayIsInfinite(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), Surface{})

	tests := []struct {
		name      string
		direction core.Vec3
	}{
		{"ray travelling with the normal", core.NewVec3(0, 1, 0)},
		{"ray parallel to the plane", core.NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist := plane.Intersection(core.NewRay(core.NewVec3(0, 5, 0), tt.direction))
			if !math.IsInf(dist, 1) {
				t.Errorf("Expected +Inf, got %f", dist)
			}
		})
	}
}

func TestPlane_Intersection_BehindRayIsUnfiltered(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), Surface{})

	// Below the plane, moving further down: the plane lies behind the origin
	ray := core.NewRay(core.NewVec3(0, -5, 0), core.NewVec3(0, -1, 0))

	dist, ok := Intersect(plane, ray)
	if !ok {
		t.Fatal("Expected planes to always report a distance")
	}
	if math.Abs(dist-(-4)) > 1e-9 {
		t.Errorf("Expected signed distance -4, got %f", dist)
	}
}

func TestPlane_NormalIsStored(t *testing.T) {
	normal := core.NewVec3(0, 0, -1)
	plane := NewPlane(core.NewVec3(0, 0, 12), normal, Surface{})

	if got := NormalAt(plane, core.NewVec3(3, 4, 12)); got != normal {
		t.Errorf("Expected stored normal %v, got %v", normal, got)
	}
	if plane.Kind() != KindPlane {
		t.Errorf("Expected kind %q, got %q", KindPlane, plane.Kind())
	}
}
