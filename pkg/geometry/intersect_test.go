package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-realtime-raytracer/pkg/core"
)

func TestIntersectScene_Empty(t *testing.T) {
	ray := core.NewRay(core.Zero, core.NewVec3(0, 0, 1))

	dist, obj := IntersectScene(ray, nil)
	if !math.IsInf(dist, 1) {
		t.Errorf("Expected +Inf, got %f", dist)
	}
	if obj != nil {
		t.Errorf("Expected no object, got %v", obj)
	}
}

func TestIntersectScene_ClosestWins(t *testing.T) {
	far := NewSphere(core.NewVec3(0, 0, 10), 1, Surface{})
	near := NewSphere(core.NewVec3(0, 0, 5), 1, Surface{})
	ray := core.NewRay(core.Zero, core.NewVec3(0, 0, 1))

	dist, obj := IntersectScene(ray, []Object{far, near})
	if obj != near {
		t.Fatalf("Expected the nearer sphere, got %v", obj)
	}
	if math.Abs(dist-4) > 1e-9 {
		t.Errorf("Expected distance 4, got %f", dist)
	}
}

func TestIntersectScene_FirstObjectWinsTies(t *testing.T) {
	first := NewSphere(core.NewVec3(0, 0, 5), 1, Surface{Ambient: 1})
	second := NewSphere(core.NewVec3(0, 0, 5), 1, Surface{Ambient: 2})
	ray := core.NewRay(core.Zero, core.NewVec3(0, 0, 1))

	if _, obj := IntersectScene(ray, []Object{first, second}); obj != first {
		t.Errorf("Expected first object to win the tie, got %v", obj)
	}
	if _, obj := IntersectScene(ray, []Object{second, first}); obj != second {
		t.Errorf("Expected order to decide the tie, got %v", obj)
	}
}

func TestIntersectScene_BackFacingPlane(t *testing.T) {
	// Ceiling facing up, ray travelling up: the plane reports +Inf
	backFacing := NewPlane(core.NewVec3(0, 5, 0), core.NewVec3(0, 1, 0), Surface{})
	ray := core.NewRay(core.Zero, core.NewVec3(0, 1, 0))

	t.Run("alone", func(t *testing.T) {
		dist, obj := IntersectScene(ray, []Object{backFacing})
		if !math.IsInf(dist, 1) {
			t.Errorf("Expected +Inf, got %f", dist)
		}
		if obj != nil {
			t.Errorf("Expected the back-facing plane never to be selected, got %v", obj)
		}
	})

	t.Run("with a finite hit", func(t *testing.T) {
		sphere := NewSphere(core.NewVec3(0, 20, 0), 1, Surface{})
		dist, obj := IntersectScene(ray, []Object{backFacing, sphere})
		if obj != sphere {
			t.Fatalf("Expected the sphere, got %v", obj)
		}
		if math.Abs(dist-19) > 1e-9 {
			t.Errorf("Expected distance 19, got %f", dist)
		}
	})
}

func TestIntersectScene_EpsilonFilter(t *testing.T) {
	// The floor passes through the ray origin, so its hit distance is 0
	floor := NewPlane(core.Zero, core.NewVec3(0, 1, 0), Surface{})
	behind := NewPlane(core.NewVec3(0, 3, 0), core.NewVec3(0, 1, 0), Surface{})
	ray := core.NewRay(core.Zero, core.NewVec3(0, -1, 0))

	dist, obj := IntersectScene(ray, []Object{floor, behind})
	if obj != nil {
		t.Errorf("Expected hits at or behind the origin to be ignored, got %v at %f", obj, dist)
	}
}
