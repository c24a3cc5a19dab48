package integrator

import (
	"testing"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
)

var (
	colorA  = core.NewVec3(255, 0, 0)
	colorB  = core.NewVec3(0, 0, 255)
	checker = [2]core.Vec3{colorA, colorB}
)

func TestCheckerColorAt_Period(t *testing.T) {
	floor := geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), geometry.Surface{})

	at := func(x, z float64) core.Vec3 {
		return CheckerColorAt(floor, core.NewVec3(x, -1, z), checker)
	}

	if at(0, 0) != at(2, 0) {
		t.Errorf("Expected x=0 and x=2 to share a color, got %v and %v", at(0, 0), at(2, 0))
	}
	if at(0, 0) == at(1, 0) {
		t.Errorf("Expected x=0 and x=1 to have opposite colors, both %v", at(0, 0))
	}
	if at(0.5, 0.5) != at(-1.5, 0.5) {
		t.Errorf("Expected the period to continue across the origin, got %v and %v", at(0.5, 0.5), at(-1.5, 0.5))
	}
	if at(0.5, 0.5) == at(0.5, 1.5) {
		t.Errorf("Expected z to flip the color too, both %v", at(0.5, 0.5))
	}
	if at(0.5, 0.5) != at(1.5, 1.5) {
		t.Errorf("Expected flipping both axes to restore the color, got %v and %v", at(0.5, 0.5), at(1.5, 1.5))
	}
}

func TestCheckerColorAt_Parity(t *testing.T) {
	floor := geometry.NewPlane(core.Zero, core.NewVec3(0, 1, 0), geometry.Surface{})

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"both first half", core.NewVec3(0.5, 0, 0.5), colorB},
		{"x second half", core.NewVec3(1.5, 0, 0.5), colorA},
		{"z second half", core.NewVec3(0.5, 0, 1.5), colorA},
		{"both second half", core.NewVec3(1.5, 0, 1.5), colorB},
		{"negative x second half", core.NewVec3(-0.5, 0, 0.5), colorA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckerColorAt(floor, tt.point, checker); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCheckerCoordinates_BasisTable(t *testing.T) {
	point := core.NewVec3(1, 2, 3)

	tests := []struct {
		name   string
		normal core.Vec3
		x, y   float64
	}{
		// z-facing: axes (0,1,0) and (1,0,0)
		{"z normal", core.NewVec3(0, 0, 1), 2, 1},
		// y-facing: axes (0,0,1) and (1,0,0)
		{"y normal", core.NewVec3(0, -1, 0), 3, 1},
		// anything else: axes (0,1,0) and (0,0,1)
		{"x normal", core.NewVec3(1, 0, 0), 2, 3},
		// z wins over y when both are set
		{"tilted normal", core.NewVec3(0, 0.6, 0.8), 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plane := geometry.NewPlane(core.Zero, tt.normal, geometry.Surface{})
			c := CheckerCoordinates(plane, point)
			if c.X != tt.x || c.Y != tt.y {
				t.Errorf("Expected coordinates (%v, %v), got (%v, %v)", tt.x, tt.y, c.X, c.Y)
			}
		})
	}
}

func TestCheckerCoordinates_RelativeToPlanePoint(t *testing.T) {
	wall := geometry.NewPlane(core.NewVec3(-5, 1, 1), core.NewVec3(1, 0, 0), geometry.Surface{})

	c := CheckerCoordinates(wall, core.NewVec3(-5, 1, 1))
	if c.X != 0 || c.Y != 0 {
		t.Errorf("Expected the plane point to map to the checker origin, got (%v, %v)", c.X, c.Y)
	}
}

func TestSurfaceColorAt(t *testing.T) {
	sphere := geometry.NewSphere(core.Zero, 1, geometry.Surface{Color: core.NewVec3(1, 2, 3)})
	if got := SurfaceColorAt(sphere, core.NewVec3(0, 1, 0), checker); got != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected the sphere's own color, got %v", got)
	}

	floor := geometry.NewPlane(core.Zero, core.NewVec3(0, 1, 0), geometry.Surface{Color: core.NewVec3(1, 2, 3)})
	if got := SurfaceColorAt(floor, core.NewVec3(0.5, 0, 0.5), checker); got != colorB {
		t.Errorf("Expected planes to use the checker, got %v", got)
	}
}
