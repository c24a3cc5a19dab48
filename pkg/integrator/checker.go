package integrator

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
)

// CheckerWidth is the period of the plane checkerboard in world units
const CheckerWidth = 2.0

// checkerBasis picks the two in-plane axes for a plane normal.
// This is a lookup on the axis-aligned cases, not a general tangent frame:
// the first non-zero component in the order z, y wins.
func checkerBasis(normal core.Vec3) (px, py core.Vec3) {
	switch {
	case normal.Z != 0:
		return core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)
	case normal.Y != 0:
		return core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0)
	default:
		return core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1)
	}
}

// CheckerCoordinates projects point onto the checker axes of plane, relative to plane.Point
func CheckerCoordinates(plane *geometry.Plane, point core.Vec3) vec.Vec2 {
	fromOrigin := point.Subtract(plane.Point)
	px, py := checkerBasis(plane.Normal)
	return vec.Vec2{X: px.Dot(fromOrigin), Y: py.Dot(fromOrigin)}
}

// CheckerColorAt returns the checkerboard color of plane at point
func CheckerColorAt(plane *geometry.Plane, point core.Vec3, checker [2]core.Vec3) core.Vec3 {
	c := CheckerCoordinates(plane, point)
	if firstHalf(c.X) != firstHalf(c.Y) {
		return checker[0]
	}
	return checker[1]
}

// firstHalf reports whether c falls in the first half of its checker cell
func firstHalf(c float64) bool {
	m := math.Mod(c, CheckerWidth)
	if m < 0 {
		m += CheckerWidth
	}
	return m < CheckerWidth/2
}
