package geometry

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// SelfIntersectionEpsilon is the minimum hit distance accepted by the scene scan.
// It keeps a ray leaving a surface from re-hitting that same surface.
const SelfIntersectionEpsilon = 1e-3

// Kind identifies which variant an Object is
type Kind string

const (
	KindSphere Kind = "Sphere"
	KindPlane  Kind = "Plane"
)

// Surface holds the shading parameters shared by every object.
// Colors are in the 0-255 range; the coefficients are usually in [0,1].
type Surface struct {
	Color    core.Vec3
	Specular float64 // Weight of the reflected ray
	Lambert  float64 // Weight of the diffuse term
	Ambient  float64 // Weight of the light-independent term
}

// Object is a closed set of scene primitives: *Sphere and *Plane.
// The unexported method keeps other packages from adding variants.
type Object interface {
	Kind() Kind
	Material() Surface
	sealed()
}

// Intersect returns the signed hit distance of ray against obj.
// A sphere miss reports ok=false; a plane never misses, but may report +Inf.
func Intersect(obj Object, ray core.Ray) (dist float64, ok bool) {
	switch o := obj.(type) {
	case *Sphere:
		return o.Intersection(ray)
	case *Plane:
		return o.Intersection(ray), true
	default:
		return math.Inf(1), false
	}
}

// NormalAt returns the surface normal of obj at point
func NormalAt(obj Object, point core.Vec3) core.Vec3 {
	switch o := obj.(type) {
	case *Sphere:
		return o.Normal(point)
	case *Plane:
		return o.Normal
	default:
		return core.Zero
	}
}
