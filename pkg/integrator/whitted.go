package integrator

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// DefaultMaxDepth is the deepest recursion level that still shades a hit.
// Primary rays start at depth 0, so a ray chain has at most three segments.
const DefaultMaxDepth = 2

// WhittedIntegrator implements recursive ray tracing with Lambert, ambient,
// mirror reflection and hard shadows from point lights.
type WhittedIntegrator struct {
	maxDepth int
}

// NewWhittedIntegrator creates a new integrator. A negative maxDepth falls back to DefaultMaxDepth.
func NewWhittedIntegrator(maxDepth int) *WhittedIntegrator {
	if maxDepth < 0 {
		maxDepth = DefaultMaxDepth
	}
	return &WhittedIntegrator{maxDepth: maxDepth}
}

// RayColor traces a primary ray at depth 0
func (wi *WhittedIntegrator) RayColor(ray core.Ray, s *scene.Scene) core.Vec3 {
	color, ok := wi.Trace(ray, s, 0)
	if !ok {
		return Background
	}
	return color
}

// Trace returns the color seen along ray. Past the depth limit it returns ok=false,
// meaning the ray contributes nothing, which is different from hitting the black background.
func (wi *WhittedIntegrator) Trace(ray core.Ray, s *scene.Scene, depth int) (core.Vec3, bool) {
	if depth > wi.maxDepth {
		return core.Zero, false
	}

	dist, obj := geometry.IntersectScene(ray, s.Objects)
	if math.IsInf(dist, 1) {
		return Background, true
	}

	hitPoint := ray.At(dist)
	return wi.Shade(ray, s, obj, hitPoint, geometry.NormalAt(obj, hitPoint), depth), true
}

// Shade computes the color of obj at hitPoint: reflection + diffuse + ambient.
// The result is not clamped.
func (wi *WhittedIntegrator) Shade(ray core.Ray, s *scene.Scene, obj geometry.Object, hitPoint, normal core.Vec3, depth int) core.Vec3 {
	surface := obj.Material()
	base := SurfaceColorAt(obj, hitPoint, s.Checker)
	color := core.Zero

	lambertAmount := 0.0
	if surface.Lambert != 0 {
		lambertAmount = LambertAmount(s, hitPoint, normal)
	}

	if surface.Specular > 0 {
		reflected := core.NewRay(hitPoint, ray.Direction.Reflect(normal))
		if reflectedColor, ok := wi.Trace(reflected, s, depth+1); ok {
			color = color.Add(reflectedColor.Multiply(surface.Specular))
		}
	}

	return color.Add3(
		base.Multiply(lambertAmount*surface.Lambert),
		base.Multiply(surface.Ambient),
	)
}

// LambertAmount sums the cosine terms of every light visible from point.
// Lights behind the surface are skipped, so the result lies in [0, 1].
func LambertAmount(s *scene.Scene, point, normal core.Vec3) float64 {
	amount := 0.0
	for _, light := range s.Lights {
		if !IsLightVisible(point, s, light) {
			continue
		}
		contribution := light.Subtract(point).Normalize().Dot(normal)
		if contribution > 0 {
			amount += contribution
		}
	}
	return math.Min(1, amount)
}

// IsLightVisible casts a shadow ray from point toward light. The light is visible
// only if the closest hit along that ray lies beyond it.
func IsLightVisible(point core.Vec3, s *scene.Scene, light core.Vec3) bool {
	toLight := light.Subtract(point)
	ray := core.NewRay(point, toLight.Normalize())

	dist, _ := geometry.IntersectScene(ray, s.Objects)
	return dist > toLight.Length()
}

// SurfaceColorAt returns the base color of obj at point.
// Spheres have a flat color; planes use the scene's checkerboard.
func SurfaceColorAt(obj geometry.Object, point core.Vec3, checker [2]core.Vec3) core.Vec3 {
	switch o := obj.(type) {
	case *geometry.Plane:
		return CheckerColorAt(o, point, checker)
	default:
		return obj.Material().Color
	}
}
