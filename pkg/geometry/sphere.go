package geometry

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
	Surface
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, surface Surface) *Sphere {
	return &Sphere{
		Center:  center,
		Radius:  radius,
		Surface: surface,
	}
}

func (s *Sphere) Kind() Kind        { return KindSphere }
func (s *Sphere) Material() Surface { return s.Surface }
func (s *Sphere) sealed()           {}

// Intersection tests the ray against the sphere by projecting the center onto the ray.
// Only the near root is considered, so a ray starting inside the sphere reports a miss.
func (s *Sphere) Intersection(ray core.Ray) (float64, bool) {
	eyeToCenter := s.Center.Subtract(ray.Origin)
	v := eyeToCenter.Dot(ray.Direction)
	eoDot := eyeToCenter.Dot(eyeToCenter)
	discriminant := s.Radius*s.Radius - eoDot + v*v

	if discriminant < 0 {
		return 0, false
	}

	dist := v - math.Sqrt(discriminant)
	if dist > SelfIntersectionEpsilon {
		return dist, true
	}
	return 0, false
}

// Normal returns the outward unit normal at a point on the sphere
func (s *Sphere) Normal(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}
