package geometry

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// Plane represents an infinite one-sided plane defined by a point and normal.
// Only rays travelling against the normal can hit it.
type Plane struct {
	Point  core.Vec3 // A point on the plane, also the checker origin
	Normal core.Vec3 // Unit normal; its sign picks the shaded side
	Surface
}

// NewPlane creates a new plane. The normal is stored as given and must already be unit length.
func NewPlane(point, normal core.Vec3, surface Surface) *Plane {
	return &Plane{
		Point:   point,
		Normal:  normal,
		Surface: surface,
	}
}

func (p *Plane) Kind() Kind        { return KindPlane }
func (p *Plane) Material() Surface { return p.Surface }
func (p *Plane) sealed()           {}

// Intersection returns the distance along the ray to the plane.
// Rays parallel to or leaving the front face get +Inf rather than a miss,
// which the closest-hit scan never selects.
func (p *Plane) Intersection(ray core.Ray) float64 {
	negNorm := p.Normal.Negate()
	denom := negNorm.Dot(ray.Direction)

	if denom <= 0 {
		return math.Inf(1)
	}

	return p.Point.Subtract(ray.Origin).Dot(negNorm) / denom
}
