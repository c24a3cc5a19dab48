package geometry

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// IntersectScene finds the closest object hit by ray with a linear scan.
// Hits at or below SelfIntersectionEpsilon are ignored and the first object wins ties.
// When nothing qualifies it returns (+Inf, nil).
func IntersectScene(ray core.Ray, objects []Object) (float64, Object) {
	closest := math.Inf(1)
	var closestObject Object

	for _, obj := range objects {
		dist, ok := Intersect(obj, ray)
		if ok && dist > SelfIntersectionEpsilon && dist < closest {
			closest = dist
			closestObject = obj
		}
	}

	return closest, closestObject
}
