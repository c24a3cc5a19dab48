package integrator

import (
	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// Background is the color of rays that escape the scene
var Background = core.Zero

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color seen along a primary ray.
	// The result is unclamped and uses the scene's 0-255 color scale.
	RayColor(ray core.Ray, scene *scene.Scene) core.Vec3
}
