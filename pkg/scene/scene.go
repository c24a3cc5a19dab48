package scene

import (
	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
)

// Camera describes the eye of the scene
type Camera struct {
	Point  core.Vec3 // Eye position
	LookAt core.Vec3 // Target point, not a direction
	FOV    float64   // Full horizontal field of view in degrees
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera  Camera
	Objects []geometry.Object // Order decides ties in the closest-hit scan
	Checker [2]core.Vec3      // The two plane checkerboard colors
	Lights  []core.Vec3       // Point light positions
}

// DefaultChecker is used when a scene description does not name checker colors
var DefaultChecker = [2]core.Vec3{
	core.NewVec3(0, 0, 0),
	core.NewVec3(255, 255, 255),
}

// NewScene creates an empty scene with the given camera and default checker colors
func NewScene(camera Camera) *Scene {
	return &Scene{
		Camera:  camera,
		Objects: make([]geometry.Object, 0),
		Checker: DefaultChecker,
		Lights:  make([]core.Vec3, 0),
	}
}

// AddSphere appends a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, surface geometry.Surface) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, surface)
	s.Objects = append(s.Objects, sphere)
	return sphere
}

// AddPlane appends a one-sided plane to the scene
func (s *Scene) AddPlane(point, normal core.Vec3, surface geometry.Surface) *geometry.Plane {
	plane := geometry.NewPlane(point, normal, surface)
	s.Objects = append(s.Objects, plane)
	return plane
}

// AddLight appends a point light to the scene
func (s *Scene) AddLight(position core.Vec3) {
	s.Lights = append(s.Lights, position)
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}

// CountByKind returns how many objects of each variant the scene holds
func (s *Scene) CountByKind() map[geometry.Kind]int {
	counts := make(map[geometry.Kind]int)
	for _, obj := range s.Objects {
		counts[obj.Kind()]++
	}
	return counts
}
