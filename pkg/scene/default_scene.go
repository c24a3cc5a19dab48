package scene

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
)

// DemoConfig holds the tunable parameters of the demo room scene
type DemoConfig struct {
	Camera  Camera
	Spheres [3]SphereConfig // Two orbiting spheres followed by the center sphere
	Checker [2]core.Vec3
	Light   core.Vec3
}

// SphereConfig holds the tunable parameters of one demo sphere
type SphereConfig struct {
	Radius  float64
	Surface geometry.Surface
}

// DefaultDemoConfig returns the parameters the demo starts with
func DefaultDemoConfig() DemoConfig {
	return DemoConfig{
		Camera: Camera{
			Point:  core.NewVec3(0, 1.8, 10),
			LookAt: core.NewVec3(0, 0, 0),
			FOV:    45,
		},
		Spheres: [3]SphereConfig{
			{
				Radius:  1.0,
				Surface: geometry.Surface{Color: core.NewVec3(155, 200, 155), Specular: 0.2, Lambert: 0.7, Ambient: 0.1},
			},
			{
				Radius:  1.0,
				Surface: geometry.Surface{Color: core.NewVec3(155, 155, 155), Specular: 0.1, Lambert: 0.9, Ambient: 0.0},
			},
			{
				Radius:  1.5,
				Surface: geometry.Surface{Color: core.NewVec3(255, 255, 255), Specular: 0.2, Lambert: 0.7, Ambient: 0.1},
			},
		},
		Checker: [2]core.Vec3{
			core.NewVec3(50, 0, 89),
			core.NewVec3(255, 255, 255),
		},
		Light: core.NewVec3(-3, 4, 5),
	}
}

// NewDefaultScene creates the demo room with the orbiting spheres at orbit position t
func NewDefaultScene(t float64) *Scene {
	return NewDemoScene(DefaultDemoConfig(), t)
}

// NewDemoScene builds a fresh demo room: three spheres inside six inward-facing
// checkered walls, lit by a single point light.
func NewDemoScene(config DemoConfig, t float64) *Scene {
	s := NewScene(config.Camera)
	s.Checker = config.Checker

	first, second := OrbitPositions(t)
	s.AddSphere(first, config.Spheres[0].Radius, config.Spheres[0].Surface)
	s.AddSphere(second, config.Spheres[1].Radius, config.Spheres[1].Surface)
	s.AddSphere(core.Zero, config.Spheres[2].Radius, config.Spheres[2].Surface)

	ceiling := geometry.Surface{Color: core.NewVec3(200, 200, 200), Lambert: 0.9, Ambient: 0.2}
	wall := geometry.Surface{Color: core.NewVec3(100, 100, 100), Lambert: 0.9, Ambient: 0.2}

	s.AddPlane(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), ceiling)
	s.AddPlane(core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0), wall)
	s.AddPlane(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0), wall)
	s.AddPlane(core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0), wall)
	s.AddPlane(core.NewVec3(0, 0, -12), core.NewVec3(0, 0, 1), wall)
	s.AddPlane(core.NewVec3(0, 0, 12), core.NewVec3(0, 0, -1), wall)

	s.AddLight(config.Light)

	return s
}

// OrbitPositions returns the centers of the two orbiting spheres at orbit position t.
// They circle the center sphere on opposite sides while bobbing vertically.
func OrbitPositions(t float64) (first, second core.Vec3) {
	sin, cos := math.Sin(t), math.Cos(t)
	first = core.NewVec3(sin*3.0, sin*2.0, cos*3.0)
	second = core.NewVec3(sin*-3.0, cos*-2.0, cos*-3.0)
	return first, second
}

// OrbitStep converts a UI orbit speed into the per-frame increment of t
func OrbitStep(orbitSpeed float64) float64 {
	return orbitSpeed / 250
}
