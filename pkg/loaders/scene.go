package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// VectorJSON is the wire form of a point, direction or color
type VectorJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// CameraJSON is the wire form of the camera. Vector is the look-at point.
type CameraJSON struct {
	Point  VectorJSON `json:"point"`
	Vector VectorJSON `json:"vector"`
	FOV    float64    `json:"fov"`
}

// ObjectJSON is the wire form of a sphere or a plane, told apart by Type.
// Radius is only read for spheres and Normal only for planes.
type ObjectJSON struct {
	Type     string      `json:"type"`
	Point    VectorJSON  `json:"point"`
	Radius   float64     `json:"radius,omitempty"`
	Normal   *VectorJSON `json:"normal,omitempty"`
	Color    VectorJSON  `json:"color"`
	Specular float64     `json:"specular"`
	Lambert  float64     `json:"lambert"`
	Ambient  float64     `json:"ambient"`
}

// SceneJSON is the wire form of a whole scene. The descriptive fields are
// only read by scene discovery and do not affect rendering.
type SceneJSON struct {
	Name        string `json:"name,omitempty"`
	Variant     string `json:"variant,omitempty"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group,omitempty"`

	Camera  CameraJSON   `json:"camera"`
	Objects []ObjectJSON `json:"objects"`
	Checker []VectorJSON `json:"checker,omitempty"`
	Lights  []VectorJSON `json:"lights"`
}

// ParseScene decodes a JSON scene description
func ParseScene(data []byte) (*scene.Scene, error) {
	return DecodeScene(bytes.NewReader(data))
}

// DecodeScene reads a JSON scene description from reader
func DecodeScene(reader io.Reader) (*scene.Scene, error) {
	var wire SceneJSON
	if err := json.NewDecoder(reader).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode scene JSON: %w", err)
	}
	return wire.ToScene()
}

// LoadScene reads and decodes a JSON scene file
func LoadScene(filename string) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := DecodeScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// MarshalScene encodes a scene in the JSON wire format
func MarshalScene(s *scene.Scene) ([]byte, error) {
	wire, err := FromScene(s)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(wire, "", "  ")
}

// ToScene converts the wire form into a scene, keeping object order
func (w *SceneJSON) ToScene() (*scene.Scene, error) {
	s := scene.NewScene(scene.Camera{
		Point:  w.Camera.Point.toVec3(),
		LookAt: w.Camera.Vector.toVec3(),
		FOV:    w.Camera.FOV,
	})

	switch len(w.Checker) {
	case 0:
		// keep scene.DefaultChecker
	case 2:
		s.Checker = [2]core.Vec3{w.Checker[0].toVec3(), w.Checker[1].toVec3()}
	default:
		return nil, fmt.Errorf("checker must have exactly 2 colors, got %d", len(w.Checker))
	}

	for i, obj := range w.Objects {
		surface := geometry.Surface{
			Color:    obj.Color.toVec3(),
			Specular: obj.Specular,
			Lambert:  obj.Lambert,
			Ambient:  obj.Ambient,
		}

		switch geometry.Kind(obj.Type) {
		case geometry.KindSphere, "":
			s.AddSphere(obj.Point.toVec3(), obj.Radius, surface)
		case geometry.KindPlane:
			if obj.Normal == nil {
				return nil, fmt.Errorf("object %d: plane requires a normal", i)
			}
			s.AddPlane(obj.Point.toVec3(), obj.Normal.toVec3(), surface)
		default:
			return nil, fmt.Errorf("object %d: unknown object type %q", i, obj.Type)
		}
	}

	for _, light := range w.Lights {
		s.AddLight(light.toVec3())
	}

	return s, nil
}

// FromScene converts a scene into its wire form
func FromScene(s *scene.Scene) (*SceneJSON, error) {
	wire := &SceneJSON{
		Camera: CameraJSON{
			Point:  fromVec3(s.Camera.Point),
			Vector: fromVec3(s.Camera.LookAt),
			FOV:    s.Camera.FOV,
		},
		Objects: make([]ObjectJSON, 0, len(s.Objects)),
		Checker: []VectorJSON{fromVec3(s.Checker[0]), fromVec3(s.Checker[1])},
		Lights:  make([]VectorJSON, 0, len(s.Lights)),
	}

	for i, obj := range s.Objects {
		surface := obj.Material()
		out := ObjectJSON{
			Type:     string(obj.Kind()),
			Color:    fromVec3(surface.Color),
			Specular: surface.Specular,
			Lambert:  surface.Lambert,
			Ambient:  surface.Ambient,
		}
		switch o := obj.(type) {
		case *geometry.Sphere:
			out.Point = fromVec3(o.Center)
			out.Radius = o.Radius
		case *geometry.Plane:
			normal := fromVec3(o.Normal)
			out.Point = fromVec3(o.Point)
			out.Normal = &normal
		default:
			return nil, fmt.Errorf("object %d: cannot encode object of kind %q", i, obj.Kind())
		}
		wire.Objects = append(wire.Objects, out)
	}

	for _, light := range s.Lights {
		wire.Lights = append(wire.Lights, fromVec3(light))
	}

	return wire, nil
}

func (v VectorJSON) toVec3() core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

func fromVec3(v core.Vec3) VectorJSON {
	return VectorJSON{X: v.X, Y: v.Y, Z: v.Z}
}

// validateFilePath validates a scene file path before it is opened
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	cleanPath := filepath.Clean(filename)
	if !strings.HasSuffix(strings.ToLower(cleanPath), ".json") {
		return fmt.Errorf("invalid file type: only .json scene files are allowed")
	}

	if len(cleanPath) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	return nil
}
