package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/integrator"
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit           bool                   `json:"hit"`
	ObjectIndex   int                    `json:"objectIndex"`
	GeometryType  string                 `json:"geometryType"`
	Point         [3]float64             `json:"point"`
	Normal        [3]float64             `json:"normal"`
	Distance      float64                `json:"distance"`
	Color         [3]float64             `json:"color"` // Surface color at the hit, checker applied
	LightsVisible []bool                 `json:"lightsVisible"`
	Lambert       float64                `json:"lambert"` // Diffuse amount before the surface coefficient
	Properties    map[string]interface{} `json:"properties"`
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit      bool
	Index    int // Position of the object in the scene's object list
	Object   geometry.Object
	Distance float64
	Point    core.Vec3
	Normal   core.Vec3
}

// inspectPixel casts the primary ray through a pixel and returns the closest object it hits
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	viewport := renderer.NewViewport(sceneObj.Camera, renderer.Canvas{Width: width, Height: height})
	ray := viewport.GetRay(pixelX, pixelY)

	dist, obj := geometry.IntersectScene(ray, sceneObj.Objects)
	if obj == nil {
		return InspectResult{Hit: false, Index: -1}
	}

	index := -1
	for i, candidate := range sceneObj.Objects {
		if candidate == obj {
			index = i
			break
		}
	}

	point := ray.At(dist)
	return InspectResult{
		Hit:      true,
		Index:    index,
		Object:   obj,
		Distance: dist,
		Point:    point,
		Normal:   geometry.NormalAt(obj, point),
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(obj geometry.Object) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := obj.(type) {
	case *geometry.Sphere:
		properties["center"] = toArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = toArray(geom.Point)
		properties["normal"] = toArray(geom.Normal)
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// extractSurfaceInfo extracts the shading coefficients of an object
func extractSurfaceInfo(surface geometry.Surface) map[string]interface{} {
	return map[string]interface{}{
		"color":    toArray(surface.Color),
		"specular": surface.Specular,
		"lambert":  surface.Lambert,
		"ambient":  surface.Ambient,
	}
}

// handleInspect handles ray casting inspection requests against the demo scene
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	params, err := parseSceneParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	if pixelX < 0 || pixelX >= params.Width || pixelY < 0 || pixelY >= params.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj := scene.NewDefaultScene(params.T)
	result := inspectPixel(sceneObj, params.Width, params.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, ObjectIndex: -1})
		return
	}

	geometryType, geometryProps := extractGeometryInfo(result.Object)

	lightsVisible := make([]bool, len(sceneObj.Lights))
	for i, light := range sceneObj.Lights {
		lightsVisible[i] = integrator.IsLightVisible(result.Point, sceneObj, light)
	}

	response := InspectResponse{
		Hit:           true,
		ObjectIndex:   result.Index,
		GeometryType:  geometryType,
		Point:         toArray(result.Point),
		Normal:        toArray(result.Normal),
		Distance:      result.Distance,
		Color:         toArray(integrator.SurfaceColorAt(result.Object, result.Point, sceneObj.Checker)),
		LightsVisible: lightsVisible,
		Lambert:       integrator.LambertAmount(sceneObj, result.Point, result.Normal),
		Properties: map[string]interface{}{
			"geometry": geometryProps,
			"surface":  extractSurfaceInfo(result.Object.Material()),
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// toArray converts a vector for JSON output, mapping non-finite components to 0
func toArray(v core.Vec3) [3]float64 {
	out := [3]float64{v.X, v.Y, v.Z}
	for i, c := range out {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			out[i] = 0
		}
	}
	return out
}
