package renderer

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// Canvas is the size of the output frame in pixels
type Canvas struct {
	Width  int
	Height int
}

// Validate checks that the canvas can hold at least one pixel
func (c Canvas) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas must be at least 1x1, got %dx%d", c.Width, c.Height)
	}
	return nil
}

// BufferSize returns the number of RGBA channel values in a frame
func (c Canvas) BufferSize() int {
	return c.Width * c.Height * 4
}

// Viewport maps pixel coordinates to primary rays for a camera
type Viewport struct {
	origin      core.Vec3
	eye         core.Vec3 // Unit view direction
	right       core.Vec3 // Unit image-plane x axis
	up          core.Vec3 // Unit image-plane y axis
	extent      rect.Rect // Image plane at unit distance: [-halfWidth,halfWidth]x[-halfHeight,halfHeight]
	pixelWidth  float64
	pixelHeight float64
}

// NewViewport builds the camera basis and image-plane geometry.
// The basis degenerates (NaN) when the camera looks straight up or down.
func NewViewport(camera scene.Camera, canvas Canvas) *Viewport {
	eye := camera.LookAt.Subtract(camera.Point).Normalize()
	right := eye.Cross(core.Up).Normalize()
	up := right.Cross(eye).Normalize()

	fovRadians := math.Pi * (camera.FOV / 2) / 180
	heightWidthRatio := float64(canvas.Height) / float64(canvas.Width)
	halfWidth := math.Tan(fovRadians)
	halfHeight := heightWidthRatio * halfWidth

	// Edge pixels sit exactly on the extent boundary, so the step divides by (n-1)
	return &Viewport{
		origin:      camera.Point,
		eye:         eye,
		right:       right,
		up:          up,
		extent:      rect.Rect{LLx: -halfWidth, LLy: -halfHeight, URx: halfWidth, URy: halfHeight},
		pixelWidth:  halfWidth * 2 / float64(canvas.Width-1),
		pixelHeight: halfHeight * 2 / float64(canvas.Height-1),
	}
}

// Extent returns the image-plane rectangle covered by the pixel grid
func (v *Viewport) Extent() rect.Rect {
	return v.extent
}

// Basis returns the view direction and the image-plane axes
func (v *Viewport) Basis() (eye, right, up core.Vec3) {
	return v.eye, v.right, v.up
}

// Offset returns the image-plane position of pixel (x, y)
func (v *Viewport) Offset(x, y int) vec.Vec2 {
	return vec.Vec2{
		X: float64(x)*v.pixelWidth + v.extent.LLx,
		Y: float64(y)*v.pixelHeight + v.extent.LLy,
	}
}

// GetRay returns the primary ray through pixel (x, y)
func (v *Viewport) GetRay(x, y int) core.Ray {
	offset := v.Offset(x, y)
	direction := v.eye.Add3(
		v.right.Multiply(offset.X),
		v.up.Multiply(offset.Y),
	).Normalize()
	return core.NewRay(v.origin, direction)
}
