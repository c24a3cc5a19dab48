package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

func assertVec(t *testing.T, name string, expected, got core.Vec3) {
	t.Helper()
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("%s: expected %v, got %v", name, expected, got)
	}
}

// A 90 degree camera at the origin looking down -Z has a unit half-width image plane
func newTestViewport(width, height int) *Viewport {
	camera := scene.Camera{
		Point:  core.Zero,
		LookAt: core.NewVec3(0, 0, -1),
		FOV:    90,
	}
	return NewViewport(camera, Canvas{Width: width, Height: height})
}

func TestViewportBasis(t *testing.T) {
	eye, right, up := newTestViewport(3, 3).Basis()

	assertVec(t, "eye", core.NewVec3(0, 0, -1), eye)
	assertVec(t, "right", core.NewVec3(1, 0, 0), right)
	assertVec(t, "up", core.NewVec3(0, 1, 0), up)

	if math.Abs(eye.Dot(right)) > 1e-12 || math.Abs(eye.Dot(up)) > 1e-12 || math.Abs(right.Dot(up)) > 1e-12 {
		t.Errorf("Expected an orthogonal basis, got eye=%v right=%v up=%v", eye, right, up)
	}
}

func TestViewportExtent(t *testing.T) {
	// 5x3 canvas: halfHeight = 3/5 * halfWidth
	extent := newTestViewport(5, 3).Extent()

	if math.Abs(extent.URx-1) > 1e-12 || math.Abs(extent.LLx+1) > 1e-12 {
		t.Errorf("Expected x extent [-1,1], got [%f,%f]", extent.LLx, extent.URx)
	}
	if math.Abs(extent.URy-0.6) > 1e-12 || math.Abs(extent.LLy+0.6) > 1e-12 {
		t.Errorf("Expected y extent [-0.6,0.6], got [%f,%f]", extent.LLy, extent.URy)
	}
}

func TestViewportOffsetCoversExtent(t *testing.T) {
	viewport := newTestViewport(5, 3)

	tests := []struct {
		name  string
		x, y  int
		wantX float64
		wantY float64
	}{
		{"first pixel", 0, 0, -1, -0.6},
		{"last pixel", 4, 2, 1, 0.6},
		{"center pixel", 2, 1, 0, 0},
		{"second column", 1, 0, -0.5, -0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset := viewport.Offset(tt.x, tt.y)
			if math.Abs(offset.X-tt.wantX) > 1e-12 || math.Abs(offset.Y-tt.wantY) > 1e-12 {
				t.Errorf("Expected offset (%f,%f), got (%f,%f)", tt.wantX, tt.wantY, offset.X, offset.Y)
			}
		})
	}
}

func TestViewportGetRay(t *testing.T) {
	viewport := newTestViewport(3, 3)

	center := viewport.GetRay(1, 1)
	assertVec(t, "center origin", core.Zero, center.Origin)
	assertVec(t, "center direction", core.NewVec3(0, 0, -1), center.Direction)

	// Row 0 maps to the bottom of the image plane
	corner := viewport.GetRay(0, 0)
	assertVec(t, "corner direction", core.NewVec3(-1, -1, -1).Normalize(), corner.Direction)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			length := viewport.GetRay(x, y).Direction.Length()
			if math.Abs(length-1) > 1e-12 {
				t.Errorf("Pixel (%d,%d): expected unit direction, got length %f", x, y, length)
			}
		}
	}
}

func TestViewportStraightUpIsDegenerate(t *testing.T) {
	camera := scene.Camera{Point: core.Zero, LookAt: core.NewVec3(0, 5, 0), FOV: 45}
	ray := NewViewport(camera, Canvas{Width: 3, Height: 3}).GetRay(1, 1)

	if ray.Direction.IsFinite() {
		t.Errorf("Expected a non-finite direction for a camera looking straight up, got %v", ray.Direction)
	}
}

func TestCanvasValidate(t *testing.T) {
	tests := []struct {
		canvas  Canvas
		wantErr bool
	}{
		{Canvas{Width: 1, Height: 1}, false},
		{Canvas{Width: 640, Height: 480}, false},
		{Canvas{Width: 0, Height: 480}, true},
		{Canvas{Width: 640, Height: -1}, true},
	}

	for _, tt := range tests {
		err := tt.canvas.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Canvas %dx%d: expected error=%v, got %v", tt.canvas.Width, tt.canvas.Height, tt.wantErr, err)
		}
	}

	if size := (Canvas{Width: 4, Height: 3}).BufferSize(); size != 48 {
		t.Errorf("Expected buffer size 48, got %d", size)
	}
}
