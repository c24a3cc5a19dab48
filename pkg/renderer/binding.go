package renderer

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/df07/go-realtime-raytracer/pkg/loaders"
)

// Binding is the single entry point exposed across a runtime boundary:
// a JSON scene plus image size in, unclamped RGBA float samples out.
func Binding(sceneJSON string, width, height float64) ([]float32, error) {
	s, err := loaders.ParseScene([]byte(sceneJSON))
	if err != nil {
		return nil, err
	}

	canvas := Canvas{Width: int(width), Height: int(height)}
	raytracer := NewRaytracer(s, canvas, DefaultRenderConfig(), NewDiscardLogger())
	samples, _, err := raytracer.RenderSamples()
	if err != nil {
		return nil, fmt.Errorf("failed to render scene: %w", err)
	}
	return samples, nil
}

// Module guards Binding behind a readiness flag, the way a compiled module is
// unavailable until it has been instantiated.
type Module struct {
	ready atomic.Bool
}

// NewModule creates a module that is not yet ready
func NewModule() *Module {
	return &Module{}
}

// Load warms the module up with a tiny render of sceneJSON and marks it ready
func (m *Module) Load(sceneJSON string) error {
	if _, err := Binding(sceneJSON, 2, 2); err != nil {
		return fmt.Errorf("module warm-up failed: %w", err)
	}
	m.ready.Store(true)
	return nil
}

// Ready reports whether the module can render
func (m *Module) Ready() bool {
	return m.ready.Load()
}

// Render calls Binding once the module is ready. Before that it reports ok=false
// and the caller should skip the frame.
func (m *Module) Render(sceneJSON string, width, height float64) (samples []float32, ok bool, err error) {
	if !m.Ready() {
		return nil, false, nil
	}
	samples, err = Binding(sceneJSON, width, height)
	if err != nil {
		return nil, true, err
	}
	return samples, true, nil
}

// Blit converts binding samples into an RGBA image, saturating every channel
// to a byte the way a clamped canvas buffer does.
func Blit(samples []float32, width, height int) (*image.RGBA, error) {
	canvas := Canvas{Width: width, Height: height}
	if err := canvas.Validate(); err != nil {
		return nil, err
	}
	if len(samples) != canvas.BufferSize() {
		return nil, fmt.Errorf("expected %d samples for %dx%d, got %d", canvas.BufferSize(), width, height, len(samples))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, v := range samples {
		img.Pix[i] = toByte(float64(v))
	}
	return img, nil
}
