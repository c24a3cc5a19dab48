package renderer

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/integrator"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// RenderConfig contains rendering configuration
type RenderConfig struct {
	NumWorkers int // Number of parallel workers (0 = use CPU count, 1 = calling goroutine only)
	BandHeight int // Rows per worker task
	MaxDepth   int // Deepest reflection level that is still shaded
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers: 0,
		BandHeight: 16,
		MaxDepth:   integrator.DefaultMaxDepth,
	}
}

// pixelWriter stores the traced color of pixel (x, y) in an output buffer
type pixelWriter func(x, y int, color core.Vec3)

// Raytracer drives one frame: a primary ray per pixel, traced and written in row-major order
type Raytracer struct {
	scene      *scene.Scene
	canvas     Canvas
	config     RenderConfig
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a new raytracer for the scene and canvas
func NewRaytracer(s *scene.Scene, canvas Canvas, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:      s,
		canvas:     canvas,
		config:     config,
		integrator: integrator.NewWhittedIntegrator(config.MaxDepth),
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(i integrator.Integrator) {
	rt.integrator = i
}

// RenderFrame renders the scene into a new RGBA image
func (rt *Raytracer) RenderFrame() (*image.RGBA, RenderStats, error) {
	if err := rt.canvas.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	img := image.NewRGBA(image.Rect(0, 0, rt.canvas.Width, rt.canvas.Height))
	stats, err := rt.RenderInto(img)
	if err != nil {
		return nil, RenderStats{}, err
	}
	return img, stats, nil
}

// RenderInto overwrites every pixel of img, which must match the canvas exactly
func (rt *Raytracer) RenderInto(img *image.RGBA) (RenderStats, error) {
	if err := rt.canvas.Validate(); err != nil {
		return RenderStats{}, err
	}
	want := image.Rect(0, 0, rt.canvas.Width, rt.canvas.Height)
	if img.Bounds() != want {
		return RenderStats{}, fmt.Errorf("frame buffer bounds %v do not match canvas %v", img.Bounds(), want)
	}

	return rt.render(func(x, y int, color core.Vec3) {
		i := img.PixOffset(x, y)
		img.Pix[i+0] = toByte(color.X)
		img.Pix[i+1] = toByte(color.Y)
		img.Pix[i+2] = toByte(color.Z)
		img.Pix[i+3] = 255
	})
}

// RenderSamples renders the scene into unclamped per-channel float samples,
// RGBA interleaved and row-major, with alpha fixed at 255.
func (rt *Raytracer) RenderSamples() ([]float32, RenderStats, error) {
	if err := rt.canvas.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	samples := make([]float32, rt.canvas.BufferSize())
	stats, err := rt.render(func(x, y int, color core.Vec3) {
		i := (y*rt.canvas.Width + x) * 4
		samples[i+0] = float32(color.X)
		samples[i+1] = float32(color.Y)
		samples[i+2] = float32(color.Z)
		samples[i+3] = 255
	})
	if err != nil {
		return nil, RenderStats{}, err
	}
	return samples, stats, nil
}

// render traces every pixel, splitting rows into bands across the worker pool.
// Each pixel's write position depends only on (x, y), so the output does not
// depend on which worker finishes first.
func (rt *Raytracer) render(write pixelWriter) (RenderStats, error) {
	startTime := time.Now()
	viewport := NewViewport(rt.scene.Camera, rt.canvas)

	renderBand := func(bounds image.Rectangle) RenderStats {
		stats := RenderStats{Bands: 1}
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				color := rt.integrator.RayColor(viewport.GetRay(x, y), rt.scene)
				write(x, y, color)

				stats.TotalPixels++
				stats.PrimaryRays++
				if !color.IsFinite() {
					stats.NonFinitePixels++
				}
			}
		}
		return stats
	}

	bands := NewBandGrid(rt.canvas.Width, rt.canvas.Height, rt.config.BandHeight)

	var stats RenderStats
	if rt.config.NumWorkers == 1 || len(bands) == 1 {
		for _, band := range bands {
			stats.Merge(renderBand(band.Bounds))
		}
		stats.Workers = 1
	} else {
		var err error
		stats, err = rt.renderParallel(bands, renderBand)
		if err != nil {
			return RenderStats{}, err
		}
	}
	stats.Elapsed = time.Since(startTime)

	rt.logger.Printf("Frame %dx%d: %d rays in %v (%d workers, %d bands)\n",
		rt.canvas.Width, rt.canvas.Height, stats.PrimaryRays, stats.Elapsed, stats.Workers, stats.Bands)
	if stats.NonFinitePixels > 0 {
		rt.logger.Printf("Warning: %d pixels had non-finite colors; check the camera and light positions\n",
			stats.NonFinitePixels)
	}

	return stats, nil
}

// renderParallel submits every band to a worker pool and waits for all of them
func (rt *Raytracer) renderParallel(bands []*Band, renderBand BandRenderFunc) (RenderStats, error) {
	pool := NewWorkerPool(len(bands), rt.config.NumWorkers, renderBand)
	pool.Start()
	defer pool.Stop()

	for i, band := range bands {
		pool.SubmitTask(BandTask{Band: band, TaskID: i})
	}

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	for range bands {
		result, ok := pool.GetResult()
		if !ok {
			return RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			return RenderStats{}, result.Error
		}
		stats.Merge(result.Stats)
	}

	return stats, nil
}

// toByte saturates a color channel into [0, 255], rounding half to even.
// NaN maps to 0.
func toByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}
