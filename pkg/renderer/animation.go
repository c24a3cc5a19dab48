package renderer

import (
	"context"
	"image"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// SceneFunc builds a fresh scene for animation time t
type SceneFunc func(t float64) *scene.Scene

// AnimationConfig contains configuration for rendering a sequence of frames
type AnimationConfig struct {
	Frames     int     // Number of frames to render
	StartT     float64 // Animation time of the first frame
	OrbitSpeed float64 // UI orbit speed; t advances by OrbitSpeed/250 per frame
}

// DefaultAnimationConfig returns sensible default values
func DefaultAnimationConfig() AnimationConfig {
	return AnimationConfig{
		Frames:     60,
		StartT:     0,
		OrbitSpeed: 25,
	}
}

// FrameResult contains one finished frame of an animation
type FrameResult struct {
	FrameNumber int     // 1-based frame index
	T           float64 // Animation time the scene was built for
	Image       *image.RGBA
	Stats       RenderStats
	IsLast      bool
}

// Animator renders a sequence of independent frames, rebuilding the scene for each one
type Animator struct {
	sceneFn SceneFunc
	canvas  Canvas
	render  RenderConfig
	config  AnimationConfig
	logger  core.Logger
}

// NewAnimator creates a new animator
func NewAnimator(sceneFn SceneFunc, canvas Canvas, render RenderConfig, config AnimationConfig, logger core.Logger) *Animator {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Animator{
		sceneFn: sceneFn,
		canvas:  canvas,
		render:  render,
		config:  config,
		logger:  logger,
	}
}

// TimeAt returns the animation time of the given 1-based frame
func (a *Animator) TimeAt(frame int) float64 {
	return a.config.StartT + float64(frame-1)*scene.OrbitStep(a.config.OrbitSpeed)
}

// RenderAnimation renders frames on a background goroutine and streams them on the returned channel.
// Cancellation is checked between frames; a frame that has started is always finished.
// The error channel receives at most one error and is closed when rendering stops.
func (a *Animator) RenderAnimation(ctx context.Context) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(frameChan)
		defer close(errChan)

		a.logger.Printf("Starting animation with %d frames...\n", a.config.Frames)

		for frame := 1; frame <= a.config.Frames; frame++ {
			select {
			case <-ctx.Done():
				a.logger.Printf("Animation cancelled before frame %d\n", frame)
				errChan <- ctx.Err()
				return
			default:
			}

			t := a.TimeAt(frame)
			raytracer := NewRaytracer(a.sceneFn(t), a.canvas, a.render, a.logger)
			img, stats, err := raytracer.RenderFrame()
			if err != nil {
				errChan <- err
				return
			}

			result := FrameResult{
				FrameNumber: frame,
				T:           t,
				Image:       img,
				Stats:       stats,
				IsLast:      frame == a.config.Frames,
			}

			select {
			case frameChan <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return frameChan, errChan
}
