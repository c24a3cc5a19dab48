package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// AnimateRequest holds the parameters of an orbit animation stream
type AnimateRequest struct {
	SceneParams
	Frames     int     // Number of frames to stream
	OrbitSpeed float64 // UI orbit speed; t advances by OrbitSpeed/250 per frame
}

// FrameUpdate is one animation frame sent via SSE
type FrameUpdate struct {
	FrameNumber    int     `json:"frameNumber"`
	TotalFrames    int     `json:"totalFrames"`
	T              float64 `json:"t"`
	ImageData      string  `json:"imageData"` // Base64 encoded PNG
	ElapsedMs      int64   `json:"elapsedMs"` // Time since the stream started
	FrameMs        int64   `json:"frameMs"`   // Time spent rendering this frame
	PrimaryRays    int     `json:"primaryRays"`
	PrimitiveCount int     `json:"primitiveCount"`
	IsComplete     bool    `json:"isComplete"`
}

// handleAnimate streams the orbiting demo scene frame by frame via SSE,
// interleaved with the renderer's console messages.
func (s *Server) handleAnimate(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	req, err := parseAnimateRequest(r)
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	ctx := r.Context()
	consoleChan, webLogger := s.setupConsoleLogging()

	animator := renderer.NewAnimator(
		scene.NewDefaultScene,
		renderer.Canvas{Width: req.Width, Height: req.Height},
		renderer.DefaultRenderConfig(),
		renderer.AnimationConfig{Frames: req.Frames, StartT: req.T, OrbitSpeed: req.OrbitSpeed},
		webLogger,
	)

	primitiveCount := scene.NewDefaultScene(req.T).GetPrimitiveCount()
	startTime := time.Now()
	frameChan, errChan := animator.RenderAnimation(ctx)

	// All writes to w happen on this goroutine
	for frameChan != nil || errChan != nil {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)

		case frame, ok := <-frameChan:
			if !ok {
				frameChan = nil // Channel closed
				continue
			}
			s.drainConsole(w, consoleChan)
			if err := s.sendFrame(w, frame, req.Frames, primitiveCount, startTime); err != nil {
				log.Printf("Error sending frame %d: %v", frame.FrameNumber, err)
				return
			}

		case err, ok := <-errChan:
			if !ok {
				errChan = nil // Channel closed
				continue
			}
			if err != nil && ctx.Err() == nil {
				s.drainConsole(w, consoleChan)
				s.sendSSEEvent(w, "error", fmt.Sprintf("Rendering failed: %v", err))
				return
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}

	s.drainConsole(w, consoleChan)
	s.sendSSEEvent(w, "complete", "Animation completed")
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// drainConsole forwards every console message that is already queued
func (s *Server) drainConsole(w http.ResponseWriter, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)
		default:
			return
		}
	}
}

func (s *Server) sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling console message: %v", err)
		return
	}
	s.sendSSEEvent(w, "console", string(data))
}

// sendFrame encodes one finished frame and sends it as a "frame" event
func (s *Server) sendFrame(w http.ResponseWriter, frame renderer.FrameResult, totalFrames, primitiveCount int, startTime time.Time) error {
	imageData, err := imageToBase64PNG(frame.Image)
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	update := FrameUpdate{
		FrameNumber:    frame.FrameNumber,
		TotalFrames:    totalFrames,
		T:              frame.T,
		ImageData:      imageData,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		FrameMs:        frame.Stats.Elapsed.Milliseconds(),
		PrimaryRays:    frame.Stats.PrimaryRays,
		PrimitiveCount: primitiveCount,
		IsComplete:     frame.IsLast,
	}

	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "frame", string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}

// parseAnimateRequest parses request parameters
func parseAnimateRequest(r *http.Request) (*AnimateRequest, error) {
	values := r.URL.Query()

	params, err := parseSceneParams(values)
	if err != nil {
		return nil, err
	}

	req := &AnimateRequest{SceneParams: *params}
	if req.Frames, err = parseIntParam(values, "frames", DefaultFrames, 1, MaxFrames); err != nil {
		return nil, err
	}
	if req.OrbitSpeed, err = parseFloatParam(values, "orbitSpeed", DefaultOrbitSpeed, 0, MaxOrbitSpeed); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height*req.Frames > 800*600*60 {
		log.Printf("Render warning: Large animation may stream slowly")
	}

	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
