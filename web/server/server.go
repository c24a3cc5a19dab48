package server

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-realtime-raytracer/pkg/loaders"
	"github.com/df07/go-realtime-raytracer/pkg/output"
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// Request limits shared by every endpoint
const (
	DefaultWidth      = 320
	DefaultHeight     = 240
	MinSize           = 2
	MaxSize           = 2000
	MaxSceneBytes     = 1 << 20
	DefaultFrames     = 60
	MaxFrames         = 600
	DefaultOrbitSpeed = 25.0
	MaxOrbitSpeed     = 250.0
)

// Server handles web requests for the realtime raytracer
type Server struct {
	port   int
	module *renderer.Module
}

// NewServer creates a new web server. The render module starts out not ready.
func NewServer(port int) *Server {
	return &Server{
		port:   port,
		module: renderer.NewModule(),
	}
}

// SceneParams holds the parameters shared by the scene-based endpoints
type SceneParams struct {
	Width  int     // Image width
	Height int     // Image height
	T      float64 // Orbit position of the demo scene
}

// Start loads the render module in the background and serves until the listener fails
func (s *Server) Start() error {
	go func() {
		if err := s.LoadModule(); err != nil {
			log.Printf("Render module failed to load: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Routes())
}

// LoadModule warms the render module up with the demo scene
func (s *Server) LoadModule() error {
	data, err := loaders.MarshalScene(scene.NewDefaultScene(0))
	if err != nil {
		return err
	}
	if err := s.module.Load(string(data)); err != nil {
		return err
	}
	log.Printf("Render module ready")
	return nil
}

// Routes returns the handler for every endpoint
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scene", s.handleScene)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/frame", s.handleFrame)
	mux.HandleFunc("/api/animate", s.handleAnimate)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"ready":  s.module.Ready(),
	})
}

// handleScene returns the demo scene at orbit position t in the JSON wire format
func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	t, err := parseFloatParam(r.URL.Query(), "t", 0, -1e6, 1e6)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := loaders.MarshalScene(scene.NewDefaultScene(t))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleScenes lists the built-in scene and the scene files under scenes/
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(scene.FindScenesDir())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleFrame renders a posted JSON scene through the render module.
// format=raw returns little-endian float32 samples; png, bmp and tiff return an encoded image.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST a JSON scene")
		return
	}

	query := r.URL.Query()
	width, err := parseIntParam(query, "width", DefaultWidth, MinSize, MaxSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	height, err := parseIntParam(query, "height", DefaultHeight, MinSize, MaxSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	raw := query.Get("format") == "raw"
	format := output.FormatPNG
	if f := query.Get("format"); f != "" && !raw {
		if format, err = output.ParseFormat(f); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxSceneBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read scene: %v", err))
		return
	}

	samples, ok, err := s.module.Render(string(body), float64(width), float64(height))
	if !ok {
		// The client skips this frame and asks again
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "render module not ready")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	contentType := "application/octet-stream"
	if raw {
		if err := binary.Write(&buf, binary.LittleEndian, samples); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	} else {
		img, err := renderer.Blit(samples, width, height)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := output.Encode(&buf, img, format); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		contentType = format.ContentType()
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Frame-Width", strconv.Itoa(width))
	w.Header().Set("X-Frame-Height", strconv.Itoa(height))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseSceneParams parses the width, height and orbit position shared by scene endpoints
func parseSceneParams(values url.Values) (*SceneParams, error) {
	params := &SceneParams{}

	var err error
	if params.Width, err = parseIntParam(values, "width", DefaultWidth, MinSize, MaxSize); err != nil {
		return nil, err
	}
	if params.Height, err = parseIntParam(values, "height", DefaultHeight, MinSize, MaxSize); err != nil {
		return nil, err
	}
	if params.T, err = parseFloatParam(values, "t", 0, -1e6, 1e6); err != nil {
		return nil, err
	}

	return params, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if math.IsNaN(parsed) || parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
