package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-realtime-raytracer/pkg/loaders"
	"github.com/df07/go-realtime-raytracer/pkg/output"
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneType  string
	Width      int
	Height     int
	Frames     int
	OrbitSpeed float64
	StartT     float64
	Format     output.Format
	NumWorkers int
	MaxDepth   int
}

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene type: 'default', a scene name from scenes/ or path to a .json scene file")
	width := flag.Int("width", 640, "Image width in pixels")
	height := flag.Int("height", 480, "Image height in pixels")
	frames := flag.Int("frames", 1, "Number of orbit animation frames to render")
	orbitSpeed := flag.Float64("orbit-speed", 25, "Orbit speed; t advances by speed/250 per frame")
	startT := flag.Float64("t", 0, "Orbit position of the first frame")
	format := flag.String("format", "png", "Output format: png, bmp or tiff")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	maxDepth := flag.Int("max-depth", renderer.DefaultRenderConfig().MaxDepth, "Deepest reflection level that is still shaded")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	outputFormat, err := output.ParseFormat(*format)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	config := Config{
		SceneType:  *sceneType,
		Width:      *width,
		Height:     *height,
		Frames:     *frames,
		OrbitSpeed: *orbitSpeed,
		StartT:     *startT,
		Format:     outputFormat,
		NumWorkers: *workers,
		MaxDepth:   *maxDepth,
	}

	fmt.Println("Starting Realtime Raytracer...")
	files, err := run(config)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	for _, filename := range files {
		fmt.Printf("Render saved as %s\n", filename)
	}
}

func showHelp() {
	fmt.Println("Realtime Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.BuiltInScenes() {
		fmt.Printf("  %-20s - %s\n", info.ID, info.Description)
	}
	fileScenes, err := scene.ListJSONScenes(scene.FindScenesDir())
	if err == nil {
		for _, info := range fileScenes {
			fmt.Printf("  %-20s - %s\n", info.ID, info.DisplayName)
		}
	}
	fmt.Printf("  %-20s - %s\n", "<file>.json", "Scene in the JSON wire format (see /api/scene on the web server)")
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>[_NNN].<format>")
}

// run renders every requested frame and returns the files it wrote
func run(config Config) ([]string, error) {
	canvas := renderer.Canvas{Width: config.Width, Height: config.Height}
	if err := canvas.Validate(); err != nil {
		return nil, err
	}
	if config.Frames < 1 {
		return nil, fmt.Errorf("frames must be at least 1, got %d", config.Frames)
	}

	sceneFn, err := createSceneFunc(config.SceneType)
	if err != nil {
		return nil, err
	}

	outputDir := createOutputDir(config.SceneType)
	timestamp := time.Now().Format("20060102_150405")

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.NumWorkers = config.NumWorkers
	renderConfig.MaxDepth = config.MaxDepth

	animator := renderer.NewAnimator(sceneFn, canvas, renderConfig, renderer.AnimationConfig{
		Frames:     config.Frames,
		StartT:     config.StartT,
		OrbitSpeed: config.OrbitSpeed,
	}, renderer.NewDefaultLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startTime := time.Now()
	frameChan, errChan := animator.RenderAnimation(ctx)

	var files []string
	for frame := range frameChan {
		filename := outputFilename(outputDir, timestamp, frame.FrameNumber, config.Frames, config.Format)
		if err := output.SaveImage(filename, frame.Image, config.Format); err != nil {
			return files, err
		}
		files = append(files, filename)
	}
	if err := <-errChan; err != nil {
		return files, err
	}

	fmt.Printf("Rendered %d frame(s) in %v\n", len(files), time.Since(startTime))
	return files, nil
}

// createSceneFunc resolves a scene name into a per-frame scene constructor
func createSceneFunc(sceneType string) (renderer.SceneFunc, error) {
	if sceneType == "default" {
		fmt.Println("Using default scene...")
		return scene.NewDefaultScene, nil
	}

	path := sceneType
	if !strings.HasSuffix(strings.ToLower(sceneType), ".json") {
		var err error
		path, err = findNamedScene(sceneType)
		if err != nil {
			return nil, err
		}
	}

	fmt.Printf("Loading JSON scene: %s\n", path)
	loaded, err := loaders.LoadScene(path)
	if err != nil {
		return nil, err
	}
	// A loaded scene has no animation; every frame shows the same description
	return func(float64) *scene.Scene { return loaded }, nil
}

// findNamedScene looks a scene ID up among the discovered scene files
func findNamedScene(name string) (string, error) {
	fileScenes, err := scene.ListJSONScenes(scene.FindScenesDir())
	if err != nil {
		return "", err
	}
	for _, info := range fileScenes {
		if info.ID == name {
			return info.FilePath, nil
		}
	}
	return "", fmt.Errorf("unknown scene type: %q", name)
}

// createScene builds the scene for a single frame at orbit position t
func createScene(sceneType string, t float64) (*scene.Scene, error) {
	sceneFn, err := createSceneFunc(sceneType)
	if err != nil {
		return nil, err
	}
	return sceneFn(t), nil
}

// createOutputDir returns the output directory for a scene
func createOutputDir(sceneType string) string {
	base := sceneType
	if strings.HasSuffix(strings.ToLower(sceneType), ".json") {
		base = strings.TrimSuffix(filepath.Base(sceneType), filepath.Ext(sceneType))
	}
	return filepath.Join("output", base)
}

// outputFilename names a frame file; animations get a 1-based frame suffix
func outputFilename(outputDir, timestamp string, frame, totalFrames int, format output.Format) string {
	name := fmt.Sprintf("render_%s", timestamp)
	if totalFrames > 1 {
		name = fmt.Sprintf("%s_%03d", name, frame)
	}
	return filepath.Join(outputDir, name+format.Extension())
}
