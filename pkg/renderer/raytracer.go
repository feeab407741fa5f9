package renderer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/integrator"
)

// Scene is what the renderer needs from a scene: the geometry and the camera.
// Both must be safe for concurrent reads.
type Scene interface {
	GetWorld() *geometry.World
	GetCamera() *Camera
}

// SamplingConfig contains the parameters that determine the rendered image
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Camera rays averaged per pixel
	MaxDepth        int   // Maximum number of bounces per path
	Seed            int64 // Base seed; tile generators derive from it
}

// DefaultSamplingConfig returns the default image and sampling parameters
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           1200,
		Height:          800,
		SamplesPerPixel: 10,
		MaxDepth:        50,
		Seed:            42,
	}
}

// Validate reports the first invalid field
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("width must be positive, got %d", c.Width)
	case c.Height <= 0:
		return fmt.Errorf("height must be positive, got %d", c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

// RenderConfig controls how the work is scheduled. None of it changes the image.
type RenderConfig struct {
	TileSize     int  // Edge length of each square tile
	NumWorkers   int  // Number of worker goroutines (0 = auto-detect)
	PreviewEvery int  // Tiles between preview snapshots (0 = no previews)
	JumpX, JumpY int  // Interleave stride of the tile submission order
	Iterative    bool // Use the loop form of the radiance estimator
}

// DefaultRenderConfig returns sensible defaults for scheduling
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:     32,
		NumWorkers:   0,
		PreviewEvery: 0,
		JumpX:        4,
		JumpY:        4,
	}
}

// Validate reports the first invalid field
func (c RenderConfig) Validate() error {
	switch {
	case c.TileSize <= 0:
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	case c.NumWorkers < 0:
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	case c.PreviewEvery < 0:
		return fmt.Errorf("preview interval must not be negative, got %d", c.PreviewEvery)
	case c.JumpX <= 0 || c.JumpY <= 0:
		return fmt.Errorf("interleave jumps must be positive, got %dx%d", c.JumpX, c.JumpY)
	}
	return nil
}

// Preview is a snapshot of a render in progress. Pixels is a copy owned by
// the receiver; tiles not yet rendered are black.
type Preview struct {
	Pixels         []core.Vec3
	Width, Height  int
	TilesCompleted int
	TotalTiles     int
}

// PreviewFunc receives preview snapshots on the coordinating goroutine
type PreviewFunc func(Preview)

// Raytracer renders a scene into a linear color buffer
type Raytracer struct {
	scene      Scene
	sampling   SamplingConfig
	config     RenderConfig
	integrator integrator.Integrator
	logger     core.Logger

	pixelsDone atomic.Int64
}

// NewRaytracer creates a raytracer. A nil logger discards output.
func NewRaytracer(scene Scene, sampling SamplingConfig, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if scene == nil || scene.GetWorld() == nil || scene.GetCamera() == nil {
		return nil, errors.New("scene must provide a world and a camera")
	}
	if err := sampling.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	if logger == nil {
		logger = discardLogger{}
	}

	return &Raytracer{
		scene:      scene,
		sampling:   sampling,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(sampling.MaxDepth, config.Iterative),
		logger:     logger,
	}, nil
}

// Render renders the full image and returns it row-major, row 0 at the top
func (rt *Raytracer) Render() ([]core.Vec3, RenderStats) {
	return rt.RenderWithPreview(context.Background(), 0, nil)
}

// RenderWithPreview renders the full image, calling callback with a snapshot
// after every `every` completed tiles. Cancelling ctx stops further previews;
// the render itself always runs to completion.
func (rt *Raytracer) RenderWithPreview(ctx context.Context, every int, callback PreviewFunc) ([]core.Vec3, RenderStats) {
	start := time.Now()
	width, height := rt.sampling.Width, rt.sampling.Height
	rt.pixelsDone.Store(0)

	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.sampling.Seed, rt.config.JumpX, rt.config.JumpY)
	tileRenderer := NewTileRenderer(rt.scene, rt.integrator, width, height, rt.sampling.SamplesPerPixel)
	pool := NewWorkerPool(tileRenderer, len(tiles), rt.config.NumWorkers, func(n int) {
		rt.pixelsDone.Add(int64(n))
	})

	rt.logger.Printf("Rendering %dx%d at %d samples per pixel: %d tiles on %d workers\n",
		width, height, rt.sampling.SamplesPerPixel, len(tiles), pool.GetNumWorkers())

	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	buffer := make([]core.Vec3, width*height)
	stats := RenderStats{SamplesPerPixel: rt.sampling.SamplesPerPixel}

	// Only this goroutine writes the buffer
	for completed := 1; completed <= len(tiles); completed++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		writeTile(buffer, width, result.Tile, result.Pixels)
		stats.add(result.Stats)

		if callback != nil && every > 0 && (completed%every == 0 || completed == len(tiles)) && ctx.Err() == nil {
			callback(Preview{
				Pixels:         append([]core.Vec3(nil), buffer...),
				Width:          width,
				Height:         height,
				TilesCompleted: completed,
				TotalTiles:     len(tiles),
			})
		}
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	rt.logger.Printf("Render completed in %v (%d samples)\n", stats.Duration, stats.TotalSamples)
	return buffer, stats
}

// writeTile copies a tile's pixels into the image buffer
func writeTile(buffer []core.Vec3, width int, tile *Tile, pixels []core.Vec3) {
	bounds := tile.Bounds
	rowWidth := bounds.Dx()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		src := pixels[(y-bounds.Min.Y)*rowWidth : (y-bounds.Min.Y+1)*rowWidth]
		copy(buffer[y*width+bounds.Min.X:], src)
	}
}

// Progress returns the number of pixels finished so far and the total. It is
// safe to call from any goroutine while a render runs.
func (rt *Raytracer) Progress() (done, total int) {
	return int(rt.pixelsDone.Load()), rt.sampling.Width * rt.sampling.Height
}

// GetSamplingConfig returns the configuration this raytracer renders with
func (rt *Raytracer) GetSamplingConfig() SamplingConfig {
	return rt.sampling
}

// Render renders scene with default scheduling and seed and returns the
// row-major color buffer. It panics on invalid dimensions.
func Render(scene Scene, width, height, numSamples, maxDepth int) []core.Vec3 {
	sampling := DefaultSamplingConfig()
	sampling.Width = width
	sampling.Height = height
	sampling.SamplesPerPixel = numSamples
	sampling.MaxDepth = maxDepth

	rt, err := NewRaytracer(scene, sampling, DefaultRenderConfig(), nil)
	if err != nil {
		panic(fmt.Sprintf("renderer.Render: %v", err))
	}
	buffer, _ := rt.Render()
	return buffer
}
