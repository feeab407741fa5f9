package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName    string
	width        int
	height       int
	samples      int
	depth        int
	seed         int64
	workers      int
	tileSize     int
	previewEvery int
	iterative    bool
	output       string
	help         bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if opts.help {
		printHelp(os.Stdout)
		return
	}

	if err := run(opts, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet registers the command line flags, bound to opts
func newFlagSet(opts *options, out io.Writer) *flag.FlagSet {
	defaults := renderer.DefaultSamplingConfig()
	renderDefaults := renderer.DefaultRenderConfig()

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&opts.sceneName, "scene", "spheres", "Scene to render (see -help for the list)")
	fs.IntVar(&opts.width, "width", defaults.Width, "Width of the output image")
	fs.IntVar(&opts.height, "height", defaults.Height, "Height of the output image")
	fs.IntVar(&opts.samples, "samples", defaults.SamplesPerPixel, "Number of samples per pixel")
	fs.IntVar(&opts.depth, "depth", defaults.MaxDepth, "Maximum number of bounces per path")
	fs.Int64Var(&opts.seed, "seed", defaults.Seed, "Random seed; the same seed reproduces the same image")
	fs.IntVar(&opts.workers, "workers", renderDefaults.NumWorkers, "Number of parallel workers (0 = auto-detect)")
	fs.IntVar(&opts.tileSize, "tile-size", renderDefaults.TileSize, "Edge length of render tiles in pixels")
	fs.IntVar(&opts.previewEvery, "preview-every", renderDefaults.PreviewEvery, "Rewrite the output file every N finished tiles (0 = only at the end)")
	fs.BoolVar(&opts.iterative, "iterative", false, "Use the iterative radiance estimator")
	fs.StringVar(&opts.output, "output", "output.png", "Output PNG path")
	fs.BoolVar(&opts.help, "help", false, "Show help information")
	return fs
}

// parseFlags parses command line arguments into options
func parseFlags(args []string, errOut io.Writer) (options, error) {
	var opts options
	fs := newFlagSet(&opts, errOut)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// printHelp describes usage and the available scenes
func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Stochastic Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	newFlagSet(&options{}, w).PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListSceneInfo() {
		fmt.Fprintf(w, "  %-14s %s\n", info.ID, info.Description)
	}
}

// createScene builds the named scene for the requested image size
func createScene(name string, width, height int, seed int64) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("scene name must not be empty")
	}
	s, err := scene.NewScene(name, width, height, seed)
	if err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}
	return s, nil
}

// run renders the configured scene and writes it as a PNG
func run(opts options, logger core.Logger) error {
	sampling := renderer.SamplingConfig{
		Width:           opts.width,
		Height:          opts.height,
		SamplesPerPixel: opts.samples,
		MaxDepth:        opts.depth,
		Seed:            opts.seed,
	}
	if err := sampling.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	config := renderer.DefaultRenderConfig()
	config.NumWorkers = opts.workers
	config.TileSize = opts.tileSize
	config.PreviewEvery = opts.previewEvery
	config.Iterative = opts.iterative

	selectedScene, err := createScene(opts.sceneName, opts.width, opts.height, opts.seed)
	if err != nil {
		return err
	}
	logger.Printf("Scene %q: %d primitives\n", selectedScene.Name, selectedScene.GetPrimitiveCount())

	rt, err := renderer.NewRaytracer(selectedScene, sampling, config, logger)
	if err != nil {
		return fmt.Errorf("creating raytracer: %w", err)
	}

	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	// Preview write failures are reported but do not stop the render
	onPreview := func(p renderer.Preview) {
		if err := writePNG(opts.output, renderer.ToImage(p.Pixels, p.Width, p.Height)); err != nil {
			logger.Printf("Preview write failed: %v\n", err)
			return
		}
		logger.Printf("Preview %d/%d tiles written to %s\n", p.TilesCompleted, p.TotalTiles, opts.output)
	}

	startTime := time.Now()
	buffer, stats := rt.RenderWithPreview(context.Background(), config.PreviewEvery, onPreview)
	logger.Printf("Generated image in %.2f seconds (%.0f samples/s)\n",
		time.Since(startTime).Seconds(), stats.SamplesPerSecond())

	if err := writePNG(opts.output, renderer.ToImage(buffer, opts.width, opts.height)); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", opts.output)
	return nil
}

// writePNG encodes img to path, replacing any existing file
func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
