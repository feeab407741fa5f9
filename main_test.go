package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// bufferLogger collects log output for assertions
type bufferLogger struct {
	buf bytes.Buffer
}

func (l *bufferLogger) Printf(format string, args ...interface{}) {
	l.buf.WriteString(strings.TrimSpace(fmt.Sprintf(format, args...)) + "\n")
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"spheres scene", "spheres", false},
		{"quads scene", "quads", false},
		{"single sphere scene", "single-sphere", false},
		{"hollow glass scene", "hollow-glass", false},

		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType, 64, 48, 1)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene.SamplingConfig.Width != 64 || scene.SamplingConfig.Height != 48 {
				t.Errorf("Scene sampling size should follow the request, got %dx%d",
					scene.SamplingConfig.Width, scene.SamplingConfig.Height)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, err := parseFlags(nil, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if opts.width != 1200 || opts.height != 800 || opts.samples != 10 || opts.depth != 50 {
			t.Errorf("Unexpected defaults %+v", opts)
		}
		if opts.sceneName != "spheres" || opts.output != "output.png" {
			t.Errorf("Unexpected default scene or output: %+v", opts)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		args := []string{"-scene", "quads", "-width", "320", "-height", "240", "-samples", "3",
			"-depth", "7", "-seed", "99", "-workers", "2", "-tile-size", "16", "-preview-every", "5",
			"-iterative", "-output", "out/q.png"}
		opts, err := parseFlags(args, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		expected := options{
			sceneName: "quads", width: 320, height: 240, samples: 3, depth: 7, seed: 99,
			workers: 2, tileSize: 16, previewEvery: 5, iterative: true, output: "out/q.png",
		}
		if opts != expected {
			t.Errorf("Expected %+v, got %+v", expected, opts)
		}
	})

	t.Run("errors", func(t *testing.T) {
		for _, args := range [][]string{
			{"-width", "wide"},
			{"-unknown"},
			{"stray"},
		} {
			if _, err := parseFlags(args, &bytes.Buffer{}); err == nil {
				t.Errorf("Expected error for %v", args)
			}
		}
	})
}

func TestPrintHelp(t *testing.T) {
	var out bytes.Buffer
	printHelp(&out)
	for _, want := range []string{"-samples", "-preview-every", "spheres", "hollow-glass"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Help output should mention %q", want)
		}
	}
}

func TestRun_WritesPNG(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "renders", "sphere.png")

	opts, err := parseFlags([]string{
		"-scene", "single-sphere", "-width", "24", "-height", "16", "-samples", "2",
		"-depth", "4", "-tile-size", "8", "-preview-every", "2", "-output", output,
	}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	logger := &bufferLogger{}
	if err := run(opts, logger); err != nil {
		t.Fatalf("run: %v", err)
	}

	file, err := os.Open(output)
	if err != nil {
		t.Fatalf("Output not written: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 24 || img.Bounds().Dy() != 16 {
		t.Errorf("Unexpected image size %v", img.Bounds())
	}
	if !strings.Contains(logger.buf.String(), "Preview") {
		t.Error("Expected preview log lines")
	}
}

func TestRun_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts options
	}{
		{"zero samples", options{sceneName: "quads", width: 8, height: 8, samples: 0, tileSize: 4, output: "x.png"}},
		{"unknown scene", options{sceneName: "nope", width: 8, height: 8, samples: 1, tileSize: 4, output: "x.png"}},
		{"bad tile size", options{sceneName: "quads", width: 8, height: 8, samples: 1, tileSize: 0, output: "x.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.opts, &bufferLogger{}); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
