package renderer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/integrator"
)

func TestWorkerPool_RendersEveryTask(t *testing.T) {
	width, height := 16, 12
	scene := unitSphereScene(width, height)
	tileRenderer := NewTileRenderer(scene, integrator.NewPathTracingIntegrator(3, false), width, height, 2)
	tiles := NewTileGrid(width, height, 4, 1, 2, 2)

	var pixels atomic.Int64
	pool := NewWorkerPool(tileRenderer, len(tiles), 3, func(n int) { pixels.Add(int64(n)) })
	if pool.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}

	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	seen := make(map[int]bool)
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			t.Fatal("Result queue closed early")
		}
		if seen[result.TaskID] {
			t.Errorf("Task %d returned twice", result.TaskID)
		}
		seen[result.TaskID] = true

		if len(result.Pixels) != result.Tile.Bounds.Dx()*result.Tile.Bounds.Dy() {
			t.Errorf("Task %d: %d pixels for bounds %v", result.TaskID, len(result.Pixels), result.Tile.Bounds)
		}
	}
	pool.Stop()

	if int(pixels.Load()) != width*height {
		t.Errorf("Expected %d pixels reported, got %d", width*height, pixels.Load())
	}
	if _, ok := pool.GetResult(); ok {
		t.Error("Result queue should be closed after Stop")
	}
}

func TestWorkerPool_DefaultWorkerCount(t *testing.T) {
	pool := NewWorkerPool(nil, 1, 0, nil)
	if pool.GetNumWorkers() < 1 {
		t.Errorf("Expected at least one worker, got %d", pool.GetNumWorkers())
	}
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if !ps.GetColor().IsZero() {
		t.Error("Empty pixel should be black")
	}

	ps.AddSample(core.NewVec3(1, 0, 0.5))
	ps.AddSample(core.NewVec3(0, 1, 0.5))
	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
	if !ps.GetColor().Equals(core.NewVec3(0.5, 0.5, 0.5)) {
		t.Errorf("Expected mean (0.5,0.5,0.5), got %v", ps.GetColor())
	}
}

func TestRenderStats(t *testing.T) {
	var stats RenderStats
	stats.add(RenderStats{TotalPixels: 10, TotalSamples: 40, TilesRendered: 1})
	stats.add(RenderStats{TotalPixels: 5, TotalSamples: 20, TilesRendered: 1})

	if stats.TotalPixels != 15 || stats.TotalSamples != 60 || stats.TilesRendered != 2 {
		t.Errorf("Unexpected totals %+v", stats)
	}
	if stats.SamplesPerSecond() != 0 {
		t.Error("Throughput should be 0 before a duration is set")
	}

	stats.Duration = 2 * time.Second
	if stats.SamplesPerSecond() != 30 {
		t.Errorf("Expected 30 samples/s, got %f", stats.SamplesPerSecond())
	}
}
