package renderer

import (
	"context"
	"strings"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/integrator"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// testScene implements Scene for renderer tests
type testScene struct {
	world  *geometry.World
	camera *Camera
}

func (s *testScene) GetWorld() *geometry.World { return s.world }
func (s *testScene) GetCamera() *Camera         { return s.camera }

// unitSphereScene is a unit sphere at the origin seen from (0,0,3), lit by a
// large quad behind the camera
func unitSphereScene(width, height int) *testScene {
	world := geometry.NewWorld()
	world.AddSphere(core.Vec3{}, 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	world.AddQuad(core.NewVec3(-20, -20, 6), core.NewVec3(40, 0, 0), core.NewVec3(0, 40, 0), material.NewDefaultLight())

	return &testScene{
		world: world,
		camera: NewCamera(CameraConfig{
			Center:      core.NewVec3(0, 0, 3),
			LookAt:      core.NewVec3(0, 0, 0),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        90,
			AspectRatio: float32(width) / float32(height),
		}),
	}
}

func testSampling(width, height int) SamplingConfig {
	return SamplingConfig{Width: width, Height: height, SamplesPerPixel: 4, MaxDepth: 5, Seed: 11}
}

func TestRender_UnitSphere(t *testing.T) {
	width, height := 32, 32
	buffer := Render(unitSphereScene(width, height), width, height, 4, 5)

	if len(buffer) != width*height {
		t.Fatalf("Expected %d pixels, got %d", width*height, len(buffer))
	}

	center := buffer[(height/2)*width+width/2]
	if center.Equals(integrator.Background) {
		t.Error("Center pixel should see the lit sphere")
	}

	// The corner rays escape between the sphere and the light, which is behind the camera
	corner := buffer[0]
	if !corner.Equals(integrator.Background) {
		t.Errorf("Corner pixel should be background, got %v", corner)
	}
}

func TestRaytracer_Deterministic(t *testing.T) {
	width, height := 24, 16
	scene := unitSphereScene(width, height)

	configs := []RenderConfig{
		{TileSize: 8, NumWorkers: 1, JumpX: 1, JumpY: 1},
		{TileSize: 8, NumWorkers: 4, JumpX: 2, JumpY: 2},
		{TileSize: 8, NumWorkers: 3, JumpX: 3, JumpY: 1, Iterative: true},
	}

	var reference []core.Vec3
	for i, config := range configs {
		rt, err := NewRaytracer(scene, testSampling(width, height), config, nil)
		if err != nil {
			t.Fatalf("NewRaytracer: %v", err)
		}
		buffer, stats := rt.Render()

		if stats.TotalPixels != width*height || stats.TotalSamples != width*height*4 {
			t.Errorf("Config %d: unexpected stats %+v", i, stats)
		}
		if reference == nil {
			reference = buffer
			continue
		}
		for p := range buffer {
			if !buffer[p].Equals(reference[p]) {
				t.Fatalf("Config %d: pixel %d differs: %v vs %v", i, p, buffer[p], reference[p])
			}
		}
	}
}

func TestRaytracer_RowFlip(t *testing.T) {
	// A light fills the upper half of the view and nothing is below
	width, height := 8, 8
	world := geometry.NewWorld()
	world.AddQuad(core.NewVec3(-50, 0.01, -1), core.NewVec3(100, 0, 0), core.NewVec3(0, 50, 0), material.NewDefaultLight())
	scene := &testScene{
		world: world,
		camera: NewCamera(CameraConfig{
			Center: core.NewVec3(0, 0, 0), LookAt: core.NewVec3(0, 0, -1), Up: core.NewVec3(0, 1, 0),
			VFov: 90, AspectRatio: 1,
		}),
	}

	rt, err := NewRaytracer(scene, testSampling(width, height), DefaultRenderConfig(), nil)
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}
	buffer, _ := rt.Render()

	top := buffer[0*width+4]
	bottom := buffer[(height-1)*width+4]
	if !top.Equals(material.DefaultLightEmission) {
		t.Errorf("Top row should see the light, got %v", top)
	}
	if !bottom.Equals(integrator.Background) {
		t.Errorf("Bottom row should be background, got %v", bottom)
	}
}

func TestRaytracer_RenderWithPreview(t *testing.T) {
	width, height := 20, 20
	scene := unitSphereScene(width, height)
	config := RenderConfig{TileSize: 5, NumWorkers: 2, JumpX: 2, JumpY: 2}

	rt, err := NewRaytracer(scene, testSampling(width, height), config, nil)
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}

	var previews []Preview
	final, _ := rt.RenderWithPreview(context.Background(), 4, func(p Preview) {
		previews = append(previews, p)
	})

	// 16 tiles, a preview every 4
	if len(previews) != 4 {
		t.Fatalf("Expected 4 previews, got %d", len(previews))
	}
	for i, p := range previews {
		if p.TilesCompleted != (i+1)*4 || p.TotalTiles != 16 {
			t.Errorf("Preview %d: unexpected progress %d/%d", i, p.TilesCompleted, p.TotalTiles)
		}
	}

	last := previews[len(previews)-1]
	for i := range final {
		if !last.Pixels[i].Equals(final[i]) {
			t.Fatalf("Final preview differs from the result at pixel %d", i)
		}
	}

	// Snapshots are copies
	last.Pixels[0] = core.NewVec3(9, 9, 9)
	if final[0].Equals(last.Pixels[0]) {
		t.Error("Preview must not alias the render buffer")
	}

	done, total := rt.Progress()
	if done != total || total != width*height {
		t.Errorf("Expected full progress, got %d/%d", done, total)
	}
}

func TestRaytracer_PreviewStopsOnCancel(t *testing.T) {
	width, height := 16, 16
	scene := unitSphereScene(width, height)
	config := RenderConfig{TileSize: 4, NumWorkers: 2, JumpX: 1, JumpY: 1}

	rt, err := NewRaytracer(scene, testSampling(width, height), config, nil)
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	buffer, stats := rt.RenderWithPreview(ctx, 1, func(Preview) {
		calls++
		cancel()
	})

	if calls != 1 {
		t.Errorf("Expected previews to stop after cancel, got %d calls", calls)
	}
	if stats.TilesRendered != 16 || len(buffer) != width*height {
		t.Errorf("Render must complete after cancel, got %d tiles", stats.TilesRendered)
	}
}

func TestNewRaytracer_Validation(t *testing.T) {
	scene := unitSphereScene(4, 4)

	tests := []struct {
		name     string
		sampling SamplingConfig
		config   RenderConfig
		errPart  string
	}{
		{"zero width", SamplingConfig{Width: 0, Height: 4, SamplesPerPixel: 1}, DefaultRenderConfig(), "width"},
		{"negative height", SamplingConfig{Width: 4, Height: -1, SamplesPerPixel: 1}, DefaultRenderConfig(), "height"},
		{"zero samples", SamplingConfig{Width: 4, Height: 4}, DefaultRenderConfig(), "samples"},
		{"negative depth", SamplingConfig{Width: 4, Height: 4, SamplesPerPixel: 1, MaxDepth: -1}, DefaultRenderConfig(), "depth"},
		{"zero tile size", testSampling(4, 4), RenderConfig{TileSize: 0, JumpX: 1, JumpY: 1}, "tile size"},
		{"negative workers", testSampling(4, 4), RenderConfig{TileSize: 4, NumWorkers: -2, JumpX: 1, JumpY: 1}, "worker"},
		{"zero jump", testSampling(4, 4), RenderConfig{TileSize: 4}, "jump"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRaytracer(scene, tt.sampling, tt.config, nil)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Error %q should mention %q", err, tt.errPart)
			}
		})
	}

	if _, err := NewRaytracer(&testScene{}, testSampling(4, 4), DefaultRenderConfig(), nil); err == nil {
		t.Error("Expected an error for a scene without world and camera")
	}
}

func TestRender_ZeroDepthIsBlack(t *testing.T) {
	width, height := 8, 8
	buffer := Render(unitSphereScene(width, height), width, height, 2, 0)
	for i, c := range buffer {
		if !c.Equals(integrator.Background) {
			t.Fatalf("Pixel %d should be background with depth 0, got %v", i, c)
		}
	}
}
