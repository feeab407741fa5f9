package renderer

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/integrator"
)

// TileRenderer renders individual tiles using an integrator. It only reads
// shared state, so one instance serves all workers.
type TileRenderer struct {
	scene           Scene
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(scene Scene, integratorInst integrator.Integrator, width, height, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		scene:           scene,
		integrator:      integratorInst,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
	}
}

// RenderTile renders every pixel in the tile's bounds and returns them
// row-major within the tile. Nothing outside the returned slice is written.
func (tr *TileRenderer) RenderTile(tile *Tile) ([]core.Vec3, RenderStats) {
	bounds := tile.Bounds
	pixels := make([]core.Vec3, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixels = append(pixels, tr.samplePixel(x, y, tile))
		}
	}

	stats := RenderStats{
		TotalPixels:     len(pixels),
		TotalSamples:    len(pixels) * tr.samplesPerPixel,
		SamplesPerPixel: tr.samplesPerPixel,
		TilesRendered:   1,
	}
	return pixels, stats
}

// samplePixel averages the radiance of samplesPerPixel jittered camera rays
// through image pixel (x, y)
func (tr *TileRenderer) samplePixel(x, y int, tile *Tile) core.Vec3 {
	camera := tr.scene.GetCamera()
	world := tr.scene.GetWorld()
	random := tile.Random

	// Camera coordinates run bottom-up
	j := tr.height - 1 - y

	var ps PixelStats
	for n := 0; n < tr.samplesPerPixel; n++ {
		s := (float32(x) + random.Float32()) / float32(tr.width)
		t := (float32(j) + random.Float32()) / float32(tr.height)
		ray := camera.GetRay(s, t, random)
		ps.AddSample(tr.integrator.RayColor(ray, world, random))
	}
	return ps.GetColor()
}
