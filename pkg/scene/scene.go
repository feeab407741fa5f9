package scene

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.World
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig // Recommended settings; callers may override
}

// newScene creates an empty scene with a camera built from cameraConfig
func newScene(name string, cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig) *Scene {
	return &Scene{
		Name:           name,
		World:          geometry.NewWorld(),
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
	}
}

// defaultSampling returns the recommended sampling config for an image size
func defaultSampling(width, height int, seed int64) renderer.SamplingConfig {
	config := renderer.DefaultSamplingConfig()
	config.Width = width
	config.Height = height
	config.Seed = seed
	return config
}

// aspectRatio returns width/height, falling back to 1 for degenerate sizes
func aspectRatio(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// GetWorld returns the scene geometry
func (s *Scene) GetWorld() *geometry.World {
	return s.World
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetPrimitiveCount returns the number of surfaces in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// NewGroundQuad creates a horizontal square centered at the given point.
// u × v = (size,0,0) × (0,0,size) points down, so the normal is flipped
// toward incoming rays on hit.
func NewGroundQuad(center core.Vec3, size float32, mat *material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	u := core.NewVec3(size, 0, 0)
	v := core.NewVec3(0, 0, size)
	return geometry.NewQuad(corner, u, v, mat)
}

// AddSphereLight adds an emissive sphere to the scene
func (s *Scene) AddSphereLight(center core.Vec3, radius float32, emission core.Vec3) *geometry.Sphere {
	return s.World.AddSphere(center, radius, material.NewLight(emission))
}

// AddQuadLight adds a rectangular emitter to the scene
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) *geometry.Quad {
	return s.World.AddQuad(corner, u, v, material.NewLight(emission))
}
