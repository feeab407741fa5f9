package scene

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
)

// NewHollowGlassScene creates a thin glass shell around a blue diffuse core.
// The shell is an outer sphere plus a negative-radius inner sphere, whose
// normals point inward so the dielectric sees the ray leaving the glass.
func NewHollowGlassScene(width, height int) *Scene {
	cameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 1, 4),
		LookAt:      core.NewVec3(0, 0.6, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: aspectRatio(width, height),
		Aperture:    0.02,
	}
	sampling := defaultSampling(width, height, 42)
	sampling.SamplesPerPixel = 50
	s := newScene("hollow-glass", cameraConfig, sampling)

	glass := material.NewDielectric(1.5)
	center := core.NewVec3(0, 0.8, 0)

	s.World.AddSphere(center, 0.8, glass)
	s.World.AddSphere(center, -0.75, glass)
	s.World.AddSphere(center, 0.4, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))

	ground := material.NewTexturedLambertian(
		material.NewCheckerTexture(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	s.World.Add(geometry.QuadSurface(NewGroundQuad(core.NewVec3(0, 0, 0), 40, ground)))

	s.AddQuadLight(core.NewVec3(-3, 5, -3), core.NewVec3(6, 0, 0), core.NewVec3(0, 0, 6), core.NewVec3(4, 4, 4))
	s.AddSphereLight(core.NewVec3(-4, 2, 3), 0.5, core.NewVec3(2, 1.8, 1.5))

	return s
}
