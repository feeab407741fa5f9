package scene

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
)

// NewSingleSphereScene creates a diffuse unit sphere at the origin, seen from
// (0,0,3) through a pinhole and lit by a large quad behind the camera
func NewSingleSphereScene(width, height int) *Scene {
	cameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: aspectRatio(width, height),
	}
	s := newScene("single-sphere", cameraConfig, defaultSampling(width, height, 42))

	s.World.AddSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddQuadLight(core.NewVec3(-20, -20, 6), core.NewVec3(40, 0, 0), core.NewVec3(0, 40, 0), material.DefaultLightEmission)

	return s
}
