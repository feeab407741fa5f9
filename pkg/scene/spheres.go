package scene

import (
	"math/rand"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
)

// NewSpheresScene creates the classic field of small random spheres on a
// checkered ground, with three large feature spheres and a grid of lights
// overhead. random drives the layout and material choices.
func NewSpheresScene(width, height int, random *rand.Rand) *Scene {
	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   aspectRatio(width, height),
		Aperture:      0.1,
		FocusDistance: 10,
	}
	s := newScene("spheres", cameraConfig, defaultSampling(width, height, 42))

	checker := material.NewCheckerTexture(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	s.World.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker))

	keepClear := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(
				float32(a)+0.9*random.Float32(),
				0.2,
				float32(b)+0.9*random.Float32(),
			)
			if center.Subtract(keepClear).Length() > 0.9 {
				s.World.AddSphere(center, 0.2, randomMaterial(random))
			}
		}
	}

	s.World.AddSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.World.AddSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5))
	s.World.AddSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0))

	// 5x5 grid of unit lights at y=4
	for x := -8; x <= 8; x += 4 {
		for z := -8; z <= 8; z += 4 {
			s.AddSphereLight(core.NewVec3(float32(x), 4, float32(z)), 1, material.DefaultLightEmission)
		}
	}

	return s
}

// randomMaterial picks diffuse (50%), metal (25%) or glass (25%)
func randomMaterial(random *rand.Rand) *material.Material {
	choice := random.Float32()
	switch {
	case choice < 0.5:
		albedo := core.RandomVec3(random).MultiplyVec(core.RandomVec3(random))
		return material.NewLambertian(albedo)
	case choice < 0.75:
		albedo := core.RandomVec3(random).AddScalar(1).Multiply(0.5)
		return material.NewMetal(albedo, 0.5*random.Float32())
	default:
		return material.NewDielectric(1.5)
	}
}
