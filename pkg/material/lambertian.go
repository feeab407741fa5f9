package material

import (
	"math/rand"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// NewLambertian creates a diffuse material with a solid color
func NewLambertian(albedo core.Vec3) *Material {
	return NewTexturedLambertian(NewSolidColor(albedo))
}

// NewTexturedLambertian creates a diffuse material with a texture
func NewTexturedLambertian(texture Texture) *Material {
	return &Material{Kind: KindLambertian, Texture: texture}
}

// scatterLambertian offsets the normal by a point in the unit ball.
// This approximates cosine-weighted sampling; rendered output depends on the exact formula.
func (m *Material) scatterLambertian(hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	direction := hit.Normal.Add(core.RandomInUnitSphere(random))

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: m.Texture.Value(hit.Point),
	}, true
}
