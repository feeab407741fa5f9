package material

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// NewDielectric creates a transparent material like glass that can both reflect and refract
func NewDielectric(refractiveIndex float32) *Material {
	return &Material{Kind: KindDielectric, RefractiveIndex: refractiveIndex}
}

func (m *Material) scatterDielectric(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	// Clear glass does not absorb
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	unitDirection := rayIn.Direction.Normalize()

	// Entering when the ray opposes the normal; otherwise flip the normal to face the ray
	normal := hit.Normal
	refractionRatio := 1.0 / m.RefractiveIndex
	if unitDirection.Dot(normal) > 0 {
		normal = normal.Negate()
		refractionRatio = m.RefractiveIndex
	}

	cosTheta := math32.Min(unitDirection.Negate().Dot(normal), 1.0)

	direction := reflect(unitDirection, normal)
	if random.Float32() > Reflectance(cosTheta, refractionRatio) {
		// Total internal reflection keeps the reflected direction
		if refracted, ok := refractVector(unitDirection, normal, refractionRatio); ok {
			direction = refracted
		}
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}

// refractVector applies Snell's law to the unit vector uv crossing a surface with normal n
// facing the incident side. It reports false on total internal reflection.
func refractVector(uv, n core.Vec3, etaiOverEtat float32) (core.Vec3, bool) {
	cosTheta := math32.Min(uv.Negate().Dot(n), 1.0)
	discriminant := 1.0 - etaiOverEtat*etaiOverEtat*(1.0-cosTheta*cosTheta)
	if discriminant < 0 {
		return core.Vec3{}, false
	}
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math32.Sqrt(discriminant))
	return rOutPerp.Add(rOutParallel), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float32) float32 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math32.Pow(1-cosine, 5)
}
