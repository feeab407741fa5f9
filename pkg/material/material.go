package material

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Kind identifies the material variant
type Kind uint8

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
	KindLight
)

// String returns the variant name
func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	case KindLight:
		return "light"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// DefaultLightEmission is the emission of a light created without an explicit color
var DefaultLightEmission = core.NewVec3(1, 1, 1)

// Material is a closed set of surface behaviours. Only the fields of the
// selected Kind are meaningful. Materials are immutable once built and are
// shared by pointer between surfaces.
type Material struct {
	Kind            Kind
	Texture         Texture   // Lambertian
	Albedo          core.Vec3 // Metal
	Fuzz            float32   // Metal, in [0, 1]
	RefractiveIndex float32   // Dielectric
	Emission        core.Vec3 // Light
}

// Scatter decides whether and how rayIn continues after hitting the surface.
// It returns false when the ray is absorbed.
func (m *Material) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, random)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, random)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, random)
	default:
		return ScatterResult{}, false
	}
}

// Emit returns the radiance emitted at the surface; zero for everything but lights
func (m *Material) Emit() core.Vec3 {
	if m.Kind == KindLight {
		return m.Emission
	}
	return core.Vec3{}
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
