package material

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// NewLight creates a light-emitting material. Lights never scatter.
func NewLight(emission core.Vec3) *Material {
	return &Material{Kind: KindLight, Emission: emission}
}

// NewDefaultLight creates a light with DefaultLightEmission
func NewDefaultLight() *Material {
	return NewLight(DefaultLightEmission)
}
