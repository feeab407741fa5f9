package material

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Surface normal at intersection (unit length for non-degenerate shapes)
	T        float32   // Parameter t along the ray
	Material *Material // Material of the hit object
}
