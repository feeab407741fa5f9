package integrator

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
)

// ShadowAcneEpsilon is the minimum ray parameter accepted for a hit, so a
// scattered ray does not re-hit the surface it left
const ShadowAcneEpsilon float32 = 0.001

// Background is the radiance of rays that escape the world or run out of depth.
// It is black: all light comes from emissive surfaces.
var Background = core.Vec3{}

// Integrator computes the radiance carried back along a camera ray
type Integrator interface {
	RayColor(ray core.Ray, world *geometry.World, random *rand.Rand) core.Vec3
}

// PathTracingIntegrator implements unidirectional path tracing with a hard depth cutoff
type PathTracingIntegrator struct {
	MaxDepth  int
	Iterative bool // Use the loop form instead of recursion
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int, iterative bool) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: maxDepth, Iterative: iterative}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world *geometry.World, random *rand.Rand) core.Vec3 {
	if pt.Iterative {
		return RadianceIterative(ray, world, pt.MaxDepth, random)
	}
	return Radiance(ray, world, pt.MaxDepth, random)
}

// Radiance returns the light arriving along ray after at most depth bounces
func Radiance(ray core.Ray, world *geometry.World, depth int, random *rand.Rand) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return Background
	}

	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math32.Inf(1))
	if !isHit {
		return Background
	}

	emitted := hit.Material.Emit()

	scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
	if !didScatter {
		return emitted
	}

	return combine(emitted, scatter.Attenuation, Radiance(scatter.Scattered, world, depth-1, random))
}

// pathVertex is one bounce recorded by RadianceIterative
type pathVertex struct {
	emitted     core.Vec3
	attenuation core.Vec3
}

// RadianceIterative is the loop form of Radiance. It records the bounces and
// folds them from the last one back, so it performs the same floating-point
// operations in the same order and returns bit-identical results.
func RadianceIterative(ray core.Ray, world *geometry.World, depth int, random *rand.Rand) core.Vec3 {
	path := make([]pathVertex, 0, min(max(depth, 0), 16))
	tail := Background

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math32.Inf(1))
		if !isHit {
			break
		}

		emitted := hit.Material.Emit()
		scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
		if !didScatter {
			// Absorbed: this bounce contributes only its emission
			tail = emitted
			break
		}

		path = append(path, pathVertex{emitted: emitted, attenuation: scatter.Attenuation})
		ray = scatter.Scattered
	}

	result := tail
	for i := len(path) - 1; i >= 0; i-- {
		result = combine(path[i].emitted, path[i].attenuation, result)
	}
	return result
}

// combine adds emitted light to the attenuated incoming light
func combine(emitted, attenuation, incoming core.Vec3) core.Vec3 {
	return emitted.Add(attenuation.MultiplyVec(incoming))
}
