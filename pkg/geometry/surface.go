package geometry

import (
	"fmt"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// SurfaceKind identifies the shape held by a Surface
type SurfaceKind uint8

const (
	SurfaceSphere SurfaceKind = iota
	SurfaceQuad
)

// String returns the shape name
func (k SurfaceKind) String() string {
	switch k {
	case SurfaceSphere:
		return "sphere"
	case SurfaceQuad:
		return "quad"
	default:
		return fmt.Sprintf("surface(%d)", uint8(k))
	}
}

// Surface is the closed set of shapes a World can hold
type Surface struct {
	Kind   SurfaceKind
	Sphere *Sphere
	Quad   *Quad
}

// SphereSurface wraps a sphere
func SphereSurface(s *Sphere) Surface {
	return Surface{Kind: SurfaceSphere, Sphere: s}
}

// QuadSurface wraps a quad
func QuadSurface(q *Quad) Surface {
	return Surface{Kind: SurfaceQuad, Quad: q}
}

// Hit dispatches to the wrapped shape
func (s Surface) Hit(ray core.Ray, tMin, tMax float32) (*material.HitRecord, bool) {
	switch s.Kind {
	case SurfaceSphere:
		return s.Sphere.Hit(ray, tMin, tMax)
	case SurfaceQuad:
		return s.Quad.Hit(ray, tMin, tMax)
	default:
		return nil, false
	}
}

// BoundingBox returns the bounds of the wrapped shape
func (s Surface) BoundingBox() core.AABB {
	switch s.Kind {
	case SurfaceSphere:
		return s.Sphere.BoundingBox()
	case SurfaceQuad:
		return s.Quad.BoundingBox()
	default:
		return core.AABB{}
	}
}

// Material returns the material of the wrapped shape
func (s Surface) Material() *material.Material {
	switch s.Kind {
	case SurfaceSphere:
		return s.Sphere.Material
	case SurfaceQuad:
		return s.Quad.Material
	default:
		return nil
	}
}
