package geometry

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// World is an insertion-ordered list of surfaces searched linearly
type World struct {
	Surfaces []Surface
}

// NewWorld creates a world from the given surfaces
func NewWorld(surfaces ...Surface) *World {
	return &World{Surfaces: surfaces}
}

// Add appends surfaces to the world
func (w *World) Add(surfaces ...Surface) {
	w.Surfaces = append(w.Surfaces, surfaces...)
}

// AddSphere creates a sphere and appends it
func (w *World) AddSphere(center core.Vec3, radius float32, mat *material.Material) *Sphere {
	sphere := NewSphere(center, radius, mat)
	w.Add(SphereSurface(sphere))
	return sphere
}

// AddQuad creates a quad and appends it
func (w *World) AddQuad(corner, u, v core.Vec3, mat *material.Material) *Quad {
	quad := NewQuad(corner, u, v, mat)
	w.Add(QuadSurface(quad))
	return quad
}

// Len returns the number of surfaces
func (w *World) Len() int {
	return len(w.Surfaces)
}

// Hit returns the closest intersection within (tMin, tMax).
// Each surface is tested against the window narrowed by the closest hit so far.
func (w *World) Hit(ray core.Ray, tMin, tMax float32) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, surface := range w.Surfaces {
		if hit, isHit := surface.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of all surface bounds
func (w *World) BoundingBox() core.AABB {
	if len(w.Surfaces) == 0 {
		return core.AABB{}
	}
	box := w.Surfaces[0].BoundingBox()
	for _, surface := range w.Surfaces[1:] {
		box = box.Union(surface.BoundingBox())
	}
	return box
}
