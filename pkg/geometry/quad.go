package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// parallelEpsilon rejects rays (nearly) parallel to the quad plane
const parallelEpsilon = 1e-8

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3 // One corner of the quad
	U        core.Vec3 // First edge vector
	V        core.Vec3 // Second edge vector
	Material *material.Material

	Normal core.Vec3 // Unit normal (U × V normalized)
	D      float32   // Plane equation constant: normal · p = D
	W      core.Vec3 // (U × V) / |U × V|², used for planar coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors.
// Plane data is cached here; a zero-area quad ends up with a zero normal and never hits.
func NewQuad(corner, u, v core.Vec3, mat *material.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()

	var w core.Vec3
	if nn := n.Dot(n); nn != 0 {
		w = n.Multiply(1.0 / nn)
	}

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Material: mat,
		Normal:   normal,
		D:        normal.Dot(corner),
		W:        w,
	}
}

// Hit tests if a ray intersects with the quad within the open interval (tMin, tMax)
func (q *Quad) Hit(ray core.Ray, tMin, tMax float32) (*material.HitRecord, bool) {
	denominator := q.Normal.Dot(ray.Direction)
	if math32.Abs(denominator) < parallelEpsilon {
		return nil, false
	}

	t := (q.D - q.Normal.Dot(ray.Origin)) / denominator
	if t <= tMin || t >= tMax {
		return nil, false
	}

	hitPoint := ray.At(t)
	alpha, beta := q.planarCoordinates(hitPoint)
	if !insideUnitSquare(alpha, beta) {
		return nil, false
	}

	// Normal always faces the incoming ray
	normal := q.Normal
	if ray.Direction.Dot(normal) >= 0 {
		normal = normal.Negate()
	}

	return &material.HitRecord{
		T:        t,
		Point:    hitPoint,
		Normal:   normal,
		Material: q.Material,
	}, true
}

// planarCoordinates expresses a point on the plane in the (U, V) basis
func (q *Quad) planarCoordinates(point core.Vec3) (alpha, beta float32) {
	p := point.Subtract(q.Corner)
	alpha = q.W.Dot(p.Cross(q.V))
	beta = q.W.Dot(q.U.Cross(p))
	return alpha, beta
}

// insideUnitSquare is the half-open interior test: [0,1) on both axes
func insideUnitSquare(alpha, beta float32) bool {
	return alpha >= 0 && alpha < 1 && beta >= 0 && beta < 1
}

// BoundingBox returns the axis-aligned bounding box of the four corners
func (q *Quad) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	)
}
