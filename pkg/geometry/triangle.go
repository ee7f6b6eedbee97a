package geometry

import (
	"fmt"

	"github.com/df07/go-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	normal     core.Vec3 // Cached normal vector
}

// NewTriangle creates a new triangle from three vertices.
// The normal follows the winding order: normalize((V1-V0) × (V2-V0)).
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	t := &Triangle{
		V0: v0,
		V1: v1,
		V2: v2,
	}
	t.computeNormal()
	return t
}

// computeNormal calculates and caches the triangle's normal vector
func (t *Triangle) computeNormal() {
	edge1 := t.V1.Sub(t.V0)
	edge2 := t.V2.Sub(t.V0)

	n := edge1.Cross(edge2)
	if n.LenSqr() > 0 {
		n = n.Normalize()
	}
	t.normal = n
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float32) (*core.HitRecord, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Sub(t.V0)
	edge2 := t.V2.Sub(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Sub(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tParam := f * edge2.Dot(q)
	if !(tParam > tMin && tParam < tMax) {
		return nil, false
	}

	return &core.HitRecord{
		T:      tParam,
		Point:  ray.At(tParam),
		Normal: t.normal,
	}, true
}

// GetNormal returns the triangle's normal vector
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}

// Validate checks that the vertices are not collinear
func (t *Triangle) Validate() error {
	if t.normal.LenSqr() == 0 || !core.IsFinite(t.normal) {
		return fmt.Errorf("triangle %v %v %v: %w", t.V0, t.V1, t.V2, ErrDegenerateShape)
	}
	return nil
}
