package geometry

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/df07/go-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal vector
}

// NewPlane creates a new plane. A zero normal is stored as-is and rejected by Validate.
func NewPlane(point, normal core.Vec3) *Plane {
	if normal.LenSqr() > 0 {
		normal = normal.Normalize()
	}
	return &Plane{
		Point:  point,
		Normal: normal,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float32) (*core.HitRecord, bool) {
	// Calculate denominator: dot product of ray direction and plane normal
	denominator := ray.Direction.Dot(p.Normal)

	// If denominator is close to zero, ray is parallel to plane (no intersection)
	if math32.Abs(denominator) < 1e-8 {
		return nil, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Sub(ray.Origin).Dot(p.Normal) / denominator

	if !(t > tMin && t < tMax) {
		return nil, false
	}

	// The plane normal always points in the same direction, whichever side is hit
	return &core.HitRecord{
		T:      t,
		Point:  ray.At(t),
		Normal: p.Normal,
	}, true
}

// Validate checks that the plane has a usable normal
func (p *Plane) Validate() error {
	if p.Normal.LenSqr() == 0 || !core.IsFinite(p.Normal) || !core.IsFinite(p.Point) {
		return fmt.Errorf("plane through %v with normal %v: %w", p.Point, p.Normal, ErrDegenerateShape)
	}
	return nil
}
