package geometry

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/df07/go-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float32
}

// NewSphere creates a new sphere. The radius is not checked here; see Validate.
func NewSphere(center core.Vec3, radius float32) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float32) (*core.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Sub(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c

	// A tangent ray (discriminant == 0) is a miss, so grazing rays never
	// produce single-point hits. NaN also lands here.
	if !(discriminant > 0) {
		return nil, false
	}

	sqrtD := math32.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / (2 * a)
	if !(root > tMin && root < tMax) {
		// Try the farther intersection point
		root = (-b + sqrtD) / (2 * a)
		if !(root > tMin && root < tMax) {
			return nil, false
		}
	}

	point := ray.At(root)
	return &core.HitRecord{
		T:      root,
		Point:  point,
		Normal: point.Sub(s.Center).Mul(1 / s.Radius),
	}, true
}

// Validate checks that the radius is strictly positive
func (s *Sphere) Validate() error {
	if !(s.Radius > 0) || math32.IsInf(s.Radius, 1) {
		return fmt.Errorf("sphere at %v with radius %v: %w", s.Center, s.Radius, ErrInvalidRadius)
	}
	if !core.IsFinite(s.Center) {
		return fmt.Errorf("sphere center %v: %w", s.Center, ErrDegenerateShape)
	}
	return nil
}
