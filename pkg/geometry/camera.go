package geometry

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-raytracer/pkg/core"
)

// Camera generates rays for rendering.
// The basis is fixed at construction: horizontal extent, vertical extent
// and the lower-left corner of the image plane.
type Camera struct {
	origin core.Vec3
	basis  [3]core.Vec3
}

// GetRay generates a ray for image-plane coordinates (u, v), nominally in [0,1].
// Values outside [0,1] are not clamped and give rays outside the frustum.
func (c Camera) GetRay(u, v float32) core.Ray {
	direction := c.basis[2].
		Add(c.basis[0].Mul(u)).
		Add(c.basis[1].Mul(v)).
		Sub(c.origin)

	return core.NewRay(c.origin, direction)
}

// Origin returns the camera position
func (c Camera) Origin() core.Vec3 {
	return c.origin
}

// Basis returns the horizontal, vertical and lower-left-corner vectors
func (c Camera) Basis() [3]core.Vec3 {
	return c.basis
}

// ExplicitBuilder builds a camera from caller-supplied basis vectors.
// No validation is performed; the caller is responsible for a consistent frame.
type ExplicitBuilder struct {
	U      core.Vec3 // Horizontal extent of the image plane
	V      core.Vec3 // Vertical extent of the image plane
	W      core.Vec3 // Lower-left corner of the image plane
	Origin core.Vec3
}

// NewExplicitBuilder returns a builder with all vectors zero
func NewExplicitBuilder() ExplicitBuilder {
	return ExplicitBuilder{}
}

// WithU returns a copy of the builder with the horizontal vector set
func (b ExplicitBuilder) WithU(u core.Vec3) ExplicitBuilder {
	b.U = u
	return b
}

// WithV returns a copy of the builder with the vertical vector set
func (b ExplicitBuilder) WithV(v core.Vec3) ExplicitBuilder {
	b.V = v
	return b
}

// WithW returns a copy of the builder with the lower-left corner set
func (b ExplicitBuilder) WithW(w core.Vec3) ExplicitBuilder {
	b.W = w
	return b
}

// WithOrigin returns a copy of the builder with the origin set
func (b ExplicitBuilder) WithOrigin(origin core.Vec3) ExplicitBuilder {
	b.Origin = origin
	return b
}

// Build copies the vectors into a camera unchanged
func (b ExplicitBuilder) Build() Camera {
	return Camera{
		origin: b.Origin,
		basis:  [3]core.Vec3{b.U, b.V, b.W},
	}
}

// LookAtBuilder builds a camera from look-at and field-of-view parameters
type LookAtBuilder struct {
	LookFrom core.Vec3 // Camera position
	LookAt   core.Vec3 // Point the camera looks at
	VUp      core.Vec3 // Up direction, must not be parallel to the view direction
	VFov     float32   // Vertical field of view in degrees
	Aspect   float32   // Width / height
}

// NewLookAtBuilder returns a builder looking down +Z from the origin with a 30 degree field of view
func NewLookAtBuilder() LookAtBuilder {
	return LookAtBuilder{
		LookFrom: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, 1),
		VUp:      core.NewVec3(0, 1, 0),
		VFov:     30,
		Aspect:   1,
	}
}

// WithLookFrom returns a copy of the builder with the camera position set
func (b LookAtBuilder) WithLookFrom(lookFrom core.Vec3) LookAtBuilder {
	b.LookFrom = lookFrom
	return b
}

// WithLookAt returns a copy of the builder with the target point set
func (b LookAtBuilder) WithLookAt(lookAt core.Vec3) LookAtBuilder {
	b.LookAt = lookAt
	return b
}

// WithVUp returns a copy of the builder with the up vector set
func (b LookAtBuilder) WithVUp(vup core.Vec3) LookAtBuilder {
	b.VUp = vup
	return b
}

// WithVFov returns a copy of the builder with the vertical field of view set, in degrees
func (b LookAtBuilder) WithVFov(vfov float32) LookAtBuilder {
	b.VFov = vfov
	return b
}

// WithAspect returns a copy of the builder with the aspect ratio set
func (b LookAtBuilder) WithAspect(aspect float32) LookAtBuilder {
	b.Aspect = aspect
	return b
}

// Validate checks the parameters without building a camera
func (b LookAtBuilder) Validate() error {
	if !(b.VFov > 0 && b.VFov < 180) {
		return fmt.Errorf("vfov %v: %w", b.VFov, ErrInvalidFieldOfView)
	}
	if !(b.Aspect > 0) || math32.IsInf(b.Aspect, 1) {
		return fmt.Errorf("aspect %v: %w", b.Aspect, ErrInvalidAspect)
	}

	view := b.LookFrom.Sub(b.LookAt)
	if view.LenSqr() == 0 || !core.IsFinite(view) {
		return fmt.Errorf("lookfrom %v equals lookat %v: %w", b.LookFrom, b.LookAt, ErrDegenerateCamera)
	}

	// Parallel vectors give a (near) zero cross product
	side := b.VUp.Cross(view)
	if side.Len() <= 1e-6*b.VUp.Len()*view.Len() {
		return fmt.Errorf("vup %v parallel to view direction %v: %w", b.VUp, view, ErrDegenerateCamera)
	}
	return nil
}

// Build derives the camera basis from the look-at parameters
func (b LookAtBuilder) Build() (Camera, error) {
	if err := b.Validate(); err != nil {
		return Camera{}, err
	}

	halfHeight := math32.Tan(mgl32.DegToRad(b.VFov) / 2)
	halfWidth := b.Aspect * halfHeight

	w := b.LookFrom.Sub(b.LookAt).Normalize()
	u := b.VUp.Cross(w).Normalize()
	v := w.Cross(u)

	lowerLeft := b.LookFrom.
		Sub(u.Mul(halfWidth)).
		Sub(v.Mul(halfHeight)).
		Sub(w)

	return Camera{
		origin: b.LookFrom,
		basis: [3]core.Vec3{
			u.Mul(2 * halfWidth),
			v.Mul(2 * halfHeight),
			lowerLeft,
		},
	}, nil
}

// MustBuild is like Build but panics on invalid parameters.
// Intended for built-in scenes whose parameters are known to be valid.
func (b LookAtBuilder) MustBuild() Camera {
	camera, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("geometry: invalid look-at camera: %v", err))
	}
	return camera
}
