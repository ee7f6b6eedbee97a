package geometry

import "errors"

var (
	// ErrInvalidRadius is returned for spheres whose radius is not strictly positive
	ErrInvalidRadius = errors.New("sphere radius must be positive")
	// ErrDegenerateShape is returned for planes with a zero normal and triangles with collinear vertices
	ErrDegenerateShape = errors.New("degenerate shape")
	// ErrDegenerateCamera is returned when the view direction is zero or parallel to the up vector
	ErrDegenerateCamera = errors.New("degenerate camera frame")
	// ErrInvalidFieldOfView is returned for vertical fields of view outside (0, 180) degrees
	ErrInvalidFieldOfView = errors.New("vertical field of view must be in (0, 180) degrees")
	// ErrInvalidAspect is returned for non-positive aspect ratios
	ErrInvalidAspect = errors.New("aspect ratio must be positive")
)

// Validator is implemented by shapes that can check their construction invariants.
// Hit never validates; scenes call Validate once before rendering.
type Validator interface {
	Validate() error
}
