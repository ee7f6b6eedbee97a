package scene

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

var (
	// ErrNoCamera is returned when a scene is built without a camera
	ErrNoCamera = errors.New("scene has no camera")
	// ErrNoRoot is returned when a scene is built without a root shape
	ErrNoRoot = errors.New("scene has no root shape")
	// ErrUnknownScene is returned by ByName for names not in the registry
	ErrUnknownScene = errors.New("unknown scene")
)

// MaxT is the far end of the search window for primary rays
const MaxT = math32.MaxFloat32

var (
	skyBottomColor = core.NewVec3(0.5, 0.7, 1.0)
	skyTopColor    = core.NewVec3(1, 1, 1)
)

// BackgroundFunc returns the color seen along a ray direction that hits nothing
type BackgroundFunc func(direction core.Vec3) core.Vec3

// SkyGradient blends from light blue to white as the direction turns upward
func SkyGradient(direction core.Vec3) core.Vec3 {
	return gradient(direction, skyBottomColor, skyTopColor)
}

// GradientBackground returns a vertical gradient from bottomColor (straight down)
// to topColor (straight up)
func GradientBackground(bottomColor, topColor core.Vec3) BackgroundFunc {
	return func(direction core.Vec3) core.Vec3 {
		return gradient(direction, bottomColor, topColor)
	}
}

func gradient(direction, bottomColor, topColor core.Vec3) core.Vec3 {
	// Map the unit y component from [-1,1] to [0,1]
	unit := direction.Normalize()
	t := 0.5 * (unit.Y() + 1)
	return core.Lerp(t, bottomColor, topColor)
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera     core.Camera
	Root       core.Shape     // Usually a *geometry.ShapeList
	Background BackgroundFunc // SkyGradient when nil
}

// New creates a scene and validates every shape reachable from root
func New(camera core.Camera, root core.Shape) (*Scene, error) {
	if camera == nil {
		return nil, ErrNoCamera
	}
	if root == nil {
		return nil, ErrNoRoot
	}
	if v, ok := root.(geometry.Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("invalid scene geometry: %w", err)
		}
	}

	return &Scene{
		Camera:     camera,
		Root:       root,
		Background: SkyGradient,
	}, nil
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() core.Camera {
	return s.Camera
}

// Color resolves the color seen along a ray.
// Hits are shaded by their surface normal, misses by the background.
func (s *Scene) Color(ray core.Ray) core.Vec3 {
	if hit, isHit := s.Root.Hit(ray, 0, MaxT); isHit {
		return NormalColor(hit.Normal)
	}

	if s.Background == nil {
		return SkyGradient(ray.Direction)
	}
	return s.Background(ray.Direction)
}

// NormalColor maps a unit normal from [-1,1]³ into [0,1]³
func NormalColor(normal core.Vec3) core.Vec3 {
	return normal.Add(core.NewVec3(1, 1, 1)).Mul(0.5)
}
