package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// NewDefaultScene creates the classic two-sphere scene: a small sphere resting
// on a huge ground sphere, seen through an explicit 2:1 camera. Render it at 200x100.
func NewDefaultScene() *Scene {
	camera := geometry.NewExplicitBuilder().
		WithU(core.NewVec3(4, 0, 0)).
		WithV(core.NewVec3(0, 2, 0)).
		WithW(core.NewVec3(-2, -1, -1)).
		WithOrigin(core.NewVec3(0, 0, 0)).
		Build()

	return mustNew(camera, defaultShapes())
}

// NewLookAtScene creates the default spheres viewed through a look-at camera
// with a 90 degree vertical field of view and the given aspect ratio
func NewLookAtScene(aspect float32) (*Scene, error) {
	camera, err := geometry.NewLookAtBuilder().
		WithLookFrom(core.NewVec3(0, 0, 1)).
		WithLookAt(core.NewVec3(0, 0, -1)).
		WithVUp(core.NewVec3(0, 1, 0)).
		WithVFov(90).
		WithAspect(aspect).
		Build()
	if err != nil {
		return nil, fmt.Errorf("while building look-at camera: %w", err)
	}

	return New(camera, defaultShapes())
}

// NewSingleSphereScene creates a scene with only the small sphere, so the
// lower half of the image shows sky instead of ground
func NewSingleSphereScene() *Scene {
	camera := geometry.NewExplicitBuilder().
		WithU(core.NewVec3(4, 0, 0)).
		WithV(core.NewVec3(0, 2, 0)).
		WithW(core.NewVec3(-2, -1, -1)).
		Build()

	return mustNew(camera, geometry.NewShapeList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5),
	))
}

func defaultShapes() *geometry.ShapeList {
	return geometry.NewShapeList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100),
	)
}

// mustNew is for built-in scenes whose geometry is known to be valid
func mustNew(camera core.Camera, root core.Shape) *Scene {
	s, err := New(camera, root)
	if err != nil {
		panic(fmt.Sprintf("scene: invalid built-in scene: %v", err))
	}
	return s
}

// BuiltinScene describes a scene that ships with the renderer
type BuiltinScene struct {
	ID          string
	Name        string
	Description string
	// New builds the scene for an image with the given width / height ratio.
	// Explicit-camera scenes ignore the ratio.
	New func(aspect float32) (*Scene, error)
}

var builtins = map[string]BuiltinScene{
	"default": {
		ID:          "default",
		Name:        "Default Scene",
		Description: "Small sphere on a ground sphere, explicit 2:1 camera",
		New: func(float32) (*Scene, error) {
			return NewDefaultScene(), nil
		},
	},
	"lookat": {
		ID:          "lookat",
		Name:        "Look-At Scene",
		Description: "Default spheres through a 90 degree look-at camera",
		New:         NewLookAtScene,
	},
	"single-sphere": {
		ID:          "single-sphere",
		Name:        "Single Sphere",
		Description: "Small sphere against the sky",
		New: func(float32) (*Scene, error) {
			return NewSingleSphereScene(), nil
		},
	},
}

// Names returns the IDs of the built-in scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtins returns the built-in scene descriptions sorted by ID
func Builtins() []BuiltinScene {
	result := make([]BuiltinScene, 0, len(builtins))
	for _, name := range Names() {
		result = append(result, builtins[name])
	}
	return result
}

// ByName builds the built-in scene with the given ID
func ByName(name string, aspect float32) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownScene)
	}
	return b.New(aspect)
}
