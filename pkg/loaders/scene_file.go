package loaders

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/scene"
)

var (
	// ErrUnknownShape is returned for shape entries that name no known shape kind, or more than one
	ErrUnknownShape = errors.New("shape entry must set exactly one of sphere, plane, triangle, list")
	// ErrInvalidCamera is returned when a camera block sets both or neither of explicit and lookAt
	ErrInvalidCamera = errors.New("camera must set exactly one of explicit, lookAt")
)

// SceneFile is the YAML/JSON document describing a scene:
//
//	camera:
//	  lookAt: {from: [0, 0, 1], at: [0, 0, -1], up: [0, 1, 0], vfov: 90}
//	background:
//	  bottom: [0.5, 0.7, 1.0]
//	  top: [1, 1, 1]
//	shapes:
//	  - sphere: {center: [0, 0, -1], radius: 0.5}
//	  - list:
//	      - plane: {point: [0, -0.5, 0], normal: [0, 1, 0]}
type SceneFile struct {
	Camera     *CameraSpec     `json:"camera"`
	Background *BackgroundSpec `json:"background,omitempty"`
	Shapes     []ShapeSpec     `json:"shapes"`
}

// CameraSpec selects one of the two camera builders
type CameraSpec struct {
	Explicit *ExplicitCameraSpec `json:"explicit,omitempty"`
	LookAt   *LookAtCameraSpec   `json:"lookAt,omitempty"`
}

// ExplicitCameraSpec holds the basis vectors of an explicit camera
type ExplicitCameraSpec struct {
	U      core.Vec3 `json:"u"`
	V      core.Vec3 `json:"v"`
	W      core.Vec3 `json:"w"`
	Origin core.Vec3 `json:"origin"`
}

// LookAtCameraSpec holds look-at parameters. Missing fields take the builder defaults,
// a missing aspect takes the aspect of the output image.
type LookAtCameraSpec struct {
	From   *core.Vec3 `json:"from,omitempty"`
	At     *core.Vec3 `json:"at,omitempty"`
	Up     *core.Vec3 `json:"up,omitempty"`
	VFov   float32    `json:"vfov,omitempty"`
	Aspect float32    `json:"aspect,omitempty"`
}

// BackgroundSpec describes what misses see: a gradient, or an equirectangular
// image path relative to the scene file
type BackgroundSpec struct {
	Bottom *core.Vec3 `json:"bottom,omitempty"`
	Top    *core.Vec3 `json:"top,omitempty"`
	Image  string     `json:"image,omitempty"`
}

// ShapeSpec is one shape entry; exactly one field must be set
type ShapeSpec struct {
	Sphere   *SphereSpec   `json:"sphere,omitempty"`
	Plane    *PlaneSpec    `json:"plane,omitempty"`
	Triangle *TriangleSpec `json:"triangle,omitempty"`
	List     []ShapeSpec   `json:"list,omitempty"`
}

type SphereSpec struct {
	Center core.Vec3 `json:"center"`
	Radius float32   `json:"radius"`
}

type PlaneSpec struct {
	Point  core.Vec3 `json:"point"`
	Normal core.Vec3 `json:"normal"`
}

type TriangleSpec struct {
	V0 core.Vec3 `json:"v0"`
	V1 core.Vec3 `json:"v1"`
	V2 core.Vec3 `json:"v2"`
}

// LoadScene reads and builds a scene file. aspect is used by look-at
// cameras that don't set their own.
func LoadScene(path string, aspect float32) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("while reading scene file: %w", err)
	}

	s, err := ParseScene(data, filepath.Dir(path), aspect)
	if err != nil {
		return nil, fmt.Errorf("while loading %s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes a YAML or JSON scene document and builds it.
// baseDir resolves relative image paths.
func ParseScene(data []byte, baseDir string, aspect float32) (*scene.Scene, error) {
	var file SceneFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("while decoding scene: %w", err)
	}
	return file.Build(baseDir, aspect)
}

// Build constructs and validates the scene described by the file
func (f *SceneFile) Build(baseDir string, aspect float32) (*scene.Scene, error) {
	if f.Camera == nil {
		return nil, scene.ErrNoCamera
	}
	camera, err := f.Camera.build(aspect)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	root, err := buildList(f.Shapes)
	if err != nil {
		return nil, err
	}

	s, err := scene.New(camera, root)
	if err != nil {
		return nil, err
	}

	if f.Background != nil {
		background, err := f.Background.build(baseDir)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		s.Background = background
	}

	return s, nil
}

func (c *CameraSpec) build(aspect float32) (core.Camera, error) {
	switch {
	case c.Explicit != nil && c.LookAt == nil:
		e := c.Explicit
		return geometry.NewExplicitBuilder().
			WithU(e.U).
			WithV(e.V).
			WithW(e.W).
			WithOrigin(e.Origin).
			Build(), nil

	case c.LookAt != nil && c.Explicit == nil:
		l := c.LookAt
		builder := geometry.NewLookAtBuilder().WithAspect(aspect)
		if l.From != nil {
			builder = builder.WithLookFrom(*l.From)
		}
		if l.At != nil {
			builder = builder.WithLookAt(*l.At)
		}
		if l.Up != nil {
			builder = builder.WithVUp(*l.Up)
		}
		if l.VFov != 0 {
			builder = builder.WithVFov(l.VFov)
		}
		if l.Aspect != 0 {
			builder = builder.WithAspect(l.Aspect)
		}
		return builder.Build()
	}

	return nil, ErrInvalidCamera
}

func (b *BackgroundSpec) build(baseDir string) (scene.BackgroundFunc, error) {
	if b.Image != "" {
		path := b.Image
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		env, err := LoadImage(path)
		if err != nil {
			return nil, err
		}
		return env.Background(), nil
	}

	bottom := scene.SkyGradient(core.NewVec3(0, -1, 0))
	top := scene.SkyGradient(core.NewVec3(0, 1, 0))
	if b.Bottom != nil {
		bottom = *b.Bottom
	}
	if b.Top != nil {
		top = *b.Top
	}
	return scene.GradientBackground(bottom, top), nil
}

func buildList(specs []ShapeSpec) (*geometry.ShapeList, error) {
	list := geometry.NewShapeList()
	for i, spec := range specs {
		shape, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		list.Add(shape)
	}
	return list, nil
}

func (s ShapeSpec) build() (core.Shape, error) {
	set := 0
	for _, isSet := range []bool{s.Sphere != nil, s.Plane != nil, s.Triangle != nil, s.List != nil} {
		if isSet {
			set++
		}
	}
	if set != 1 {
		return nil, ErrUnknownShape
	}

	switch {
	case s.Sphere != nil:
		return geometry.NewSphere(s.Sphere.Center, s.Sphere.Radius), nil
	case s.Plane != nil:
		return geometry.NewPlane(s.Plane.Point, s.Plane.Normal), nil
	case s.Triangle != nil:
		return geometry.NewTriangle(s.Triangle.V0, s.Triangle.V1, s.Triangle.V2), nil
	default:
		list, err := buildList(s.List)
		if err != nil {
			return nil, err
		}
		return list, nil
	}
}
