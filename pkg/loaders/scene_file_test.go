package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/scene"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

const classicYAML = `# Scene: Classic
camera:
  explicit:
    u: [4, 0, 0]
    v: [0, 2, 0]
    w: [-2, -1, -1]
    origin: [0, 0, 0]
shapes:
  - sphere: {center: [0, 0, -1], radius: 0.5}
  - sphere: {center: [0, -100.5, -1], radius: 100}
`

func TestParseScene_MatchesDefaultScene(t *testing.T) {
	s, err := ParseScene([]byte(classicYAML), ".", 2)
	if err != nil {
		t.Fatalf("ParseScene error: %v", err)
	}

	want := scene.NewDefaultScene()
	camera := want.GetCamera()
	for _, uv := range [][2]float32{{0, 0}, {0.5, 0.49}, {0.05, 0.89}, {1, 1}} {
		ray := camera.GetRay(uv[0], uv[1])
		if diff := cmp.Diff(want.Color(ray), s.Color(ray), approx); diff != "" {
			t.Errorf("Color at %v mismatch (-want +got):\n%s", uv, diff)
		}
		if diff := cmp.Diff(ray, s.GetCamera().GetRay(uv[0], uv[1]), approx); diff != "" {
			t.Errorf("Ray at %v mismatch (-want +got):\n%s", uv, diff)
		}
	}
}

func TestParseScene_JSON(t *testing.T) {
	doc := `{
  "camera": {"lookAt": {"from": [0, 0, 1], "at": [0, 0, -1], "vfov": 90}},
  "shapes": [{"triangle": {"v0": [-1, -1, -1], "v1": [1, -1, -1], "v2": [0, 1, -1]}}]
}`
	s, err := ParseScene([]byte(doc), ".", 1)
	if err != nil {
		t.Fatalf("ParseScene error: %v", err)
	}

	ray := s.GetCamera().GetRay(0.5, 0.5)
	hit, isHit := s.Root.Hit(ray, 0, scene.MaxT)
	if !isHit {
		t.Fatal("Expected center ray to hit the triangle")
	}
	if diff := cmp.Diff(core.NewVec3(0, 0, -1), hit.Point, approx); diff != "" {
		t.Errorf("Hit point mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScene_LookAtAspect(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		aspect     float32
		wantUWidth float32
	}{
		{
			"aspect from caller",
			`{camera: {lookAt: {from: [0, 0, 0], at: [0, 0, -1], vfov: 90}}, shapes: []}`,
			2, 4,
		},
		{
			"aspect from file wins",
			`{camera: {lookAt: {from: [0, 0, 0], at: [0, 0, -1], vfov: 90, aspect: 3}}, shapes: []}`,
			2, 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseScene([]byte(tt.doc), ".", tt.aspect)
			if err != nil {
				t.Fatalf("ParseScene error: %v", err)
			}
			basis := s.GetCamera().(geometry.Camera).Basis()
			if diff := cmp.Diff(tt.wantUWidth, basis[0].Len(), approx); diff != "" {
				t.Errorf("Horizontal extent mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseScene_NestedLists(t *testing.T) {
	doc := `
camera:
  explicit: {u: [4, 0, 0], v: [0, 2, 0], w: [-2, -1, -1]}
shapes:
  - list:
      - sphere: {center: [0, 0, -4], radius: 0.5}
      - list:
          - sphere: {center: [0, 0, -2], radius: 0.5}
  - plane: {point: [0, 0, -10], normal: [0, 0, 1]}
`
	s, err := ParseScene([]byte(doc), ".", 2)
	if err != nil {
		t.Fatalf("ParseScene error: %v", err)
	}

	hit, isHit := s.Root.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0, scene.MaxT)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if diff := cmp.Diff(float32(1.5), hit.T, approx); diff != "" {
		t.Errorf("Nearest t mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScene_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			"missing camera",
			`shapes: []`,
			scene.ErrNoCamera,
		},
		{
			"camera with both builders",
			`{camera: {explicit: {}, lookAt: {}}, shapes: []}`,
			ErrInvalidCamera,
		},
		{
			"empty camera",
			`{camera: {}, shapes: []}`,
			ErrInvalidCamera,
		},
		{
			"empty shape entry",
			`{camera: {explicit: {}}, shapes: [{}]}`,
			ErrUnknownShape,
		},
		{
			"two kinds in one entry",
			`{camera: {explicit: {}}, shapes: [{sphere: {radius: 1}, plane: {normal: [0, 1, 0]}}]}`,
			ErrUnknownShape,
		},
		{
			"invalid radius",
			`{camera: {explicit: {}}, shapes: [{sphere: {center: [0, 0, -1], radius: -1}}]}`,
			geometry.ErrInvalidRadius,
		},
		{
			"degenerate triangle in nested list",
			`{camera: {explicit: {}}, shapes: [{list: [{triangle: {v0: [0, 0, 0], v1: [1, 1, 1], v2: [2, 2, 2]}}]}]}`,
			geometry.ErrDegenerateShape,
		},
		{
			"parallel up vector",
			`{camera: {lookAt: {from: [0, 0, 0], at: [0, 1, 0], up: [0, 1, 0]}}, shapes: []}`,
			geometry.ErrDegenerateCamera,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tt.doc), ".", 1)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseScene_RejectsMalformedDocuments(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown field":  `{camera: {explicit: {}}, shapes: [], lights: []}`,
		"unknown shape":  `{camera: {explicit: {}}, shapes: [{cube: {size: 1}}]}`,
		"wrong vector":   `{camera: {explicit: {u: "abc"}}, shapes: []}`,
		"not a document": `[1, 2, 3]`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseScene([]byte(doc), ".", 1); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestParseScene_GradientBackground(t *testing.T) {
	doc := `
camera:
  explicit: {u: [4, 0, 0], v: [0, 2, 0], w: [-2, -1, -1]}
background:
  top: [0, 0, 0]
shapes: []
`
	s, err := ParseScene([]byte(doc), ".", 2)
	if err != nil {
		t.Fatalf("ParseScene error: %v", err)
	}

	up := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if diff := cmp.Diff(core.NewVec3(0, 0, 0), s.Color(up), approx); diff != "" {
		t.Errorf("Top color mismatch (-want +got):\n%s", diff)
	}
	// Bottom keeps the sky default
	down := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0))
	if diff := cmp.Diff(core.NewVec3(0.5, 0.7, 1.0), s.Color(down), approx); diff != "" {
		t.Errorf("Bottom color mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadScene_ImageBackground(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, dir)

	doc := `# Scene: Environment
camera:
  explicit: {u: [4, 0, 0], v: [0, 2, 0], w: [-2, -1, -1]}
background:
  image: test.png
shapes: []
`
	path := filepath.Join(dir, "env.yaml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	s, err := LoadScene(path, 2)
	if err != nil {
		t.Fatalf("LoadScene error: %v", err)
	}

	// Down and forward lands in the bottom-right texel
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, -1))
	if diff := cmp.Diff(blue, s.Color(ray), cmpopts.EquateApprox(0, 0.01)); diff != "" {
		t.Errorf("Environment color mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadScene_Errors(t *testing.T) {
	if _, err := LoadScene(filepath.Join(t.TempDir(), "missing.yaml"), 1); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	doc := "{camera: {explicit: {}}, background: {image: nope.png}, shapes: []}"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	if _, err := LoadScene(path, 1); err == nil {
		t.Error("Expected error for missing background image")
	}
}
