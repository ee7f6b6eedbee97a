package scene

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

func TestNewDefaultScene(t *testing.T) {
	s := NewDefaultScene()

	camera, ok := s.GetCamera().(geometry.Camera)
	if !ok {
		t.Fatalf("Expected geometry.Camera, got %T", s.GetCamera())
	}
	wantBasis := [3]core.Vec3{
		core.NewVec3(4, 0, 0),
		core.NewVec3(0, 2, 0),
		core.NewVec3(-2, -1, -1),
	}
	if diff := cmp.Diff(wantBasis, camera.Basis()); diff != "" {
		t.Errorf("Basis mismatch (-want +got):\n%s", diff)
	}

	list, ok := s.Root.(*geometry.ShapeList)
	if !ok {
		t.Fatalf("Expected *geometry.ShapeList root, got %T", s.Root)
	}
	if list.Len() != 2 {
		t.Errorf("Expected 2 spheres, got %d", list.Len())
	}

	// Looking down hits the ground sphere at y = sqrt(9999) - 100.5
	hit, isHit := s.Root.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0)), 0, MaxT)
	if !isHit {
		t.Fatal("Expected ground hit")
	}
	if diff := cmp.Diff(float32(-0.505), hit.Point.Y(), cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("Ground height mismatch (-want +got):\n%s", diff)
	}
}

func TestNewLookAtScene(t *testing.T) {
	s, err := NewLookAtScene(2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Center ray looks from (0,0,1) toward (0,0,-1) and hits the near side of the sphere
	ray := s.GetCamera().GetRay(0.5, 0.5)
	hit, isHit := s.Root.Hit(ray, 0, MaxT)
	if !isHit {
		t.Fatal("Expected center ray to hit the small sphere")
	}
	if diff := cmp.Diff(core.NewVec3(0, 0, -0.5), hit.Point, approx); diff != "" {
		t.Errorf("Hit point mismatch (-want +got):\n%s", diff)
	}

	if _, err := NewLookAtScene(0); !errors.Is(err, geometry.ErrInvalidAspect) {
		t.Errorf("Expected ErrInvalidAspect, got %v", err)
	}
}

func TestNewSingleSphereScene(t *testing.T) {
	s := NewSingleSphereScene()

	// No ground, so looking down sees the sky
	if _, isHit := s.Root.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0)), 0, MaxT); isHit {
		t.Error("Expected no ground in single sphere scene")
	}
	if _, isHit := s.Root.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0, MaxT); !isHit {
		t.Error("Expected the small sphere straight ahead")
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := ByName(name, 2)
			if err != nil {
				t.Fatalf("ByName(%q) error: %v", name, err)
			}
			if s.GetCamera() == nil || s.Root == nil {
				t.Errorf("ByName(%q) returned incomplete scene", name)
			}
		})
	}

	if _, err := ByName("no-such-scene", 1); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestNames_Sorted(t *testing.T) {
	want := []string{"default", "lookat", "single-sphere"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}

	builtins := Builtins()
	if len(builtins) != len(want) {
		t.Fatalf("Expected %d builtins, got %d", len(want), len(builtins))
	}
	for i, b := range builtins {
		if b.ID != want[i] {
			t.Errorf("Builtins()[%d].ID = %q, want %q", i, b.ID, want[i])
		}
	}
}
