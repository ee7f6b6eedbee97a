package geometry

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	// Triangle in the z=-1 plane, counter-clockwise seen from the origin
	triangle := NewTriangle(
		core.NewVec3(-1, -1, -1),
		core.NewVec3(1, -1, -1),
		core.NewVec3(0, 1, -1),
	)

	tests := []struct {
		name      string
		direction core.Vec3
		wantHit   bool
	}{
		{"through interior", core.NewVec3(0, 0, -1), true},
		{"outside left edge", core.NewVec3(-0.9, 0.5, -1), false},
		{"below bottom edge", core.NewVec3(0, -1.5, -1), false},
		{"away from triangle", core.NewVec3(0, 0, 1), false},
		{"parallel to plane", core.NewVec3(1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			hit, isHit := triangle.Hit(ray, 0.001, 1000)
			if isHit != tt.wantHit {
				t.Fatalf("Hit = %v, want %v", isHit, tt.wantHit)
			}
			if !isHit {
				return
			}
			if math32.Abs(hit.T-1) > 1e-6 {
				t.Errorf("Expected t=1, got %f", hit.T)
			}
			if diff := cmp.Diff(ray.At(hit.T), hit.Point, approx); diff != "" {
				t.Errorf("Point mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTriangle_NormalFollowsWinding(t *testing.T) {
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	)
	if diff := cmp.Diff(core.NewVec3(0, 0, 1), triangle.GetNormal(), approx); diff != "" {
		t.Errorf("Normal mismatch (-want +got):\n%s", diff)
	}

	// Hitting from the back does not flip the normal
	ray := core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1))
	hit, isHit := triangle.Hit(ray, 0.001, 1000)
	if !isHit {
		t.Fatal("Expected back-side hit")
	}
	if diff := cmp.Diff(core.NewVec3(0, 0, 1), hit.Normal, approx); diff != "" {
		t.Errorf("Normal flipped (-want +got):\n%s", diff)
	}
}

func TestTriangle_Validate(t *testing.T) {
	valid := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))
	if err := valid.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	collinear := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), core.NewVec3(2, 2, 2))
	if err := collinear.Validate(); !errors.Is(err, ErrDegenerateShape) {
		t.Errorf("Expected ErrDegenerateShape for collinear vertices, got %v", err)
	}
}
