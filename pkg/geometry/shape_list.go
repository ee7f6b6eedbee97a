package geometry

import (
	"fmt"

	"github.com/df07/go-raytracer/pkg/core"
)

// ShapeList is an ordered collection of shapes that is itself a shape.
// Lists can be nested to build compositional scenes.
type ShapeList struct {
	shapes []core.Shape
}

// NewShapeList creates a list holding the given shapes
func NewShapeList(shapes ...core.Shape) *ShapeList {
	// Copy so the caller's slice can't alias the list
	list := &ShapeList{shapes: make([]core.Shape, len(shapes))}
	copy(list.shapes, shapes)
	return list
}

// Add appends a shape to the list
func (l *ShapeList) Add(shape core.Shape) {
	l.shapes = append(l.shapes, shape)
}

// Len returns the number of member shapes
func (l *ShapeList) Len() int {
	return len(l.shapes)
}

// Shapes returns a copy of the member list
func (l *ShapeList) Shapes() []core.Shape {
	shapes := make([]core.Shape, len(l.shapes))
	copy(shapes, l.shapes)
	return shapes
}

// Hit returns the member intersection with the smallest t in (tMin, tMax).
// Each hit narrows the search window, so later members only report closer hits.
// For bit-identical t values the earlier member wins.
func (l *ShapeList) Hit(ray core.Ray, tMin, tMax float32) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, shape := range l.shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// Validate validates every member that implements Validator, including nested lists
func (l *ShapeList) Validate() error {
	for i, shape := range l.shapes {
		if shape == nil {
			return fmt.Errorf("shape %d: %w", i, ErrDegenerateShape)
		}
		if v, ok := shape.(Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("shape %d: %w", i, err)
			}
		}
	}
	return nil
}
