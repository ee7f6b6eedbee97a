package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 represents a 3D vector. Colors use the same type with X, Y, Z as linear R, G, B.
type Vec3 = mgl32.Vec3

// Vec2 represents a 2D vector
type Vec2 = mgl32.Vec2

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float32) Vec2 {
	return Vec2{x, y}
}

// Lerp blends a and b as (1-t)*a + t*b
func Lerp(t float32, a, b Vec3) Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// Clamp returns a vector with components clamped to [minVal, maxVal]
func Clamp(v Vec3, minVal, maxVal float32) Vec3 {
	return Vec3{
		mgl32.Clamp(v[0], minVal, maxVal),
		mgl32.Clamp(v[1], minVal, maxVal),
		mgl32.Clamp(v[2], minVal, maxVal),
	}
}

// GammaCorrect applies gamma correction to color values
func GammaCorrect(v Vec3, gamma float32) Vec3 {
	invGamma := 1.0 / gamma
	return Vec3{
		math32.Pow(v[0], invGamma),
		math32.Pow(v[1], invGamma),
		math32.Pow(v[2], invGamma),
	}
}

// Luminance returns the perceptual luminance of a linear RGB color
// Uses Rec. 709 weights: 0.2126*R + 0.7152*G + 0.0722*B
func Luminance(c Vec3) float32 {
	return 0.2126*c[0] + 0.7152*c[1] + 0.0722*c[2]
}

// IsFinite reports whether every component is neither NaN nor infinite
func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
