package core

import (
	"math/rand"
)

// Sampler provides sub-pixel offsets for rendering.
// Can be swapped out for deterministic testing or different sampling patterns.
type Sampler interface {
	Get1D() float32
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator.
// A RandomSampler is not safe for concurrent use; give each worker its own.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float32 in [0, 1)
func (r *RandomSampler) Get1D() float32 {
	return r.random.Float32()
}

// Get2D returns two independent random float32 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float32(), r.random.Float32())
}

// FixedSampler always returns the same offset. The zero value samples
// the lower-left corner of every pixel, which disables jitter.
type FixedSampler struct {
	Offset Vec2
}

// Get1D returns the X component of the fixed offset
func (f FixedSampler) Get1D() float32 {
	return f.Offset[0]
}

// Get2D returns the fixed offset
func (f FixedSampler) Get2D() Vec2 {
	return f.Offset
}
