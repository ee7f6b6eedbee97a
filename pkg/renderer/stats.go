package renderer

import (
	"time"

	"github.com/df07/go-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	Elapsed        time.Duration // Wall time of the render
	MeanVariance   float64       // Average variance of the pixel means (luminance)
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator for convergence
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := float64(core.Luminance(color))
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Mul(1 / float32(ps.SampleCount))
}

// Variance returns the unbiased sample variance of the luminance.
// Fewer than two samples give zero.
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	variance := (ps.LuminanceSqAccum - n*mean*mean) / (n - 1)
	// Rounding can push a constant signal slightly negative
	return max(0, variance)
}

// MeanVariance returns the variance of the pixel's mean luminance, Variance / n
func (ps *PixelStats) MeanVariance() float64 {
	if ps.SampleCount == 0 {
		return 0
	}
	return ps.Variance() / float64(ps.SampleCount)
}

// merge folds the statistics of one render unit into s
func (s *RenderStats) merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	// Accumulates a sum here; finalize turns it into a mean
	s.MeanVariance += other.MeanVariance
}

// finalize calculates averages once all units are merged
func (s *RenderStats) finalize() {
	if s.TotalPixels == 0 {
		return
	}
	s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	s.MeanVariance /= float64(s.TotalPixels)
}
