package renderer

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// RowRenderer renders individual image rows. It holds no mutable state,
// so one RowRenderer can serve every worker.
type RowRenderer struct {
	scene           core.Scene
	width           int
	height          int
	samplesPerPixel int
}

// NewRowRenderer creates a new row renderer for an image of the given size
func NewRowRenderer(scene core.Scene, width, height, samplesPerPixel int) *RowRenderer {
	return &RowRenderer{
		scene:           scene,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
	}
}

// RenderRow renders camera-space row y (0 is the bottom) into dst, which must hold width pixels.
// The returned stats carry the summed, not averaged, MeanVariance of the row.
func (rr *RowRenderer) RenderRow(y int, dst []core.Vec3, sampler core.Sampler) RenderStats {
	camera := rr.scene.GetCamera()
	stats := RenderStats{TotalPixels: rr.width}

	for x := 0; x < rr.width; x++ {
		var ps PixelStats
		rr.samplePixel(camera, x, y, &ps, sampler)
		dst[x] = ps.GetColor()

		stats.TotalSamples += ps.SampleCount
		stats.MeanVariance += ps.MeanVariance()
	}

	return stats
}

// samplePixel averages samplesPerPixel jittered rays through pixel (x, y)
func (rr *RowRenderer) samplePixel(camera core.Camera, x, y int, ps *PixelStats, sampler core.Sampler) {
	for s := 0; s < rr.samplesPerPixel; s++ {
		jitter := sampler.Get2D()
		u := (float32(x) + jitter[0]) / float32(rr.width)
		v := (float32(y) + jitter[1]) / float32(rr.height)

		ps.AddSample(rr.scene.Color(camera.GetRay(u, v)))
	}
}
