package loaders

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/disintegration/imaging"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/scene"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, top row first
}

// LoadImage loads a PNG, JPEG, GIF, BMP or TIFF image and converts it to a Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	img, err := imaging.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float32(r)/65535,
				float32(g)/65535,
				float32(b)/65535,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// Lookup returns the pixel seen along direction when the image is wrapped
// around the scene as an equirectangular (latitude/longitude) map.
// -Z maps to the horizontal center, +Y to the top row.
func (d *ImageData) Lookup(direction core.Vec3) core.Vec3 {
	if len(d.Pixels) == 0 {
		return core.Vec3{}
	}

	unit := direction.Normalize()
	u := 0.5 + math32.Atan2(unit.X(), -unit.Z())/(2*math32.Pi)
	v := math32.Acos(mgl32.Clamp(unit.Y(), -1, 1)) / math32.Pi

	x := min(max(int(u*float32(d.Width)), 0), d.Width-1)
	y := min(max(int(v*float32(d.Height)), 0), d.Height-1)
	return d.Pixels[y*d.Width+x]
}

// Background returns a scene background that looks up the environment map
func (d *ImageData) Background() scene.BackgroundFunc {
	return d.Lookup
}
