package renderer

import "github.com/df07/go-raytracer/pkg/core"

// Image is a row-major buffer of linear colors. Row 0 is the top of the picture.
type Image struct {
	Width  int
	Height int
	Pix    []core.Vec3
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, row)
func (img *Image) At(x, row int) core.Vec3 {
	return img.Pix[row*img.Width+x]
}

// Set sets the color of pixel (x, row)
func (img *Image) Set(x, row int, c core.Vec3) {
	img.Pix[row*img.Width+x] = c
}

// Row returns the slice of Pix holding one row. Writes go straight to the image.
func (img *Image) Row(row int) []core.Vec3 {
	start := row * img.Width
	return img.Pix[start : start+img.Width : start+img.Width]
}

// AverageLuminance calculates the average luminance of the image
func (img *Image) AverageLuminance() float64 {
	if len(img.Pix) == 0 {
		return 0
	}

	var totalLum float64
	for _, c := range img.Pix {
		totalLum += float64(core.Luminance(c))
	}
	return totalLum / float64(len(img.Pix))
}
