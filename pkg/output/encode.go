// Package output turns rendered images into files: gamma encoding,
// format selection, thumbnails and upload to S3-compatible storage.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// DefaultGamma is the display gamma applied when saving
const DefaultGamma = 2.2

// ErrUnknownFormat is returned for file extensions with no image encoder
var ErrUnknownFormat = errors.New("unknown image format")

// ToNRGBA converts linear colors to 8-bit sRGB-ish pixels: each channel is
// clamped to [0,1], raised to 1/gamma and quantized. gamma <= 0 or 1 leaves colors linear.
func ToNRGBA(img *renderer.Image, gamma float32) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))

	for row := 0; row < img.Height; row++ {
		for x := 0; x < img.Width; x++ {
			c := core.Clamp(img.At(x, row), 0, 1)
			if gamma > 0 && gamma != 1 {
				c = core.GammaCorrect(c, gamma)
			}
			out.SetNRGBA(x, row, color.NRGBA{
				R: uint8(255 * c[0]),
				G: uint8(255 * c[1]),
				B: uint8(255 * c[2]),
				A: 255,
			})
		}
	}

	return out
}

// FormatFromFilename picks the encoder from a file extension
func FormatFromFilename(path string) (imaging.Format, error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return format, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	return format, nil
}

// ContentType returns the MIME type for an image format
func ContentType(format imaging.Format) string {
	switch format {
	case imaging.JPEG:
		return "image/jpeg"
	case imaging.GIF:
		return "image/gif"
	case imaging.TIFF:
		return "image/tiff"
	case imaging.BMP:
		return "image/bmp"
	default:
		return "image/png"
	}
}

// Save writes the image to path, choosing the format from the extension
func Save(path string, img *renderer.Image, gamma float32) error {
	if _, err := FormatFromFilename(path); err != nil {
		return err
	}
	if err := imaging.Save(ToNRGBA(img, gamma), path); err != nil {
		return fmt.Errorf("while saving %s: %w", path, err)
	}
	return nil
}

// SaveImage writes an already-encoded image such as a thumbnail
func SaveImage(path string, img image.Image) error {
	if _, err := FormatFromFilename(path); err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("while saving %s: %w", path, err)
	}
	return nil
}

// Encode writes the image to w in the given format
func Encode(w io.Writer, img *renderer.Image, gamma float32, format imaging.Format) error {
	return imaging.Encode(w, ToNRGBA(img, gamma), format)
}

// EncodeBytes encodes an image into memory
func EncodeBytes(img image.Image, format imaging.Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, fmt.Errorf("while encoding %v: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Thumbnail scales img down to maxWidth, keeping the aspect ratio.
// Images already narrow enough are returned unchanged.
func Thumbnail(img image.Image, maxWidth uint) image.Image {
	if maxWidth == 0 || uint(img.Bounds().Dx()) <= maxWidth {
		return img
	}
	return resize.Resize(maxWidth, 0, img, resize.Bilinear)
}
