package ocr

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/tsawler/retext/model"
)

// maxScaledSide caps the longer side of an enlarged image
const maxScaledSide = 16384

// Preprocess prepares img for recognition according to opts. It returns the
// image to recognize, with its origin at (0,0), and the factor by which its
// coordinates exceed those of img.
func Preprocess(img image.Image, opts Options) (image.Image, float64) {
	opts = opts.withDefaults()
	bounds := img.Bounds()

	var out image.Image = img
	if opts.Grayscale {
		out = imaging.Grayscale(out)
	}

	factor := 1.0
	if opts.Scale > 1 && !bounds.Empty() {
		longest := float64(max(bounds.Dx(), bounds.Dy()))
		scale := math.Min(opts.Scale, maxScaledSide/longest)

		if width := int(math.Round(float64(bounds.Dx()) * scale)); width > bounds.Dx() {
			out = imaging.Resize(out, width, 0, imaging.Lanczos)
			factor = float64(width) / float64(bounds.Dx())
		}
	}

	return out, factor
}

// Crop returns the part of img inside r, with its origin at (0,0)
func Crop(img image.Image, r image.Rectangle) image.Image {
	return imaging.Crop(img, r)
}

// unscale maps detections found on an image enlarged by factor back to the
// source image
func unscale(detections []model.Detection, factor float64) []model.Detection {
	if factor == 1 {
		return detections
	}

	for i := range detections {
		for j := range detections[i].Quad {
			detections[i].Quad[j].X /= factor
			detections[i].Quad[j].Y /= factor
		}
	}
	return detections
}
