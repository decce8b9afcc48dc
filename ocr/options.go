package ocr

import "errors"

// ErrClosed is returned by a Client after Close
var ErrClosed = errors.New("OCR client is closed")

// Page segmentation modes (values match Tesseract's)
const (
	PSMAuto        = 3  // Fully automatic page segmentation, words in reading order
	PSMSingleBlock = 6  // Single uniform block of text
	PSMSingleLine  = 7  // Single text line
	PSMSparseText  = 11 // Find as much text as possible, in no particular order
)

// Options configures a Client
type Options struct {
	// Language lists Tesseract languages, "+" separated (default "eng")
	Language string

	// PageSegMode is the Tesseract page segmentation mode (default PSMAuto).
	// PSMSparseText finds more scattered words but returns them unordered,
	// which the centroid merge policy does not expect.
	PageSegMode int

	// Whitelist restricts recognized characters when non-empty
	Whitelist string

	// Scale enlarges the image before recognition when greater than 1.
	// Detections are mapped back to source coordinates.
	Scale float64

	// Grayscale converts the image to gray before recognition
	Grayscale bool
}

// DefaultOptions returns the default OCR options
func DefaultOptions() Options {
	return Options{
		Language:    "eng",
		PageSegMode: PSMAuto,
		Scale:       1,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Language == "" {
		o.Language = def.Language
	}
	if o.PageSegMode <= 0 {
		o.PageSegMode = def.PageSegMode
	}
	if !(o.Scale > 1) {
		o.Scale = 1
	}
	return o
}
