//go:build ocr

// Package ocr detects words in page images with the Tesseract OCR engine.
//
// This package wraps Tesseract via gosseract and is compiled in with the
// "ocr" build tag. It requires Tesseract to be installed on the system. On
// macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
package ocr

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/retext/model"
	"github.com/tsawler/retext/pages"
)

// Client wraps a Tesseract engine. A Client serialises its own calls and may
// be shared, but it holds native resources and must be closed.
type Client struct {
	mu      sync.Mutex
	client  *gosseract.Client
	options Options
}

// New creates a new OCR client with default options.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a new OCR client
func NewWithOptions(opts Options) (*Client, error) {
	opts = opts.withDefaults()
	client := gosseract.NewClient()

	if err := client.SetLanguage(opts.Language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(opts.PageSegMode)); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if opts.Whitelist != "" {
		if err := client.SetWhitelist(opts.Whitelist); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set whitelist: %w", err)
		}
	}

	return &Client{client: client, options: opts}, nil
}

// Close releases OCR resources
func (c *Client) Close() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		err := c.client.Close()
		c.client = nil
		return err
	}
	return nil
}

// Options returns the options the client was created with
func (c *Client) Options() Options {
	return c.options
}

// Detect recognizes the words in img and returns one detection per word in
// Tesseract's iterator order. That is reading order (top to bottom, left to
// right within a line) for PSMAuto and the block modes; PSMSparseText gives
// no ordering guarantee. Each quad is the word's axis-aligned box,
// relative to the top-left corner of img. The image is preprocessed as the
// client's Options ask.
// Tesseract calls cannot be interrupted; ctx is checked before and after.
func (c *Client) Detect(ctx context.Context, img image.Image) ([]model.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prepared, factor := Preprocess(img, c.options)
	data, err := pages.EncodePNG(prepared)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil, ErrClosed
	}

	if err := c.client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	detections := make([]model.Detection, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}

		detections = append(detections, model.Detection{
			Quad:       model.NewQuadFromRect(box.Box),
			Text:       text,
			Confidence: box.Confidence / 100,
		})
	}

	return unscale(detections, factor), nil
}

// RecognizeRegion returns the text inside r, a rectangle in img's coordinate
// space. It is used to re-read a single region after detection.
func (c *Client) RecognizeRegion(ctx context.Context, img image.Image, r image.Rectangle) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return "", nil
	}

	prepared, _ := Preprocess(Crop(img, r), c.options)
	data, err := pages.EncodePNG(prepared)
	if err != nil {
		return "", err
	}
	return c.RecognizeImage(data)
}

// RecognizeImage performs OCR on encoded image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return "", ErrClosed
	}

	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}
