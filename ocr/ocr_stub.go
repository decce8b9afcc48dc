//go:build !ocr

// Package ocr detects words in page images with the Tesseract OCR engine.
//
// This is the stub implementation used when the "ocr" build tag is not set.
// All functions return ErrOCRNotEnabled.
//
// To enable OCR, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
package ocr

import (
	"context"
	"errors"
	"image"

	"github.com/tsawler/retext/model"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns an error indicating OCR support is not enabled.
// To enable OCR, rebuild with: go build -tags ocr
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// NewWithOptions returns an error indicating OCR support is not enabled.
func NewWithOptions(opts Options) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client.
// It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// Options returns the default options.
func (c *Client) Options() Options {
	return DefaultOptions()
}

// Detect returns an error indicating OCR support is not enabled.
func (c *Client) Detect(ctx context.Context, img image.Image) ([]model.Detection, error) {
	return nil, ErrOCRNotEnabled
}

// RecognizeImage returns an error indicating OCR support is not enabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// RecognizeRegion returns an error indicating OCR support is not enabled.
func (c *Client) RecognizeRegion(ctx context.Context, img image.Image, r image.Rectangle) (string, error) {
	return "", ErrOCRNotEnabled
}
