package model

import "fmt"

// Region is a merged, editable text area built from one or more detections
type Region struct {
	// ID identifies the region within its page. The merger leaves it empty;
	// it is assigned when a page state adopts the region.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// BBox is the axis-aligned area the region occupies
	BBox BBox `json:"bbox" yaml:"bbox"`

	// Text is the region's text, space-joined when merged
	Text string `json:"text" yaml:"text"`

	// FontSize is the estimated (or operator-chosen) font size, always >= 1
	FontSize int `json:"fontSize" yaml:"fontSize"`
}

// String returns a short human-readable description
func (r Region) String() string {
	return fmt.Sprintf("%q at (%.0f,%.0f %.0fx%.0f) size %d",
		r.Text, r.BBox.X, r.BBox.Y, r.BBox.Width, r.BBox.Height, r.FontSize)
}
