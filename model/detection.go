package model

// NoConfidence marks a detection whose engine did not report a confidence
const NoConfidence = -1.0

// Detection is one OCR-reported token or line with its bounding quadrilateral.
// Detections are produced by an OCR engine and treated as read-only input.
type Detection struct {
	// Quad is the bounding quadrilateral (TL, TR, BR, BL)
	Quad Quad `json:"quad" yaml:"quad"`

	// Text is the recognized text
	Text string `json:"text" yaml:"text"`

	// Confidence is the engine's confidence in [0,1], or NoConfidence
	Confidence float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// HasConfidence reports whether the engine supplied a confidence value
func (d Detection) HasConfidence() bool {
	return d.Confidence >= 0
}

// Bounds returns the axis-aligned box around the detection's quad
func (d Detection) Bounds() BBox {
	return AxisAlignedBounds(d.Quad)
}

// Centroid returns the centroid of the detection's quad
func (d Detection) Centroid() Point {
	return Centroid(d.Quad)
}
