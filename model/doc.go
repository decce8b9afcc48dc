// Package model provides the data types shared by the detection, merge and
// edit stages.
//
// # Detections and Regions
//
// A [Detection] is what an OCR engine reports for one token or line: a
// [Quad] and the recognized text. A [Region] is the editable unit built by
// merging detections: an axis-aligned [BBox], the joined text, and an
// estimated font size.
//
// # Geometry
//
// Coordinates are image pixels with the origin at the top-left corner:
//
//   - [Point] - 2D point with distance calculation
//   - [Quad] - four-corner detection outline
//   - [BBox] - axis-aligned box with union, expansion and clamping
//
// The free functions [Centroid], [Distance], [AxisAlignedBounds] and
// [MergeBounds] are the building blocks of the region merger.
package model
