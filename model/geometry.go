package model

import (
	"image"
	"math"
)

// Point represents a 2D point in image pixel coordinates (origin top-left, Y down)
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Distance returns the Euclidean distance between p and q
func Distance(p, q Point) float64 {
	return p.Distance(q)
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Corner indices of a Quad.
const (
	TopLeft = iota
	TopRight
	BottomRight
	BottomLeft
)

// Quad is a detection's bounding quadrilateral. Corners are expected in
// top-left, top-right, bottom-right, bottom-left order, but OCR engines do
// not always honour that, so every consumer tolerates other orders.
type Quad [4]Point

// NewQuadFromRect returns the axis-aligned quad covering r
func NewQuadFromRect(r image.Rectangle) Quad {
	minX, minY := float64(r.Min.X), float64(r.Min.Y)
	maxX, maxY := float64(r.Max.X), float64(r.Max.Y)
	return Quad{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}
}

// IsZero reports whether q is the empty quad (all corners at the origin)
func (q Quad) IsZero() bool {
	return q == Quad{}
}

// Ordered reports whether the corners are in TL, TR, BR, BL order
func (q Quad) Ordered() bool {
	return q[TopLeft].X <= q[TopRight].X &&
		q[BottomLeft].X <= q[BottomRight].X &&
		q[TopLeft].Y <= q[BottomLeft].Y &&
		q[TopRight].Y <= q[BottomRight].Y
}

func (q Quad) finite() bool {
	for _, p := range q {
		if !p.finite() {
			return false
		}
	}
	return true
}

// Centroid returns the average of the four corners
func Centroid(q Quad) Point {
	var sumX, sumY float64
	for _, p := range q {
		sumX += p.X
		sumY += p.Y
	}
	return Point{X: sumX / 4, Y: sumY / 4}
}

// AxisAlignedBounds returns the axis-aligned box around q.
//
// For consistently ordered corners the horizontal extent comes from the
// left (TL, BL) and right (TR, BR) edges and the vertical extent from the
// top (TL, TR) and bottom (BL, BR) edges. Anything else falls back to a
// min/max over all four points. Non-finite coordinates yield the zero box.
func AxisAlignedBounds(q Quad) BBox {
	if !q.finite() {
		return BBox{}
	}

	if !q.Ordered() {
		return boundsOf(q[:])
	}

	left := math.Min(q[TopLeft].X, q[BottomLeft].X)
	right := math.Max(q[TopRight].X, q[BottomRight].X)
	top := math.Min(q[TopLeft].Y, q[TopRight].Y)
	bottom := math.Max(q[BottomLeft].Y, q[BottomRight].Y)

	return BBox{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// boundsOf computes the min/max box of a set of points
func boundsOf(points []Point) BBox {
	if len(points) == 0 {
		return BBox{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return BBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// MergeBounds returns the smallest box containing both a and b
func MergeBounds(a, b BBox) BBox {
	return a.Union(b)
}

// BBox represents an axis-aligned rectangle in pixel units
type BBox struct {
	X      float64 `json:"left" yaml:"left"`
	Y      float64 `json:"top" yaml:"top"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// NewBBox creates a bounding box from its left/top corner and size
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Intersects checks if two bounding boxes intersect
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Bottom() < other.Top() ||
		b.Top() > other.Bottom())
}

// Union returns the union of two bounding boxes
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Top(), other.Top())
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Area returns the area of the bounding box
func (b BBox) Area() float64 {
	return b.Width * b.Height
}

// Expand expands the bounding box by a margin on all sides
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		X:      b.X - margin,
		Y:      b.Y - margin,
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
	}
}

// Clamp clips the box to [0,width)x[0,height). A box entirely outside the
// area collapses to an empty box on the nearest edge.
func (b BBox) Clamp(width, height int) BBox {
	w, h := float64(max(width, 0)), float64(max(height, 0))

	left := clamp(b.Left(), 0, w)
	right := clamp(b.Right(), 0, w)
	top := clamp(b.Top(), 0, h)
	bottom := clamp(b.Bottom(), 0, h)

	return BBox{
		X:      left,
		Y:      top,
		Width:  math.Max(right-left, 0),
		Height: math.Max(bottom-top, 0),
	}
}

// Rect converts the box to an image.Rectangle, rounding outward so that
// every partially covered pixel is included
func (b BBox) Rect() image.Rectangle {
	if math.IsNaN(b.X) || math.IsNaN(b.Y) || math.IsNaN(b.Width) || math.IsNaN(b.Height) {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(b.Left())),
		int(math.Floor(b.Top())),
		int(math.Ceil(b.Right())),
		int(math.Ceil(b.Bottom())),
	)
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
