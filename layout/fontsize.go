package layout

import (
	"math"

	"github.com/tsawler/retext/model"
)

// MinFontSize is the floor for every estimated or requested font size
const MinFontSize = 1

// maxFontSize keeps absurd outlines from overflowing int conversion
const maxFontSize = 1 << 20

// EstimateFontSize approximates a usable font size from a detection outline.
//
// The left edge (top-left to bottom-left) approximates the glyph height and
// half of it is taken as the redraw size. This is a rough heuristic with no
// font metrics behind it. Degenerate or non-finite quads yield MinFontSize.
func EstimateFontSize(q model.Quad) int {
	height := q[model.TopLeft].Distance(q[model.BottomLeft])
	if math.IsNaN(height) || math.IsInf(height, 0) {
		return MinFontSize
	}

	half := math.Floor(height / 2)
	if half > maxFontSize {
		return maxFontSize
	}

	size := int(half)
	if size < MinFontSize {
		return MinFontSize
	}
	return size
}

// ClampFontSize keeps a requested size between MinFontSize and the largest
// size EstimateFontSize can return
func ClampFontSize(size int) int {
	return min(max(size, MinFontSize), maxFontSize)
}
