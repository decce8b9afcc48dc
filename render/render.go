package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/retext/model"
)

// LinePitchFactor is the baseline advance between wrapped lines, as a
// multiple of the font size
const LinePitchFactor = 3

// DefaultThickness is the stroke weight used when none is given
const DefaultThickness = 2

var (
	// EraseColor fills a region before redrawing
	EraseColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// TextColor is used for replacement text
	TextColor = color.RGBA{A: 255}
)

// Renderer erases regions of a page buffer and draws replacement text.
// A Renderer is safe for concurrent use.
type Renderer struct {
	font *opentype.Font
}

// New creates a Renderer that draws with the Go Regular typeface
func New() (*Renderer, error) {
	return NewWithFont(goregular.TTF)
}

// NewWithFont creates a Renderer from TrueType or OpenType font data
func NewWithFont(data []byte) (*Renderer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Renderer{font: f}, nil
}

// Params describes one region redraw
type Params struct {
	// BBox is the area to erase
	BBox model.BBox

	// Lines are the wrapped replacement lines, top to bottom
	Lines []string

	// FontSize is the glyph size in pixels, floored to 1 and capped at the
	// longer side of the buffer
	FontSize int

	// Thickness is the stroke weight in pixels, between 1 and FontSize
	Thickness int
}

// EditRegion returns a copy of src with p.BBox filled white and p.Lines drawn
// in black. The box is clamped to the buffer first. The first baseline sits
// FontSize below the clamped box top and each following line
// LinePitchFactor*FontSize further down. Lines are not clipped to the box and
// may run past its bottom; everything is clipped to the buffer. src is never
// modified.
func (r *Renderer) EditRegion(src image.Image, p Params) (*image.RGBA, error) {
	dst := Clone(src)
	if err := r.Apply(dst, p); err != nil {
		return nil, err
	}
	return dst, nil
}

// Apply erases and redraws a region in place on dst. Callers that batch
// several regions onto one fresh copy use this instead of EditRegion.
func (r *Renderer) Apply(dst *image.RGBA, p Params) error {
	Erase(dst, p.BBox)
	return r.DrawLines(dst, p.BBox, p.Lines, p.FontSize, p.Thickness)
}

// Erase fills bbox, clamped to dst, with EraseColor
func Erase(dst *image.RGBA, bbox model.BBox) {
	rect := ClampRect(dst.Bounds(), bbox)
	if rect.Empty() {
		return
	}
	draw.Draw(dst, rect, &image.Uniform{C: EraseColor}, image.Point{}, draw.Src)
}

// ClampRect converts bbox (relative to the buffer origin) to pixel
// coordinates inside bounds
func ClampRect(bounds image.Rectangle, bbox model.BBox) image.Rectangle {
	clamped := bbox.Clamp(bounds.Dx(), bounds.Dy())
	return clamped.Rect().Add(bounds.Min).Intersect(bounds)
}

// DrawLines draws lines from the top-left corner of bbox, clamped to dst.
// Nothing is drawn for a box that lies entirely off the buffer. The font size
// is capped at the longer side of dst and the thickness at the font size.
func (r *Renderer) DrawLines(dst *image.RGBA, bbox model.BBox, lines []string, fontSize, thickness int) error {
	if len(lines) == 0 || !hasText(lines) {
		return nil
	}

	bounds := dst.Bounds()
	if !onBuffer(bounds, bbox) {
		return nil
	}

	fontSize = min(max(fontSize, 1), max(bounds.Dx(), bounds.Dy(), 1))
	thickness = min(max(thickness, 1), fontSize)

	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    float64(fontSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("failed to create font face: %w", err)
	}
	defer face.Close()

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(TextColor),
		Face: face,
	}

	clamped := bbox.Clamp(bounds.Dx(), bounds.Dy())
	x := bounds.Min.X + int(clamped.Left())
	y := bounds.Min.Y + int(clamped.Top()) + fontSize
	pitch := fontSize * LinePitchFactor

	for _, line := range lines {
		// glyphs of this and every later line start below the buffer
		if y-fontSize >= bounds.Max.Y {
			break
		}
		if line != "" {
			strokeLine(drawer, line, x, y, thickness)
		}
		y += pitch
	}

	return nil
}

// onBuffer reports whether bbox overlaps bounds or, when it has no area,
// whether its top-left corner lies inside them
func onBuffer(bounds image.Rectangle, bbox model.BBox) bool {
	if !ClampRect(bounds, bbox).Empty() {
		return true
	}
	left, top := bbox.Left(), bbox.Top()
	return left >= 0 && left < float64(bounds.Dx()) &&
		top >= 0 && top < float64(bounds.Dy())
}

// strokeLine simulates stroke weight by re-drawing the line at every offset
// in a thickness x thickness square
func strokeLine(d *font.Drawer, line string, x, y, thickness int) {
	for dy := 0; dy < thickness; dy++ {
		for dx := 0; dx < thickness; dx++ {
			d.Dot = fixed.P(x+dx, y+dy)
			d.DrawString(line)
		}
	}
}

// Clone returns an RGBA copy of src with the same bounds
func Clone(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}

func hasText(lines []string) bool {
	for _, line := range lines {
		if line != "" {
			return true
		}
	}
	return false
}
