// Package render edits a page buffer in place of a text region.
//
// A [Renderer] erases a region's box with opaque white and draws wrapped
// replacement lines in opaque black using the Go Regular typeface from
// golang.org/x/image. The first baseline sits one font size below the top
// of the box and each following line [LinePitchFactor] font sizes lower.
// Stroke weight is simulated by re-drawing each line at small offsets.
//
//	r, _ := render.New()
//	edited, err := r.EditRegion(page, render.Params{
//	    BBox:      region.BBox,
//	    Lines:     text.Wrap(newText, int(region.BBox.Width), region.FontSize),
//	    FontSize:  region.FontSize,
//	    Thickness: 2,
//	})
//
// Edits are copy-on-write: [Renderer.EditRegion] returns a fresh
// *image.RGBA and never touches its input. Boxes are clamped to the buffer;
// text is not clipped to the box and may run below it.
package render
