package retext

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tsawler/retext/layout"
	"github.com/tsawler/retext/model"
)

// ErrRegionNotFound is returned for a region ID that is not on the page
var ErrRegionNotFound = errors.New("region not found")

// regionNamespace seeds the name-based region IDs
var regionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/tsawler/retext/region"))

// RegionID returns the stable ID of the i-th region on a page. IDs are
// derived from the position alone, so re-running detection with the same
// input yields the same IDs.
func RegionID(page, i int) string {
	return uuid.NewSHA1(regionNamespace, []byte(fmt.Sprintf("page-%d/region-%d", page, i))).String()
}

// Edit is an operator's replacement for one region. Zero values fall back to
// the region's own settings when the edit is applied.
type Edit struct {
	// Text replaces the region's text; it may contain explicit line breaks
	Text string

	// FontSize overrides the region's font size when positive
	FontSize int

	// Thickness is the stroke weight; zero uses the document default
	Thickness int

	// WrapWidth is the line width budget in pixels. Zero uses the region's
	// width; negative values are passed through and wrap one character per
	// line.
	WrapWidth int
}

// Resolve fills the zero fields of e from region and the default thickness.
// The font size is clamped and the thickness capped at the font size.
func (e Edit) Resolve(region model.Region, defaultThickness int) Edit {
	if e.FontSize <= 0 {
		e.FontSize = region.FontSize
	}
	e.FontSize = layout.ClampFontSize(e.FontSize)

	if e.Thickness <= 0 {
		e.Thickness = defaultThickness
	}
	e.Thickness = min(max(e.Thickness, 1), e.FontSize)

	if e.WrapWidth == 0 {
		e.WrapWidth = int(region.BBox.Width)
	}
	return e
}

// PageState is the editing state of one page: its regions in display order
// and the edits staged against them. Methods never modify the receiver;
// transitions return a new PageState.
type PageState struct {
	// Index is the page index
	Index int

	// Regions maps region ID to the region's current text and geometry
	Regions map[string]model.Region

	// Order lists region IDs in merger output order
	Order []string

	// Pending holds staged edits that have not been rendered yet
	Pending map[string]Edit

	// detected keeps regions as produced by detection, for Reset
	detected map[string]model.Region
}

// NewPageState adopts merged regions for a page of the given size. Each
// region gets a stable ID and its box is clamped to the page.
func NewPageState(index int, regions []model.Region, width, height int) PageState {
	s := PageState{
		Index:    index,
		Regions:  make(map[string]model.Region, len(regions)),
		Order:    make([]string, 0, len(regions)),
		Pending:  make(map[string]Edit),
		detected: make(map[string]model.Region, len(regions)),
	}

	for i, r := range regions {
		r.ID = RegionID(index, i)
		r.BBox = r.BBox.Clamp(width, height)
		r.FontSize = layout.ClampFontSize(r.FontSize)

		s.Regions[r.ID] = r
		s.detected[r.ID] = r
		s.Order = append(s.Order, r.ID)
	}

	return s
}

// clone returns a copy whose maps and slices can be modified freely
func (s PageState) clone() PageState {
	c := PageState{
		Index:    s.Index,
		Regions:  make(map[string]model.Region, len(s.Regions)),
		Order:    append([]string(nil), s.Order...),
		Pending:  make(map[string]Edit, len(s.Pending)),
		detected: s.detected, // never modified after construction
	}
	for id, r := range s.Regions {
		c.Regions[id] = r
	}
	for id, e := range s.Pending {
		c.Pending[id] = e
	}
	return c
}

// Region returns the region with the given ID
func (s PageState) Region(id string) (model.Region, bool) {
	r, ok := s.Regions[id]
	return r, ok
}

// RegionList returns the regions in display order
func (s PageState) RegionList() []model.Region {
	list := make([]model.Region, 0, len(s.Order))
	for _, id := range s.Order {
		list = append(list, s.Regions[id])
	}
	return list
}

// PendingIDs returns the IDs of regions with staged edits, in display order
func (s PageState) PendingIDs() []string {
	var ids []string
	for _, id := range s.Order {
		if _, ok := s.Pending[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Stage records an edit for a region, replacing any earlier staged edit
func (s PageState) Stage(id string, e Edit) (PageState, error) {
	if _, ok := s.Regions[id]; !ok {
		return s, fmt.Errorf("page %d, region %s: %w", s.Index, id, ErrRegionNotFound)
	}

	next := s.clone()
	next.Pending[id] = e
	return next, nil
}

// Discard drops a staged edit
func (s PageState) Discard(id string) PageState {
	if _, ok := s.Pending[id]; !ok {
		return s
	}

	next := s.clone()
	delete(next.Pending, id)
	return next
}

// Commit folds every staged edit into its region's text and font size and
// clears the pending set. It is called once the edits have been rendered.
func (s PageState) Commit() PageState {
	if len(s.Pending) == 0 {
		return s
	}

	next := s.clone()
	for id, e := range s.Pending {
		r := next.Regions[id]
		r.Text = e.Text
		if e.FontSize > 0 {
			r.FontSize = layout.ClampFontSize(e.FontSize)
		}
		next.Regions[id] = r
	}
	next.Pending = make(map[string]Edit)
	return next
}

// Reset restores every region to its detected text and font size and clears
// the pending set
func (s PageState) Reset() PageState {
	next := s.clone()
	for id, r := range s.detected {
		next.Regions[id] = r
	}
	next.Pending = make(map[string]Edit)
	return next
}
