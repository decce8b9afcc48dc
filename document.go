package retext

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tsawler/retext/internal/logging"
	"github.com/tsawler/retext/layout"
	"github.com/tsawler/retext/model"
	"github.com/tsawler/retext/pages"
	"github.com/tsawler/retext/render"
	"github.com/tsawler/retext/text"
)

const tracerName = "github.com/tsawler/retext"

var (
	// ErrNoDetector is returned by Detect when the document has no detector
	ErrNoDetector = errors.New("no text detector configured")

	// ErrClosed is returned by every operation after Close
	ErrClosed = errors.New("document is closed")
)

// Detector finds words or lines of text in a page image. ocr.Client
// satisfies it when built with the "ocr" tag.
type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]model.Detection, error)
}

// pageState pairs a page's PageState with the lock that serialises its
// transitions
type pageState struct {
	mu    sync.Mutex
	state PageState
}

// Document is a set of page images open for editing. It owns each page's
// original and current buffers together with its detected regions and
// staged edits. Different pages may be edited concurrently; operations on
// one page are serialised.
type Document struct {
	store    *pages.Store
	merger   layout.Merger
	detector Detector
	renderer *render.Renderer

	thickness int

	logger *slog.Logger
	tracer trace.Tracer

	mu     sync.RWMutex // guards states and closed
	states []*pageState
	closed bool
}

// New creates an empty Document
func New(opts ...Option) (*Document, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.renderer == nil {
		r, err := render.New()
		if err != nil {
			return nil, err
		}
		o.renderer = r
	}
	if o.merger == nil {
		o.merger = layout.NewMerger(o.merge)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}

	return &Document{
		store:     pages.NewStore(),
		merger:    o.merger,
		detector:  o.detector,
		renderer:  o.renderer,
		thickness: o.thickness,
		logger:    o.logger,
		tracer:    o.tracerProvider.Tracer(tracerName),
	}, nil
}

// AddPage appends a page image and returns its index. The image is copied;
// later changes to img do not affect the document.
func (d *Document) AddPage(img image.Image) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, ErrClosed
	}

	index, err := d.store.Add(img)
	if err != nil {
		return 0, err
	}

	bounds := img.Bounds()
	d.states = append(d.states, &pageState{
		state: NewPageState(index, nil, bounds.Dx(), bounds.Dy()),
	})

	d.logger.Debug("page added", "page", index, "width", bounds.Dx(), "height", bounds.Dy())
	return index, nil
}

// LoadPage decodes an image file and appends it as a page
func (d *Document) LoadPage(path string) (int, error) {
	img, err := pages.LoadImage(path)
	if err != nil {
		return 0, err
	}
	return d.AddPage(img)
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.states)
}

// page returns the state holder for a page index
func (d *Document) page(index int) (*pageState, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return nil, ErrClosed
	}
	if index < 0 || index >= len(d.states) {
		return nil, fmt.Errorf("page %d of %d: %w", index, len(d.states), pages.ErrPageOutOfRange)
	}
	return d.states[index], nil
}

// Detect runs the detector on the page's current image, merges the
// detections into regions and replaces the page's regions with them. Staged
// edits are dropped.
func (d *Document) Detect(ctx context.Context, page int) (regions []model.Region, err error) {
	ctx, span := d.tracer.Start(ctx, "retext.Detect", trace.WithAttributes(attribute.Int("page", page)))
	defer func() {
		endSpan(span, err)
	}()

	ps, err := d.page(page)
	if err != nil {
		return nil, err
	}
	if d.detector == nil {
		return nil, ErrNoDetector
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	current, err := d.store.Get(page)
	if err != nil {
		return nil, err
	}

	detections, err := d.detector.Detect(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("detect page %d: %w", page, err)
	}
	span.SetAttributes(attribute.Int("detections", len(detections)))

	regions = d.adopt(ps, page, current.Bounds(), detections)
	span.SetAttributes(attribute.Int("regions", len(regions)))
	return regions, nil
}

// SetDetections merges externally produced detections into the page's
// regions, replacing any earlier ones. Staged edits are dropped.
func (d *Document) SetDetections(page int, detections []model.Detection) ([]model.Region, error) {
	ps, err := d.page(page)
	if err != nil {
		return nil, err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	original, err := d.store.Original(page)
	if err != nil {
		return nil, err
	}

	return d.adopt(ps, page, original.Bounds(), detections), nil
}

// adopt merges detections and installs the result. ps must be locked.
func (d *Document) adopt(ps *pageState, page int, bounds image.Rectangle, detections []model.Detection) []model.Region {
	merged := d.merger.Merge(detections)
	ps.state = NewPageState(page, merged, bounds.Dx(), bounds.Dy())

	d.logger.Info("regions detected",
		"page", page,
		"detections", len(detections),
		"regions", len(merged),
	)
	return ps.state.RegionList()
}

// Regions returns the page's regions in display order
func (d *Document) Regions(page int) ([]model.Region, error) {
	ps, err := d.page(page)
	if err != nil {
		return nil, err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.state.RegionList(), nil
}

// Region returns one region by ID
func (d *Document) Region(page int, id string) (model.Region, error) {
	ps, err := d.page(page)
	if err != nil {
		return model.Region{}, err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	r, ok := ps.state.Region(id)
	if !ok {
		return model.Region{}, fmt.Errorf("page %d, region %s: %w", page, id, ErrRegionNotFound)
	}
	return r, nil
}

// StageEdit records an edit for a region without rendering it
func (d *Document) StageEdit(page int, id string, edit Edit) error {
	ps, err := d.page(page)
	if err != nil {
		return err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	next, err := ps.state.Stage(id, edit)
	if err != nil {
		return err
	}
	ps.state = next

	d.logger.Debug("edit staged", "page", page, "region", id)
	return nil
}

// DiscardEdit drops a staged edit. Discarding a region without one is a
// no-op.
func (d *Document) DiscardEdit(page int, id string) error {
	ps, err := d.page(page)
	if err != nil {
		return err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.state = ps.state.Discard(id)
	return nil
}

// Pending returns the staged edits of a page keyed by region ID
func (d *Document) Pending(page int) (map[string]Edit, error) {
	ps, err := d.page(page)
	if err != nil {
		return nil, err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	pending := make(map[string]Edit, len(ps.state.Pending))
	for id, e := range ps.state.Pending {
		pending[id] = e
	}
	return pending, nil
}

// Apply renders every staged edit of a page, in region order, onto a single
// new copy of the current image and makes that copy current. Earlier buffers
// returned by Current are not modified. With nothing staged the current
// image is returned unchanged.
func (d *Document) Apply(ctx context.Context, page int) (img image.Image, warnings []Warning, err error) {
	ctx, span := d.tracer.Start(ctx, "retext.Apply", trace.WithAttributes(attribute.Int("page", page)))
	defer func() {
		endSpan(span, err)
	}()

	ps, err := d.page(page)
	if err != nil {
		return nil, nil, err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	state := ps.state
	ids := state.PendingIDs()
	if len(ids) == 0 {
		current, err := d.store.Get(page)
		if err != nil {
			return nil, nil, err
		}
		return current, nil, nil
	}
	span.SetAttributes(attribute.Int("edits", len(ids)))
	start := time.Now()

	var result *image.RGBA
	err = d.store.Update(page, func(current *image.RGBA) (*image.RGBA, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dst := render.Clone(current)
		for _, id := range ids {
			region := state.Regions[id]
			edit := state.Pending[id].Resolve(region, d.thickness)

			lines := text.Wrap(edit.Text, edit.WrapWidth, edit.FontSize)
			warnings = append(warnings, d.check(page, region, edit, lines)...)

			params := render.Params{
				BBox:      region.BBox,
				Lines:     lines,
				FontSize:  edit.FontSize,
				Thickness: edit.Thickness,
			}
			if err := d.renderer.Apply(dst, params); err != nil {
				return nil, fmt.Errorf("page %d, region %s: %w", page, id, err)
			}
		}

		result = dst
		return dst, nil
	})
	if err != nil {
		return nil, nil, err
	}

	ps.state = state.Commit()

	for _, w := range warnings {
		d.logger.WarnContext(ctx, w.Message, "page", w.Page, "region", w.RegionID)
	}
	d.logger.InfoContext(ctx, "edits applied",
		"page", page,
		"regions", ids,
		"warnings", len(warnings),
		"duration", time.Since(start),
	)

	return result, warnings, nil
}

// check reports degraded results for one resolved edit
func (d *Document) check(page int, region model.Region, edit Edit, lines []string) []Warning {
	var warnings []Warning
	warn := func(format string, args ...any) {
		warnings = append(warnings, Warning{
			Page:     page,
			RegionID: region.ID,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if region.BBox.IsEmpty() {
		warn("region has no area on the page; nothing is erased")
	}
	if edit.WrapWidth <= 0 {
		warn("wrap width %d is not positive; one character per line", edit.WrapWidth)
	}
	if text.DetectDirection(edit.Text) == text.RTL {
		warn("right-to-left text is drawn left to right")
	}

	if len(lines) > 0 {
		// bottom of the last line's baseline, relative to the box top
		height := edit.FontSize + (len(lines)-1)*edit.FontSize*render.LinePitchFactor
		if float64(height) > region.BBox.Height {
			warn("%d lines need %dpx but the region is %.0fpx tall", len(lines), height, region.BBox.Height)
		}
	}

	return warnings
}

// EditRegion stages an edit for one region and applies every staged edit of
// its page
func (d *Document) EditRegion(ctx context.Context, page int, id string, edit Edit) (image.Image, []Warning, error) {
	if err := d.StageEdit(page, id, edit); err != nil {
		return nil, nil, err
	}
	return d.Apply(ctx, page)
}

// Current returns the page's current image. The buffer is never modified
// after it is returned.
func (d *Document) Current(page int) (image.Image, error) {
	if _, err := d.page(page); err != nil {
		return nil, err
	}
	return d.store.Get(page)
}

// Original returns the page's image as loaded
func (d *Document) Original(page int) (image.Image, error) {
	if _, err := d.page(page); err != nil {
		return nil, err
	}
	return d.store.Original(page)
}

// Reset discards every applied and staged edit on a page. The original image
// becomes current again and regions get back their detected text and font
// size.
func (d *Document) Reset(page int) error {
	ps, err := d.page(page)
	if err != nil {
		return err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if err := d.store.Reset(page); err != nil {
		return err
	}
	ps.state = ps.state.Reset()

	d.logger.Info("page reset", "page", page)
	return nil
}

// Close releases the detector if it implements io.Closer. Every later call
// returns ErrClosed. Close is idempotent.
func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if c, ok := d.detector.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
