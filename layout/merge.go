package layout

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tsawler/retext/model"
)

// Policy names a region merge strategy
type Policy string

const (
	// PolicyCentroid merges consecutive detections whose centroids are close
	PolicyCentroid Policy = "centroid"

	// PolicyAlignment sorts boxes and merges edge-aligned neighbours
	PolicyAlignment Policy = "alignment"
)

// DefaultPolicy is used when no policy is configured
const DefaultPolicy = PolicyCentroid

// DefaultThreshold is the default merge distance in pixels
const DefaultThreshold = 10.0

// AlignmentMargin is the padding added around every region produced by the
// alignment policy
const AlignmentMargin = 5.0

// ParsePolicy converts a policy name to a Policy
func ParsePolicy(name string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(name))) {
	case PolicyCentroid:
		return PolicyCentroid, nil
	case PolicyAlignment:
		return PolicyAlignment, nil
	case "":
		return DefaultPolicy, nil
	default:
		return "", fmt.Errorf("unknown merge policy %q (want %q or %q)", name, PolicyCentroid, PolicyAlignment)
	}
}

// MergeConfig holds configuration for region merging
type MergeConfig struct {
	// Policy selects the merge strategy (default: centroid)
	Policy Policy

	// Threshold is the maximum centroid or edge distance in pixels at which
	// two detections are folded into one region (default: 10)
	Threshold float64
}

// DefaultMergeConfig returns the default merge configuration
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		Policy:    DefaultPolicy,
		Threshold: DefaultThreshold,
	}
}

// Merger collapses word-level detections into regions. Implementations are
// greedy single-pass walks: the result depends on input order and is
// deterministic for a given order and threshold.
type Merger interface {
	Merge(detections []model.Detection) []model.Region
}

// NewMerger returns the merger for config.Policy. Unknown policies fall back
// to the centroid merger and non-positive thresholds to DefaultThreshold.
func NewMerger(config MergeConfig) Merger {
	threshold := config.Threshold
	if threshold <= 0 || math.IsNaN(threshold) {
		threshold = DefaultThreshold
	}

	if config.Policy == PolicyAlignment {
		return NewAlignmentMerger(threshold)
	}
	return NewCentroidMerger(threshold)
}

// ============================================================================
// Centroid policy
// ============================================================================

// CentroidMerger walks detections in emission order and extends the current
// region while each detection's centroid lies within the threshold of the
// previous detection's centroid.
//
// Only neighbours in emission order are compared, so two detections that
// are close on the page but not adjacent in the input stay separate.
type CentroidMerger struct {
	threshold float64
}

// NewCentroidMerger creates a centroid merger with the given threshold
func NewCentroidMerger(threshold float64) *CentroidMerger {
	return &CentroidMerger{threshold: threshold}
}

// Threshold returns the merge distance
func (m *CentroidMerger) Threshold() float64 {
	return m.threshold
}

// Merge implements Merger
func (m *CentroidMerger) Merge(detections []model.Detection) []model.Region {
	regions := make([]model.Region, 0, len(detections))
	if len(detections) == 0 {
		return regions
	}

	current := regionFrom(detections[0])
	last := detections[0].Centroid()

	for _, det := range detections[1:] {
		centroid := det.Centroid()

		if model.Distance(last, centroid) < m.threshold {
			current = extend(current, det.Bounds(), det.Text, EstimateFontSize(det.Quad))
		} else {
			regions = append(regions, current)
			current = regionFrom(det)
		}

		last = centroid
	}

	return append(regions, current)
}

// ============================================================================
// Alignment policy
// ============================================================================

// AlignmentMerger converts detections to axis-aligned boxes, sorts them by
// (top, left) and merges each box into the last output region when the two
// are top-aligned with a similar height, or left-aligned with a similar
// width. Every resulting region is padded by AlignmentMargin.
type AlignmentMerger struct {
	threshold float64
	margin    float64
}

// NewAlignmentMerger creates an alignment merger with the given threshold
func NewAlignmentMerger(threshold float64) *AlignmentMerger {
	return &AlignmentMerger{
		threshold: threshold,
		margin:    AlignmentMargin,
	}
}

// Threshold returns the alignment tolerance
func (m *AlignmentMerger) Threshold() float64 {
	return m.threshold
}

// Merge implements Merger
func (m *AlignmentMerger) Merge(detections []model.Detection) []model.Region {
	boxes := make([]model.Region, len(detections))
	for i, det := range detections {
		boxes[i] = regionFrom(det)
	}

	// Stable so that equal (top, left) keys keep emission order
	sort.SliceStable(boxes, func(i, j int) bool {
		if boxes[i].BBox.Top() != boxes[j].BBox.Top() {
			return boxes[i].BBox.Top() < boxes[j].BBox.Top()
		}
		return boxes[i].BBox.Left() < boxes[j].BBox.Left()
	})

	regions := make([]model.Region, 0, len(boxes))
	for _, box := range boxes {
		if n := len(regions); n > 0 && m.aligned(regions[n-1].BBox, box.BBox) {
			regions[n-1] = extend(regions[n-1], box.BBox, box.Text, box.FontSize)
			continue
		}
		regions = append(regions, box)
	}

	for i := range regions {
		regions[i].BBox = regions[i].BBox.Expand(m.margin)
	}

	return regions
}

// aligned reports whether cur should be folded into prev
func (m *AlignmentMerger) aligned(prev, cur model.BBox) bool {
	topAligned := math.Abs(prev.Top()-cur.Top()) < m.threshold &&
		math.Abs(prev.Height-cur.Height) < m.threshold
	if topAligned {
		return true
	}

	return math.Abs(prev.Left()-cur.Left()) < m.threshold &&
		math.Abs(prev.Width-cur.Width) < m.threshold
}

// ============================================================================
// Helpers
// ============================================================================

// regionFrom starts a region from a single detection
func regionFrom(det model.Detection) model.Region {
	return model.Region{
		BBox:     det.Bounds(),
		Text:     strings.TrimSpace(det.Text),
		FontSize: EstimateFontSize(det.Quad),
	}
}

// extend folds another box into a region: union of boxes, space-joined text,
// and the larger font size
func extend(r model.Region, bbox model.BBox, text string, fontSize int) model.Region {
	r.BBox = model.MergeBounds(r.BBox, bbox)
	r.Text = joinText(r.Text, text)
	r.FontSize = max(r.FontSize, fontSize)
	return r
}

// joinText appends next to prev with a single separating space, skipping
// blank fragments
func joinText(prev, next string) string {
	next = strings.TrimSpace(next)
	switch {
	case next == "":
		return prev
	case prev == "":
		return next
	default:
		return prev + " " + next
	}
}
