// Package layout turns raw OCR detections into editable text regions.
//
// # Font Size Estimation
//
// [EstimateFontSize] derives a redraw size from a detection's left edge:
// half of the top-left to bottom-left distance, floored, and never below
// [MinFontSize]. It is a coarse approximation, not a font metric.
//
// # Region Merging
//
// OCR engines report one detection per word or line fragment. A [Merger]
// collapses them into fewer [model.Region] values. Two greedy single-pass
// policies are available:
//
//   - [CentroidMerger] (policy "centroid", the default) walks detections in
//     emission order and extends the current region while consecutive
//     centroids are closer than the threshold
//   - [AlignmentMerger] (policy "alignment") sorts boxes by (top, left) and
//     merges top-aligned or left-aligned neighbours of similar extent, then
//     pads every region by [AlignmentMargin] pixels
//
// Neither policy performs full spatial clustering. Results depend on input
// order and are deterministic for a given order and threshold.
//
// # Configuration
//
//	merger := layout.NewMerger(layout.MergeConfig{
//	    Policy:    layout.PolicyAlignment,
//	    Threshold: 12,
//	})
//	regions := merger.Merge(detections)
package layout
