// Package retext finds text regions in scanned page images and replaces
// their text in place.
//
// A Document holds one or more page images. For each page it keeps the
// original buffer, the current buffer and the page's regions. Regions come
// from a Detector such as the Tesseract client in the ocr package, or from
// detections supplied by the caller. Word-level detections are merged into
// regions by a layout.Merger.
//
// Basic usage:
//
//	doc, err := retext.New(retext.WithDetector(client))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
//	page, err := doc.LoadPage("scan.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	regions, err := doc.Detect(ctx, page)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	img, warnings, err := doc.EditRegion(ctx, page, regions[0].ID, retext.Edit{Text: "Replacement"})
//
// Edits are copy-on-write: each Apply renders onto a fresh copy of the
// current image, so images returned earlier never change. Several edits can
// be staged with StageEdit and rendered together by one Apply. Reset returns
// a page to its original image.
//
// The editor erases each edited region with white and draws the new text in
// black at the left edge of the region. Text is wrapped to the region width
// but may run past the bottom of the region.
package retext
