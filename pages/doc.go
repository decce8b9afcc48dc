// Package pages holds page images and the codecs used to load and save them.
//
// # Page Store
//
// A [Store] keeps two buffers per page: the original, stored once and never
// written again, and the current image shown to the operator. Edits never
// modify a buffer; they install a new one:
//
//	store := pages.NewStore()
//	idx, _ := store.Add(img)
//	err := store.Update(idx, func(cur *image.RGBA) (*image.RGBA, error) {
//	    return renderer.EditRegion(cur, params)
//	})
//	store.Reset(idx) // current is the original again
//
// Each page has its own lock. [Store.Update] holds it for the whole
// read-modify-install cycle, so one page has a single writer at a time
// while different pages proceed independently.
//
// # Image Codecs
//
// [LoadImage] and [Decode] accept PNG, JPEG and GIF from the standard
// library plus TIFF, BMP and WebP from golang.org/x/image. [EncodePNG] and
// [SavePNG] write results.
package pages
