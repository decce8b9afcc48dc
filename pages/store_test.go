package pages

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/retext/render"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestStore_AddCopiesInput(t *testing.T) {
	s := NewStore()
	src := solid(4, 4, color.RGBA{10, 20, 30, 255})

	idx, err := s.Add(src)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, s.Len())

	// mutating the caller's image must not reach the store
	src.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})

	orig, err := s.Original(idx)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, orig.RGBAAt(0, 0))

	cur, err := s.Get(idx)
	require.NoError(t, err)
	assert.Same(t, orig, cur, "current starts as the original")

	edited, err := s.Edited(idx)
	require.NoError(t, err)
	assert.False(t, edited)
}

func TestStore_AddRejectsNil(t *testing.T) {
	_, err := NewStore().Add(nil)
	assert.ErrorIs(t, err, ErrNilImage)
}

func TestStore_OutOfRange(t *testing.T) {
	s := NewStore()
	_, err := s.Add(solid(1, 1, color.RGBA{A: 255}))
	require.NoError(t, err)

	_, err = s.Get(1)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	_, err = s.Original(-1)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	assert.ErrorIs(t, s.Reset(5), ErrPageOutOfRange)
	assert.ErrorIs(t, s.SetCurrent(2, solid(1, 1, color.RGBA{})), ErrPageOutOfRange)
}

func TestStore_SetCurrentAndReset(t *testing.T) {
	s := NewStore()
	idx, err := s.Add(solid(2, 2, color.RGBA{1, 1, 1, 255}))
	require.NoError(t, err)
	orig, _ := s.Original(idx)
	snapshot := append([]uint8(nil), orig.Pix...)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.SetCurrent(idx, solid(2, 2, color.RGBA{uint8(i), 0, 0, 255})))
	}

	edited, _ := s.Edited(idx)
	assert.True(t, edited)

	require.NoError(t, s.Reset(idx))
	cur, _ := s.Get(idx)
	assert.Same(t, orig, cur)
	assert.Equal(t, snapshot, cur.Pix)

	assert.ErrorIs(t, s.SetCurrent(idx, nil), ErrNilImage)
}

func TestStore_UpdateFailureKeepsCurrent(t *testing.T) {
	s := NewStore()
	idx, _ := s.Add(solid(2, 2, color.RGBA{A: 255}))
	before, _ := s.Get(idx)

	err := s.Update(idx, func(cur *image.RGBA) (*image.RGBA, error) {
		return nil, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	err = s.Update(idx, func(cur *image.RGBA) (*image.RGBA, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrNilImage)

	after, _ := s.Get(idx)
	assert.Same(t, before, after)
}

func TestStore_UpdateSerialisesWritersPerPage(t *testing.T) {
	s := NewStore()
	idx, _ := s.Add(solid(1, 1, color.RGBA{A: 255}))

	// Each writer reads the current red value and writes value+1. Lost
	// updates would leave the final value below the number of writers.
	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(idx, func(cur *image.RGBA) (*image.RGBA, error) {
				next := render.Clone(cur)
				c := next.RGBAAt(0, 0)
				c.R++
				next.SetRGBA(0, 0, c)
				return next, nil
			})
		}()
	}
	wg.Wait()

	cur, _ := s.Get(idx)
	assert.Equal(t, uint8(writers), cur.RGBAAt(0, 0).R)

	orig, _ := s.Original(idx)
	assert.Equal(t, uint8(0), orig.RGBAAt(0, 0).R, "original must never change")
}

func TestStore_PagesAreIndependent(t *testing.T) {
	s := NewStore()
	a, _ := s.Add(solid(1, 1, color.RGBA{A: 255}))
	b, _ := s.Add(solid(1, 1, color.RGBA{A: 255}))

	require.NoError(t, s.SetCurrent(a, solid(1, 1, color.RGBA{R: 9, A: 255})))

	edited, _ := s.Edited(b)
	assert.False(t, edited)
	curB, _ := s.Get(b)
	assert.Equal(t, uint8(0), curB.RGBAAt(0, 0).R)
}

func TestDecodeAndEncodePNG(t *testing.T) {
	src := solid(3, 2, color.RGBA{200, 100, 50, 255})
	data, err := EncodePNG(src)
	require.NoError(t, err)

	img, format, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, src.Bounds(), img.Bounds())

	_, _, err = Decode(bytes.NewReader([]byte("definitely not an image")))
	assert.Error(t, err)
}

func TestLoadAndSavePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.png")

	require.NoError(t, SavePNG(path, solid(5, 5, color.RGBA{0, 0, 255, 255})))

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 5, img.Bounds().Dx())

	_, err = LoadImage(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsSupportedFormat(t *testing.T) {
	assert.True(t, IsSupportedFormat("scan.TIFF"))
	assert.True(t, IsSupportedFormat("page.webp"))
	assert.False(t, IsSupportedFormat("doc.pdf"))
}
