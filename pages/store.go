package pages

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/tsawler/retext/render"
)

// ErrPageOutOfRange is returned for a page index that does not exist
var ErrPageOutOfRange = errors.New("page index out of range")

// ErrNilImage is returned when a nil buffer is offered to the store
var ErrNilImage = errors.New("nil image")

// page holds one page's buffers. original is set once and never written;
// current is replaced wholesale, never modified in place.
type page struct {
	mu       sync.RWMutex
	original *image.RGBA
	current  *image.RGBA
}

// Store holds the original and current image of every page. Each page has
// its own lock, so work on different pages never contends.
type Store struct {
	mu    sync.RWMutex
	pages []*page
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Add stores a private copy of img as a new page's original and current
// image and returns the page index
func (s *Store) Add(img image.Image) (int, error) {
	if img == nil {
		return 0, ErrNilImage
	}

	original := render.Clone(img)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pages = append(s.pages, &page{original: original, current: original})
	return len(s.pages) - 1, nil
}

// Len returns the number of pages
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

func (s *Store) page(index int) (*page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.pages) {
		return nil, fmt.Errorf("page %d of %d: %w", index, len(s.pages), ErrPageOutOfRange)
	}
	return s.pages[index], nil
}

// Get returns the page's current image. The buffer is shared and must be
// treated as read-only.
func (s *Store) Get(index int) (*image.RGBA, error) {
	p, err := s.page(index)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current, nil
}

// Original returns the page's original image. The buffer is shared and must
// be treated as read-only.
func (s *Store) Original(index int) (*image.RGBA, error) {
	p, err := s.page(index)
	if err != nil {
		return nil, err
	}
	return p.original, nil
}

// Edited reports whether the page's current image differs from its original
func (s *Store) Edited(index int) (bool, error) {
	p, err := s.page(index)
	if err != nil {
		return false, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current != p.original, nil
}

// SetCurrent replaces the page's current image
func (s *Store) SetCurrent(index int, img *image.RGBA) error {
	if img == nil {
		return ErrNilImage
	}

	p, err := s.page(index)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = img
	return nil
}

// Update runs fn on the page's current image while holding the page's write
// lock and installs the buffer fn returns. fn must not modify its argument.
// If fn fails the current image is left unchanged.
func (s *Store) Update(index int, fn func(current *image.RGBA) (*image.RGBA, error)) error {
	p, err := s.page(index)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	next, err := fn(p.current)
	if err != nil {
		return err
	}
	if next == nil {
		return ErrNilImage
	}

	p.current = next
	return nil
}

// Reset makes the page's original image current again
func (s *Store) Reset(index int) error {
	p, err := s.page(index)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = p.original
	return nil
}
