package render

import (
	"errors"
	"image"
	"image/png"
	"io"
	"sync"
)

// ErrEmptySlot is returned when a slot has no image attached.
var ErrEmptySlot = errors.New("canvas is empty")

// Canvas is a drawing surface a Preview can be mounted on.
type Canvas interface {
	// Reset clears whatever was attached before.
	Reset()
	// Show attaches img.
	Show(img image.Image)
}

// Slot is the canvas backing the dashboard preview image. It keeps the last
// attached image and serves it as PNG.
type Slot struct {
	mu      sync.RWMutex
	img     image.Image
	version int
}

func NewSlot() *Slot { return &Slot{} }

func (s *Slot) Reset() {
	s.mu.Lock()
	s.img = nil
	s.version++
	s.mu.Unlock()
}

func (s *Slot) Show(img image.Image) {
	s.mu.Lock()
	s.img = img
	s.version++
	s.mu.Unlock()
}

func (s *Slot) Image() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img
}

// Version increases on every Reset and Show. Pages append it to the image
// URL so browsers refetch after a change.
func (s *Slot) Version() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Slot) WritePNG(w io.Writer) error {
	img := s.Image()
	if img == nil {
		return ErrEmptySlot
	}
	return png.Encode(w, img)
}
