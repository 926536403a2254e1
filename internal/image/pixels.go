package image

import (
	"errors"
	"fmt"
)

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// ErrReleased is returned when using pixels after Release.
var ErrReleased = errors.New("image: pixels released")

// Pixels is a tightly packed, non-premultiplied RGBA8 image:
// len(Pix) == Width*Height*BytesPerPixel and rows are Width pixels apart.
type Pixels struct {
	Width  int
	Height int
	Pix    []byte

	pool *Pool
}

// NewPixels wraps pix, which must be exactly width*height*4 bytes.
func NewPixels(width, height int, pix []byte) (*Pixels, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image: invalid size %dx%d", width, height)
	}
	if want := width * height * BytesPerPixel; len(pix) != want {
		return nil, fmt.Errorf("image: %d bytes for %dx%d, want %d", len(pix), width, height, want)
	}
	return &Pixels{Width: width, Height: height, Pix: pix}, nil
}

// Size returns the byte length of the pixel data.
func (p *Pixels) Size() int { return len(p.Pix) }

// Released reports whether Release was called.
func (p *Pixels) Released() bool { return p.Pix == nil }

// Release frees the pixel data. Pixels obtained from Decode are returned
// to the decode pool. Release is idempotent.
func (p *Pixels) Release() {
	if p == nil || p.Pix == nil {
		return
	}
	if p.pool != nil {
		p.pool.Put(p.Pix)
	}
	p.Pix = nil
}
