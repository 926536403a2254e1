package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// ErrEmptyData is returned when image data is empty.
var ErrEmptyData = errors.New("image: empty data")

// Decode decodes an encoded image (PNG, JPEG, GIF, BMP, TIFF or WebP) and
// converts it to RGBA8. Images whose width or height exceeds maxDimension
// are downscaled with linear filtering, preserving aspect ratio; a
// maxDimension of zero disables scaling.
//
// The returned pixels come from a shared pool; call Release when done.
func Decode(data []byte, maxDimension uint32) (*Pixels, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("image: decode: %w", err)
	}

	b := img.Bounds()
	if w, h, ok := fitWithin(b.Dx(), b.Dy(), int(maxDimension)); ok {
		img = transform.Resize(img, w, h, transform.Linear)
		b = img.Bounds()
	}

	px, err := toRGBA8(img, b, defaultPool)
	if err != nil {
		return nil, "", err
	}
	return px, format, nil
}

// fitWithin returns the size of w x h scaled down so neither side exceeds
// limit, and whether scaling is needed.
func fitWithin(w, h, limit int) (int, int, bool) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h, false
	}
	if w >= h {
		nh := max(1, (h*limit+w/2)/w)
		return limit, nh, true
	}
	nw := max(1, (w*limit+h/2)/h)
	return nw, limit, true
}

// toRGBA8 converts img to tightly packed non-premultiplied RGBA.
func toRGBA8(img image.Image, b image.Rectangle, pool *Pool) (*Pixels, error) {
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("image: empty image %dx%d", w, h)
	}

	pix := pool.Get(w * h * BytesPerPixel)
	dst := &image.NRGBA{Pix: pix, Stride: w * BytesPerPixel, Rect: image.Rect(0, 0, w, h)}
	if src, ok := img.(*image.NRGBA); ok && src.Stride == dst.Stride {
		copy(dst.Pix, src.Pix)
	} else {
		draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	}
	return &Pixels{Width: w, Height: h, Pix: pix, pool: pool}, nil
}
