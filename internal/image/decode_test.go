package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gogpu/quad/assets"
	"golang.org/x/image/bmp"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 128})
		}
	}
	return img
}

func encode(t *testing.T, img image.Image, format string) []byte {
	t.Helper()
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "bmp":
		err = bmp.Encode(&buf, img)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", format, err)
	}
	return buf.Bytes()
}

func TestDecodeLengthInvariant(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		format string
	}{
		{"png square", 16, 16, "png"},
		{"png wide", 33, 7, "png"},
		{"bmp", 9, 5, "bmp"},
		{"single pixel", 1, 1, "png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px, format, err := Decode(encode(t, testImage(tt.w, tt.h), tt.format), 0)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			defer px.Release()
			if format != tt.format {
				t.Errorf("format = %q, want %q", format, tt.format)
			}
			if px.Width != tt.w || px.Height != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", px.Width, px.Height, tt.w, tt.h)
			}
			if got, want := len(px.Pix), px.Width*px.Height*4; got != want {
				t.Errorf("len(Pix) = %d, want %d", got, want)
			}
		})
	}
}

func TestDecodeKeepsStraightAlpha(t *testing.T) {
	px, _, err := Decode(encode(t, testImage(4, 4), "png"), 0)
	if err != nil {
		t.Fatal(err)
	}
	defer px.Release()

	// Pixel (3, 2): R=3, G=2, B=200, A=128, not premultiplied.
	i := (2*px.Width + 3) * 4
	got := px.Pix[i : i+4]
	if want := []byte{3, 2, 200, 128}; !bytes.Equal(got, want) {
		t.Errorf("pixel (3,2) = %v, want %v", got, want)
	}
}

func TestDecodeDownscales(t *testing.T) {
	px, _, err := Decode(encode(t, testImage(100, 50), "png"), 20)
	if err != nil {
		t.Fatal(err)
	}
	defer px.Release()
	if px.Width != 20 || px.Height != 10 {
		t.Errorf("size = %dx%d, want 20x10", px.Width, px.Height)
	}
	if len(px.Pix) != 20*10*4 {
		t.Errorf("len(Pix) = %d, want %d", len(px.Pix), 20*10*4)
	}
}

func TestDecodeBundledTexture(t *testing.T) {
	px, format, err := Decode(assets.Default().Texture, 0)
	if err != nil {
		t.Fatalf("Decode(bundled) error = %v", err)
	}
	defer px.Release()
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if len(px.Pix) != px.Width*px.Height*4 {
		t.Errorf("len(Pix) = %d for %dx%d", len(px.Pix), px.Width, px.Height)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, _, err := Decode(nil, 0); !errors.Is(err, ErrEmptyData) {
		t.Errorf("Decode(nil) error = %v, want ErrEmptyData", err)
	}
	if _, _, err := Decode([]byte("not an image"), 0); err == nil {
		t.Error("Decode(garbage) should fail")
	}
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, limit  int
		wantW, wantH int
		wantScale    bool
	}{
		{10, 10, 0, 10, 10, false},
		{10, 10, 10, 10, 10, false},
		{100, 50, 20, 20, 10, true},
		{50, 100, 20, 10, 20, true},
		{1000, 1, 10, 10, 1, true},
	}
	for _, tt := range tests {
		w, h, ok := fitWithin(tt.w, tt.h, tt.limit)
		if w != tt.wantW || h != tt.wantH || ok != tt.wantScale {
			t.Errorf("fitWithin(%d, %d, %d) = %d, %d, %v, want %d, %d, %v",
				tt.w, tt.h, tt.limit, w, h, ok, tt.wantW, tt.wantH, tt.wantScale)
		}
	}
}

func TestPixelsRelease(t *testing.T) {
	pool := NewPool(2)
	px := &Pixels{Width: 2, Height: 2, Pix: pool.Get(16), pool: pool}

	px.Release()
	if !px.Released() {
		t.Error("Released() = false after Release")
	}
	if pool.Len(16) != 1 {
		t.Errorf("pool.Len(16) = %d, want 1", pool.Len(16))
	}

	px.Release()
	if pool.Len(16) != 1 {
		t.Error("second Release returned the buffer twice")
	}
}

func TestNewPixelsValidates(t *testing.T) {
	if _, err := NewPixels(2, 2, make([]byte, 16)); err != nil {
		t.Errorf("NewPixels(2, 2, 16 bytes) error = %v", err)
	}
	if _, err := NewPixels(2, 2, make([]byte, 15)); err == nil {
		t.Error("NewPixels with short data should fail")
	}
	if _, err := NewPixels(0, 2, nil); err == nil {
		t.Error("NewPixels with zero width should fail")
	}
}

func TestPoolReuseZeroes(t *testing.T) {
	pool := NewPool(0)
	buf := pool.Get(8)
	buf[0] = 42
	pool.Put(buf)

	again := pool.Get(8)
	if &again[0] != &buf[0] {
		t.Fatal("Get did not reuse the pooled slice")
	}
	if again[0] != 0 {
		t.Error("reused slice was not zeroed")
	}
}

func TestPoolMaxPerBucket(t *testing.T) {
	pool := NewPool(1)
	pool.Put(make([]byte, 4))
	pool.Put(make([]byte, 4))
	if pool.Len(4) != 1 {
		t.Errorf("pool.Len(4) = %d, want 1", pool.Len(4))
	}
	pool.Put(nil)
	if pool.Len(0) != 0 {
		t.Error("nil slice was pooled")
	}
}
