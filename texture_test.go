package quad

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad/assets"
	"github.com/gogpu/quad/gpucore/gputest"
	"github.com/gogpu/quad/internal/image"
)

func testPixels(t *testing.T, w, h int) (*image.Pixels, []byte) {
	t.Helper()
	pix := make([]byte, w*h*image.BytesPerPixel)
	for i := range pix {
		pix[i] = byte(i)
	}
	px, err := image.NewPixels(w, h, bytes.Clone(pix))
	if err != nil {
		t.Fatalf("NewPixels() error = %v", err)
	}
	return px, pix
}

func TestUploadTexture(t *testing.T) {
	dev := gputest.New()
	px, pix := testPixels(t, 3, 2)

	tex, err := UploadTexture(dev, px)
	if err != nil {
		t.Fatalf("UploadTexture() error = %v", err)
	}
	if !px.Released() {
		t.Error("pixels not released after upload")
	}
	if tex.Width() != 3 || tex.Height() != 2 {
		t.Errorf("texture = %dx%d, want 3x2", tex.Width(), tex.Height())
	}

	desc := tex.(*gputest.Texture).Desc
	if desc.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v, want RGBA8Unorm", desc.Format)
	}
	if desc.Dimension != gputypes.TextureDimension2D || desc.NumLevels != 1 || desc.LayerCountOrDepth != 1 {
		t.Errorf("desc = %+v, want 2D with 1 mip and 1 layer", desc)
	}
	if desc.Usage&gputypes.TextureUsageTextureBinding == 0 {
		t.Errorf("usage = %v, want texture binding", desc.Usage)
	}
	if got := dev.Contents(tex); !bytes.Equal(got, pix) {
		t.Error("uploaded texels differ from pixels")
	}

	cmd := dev.Submitted()[0].Commands()[1]
	if cmd.Op != "UploadToTexture" {
		t.Fatalf("command = %s, want UploadToTexture", cmd.Op)
	}
	// offset, pixels per row, rows per layer, w, h, d
	if want := []uint32{0, 3, 2, 3, 2, 1}; !slices.Equal(cmd.Args, want) {
		t.Errorf("upload args = %v, want %v", cmd.Args, want)
	}
}

func TestUploadTextureReleasesPixelsOnFailure(t *testing.T) {
	for _, op := range []string{gputest.OpCreateTexture, gputest.OpCreateTransferBuffer, gputest.OpSubmit} {
		t.Run(op, func(t *testing.T) {
			dev := gputest.New()
			dev.Fail(op, errors.New("boom"))
			px, _ := testPixels(t, 2, 2)

			if _, err := UploadTexture(dev, px); err == nil {
				t.Fatal("UploadTexture() succeeded, want error")
			}
			if !px.Released() {
				t.Error("pixels not released")
			}
			if live := dev.Live(); len(live) != 0 {
				t.Errorf("leaked %v", live)
			}
		})
	}
}

func TestUploadTextureInvalidPixels(t *testing.T) {
	dev := gputest.New()
	px := &image.Pixels{Width: 2, Height: 2, Pix: make([]byte, 15)}

	_, err := UploadTexture(dev, px)
	if !errors.Is(err, ErrInvalidPixels) {
		t.Fatalf("UploadTexture() error = %v, want ErrInvalidPixels", err)
	}
	if dev.CallCount(gputest.OpCreateTexture) != 0 {
		t.Error("texture created for invalid pixels")
	}
}

func TestDecodedTextureLength(t *testing.T) {
	px, _, err := image.Decode(assets.Default().Texture, DefaultConfig().Texture.MaxDimension)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer px.Release()
	if got, want := px.Size(), px.Width*px.Height*4; got != want {
		t.Errorf("decoded length = %d, want w*h*4 = %d", got, want)
	}
}

func TestCreateSampler(t *testing.T) {
	dev := gputest.New()
	s, err := CreateSampler(dev, DefaultSamplerSpec())
	if err != nil {
		t.Fatalf("CreateSampler() error = %v", err)
	}
	d := s.(*gputest.Sampler).Desc
	for _, m := range []gputypes.AddressMode{d.AddressModeU, d.AddressModeV, d.AddressModeW} {
		if m != gputypes.AddressModeClampToEdge {
			t.Errorf("address mode = %v, want clamp to edge", m)
		}
	}
	for _, f := range []gputypes.FilterMode{d.MinFilter, d.MagFilter, d.MipmapFilter} {
		if f != gputypes.FilterModeLinear {
			t.Errorf("filter = %v, want linear", f)
		}
	}
	if d.MaxAnisotropy != 1 || d.EnableAnisotropy {
		t.Errorf("anisotropy = %d (enabled %v), want 1 disabled", d.MaxAnisotropy, d.EnableAnisotropy)
	}
}
