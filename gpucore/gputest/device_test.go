package gputest

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/quad/gpucore"
)

func TestDeviceFail(t *testing.T) {
	d := New()
	want := errors.New("boom")
	d.Fail(OpCreateBuffer, want)

	if _, err := d.CreateBuffer(&gpucore.BufferDesc{Label: "b", Size: 4}); !errors.Is(err, want) {
		t.Fatalf("CreateBuffer() error = %v, want %v", err, want)
	}

	d.Fail(OpCreateBuffer, nil)
	b, err := d.CreateBuffer(&gpucore.BufferDesc{Label: "b", Size: 4})
	if err != nil {
		t.Fatalf("CreateBuffer() after clear error = %v", err)
	}
	d.ReleaseBuffer(b)

	if got := d.CallCount(OpCreateBuffer); got != 2 {
		t.Errorf("CallCount(CreateBuffer) = %d, want 2", got)
	}
}

func TestDeviceTracksLiveResources(t *testing.T) {
	d := New()
	s, err := d.CreateSampler(&gpucore.SamplerDesc{Label: "s"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := d.CreateBuffer(&gpucore.BufferDesc{Label: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := d.Live(), []string{"b", "s"}; !slices.Equal(got, want) {
		t.Errorf("Live() = %v, want %v", got, want)
	}

	d.ReleaseBuffer(b)
	d.ReleaseSampler(s)
	if got, want := d.Released(), []string{"b", "s"}; !slices.Equal(got, want) {
		t.Errorf("Released() = %v, want %v", got, want)
	}
	if len(d.Live()) != 0 {
		t.Errorf("Live() = %v, want empty", d.Live())
	}
}

func TestDeviceDoubleReleasePanics(t *testing.T) {
	d := New()
	b, _ := d.CreateBuffer(&gpucore.BufferDesc{Label: "b"})
	d.ReleaseBuffer(b)

	defer func() {
		if recover() == nil {
			t.Error("second ReleaseBuffer did not panic")
		}
	}()
	d.ReleaseBuffer(b)
}

func TestDeviceClaimWindowOnce(t *testing.T) {
	d := New()
	w := NewWindow(64, 64)
	if err := d.ClaimWindow(w); err != nil {
		t.Fatal(err)
	}
	if err := d.ClaimWindow(NewWindow(1, 1)); !errors.Is(err, gpucore.ErrWindowClaimed) {
		t.Errorf("second ClaimWindow() error = %v, want ErrWindowClaimed", err)
	}
	d.ReleaseWindow(w)
	if d.Claimed() != nil {
		t.Error("window still claimed after ReleaseWindow")
	}
}

func TestDeviceRejectsUnsupportedShaderFormat(t *testing.T) {
	d := New()
	_, err := d.CreateShader(&gpucore.ShaderDesc{Label: "v", Format: gpucore.ShaderFormatWGSL})
	if !errors.Is(err, gpucore.ErrShaderFormat) {
		t.Errorf("CreateShader(WGSL) error = %v, want ErrShaderFormat", err)
	}
}

func TestUploadCopiesTransferContents(t *testing.T) {
	d := New()
	tb, _ := d.CreateTransferBuffer(&gpucore.TransferBufferDesc{Label: "tb", Size: 4})
	dst, err := d.MapTransferBuffer(tb, false)
	if err != nil {
		t.Fatal(err)
	}
	copy(dst, []byte{1, 2, 3, 4})
	d.UnmapTransferBuffer(tb)

	buf, _ := d.CreateBuffer(&gpucore.BufferDesc{Label: "buf", Size: 4})
	cmd, _ := d.AcquireCommandBuffer()
	pass, err := cmd.BeginCopyPass()
	if err != nil {
		t.Fatal(err)
	}
	pass.UploadToBuffer(gpucore.TransferBufferLocation{TransferBuffer: tb}, gpucore.BufferRegion{Buffer: buf, Size: 4}, false)
	pass.End()
	if err := cmd.Submit(); err != nil {
		t.Fatal(err)
	}

	if got := d.Contents(buf); !slices.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("Contents() = %v, want [1 2 3 4]", got)
	}
	if n := len(d.Submitted()); n != 1 {
		t.Errorf("Submitted() has %d entries, want 1", n)
	}
}

func TestSubmitWithOpenPassFails(t *testing.T) {
	d := New()
	cmd, _ := d.AcquireCommandBuffer()
	if _, err := cmd.BeginCopyPass(); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Submit(); !errors.Is(err, gpucore.ErrPassActive) {
		t.Errorf("Submit() error = %v, want ErrPassActive", err)
	}
}

func TestSwapchainUnavailableWhenMinimized(t *testing.T) {
	d := New()
	w := NewWindow(32, 16)
	_ = d.ClaimWindow(w)
	cmd, _ := d.AcquireCommandBuffer()

	tex, err := cmd.AcquireSwapchainTexture(w)
	if err != nil || tex == nil {
		t.Fatalf("AcquireSwapchainTexture() = %v, %v", tex, err)
	}
	if tex.Width() != 32 || tex.Height() != 16 {
		t.Errorf("swapchain size = %dx%d, want 32x16", tex.Width(), tex.Height())
	}

	w.IsMinimized = true
	tex, err = cmd.AcquireSwapchainTexture(w)
	if err != nil || tex != nil {
		t.Errorf("minimized AcquireSwapchainTexture() = %v, %v, want nil, nil", tex, err)
	}
}
