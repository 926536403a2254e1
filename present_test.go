package quad

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/gogpu/quad/gpucore"
	"github.com/gogpu/quad/gpucore/gputest"
)

func TestChoosePresentMode(t *testing.T) {
	for mask := range 8 {
		mailbox, immediate, vsync := mask&1 != 0, mask&2 != 0, mask&4 != 0
		t.Run(fmt.Sprintf("mailbox=%v,immediate=%v,vsync=%v", mailbox, immediate, vsync), func(t *testing.T) {
			supported := map[gpucore.PresentMode]bool{
				gpucore.PresentModeMailbox:   mailbox,
				gpucore.PresentModeImmediate: immediate,
				gpucore.PresentModeVSync:     vsync,
			}
			want := gpucore.PresentModeVSync
			switch {
			case mailbox:
				want = gpucore.PresentModeMailbox
			case immediate:
				want = gpucore.PresentModeImmediate
			}

			got := ChoosePresentMode(func(m gpucore.PresentMode) bool { return supported[m] })
			if got != want {
				t.Errorf("ChoosePresentMode() = %v, want %v", got, want)
			}
		})
	}
}

func TestChoosePresentModeQueriesInPriorityOrder(t *testing.T) {
	var asked []gpucore.PresentMode
	ChoosePresentMode(func(m gpucore.PresentMode) bool {
		asked = append(asked, m)
		return false
	})
	want := []gpucore.PresentMode{gpucore.PresentModeMailbox, gpucore.PresentModeImmediate}
	if !slices.Equal(asked, want) {
		t.Errorf("queried %v, want %v", asked, want)
	}
}

func TestNegotiatePresentMode(t *testing.T) {
	tests := []struct {
		name      string
		supported []gpucore.PresentMode
		fail      bool
		wantMode  gpucore.PresentMode
		wantApply gpucore.PresentMode
	}{
		{"mailbox", []gpucore.PresentMode{gpucore.PresentModeMailbox, gpucore.PresentModeImmediate}, false, gpucore.PresentModeMailbox, gpucore.PresentModeMailbox},
		{"immediate", []gpucore.PresentMode{gpucore.PresentModeImmediate}, false, gpucore.PresentModeImmediate, gpucore.PresentModeImmediate},
		{"vsync only", nil, false, gpucore.PresentModeVSync, gpucore.PresentModeVSync},
		{"update fails", []gpucore.PresentMode{gpucore.PresentModeMailbox}, true, gpucore.PresentModeMailbox, gpucore.PresentModeVSync},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := gputest.New()
			dev.PresentModes = tt.supported
			if tt.fail {
				dev.Fail(gputest.OpSetSwapchainParameters, errors.New("boom"))
			}
			win := gputest.NewWindow(640, 480)
			if err := dev.ClaimWindow(win); err != nil {
				t.Fatalf("ClaimWindow() error = %v", err)
			}

			got := negotiatePresentMode(Logger(), dev, win)
			if got != tt.wantMode {
				t.Errorf("negotiatePresentMode() = %v, want %v", got, tt.wantMode)
			}
			if applied := dev.PresentMode(); applied != tt.wantApply {
				t.Errorf("device present mode = %v, want %v", applied, tt.wantApply)
			}
		})
	}
}
