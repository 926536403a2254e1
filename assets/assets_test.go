package assets

import (
	"bytes"
	"strings"
	"testing"
)

func TestDefaultBundleNonEmpty(t *testing.T) {
	b := Default()
	tests := []struct {
		name string
		data []byte
	}{
		{"vertex", b.VertexShader},
		{"fragment", b.FragmentShader},
		{"texture", b.Texture},
	}
	for _, tt := range tests {
		if len(tt.data) == 0 {
			t.Errorf("%s asset is empty", tt.name)
		}
	}
}

func TestShaderSourcesContainExpectedContent(t *testing.T) {
	b := Default()
	tests := []struct {
		name     string
		source   string
		required []string
	}{
		{"vertex", string(b.VertexShader), []string{"@vertex", "fn " + EntryPoint, "@location(0)", "@location(1)"}},
		{"fragment", string(b.FragmentShader), []string{"@fragment", "fn " + EntryPoint, "texture_2d<f32>", "sampler", "textureSample"}},
	}
	for _, tt := range tests {
		for _, req := range tt.required {
			if !strings.Contains(tt.source, req) {
				t.Errorf("%s shader missing required element: %q", tt.name, req)
			}
		}
	}
}

func TestTextureIsPNG(t *testing.T) {
	if !bytes.HasPrefix(Default().Texture, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("bundled texture is not a PNG")
	}
}
