package quad

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/gogpu/quad/assets"
)

// TestNewDefaults tests that New uses the default config and bundled assets.
func TestNewDefaults(t *testing.T) {
	app := New()
	if app.opts.config.Window.Width != 1920 {
		t.Errorf("window width = %d, want 1920", app.opts.config.Window.Width)
	}
	if !bytes.Equal(app.opts.assets.Texture, assets.Default().Texture) {
		t.Error("default assets not bundled")
	}
	if app.opts.windowFactory != nil {
		t.Error("window factory set without WithWindowFactory")
	}
	if app.log != Logger() {
		t.Error("App should log to the package logger by default")
	}
}

// TestOptionsOrder tests that later options override earlier ones.
func TestOptionsOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "from-config"
	cfg.Window.Width = 640

	app := New(WithConfig(cfg), WithBackend("override"))
	if app.opts.config.Backend != "override" {
		t.Errorf("backend = %q, want override", app.opts.config.Backend)
	}
	if app.opts.config.Window.Width != 640 {
		t.Errorf("window width = %d, want 640", app.opts.config.Window.Width)
	}

	app = New(WithBackend("first"), WithConfig(cfg))
	if app.opts.config.Backend != "from-config" {
		t.Errorf("backend = %q, want from-config", app.opts.config.Backend)
	}
}

func TestWithAssetsAndLogger(t *testing.T) {
	b := assets.Bundle{VertexShader: []byte("v"), FragmentShader: []byte("f"), Texture: []byte("t")}
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	app := New(WithAssets(b), WithLogger(l))
	if string(app.opts.assets.VertexShader) != "v" || string(app.opts.assets.Texture) != "t" {
		t.Errorf("assets = %+v", app.opts.assets)
	}
	if app.log != l {
		t.Fatal("WithLogger not applied")
	}

	app.Quit()
	if !bytes.Contains(buf.Bytes(), []byte("closing app")) {
		t.Errorf("log output = %q, want closing app", buf.String())
	}
}
