package quad

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
	"gopkg.in/yaml.v3"
)

// Default geometry of the quad in normalized device coordinates.
const (
	DefaultQuadSize   float32 = 0.8
	DefaultQuadShrink float32 = 0
)

// WindowConfig configures the OS window.
type WindowConfig struct {
	Title     string `yaml:"title"`
	AppID     string `yaml:"app_id"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
}

// QuadConfig sizes the quad. Size is the half-extent of the quad; Shrink
// moves both top corners inward, turning the rectangle into a trapezoid.
type QuadConfig struct {
	Size   float32 `yaml:"size"`
	Shrink float32 `yaml:"shrink"`
}

// TextureConfig limits the uploaded texture.
type TextureConfig struct {
	// MaxDimension is the largest width or height uploaded; larger images
	// are downscaled preserving aspect ratio.
	MaxDimension uint32 `yaml:"max_dimension"`
}

// Config is the application configuration.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Quad    QuadConfig    `yaml:"quad"`
	Texture TextureConfig `yaml:"texture"`

	// Backend names a registered backend; empty selects the default.
	Backend string `yaml:"backend"`

	// Debug enables verbose backend resource logging.
	Debug bool `yaml:"debug"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// ClearColor is the RGB background, empty for black; alpha is always 1.
	ClearColor []float64 `yaml:"clear_color"`
}

// DefaultConfig returns the default configuration: a resizable 1920x1080
// window and a black background.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:     AppName,
			AppID:     AppID,
			Width:     1920,
			Height:    1080,
			Resizable: true,
		},
		Quad: QuadConfig{
			Size:   DefaultQuadSize,
			Shrink: DefaultQuadShrink,
		},
		Texture: TextureConfig{
			MaxDimension: gputypes.DefaultLimits().MaxTextureDimension2D,
		},
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their DefaultConfig values. The result is validated.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("quad: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data over DefaultConfig. Unknown fields
// are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("quad: parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case !finite(c.Quad.Size) || c.Quad.Size <= 0 || c.Quad.Size > 1:
		return fmt.Errorf("%w: quad size %v not in (0, 1]", ErrInvalidConfig, c.Quad.Size)
	case !finite(c.Quad.Shrink) || c.Quad.Shrink < 0 || c.Quad.Shrink >= c.Quad.Size:
		return fmt.Errorf("%w: quad shrink %v not in [0, %v)", ErrInvalidConfig, c.Quad.Shrink, c.Quad.Size)
	case c.Texture.MaxDimension == 0:
		return fmt.Errorf("%w: texture max dimension is zero", ErrInvalidConfig)
	}
	if n := len(c.ClearColor); n != 0 && n != 3 {
		return fmt.Errorf("%w: clear color has %d components, want 3", ErrInvalidConfig, n)
	}
	for i, v := range c.ClearColor {
		if !finite(float32(v)) || v < 0 || v > 1 {
			return fmt.Errorf("%w: clear color component %d = %v", ErrInvalidConfig, i, v)
		}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// ParseLevel converts a log level name to a slog.Level. The empty string
// is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, s)
	}
}

// clearColor returns the render pass clear color.
func (c Config) clearColor() gputypes.Color {
	if len(c.ClearColor) != 3 {
		return gputypes.Color{A: 1}
	}
	return gputypes.Color{R: c.ClearColor[0], G: c.ClearColor[1], B: c.ClearColor[2], A: 1}
}
