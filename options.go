package quad

import (
	"log/slog"

	"github.com/gogpu/quad/assets"
)

// Option configures an App during creation.
//
// Example:
//
//	// Defaults: 1920x1080 window, default backend, bundled assets
//	app := quad.New(quad.WithWindowFactory(window.Open))
//
//	// Explicit backend and config
//	app := quad.New(
//	    quad.WithWindowFactory(window.Open),
//	    quad.WithConfig(cfg),
//	    quad.WithBackend("native"),
//	)
type Option func(*appOptions)

// appOptions holds optional configuration for App creation.
type appOptions struct {
	config        Config
	windowFactory WindowFactory
	assets        assets.Bundle
	logger        *slog.Logger
}

// defaultOptions returns the default app options.
func defaultOptions() appOptions {
	return appOptions{
		config: DefaultConfig(),
		assets: assets.Default(),
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(o *appOptions) {
		o.config = cfg
	}
}

// WithBackend selects a registered backend by name, overriding Config.Backend.
func WithBackend(name string) Option {
	return func(o *appOptions) {
		o.config.Backend = name
	}
}

// WithWindowFactory sets the function Init uses to open the window.
//
// Example:
//
//	import "github.com/gogpu/quad/window"
//
//	app := quad.New(quad.WithWindowFactory(window.Open))
func WithWindowFactory(f WindowFactory) Option {
	return func(o *appOptions) {
		o.windowFactory = f
	}
}

// WithAssets replaces the bundled shaders and texture.
func WithAssets(b assets.Bundle) Option {
	return func(o *appOptions) {
		o.assets = b
	}
}

// WithLogger sets the logger for this App. Without it the App logs to
// the package logger returned by Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}
