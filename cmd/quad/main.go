// Command quad opens a window and draws one textured quad until the window
// is closed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gogpu/quad"
	_ "github.com/gogpu/quad/backend/native"
	"github.com/gogpu/quad/window"
)

// SDL requires the main OS thread.
func init() { runtime.LockOSThread() }

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		width      = flag.Int("width", 0, "window width (overrides config)")
		height     = flag.Int("height", 0, "window height (overrides config)")
		backend    = flag.String("backend", "", "backend name (overrides config)")
		logLevel   = flag.String("log-level", "", "debug, info, warn or error (overrides config)")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, err := quad.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	quad.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app := quad.New(
		quad.WithConfig(cfg),
		quad.WithWindowFactory(window.Open),
		quad.WithLogger(logger),
	)
	res := quad.Run(ctx, app)
	stop()
	os.Exit(res.ExitCode())
}

func loadConfig(path string) (quad.Config, error) {
	if path == "" {
		return quad.DefaultConfig(), nil
	}
	return quad.LoadConfig(path)
}
