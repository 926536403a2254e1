package quad

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/quad/backend"
	"github.com/gogpu/quad/gpucore"
	"github.com/gogpu/quad/internal/image"
)

// App holds every object the quad renderer owns, from Init until Quit.
//
// An App is single-use and not safe for concurrent use; all callbacks run
// on the thread that opened the window.
type App struct {
	opts appOptions
	log  *slog.Logger

	window       Window
	device       gpucore.Device
	backendName  string
	presentMode  gpucore.PresentMode
	pipeline     gpucore.GraphicsPipeline
	vertexBuffer gpucore.Buffer
	texture      gpucore.Texture
	sampler      gpucore.Sampler

	owned  *releaser
	frames uint64
	closed bool
}

// New creates an App. Nothing is opened until Init.
func New(opts ...Option) *App {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}
	return &App{opts: o, log: log}
}

// Init opens the window and device and creates the GPU objects. On
// failure every object already created is released and Failure is
// returned.
func (a *App) Init() Result {
	if a.owned != nil || a.closed {
		a.log.Error("app already initialized")
		return Failure
	}
	cfg := a.opts.config
	a.log.Info("starting", "app", cfg.Window.Title, "id", cfg.Window.AppID, "version", Version)

	if err := cfg.Validate(); err != nil {
		a.log.Error("init failed", "error", err)
		return Failure
	}

	var rel releaser
	defer rel.unwind()
	if err := a.create(&rel); err != nil {
		a.log.Error("init failed", "error", err)
		var se *StageError
		if errors.As(err, &se) {
			a.log.Debug("releasing partial init", "stage", se.Stage, "objects", rel.len())
		}
		a.reset()
		return Failure
	}
	a.owned = rel.take()
	a.log.Info("init done", "backend", a.backendName, "present_mode", a.presentMode)
	return Continue
}

// create runs the init stages in dependency order, pushing a release
// function for each object onto rel.
func (a *App) create(rel *releaser) error {
	cfg := a.opts.config

	if a.opts.windowFactory == nil {
		return stageErr(StageWindow, ErrNoWindowFactory)
	}
	w, err := a.opts.windowFactory(cfg.Window)
	if err != nil {
		return stageErr(StageWindow, err)
	}
	rel.push(w.Destroy)
	a.window = w
	pw, ph := w.PixelSize()
	a.log.Info("window opened",
		"title", cfg.Window.Title,
		"size", fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.Height),
		"pixels", fmt.Sprintf("%dx%d", pw, ph),
		"resizable", cfg.Window.Resizable)

	dev, name, err := a.openDevice()
	if err != nil {
		return stageErr(StageDevice, err)
	}
	rel.push(dev.Destroy)
	a.device, a.backendName = dev, name
	a.log.Info("device opened", "backend", name, "driver", dev.Driver())

	if err := dev.ClaimWindow(w); err != nil {
		return stageErr(StageClaim, err)
	}
	rel.push(func() { dev.ReleaseWindow(w) })
	a.presentMode = negotiatePresentMode(a.log, dev, w)

	pipeline, err := BuildPipeline(dev, dev.SwapchainFormat(w), DefaultPipelineSpec(), a.opts.assets)
	if err != nil {
		return stageErr(StagePipeline, err)
	}
	rel.push(func() { dev.ReleaseGraphicsPipeline(pipeline) })
	a.pipeline = pipeline

	vertices := QuadVertices(cfg.Quad.Size, cfg.Quad.Shrink)
	buf, err := UploadGeometry(dev, vertices[:])
	if err != nil {
		return stageErr(StageGeometry, err)
	}
	rel.push(func() { dev.ReleaseBuffer(buf) })
	a.vertexBuffer = buf

	px, format, err := image.Decode(a.opts.assets.Texture, cfg.Texture.MaxDimension)
	if err != nil {
		return stageErr(StageTexture, err)
	}
	a.log.Debug("texture decoded", "format", format, "width", px.Width, "height", px.Height)
	tex, err := UploadTexture(dev, px)
	if err != nil {
		return stageErr(StageTexture, err)
	}
	rel.push(func() { dev.ReleaseTexture(tex) })
	a.texture = tex

	sampler, err := CreateSampler(dev, DefaultSamplerSpec())
	if err != nil {
		return stageErr(StageSampler, err)
	}
	rel.push(func() { dev.ReleaseSampler(sampler) })
	a.sampler = sampler
	return nil
}

func (a *App) openDevice() (gpucore.Device, string, error) {
	opts := backend.Options{
		ShaderFormats: gpucore.ShaderFormatSPIRV | gpucore.ShaderFormatWGSL,
		Debug:         a.opts.config.Debug,
	}
	if name := a.opts.config.Backend; name != "" {
		dev, err := backend.Open(name, opts)
		return dev, name, err
	}
	return backend.OpenDefault(opts)
}

// reset drops references to released objects.
func (a *App) reset() {
	a.window = nil
	a.device = nil
	a.pipeline = nil
	a.vertexBuffer = nil
	a.texture = nil
	a.sampler = nil
}

// Iterate renders one frame. It returns Failure when the frame cannot be
// recorded or submitted.
func (a *App) Iterate() Result {
	if a.owned == nil {
		a.log.Error("iterate failed", "error", ErrNotInitialized)
		return Failure
	}
	err := RenderFrame(a.device, &Frame{
		Window:       a.window,
		Pipeline:     a.pipeline,
		VertexBuffer: a.vertexBuffer,
		Texture:      a.texture,
		Sampler:      a.sampler,
		ClearColor:   a.opts.config.clearColor(),
	})
	if err != nil {
		a.log.Error("render failed", "frame", a.frames, "error", err)
		return Failure
	}
	a.frames++
	return Continue
}

// Event handles one window event. A quit event ends the application with
// Success; every other event is ignored.
func (a *App) Event(ev Event) Result {
	switch ev.Kind {
	case EventQuit:
		return Success
	case EventWindowResized:
		a.log.Debug("window resized", "width", ev.Width, "height", ev.Height)
	case EventWindowMinimized, EventWindowRestored:
		a.log.Debug("window event", "kind", ev.Kind)
	}
	return Continue
}

// Quit waits for the device to go idle and releases every object in
// reverse creation order. It is safe to call more than once and after a
// failed Init.
func (a *App) Quit() {
	if a.closed {
		return
	}
	a.closed = true
	a.log.Info("closing app")
	if a.owned != nil {
		if err := a.device.WaitIdle(); err != nil {
			a.log.Warn("wait idle failed", "error", err)
		}
		a.owned.unwind()
		a.owned = nil
		a.reset()
	}
	a.log.Info("app closed", "frames", a.frames)
}

// Device returns the GPU device, or nil before Init or after Quit.
func (a *App) Device() gpucore.Device { return a.device }

// Backend returns the name of the backend the device came from.
func (a *App) Backend() string { return a.backendName }

// PresentMode returns the present mode chosen during Init.
func (a *App) PresentMode() gpucore.PresentMode { return a.presentMode }

// Pipeline returns the quad pipeline.
func (a *App) Pipeline() gpucore.GraphicsPipeline { return a.pipeline }

// VertexBuffer returns the static geometry buffer.
func (a *App) VertexBuffer() gpucore.Buffer { return a.vertexBuffer }

// Texture returns the quad texture.
func (a *App) Texture() gpucore.Texture { return a.texture }

// Sampler returns the quad sampler.
func (a *App) Sampler() gpucore.Sampler { return a.sampler }

// Frames returns the number of frames rendered.
func (a *App) Frames() uint64 { return a.frames }
