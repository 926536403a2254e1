package quad

import (
	"errors"
	"fmt"
)

// Package errors.
var (
	// ErrNoWindowFactory is returned by Init when no window factory is configured.
	ErrNoWindowFactory = errors.New("quad: no window factory")

	// ErrAcquireCommandBuffer wraps command buffer acquisition failures.
	// It is fatal to the render loop.
	ErrAcquireCommandBuffer = errors.New("quad: acquire command buffer")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("quad: invalid config")

	// ErrInvalidPixels is returned when pixel data does not match its dimensions.
	ErrInvalidPixels = errors.New("quad: invalid pixel data")

	// ErrNotInitialized is returned when frames are rendered before Init succeeded.
	ErrNotInitialized = errors.New("quad: not initialized")
)

// Init stages, in creation order.
const (
	StageWindow   = "window"
	StageDevice   = "device"
	StageClaim    = "claim window"
	StagePipeline = "pipeline"
	StageGeometry = "geometry"
	StageTexture  = "texture"
	StageSampler  = "sampler"
)

// StageError records which initialization stage failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("quad: init %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage string, err error) error {
	return &StageError{Stage: stage, Err: err}
}
