package backend

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/quad/gpucore"
)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{BackendNative}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names in selection order:
// prioritized backends first, then the rest sorted by name.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return orderedNames()
}

// orderedNames must be called with registryMu held.
func orderedNames() []string {
	names := make([]string, 0, len(backends))
	for _, name := range backendPriority {
		if _, ok := backends[name]; ok {
			names = append(names, name)
		}
	}
	rest := make([]string, 0, len(backends))
	for name := range backends {
		if !slices.Contains(backendPriority, name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Open opens a device from the named backend.
func Open(name string, opts Options) (gpucore.Device, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return open(name, factory, opts)
}

// OpenDefault opens a device from the first backend, in Available order,
// that succeeds and accepts one of opts.ShaderFormats. It returns the
// device and the name of the backend that produced it.
func OpenDefault(opts Options) (gpucore.Device, string, error) {
	registryMu.RLock()
	names := orderedNames()
	factories := make([]Factory, len(names))
	for i, name := range names {
		factories[i] = backends[name]
	}
	registryMu.RUnlock()

	if len(names) == 0 {
		return nil, "", ErrBackendNotAvailable
	}

	var errs []error
	for i, name := range names {
		dev, err := open(name, factories[i], opts)
		if err != nil {
			slogger().Debug("backend: skipped", "backend", name, "error", err)
			errs = append(errs, err)
			continue
		}
		return dev, name, nil
	}
	return nil, "", fmt.Errorf("%w: %w", ErrBackendNotAvailable, errors.Join(errs...))
}

func open(name string, factory Factory, opts Options) (gpucore.Device, error) {
	dev, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	if dev == nil {
		return nil, fmt.Errorf("backend %s: %w", name, ErrBackendNotAvailable)
	}
	if opts.ShaderFormats != 0 && dev.ShaderFormats()&opts.ShaderFormats == 0 {
		dev.Destroy()
		return nil, fmt.Errorf("backend %s: %w", name, ErrNoShaderFormat)
	}
	return dev, nil
}
