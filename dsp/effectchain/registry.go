package effectchain

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-robotfx/dsp/plugin"
)

// Factory builds one processor instance for a chain node.
type Factory func(ctx Context) (plugin.Processor, error)

// Registry maps processor type names to their factories.
type Registry struct {
	factories map[string]Factory
}

var errDuplicateProcessor = errors.New("duplicate processor type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given processor type.
func (r *Registry) Register(processorType string, factory Factory) error {
	if processorType == "" {
		return errors.New("empty processor type")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[processorType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateProcessor, processorType)
	}

	r.factories[processorType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(processorType string, factory Factory) {
	err := r.Register(processorType, factory)
	if err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the factory for the given processor type, or nil.
func (r *Registry) Lookup(processorType string) Factory {
	return r.factories[processorType]
}

// Names returns the registered processor types in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Create builds a processor of the given type without activating it.
func (r *Registry) Create(processorType string, ctx Context) (plugin.Processor, error) {
	factory := r.Lookup(processorType)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProcessor, processorType)
	}

	proc, err := factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("effectchain: create %q: %w", processorType, err)
	}

	return proc, nil
}

// New builds and activates a processor of the given type.
func (r *Registry) New(processorType string, ctx Context) (plugin.Processor, error) {
	proc, err := r.Create(processorType, ctx)
	if err != nil {
		return nil, err
	}

	if err := proc.Activate(ctx.SampleRate); err != nil {
		return nil, fmt.Errorf("effectchain: activate %q: %w", processorType, err)
	}

	return proc, nil
}
