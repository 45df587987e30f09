package effectchain

import (
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/algo-robotfx/dsp/plugin"
)

var (
	// ErrUnknownProcessor is returned when a node references an unregistered processor type.
	ErrUnknownProcessor = errors.New("unknown processor type")
	// ErrIncompatibleVersion is returned when a processor does not satisfy
	// the chain's requires constraint.
	ErrIncompatibleVersion = errors.New("incompatible processor version")
)

type nodeRuntime struct {
	params Params
	proc   plugin.Processor
}

// Chain runs processors in series. The first processor reads the chain
// input; every later one works in place on the chain output.
type Chain struct {
	ctx      Context
	registry *Registry
	nodes    []nodeRuntime
}

// New creates an empty Chain with the given context and registry.
func New(ctx Context, registry *Registry) *Chain {
	return &Chain{ctx: ctx, registry: registry}
}

// Context returns the current chain context.
func (c *Chain) Context() Context {
	return c.ctx
}

// SetContext updates the context and re-activates every processor.
func (c *Chain) SetContext(ctx Context) error {
	c.ctx = ctx

	for _, n := range c.nodes {
		err := n.proc.Activate(ctx.SampleRate)
		if err != nil {
			return fmt.Errorf("effectchain: activate node %q (%s): %w", n.params.ID, n.params.Type, err)
		}
	}

	return nil
}

// Len returns the number of processors in the chain.
func (c *Chain) Len() int {
	return len(c.nodes)
}

// Processor returns the processor for the node with the given ID, or nil.
func (c *Chain) Processor(nodeID string) plugin.Processor {
	for _, n := range c.nodes {
		if n.params.ID == nodeID {
			return n.proc
		}
	}

	return nil
}

// Descriptors returns the descriptors of the chained processors in order.
func (c *Chain) Descriptors() []plugin.Descriptor {
	out := make([]plugin.Descriptor, len(c.nodes))
	for i, n := range c.nodes {
		out[i] = n.proc.Descriptor()
	}

	return out
}

// Load parses a JSON chain, builds its processors and replaces the current
// chain. Node params are published before activation so processors start at
// their configured values. On error the current chain is left untouched.
func (c *Chain) Load(raw []byte) error {
	cfg, err := parseConfig(raw)
	if err != nil {
		return err
	}

	nodes := make([]nodeRuntime, 0, len(cfg.Nodes))

	for _, p := range cfg.Nodes {
		proc, err := c.registry.Create(p.Type, c.ctx)
		if err != nil {
			return fmt.Errorf("effectchain: node %q: %w", p.ID, err)
		}

		desc := proc.Descriptor()
		if !desc.Satisfies(cfg.Requires) {
			return fmt.Errorf("%w: %s does not satisfy %s", ErrIncompatibleVersion, desc, cfg.Requires)
		}

		p.Apply(proc)

		if err := proc.Activate(c.ctx.SampleRate); err != nil {
			return fmt.Errorf("effectchain: activate node %q (%s): %w", p.ID, p.Type, err)
		}

		nodes = append(nodes, nodeRuntime{params: p, proc: proc})
	}

	c.nodes = nodes

	return nil
}

// LoadFile reads and loads a JSON chain file.
func (c *Chain) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("effectchain: read %s: %w", path, err)
	}

	return c.Load(raw)
}

// Reset removes all processors.
func (c *Chain) Reset() {
	c.nodes = nil
}

// Process runs the chain over frames samples. inputs and outputs may alias.
// An empty or fully bypassed chain copies inputs to outputs.
func (c *Chain) Process(inputs, outputs [][]float64, frames int) {
	if frames <= 0 {
		return
	}

	src := inputs

	for _, n := range c.nodes {
		if n.params.Bypassed {
			continue
		}

		n.proc.Run(src, outputs, frames)
		src = outputs
	}

	if len(c.nodes) == 0 || sameBuffers(src, inputs) {
		for ch := range min(len(inputs), len(outputs)) {
			copy(outputs[ch][:frames], inputs[ch][:frames])
		}
	}
}

// sameBuffers reports whether a and b are the same slice header list. It is
// true only when no processor ran.
func sameBuffers(a, b [][]float64) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}
