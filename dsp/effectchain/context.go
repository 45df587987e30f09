package effectchain

import "github.com/cwbudde/algo-robotfx/dsp/core"

// Context provides the host settings processors are built and activated with.
type Context struct {
	SampleRate float64
	BlockSize  int
	Channels   int
}

// DefaultContext returns a stereo 48 kHz context with 512-sample blocks.
func DefaultContext() Context {
	cfg := core.DefaultProcessorConfig()

	return Context{SampleRate: cfg.SampleRate, BlockSize: cfg.BlockSize, Channels: cfg.Channels}
}

// ProcessorOptions converts the context into processor options.
func (c Context) ProcessorOptions() []core.ProcessorOption {
	return []core.ProcessorOption{
		core.WithSampleRate(c.SampleRate),
		core.WithBlockSize(c.BlockSize),
		core.WithChannels(c.Channels),
	}
}
