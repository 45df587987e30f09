package plugin

import (
	"fmt"

	"github.com/cwbudde/algo-robotfx/dsp/core"
	"github.com/cwbudde/algo-robotfx/dsp/effects/dynamics"
)

// Compressor parameter IDs.
const (
	CompressorAttack = iota
	CompressorRelease
	CompressorThreshold
	CompressorRatio
	CompressorMakeupGain
	// CompressorDetector selects the sidechain feature: 0 peak, 1 Bark
	// (experimental).
	CompressorDetector
	compressorParamCount
)

var compressorParams = []ParamInfo{
	{ID: CompressorAttack, Name: "Attack", Symbol: "attack", Unit: "ms", Min: 0.01, Max: 10, Default: 1},
	{ID: CompressorRelease, Name: "Release", Symbol: "release", Unit: "ms", Min: 0.01, Max: 120, Default: 36},
	{ID: CompressorThreshold, Name: "Threshold", Symbol: "threshold", Unit: "dB", Min: -80, Max: 0, Default: 0},
	{ID: CompressorRatio, Name: "Ratio", Symbol: "ratio", Min: 1, Max: 16, Default: 1},
	{ID: CompressorMakeupGain, Name: "Make Up Gain", Symbol: "makeup", Unit: "dB", Min: -8, Max: 24, Default: 0},
	{ID: CompressorDetector, Name: "Detector", Symbol: "detector", Min: 0, Max: 1, Default: 0},
}

// Compressor runs one dynamics.Compressor per channel with shared controls.
type Compressor struct {
	desc Descriptor
	cfg  core.ProcessorConfig

	channels []*dynamics.Compressor
	bark     []*dynamics.BarkDetector
	slots    [compressorParamCount]ParamSlot
}

// NewCompressor creates a compressor processor. It must be activated before
// Run produces output.
func NewCompressor(opts ...core.ProcessorOption) *Compressor {
	c := &Compressor{
		desc: Descriptor{
			Name:    "bark-compressor",
			Label:   "Robot bark compressor",
			Version: processorVersion,
			Params:  compressorParams,
		},
		cfg: core.ApplyProcessorOptions(opts...),
	}

	for _, p := range compressorParams {
		c.slots[p.ID].Store(p.Default)
	}

	return c
}

// Descriptor returns the processor description.
func (c *Compressor) Descriptor() Descriptor { return c.desc }

// Channel returns the compressor for channel ch, or nil.
func (c *Compressor) Channel(ch int) *dynamics.Compressor {
	if ch < 0 || ch >= len(c.channels) {
		return nil
	}

	return c.channels[ch]
}

// Activate builds per-channel compressors and detectors for sampleRate.
func (c *Compressor) Activate(sampleRate float64) error {
	channels := make([]*dynamics.Compressor, c.cfg.Channels)
	bark := make([]*dynamics.BarkDetector, c.cfg.Channels)

	for ch := range channels {
		comp, err := dynamics.NewCompressor(sampleRate)
		if err != nil {
			return fmt.Errorf("plugin: activate %s: %w", c.desc.Name, err)
		}

		det, err := dynamics.NewBarkDetector(sampleRate, 0)
		if err != nil {
			return fmt.Errorf("plugin: activate %s: %w", c.desc.Name, err)
		}

		comp.Reserve(c.cfg.BlockSize)

		channels[ch] = comp
		bark[ch] = det
	}

	c.cfg.SampleRate = sampleRate
	c.channels = channels
	c.bark = bark

	for id := range c.slots {
		v, _ := c.slots[id].Load()
		c.apply(id, v)
	}

	for _, comp := range c.channels {
		comp.Settle()
	}

	return nil
}

// SetParameter publishes a new parameter value. Unknown IDs are ignored.
func (c *Compressor) SetParameter(id int, value float64) {
	if id < 0 || id >= compressorParamCount {
		return
	}

	c.slots[id].Store(value)
}

// Parameter returns the latest published value for id.
func (c *Compressor) Parameter(id int) float64 {
	if id < 0 || id >= compressorParamCount {
		return 0
	}

	return c.slots[id].Peek()
}

// SetAttack publishes the attack time in milliseconds.
func (c *Compressor) SetAttack(ms float64) { c.SetParameter(CompressorAttack, ms) }

// SetRelease publishes the release time in milliseconds.
func (c *Compressor) SetRelease(ms float64) { c.SetParameter(CompressorRelease, ms) }

// SetThreshold publishes the threshold in dB.
func (c *Compressor) SetThreshold(dB float64) { c.SetParameter(CompressorThreshold, dB) }

// SetRatio publishes the compression ratio.
func (c *Compressor) SetRatio(ratio float64) { c.SetParameter(CompressorRatio, ratio) }

// SetMakeupGain publishes the makeup gain in dB.
func (c *Compressor) SetMakeupGain(dB float64) { c.SetParameter(CompressorMakeupGain, dB) }

// Run compresses frames samples per channel. Parameter changes published
// since the previous Run start gliding at the first sample of the block.
func (c *Compressor) Run(inputs, outputs [][]float64, frames int) {
	if frames <= 0 {
		return
	}

	if c.channels == nil {
		passThrough(inputs, outputs, min(len(inputs), len(outputs)), frames)
		return
	}

	channels := channelCount(inputs, outputs, len(c.channels))

	for id := range c.slots {
		if v, changed := c.slots[id].Load(); changed {
			c.apply(id, v)
		}
	}

	for ch := range channels {
		out := outputs[ch][:frames]
		copy(out, inputs[ch][:frames])

		for offset := 0; offset < frames; offset += c.cfg.BlockSize {
			end := min(offset+c.cfg.BlockSize, frames)
			c.channels[ch].ProcessInPlace(out[offset:end])
		}
	}
}

func (c *Compressor) apply(id int, v float64) {
	v = compressorParams[id].Clamp(v)

	for ch, comp := range c.channels {
		switch id {
		case CompressorAttack:
			comp.SetAttack(v)
		case CompressorRelease:
			comp.SetRelease(v)
		case CompressorThreshold:
			comp.SetThreshold(v)
		case CompressorRatio:
			comp.SetRatio(v)
		case CompressorMakeupGain:
			comp.SetMakeupGain(v)
		case CompressorDetector:
			if v >= 0.5 {
				comp.SetDetector(c.bark[ch])
			} else {
				comp.SetDetector(nil)
			}
		}
	}
}
