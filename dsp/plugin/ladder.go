package plugin

import (
	"fmt"

	"github.com/cwbudde/algo-robotfx/dsp/core"
	"github.com/cwbudde/algo-robotfx/dsp/filter/ladder"
	"github.com/cwbudde/algo-robotfx/dsp/mix"
	"github.com/cwbudde/algo-robotfx/dsp/smooth"
)

// Ladder filter parameter IDs.
const (
	LadderCutoff = iota
	LadderResonance
	LadderMode
	LadderWet
	ladderParamCount
)

var ladderParams = []ParamInfo{
	{ID: LadderCutoff, Name: "CutOff", Symbol: "freq", Unit: "%", Min: 0, Max: 100, Default: 100},
	{ID: LadderResonance, Name: "Resonance", Symbol: "res", Unit: "%", Min: 0, Max: 100, Default: 0},
	{ID: LadderMode, Name: "Mode", Symbol: "switch", Min: 1, Max: 4, Default: 4},
	{ID: LadderWet, Name: "Wet", Symbol: "percent", Unit: "%", Min: 0, Max: 100, Default: 0},
}

// Ladder is a stereo resonant low-pass processor with a smoothed wet/dry
// mix. Cutoff, resonance and mode ramp linearly across each block.
type Ladder struct {
	desc Descriptor
	cfg  core.ProcessorConfig
	opts []ladder.Option

	model  ladder.Model
	states []ladder.State

	slots  [ladderParamCount]ParamSlot
	ramps  [ladderParamCount - 1]smooth.Ramp
	wet    mix.WetDry
	active bool

	dry     [][]float64
	weights []float64
	scratch []float64
}

// NewLadder creates a ladder processor for variant. The processor must be
// activated before Run produces output.
func NewLadder(variant ladder.Variant, opts ...core.ProcessorOption) (*Ladder, error) {
	name := variant.String() + "-filter"
	if _, err := ladder.ParseVariant(variant.String()); err != nil {
		return nil, fmt.Errorf("plugin: %w", err)
	}

	modelOpts := []ladder.Option{ladder.WithVariant(variant)}
	if variant == ladder.VariantHexed {
		modelOpts = append(modelOpts, ladder.WithLevelCompensation(true))
	}

	l := &Ladder{
		desc: Descriptor{
			Name:    name,
			Label:   "Robot " + variant.String() + " filter",
			Version: processorVersion,
			Params:  ladderParams,
		},
		cfg:  core.ApplyProcessorOptions(opts...),
		opts: modelOpts,
	}

	for _, p := range ladderParams {
		l.slots[p.ID].Store(p.Default)
	}

	return l, nil
}

// Descriptor returns the processor description.
func (l *Ladder) Descriptor() Descriptor { return l.desc }

// Model returns the underlying filter model, or nil before Activate.
func (l *Ladder) Model() ladder.Model { return l.model }

// Activate builds the filter for sampleRate, silences every channel and
// settles all controls at their current values.
func (l *Ladder) Activate(sampleRate float64) error {
	model, err := ladder.New(sampleRate, l.opts...)
	if err != nil {
		return fmt.Errorf("plugin: activate %s: %w", l.desc.Name, err)
	}

	l.model = model
	l.cfg.SampleRate = sampleRate
	l.states = make([]ladder.State, l.cfg.Channels)

	if len(l.dry) != l.cfg.Channels {
		l.dry = make([][]float64, l.cfg.Channels)
	}

	for ch := range l.dry {
		l.dry[ch] = core.EnsureLen(l.dry[ch], l.cfg.BlockSize)
	}

	l.weights = core.EnsureLen(l.weights, l.cfg.BlockSize)
	l.scratch = core.EnsureLen(l.scratch, l.cfg.BlockSize)

	for id := range l.ramps {
		v, _ := l.slots[id].Load()
		l.ramps[id].Reset(ladderParams[id].Clamp(v))
	}

	wet, _ := l.slots[LadderWet].Load()
	l.wet.Reset(ladderParams[LadderWet].Clamp(wet))

	l.applyControls()
	l.active = true

	return nil
}

// SetParameter publishes a new parameter value. Unknown IDs are ignored.
func (l *Ladder) SetParameter(id int, value float64) {
	if id < 0 || id >= ladderParamCount {
		return
	}

	l.slots[id].Store(value)
}

// Parameter returns the latest published value for id.
func (l *Ladder) Parameter(id int) float64 {
	if id < 0 || id >= ladderParamCount {
		return 0
	}

	return l.slots[id].Peek()
}

// SetCutoff publishes the cutoff knob in percent.
func (l *Ladder) SetCutoff(percent float64) { l.SetParameter(LadderCutoff, percent) }

// SetResonance publishes the resonance knob in percent.
func (l *Ladder) SetResonance(percent float64) { l.SetParameter(LadderResonance, percent) }

// SetMode publishes the output tap selection in [1, 4].
func (l *Ladder) SetMode(mode float64) { l.SetParameter(LadderMode, mode) }

// SetWet publishes the wet amount in percent.
func (l *Ladder) SetWet(percent float64) { l.SetParameter(LadderWet, percent) }

// Run processes frames samples. Parameter changes published since the
// previous Run are ramped over this block.
func (l *Ladder) Run(inputs, outputs [][]float64, frames int) {
	if frames <= 0 {
		return
	}

	if !l.active {
		passThrough(inputs, outputs, min(len(inputs), len(outputs)), frames)
		return
	}

	channels := channelCount(inputs, outputs, len(l.states))

	for id := range l.ramps {
		if v, changed := l.slots[id].Load(); changed {
			l.ramps[id].SetTarget(ladderParams[id].Clamp(v))
		}

		l.ramps[id].Begin(frames)
	}

	if v, changed := l.slots[LadderWet].Load(); changed {
		l.wet.SetWet(v)
	}

	l.wet.Begin(frames)

	for offset := 0; offset < frames; offset += l.cfg.BlockSize {
		n := min(l.cfg.BlockSize, frames-offset)
		l.runChunk(inputs, outputs, channels, offset, n)
	}
}

func (l *Ladder) runChunk(inputs, outputs [][]float64, channels, offset, n int) {
	for ch := range channels {
		copy(l.dry[ch][:n], inputs[ch][offset:offset+n])
	}

	for i := range n {
		if l.rampsActive() {
			l.applyControls()
		}

		l.weights[i] = l.wet.Next()

		for ch := range channels {
			outputs[ch][offset+i] = l.model.Process(l.dry[ch][i], &l.states[ch])
		}
	}

	for ch := range channels {
		out := outputs[ch][offset : offset+n]
		_ = mix.MixBlock(out, l.dry[ch][:n], out, l.weights[:n], l.scratch)
	}
}

func (l *Ladder) rampsActive() bool {
	for id := range l.ramps {
		if l.ramps[id].Active() {
			return true
		}
	}

	return false
}

func (l *Ladder) applyControls() {
	l.model.SetCutoff(l.ramps[LadderCutoff].Next())
	l.model.SetResonance(l.ramps[LadderResonance].Next())
	l.model.SetMode(l.ramps[LadderMode].Next())
}

func passThrough(inputs, outputs [][]float64, channels, frames int) {
	for ch := range channels {
		copy(outputs[ch][:frames], inputs[ch][:frames])
	}
}
