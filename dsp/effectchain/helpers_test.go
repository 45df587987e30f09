package effectchain

import (
	"github.com/Masterminds/semver/v3"
	"github.com/cwbudde/algo-robotfx/dsp/plugin"
)

// stubProcessor multiplies every sample by its gain parameter.
type stubProcessor struct {
	desc        plugin.Descriptor
	values      [2]float64
	sets        int
	activations int
	// setsAtActivate records how many params were set before the last Activate.
	setsAtActivate int
	runs           int
	activateErr    error
}

func newStubProcessor() *stubProcessor {
	return &stubProcessor{
		desc: plugin.Descriptor{
			Name:    "stub",
			Version: semver.MustParse("1.2.0"),
			Params: []plugin.ParamInfo{
				{ID: 0, Name: "Gain", Symbol: "gain", Min: 0, Max: 4, Default: 1},
				{ID: 1, Name: "Bias", Symbol: "bias", Min: -1, Max: 1, Default: 0},
			},
		},
		values: [2]float64{1, 0},
	}
}

func (s *stubProcessor) Activate(_ float64) error {
	s.activations++
	s.setsAtActivate = s.sets

	return s.activateErr
}

func (s *stubProcessor) SetParameter(id int, value float64) {
	if id < 0 || id >= len(s.values) {
		return
	}

	s.sets++
	s.values[id] = value
}

func (s *stubProcessor) Run(inputs, outputs [][]float64, frames int) {
	s.runs++

	for ch := range min(len(inputs), len(outputs)) {
		for i := range frames {
			outputs[ch][i] = inputs[ch][i]*s.values[0] + s.values[1]
		}
	}
}

func (s *stubProcessor) Descriptor() plugin.Descriptor { return s.desc }

func stubRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("stub", func(_ Context) (plugin.Processor, error) {
		return newStubProcessor(), nil
	})

	return r
}
