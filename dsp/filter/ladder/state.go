package ladder

import "github.com/cwbudde/algo-robotfx/dsp/core"

// State is the per-channel memory of a ladder filter. The zero value is a
// silent, ready-to-use state.
type State struct {
	// Stage holds the four cascade accumulators.
	Stage [4]float64
	// Sub is the sub-audio attenuation one-pole state.
	Sub float64
	// Bright is the pre-emphasis one-pole state.
	Bright float64
	// DCPrev is the DC blocker's previous raw input.
	DCPrev float64
	// Tanh caches saturated outputs of stages 1..3 (Moog only).
	Tanh [3]float64
	// Delay holds the last stage-4 value and the half-sample averaged
	// feedback tap (Moog only).
	Delay [2]float64
}

// Reset clears the state to silence.
func (s *State) Reset() {
	*s = State{}
}

// IsFinite reports whether every field is finite.
func (s *State) IsFinite() bool {
	for _, v := range s.Stage {
		if !core.IsFinite(v) {
			return false
		}
	}

	for _, v := range s.Tanh {
		if !core.IsFinite(v) {
			return false
		}
	}

	return core.IsFinite(s.Sub) && core.IsFinite(s.Bright) && core.IsFinite(s.DCPrev) &&
		core.IsFinite(s.Delay[0]) && core.IsFinite(s.Delay[1])
}
