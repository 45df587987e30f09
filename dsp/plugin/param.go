package plugin

import (
	"fmt"
	"math"

	"github.com/Masterminds/semver/v3"
	"github.com/cwbudde/algo-robotfx/dsp/core"
)

// ParamInfo describes one host-visible parameter.
type ParamInfo struct {
	ID      int
	Name    string
	Symbol  string
	Unit    string
	Min     float64
	Max     float64
	Default float64
}

// Clamp limits v to the parameter range. NaN maps to the default.
func (p ParamInfo) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return p.Default
	}

	return core.Clamp(v, p.Min, p.Max)
}

// Descriptor identifies a processor type and its parameters.
type Descriptor struct {
	Name    string
	Label   string
	Version *semver.Version
	Params  []ParamInfo
}

// Param returns the parameter with the given symbol.
func (d Descriptor) Param(symbol string) (ParamInfo, bool) {
	for _, p := range d.Params {
		if p.Symbol == symbol {
			return p, true
		}
	}

	return ParamInfo{}, false
}

// Satisfies reports whether the descriptor version meets constraint.
func (d Descriptor) Satisfies(constraint *semver.Constraints) bool {
	if constraint == nil {
		return true
	}

	if d.Version == nil {
		return false
	}

	return constraint.Check(d.Version)
}

func (d Descriptor) String() string {
	if d.Version == nil {
		return d.Name
	}

	return fmt.Sprintf("%s@%s", d.Name, d.Version)
}

// Processor is the host-facing processing contract.
type Processor interface {
	// Activate prepares the processor for sampleRate and silences all state.
	Activate(sampleRate float64) error
	// SetParameter publishes a new value; safe to call from any thread.
	SetParameter(id int, value float64)
	// Run reads frames samples per input channel and writes frames samples
	// per output channel. inputs and outputs may alias.
	Run(inputs, outputs [][]float64, frames int)
	// Descriptor returns the static processor description.
	Descriptor() Descriptor
}

var processorVersion = semver.MustParse("1.0.0")

func channelCount(inputs, outputs [][]float64, max int) int {
	return min(len(inputs), len(outputs), max)
}
