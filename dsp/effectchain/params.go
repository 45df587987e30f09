package effectchain

import (
	"math"

	"github.com/cwbudde/algo-robotfx/dsp/plugin"
)

// Params holds the parsed parameters for a single chain node.
type Params struct {
	ID       string
	Type     string
	Bypassed bool
	Num      map[string]float64
	Str      map[string]string
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// Apply publishes every parameter of proc found in p, matched by symbol or
// by name. Missing parameters keep their current value.
func (p Params) Apply(proc plugin.Processor) {
	for _, info := range proc.Descriptor().Params {
		v, ok := p.lookup(info)
		if !ok {
			continue
		}

		proc.SetParameter(info.ID, v)
	}
}

func (p Params) lookup(info plugin.ParamInfo) (float64, bool) {
	for _, key := range []string{info.Symbol, info.Name} {
		if v, ok := p.Num[key]; ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v, true
		}
	}

	return 0, false
}

func parseNodeParams(raw any) (map[string]float64, map[string]string) {
	num := map[string]float64{}
	str := map[string]string{}

	params, ok := raw.(map[string]any)
	if !ok || params == nil {
		return num, str
	}

	for k, v := range params {
		switch t := v.(type) {
		case float64:
			num[k] = t
		case string:
			str[k] = t
		case bool:
			if t {
				num[k] = 1
			} else {
				num[k] = 0
			}
		}
	}

	return num, str
}
