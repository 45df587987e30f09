package effectchain

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// nodeConfig is a JSON-serializable processor entry.
type nodeConfig struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Bypassed bool   `json:"bypassed"`
	Params   any    `json:"params"`
}

// chainConfig is the root JSON structure of a chain file:
//
//	{"requires": ">=1.0.0", "processors": [{"type": "hexed-filter", "params": {"freq": 40}}]}
type chainConfig struct {
	Requires   string       `json:"requires"`
	Processors []nodeConfig `json:"processors"`
}

// compiledConfig is a parsed chain with its version constraint.
type compiledConfig struct {
	Requires *semver.Constraints
	Nodes    []Params
}

// parseConfig parses a JSON chain. An empty input yields an empty chain.
func parseConfig(raw []byte) (*compiledConfig, error) {
	if len(raw) == 0 {
		return &compiledConfig{}, nil
	}

	var cfg chainConfig

	err := json.Unmarshal(raw, &cfg)
	if err != nil {
		return nil, fmt.Errorf("effectchain: invalid chain json: %w", err)
	}

	out := &compiledConfig{Nodes: make([]Params, 0, len(cfg.Processors))}

	if cfg.Requires != "" {
		out.Requires, err = semver.NewConstraint(cfg.Requires)
		if err != nil {
			return nil, fmt.Errorf("effectchain: invalid requires %q: %w", cfg.Requires, err)
		}
	}

	for i, n := range cfg.Processors {
		if n.Type == "" {
			return nil, fmt.Errorf("effectchain: processor %d has no type", i)
		}

		id := n.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", n.Type, i)
		}

		num, str := parseNodeParams(n.Params)
		out.Nodes = append(out.Nodes, Params{
			ID:       id,
			Type:     n.Type,
			Bypassed: n.Bypassed,
			Num:      num,
			Str:      str,
		})
	}

	return out, nil
}
