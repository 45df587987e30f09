package effectchain

import (
	"github.com/cwbudde/algo-robotfx/dsp/filter/ladder"
	"github.com/cwbudde/algo-robotfx/dsp/plugin"
)

// DefaultRegistry returns a Registry pre-populated with all built-in processors.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	for _, v := range []ladder.Variant{ladder.VariantHexed, ladder.VariantDexed, ladder.VariantMoog} {
		r.MustRegister(v.String()+"-filter", func(ctx Context) (plugin.Processor, error) {
			proc, err := plugin.NewLadder(v, ctx.ProcessorOptions()...)
			if err != nil {
				return nil, err
			}

			return proc, nil
		})
	}

	r.MustRegister("bark-compressor", func(ctx Context) (plugin.Processor, error) {
		return plugin.NewCompressor(ctx.ProcessorOptions()...), nil
	})

	return r
}
