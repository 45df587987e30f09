package dynamics_test

import (
	"fmt"

	"github.com/cwbudde/algo-robotfx/dsp/effects/dynamics"
)

func ExampleCompressor() {
	c, err := dynamics.NewCompressor(48000,
		dynamics.WithThreshold(-20),
		dynamics.WithRatio(4),
	)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.1f dB\n", c.StaticGainDB(1))
	// Output: -15.0 dB
}
