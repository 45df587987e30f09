package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-robotfx/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d channels=%d\n", cfg.SampleRate, cfg.BlockSize, cfg.Channels)

	// Output:
	// sampleRate=44100 blockSize=256 channels=2
}

func ExampleLogScale() {
	for _, knob := range []float64{0, 0.5, 1} {
		fmt.Printf("%.0f Hz\n", core.LogScale(knob, 60, 19000, core.DefaultRolloff))
	}

	// Output:
	// 60 Hz
	// 3521 Hz
	// 19000 Hz
}
