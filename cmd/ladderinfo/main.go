// Command ladderinfo prints the frequency response of a ladder filter
// setting and inspects effect chain configurations.
//
// Usage:
//
//	ladderinfo [flags]
//
// Examples:
//
//	ladderinfo -variant hexed -cutoff 50 -res 80
//	ladderinfo -variant moog -cutoff 30 -mode 2 -rate 96000
//	ladderinfo -config chain.json
//	ladderinfo -config chain.json -watch
//	ladderinfo -version
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/cwbudde/algo-robotfx/dsp/effectchain"
	"github.com/cwbudde/algo-robotfx/dsp/filter/ladder"
	"github.com/cwbudde/algo-robotfx/measure/response"
	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/fsnotify/fsnotify"
)

const version = "1.0.0"

// probeHz are the frequencies listed in the response table.
var probeHz = []float64{50, 100, 200, 500, 1000, 2000, 5000, 10000, 15000}

type options struct {
	variant    string
	cutoff     float64
	resonance  float64
	mode       float64
	rate       float64
	fftSize    int
	compensate bool
	config     string
	watch      bool
	version    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	switch {
	case opts.version:
		printVersion(stdout)
	case opts.config != "":
		chain := effectchain.New(effectchain.Context{SampleRate: opts.rate, BlockSize: 512, Channels: 2},
			effectchain.DefaultRegistry())

		if err := chain.LoadFile(opts.config); err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}

		printChain(stdout, chain)

		if opts.watch {
			if err := watchConfig(ctx, opts.config, chain, stdout, stderr); err != nil {
				_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
				return 1
			}
		}
	default:
		if err := printResponse(stdout, opts); err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}

	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("ladderinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.variant, "variant", "hexed", "filter variant (hexed, dexed, moog)")
	fs.Float64Var(&opts.cutoff, "cutoff", 100, "cutoff knob in percent")
	fs.Float64Var(&opts.resonance, "res", 0, "resonance knob in percent")
	fs.Float64Var(&opts.mode, "mode", 4, "output mode in [1, 4]")
	fs.Float64Var(&opts.rate, "rate", 48000, "sample rate in Hz")
	fs.IntVar(&opts.fftSize, "fft", response.DefaultFFTSize, "FFT size for the response measurement")
	fs.BoolVar(&opts.compensate, "compensate", false, "enable resonance level compensation (TPT variants)")
	fs.StringVar(&opts.config, "config", "", "effect chain JSON file to load and describe")
	fs.BoolVar(&opts.watch, "watch", false, "reload -config whenever the file changes")
	fs.BoolVar(&opts.version, "version", false, "print version and CPU features")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: ladderinfo [flags]\n\n")
		_, _ = fmt.Fprintf(stderr, "Prints the magnitude response of a ladder filter setting.\n\n")
		_, _ = fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(stderr, "\nExamples:\n")
		_, _ = fmt.Fprintf(stderr, "  ladderinfo -variant hexed -cutoff 50 -res 80\n")
		_, _ = fmt.Fprintf(stderr, "  ladderinfo -config chain.json -watch\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.watch && opts.config == "" {
		_, _ = fmt.Fprintf(stderr, "error: -watch requires -config\n")
		return opts, errors.New("watch without config")
	}

	return opts, nil
}

func printVersion(w io.Writer) {
	f := cpu.DetectFeatures()
	_, _ = fmt.Fprintf(w, "ladderinfo %s\n", version)
	_, _ = fmt.Fprintf(w, "arch %s avx2=%t sse2=%t\n", f.Architecture, f.HasAVX2, f.HasSSE2)
}

func buildModel(opts options) (ladder.Model, error) {
	variant, err := ladder.ParseVariant(opts.variant)
	if err != nil {
		return nil, err
	}

	modelOpts := []ladder.Option{
		ladder.WithVariant(variant),
		ladder.WithCutoff(opts.cutoff),
		ladder.WithResonance(opts.resonance),
		ladder.WithMode(opts.mode),
	}
	if opts.compensate && variant != ladder.VariantMoog {
		modelOpts = append(modelOpts, ladder.WithLevelCompensation(true))
	}

	return ladder.New(opts.rate, modelOpts...)
}

func printResponse(w io.Writer, opts options) error {
	m, err := buildModel(opts)
	if err != nil {
		return err
	}

	r, err := response.Measure(m, opts.rate, opts.fftSize)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%s cutoff=%.1f%% (%.1f Hz) res=%.1f%% mode=%.2f rate=%.0f Hz\n\n",
		m.Variant(), opts.cutoff, ladder.CutoffHz(opts.cutoff), opts.resonance, opts.mode, opts.rate)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Freq [Hz]\tLevel [dB]\n---------\t----------\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, hz := range probeHz {
		if hz >= opts.rate/2 {
			break
		}

		if _, err := fmt.Fprintf(tw, "%.0f\t%.2f\n", hz, r.At(hz)); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	hz, db, err := r.Peak(20, opts.rate/2)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "\npeak   %.1f Hz at %.2f dB\n", hz, db)

	if corner := r.Corner(20, 3); corner > 0 {
		_, _ = fmt.Fprintf(w, "corner %.1f Hz (-3 dB re 20 Hz)\n", corner)
	} else {
		_, _ = fmt.Fprintf(w, "corner none below Nyquist\n")
	}

	return nil
}

func printChain(w io.Writer, chain *effectchain.Chain) {
	descs := chain.Descriptors()
	_, _ = fmt.Fprintf(w, "%d processor(s)\n", len(descs))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Processor\tSymbol\tMin\tMax\tDefault\tUnit\n")

	for _, d := range descs {
		for _, p := range d.Params {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%s\n", d, p.Symbol, p.Min, p.Max, p.Default, p.Unit)
		}
	}

	_ = tw.Flush()
}

// watchConfig reloads path into chain on every write until ctx is done.
// The directory is watched so editors that replace the file are seen.
func watchConfig(ctx context.Context, path string, chain *effectchain.Chain, stdout, stderr io.Writer) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			if err := chain.LoadFile(path); err != nil {
				_, _ = fmt.Fprintf(stderr, "reload failed, keeping previous chain: %v\n", err)
				continue
			}

			_, _ = fmt.Fprintf(stdout, "reloaded %s\n", path)
			printChain(stdout, chain)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			_, _ = fmt.Fprintf(stderr, "watch error: %v\n", err)
		}
	}
}
