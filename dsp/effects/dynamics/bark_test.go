package dynamics

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-robotfx/internal/testutil"
)

func TestBarkScale(t *testing.T) {
	if Bark(0) != 0 {
		t.Fatalf("Bark(0) = %v, want 0", Bark(0))
	}

	prev := 0.0
	for hz := 50.0; hz <= 24000; hz += 50 {
		b := Bark(hz)
		if b <= prev {
			t.Fatalf("Bark not increasing at %v Hz", hz)
		}

		prev = b
	}

	// Roughly 8.5 Bark at 1 kHz.
	if b := Bark(1000); b < 8 || b > 9 {
		t.Fatalf("Bark(1000) = %v", b)
	}
}

func TestNewBarkDetectorValidation(t *testing.T) {
	if _, err := NewBarkDetector(0, 256); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := NewBarkDetector(48000, 100); err == nil {
		t.Fatal("expected error for non power of two frame")
	}

	if _, err := NewBarkDetector(48000, 8); err == nil {
		t.Fatal("expected error for tiny frame")
	}

	d, err := NewBarkDetector(48000, 0)
	if err != nil {
		t.Fatalf("NewBarkDetector() error = %v", err)
	}

	if d.Size() != defaultBarkFrame {
		t.Fatalf("Size() = %d, want %d", d.Size(), defaultBarkFrame)
	}
}

func TestBarkDetectorFindsTone(t *testing.T) {
	const size = 1024

	d, err := NewBarkDetector(48000, size)
	if err != nil {
		t.Fatalf("NewBarkDetector() error = %v", err)
	}

	for _, x := range testutil.DeterministicSine(1000, 48000, 0.5, 4*size) {
		d.Detect(x)
	}

	binHz := 48000.0 / size
	if hz := d.DominantFrequency(); math.Abs(hz-1000) > binHz {
		t.Fatalf("DominantFrequency() = %v, want 1000 +- %v", hz, binHz)
	}

	want := Bark(1000) / Bark(24000)
	if v := d.Value(); math.Abs(v-want) > 0.05 {
		t.Fatalf("Value() = %v, want about %v", v, want)
	}
}

func TestBarkDetectorSilenceAndReset(t *testing.T) {
	d, err := NewBarkDetector(48000, 64)
	if err != nil {
		t.Fatalf("NewBarkDetector() error = %v", err)
	}

	for range 256 {
		if v := d.Detect(0); v != 0 {
			t.Fatalf("Detect(silence) = %v, want 0", v)
		}
	}

	for _, x := range testutil.DeterministicSine(3000, 48000, 1, 256) {
		d.Detect(x)
	}

	if d.Value() == 0 {
		t.Fatal("expected a non-zero estimate for a tone")
	}

	d.Reset()

	if d.Value() != 0 {
		t.Fatalf("Value() after Reset = %v", d.Value())
	}
}

func TestCompressorWithBarkDetector(t *testing.T) {
	d, err := NewBarkDetector(48000, 128)
	if err != nil {
		t.Fatalf("NewBarkDetector() error = %v", err)
	}

	c, err := NewCompressor(48000, WithThreshold(-20), WithRatio(4))
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	c.SetDetector(d)

	buf := testutil.DeterministicSine(8000, 48000, 0.7, 4096)
	c.ProcessInPlace(buf)
	testutil.RequireFinite(t, buf)

	c.SetDetector(nil)

	if _, ok := c.detector.(PeakDetector); !ok {
		t.Fatal("SetDetector(nil) should restore peak sensing")
	}
}
