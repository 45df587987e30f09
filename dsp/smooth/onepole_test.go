package smooth

import (
	"math"
	"testing"
)

func TestOnePoleCoefficients(t *testing.T) {
	s := NewOnePole(10, 48000)

	a, b := s.Coefficients()

	wantA := math.Exp(-2 * math.Pi / (10 * 0.001 * 48000))
	if math.Abs(a-wantA) > 1e-15 {
		t.Fatalf("a = %v, want %v", a, wantA)
	}

	if math.Abs(a+b-1) > 1e-15 {
		t.Fatalf("a+b = %v, want 1", a+b)
	}
}

func TestOnePoleConvergesToInput(t *testing.T) {
	s := NewOnePole(5, 44100)

	var y float64
	for range 44100 {
		y = s.Process(0.8)
	}

	if math.Abs(y-0.8) > 1e-9 {
		t.Fatalf("settled value = %v, want 0.8", y)
	}
}

func TestOnePoleMonotonicApproach(t *testing.T) {
	s := NewOnePole(20, 48000)

	prev := 0.0
	for i := range 2000 {
		y := s.Process(1)
		if y < prev || y > 1 {
			t.Fatalf("step %d: y = %v not monotonic toward 1 (prev %v)", i, y, prev)
		}

		prev = y
	}
}

func TestOnePoleDegenerateTimeIsPassThrough(t *testing.T) {
	tests := []struct {
		name       string
		timeMs     float64
		sampleRate float64
	}{
		{"zero time", 0, 48000},
		{"negative time", -5, 48000},
		{"zero rate", 10, 0},
		{"nan time", math.NaN(), 48000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewOnePole(tt.timeMs, tt.sampleRate)
			if got := s.Process(0.3); got != 0.3 {
				t.Fatalf("Process() = %v, want pass-through 0.3", got)
			}
		})
	}
}

func TestOnePoleSampleRateChangeFlushes(t *testing.T) {
	s := NewOnePole(10, 44100)
	s.Process(1)

	s.SetSampleRate(44100)

	if s.Value() == 0 {
		t.Fatal("same sample rate should keep state")
	}

	s.SetSampleRate(96000)

	if s.Value() != 0 {
		t.Fatalf("Value() = %v after rate change, want 0", s.Value())
	}
}

func TestOnePoleReset(t *testing.T) {
	s := NewOnePole(10, 48000)
	s.Reset(0.5)

	if got := s.Process(0.5); math.Abs(got-0.5) > 1e-15 {
		t.Fatalf("Process() = %v, want 0.5 from rested state", got)
	}

	s.Flush()

	if s.Value() != 0 {
		t.Fatalf("Value() = %v after Flush, want 0", s.Value())
	}
}
