package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampFinite(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"nan", math.NaN(), 0},
		{"+inf", math.Inf(1), 100},
		{"-inf", math.Inf(-1), 0},
		{"inside", 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampFinite(tt.value, 0, 100); got != tt.want {
				t.Fatalf("ClampFinite(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	if Sanitize(math.NaN()) != 0 || Sanitize(math.Inf(1)) != 0 || Sanitize(math.Inf(-1)) != 0 {
		t.Fatal("non-finite values should sanitize to 0")
	}

	if Sanitize(-0.25) != -0.25 {
		t.Fatal("finite values should pass through")
	}
}

func TestFlushDenormals(t *testing.T) {
	if FlushDenormals(1e-35) != 0 {
		t.Fatal("expected tiny value to flush to zero")
	}

	if FlushDenormals(1e-3) != 1e-3 {
		t.Fatal("expected normal value to pass through")
	}
}

func TestLogScaleEndpoints(t *testing.T) {
	if got := LogScale(0, 60, 19000, DefaultRolloff); !approxEqual(got, 60, 1e-9) {
		t.Fatalf("LogScale(0) = %v, want 60", got)
	}

	if got := LogScale(1, 60, 19000, DefaultRolloff); !approxEqual(got, 19000, 1e-9) {
		t.Fatalf("LogScale(1) = %v, want 19000", got)
	}

	// Out-of-range params clamp to the endpoints.
	if got := LogScale(-3, 60, 19000, DefaultRolloff); !approxEqual(got, 60, 1e-9) {
		t.Fatalf("LogScale(-3) = %v, want 60", got)
	}

	if got := LogScale(math.NaN(), 60, 19000, DefaultRolloff); !approxEqual(got, 60, 1e-9) {
		t.Fatalf("LogScale(NaN) = %v, want 60", got)
	}
}

func TestLogScaleMonotonic(t *testing.T) {
	prev := LogScale(0, 60, 19000, DefaultRolloff)
	for i := 1; i <= 1000; i++ {
		cur := LogScale(float64(i)/1000, 60, 19000, DefaultRolloff)
		if cur <= prev {
			t.Fatalf("LogScale not strictly increasing at step %d: %v <= %v", i, cur, prev)
		}

		prev = cur
	}
}

func TestLogScaleMidpointIsBelowLinear(t *testing.T) {
	mid := LogScale(0.5, 60, 19000, DefaultRolloff)
	linear := 60 + 0.5*(19000-60)

	if mid >= linear {
		t.Fatalf("LogScale(0.5) = %v, expected exponential curve below linear %v", mid, linear)
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)

	db := LinearToDB(linear)
	if !approxEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}

	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}

	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestLinearPowerToDB(t *testing.T) {
	if db := LinearPowerToDB(100); !approxEqual(db, 20, 1e-12) {
		t.Fatalf("LinearPowerToDB(100) = %v, want 20", db)
	}

	if !math.IsInf(LinearPowerToDB(0), -1) {
		t.Fatal("expected -Inf for zero power")
	}

	if !math.IsNaN(LinearPowerToDB(-1)) {
		t.Fatal("expected NaN for negative power")
	}
}

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
