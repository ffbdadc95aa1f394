package talent

import (
	"math"
	"testing"
)

func TestPercentileInterpolates(t *testing.T) {
	values := []float64{10, 1, 5, 3, 7, 9, 2, 8, 4, 6}

	if got := Percentile(values, 50); got != 5.5 {
		t.Fatalf("p50 = %v, want 5.5", got)
	}
	if got := Percentile(values, 0); got != 1 {
		t.Fatalf("p0 = %v, want 1", got)
	}
	if got := Percentile(values, 100); got != 10 {
		t.Fatalf("p100 = %v, want 10", got)
	}
	if got := Percentile(nil, 50); got != 0 {
		t.Fatalf("empty p50 = %v, want 0", got)
	}

	// Input slice is left untouched.
	if values[0] != 10 {
		t.Fatalf("Percentile mutated its input")
	}
}

func TestMeanMedianStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	if got := Mean(values); got != 5 {
		t.Fatalf("mean = %v, want 5", got)
	}
	if got := Median(values); got != 4.5 {
		t.Fatalf("median = %v, want 4.5", got)
	}
	if got := StdDev(values); math.Abs(got-2) > 1e-9 {
		t.Fatalf("stddev = %v, want 2", got)
	}
	if got := StdDev([]float64{3}); got != 0 {
		t.Fatalf("single-value stddev = %v, want 0", got)
	}
}

func TestRound(t *testing.T) {
	if got := Round(1.2345, 2); got != 1.23 {
		t.Fatalf("Round(1.2345, 2) = %v", got)
	}
	if got := Round(1.235, 1); got != 1.2 {
		t.Fatalf("Round(1.235, 1) = %v", got)
	}
}
