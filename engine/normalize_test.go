package engine

import (
	"math"
	"testing"
)

func TestNormalizeStaysInRange(t *testing.T) {
	cfg := testConfig(4)
	cfg.Floor = 0.05
	n := NewNormalizer(cfg)

	inputs := [][]float64{
		{0, 0, 0, 0},
		{1e9, 0, 0.5, 1},
		{-3, -3, -3, -3},
		{1e-12, 2, 0.1, 1e9},
	}
	for _, in := range inputs {
		out := n.Normalize(in)
		for i, v := range out {
			if v < 0.05 || v > 1.0 {
				t.Fatalf("Normalize(%v)[%d] = %v, outside [0.05, 1]", in, i, v)
			}
			if math.IsNaN(v) {
				t.Fatalf("Normalize(%v)[%d] is NaN", in, i)
			}
		}
	}
}

func TestRunningMaxSnapsUpInstantly(t *testing.T) {
	n := NewNormalizer(testConfig(2))
	n.Normalize([]float64{2, 1})
	if got := n.RunningMax(); got != 2 {
		t.Fatalf("RunningMax = %v, want 2", got)
	}
	n.Normalize([]float64{7, 1})
	if got := n.RunningMax(); got != 7 {
		t.Fatalf("RunningMax = %v, want 7 after louder frame", got)
	}
}

func TestRunningMaxDecaysOnQuietFrames(t *testing.T) {
	n := NewNormalizer(testConfig(2))
	n.Normalize([]float64{5, 0})

	for range 10 {
		n.Normalize([]float64{0, 0})
	}
	want := 5 * math.Pow(0.95, 10)
	if got := n.RunningMax(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("RunningMax after 10 quiet frames = %v, want %v", got, want)
	}
}

func TestNormalizeMonotonic(t *testing.T) {
	n := NewNormalizer(testConfig(3))
	out := n.Normalize([]float64{0.1, 0.5, 0.9})
	for i := 1; i < len(out); i++ {
		if out[i] < out[i-1] {
			t.Fatalf("normalization not monotonic: %v", out)
		}
	}
}

func TestResetReseedsRunningMax(t *testing.T) {
	n := NewNormalizer(testConfig(1))
	n.Normalize([]float64{42})
	n.Reset()
	if got := n.RunningMax(); got != 1.0 {
		t.Fatalf("RunningMax after Reset = %v, want 1.0", got)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := NewNormalizer(testConfig(4))
	if out := n.Normalize(nil); len(out) != 0 {
		t.Fatalf("Normalize(nil) returned %d values, want 0", len(out))
	}
	if got := n.RunningMax(); got != 1.0 {
		t.Fatalf("RunningMax changed on empty input: %v", got)
	}
}
