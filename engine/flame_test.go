package engine

import (
	"math/rand/v2"
	"testing"
)

func TestFlameHeightsStayInRange(t *testing.T) {
	f := NewFlame(FlameConfig{Rand: rand.NewPCG(1, 2)}, 40)
	norm := make([]float64, 40)
	for i := range norm {
		norm[i] = float64(i) / 39
	}
	for range 50 {
		heights := f.Advance(norm)
		if len(heights) != 40 {
			t.Fatalf("got %d heights, want 40", len(heights))
		}
		for i, h := range heights {
			if h < 0.05 || h > 1.0 {
				t.Fatalf("height %d = %v, outside [0.05, 1]", i, h)
			}
		}
	}
}

func TestFlameDeterministicWithSeededSource(t *testing.T) {
	norm := []float64{0.2, 0.9, 0.4, 0.7}
	a := NewFlame(FlameConfig{Rand: rand.NewPCG(7, 7)}, 4)
	b := NewFlame(FlameConfig{Rand: rand.NewPCG(7, 7)}, 4)

	for tick := range 20 {
		ha := a.Advance(norm)
		hb := b.Advance(norm)
		for i := range ha {
			if ha[i] != hb[i] {
				t.Fatalf("tick %d height %d: %v != %v with identical seeds", tick, i, ha[i], hb[i])
			}
		}
	}
}

func TestFlameResamplesBands(t *testing.T) {
	f := NewFlame(FlameConfig{Count: 24, Rand: rand.NewPCG(3, 9)}, 40)
	if f.Count() != 24 {
		t.Fatalf("Count = %d, want 24", f.Count())
	}
	heights := f.Advance(make([]float64, 40))
	if len(heights) != 24 {
		t.Fatalf("got %d heights, want 24", len(heights))
	}
}

func TestFlameFlickerOnlyVariant(t *testing.T) {
	cfg := FlameConfig{
		NoWave:     true,
		FlickerMin: 0.3,
		FlickerMax: 0.5,
		EnergyGain: 1.0,
		Rand:       rand.NewPCG(11, 4),
	}
	f := NewFlame(cfg, 40)

	// Without the wave term and with silent bands, heights are pure
	// smoothed flicker and can never exceed the draw range.
	silent := make([]float64, 40)
	for range 30 {
		for i, h := range f.Advance(silent) {
			if h < 0.05 || h > 0.5 {
				t.Fatalf("flicker-only height %d = %v, outside [0.05, 0.5]", i, h)
			}
		}
	}
}

func TestFlameEnergyRaisesHeights(t *testing.T) {
	quiet := NewFlame(FlameConfig{Rand: rand.NewPCG(5, 5)}, 8)
	loud := NewFlame(FlameConfig{Rand: rand.NewPCG(5, 5)}, 8)

	silent := make([]float64, 8)
	full := make([]float64, 8)
	for i := range full {
		full[i] = 1
	}

	var quietSum, loudSum float64
	for range 20 {
		for _, h := range quiet.Advance(silent) {
			quietSum += h
		}
		for _, h := range loud.Advance(full) {
			loudSum += h
		}
	}
	if loudSum <= quietSum {
		t.Fatalf("loud bands did not raise flames: loud %v <= quiet %v", loudSum, quietSum)
	}
}
