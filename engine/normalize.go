package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Normalizer rescales raw band energies into a bounded display range using
// a decaying running maximum: the ceiling relaxes by a fixed factor every
// tick but snaps up instantly when a louder frame arrives, like the
// attack/release asymmetry of a level meter.
type Normalizer struct {
	runningMax float64
	decay      float64
	floor      float64
	ceiling    float64
	eps        float64

	out []float64 // reused output buffer
}

// NewNormalizer builds a normalizer seeded at 1.0. The config is assumed
// validated by the caller.
func NewNormalizer(cfg Config) *Normalizer {
	return &Normalizer{
		runningMax: 1.0,
		decay:      cfg.Decay,
		floor:      cfg.Floor,
		ceiling:    cfg.Ceiling,
		eps:        cfg.NormEpsilon,
		out:        make([]float64, cfg.Bands),
	}
}

// RunningMax exposes the current ceiling.
func (n *Normalizer) RunningMax() float64 { return n.runningMax }

// Reset reseeds the running maximum, discarding adaptation. Used when the
// active visualization mode changes.
func (n *Normalizer) Reset() { n.runningMax = 1.0 }

// Normalize maps energies into [floor, ceiling] against the running max.
// The returned slice is reused across calls.
func (n *Normalizer) Normalize(energies []float64) []float64 {
	if len(energies) == 0 {
		return n.out[:0]
	}
	peak := floats.Max(energies)
	n.runningMax = math.Max(n.runningMax*n.decay, peak)

	if len(n.out) != len(energies) {
		n.out = make([]float64, len(energies))
	}
	for i, v := range energies {
		n.out[i] = clamp(v/(n.runningMax+n.eps), n.floor, n.ceiling)
	}
	return n.out
}

// observe folds a batch-wide peak into the running max without emitting a
// row; the spectrogram batch path normalizes its whole matrix against one
// ceiling update, matching a single tick.
func (n *Normalizer) observe(peak float64) {
	n.runningMax = math.Max(n.runningMax*n.decay, peak)
}

// scale clamps a single energy against the current ceiling.
func (n *Normalizer) scale(v float64) float64 {
	return clamp(v/(n.runningMax+n.eps), n.floor, n.ceiling)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
