package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// BandMapper folds a linear magnitude spectrum into logarithmically spaced
// frequency bands. Band edges are derived from the configuration once and
// reused every tick; only a sample-rate change recomputes them.
type BandMapper struct {
	bands      int
	minFreq    float64
	maxFreq    float64
	sampleRate float64
	logEps     float64

	edges    []float64 // bands+1, strictly increasing
	energies []float64 // reused output buffer
}

// NewBandMapper builds a mapper for the given config. The config is assumed
// validated by the caller.
func NewBandMapper(cfg Config) *BandMapper {
	m := &BandMapper{
		bands:      cfg.Bands,
		minFreq:    cfg.MinFreq,
		maxFreq:    cfg.MaxFreq,
		sampleRate: cfg.SampleRate,
		logEps:     cfg.LogEpsilon,
		edges:      make([]float64, cfg.Bands+1),
		energies:   make([]float64, cfg.Bands),
	}
	m.computeEdges()
	return m
}

// computeEdges log-spaces bands+1 boundaries between minFreq and maxFreq.
func (m *BandMapper) computeEdges() {
	ratio := m.maxFreq / m.minFreq
	for i := range m.edges {
		m.edges[i] = m.minFreq * math.Pow(ratio, float64(i)/float64(m.bands))
	}
}

// SetSampleRate updates the rate used to place FFT bins on the frequency
// axis. Band edges depend only on the configured frequency range, so they
// stay as they are.
func (m *BandMapper) SetSampleRate(rate float64) {
	if rate > 0 {
		m.sampleRate = rate
	}
}

// Bands returns the configured band count.
func (m *BandMapper) Bands() int { return m.bands }

// Edges returns the band boundaries in Hz. The slice is owned by the mapper.
func (m *BandMapper) Edges() []float64 { return m.edges }

// MapToBands reduces the spectrum to one log-compressed energy per band.
//
// Bin k of a real FFT covers frequency k*rate/(2*(len-1)). Bands whose
// frequency range captures no bin inherit the previous band's raw mean
// (zero for the first band), which keeps low-frequency bands populated when
// the FFT resolution is coarser than the log spacing. The returned slice is
// reused across calls.
func (m *BandMapper) MapToBands(spectrum []float64) []float64 {
	binHz := 0.0
	if len(spectrum) > 1 {
		binHz = m.sampleRate / (2 * float64(len(spectrum)-1))
	}

	bin := 0
	prev := 0.0
	for i := 0; i < m.bands; i++ {
		lo, hi := m.edges[i], m.edges[i+1]

		// Bins are in ascending frequency order, so a single cursor
		// suffices. binHz == 0 means a degenerate spectrum: every band
		// is empty and falls through to the gap fill.
		if binHz > 0 {
			for bin < len(spectrum) && float64(bin)*binHz < lo {
				bin++
			}
		}
		start := bin
		if binHz > 0 {
			for bin < len(spectrum) && float64(bin)*binHz < hi {
				bin++
			}
		}

		mean := prev
		if bin > start {
			mean = floats.Sum(spectrum[start:bin]) / float64(bin-start)
		}
		prev = mean
		m.energies[i] = math.Log10(mean + m.logEps)
	}
	return m.energies
}
