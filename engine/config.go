package engine

import (
	"errors"
	"fmt"
)

// Mode selects which visualization the engine produces each tick.
type Mode int

const (
	// ModeBars emits one normalized value per band.
	ModeBars Mode = iota
	// ModeWaterfall scrolls normalized rows through a fixed-depth history.
	ModeWaterfall
	// ModeSpectrogram is the batch-loaded heatmap; per-tick processing
	// behaves like a waterfall, but LoadBatch can rebuild the whole matrix.
	ModeSpectrogram
	// ModeFlame layers flicker and a phase wave over the band energies.
	ModeFlame
)

func (m Mode) String() string {
	switch m {
	case ModeBars:
		return "bars"
	case ModeWaterfall:
		return "waterfall"
	case ModeSpectrogram:
		return "spectrogram"
	case ModeFlame:
		return "flame"
	default:
		return "unknown"
	}
}

// ErrBadConfig wraps every configuration rejection so callers can test for
// the whole class with errors.Is.
var ErrBadConfig = errors.New("invalid engine config")

const (
	defaultBands        = 40
	defaultMinFreq      = 20.0
	defaultMaxFreq      = 20000.0
	defaultHistoryDepth = 100
	defaultDecay        = 0.95
	defaultCeiling      = 1.0
	historyFloor        = 0.05
	defaultNormEpsilon  = 1e-6
	defaultLogEpsilon   = 1e-3
)

// SpringConfig enables spring smoothing of normalized bands before they
// reach the history, flame, or output stage. Zero value leaves it off.
type SpringConfig struct {
	FPS       int
	Frequency float64
	Damping   float64
}

func (s SpringConfig) enabled() bool {
	return s.FPS > 0
}

// Config holds everything an Engine instance needs. The zero value is not
// usable; call Defaults or fill SampleRate and let New apply the rest.
type Config struct {
	// SampleRate of the audio the incoming spectra were computed from, Hz.
	SampleRate float64

	// Bands is the number of logarithmically spaced frequency bands.
	Bands int

	// MinFreq and MaxFreq bound the band edges, Hz.
	MinFreq float64
	MaxFreq float64

	// HistoryDepth is the number of rows kept by waterfall and
	// spectrogram modes.
	HistoryDepth int

	// Floor and Ceiling clamp normalized band values. A zero Ceiling
	// means 1. A zero Floor means the mode's convention: 0.05 for the
	// history modes, 0 otherwise.
	Floor   float64
	Ceiling float64

	// Decay is the per-tick relaxation factor of the normalization
	// ceiling. Must be in (0, 1].
	Decay float64

	// NormEpsilon guards the normalization divide; LogEpsilon guards the
	// log compression of band energies.
	NormEpsilon float64
	LogEpsilon  float64

	Mode   Mode
	Spring SpringConfig
	Flame  FlameConfig
}

// Defaults returns the config the reference visualizers run with.
func Defaults(sampleRate float64) Config {
	return Config{
		SampleRate:   sampleRate,
		Bands:        defaultBands,
		MinFreq:      defaultMinFreq,
		MaxFreq:      defaultMaxFreq,
		HistoryDepth: defaultHistoryDepth,
		Ceiling:      defaultCeiling,
		Decay:        defaultDecay,
		NormEpsilon:  defaultNormEpsilon,
		LogEpsilon:   defaultLogEpsilon,
	}
}

// withDefaults fills unset numeric fields so a sparse literal still works.
func (c Config) withDefaults() Config {
	if c.Bands == 0 {
		c.Bands = defaultBands
	}
	if c.MinFreq == 0 {
		c.MinFreq = defaultMinFreq
	}
	if c.MaxFreq == 0 {
		c.MaxFreq = defaultMaxFreq
	}
	if c.HistoryDepth == 0 {
		c.HistoryDepth = defaultHistoryDepth
	}
	if c.Decay == 0 {
		c.Decay = defaultDecay
	}
	if c.Ceiling == 0 {
		c.Ceiling = defaultCeiling
	}
	if c.NormEpsilon == 0 {
		c.NormEpsilon = defaultNormEpsilon
	}
	if c.LogEpsilon == 0 {
		c.LogEpsilon = defaultLogEpsilon
	}
	return c
}

func (c Config) validate() error {
	if c.Bands <= 0 {
		return fmt.Errorf("%w: bands must be positive, got %d", ErrBadConfig, c.Bands)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %g", ErrBadConfig, c.SampleRate)
	}
	if c.MinFreq <= 0 || c.MinFreq >= c.MaxFreq {
		return fmt.Errorf("%w: need 0 < minFreq < maxFreq, got [%g, %g]", ErrBadConfig, c.MinFreq, c.MaxFreq)
	}
	if nyquist := c.SampleRate / 2; c.MaxFreq > nyquist {
		return fmt.Errorf("%w: maxFreq %g exceeds Nyquist %g", ErrBadConfig, c.MaxFreq, nyquist)
	}
	if c.Mode == ModeWaterfall || c.Mode == ModeSpectrogram {
		if c.HistoryDepth <= 0 {
			return fmt.Errorf("%w: history depth must be positive, got %d", ErrBadConfig, c.HistoryDepth)
		}
	}
	if c.Floor >= c.Ceiling {
		return fmt.Errorf("%w: need floor < ceiling, got [%g, %g]", ErrBadConfig, c.Floor, c.Ceiling)
	}
	if c.Decay <= 0 || c.Decay > 1 {
		return fmt.Errorf("%w: decay must be in (0, 1], got %g", ErrBadConfig, c.Decay)
	}
	return nil
}
