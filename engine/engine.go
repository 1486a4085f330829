// Package engine turns raw FFT magnitude spectra into stable, perceptually
// scaled band values for music visualizers: logarithmic frequency banding
// with gap fill, adaptive running-max normalization, and per-mode time
// history or flame animation. One Engine instance owns all of its mutable
// state and is driven from a single goroutine, one call per tick.
package engine

import (
	"fmt"
)

// Output is the product of one tick. Mode says which field is populated;
// slices are read-only views reused by the engine on the next tick.
type Output struct {
	Mode Mode

	// Bands holds normalized band values (ModeBars).
	Bands []float64
	// History holds the scrolling matrix snapshot, oldest row first
	// (ModeWaterfall, ModeSpectrogram).
	History [][]float64
	// Flames holds animated flame heights (ModeFlame).
	Flames []float64
}

// Engine is the per-tick frame processor. Construct one per active
// visualization; switching modes discards all adaptive state.
type Engine struct {
	cfg Config

	mapper  *BandMapper
	norm    *Normalizer
	history *History
	flame   *Flame
	spring  *springField
}

// New validates cfg and builds an engine for its mode.
func New(cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:    cfg,
		mapper: NewBandMapper(cfg),
	}
	e.buildStages()
	return e, nil
}

// Mode returns the active visualization mode.
func (e *Engine) Mode() Mode { return e.cfg.Mode }

// Bands returns the configured band count.
func (e *Engine) Bands() int { return e.cfg.Bands }

// Normalizer exposes the adaptive normalization stage, mainly so callers
// can observe the running max.
func (e *Engine) Normalizer() *Normalizer { return e.norm }

// buildStages constructs the downstream state for the active mode. Called
// on construction and again on every mode switch: history, flame state and
// the normalization ceiling never survive a switch.
func (e *Engine) buildStages() {
	normCfg := e.cfg
	if normCfg.Floor == 0 && (normCfg.Mode == ModeWaterfall || normCfg.Mode == ModeSpectrogram) {
		normCfg.Floor = historyFloor
	}
	e.norm = NewNormalizer(normCfg)

	e.history = nil
	e.flame = nil
	e.spring = nil
	if e.cfg.Spring.enabled() {
		e.spring = newSpringField(e.cfg.Spring, e.cfg.Bands)
	}
	switch e.cfg.Mode {
	case ModeWaterfall, ModeSpectrogram:
		e.history = NewHistory(e.cfg.HistoryDepth, e.cfg.Bands)
	case ModeFlame:
		e.flame = NewFlame(e.cfg.Flame, e.cfg.Bands)
	}
}

// SetMode switches the active visualization. All adaptive state is rebuilt
// from the configuration; band history is intentionally not comparable
// across a switch.
func (e *Engine) SetMode(m Mode) {
	e.cfg.Mode = m
	e.buildStages()
}

// SetSampleRate repositions FFT bins on the frequency axis for spectra
// computed at a different rate.
func (e *Engine) SetSampleRate(rate float64) {
	if rate > 0 {
		e.cfg.SampleRate = rate
		e.mapper.SetSampleRate(rate)
	}
}

// Process runs one tick: band mapping, normalization, then the stage the
// active mode selects. The spectrum may be empty or all-zero; that never
// fails, it just settles at the clamped floor.
func (e *Engine) Process(spectrum []float64) (Output, error) {
	energies := e.mapper.MapToBands(spectrum)
	bands := e.norm.Normalize(energies)
	if e.spring != nil {
		bands = e.spring.step(bands)
	}

	out := Output{Mode: e.cfg.Mode}
	switch e.cfg.Mode {
	case ModeBars:
		out.Bands = bands
	case ModeWaterfall, ModeSpectrogram:
		if err := e.history.PushRow(bands); err != nil {
			return Output{}, err
		}
		out.History = e.history.Snapshot()
	case ModeFlame:
		out.Flames = e.flame.Advance(bands)
	default:
		return Output{}, fmt.Errorf("%w: unknown mode %d", ErrBadConfig, e.cfg.Mode)
	}
	return out, nil
}

// LoadBatch rebuilds the spectrogram matrix from a batch of raw spectra in
// one call, the static heatmap entry point. Only valid in ModeSpectrogram.
func (e *Engine) LoadBatch(frames [][]float64) (Output, error) {
	if e.cfg.Mode != ModeSpectrogram {
		return Output{}, fmt.Errorf("load batch: mode %s does not keep a spectrogram", e.cfg.Mode)
	}
	if err := e.history.LoadBatch(frames, e.mapper, e.norm); err != nil {
		return Output{}, err
	}
	return Output{Mode: e.cfg.Mode, History: e.history.Snapshot()}, nil
}
