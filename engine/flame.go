package engine

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	flameFloor   = 0.05
	flameCeiling = 1.0
)

// FlameConfig tunes the procedural flame animation. Two reference shapes
// exist: a narrow combined flicker+wave display and a wider flicker-only
// one; both are reachable here. The zero value resolves to the combined
// shape with as many flames as bands.
type FlameConfig struct {
	// Count is the number of flame columns. Zero means one per band;
	// other values resample the normalized bands linearly.
	Count int

	// FlickerSmoothing is the weight of the prior flicker value in the
	// smoothed random walk; the remainder weights a fresh draw from
	// [FlickerMin, FlickerMax).
	FlickerSmoothing float64
	FlickerMin       float64
	FlickerMax       float64

	// WaveAmplitude scales the sine term layered over each column; zero
	// means the default. NoWave drops the term entirely, the
	// flicker-only variant.
	WaveAmplitude float64
	NoWave        bool
	// PhaseStep advances the global wave phase every tick.
	PhaseStep float64

	// EnergyGain scales the normalized band value added to each column.
	EnergyGain float64

	// Rand supplies the flicker randomness. Nil means time-seeded;
	// inject a fixed-seed source for reproducible output.
	Rand rand.Source
}

func (c FlameConfig) withDefaults(bands int) FlameConfig {
	if c.Count <= 0 {
		c.Count = bands
	}
	if c.FlickerSmoothing == 0 {
		c.FlickerSmoothing = 0.7
	}
	if c.FlickerMin == 0 && c.FlickerMax == 0 {
		c.FlickerMin, c.FlickerMax = 0.2, 0.5
	}
	if c.WaveAmplitude == 0 {
		c.WaveAmplitude = 0.15
	}
	if c.NoWave {
		c.WaveAmplitude = 0
	}
	if c.PhaseStep == 0 {
		c.PhaseStep = 0.2
	}
	if c.EnergyGain == 0 {
		c.EnergyGain = 1.2
	}
	return c
}

// Flame animates a row of flame heights from normalized band energies: a
// smoothed per-column random flicker, an optional traveling sine wave, and
// the band energy on top. State is per instance and never shared.
type Flame struct {
	cfg     FlameConfig
	rng     *rand.Rand
	flicker []float64
	offset  []float64 // per-column wave phase offsets
	phase   float64   // unbounded; sin wraps it implicitly
	heights []float64 // reused output buffer
	resamp  []float64 // scratch for band resampling
}

// NewFlame builds a flame overlay for an engine with the given band count.
func NewFlame(cfg FlameConfig, bands int) *Flame {
	cfg = cfg.withDefaults(bands)
	src := cfg.Rand
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>32)
	}
	f := &Flame{
		cfg:     cfg,
		rng:     rand.New(src),
		flicker: make([]float64, cfg.Count),
		offset:  make([]float64, cfg.Count),
		heights: make([]float64, cfg.Count),
	}
	for i := range f.offset {
		f.offset[i] = f.rng.Float64() * 2 * math.Pi
	}
	return f
}

// Count returns the number of flame columns.
func (f *Flame) Count() int { return len(f.heights) }

// Advance runs one animation tick over the normalized bands and returns the
// flame heights, each in [0.05, 1.0]. The returned slice is reused across
// calls.
func (f *Flame) Advance(norm []float64) []float64 {
	bands := f.columns(norm)
	for i := range f.heights {
		draw := f.cfg.FlickerMin + (f.cfg.FlickerMax-f.cfg.FlickerMin)*f.rng.Float64()
		f.flicker[i] = f.cfg.FlickerSmoothing*f.flicker[i] + (1-f.cfg.FlickerSmoothing)*draw

		wave := 0.0
		if f.cfg.WaveAmplitude > 0 {
			wave = f.cfg.WaveAmplitude * math.Sin(f.phase+f.offset[i]+float64(i)*0.5)
		}

		h := f.flicker[i] + bands[i]*f.cfg.EnergyGain + wave
		f.heights[i] = clamp(h, flameFloor, flameCeiling)
	}
	f.phase += f.cfg.PhaseStep
	return f.heights
}

// columns resamples norm to the flame column count, nearest-interpolated,
// the same way the waterfall stretches bands across terminal columns.
func (f *Flame) columns(norm []float64) []float64 {
	n := len(f.heights)
	if len(norm) == n {
		return norm
	}
	if f.resamp == nil {
		f.resamp = make([]float64, n)
	}
	if len(norm) == 0 {
		for i := range f.resamp {
			f.resamp[i] = 0
		}
		return f.resamp
	}
	den := n - 1
	if den < 1 {
		den = 1
	}
	for c := 0; c < n; c++ {
		frac := float64(c) / float64(den) * float64(len(norm)-1)
		lo := int(frac)
		hi := lo + 1
		if hi >= len(norm) {
			hi = len(norm) - 1
		}
		t := frac - float64(lo)
		f.resamp[c] = norm[lo]*(1-t) + norm[hi]*t
	}
	return f.resamp
}
