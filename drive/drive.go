// Package drive runs an engine on a fixed-period tick: pull a spectrum,
// process it, hand the output to a renderer, in that order. It replaces a
// GUI toolkit's repaint timer with an explicit loop that any renderer can
// sit behind.
package drive

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/olivier-w/specviz/engine"
)

// DefaultInterval is the reference repaint period.
const DefaultInterval = 50 * time.Millisecond

// Source supplies the current magnitude spectrum each tick. Returning nil
// skips the tick, for when no audio is flowing yet.
type Source func() []float64

// Render receives each tick's output after processing completes. Errors
// are logged and the loop keeps running; a renderer hiccup must not kill
// the audio-rate loop.
type Render func(engine.Output) error

// Driver owns the tick loop. The engine is only ever touched from the
// goroutine running Run, so it needs no locking.
type Driver struct {
	eng      *engine.Engine
	source   Source
	render   Render
	interval time.Duration
	logger   *log.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithInterval overrides the tick period.
func WithInterval(d time.Duration) Option {
	return func(dr *Driver) {
		if d > 0 {
			dr.interval = d
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(l *log.Logger) Option {
	return func(dr *Driver) { dr.logger = l }
}

// New builds a driver around an engine, a spectrum source, and a renderer.
func New(eng *engine.Engine, source Source, render Render, opts ...Option) *Driver {
	d := &Driver{
		eng:      eng,
		source:   source,
		render:   render,
		interval: DefaultInterval,
		logger:   log.WithPrefix("drive"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run ticks until ctx is cancelled and returns ctx's error. Ticks that
// arrive late or get dropped are harmless: every Process call is
// self-contained given the engine's current state.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.tick()
		}
	}
}

func (d *Driver) tick() {
	spec := d.source()
	if spec == nil {
		return
	}

	start := time.Now()
	out, err := d.eng.Process(spec)
	if err != nil {
		d.logger.Warn("process failed", "err", err)
		return
	}
	if err := d.render(out); err != nil {
		d.logger.Error("render failed", "err", err)
	}
	if elapsed := time.Since(start); elapsed > d.interval {
		d.logger.Debug("tick overran", "elapsed", elapsed, "interval", d.interval)
	}
}
