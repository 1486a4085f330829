package engine

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrRowWidth reports a pushed row whose width differs from the
	// buffer's. Rows are never truncated or padded to fit.
	ErrRowWidth = errors.New("history: row width mismatch")
	// ErrEmptyBatch reports a LoadBatch call with no frames.
	ErrEmptyBatch = errors.New("history: empty batch")
)

// History is a fixed-size scrolling matrix of normalized band rows, oldest
// first. Depth and width never change after construction; every push drops
// the oldest row and appends the newest at the end.
type History struct {
	rows  [][]float64
	depth int
	width int
}

// NewHistory allocates a zeroed depth×width matrix.
func NewHistory(depth, width int) *History {
	rows := make([][]float64, depth)
	for r := range rows {
		rows[r] = make([]float64, width)
	}
	return &History{rows: rows, depth: depth, width: width}
}

// Depth returns the number of rows.
func (h *History) Depth() int { return h.depth }

// Width returns the number of bands per row.
func (h *History) Width() int { return h.width }

// PushRow scrolls the matrix up one row and copies row into the last slot.
func (h *History) PushRow(row []float64) error {
	if len(row) != h.width {
		return fmt.Errorf("%w: got %d, want %d", ErrRowWidth, len(row), h.width)
	}
	for r := 0; r < h.depth-1; r++ {
		copy(h.rows[r], h.rows[r+1])
	}
	copy(h.rows[h.depth-1], row)
	return nil
}

// Snapshot returns the matrix, oldest row first. Callers must treat it as
// read-only; the backing rows are reused by subsequent pushes.
func (h *History) Snapshot() [][]float64 {
	return h.rows
}

// Reset zeroes every row.
func (h *History) Reset() {
	for _, row := range h.rows {
		for i := range row {
			row[i] = 0
		}
	}
}

// LoadBatch rebuilds the matrix from raw spectra in one shot, the static
// spectrogram path. Only the newest depth frames are kept; when the batch
// is shorter the older rows are zeroed. The whole batch is normalized
// against a single running-max update so one call behaves like one tick.
func (h *History) LoadBatch(frames [][]float64, m *BandMapper, n *Normalizer) error {
	if len(frames) == 0 {
		return ErrEmptyBatch
	}
	if m.Bands() != h.width {
		return fmt.Errorf("%w: mapper emits %d bands, want %d", ErrRowWidth, m.Bands(), h.width)
	}

	if len(frames) > h.depth {
		frames = frames[len(frames)-h.depth:]
	}
	first := h.depth - len(frames)
	for r := 0; r < first; r++ {
		for i := range h.rows[r] {
			h.rows[r][i] = 0
		}
	}

	peak := 0.0
	for t, frame := range frames {
		energies := m.MapToBands(frame)
		copy(h.rows[first+t], energies)
		if p := floats.Max(energies); t == 0 || p > peak {
			peak = p
		}
	}

	n.observe(peak)
	for r := first; r < h.depth; r++ {
		for i, v := range h.rows[r] {
			h.rows[r][i] = n.scale(v)
		}
	}
	return nil
}
