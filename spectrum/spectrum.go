// Package spectrum produces the magnitude spectra the engine consumes: a
// Hann-windowed real FFT over a fixed-size sample window. Zero padding at
// stream boundaries happens here, upstream of the engine, so the engine
// itself never pads or truncates.
package spectrum

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// DefaultFFTSize is the reference analysis window, 2048 samples.
const DefaultFFTSize = 2048

// Analyzer computes magnitude spectra from sample windows. Buffers and the
// window function are allocated once and reused every call.
type Analyzer struct {
	fftSize int
	win     []float64
	buf     []float64
	mags    []float64
}

// NewAnalyzer builds an analyzer for the given FFT size.
func NewAnalyzer(fftSize int) (*Analyzer, error) {
	if fftSize < 2 {
		return nil, fmt.Errorf("fft size must be at least 2, got %d", fftSize)
	}
	return &Analyzer{
		fftSize: fftSize,
		win:     window.Hann(fftSize),
		buf:     make([]float64, fftSize),
		mags:    make([]float64, fftSize/2+1),
	}, nil
}

// FFTSize returns the analysis window length in samples.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// Bins returns the spectrum length, fftSize/2+1.
func (a *Analyzer) Bins() int { return len(a.mags) }

// Magnitudes windows samples and returns |X[k]| for k = 0..fftSize/2.
// Short input is zero-padded, long input truncated to the window. The
// returned slice is reused across calls.
func (a *Analyzer) Magnitudes(samples []float64) []float64 {
	n := copy(a.buf, samples)
	for i := n; i < a.fftSize; i++ {
		a.buf[i] = 0
	}
	for i, w := range a.win {
		a.buf[i] *= w
	}

	spec := fft.FFTReal(a.buf)
	for k := range a.mags {
		a.mags[k] = cmplx.Abs(spec[k])
	}
	return a.mags
}

// Window extracts a window of the analyzer's FFT size centered on the given
// sample index, zero-padded where it overhangs either end of the stream.
func (a *Analyzer) Window(samples []float64, center int) []float64 {
	out := make([]float64, a.fftSize)
	start := center - a.fftSize/2
	for i := range out {
		if j := start + i; j >= 0 && j < len(samples) {
			out[i] = samples[j]
		}
	}
	return out
}

// Mono folds interleaved stereo int16 PCM down to float64 mono in [-1, 1).
func Mono(samples []int16) []float64 {
	out := make([]float64, (len(samples)+1)/2)
	for i := range out {
		j := i * 2
		if j+1 < len(samples) {
			out[i] = (float64(samples[j]) + float64(samples[j+1])) / 65536.0
		} else {
			out[i] = float64(samples[j]) / 32768.0
		}
	}
	return out
}
