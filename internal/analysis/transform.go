// SPDX-License-Identifier: MIT
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"spectro/pkg/bitint"
)

// Bounds of the log-compressed magnitude scale. A bin magnitude of
// 10^logFloor or below maps to 0.0; FrameCeil is the documented upper bound
// of every frame value, clamped here rather than left to renderers.
const (
	logFloor  = -2.0
	FrameCeil = 2.0
)

// Transform deterministically maps one analysis window to one spectral
// frame: a forward real FFT over windowSize samples (rectangular window, no
// leakage mitigation), keeping the positive-frequency half as per-bin
// log-compressed magnitudes.
type Transform struct {
	windowSize int
	sampleRate float64
	fft        *fourier.FFT

	// Pre-allocated coefficient buffer. Process runs on a single goroutine,
	// so no locking is needed here.
	coeffs []complex128
}

func NewTransform(windowSize int, sampleRate float64) (*Transform, error) {
	if !bitint.IsPowerOfTwo(windowSize) {
		return nil, fmt.Errorf("window size must be a power of 2, got %d", windowSize)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %f", sampleRate)
	}

	return &Transform{
		windowSize: windowSize,
		sampleRate: sampleRate,
		fft:        fourier.NewFFT(windowSize),
		coeffs:     make([]complex128, windowSize/2+1),
	}, nil
}

// Bins returns the number of values in each produced frame (windowSize/2).
func (t *Transform) Bins() int {
	return t.windowSize / 2
}

// Process computes the spectral frame for window into dst. The window must
// hold exactly windowSize samples and dst exactly Bins() values; the
// aggregator and pipeline enforce both upstream.
//
// Each output value is max(log10(|X_k| / windowSize), -2) + 2, clamped to
// [0, FrameCeil]. An all-zero window yields an all-zero frame.
func (t *Transform) Process(window []float64, dst []float64) {
	t.fft.Coefficients(t.coeffs, window)

	scale := 1.0 / float64(t.windowSize)
	for i := range dst {
		// Log10 of a zero magnitude is -Inf, which the floor absorbs.
		v := math.Log10(cmplx.Abs(t.coeffs[i]) * scale)
		if v < logFloor {
			v = logFloor
		}
		v -= logFloor
		if v > FrameCeil {
			v = FrameCeil
		}
		dst[i] = v
	}
}

// BinFreq returns the center frequency in Hz for a given bin index.
func (t *Transform) BinFreq(i int) float64 {
	if i < 0 || i >= len(t.coeffs) {
		return 0
	}
	return t.fft.Freq(i) * t.sampleRate
}
