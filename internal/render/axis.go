// SPDX-License-Identifier: MIT
// Package render holds the renderer-facing mapping from display rows to
// frequencies and from frequencies to FFT bins, shared by the terminal view
// and the WebSocket feed so every surface draws the same picture.
package render

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Axis maps display rows to frequencies on a logarithmic axis (top = high)
// and frequencies to spectral frame bins.
type Axis struct {
	minFreq float64
	nyquist float64
	bins    int
}

// NewAxis builds an axis covering [minFreq, sampleRate/2] over frames of
// bins values.
func NewAxis(minFreq, sampleRate float64, bins int) Axis {
	return Axis{minFreq: minFreq, nyquist: sampleRate / 2, bins: bins}
}

// Nyquist returns the upper frequency bound of the axis.
func (a Axis) Nyquist() float64 {
	return a.nyquist
}

// RowFreq returns the frequency displayed at row (0 = top) of a surface
// with height rows. Equal row distances cover equal frequency ratios:
//
//	freq(r) = 10^(log10(fmin) + (1 - r/height)·(log10(fmax) - log10(fmin)))
func (a Axis) RowFreq(row, height int) float64 {
	logMin := math.Log10(a.minFreq)
	logMax := math.Log10(a.nyquist)
	frac := 1 - float64(row)/float64(height)
	return math.Pow(10, logMin+frac*(logMax-logMin))
}

// BinIndex returns the frame bin for freq and whether it is in range.
// Out-of-range rows (the Nyquist row itself rounds one past the last bin)
// render blank.
func (a Axis) BinIndex(freq float64) (int, bool) {
	idx := int(math.Round(freq / a.nyquist * float64(a.bins)))
	if idx < 0 || idx >= a.bins {
		return 0, false
	}
	return idx, true
}

// Ten glyphs from silence to saturation; values are in [0, 2] so the index
// is value*10 clamped to the ramp.
var intensityRamp = []rune(" .:-=+*#%@")

// IntensityRune returns the glyph for one compressed magnitude value.
func IntensityRune(v float64) rune {
	i := int(v * 10)
	if i < 0 {
		i = 0
	}
	if i > len(intensityRamp)-1 {
		i = len(intensityRamp) - 1
	}
	return intensityRamp[i]
}

// IntensityColor buckets a compressed magnitude value into the display
// palette: blue through red with rising intensity.
func IntensityColor(v float64) lipgloss.Color {
	switch {
	case v < 0.3:
		return lipgloss.Color("4") // blue
	case v < 0.4:
		return lipgloss.Color("6") // cyan
	case v < 0.6:
		return lipgloss.Color("2") // green
	case v < 0.8:
		return lipgloss.Color("3") // yellow
	default:
		return lipgloss.Color("1") // red
	}
}
