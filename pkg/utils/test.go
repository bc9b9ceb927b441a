// SPDX-License-Identifier: MIT
// Package utils holds test helpers shared across packages: deterministic
// signal generators, a capturing transport, and a spectral peak finder.
package utils

import "math"

// MockTransport implements the pipeline Transport interface for testing.
// It records every frame it receives.
type MockTransport struct {
	Frames [][]float64
}

// Send stores a copy of the frame for later inspection instead of
// transmitting.
func (m *MockTransport) Send(frame []float64) error {
	cp := make([]float64, len(frame))
	copy(cp, frame)
	m.Frames = append(m.Frames, cp)
	return nil
}

// GenerateSineWave returns size samples of a pure sine at frequency Hz,
// amplitude 0.9, sampled at sampleRate.
func GenerateSineWave(size int, sampleRate, frequency float64) []float64 {
	buffer := make([]float64, size)
	for i := range buffer {
		t := float64(i) / sampleRate
		buffer[i] = math.Sin(2*math.Pi*frequency*t) * 0.9
	}
	return buffer
}

// GenerateComplexWave returns size samples of a 440Hz fundamental plus two
// harmonics.
func GenerateComplexWave(size int, sampleRate float64) []float64 {
	buffer := make([]float64, size)
	for i := range buffer {
		t := float64(i) / sampleRate
		buffer[i] = math.Sin(2*math.Pi*440*t)*0.5 +
			math.Sin(2*math.Pi*880*t)*0.3 +
			math.Sin(2*math.Pi*1320*t)*0.2
	}
	return buffer
}

// SplitChunks cuts samples into consecutive chunks of at most chunkSize,
// mimicking device-driven chunk delivery.
func SplitChunks(samples []float64, chunkSize int) [][]float64 {
	var chunks [][]float64
	for len(samples) > 0 {
		n := chunkSize
		if n > len(samples) {
			n = len(samples)
		}
		chunks = append(chunks, samples[:n])
		samples = samples[n:]
	}
	return chunks
}

// FindPeakBin returns the index of the largest value in frame between
// startBin and endBin inclusive, clamped to valid bounds.
func FindPeakBin(frame []float64, startBin, endBin int) int {
	if len(frame) == 0 {
		return 0
	}

	if startBin < 0 {
		startBin = 0
	}

	if endBin >= len(frame) {
		endBin = len(frame) - 1
	}

	peakBin := startBin
	peakValue := frame[startBin]

	for bin := startBin + 1; bin <= endBin; bin++ {
		if frame[bin] > peakValue {
			peakValue = frame[bin]
			peakBin = bin
		}
	}

	return peakBin
}
