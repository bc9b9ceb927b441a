// SPDX-License-Identifier: MIT
package config

import (
	"fmt"

	"spectro/pkg/bitint"
)

// Defaults and limits for the capture and analysis configuration.
const (
	// Audio device defaults
	DefaultChannels        = 1           // Mono capture
	DefaultDeviceID        = MinDeviceID // System default input device
	DefaultSampleRate      = 44100       // CD-quality audio (Hz)
	DefaultFramesPerBuffer = 512         // Balanced latency/performance
	DefaultLowLatency      = false       // Standard latency mode

	// Analysis defaults
	DefaultFFTSize      = 512  // Samples per analysis window (power of 2)
	DefaultHistoryWidth = 200  // Spectrogram frames kept (time axis)
	DefaultMinFreq      = 20.0 // Bottom of the displayed frequency axis (Hz)

	// Recording defaults
	DefaultRecordInputStream = false
	DefaultOutputFile        = "" // Auto-generated filename
	DefaultFormat            = "wav"

	// Hardware and processing limits
	MinDeviceID   = -1     // -1 represents the system default device
	MinSampleRate = 8000   // Minimum usable sample rate (Hz)
	MaxSampleRate = 192000 // Maximum supported sample rate (Hz)
	MaxFFTSize    = 8192   // Maximum analysis window (power of 2)
)

// Config holds all runtime options. Defaults are overlaid by an optional
// YAML file, then environment variables, then command line flags.
type Config struct {
	// Audio device settings
	Channels        int     `yaml:"channels"`
	DeviceID        int     `yaml:"device_id"`
	SampleRate      float64 `yaml:"sample_rate"`
	FramesPerBuffer int     `yaml:"frames_per_buffer"`
	LowLatency      bool    `yaml:"low_latency"`

	// Spectral analysis settings
	FFTSize      int     `yaml:"fft_size"`
	HistoryWidth int     `yaml:"history_width"`
	MinFreq      float64 `yaml:"min_freq"`

	// Recording options
	RecordInputStream bool   `yaml:"record"`
	OutputFile        string `yaml:"output_file"`
	Format            string `yaml:"format"`

	// WebSocket feed; empty disables serving
	ServePort string `yaml:"serve_port"`

	// Debug options
	Verbose bool   `yaml:"verbose"`
	Command string `yaml:"-"` // One-off command to execute
	TUIMode bool   `yaml:"-"` // Terminal viewer enabled
}

// NewConfig returns a Config populated with defaults. This is the base
// configuration before file, environment, and flag overrides.
func NewConfig() *Config {
	return &Config{
		Channels:          DefaultChannels,
		DeviceID:          DefaultDeviceID,
		SampleRate:        DefaultSampleRate,
		FramesPerBuffer:   DefaultFramesPerBuffer,
		LowLatency:        DefaultLowLatency,
		FFTSize:           DefaultFFTSize,
		HistoryWidth:      DefaultHistoryWidth,
		MinFreq:           DefaultMinFreq,
		RecordInputStream: DefaultRecordInputStream,
		OutputFile:        DefaultOutputFile,
		Format:            DefaultFormat,
	}
}

// Validate checks the configuration against the limits above.
func (c *Config) Validate() error {
	if !bitint.IsPowerOfTwo(c.FFTSize) || c.FFTSize > MaxFFTSize {
		suggested := bitint.NextPowerOfTwo(c.FFTSize)
		if suggested > MaxFFTSize {
			suggested = MaxFFTSize
		}
		return fmt.Errorf("fft_size must be a power of 2 up to %d, got %d; try %d", MaxFFTSize, c.FFTSize, suggested)
	}
	if c.SampleRate < MinSampleRate || c.SampleRate > MaxSampleRate {
		return fmt.Errorf("sample_rate must be in [%d, %d], got %.0f", MinSampleRate, MaxSampleRate, c.SampleRate)
	}
	if c.HistoryWidth <= 0 {
		return fmt.Errorf("history_width must be positive, got %d", c.HistoryWidth)
	}
	if c.Channels < 1 {
		return fmt.Errorf("channels must be at least 1, got %d", c.Channels)
	}
	if c.FramesPerBuffer <= 0 {
		return fmt.Errorf("frames_per_buffer must be positive, got %d", c.FramesPerBuffer)
	}
	if c.MinFreq <= 0 || c.MinFreq >= c.SampleRate/2 {
		return fmt.Errorf("min_freq must be in (0, sample_rate/2), got %.1f", c.MinFreq)
	}
	return nil
}
