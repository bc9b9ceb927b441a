// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestDefaultsValidate(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		errPart string
	}{
		{"non-power-of-2 fft", func(c *Config) { c.FFTSize = 500 }, "power of 2"},
		{"oversized fft", func(c *Config) { c.FFTSize = MaxFFTSize * 2 }, "power of 2"},
		{"sample rate too low", func(c *Config) { c.SampleRate = 1000 }, "sample_rate"},
		{"sample rate too high", func(c *Config) { c.SampleRate = 500000 }, "sample_rate"},
		{"zero history", func(c *Config) { c.HistoryWidth = 0 }, "history_width"},
		{"zero channels", func(c *Config) { c.Channels = 0 }, "channels"},
		{"zero frames per buffer", func(c *Config) { c.FramesPerBuffer = 0 }, "frames_per_buffer"},
		{"min freq above Nyquist", func(c *Config) { c.MinFreq = 30000 }, "min_freq"},
		{"zero min freq", func(c *Config) { c.MinFreq = 0 }, "min_freq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.errPart)
			}
		})
	}
}

func TestValidateFFTSizeSuggestion(t *testing.T) {
	cfg := NewConfig()

	cfg.FFTSize = 500
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "try 512") {
		t.Errorf("error = %v, want a 512 suggestion for fft_size 500", err)
	}

	// Oversized sizes suggest the largest supported window.
	cfg.FFTSize = MaxFFTSize * 2
	err = cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), fmt.Sprintf("try %d", MaxFFTSize)) {
		t.Errorf("error = %v, want a %d suggestion for oversized fft_size", err, MaxFFTSize)
	}
}

func TestLoadFile_EmptyPath(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.LoadFile(""); err != nil {
		t.Errorf("expected nil error with no config file, got %v", err)
	}
	if cfg.FFTSize != DefaultFFTSize {
		t.Errorf("FFTSize = %d, want default %d", cfg.FFTSize, DefaultFFTSize)
	}
}

func TestLoadFile_FileNotFound(t *testing.T) {
	cfg := NewConfig()
	err := cfg.LoadFile("nonexistent.yaml")
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("expected read error for missing file, got %v", err)
	}
}

func TestLoadFile_UnmarshalError(t *testing.T) {
	path := writeTempConfig(t, ":\n:bad")
	cfg := NewConfig()
	err := cfg.LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("expected unmarshal error, got %v", err)
	}
}

func TestLoadFile_Overrides(t *testing.T) {
	path := writeTempConfig(t, "fft_size: 1024\nhistory_width: 50\nmin_freq: 30\n")
	cfg := NewConfig()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.FFTSize != 1024 {
		t.Errorf("FFTSize = %d, want 1024", cfg.FFTSize)
	}
	if cfg.HistoryWidth != 50 {
		t.Errorf("HistoryWidth = %d, want 50", cfg.HistoryWidth)
	}
	if cfg.MinFreq != 30 {
		t.Errorf("MinFreq = %g, want 30", cfg.MinFreq)
	}
	// Untouched fields keep their defaults.
	if cfg.SampleRate != DefaultSampleRate {
		t.Errorf("SampleRate = %g, want default %d", cfg.SampleRate, DefaultSampleRate)
	}
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("SPECTRO_SAMPLE_RATE", "48000")
	t.Setenv("SPECTRO_SERVE_PORT", "9090")

	cfg := NewConfig()
	if err := cfg.LoadFile(""); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.SampleRate != 48000 {
		t.Errorf("SampleRate = %g, want env override 48000", cfg.SampleRate)
	}
	if cfg.ServePort != "9090" {
		t.Errorf("ServePort = %q, want env override \"9090\"", cfg.ServePort)
	}
}

func TestLoadFile_EnvBeatsFile(t *testing.T) {
	path := writeTempConfig(t, "sample_rate: 22050\n")
	t.Setenv("SPECTRO_SAMPLE_RATE", "96000")

	cfg := NewConfig()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.SampleRate != 96000 {
		t.Errorf("SampleRate = %g, want env to win over file", cfg.SampleRate)
	}
}
