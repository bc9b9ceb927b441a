// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadFile overlays settings from a YAML file onto c. If path is empty, the
// default locations are searched and silently skipped when absent; an
// explicit path that cannot be read is an error. Environment variable
// overrides apply after the file.
func (c *Config) LoadFile(path string) error {
	if path == "" {
		candidates := []string{"spectro.yaml", "config.yaml"}
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			c.applyEnvOverrides()
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	c.applyEnvOverrides()
	return nil
}

// applyEnvOverrides applies SPECTRO_* environment variables on top of
// whatever the defaults and config file produced.
func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("SPECTRO_DEVICE_ID"); ok {
		if iVal, err := strconv.Atoi(val); err == nil {
			c.DeviceID = iVal
		}
	}
	if val, ok := os.LookupEnv("SPECTRO_SAMPLE_RATE"); ok {
		if fVal, err := strconv.ParseFloat(val, 64); err == nil {
			c.SampleRate = fVal
		}
	}
	if val, ok := os.LookupEnv("SPECTRO_SERVE_PORT"); ok {
		c.ServePort = val
	}
	if val, ok := os.LookupEnv("SPECTRO_VERBOSE"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			c.Verbose = bVal
		}
	}
}
