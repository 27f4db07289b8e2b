package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a credjar configuration file, fills defaults, applies
// CREDJAR_* environment overrides and validates the result.
// An empty path skips the file and starts from defaults.
func Load(path string) (FileConfig, error) {
	var cfg FileConfig

	if path != "" {
		// Clean the path to prevent directory traversal attacks
		cleanPath := filepath.Clean(path)
		data, err := os.ReadFile(cleanPath) // #nosec G304 - Config file path is trusted (from admin/user)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}

		if cfg, err = Parse(data); err != nil {
			return cfg, err
		}
	}

	applyDefaults(&cfg)

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Parse decodes YAML config bytes. Unknown keys are rejected.
func Parse(data []byte) (FileConfig, error) {
	var cfg FileConfig

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
