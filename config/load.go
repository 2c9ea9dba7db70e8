package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a tuning file and merges it over the defaults. A missing
// path ("") returns the defaults unchanged.
func Load(path string) (*Tuning, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tuning file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing tuning file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the tuning back to a YAML file, so a session tweaked at
// runtime can be kept.
func Save(cfg *Tuning, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding tuning: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing tuning file %s: %w", path, err)
	}
	return nil
}
