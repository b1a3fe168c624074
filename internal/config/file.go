package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when --config is
// not given.
const DefaultFileName = "review-app.yaml"

// FileConfig is the on-disk form of the optional inputs. It never holds
// secrets.
type FileConfig struct {
	OrgaID    string `yaml:"orgaID,omitempty" json:"orgaID,omitempty"`
	Type      string `yaml:"type,omitempty" json:"type,omitempty"`
	Region    string `yaml:"region,omitempty" json:"region,omitempty"`
	Domain    string `yaml:"domain,omitempty" json:"domain,omitempty"`
	Alias     string `yaml:"alias,omitempty" json:"alias,omitempty"`
	CleverCLI string `yaml:"cleverCLI,omitempty" json:"cleverCLI,omitempty"`
}

// LoadFile reads and parses a review-app.yaml file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	return &cfg, nil
}

// SaveFile writes cfg as YAML to path.
func SaveFile(cfg *FileConfig, path string) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
