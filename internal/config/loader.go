// Package config loads the model configuration registry: a YAML list of
// named models and their launch parameters.
package config

import (
	"embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed models.yaml
var embeddedConfig embed.FS

// ErrModelNotFound is returned when a requested model name is absent from
// the loaded configuration.
var ErrModelNotFound = errors.New("not found in configuration")

type configFile struct {
	Models []ModelConfig `yaml:"models"`
}

// Store is a loaded, validated set of model configurations.
type Store struct {
	models []ModelConfig
}

// Load loads model configurations from the given path, falling back to the
// embedded default configuration when no path is provided.
func Load(path string) (*Store, error) {
	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read model config %s: %w", path, err)
		}
	} else {
		data, err = embeddedConfig.ReadFile("models.yaml")
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded model config: %w", err)
		}
	}

	return Parse(data)
}

// Parse parses and validates raw YAML model configuration data.
func Parse(data []byte) (*Store, error) {
	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse model config: %w", err)
	}

	seen := make(map[string]bool, len(f.Models))
	for _, m := range f.Models {
		if m.ModelName == "" {
			return nil, fmt.Errorf("model config entry is missing model_name")
		}
		if seen[m.ModelName] {
			return nil, fmt.Errorf("duplicate model name %q in configuration", m.ModelName)
		}
		seen[m.ModelName] = true
	}

	return &Store{models: f.Models}, nil
}

// Get returns the configuration for the named model.
func (s *Store) Get(name string) (*ModelConfig, error) {
	for i := range s.models {
		if s.models[i].ModelName == name {
			return &s.models[i], nil
		}
	}
	return nil, fmt.Errorf("model %q %w", name, ErrModelNotFound)
}

// List returns all loaded model configurations.
func (s *Store) List() []ModelConfig {
	return s.models
}
