package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Param is a single launch parameter for a model.
type Param struct {
	Name  string
	Value any
}

// ModelConfig holds the launch parameters for one named model.
//
// Parameters keep the order they appear in the configuration file, since
// that order determines the order of flags in the rendered launch command.
// The model name itself is not a launch parameter and is kept separately.
type ModelConfig struct {
	ModelName string
	Params    []Param
}

// UnmarshalYAML decodes a model entry while preserving the file order of
// its parameter fields. Values decode to string, int or bool according to
// their YAML representation.
func (c *ModelConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("model entry must be a mapping, got %s", node.Tag)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return fmt.Errorf("failed to decode model field name: %w", err)
		}

		if key == "model_name" {
			if err := valNode.Decode(&c.ModelName); err != nil {
				return fmt.Errorf("failed to decode model_name: %w", err)
			}
			continue
		}

		var value any
		if err := valNode.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode field %q: %w", key, err)
		}
		c.Params = append(c.Params, Param{Name: key, Value: value})
	}

	return nil
}

// Lookup returns the value of a launch parameter by name.
func (c *ModelConfig) Lookup(name string) (any, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}
