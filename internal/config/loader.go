package config

import (
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"
)

// LoadAndValidate loads the configuration, validates it against the JSON
// schema and applies defaults.
func LoadAndValidate(path, schemaPath string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: failed to read config: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	schema, err := jsonschema.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: failed to compile schema: %w", err)
	}

	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("pipeline: config validation failed: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("pipeline: failed to unmarshal into Config struct: %w", err)
	}

	config.ApplyDefaults()

	if err := config.check(); err != nil {
		return nil, fmt.Errorf("pipeline: invalid config: %w", err)
	}

	return &config, nil
}

// check verifies cross-field constraints the schema cannot express.
func (c *Config) check() error {
	if c.Routing.ConfidenceThreshold < 0 || c.Routing.ConfidenceThreshold > 1 {
		return fmt.Errorf("routing.confidence_threshold must be in [0,1], got %v", c.Routing.ConfidenceThreshold)
	}

	for _, id := range c.AssignedModels() {
		m, ok := c.Models[id]
		if !ok {
			return fmt.Errorf("services reference unknown model %q", id)
		}
		if m.Backend == "" {
			return fmt.Errorf("model %q has no backend assigned", id)
		}
	}

	return nil
}
