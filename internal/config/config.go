// Package config loads the optional faultline YAML config file. All
// fields default sensibly when the file or a field is absent.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/faultline/confidence"
	"github.com/example/faultline/differential"
	"github.com/example/faultline/domain"
)

// Config is the on-disk configuration.
type Config struct {
	// Differential holds the analyzer thresholds.
	Differential DifferentialConfig `yaml:"differential"`

	// Confidence selects the axis weight scheme.
	Confidence ConfidenceConfig `yaml:"confidence"`

	// Oracle holds subprocess oracle settings.
	Oracle OracleConfig `yaml:"oracle"`
}

type DifferentialConfig struct {
	Samples           int     `yaml:"samples"`
	Alpha             float64 `yaml:"alpha"`
	SlowdownThreshold float64 `yaml:"slowdown_threshold"`
}

type ConfidenceConfig struct {
	// Scheme is "default" (0.30/0.30/0.25/0.15), "equal" (0.25 each)
	// or "custom".
	Scheme string `yaml:"scheme"`

	// Custom is the weight vector used when Scheme is "custom".
	Custom confidence.Weights `yaml:"custom"`
}

type OracleConfig struct {
	// Timeout bounds one oracle command invocation.
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Differential: DifferentialConfig{
			Samples:           30,
			Alpha:             0.05,
			SlowdownThreshold: 1.2,
		},
		Confidence: ConfidenceConfig{Scheme: "default"},
		Oracle:     OracleConfig{Timeout: 10 * time.Minute},
	}
}

// Load reads the config file at path, applying defaults for absent
// fields. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	dc := c.DifferentialConfig()
	if err := dc.Validate(); err != nil {
		return err
	}
	switch c.Confidence.Scheme {
	case "", "default", "equal", "custom":
	default:
		return fmt.Errorf("%w: unknown confidence scheme %q", domain.ErrInvalidConfig, c.Confidence.Scheme)
	}
	if c.Oracle.Timeout < 0 {
		return fmt.Errorf("%w: negative oracle timeout", domain.ErrInvalidConfig)
	}
	return nil
}

// DifferentialConfig converts to the analyzer's config type.
func (c *Config) DifferentialConfig() differential.Config {
	return differential.Config{
		Samples:           c.Differential.Samples,
		Alpha:             c.Differential.Alpha,
		SlowdownThreshold: c.Differential.SlowdownThreshold,
	}
}

// Weights returns the selected confidence weight vector.
func (c *Config) Weights() confidence.Weights {
	switch c.Confidence.Scheme {
	case "equal":
		return confidence.EqualWeights()
	case "custom":
		return c.Confidence.Custom
	default:
		return confidence.DefaultWeights()
	}
}
