// Package train implements the mini-batch training loop and its
// configuration surface.
package train

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes a full training run: network architecture,
// optimization hyperparameters, and reporting cadence.
type Config struct {
	InputSize   int   `yaml:"input_size"`
	HiddenSizes []int `yaml:"hidden_sizes"`
	OutputSize  int   `yaml:"output_size"`

	LearningRate float32 `yaml:"learning_rate"`
	Momentum     float32 `yaml:"momentum"`
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`

	PrintEvery int   `yaml:"print_every"`
	Seed       int64 `yaml:"seed"`
}

// DefaultConfig returns a config for a small demonstration run: a
// 4 → 8 → 3 network trained for 10 epochs.
func DefaultConfig() Config {
	return Config{
		InputSize:    4,
		HiddenSizes:  []int{8},
		OutputSize:   3,
		LearningRate: 0.1,
		Epochs:       10,
		BatchSize:    16,
		PrintEvery:   10,
		Seed:         42,
	}
}

// LoadConfig reads a YAML config file, applying defaults for any field
// the file omits.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

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

// Validate checks that the config describes a runnable training job.
func (c Config) Validate() error {
	if c.InputSize <= 0 {
		return fmt.Errorf("input_size must be positive, got %d", c.InputSize)
	}
	if c.OutputSize <= 0 {
		return fmt.Errorf("output_size must be positive, got %d", c.OutputSize)
	}
	for i, h := range c.HiddenSizes {
		if h <= 0 {
			return fmt.Errorf("hidden_sizes[%d] must be positive, got %d", i, h)
		}
	}
	if c.LearningRate < 0 {
		return fmt.Errorf("learning_rate must be non-negative, got %g", c.LearningRate)
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return fmt.Errorf("momentum must be in [0, 1), got %g", c.Momentum)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("batch_size must be non-negative, got %d", c.BatchSize)
	}
	if c.PrintEvery <= 0 {
		return fmt.Errorf("print_every must be positive, got %d", c.PrintEvery)
	}
	return nil
}

// LayerSizes returns the full layer width sequence, input through output.
func (c Config) LayerSizes() []int {
	sizes := make([]int, 0, len(c.HiddenSizes)+2)
	sizes = append(sizes, c.InputSize)
	sizes = append(sizes, c.HiddenSizes...)
	sizes = append(sizes, c.OutputSize)
	return sizes
}
