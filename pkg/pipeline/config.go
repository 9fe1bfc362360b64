package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-blueprint/pkg/extract"
	"github.com/dd0wney/cluso-blueprint/pkg/quantum"
	"github.com/dd0wney/cluso-blueprint/pkg/sector"
	"github.com/dd0wney/cluso-blueprint/pkg/validation"
)

// Config is the YAML-backed pipeline configuration
type Config struct {
	Optimizer   quantum.Options           `yaml:"optimizer"`
	Partitioner sector.PartitionerOptions `yaml:"partitioner"`
	Workers     int                       `yaml:"workers"`
	LogLevel    string                    `yaml:"log_level"`
	Symbols     []extract.Symbol          `yaml:"symbol_library"`
}

// DefaultConfig returns the pipeline defaults
func DefaultConfig() Config {
	return Config{
		Optimizer:   quantum.DefaultOptions(),
		Partitioner: sector.DefaultPartitionerOptions(),
		Workers:     0, // 0 means one worker per CPU
		LogLevel:    "info",
		Symbols:     extract.DefaultLibrary(),
	}
}

// LoadConfig reads a YAML configuration file, fills omitted sections with
// defaults, and validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyDefaults fills zero-valued fields. Whole sections left out of the
// YAML fall back to their package defaults; individual required scalars
// are defaulted one by one so a partial section stays usable.
func (c *Config) applyDefaults() {
	if c.Optimizer == (quantum.Options{}) {
		c.Optimizer = quantum.DefaultOptions()
	} else {
		defaults := quantum.DefaultOptions()
		c.Optimizer.TimeSteps = validation.DefaultOrInt(c.Optimizer.TimeSteps, defaults.TimeSteps)
		c.Optimizer.Dt = validation.DefaultOrFloat(c.Optimizer.Dt, defaults.Dt)
		c.Optimizer.SelectionRatio = validation.DefaultOrFloat(c.Optimizer.SelectionRatio, defaults.SelectionRatio)
	}

	if c.Partitioner == (sector.PartitionerOptions{}) {
		c.Partitioner = sector.DefaultPartitionerOptions()
	} else {
		defaults := sector.DefaultPartitionerOptions()
		c.Partitioner.MaxNodesPerSector = validation.DefaultOrInt(c.Partitioner.MaxNodesPerSector, defaults.MaxNodesPerSector)
		c.Partitioner.GridRows = validation.DefaultOrInt(c.Partitioner.GridRows, defaults.GridRows)
		c.Partitioner.GridCols = validation.DefaultOrInt(c.Partitioner.GridCols, defaults.GridCols)
		c.Partitioner.ConnectionThreshold = validation.DefaultOrFloat(c.Partitioner.ConnectionThreshold, defaults.ConnectionThreshold)
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if len(c.Symbols) == 0 {
		c.Symbols = extract.DefaultLibrary()
	}
}

// Validate checks the whole configuration
func (c Config) Validate() error {
	if err := c.Optimizer.Validate(); err != nil {
		return err
	}
	if err := c.Partitioner.Validate(); err != nil {
		return err
	}
	return validation.NewConfigValidator("Config").
		MinInt("Workers", c.Workers, 0).
		OneOf("LogLevel", c.LogLevel, []string{"debug", "info", "warn", "error"}).
		Validate()
}
