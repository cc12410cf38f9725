package config

import (
	"fmt"
	"time"

	"github.com/kbukum/linqkit/logger"
	"github.com/kbukum/linqkit/validation"
)

// ToolConfig contains the configuration of a linqkit command-line tool.
type ToolConfig struct {
	Name        string          `yaml:"name" mapstructure:"name" json:"name" validate:"required"`
	Environment string          `yaml:"environment" mapstructure:"environment" json:"environment" validate:"oneof=development staging production"`
	Version     string          `yaml:"version" mapstructure:"version" json:"version"`
	Debug       bool            `yaml:"debug" mapstructure:"debug" json:"debug"`
	Logging     logger.Config   `yaml:"logging" mapstructure:"logging" json:"logging"`
	Telemetry   TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry" json:"telemetry"`
	Query       QueryConfig     `yaml:"query" mapstructure:"query" json:"query"`
}

// TelemetryConfig controls OTLP export of query traces and metrics.
type TelemetryConfig struct {
	Enabled        bool          `yaml:"enabled" mapstructure:"enabled" json:"enabled"`
	Endpoint       string        `yaml:"endpoint" mapstructure:"endpoint" json:"endpoint" validate:"omitempty,hostname_port"`
	Insecure       bool          `yaml:"insecure" mapstructure:"insecure" json:"insecure"`
	SampleRate     float64       `yaml:"sample_rate" mapstructure:"sample_rate" json:"sample_rate" validate:"gte=0,lte=1"`
	MetricInterval time.Duration `yaml:"metric_interval" mapstructure:"metric_interval" json:"metric_interval"`
}

// QueryConfig describes what the tool reads and how it prints results.
type QueryConfig struct {
	// Input is a JSON-lines file path; "-" reads standard input.
	Input string `yaml:"input" mapstructure:"input" json:"input" validate:"required"`
	// Recipe is the path of the recipe file to run.
	Recipe string `yaml:"recipe" mapstructure:"recipe" json:"recipe" validate:"required"`
	// Pretty indents the JSON output.
	Pretty bool `yaml:"pretty" mapstructure:"pretty" json:"pretty"`
	// Limit caps the number of input records read; 0 reads everything.
	Limit int `yaml:"limit" mapstructure:"limit" json:"limit" validate:"gte=0"`
}

// ApplyDefaults applies default values to the configuration.
func (c *ToolConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "linq"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
	if c.Query.Input == "" {
		c.Query.Input = "-"
	}
}

// ApplyDefaults applies default values to telemetry configuration.
func (c *TelemetryConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricInterval == 0 {
		c.MetricInterval = 15 * time.Second
	}
}

// Validate validates the configuration.
func (c *ToolConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	v := validation.New().
		Custom(!c.Telemetry.Enabled || c.Telemetry.Endpoint != "", "telemetry.endpoint", "is required when telemetry is enabled")
	if err := v.Err(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// GetToolConfig returns c. Types embedding ToolConfig get it promoted.
func (c *ToolConfig) GetToolConfig() *ToolConfig { return c }
