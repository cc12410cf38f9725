// Package config loads configuration for linqkit tools.
//
// It uses Viper to read a YAML config file, then applies overrides from a
// .env file, LINQ_-prefixed environment variables and command-line flags,
// in increasing order of precedence.
//
// # Usage
//
//	var cfg config.ToolConfig
//	err := config.LoadConfig("linq", &cfg, config.WithFlags(flags))
//	cfg.ApplyDefaults()
//	err = cfg.Validate()
//
// Environment variables map onto nested keys by replacing underscores
// (e.g., LINQ_LOGGING_LEVEL sets logging.level).
package config
