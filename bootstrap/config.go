package bootstrap

import (
	"github.com/kbukum/linqkit/config"
)

// Config is the interface constraint for tool configuration types.
// Any struct that embeds config.ToolConfig satisfies it through promoted
// methods.
//
//	type MyConfig struct {
//	    config.ToolConfig `yaml:",inline" mapstructure:",squash"`
//	    Extra string      `yaml:"extra" mapstructure:"extra"`
//	}
type Config interface {
	GetToolConfig() *config.ToolConfig
	ApplyDefaults()
	Validate() error
}
