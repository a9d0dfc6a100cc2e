// Package config handles objtool configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Faultbox/objmesh/pkg/encoding"
)

// Output formats for the dump command.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all objtool settings.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Check   CheckConfig   `yaml:"check"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig holds settings for reading OBJ sources.
type InputConfig struct {
	Encoding string `yaml:"encoding"` // utf-8 or euc-kr
}

// OutputConfig holds settings for printed and written models.
type OutputConfig struct {
	Format    string `yaml:"format"`    // text or yaml
	Precision int    `yaml:"precision"` // decimals, -1 for shortest exact
}

// CheckConfig holds settings for batch validation.
type CheckConfig struct {
	Workers  int  `yaml:"workers"`
	Progress bool `yaml:"progress"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Encoding: encoding.UTF8,
		},
		Output: OutputConfig{
			Format:    FormatText,
			Precision: -1,
		},
		Check: CheckConfig{
			Workers:  runtime.NumCPU(),
			Progress: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := encoding.Lookup(c.Input.Encoding); err != nil {
		return fmt.Errorf("%w: input.encoding: %v", ErrInvalidConfig, err)
	}
	switch c.Output.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("%w: output.format must be %q or %q, got %q", ErrInvalidConfig, FormatText, FormatYAML, c.Output.Format)
	}
	if c.Output.Precision < -1 {
		return fmt.Errorf("%w: output.precision must be >= -1, got %d", ErrInvalidConfig, c.Output.Precision)
	}
	if c.Check.Workers < 1 {
		return fmt.Errorf("%w: check.workers must be positive, got %d", ErrInvalidConfig, c.Check.Workers)
	}
	return nil
}
