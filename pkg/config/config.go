// Package config loads run configuration from YAML files validated against
// an embedded JSON schema, and converts it into the engine's run form.
package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/polyspec/core/pkg/domain"
	"github.com/polyspec/core/pkg/engine"
)

// ValidationError reports a run configuration rejected by the embedded
// schema or by semantic checks.
type ValidationError struct {
	// Reason describes the rejected construct.
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("config: run config validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("config: run config validation failed: %s: %v", e.Reason, e.Err)
}

// Unwrap returns the underlying cause.
func (e ValidationError) Unwrap() error { return e.Err }

// RunConfig is the file form of a run configuration.
type RunConfig struct {
	// Select names exactly one test to run. Empty runs the whole suite.
	Select string `yaml:"select,omitempty" json:"select,omitempty"`

	// IncludeTags keeps only tests carrying at least one of these tags.
	// Empty includes every test.
	IncludeTags []string `yaml:"include_tags,omitempty" json:"include_tags,omitempty"`

	// ExcludeTags drops tests carrying any of these tags. Exclusion wins
	// over inclusion.
	ExcludeTags []string `yaml:"exclude_tags,omitempty" json:"exclude_tags,omitempty"`

	// Patterns keeps only tests whose composed name matches at least one
	// glob pattern. Empty keeps every test.
	Patterns []string `yaml:"patterns,omitempty" json:"patterns,omitempty"`

	// Verbose asks reporters for per-test detail.
	Verbose bool `yaml:"verbose,omitempty" json:"verbose,omitempty"`

	// NoColor asks reporters for plain output.
	NoColor bool `yaml:"no_color,omitempty" json:"no_color,omitempty"`
}

// Load reads and parses a run configuration file.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run config: %w", err)
	}
	return Parse(data)
}

// Parse validates data against the run schema and unmarshals it. Name
// patterns are additionally checked for glob syntax, which the schema cannot
// express.
func Parse(data []byte) (*RunConfig, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse run config: %w", err)
	}

	for _, p := range cfg.Patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, ValidationError{Reason: fmt.Sprintf("invalid name pattern %q", p)}
		}
	}

	return &cfg, nil
}

// Engine converts the file form into the engine's run configuration.
func (c *RunConfig) Engine() engine.RunConfig {
	return engine.RunConfig{
		Select:      c.Select,
		IncludeTags: domain.NewTagSet(c.IncludeTags...),
		ExcludeTags: domain.NewTagSet(c.ExcludeTags...),
		Patterns:    append([]string(nil), c.Patterns...),
	}
}
