package engine

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/polyspec/core/pkg/domain"
)

// RunConfig selects which registered tests a run executes.
type RunConfig struct {
	// Select names exactly one test to run by its composed name, bypassing
	// tag filters and patterns. Empty selects all tests. A name no test is
	// registered under makes the run fail with a TestNotFoundError.
	Select string

	// IncludeTags keeps only tests carrying at least one of these tags.
	// Empty keeps every test.
	IncludeTags domain.TagSet

	// ExcludeTags drops tests carrying any of these tags. Exclusion wins
	// over inclusion.
	ExcludeTags domain.TagSet

	// Patterns keeps only tests whose composed name matches at least one
	// of these glob patterns. Empty keeps every test. Patterns do not
	// apply when Select is set.
	Patterns []string
}

// filter is the compiled form of a RunConfig's selection rules.
type filter struct {
	include  domain.TagSet
	exclude  domain.TagSet
	patterns []string
}

func newFilter(cfg RunConfig) (*filter, error) {
	for _, pattern := range cfg.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("engine: invalid name pattern %q", pattern)
		}
	}
	return &filter{
		include:  cfg.IncludeTags,
		exclude:  cfg.ExcludeTags,
		patterns: cfg.Patterns,
	}, nil
}

func (f *filter) matchesTags(t testNode) bool {
	if f.include.Len() > 0 && !f.include.Intersects(t.tags) {
		return false
	}
	return !f.exclude.Intersects(t.tags)
}

func (f *filter) matches(t testNode) bool {
	if !f.matchesTags(t) {
		return false
	}
	return len(f.patterns) == 0 || matchesAnyPattern(t.name, f.patterns)
}

func matchesAnyPattern(name string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
