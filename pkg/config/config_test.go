package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_ValidMinimal(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	content := `exclude_tags: [slow]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.ExcludeTags; len(got) != 1 || got[0] != "slow" {
		t.Errorf("ExcludeTags = %v, want [slow]", got)
	}
	if cfg.Select != "" {
		t.Errorf("Select = %q, want empty", cfg.Select)
	}
}

func TestLoad_ValidFull(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	content := `
select: A Stack pops
include_tags:
  - fast
  - unit
exclude_tags:
  - flaky
patterns:
  - "A Stack *"
verbose: true
no_color: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Select != "A Stack pops" {
		t.Errorf("Select = %q, want %q", cfg.Select, "A Stack pops")
	}
	if len(cfg.IncludeTags) != 2 {
		t.Errorf("len(IncludeTags) = %d, want 2", len(cfg.IncludeTags))
	}
	if !cfg.Verbose || !cfg.NoColor {
		t.Errorf("Verbose, NoColor = %v, %v, want true, true", cfg.Verbose, cfg.NoColor)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()
	_, err := Load("/nonexistent/path/run.yaml")
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	t.Parallel()
	_, err := Parse([]byte("select: [unclosed"))
	if err == nil {
		t.Fatal("Parse() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "invalid YAML") {
		t.Errorf("Parse() error = %v, want YAML parse error", err)
	}
}

func TestParse_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", `selct: typo`},
		{"select wrong type", `select: [a, b]`},
		{"blank select", `select: ""`},
		{"tags not strings", `include_tags: [1, 2]`},
		{"duplicate tags", "exclude_tags:\n  - slow\n  - slow"},
		{"top level not object", "- a\n- list\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("Parse() error = nil, want schema violation")
			}
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Parse() error = %v, want ValidationError", err)
			}
			if !strings.Contains(err.Error(), "validation failed") {
				t.Errorf("Parse() error = %v, want validation error", err)
			}
		})
	}
}

func TestParse_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("patterns:\n  - \"a[b\"\n"))
	if err == nil {
		t.Fatal("Parse() error = nil, want pattern violation")
	}
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Parse() error = %v, want ValidationError", err)
	}
	if !strings.Contains(verr.Reason, `invalid name pattern "a[b"`) {
		t.Errorf("Reason = %q, want invalid pattern reason", verr.Reason)
	}
}

func TestParse_EmptyIsEmptyConfig(t *testing.T) {
	t.Parallel()

	for _, content := range []string{"", "\n", "# run everything\n"} {
		cfg, err := Parse([]byte(content))
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", content, err)
		}
		if cfg.Select != "" || len(cfg.Patterns) != 0 {
			t.Errorf("Parse(%q) = %+v, want zero config", content, cfg)
		}
	}
}

func TestRunConfig_Engine(t *testing.T) {
	t.Parallel()

	cfg := &RunConfig{
		Select:      "A Stack pops",
		IncludeTags: []string{"fast", "unit"},
		ExcludeTags: []string{"flaky"},
		Patterns:    []string{"A Stack *"},
	}

	ec := cfg.Engine()
	if ec.Select != "A Stack pops" {
		t.Errorf("Select = %q, want %q", ec.Select, "A Stack pops")
	}
	if !ec.IncludeTags.Has("fast") || !ec.IncludeTags.Has("unit") {
		t.Errorf("IncludeTags = %v, want fast and unit", ec.IncludeTags.List())
	}
	if !ec.ExcludeTags.Has("flaky") {
		t.Errorf("ExcludeTags = %v, want flaky", ec.ExcludeTags.List())
	}

	// The engine form must not share the patterns backing array.
	ec.Patterns[0] = "mutated"
	if cfg.Patterns[0] != "A Stack *" {
		t.Errorf("Patterns[0] = %q, want original preserved", cfg.Patterns[0])
	}
}

func TestRunConfig_EngineEmptyTagsIncludeAll(t *testing.T) {
	t.Parallel()

	ec := (&RunConfig{}).Engine()
	if ec.IncludeTags.Len() != 0 {
		t.Errorf("IncludeTags.Len() = %d, want 0", ec.IncludeTags.Len())
	}
	if ec.ExcludeTags.Len() != 0 {
		t.Errorf("ExcludeTags.Len() = %d, want 0", ec.ExcludeTags.Len())
	}
}
