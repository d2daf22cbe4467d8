package config

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed run.schema.json
var schemaFS embed.FS

var (
	runSchema   *jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
)

// compileSchema compiles the embedded run schema once.
func compileSchema() error {
	compileOnce.Do(func() {
		data, err := schemaFS.ReadFile("run.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read run schema: %w", err)
			return
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal run schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("run.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add run schema resource: %w", err)
			return
		}

		runSchema, compileErr = compiler.Compile("run.schema.json")
	})

	return compileErr
}

// validate checks YAML data against the run schema. The document is round-
// tripped through JSON so the schema sees canonical JSON values.
func validate(data []byte) error {
	if err := compileSchema(); err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	if doc == nil {
		// An empty file is an empty run config.
		return nil
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert run config to JSON: %w", err)
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("unmarshal run config: %w", err)
	}

	if err := runSchema.Validate(v); err != nil {
		return ValidationError{Reason: "schema violation", Err: err}
	}

	return nil
}
