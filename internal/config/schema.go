package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfigShape is returned when the YAML document does not match the
// configuration schema (unknown keys, wrong types).
var ErrInvalidConfigShape = errors.New("configuration does not match schema")

const schemaURL = "config.schema.json"

//go:embed config.schema.json
var schemaJSON []byte

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	return compiler.Compile(schemaURL)
})

// checkShape validates the raw YAML document against the embedded schema.
// An empty document is accepted and yields the defaults.
func checkShape(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	if doc == nil {
		return nil
	}

	// Round-trip through JSON so numbers and maps have the types the
	// validator expects.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfigShape, err)
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfigShape, err)
	}

	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfigShape, err)
	}

	return nil
}
