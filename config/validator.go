package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Validator checks a decoded Config against the schema generated from
// the struct tags, catching typos (unknown keys, since
// AllowAdditionalProperties is false) and out-of-range values that
// silent zero-value fallback would otherwise mask.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the schema once; the returned Validator is
// safe for concurrent use (compiled schemas are read-only).
func NewValidator() (*Validator, error) {
	schemaBytes, err := GenerateSchema()
	if err != nil {
		return nil, fmt.Errorf("config: generating schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	const resourceName = "nvimgui-config.json"
	if err := compiler.AddResource(resourceName, bytes.NewReader(schemaBytes)); err != nil {
		return nil, fmt.Errorf("config: adding schema resource: %w", err)
	}
	schema, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("config: compiling schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate round-trips cfg through YAML and then JSON so the schema
// (which was reflected off Config's yaml tags) sees exactly the key
// names a file on disk would use. Extensions are left out, since the
// schema does not describe them.
func (v *Validator) Validate(cfg Config) error {
	cfg.Extensions = nil
	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshaling for validation: %w", err)
	}
	var raw interface{}
	if err := yaml.Unmarshal(yamlData, &raw); err != nil {
		return fmt.Errorf("config: unmarshaling for validation: %w", err)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("config: marshaling for validation: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config: unmarshaling for validation: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}
	return nil
}
