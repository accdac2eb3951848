package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects Config into a draft-07 JSON Schema document,
// used both to validate a loaded file (via validator.go) and to hand
// editors/tooling a schema for config-file autocompletion.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "nvimgui engine configuration"
	schema.Description = "Transport, animation, attach, and logging knobs for the editor UI engine."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
